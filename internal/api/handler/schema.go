package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// --- Auth ---

type loginRequest struct {
	Login    string `json:"login"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// --- Users ---

type createUserRequest struct {
	Login    string `json:"login"    validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=6,pwbytes"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin operator"`
}

type updateUserRequest struct {
	Login    *string `json:"login"    validate:"omitnil,min=1,max=64"`
	Password *string `json:"password" validate:"omitnil,min=6,pwbytes"`
	Role     *string `json:"role"     validate:"omitnil,oneof=admin operator"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Login     string    `json:"login"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}

// --- Assignors ---

type createAssignorRequest struct {
	ID       string `json:"id"       validate:"required,uuid"`
	Document string `json:"document" validate:"required,max=30,digits"`
	Email    string `json:"email"    validate:"required,email,max=140"`
	Phone    string `json:"phone"    validate:"required,max=20"`
	Name     string `json:"name"     validate:"required,max=140"`
}

type updateAssignorRequest struct {
	Document *string `json:"document" validate:"omitnil,max=30,digits"`
	Email    *string `json:"email"    validate:"omitnil,email,max=140"`
	Phone    *string `json:"phone"    validate:"omitnil,min=1,max=20"`
	Name     *string `json:"name"     validate:"omitnil,min=1,max=140"`
}

// --- Payables ---

type createPayableRequest struct {
	ID           string   `json:"id"           validate:"required,uuid"`
	Value        *float64 `json:"value"        validate:"required"`
	EmissionDate string   `json:"emissionDate" validate:"required,isodate"`
	AssignorID   string   `json:"assignorId"   validate:"required,uuid"`
}

type updatePayableRequest struct {
	Value        *float64 `json:"value"`
	EmissionDate *string  `json:"emissionDate" validate:"omitnil,isodate"`
	AssignorID   *string  `json:"assignorId"   validate:"omitnil,uuid"`
}
