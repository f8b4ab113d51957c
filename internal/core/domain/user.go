package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// User models an operator account allowed to call the integrations API.
type User struct {
	ID           string    `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserPatch carries the fields of a partial user update. Nil fields are left untouched.
type UserPatch struct {
	Login        *string
	PasswordHash *string
	Role         *string
}

// IsEmpty reports whether the patch would write nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Login == nil && p.PasswordHash == nil && p.Role == nil
}
