package domain

// Assignor is the counterparty a payable is owed by or to.
type Assignor struct {
	ID       string `json:"id" bson:"_id"`
	Document string `json:"document" bson:"document"`
	Email    string `json:"email" bson:"email"`
	Phone    string `json:"phone" bson:"phone"`
	Name     string `json:"name" bson:"name"`
}

// AssignorPatch carries the fields of a partial assignor update.
type AssignorPatch struct {
	Document *string
	Email    *string
	Phone    *string
	Name     *string
}

func (p AssignorPatch) IsEmpty() bool {
	return p.Document == nil && p.Email == nil && p.Phone == nil && p.Name == nil
}
