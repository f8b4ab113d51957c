package domain

import "time"

// Payable is a receivable amount linked to an assignor.
type Payable struct {
	ID           string    `json:"id" bson:"_id"`
	Value        float64   `json:"value" bson:"value"`
	EmissionDate time.Time `json:"emissionDate" bson:"emission_date"`
	AssignorID   string    `json:"assignorId" bson:"assignor_id"`
}

// PayablePatch carries the fields of a partial payable update.
type PayablePatch struct {
	Value        *float64
	EmissionDate *time.Time
	AssignorID   *string
}

func (p PayablePatch) IsEmpty() bool {
	return p.Value == nil && p.EmissionDate == nil && p.AssignorID == nil
}
