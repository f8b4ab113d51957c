package mongo

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/aprovame/integrations-api/internal/core/domain"
)

func strPtr(s string) *string { return &s }

// storedFields returns the top-level field names v is persisted with.
func storedFields(t *testing.T, v any) map[string]struct{} {
	t.Helper()
	raw, err := bson.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	fields := make(map[string]struct{}, len(doc))
	for k := range doc {
		fields[k] = struct{}{}
	}
	return fields
}

func assertSet(t *testing.T, got, want bson.M, stored map[string]struct{}) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected $set %v, got %v", want, got)
	}
	for k := range got {
		if _, ok := stored[k]; !ok {
			t.Fatalf("$set key %q is not a stored field", k)
		}
	}
}

func TestUserSet(t *testing.T) {
	stored := storedFields(t, mongoUser{})
	tests := []struct {
		name  string
		patch domain.UserPatch
		want  bson.M
	}{
		{"empty", domain.UserPatch{}, bson.M{}},
		{"login only", domain.UserPatch{Login: strPtr("op2")}, bson.M{"login": "op2"}},
		{"password only", domain.UserPatch{PasswordHash: strPtr("h")}, bson.M{"password_hash": "h"}},
		{
			"all",
			domain.UserPatch{Login: strPtr("op2"), PasswordHash: strPtr("h"), Role: strPtr(domain.RoleAdmin)},
			bson.M{"login": "op2", "password_hash": "h", "role": domain.RoleAdmin},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertSet(t, userSet(tt.patch), tt.want, stored)
		})
	}
}

func TestAssignorSet(t *testing.T) {
	stored := storedFields(t, domain.Assignor{})
	tests := []struct {
		name  string
		patch domain.AssignorPatch
		want  bson.M
	}{
		{"empty", domain.AssignorPatch{}, bson.M{}},
		{"name only", domain.AssignorPatch{Name: strPtr("Bar")}, bson.M{"name": "Bar"}},
		{
			"document and email",
			domain.AssignorPatch{Document: strPtr("123"), Email: strPtr("a@b.com")},
			bson.M{"document": "123", "email": "a@b.com"},
		},
		{"phone only", domain.AssignorPatch{Phone: strPtr("11999998888")}, bson.M{"phone": "11999998888"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertSet(t, assignorSet(tt.patch), tt.want, stored)
		})
	}
}

func TestPayableSet(t *testing.T) {
	stored := storedFields(t, domain.Payable{})
	value := 12.5
	local := time.Date(2024, 3, 1, 21, 0, 0, 0, time.FixedZone("BRT", -3*3600))

	tests := []struct {
		name  string
		patch domain.PayablePatch
		want  bson.M
	}{
		{"empty", domain.PayablePatch{}, bson.M{}},
		{"value only", domain.PayablePatch{Value: &value}, bson.M{"value": 12.5}},
		{"date stored in UTC", domain.PayablePatch{EmissionDate: &local}, bson.M{"emission_date": local.UTC()}},
		{"assignor only", domain.PayablePatch{AssignorID: strPtr("a1")}, bson.M{"assignor_id": "a1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertSet(t, payableSet(tt.patch), tt.want, stored)
		})
	}

	got := payableSet(domain.PayablePatch{EmissionDate: &local})["emission_date"].(time.Time)
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", got.Location())
	}
}
