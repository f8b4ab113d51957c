package domain

import "time"

const (
	EntityUser     = "user"
	EntityAssignor = "assignor"
	EntityPayable  = "payable"

	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionLogin  = "login"
)

// AuditEntry records a single mutation or authentication event.
type AuditEntry struct {
	Entity   string
	EntityID string
	Action   string
	Actor    string
	Success  bool
	At       time.Time
}
