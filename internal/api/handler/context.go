package handler

import (
	"github.com/labstack/echo/v4"
)

// Context keys set by the Auth middleware.
const (
	CtxUserID = "user_id"
	CtxLogin  = "login"
	CtxRole   = "role"
)

// actor identifies the caller for audit records. Routes left open by
// configuration have no claims and are attributed to "anonymous".
func actor(c echo.Context) string {
	if login, _ := c.Get(CtxLogin).(string); login != "" {
		return login
	}
	return "anonymous"
}
