package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/aprovame/integrations-api/internal/api/handler"
	"github.com/aprovame/integrations-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("invalid token: %w", domain.ErrUnauthorized), http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("find user: %w", domain.ErrUserNotFound), http.StatusNotFound},
		{fmt.Errorf("find assignor: %w", domain.ErrAssignorNotFound), http.StatusNotFound},
		{fmt.Errorf("find payable: %w", domain.ErrPayableNotFound), http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrAssignorExists, http.StatusConflict},
		{domain.ErrPayableExists, http.StatusConflict},
		{fmt.Errorf("remove assignor: %w (2 payables)", domain.ErrAssignorInUse), http.StatusConflict},
		{domain.ErrAssignorReference, http.StatusUnprocessableEntity},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests},
	}

	for _, tc := range cases {
		code, resp := renderError(t, tc.err)
		if code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, code)
		}
		if resp.Error == "" {
			t.Fatalf("%v: expected error message", tc.err)
		}
	}
}

func TestErrorHandler_HidesWrappingContext(t *testing.T) {
	_, resp := renderError(t, fmt.Errorf("find user abc: %w", domain.ErrUserNotFound))
	if resp.Error != "user not found" {
		t.Fatalf("expected sentinel message only, got %q", resp.Error)
	}
}

func TestErrorHandler_Validation(t *testing.T) {
	code, resp := renderError(t, &handler.ValidationError{Fields: map[string]string{"email": "email must be a valid email"}})
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
	if resp.Fields["email"] == "" {
		t.Fatalf("expected field detail, got %+v", resp)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, resp := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if code != http.StatusBadRequest || resp.Error != "invalid payload" {
		t.Fatalf("unexpected: %d %+v", code, resp)
	}
}

func TestErrorHandler_Unexpected(t *testing.T) {
	code, resp := renderError(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if resp.Error != "internal server error" {
		t.Fatalf("expected generic message, got %q", resp.Error)
	}
}
