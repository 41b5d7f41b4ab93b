package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/accounts/account-service/internal/api/middleware"
	"github.com/accounts/account-service/internal/core/domain"
)

func TestUserHandler_Me(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ProfileKey, &domain.Profile{ID: "acc-1", Email: "a@b.com", Name: "Ann Lee"})

	if err := NewUserHandler().Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "acc-1" || resp["email"] != "a@b.com" || resp["name"] != "Ann Lee" || len(resp) != 3 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_Me_WithoutProfile(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if err := NewUserHandler().Me(c); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
