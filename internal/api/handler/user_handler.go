package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me handles GET /users/me and returns {id, email, name} of the token holder.
func (h *UserHandler) Me(c echo.Context) error {
	profile, err := ctxProfile(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
