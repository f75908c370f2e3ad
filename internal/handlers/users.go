package handlers

import (
	"net/http"
	"strings"

	"mailsift/internal/models"
	"mailsift/internal/store"

	"github.com/labstack/echo/v4"
)

// CreateUserHandler registers a new email owner
// @Summary Create user
// @Description Creates a user that imported emails belong to
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "User details"
// @Success 201 {object} models.CreateUserResponse
// @Failure 400 {object} models.CreateUserResponse
// @Failure 500 {object} models.CreateUserResponse
// @Router /api/users [post]
func CreateUserHandler(repo *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.CreateUserResponse{
				Success: false,
				Error:   "Invalid request body",
			})
		}

		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" {
			return c.JSON(http.StatusBadRequest, models.CreateUserResponse{
				Success: false,
				Error:   "email is required",
			})
		}

		user, err := repo.CreateUser(c.Request().Context(), req.Email, strings.TrimSpace(req.Name))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.CreateUserResponse{
				Success: false,
				Error:   "Failed to create user",
			})
		}

		return c.JSON(http.StatusCreated, models.CreateUserResponse{
			Success: true,
			User:    user,
		})
	}
}
