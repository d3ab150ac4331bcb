package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/usersphere/internal/logger"
	"github.com/sbilibin2017/usersphere/internal/models"
	"github.com/sbilibin2017/usersphere/internal/services"
	"github.com/sbilibin2017/usersphere/internal/validation"
)

// UserCreator defines the interface that the service must implement.
// Creation shares the registration path: same validation, same hashing,
// same duplicate check.
type UserCreator interface {
	Register(ctx context.Context, name, email, password string, age *int) (*models.UserDB, error)
}

// NewCreateUserHandler returns an HTTP handler creating a user.
// @Summary Create a new user
// @Description Creates a user account. Unlike /register, a duplicate email answers 400.
// @Tags users
// @Accept json
// @Produce json
// @Param createUserRequest body validation.CreateUserRequest true "User payload"
// @Success 201 {object} handlers.Response "User created"
// @Failure 400 {object} handlers.Response "Invalid input data or duplicate email"
// @Failure 500 {object} handlers.Response "Internal server error"
// @Router /users [post]
func NewCreateUserHandler(svc UserCreator, va *validation.Validator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req validation.CreateUserRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "No input data provided", "Request body must contain JSON data")
			return
		}

		if details := va.Validate(req); details != nil {
			writeValidationError(w, details)
			return
		}

		user, err := svc.Register(r.Context(), req.Name, req.Email, req.Password, req.Age)
		if err != nil {
			if errors.Is(err, services.ErrEmailAlreadyExists) {
				writeError(w, http.StatusBadRequest, "Email address already exists", "Failed to create user")
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeInternalError(w)
			return
		}

		writeJSON(w, http.StatusCreated, Response{
			Success: true,
			Data:    user.View(),
			Message: "User created successfully",
		})
	}
}
