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

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, name, email, password string, age *int) (*models.UserDB, error)
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account. The email must be unique across all users, including soft-deleted ones. The password is hashed before storing and never returned.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body validation.CreateUserRequest true "User registration request"
// @Success 201 {object} handlers.Response "User successfully registered"
// @Failure 400 {object} handlers.Response "Invalid input data"
// @Failure 409 {object} handlers.Response "Email address already exists"
// @Router /register [post]
func NewRegisterHandler(svc Registerer, va *validation.Validator) http.HandlerFunc {
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
				writeError(w, http.StatusConflict, "Email address already exists", "Failed to register user")
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeInternalError(w)
			return
		}

		writeJSON(w, http.StatusCreated, Response{
			Success: true,
			Data:    user.View(),
			Message: "User registered successfully",
		})
	}
}
