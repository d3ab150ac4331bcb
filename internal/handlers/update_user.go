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

// UserUpdater defines the interface that the service must implement.
type UserUpdater interface {
	Update(ctx context.Context, id int64, upd services.UserUpdate) (*models.UserDB, error)
}

// NewUpdateUserHandler returns an HTTP handler applying a partial update.
// @Summary Update user
// @Description Updates any subset of user fields. Omitted fields keep their stored values; a supplied password is re-hashed.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param updateUserRequest body validation.UpdateUserRequest true "Fields to update"
// @Success 200 {object} handlers.Response "User updated"
// @Failure 400 {object} handlers.Response "Invalid input data or duplicate email"
// @Failure 404 {object} handlers.Response "User not found"
// @Failure 500 {object} handlers.Response "Internal server error"
// @Router /users/{id} [put]
func NewUpdateUserHandler(svc UserUpdater, va *validation.Validator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUserID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid user ID", "User ID must be an integer")
			return
		}

		var req validation.UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "No input data provided", "Request body must contain JSON data")
			return
		}

		if details := va.Validate(req); details != nil {
			writeValidationError(w, details)
			return
		}

		user, err := svc.Update(r.Context(), id, services.UserUpdate{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Age:      req.Age,
			IsActive: req.IsActive,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found", "User does not exist")
			case errors.Is(err, services.ErrEmailAlreadyExists):
				writeError(w, http.StatusBadRequest, "Email address already exists", "Failed to update user")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeInternalError(w)
			}
			return
		}

		writeJSON(w, http.StatusOK, Response{
			Success: true,
			Data:    user.View(),
			Message: "User updated successfully",
		})
	}
}
