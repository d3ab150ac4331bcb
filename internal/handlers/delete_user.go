package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/usersphere/internal/logger"
	"github.com/sbilibin2017/usersphere/internal/services"
)

// UserDeleter defines the interface that the service must implement.
type UserDeleter interface {
	Delete(ctx context.Context, id int64) error
}

// NewDeleteUserHandler returns an HTTP handler soft-deleting a user.
// @Summary Delete user
// @Description Soft-deletes an active user. The row persists and the email stays reserved.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} handlers.Response "User deleted"
// @Failure 404 {object} handlers.Response "User not found"
// @Failure 500 {object} handlers.Response "Internal server error"
// @Router /users/{id} [delete]
func NewDeleteUserHandler(svc UserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUserID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid user ID", "User ID must be an integer")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "User not found", "User does not exist")
				return
			}
			logger.Log.Errorw("failed to delete user", "id", id, "err", err)
			writeInternalError(w)
			return
		}

		writeJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "User deleted successfully",
		})
	}
}
