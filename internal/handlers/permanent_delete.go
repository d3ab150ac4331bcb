package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/usersphere/internal/logger"
	"github.com/sbilibin2017/usersphere/internal/services"
)

// PermanentDeleter defines the interface that the service must implement.
type PermanentDeleter interface {
	PermanentlyDelete(ctx context.Context, id int64) error
}

// NewPermanentDeleteHandler returns an HTTP handler removing a user row for good.
// @Summary Permanently delete user
// @Description Irreversibly removes a user regardless of active status. Frees the email for new registrations.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} handlers.Response "User permanently deleted"
// @Failure 404 {object} handlers.Response "User not found"
// @Failure 500 {object} handlers.Response "Internal server error"
// @Router /users/{id}/permanent [delete]
// @Security BearerAuth
func NewPermanentDeleteHandler(svc PermanentDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUserID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid user ID", "User ID must be an integer")
			return
		}

		if err := svc.PermanentlyDelete(r.Context(), id); err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "User not found", "User does not exist")
				return
			}
			logger.Log.Errorw("failed to permanently delete user", "id", id, "err", err)
			writeInternalError(w)
			return
		}

		writeJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "User permanently deleted",
		})
	}
}
