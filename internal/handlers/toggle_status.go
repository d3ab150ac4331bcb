package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/usersphere/internal/logger"
	"github.com/sbilibin2017/usersphere/internal/models"
	"github.com/sbilibin2017/usersphere/internal/services"
)

// StatusToggler defines the interface that the service must implement.
type StatusToggler interface {
	ToggleStatus(ctx context.Context, id int64) (*models.UserDB, error)
}

// NewToggleStatusHandler returns an HTTP handler flipping a user's active flag.
// @Summary Toggle user status
// @Description Flips is_active on any user found by id, restoring soft-deleted users or deactivating active ones.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} handlers.Response "Status toggled"
// @Failure 404 {object} handlers.Response "User not found"
// @Failure 500 {object} handlers.Response "Internal server error"
// @Router /users/{id}/toggle-status [post]
// @Security BearerAuth
func NewToggleStatusHandler(svc StatusToggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUserID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid user ID", "User ID must be an integer")
			return
		}

		user, err := svc.ToggleStatus(r.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "User not found", "User does not exist")
				return
			}
			logger.Log.Errorw("failed to toggle user status", "id", id, "err", err)
			writeInternalError(w)
			return
		}

		writeJSON(w, http.StatusOK, Response{
			Success: true,
			Data:    user.View(),
			Message: "User status toggled successfully",
		})
	}
}
