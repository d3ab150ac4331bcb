package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/usersphere/internal/logger"
	"github.com/sbilibin2017/usersphere/internal/models"
	"github.com/sbilibin2017/usersphere/internal/services"
)

// UserGetter defines the interface that the service must implement.
type UserGetter interface {
	Get(ctx context.Context, id int64) (*models.UserDB, error)
}

// NewGetUserHandler returns an HTTP handler fetching a single active user.
// @Summary Get user by ID
// @Description Returns a single active user. Soft-deleted users respond 404.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} handlers.Response "User retrieved"
// @Failure 404 {object} handlers.Response "User not found"
// @Failure 500 {object} handlers.Response "Internal server error"
// @Router /users/{id} [get]
func NewGetUserHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUserID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid user ID", "User ID must be an integer")
			return
		}

		user, err := svc.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "User not found", "User does not exist")
				return
			}
			logger.Log.Errorw("failed to get user", "id", id, "err", err)
			writeInternalError(w)
			return
		}

		writeJSON(w, http.StatusOK, Response{
			Success: true,
			Data:    user.View(),
			Message: "User retrieved successfully",
		})
	}
}
