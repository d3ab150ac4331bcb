package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/usersphere/internal/logger"
	"github.com/sbilibin2017/usersphere/internal/models"
)

// UserLister defines the interface that the service must implement.
type UserLister interface {
	List(ctx context.Context) ([]models.UserDB, error)
}

// NewListUsersHandler returns an HTTP handler listing all active users.
// @Summary List users
// @Description Returns all active users in creation order. Soft-deleted users are excluded.
// @Tags users
// @Produce json
// @Success 200 {object} handlers.Response "Users retrieved"
// @Failure 500 {object} handlers.Response "Internal server error"
// @Router /users [get]
func NewListUsersHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("failed to list users", "err", err)
			writeInternalError(w)
			return
		}

		views := make([]models.User, 0, len(users))
		for i := range users {
			views = append(views, users[i].View())
		}

		writeJSON(w, http.StatusOK, Response{
			Success: true,
			Data:    views,
			Count:   countOf(len(views)),
			Message: "Users retrieved successfully",
		})
	}
}
