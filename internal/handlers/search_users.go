package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sbilibin2017/usersphere/internal/logger"
	"github.com/sbilibin2017/usersphere/internal/models"
	"github.com/sbilibin2017/usersphere/internal/services"
)

// UserSearcher defines the interface that the service must implement.
type UserSearcher interface {
	Search(ctx context.Context, query string) ([]models.UserDB, error)
}

// NewSearchUsersHandler returns an HTTP handler searching active users.
// @Summary Search users
// @Description Case-insensitive substring match against name or email, active users only. An empty query is an error, not an empty result.
// @Tags users
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} handlers.Response "Search results"
// @Failure 400 {object} handlers.Response "Search query required"
// @Failure 500 {object} handlers.Response "Internal server error"
// @Router /users/search [get]
func NewSearchUsersHandler(svc UserSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")

		users, err := svc.Search(r.Context(), query)
		if err != nil {
			if errors.Is(err, services.ErrEmptySearchQuery) {
				writeError(w, http.StatusBadRequest, "Search query required", "Please provide a search query using ?q=search_term")
				return
			}
			logger.Log.Errorw("failed to search users", "query", query, "err", err)
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
			Message: fmt.Sprintf("Search results for: %s", query),
		})
	}
}
