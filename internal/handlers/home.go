package handlers

import "net/http"

// HomeData describes the API for the welcome endpoint.
// swagger:model HomeData
type HomeData struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
	Docs      string            `json:"documentation"`
}

// NewHomeHandler returns the welcome page handler with API information.
// @Summary API information
// @Tags system
// @Produce json
// @Success 200 {object} handlers.Response "API information"
// @Router / [get]
func NewHomeHandler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Response{
			Success: true,
			Data: HomeData{
				Name:    "UserSphere REST API",
				Version: version,
				Endpoints: map[string]string{
					"health":       "GET /health",
					"register":     "POST /register",
					"login":        "POST /login",
					"users":        "GET /users",
					"user_by_id":   "GET /users/{id}",
					"create_user":  "POST /users",
					"update_user":  "PUT /users/{id}",
					"delete_user":  "DELETE /users/{id}",
					"search_users": "GET /users/search?q={query}",
				},
				Docs: "/swagger/index.html",
			},
			Message: "Welcome to UserSphere REST API",
		})
	}
}
