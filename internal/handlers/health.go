package handlers

import "net/http"

// HealthData is the payload of the health check endpoint.
// swagger:model HealthData
type HealthData struct {
	// Service status
	Status string `json:"status"`
}

// NewHealthHandler returns the API health check handler.
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} handlers.Response "Service is healthy"
// @Router /health [get]
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Response{
			Success: true,
			Data:    HealthData{Status: "healthy"},
			Message: "UserSphere API is running",
		})
	}
}
