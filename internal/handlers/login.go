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

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (*models.UserDB, string, error)
}

// LoginData carries the issued token in a successful login response.
// swagger:model LoginData
type LoginData struct {
	// JWT token
	Token string `json:"token"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate an active user and return a JWT token. A missing user and a wrong password produce the same response.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body validation.LoginRequest true "Login request"
// @Success 200 {object} handlers.Response "JWT token returned"
// @Failure 400 {object} handlers.Response "Invalid request body"
// @Failure 401 {object} handlers.Response "Invalid email or password"
// @Router /login [post]
func NewLoginHandler(svc Loginer, va *validation.Validator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req validation.LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "No input data provided", "Request body must contain JSON data")
			return
		}

		if details := va.Validate(req); details != nil {
			writeValidationError(w, details)
			return
		}

		_, token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "Invalid credentials", "Invalid email or password")
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeInternalError(w)
			return
		}

		writeJSON(w, http.StatusOK, Response{
			Success: true,
			Data:    LoginData{Token: token},
			Message: "Login successful",
		})
	}
}
