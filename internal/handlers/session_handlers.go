package handlers

import (
	"encoding/json"
	"net/http"

	"taskboard/internal/handlers/dto"
	"taskboard/internal/logger"

	"go.uber.org/zap"
)

// Any rejection is surfaced as this single generic message; the mock
// login never distinguishes reasons.
const loginFailedMessage = "invalid email or password"

type SessionHandler struct {
	sessions SessionStore
}

func NewSessionHandler(sessions SessionStore) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN: login")

	var request dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: malformed login body", zap.Error(err))
		responseWithError(w, http.StatusUnauthorized, loginFailedMessage)
		return
	}

	if !h.sessions.Login(request.Email, request.Password) {
		logger.Warn("HTTP: login rejected", zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnauthorized, loginFailedMessage)
		return
	}

	user := h.sessions.CurrentUser()
	if user == nil {
		// Login accepted but the record is already gone, e.g. a
		// concurrent logout. Treat it as a failed login.
		logger.Warn("HTTP: session record missing after login")
		responseWithError(w, http.StatusUnauthorized, loginFailedMessage)
		return
	}

	logger.Info("HTTP_OUT: login succeeded", zap.String("email", user.Email))
	responseWithJSON(w, http.StatusOK, map[string]any{"user": dto.FromSession(user)})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN: logout")

	h.sessions.Logout()
	responseWithJSON(w, http.StatusNoContent, nil)
}

func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN: current user")

	user := h.sessions.CurrentUser()
	if user == nil {
		responseWithError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	responseWithJSON(w, http.StatusOK, map[string]any{"user": dto.FromSession(user)})
}
