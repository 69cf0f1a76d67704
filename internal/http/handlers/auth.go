package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"bannerkit/internal/middleware"
)

type loginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type loginResponse struct {
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
	Credits int    `json:"credits"`
}

// AuthLogin upserts the account and issues a bearer token. Identity
// verification happens upstream; this endpoint only bootstraps the session.
func (a *App) AuthLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "email required")
		return
	}
	userID, credits, err := a.Store.UpsertUser(r.Context(), email, strings.TrimSpace(req.Name), a.Config.SignupCredits)
	if err != nil {
		a.Logger.Error().Err(err).Msg("upsert user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to persist user")
		return
	}
	token, err := middleware.SignJWT(a.Config.JWTSecret, userID, email)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusOK, loginResponse{Token: token, UserID: userID, Credits: credits})
}

// CreditsGet reports the caller's remaining balance.
func (a *App) CreditsGet(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	credits, err := a.Store.CreditBalance(r.Context(), userID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load credits")
		return
	}
	a.json(w, http.StatusOK, map[string]int{"credits": credits})
}
