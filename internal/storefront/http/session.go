package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// SessionManager is the part of *authsdk.Session the HTTP surface uses.
type SessionManager interface {
	Current() (authsdk.Credential, bool)
	Login(ctx context.Context, username, password string) (authsdk.Credential, error)
	Logout(ctx context.Context) error
}

// SessionHandler handles login, logout and session status.
type SessionHandler struct {
	Session SessionManager
}

// HandleStatus handles GET /v1/session
//
//	@Summary		Session status
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	SessionResponse	"loggedIn, subject, role, expiresAt"
//	@Router			/v1/session [get].
func (h *SessionHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	cred, ok := h.Session.Current()
	httpx.WriteJSON(w, http.StatusOK, sessionResponse(cred, ok))
}

// HandleLogin handles POST /v1/session/login
//
//	@Summary		Log in
//	@Description	Exchanges the shopper's username and password for a session held by the agent. Tokens are never returned.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	SessionResponse	"the new session"
//	@Failure		400		{object}	ErrorResponse	"error, error_description"
//	@Failure		401		{object}	ErrorResponse	"invalid_credentials"
//	@Router			/v1/session/login [post].
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON in request body",
		})
		return
	}

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Username and password are required",
		})
		return
	}

	cred, err := h.Session.Login(ctx, req.Username, req.Password)
	if err != nil {
		var apiErr *authsdk.APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusBadRequest) {
			log.Info("login rejected", "code", apiErr.Code)
			httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
				Error:            "invalid_credentials",
				ErrorDescription: "Invalid username or password",
			})
			return
		}
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sessionResponse(cred, true))
}

// HandleLogout handles POST /v1/session/logout
//
//	@Summary		Log out
//	@Description	Forgets the held session. Succeeds when already logged out.
//	@Tags			Session
//	@Success		204
//	@Router			/v1/session/logout [post].
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Session.Logout(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

func sessionResponse(cred authsdk.Credential, ok bool) SessionResponse {
	if !ok {
		return SessionResponse{}
	}

	resp := SessionResponse{
		LoggedIn: true,
		Subject:  cred.Claims.SubjectID(),
		Role:     cred.Claims.Role,
	}
	if exp := cred.Claims.ExpiresAtTime(); !exp.IsZero() {
		resp.ExpiresAt = &exp
	}
	return resp
}
