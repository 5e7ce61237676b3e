package http

import (
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	OrderNumber      string `json:"order_number,omitempty"`
	Code             string `json:"code,omitempty"`
}

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each dependency of /readyz.
type HealthChecks struct {
	Store   string `json:"store"`
	Session string `json:"session"`
}

// LoginRequest is the body of POST /v1/session/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse describes the held session without exposing tokens.
type SessionResponse struct {
	LoggedIn  bool       `json:"loggedIn"`
	Subject   string     `json:"subject,omitempty"`
	Role      string     `json:"role,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// PendingResponse is the body of GET /v1/checkout/pending.
type PendingResponse struct {
	AttemptID   string           `json:"attemptId"`
	OrderNumber string           `json:"orderNumber"`
	Amount      int64            `json:"amount"`
	Origin      domain.Origin    `json:"origin"`
	Lines       []domain.LineRef `json:"lines"`
	CreatedAt   time.Time        `json:"createdAt"`
}
