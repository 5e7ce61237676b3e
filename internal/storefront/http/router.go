package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"

	_ "github.com/aussiebroadwan/storefront/api/storefront" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	session          SessionManager
	CheckoutService  *service.CheckoutService
	ReconcileService *service.ReconcileService
}

func NewRouter(buildVersion string, st store.Store, session SessionManager, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		session:      session,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerCheckout()
	r.registerPaymentReturn()
	r.registerSession()
	r.registerSystem()

	r.Mux.Handle("/swagger/",
		httpx.Chain(httpSwagger.Handler(),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Storefront Agent API
//	@version		0.1.0
//	@description	Local API used by the storefront UI to hold the shopper's session, start checkouts and settle payment processor redirects.
//	@description
//	@description	Commerce API tokens never leave the agent; the UI only sees session status.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/storefront
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerCheckout() {
	h := &CheckoutHandler{CheckoutService: r.CheckoutService}

	// POST /checkout/payment - creates an order, moderate limit per shopper
	r.Mux.Handle("POST /v1/checkout/payment",
		httpx.Chain(http.HandlerFunc(h.HandleProceed),
			httpx.RequireSession(r.session),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /v1/checkout/pending",
		httpx.Chain(http.HandlerFunc(h.HandleGetPending),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/checkout/pending",
		httpx.Chain(http.HandlerFunc(h.HandleAbandon),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerPaymentReturn() {
	h := &PaymentReturnHandler{ReconcileService: r.ReconcileService}

	// Processor redirects - strict limit per order so a replayed or
	// tampered redirect can't hammer the confirmation endpoint
	r.Mux.Handle("GET "+service.SuccessReturnPath,
		httpx.Chain(http.HandlerFunc(h.HandleSuccess),
			httpx.RateLimitByIPAndQueryParam(httpx.StrictLimit, "orderId"),
		),
	)
	r.Mux.Handle("GET "+service.FailReturnPath,
		httpx.Chain(http.HandlerFunc(h.HandleFailure),
			httpx.RateLimitByIPAndQueryParam(httpx.StrictLimit, "orderId"),
		),
	)
}

func (r *Router) registerSession() {
	h := &SessionHandler{Session: r.session}

	// POST /session/login - strict rate limit by IP (authentication attempts)
	r.Mux.Handle("POST /v1/session/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/session/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/session",
		httpx.Chain(http.HandlerFunc(h.HandleStatus),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.session),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
