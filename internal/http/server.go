package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	applog "argentvault/internal/log"
	"argentvault/internal/middleware/ratelimit"
	"argentvault/internal/middleware/security"
	"argentvault/internal/middleware/trace"
	"argentvault/internal/services"
)

// Deps are the services and hooks the server routes to.
type Deps struct {
	Budgets    *services.BudgetService
	Visits     *services.VisitTracker
	Newsletter *services.NewsletterService
	Content    *services.ContentService

	Logger *applog.Logger
	// Registry receives the HTTP metrics and is served on /metrics. When
	// nil a private registry is used.
	Registry *prometheus.Registry
	// Ready reports whether backing stores are reachable.
	Ready func(ctx context.Context) error

	RateLimitPerMinute int
	// TrustedProxies are CIDRs allowed to set X-Forwarded-For.
	TrustedProxies []string
}

type Server struct {
	http.Server

	budgets    *services.BudgetService
	visits     *services.VisitTracker
	newsletter *services.NewsletterService
	content    *services.ContentService
	ready      func(ctx context.Context) error

	limiter      *ratelimit.Limiter
	detector     *security.Detector
	shutdownOnce sync.Once
}

// NewServer builds the router and its middleware chain.
func NewServer(addr string, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	limitCfg := ratelimit.DefaultConfig()
	if deps.RateLimitPerMinute > 0 {
		limitCfg.RequestsPerMinute = deps.RateLimitPerMinute
	}

	s := &Server{
		budgets:    deps.Budgets,
		visits:     deps.Visits,
		newsletter: deps.Newsletter,
		content:    deps.Content,
		ready:      deps.Ready,
		limiter:    ratelimit.NewLimiter(limitCfg),
		detector:   security.NewDetector(),
	}
	for _, cidr := range deps.TrustedProxies {
		if err := s.detector.AddTrustedProxy(cidr); err != nil {
			logger.Warn("Ignoring trusted proxy", applog.FieldError, err)
		}
	}

	r := chi.NewRouter()
	r.Use(trace.NewMiddleware(s.detector.ExtractClientIP, registry).Middleware)
	r.Use(applog.Middleware(logger.WithComponent(applog.ComponentHTTP)))
	r.Use(applog.RequestIDMiddleware(func(r *http.Request) string {
		return trace.GetRequestID(r.Context())
	}))
	r.Use(s.detector.Middleware)
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)
	r.Use(s.limiter.Middleware(s.detector.ExtractClientIP, func(w http.ResponseWriter, r *http.Request) {
		ErrorResponse(http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.").Write(w)
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/budget/calculate", s.handleCalculate)
		r.Get("/budgets", s.handleListBudgets)
		r.Post("/budgets", s.handleSaveBudget)
		r.Get("/budgets/{id}", s.handleGetBudget)
		r.Delete("/budgets/{id}", s.handleDeleteBudget)
		r.Get("/budgets/{id}/tips", s.handleBudgetTips)

		r.Post("/visits", s.handleVisit)
		r.Post("/newsletter", s.handleSubscribe)

		r.Get("/content", s.handleContent)
		r.Get("/places", s.handlePlaces)
		r.Get("/expense-names", s.handleExpenseNames)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NotFoundError("Not found").Write(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		ErrorResponse(http.StatusMethodNotAllowed, "Method not allowed").Write(w)
	})

	s.Server = http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
	return s
}

// Shutdown drains connections and stops the rate limiter's cleanup loop.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(s.limiter.Stop)
	return s.Server.Shutdown(ctx)
}
