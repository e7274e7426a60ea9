package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/profilefeed/internal/profiles/domain"
	"github.com/aussiebroadwan/profilefeed/internal/profiles/service"
	"github.com/aussiebroadwan/profilefeed/internal/profiles/store"
	"github.com/aussiebroadwan/profilefeed/pkg/httpx"
	"github.com/aussiebroadwan/profilefeed/pkg/slogx"

	_ "github.com/aussiebroadwan/profilefeed/api/profiles" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// RateLimits picks the limiter profile for each class of route.
type RateLimits struct {
	// Credentials guards login and registration.
	Credentials httpx.RateLimitConfig
	Reads       httpx.RateLimitConfig
	Writes      httpx.RateLimitConfig
	Health      httpx.RateLimitConfig
}

// DefaultRateLimits uses the httpx profiles, which honour RATELIMIT_* env
// overrides.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Credentials: httpx.StrictLimit,
		Reads:       httpx.LenientLimit,
		Writes:      httpx.ModerateLimit,
		Health:      httpx.PublicLimit,
	}
}

// NoRateLimits disables every limiter.
func NoRateLimits() RateLimits {
	return RateLimits{
		Credentials: httpx.NoLimit,
		Reads:       httpx.NoLimit,
		Writes:      httpx.NoLimit,
		Health:      httpx.NoLimit,
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	AccountService *service.AccountService
	TokenService   *service.TokenService
	ProfileService *service.ProfileService
	FeedService    *service.FeedService

	// PrivateDirectory requires a token for profile reads.
	PrivateDirectory bool
	RateLimits       RateLimits
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		RateLimits:   DefaultRateLimits(),
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ApplyRoutes registers every route. Services and options must be set first.
func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProfiles()
	r.registerFeed()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Profile Feed API
//	@version					0.1.0
//	@description				User profiles with a status feed. Writes are limited to the owner of the profile or feed item.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/profilefeed
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	TokenAuth
//	@in							header
//	@name						Authorization
//	@description				Opaque token from /v1/login. Format: "Token {token}" ("Bearer {token}" is also accepted).
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// resolveToken adapts TokenService.Resolve to the authn middleware.
func (r *Router) resolveToken(ctx context.Context, raw string) (string, error) {
	u, err := r.TokenService.Resolve(ctx, raw)
	switch {
	case errors.Is(err, service.ErrAuthentication):
		return "", httpx.ErrInvalidToken
	case err != nil:
		return "", err
	}
	return u.ID, nil
}

func (r *Router) authenticated(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.resolveToken),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerAuth() {
	h := &LoginHandler{TokenService: r.TokenService}

	// POST /login - strict, keyed by IP and the email being tried
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndBodyField(r.RateLimits.Credentials, "email", domain.NormalizeEmail),
		),
	)

	r.Mux.Handle("POST /v1/logout", r.authenticated(http.HandlerFunc(h.HandleLogout), r.RateLimits.Writes))
}

func (r *Router) registerProfiles() {
	h := NewProfilesHandler(r.AccountService, r.ProfileService)

	// POST /profiles - public registration, strict by IP
	r.Mux.Handle("POST /v1/profiles",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.RateLimits.Credentials),
		),
	)

	authn := httpx.OptionalAuthnMiddleware(r.resolveToken)
	if r.PrivateDirectory {
		authn = httpx.AuthnMiddleware(r.resolveToken)
	}
	read := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, authn, httpx.RateLimitByUser(r.RateLimits.Reads))
	}

	r.Mux.Handle("GET /v1/profiles", read(h.HandleList))
	r.Mux.Handle("GET /v1/profiles/{id}", read(h.HandleGet))
	r.Mux.Handle("PUT /v1/profiles/{id}", r.authenticated(http.HandlerFunc(h.HandleReplace), r.RateLimits.Writes))
	r.Mux.Handle("PATCH /v1/profiles/{id}", r.authenticated(http.HandlerFunc(h.HandlePatch), r.RateLimits.Writes))
	r.Mux.Handle("DELETE /v1/profiles/{id}", r.authenticated(http.HandlerFunc(h.HandleDelete), r.RateLimits.Writes))
}

func (r *Router) registerFeed() {
	h := NewFeedHandler(r.FeedService)

	r.Mux.Handle("GET /v1/feed", r.authenticated(http.HandlerFunc(h.HandleList), r.RateLimits.Reads))
	r.Mux.Handle("GET /v1/feed/{id}", r.authenticated(http.HandlerFunc(h.HandleGet), r.RateLimits.Reads))
	r.Mux.Handle("POST /v1/feed", r.authenticated(http.HandlerFunc(h.HandleCreate), r.RateLimits.Writes))
	r.Mux.Handle("PUT /v1/feed/{id}", r.authenticated(http.HandlerFunc(h.HandleReplace), r.RateLimits.Writes))
	r.Mux.Handle("PATCH /v1/feed/{id}", r.authenticated(http.HandlerFunc(h.HandlePatch), r.RateLimits.Writes))
	r.Mux.Handle("DELETE /v1/feed/{id}", r.authenticated(http.HandlerFunc(h.HandleDelete), r.RateLimits.Writes))
}

func (r *Router) registerSystem() {
	// Health check endpoints - monitoring systems may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.RateLimits.Health),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(r.RateLimits.Health),
		),
	)
}
