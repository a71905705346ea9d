package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/duetmatch/duet/internal/auth/identity"
	"github.com/duetmatch/duet/internal/auth/service"
	"github.com/duetmatch/duet/internal/auth/store"
	"github.com/duetmatch/duet/pkg/httpx"
	"github.com/duetmatch/duet/pkg/slogx"

	_ "github.com/duetmatch/duet/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	strategy     identity.Strategy
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	UserService *service.UserService
}

func NewRouter(
	strategy identity.Strategy,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		strategy:     strategy,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMe()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Duet Authentication Service API
//	@version		0.1.0
//	@description	Email and password authentication issuing paired JWT access and refresh tokens.
//	@description
//	@description				Tokens are HMAC-signed and carry only sub, type, iat and exp claims. The access
//	@description				token authenticates API calls; the refresh token's sole purpose is minting a new pair.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /email/login - strict rate limit by IP (credential guessing surface)
	loginHandler := &LoginHandler{UserService: r.UserService}
	r.Mux.Handle("POST /api/v1/auth/email/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /email/sign-up - strict rate limit by IP (public account creation)
	signUpHandler := &SignUpHandler{UserService: r.UserService}
	r.Mux.Handle("POST /api/v1/auth/email/sign-up",
		httpx.Chain(signUpHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /refresh - moderate rate limit by IP; the token itself is the credential
	refreshHandler := &RefreshHandler{UserService: r.UserService}
	r.Mux.Handle("POST /api/v1/auth/refresh",
		httpx.Chain(refreshHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerMe() {
	h := &MeHandler{UserService: r.UserService}

	// GET /me - routine authenticated read, lenient rate limit by user
	securedGet := httpx.Chain(http.HandlerFunc(h.HandleGet),
		AuthnMiddleware(r.strategy),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	// DELETE /me - destructive, moderate rate limit by user
	securedDelete := httpx.Chain(http.HandlerFunc(h.HandleDelete),
		AuthnMiddleware(r.strategy),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /api/v1/auth/me", securedGet)
	r.Mux.Handle("DELETE /api/v1/auth/me", securedDelete)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
