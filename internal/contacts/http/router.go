package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/contacts/internal/contacts/domain"
	"github.com/aussiebroadwan/contacts/internal/contacts/service"
	"github.com/aussiebroadwan/contacts/internal/contacts/store"
	"github.com/aussiebroadwan/contacts/pkg/contactsdk"
	"github.com/aussiebroadwan/contacts/pkg/httpx"
	"github.com/aussiebroadwan/contacts/pkg/jwtx"
	"github.com/aussiebroadwan/contacts/pkg/slogx"

	_ "github.com/aussiebroadwan/contacts/api/contacts" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// RateLimits holds the rate limit profile applied to each class of route.
type RateLimits struct {
	Strict   httpx.RateLimitConfig // register, login
	Moderate httpx.RateLimitConfig // authenticated routes
	Lenient  httpx.RateLimitConfig // health probes
	Public   httpx.RateLimitConfig // JWKS
}

// DefaultRateLimits returns the profiles defined by httpx.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Strict:   httpx.StrictLimit,
		Moderate: httpx.ModerateLimit,
		Lenient:  httpx.LenientLimit,
		Public:   httpx.PublicLimit,
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	Limits          RateLimits
	UserService     *service.UserService
	SessionService  *service.SessionService
	ContactService  *service.ContactService
	SignerReadiness func() bool
}

func NewRouter(
	keys *jwtx.KeySet,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		Limits:       DefaultRateLimits(),
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// route is one entry of the routing table. Authenticated routes get the
// session middleware and a per-user rate limit; the rest are limited by IP.
type route struct {
	method  string
	pattern string
	auth    bool
	limit   httpx.Middleware
	handler http.Handler
}

func (r *Router) routes() []route {
	users := &UserHandler{Users: r.UserService}
	contacts := &ContactHandler{Contacts: r.ContactService}

	return []route{
		{http.MethodPost, "/api/users", false, httpx.RateLimitByIP(r.Limits.Strict), serve(users.Register)},
		{http.MethodPost, "/api/users/login", false, httpx.RateLimitByIPAndJSONField(r.Limits.Strict, "username"), serve(users.Login)},
		{http.MethodGet, "/api/users/current", true, httpx.RateLimitBySubject(r.Limits.Moderate), serve(users.Current)},
		{http.MethodPatch, "/api/users/current", true, httpx.RateLimitBySubject(r.Limits.Moderate), serve(users.Update)},
		{http.MethodDelete, "/api/users/current", true, httpx.RateLimitBySubject(r.Limits.Moderate), serve(users.Logout)},

		{http.MethodPost, "/api/contacts", true, httpx.RateLimitBySubject(r.Limits.Moderate), serve(contacts.Create)},
		{http.MethodGet, "/api/contacts/{id}", true, httpx.RateLimitBySubject(r.Limits.Moderate), serve(contacts.Get)},
		{http.MethodPut, "/api/contacts/{id}", true, httpx.RateLimitBySubject(r.Limits.Moderate), serve(contacts.Update)},
		{http.MethodDelete, "/api/contacts/{id}", true, httpx.RateLimitBySubject(r.Limits.Moderate), serve(contacts.Remove)},

		{http.MethodGet, "/livez", false, httpx.RateLimitByIP(r.Limits.Lenient), LivezHandler(r.startTime, r.buildVersion)},
		{http.MethodGet, "/readyz", false, httpx.RateLimitByIP(r.Limits.Lenient), ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signerReady)},
		{http.MethodGet, "/.well-known/jwks.json", false, httpx.RateLimitByIP(r.Limits.Public), JWKSHandler(r.keys)},
	}
}

func (r *Router) ApplyRoutes() {
	authn := httpx.AuthnMiddleware[domain.User](r.SessionService.Authenticate, http.HandlerFunc(unauthorized))

	for _, rt := range r.routes() {
		// The subject limiter must run after authentication to see the user.
		mws := []httpx.Middleware{rt.limit}
		if rt.auth {
			mws = []httpx.Middleware{authn, rt.limit}
		}
		r.Mux.Handle(rt.method+" "+rt.pattern, httpx.Chain(rt.handler, mws...))
	}

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

func (r *Router) signerReady() bool {
	if r.SignerReadiness == nil {
		return true
	}
	return r.SignerReadiness()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Contacts Service API
//	@version		0.1.0
//	@description	Multi-tenant contact management. Users register and log in to obtain a session token,
//	@description	then manage their own contacts. Every contact is visible only to the user who created it.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/contacts
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token from login. Format: "Bearer {token}" or the bare token.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handlerFunc is the shape of every API handler. The authenticated user is
// the zero value on public routes. The returned payload is wrapped in the
// {"data": ...} envelope.
type handlerFunc func(r *http.Request, user domain.User) (any, error)

type envelope struct {
	Data any `json:"data"`
}

func serve(fn handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := httpx.PrincipalFrom[domain.User](r.Context())

		data, err := fn(r, user)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, envelope{Data: data})
	})
}

func unauthorized(w http.ResponseWriter, _ *http.Request) {
	httpx.SetBearerChallenge(w)
	contactsdk.ErrUnauthorized.WriteError(w)
}
