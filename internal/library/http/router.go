package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/library/internal/library/service"
	"github.com/aussiebroadwan/library/internal/library/store"
	"github.com/aussiebroadwan/library/pkg/httpx"
	"github.com/aussiebroadwan/library/pkg/slogx"

	_ "github.com/aussiebroadwan/library/api/library" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	AuthService *service.AuthService
	BookService *service.BookService

	// PublicDir is served for every path that is not an API route. Empty
	// disables static serving.
	PublicDir string
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.RecoverMiddleware(),
	}

	return r
}

// Use appends middleware to the global chain. The first middleware added
// runs outermost.
func (r *Router) Use(mws ...httpx.Middleware) {
	r.middlewares = append(r.middlewares, mws...)
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerBooks()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	// Anything under /api/ that nothing above claimed.
	r.Mux.HandleFunc("/api/", APINotFoundHandler)

	if r.PublicDir != "" {
		r.Mux.Handle("/", StaticHandler(r.PublicDir))
	}
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Library Catalog API
//	@version		0.1.0
//	@description	User registration and login with bearer session tokens, and a CRUD catalog of books.
//	@description
//	@description				Session tokens are HS256 JWTs valid for eight hours.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/library
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:5000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token from /api/auth/login. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	r.Mux.Handle("POST /api/auth/register", &RegisterHandler{AuthService: r.AuthService})
	r.Mux.Handle("POST /api/auth/login", &LoginHandler{AuthService: r.AuthService})
}

func (r *Router) registerBooks() {
	h := &BooksHandler{BookService: r.BookService}
	authn := httpx.AuthnMiddleware(r.AuthService)

	r.Mux.HandleFunc("GET /api/books", h.HandleList)
	r.Mux.HandleFunc("GET /api/books/{id}", h.HandleGet)

	r.Mux.Handle("POST /api/books/add", httpx.Chain(http.HandlerFunc(h.HandleAdd), authn))
	r.Mux.Handle("PUT /api/books/update/{id}", httpx.Chain(http.HandlerFunc(h.HandleUpdate), authn))
	r.Mux.Handle("DELETE /api/books/delete/{id}", httpx.Chain(http.HandlerFunc(h.HandleDelete), authn))
}

func (r *Router) registerSystem() {
	r.Mux.HandleFunc("GET /test", SmokeTestHandler)
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.AuthService))
}
