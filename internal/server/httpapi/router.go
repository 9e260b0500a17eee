// Package httpapi exposes the user and todo services over HTTP with chi.
// Routes live under /api/v1; /health and /metrics sit at the root.
package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/pagination"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.TokenPair, error)
	Login(ctx context.Context, login, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, presented string) (*services.TokenPair, error)
	CheckUser(ctx context.Context, login string) error
}

type TodoService interface {
	Create(ctx context.Context, ownerID string, in services.CreateTodoInput) (*models.Todo, error)
	Get(ctx context.Context, ownerID, id string) (*models.Todo, error)
	Update(ctx context.Context, ownerID, id string, in services.UpdateTodoInput) (*models.Todo, error)
	Delete(ctx context.Context, ownerID, id string) error
	ListCursor(ctx context.Context, req pagination.Cursor) ([]*models.Todo, error)
	ListOffset(ctx context.Context, req pagination.Offset) ([]*models.Todo, error)
}

// Pinger reports whether storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Users    UserService
	Todos    TodoService
	Verifier TokenVerifier
	Pages    pagination.Defaults
	Health   Pinger
	Metrics  *Metrics
	Log      logging.Logger
}

type handler struct {
	users   UserService
	todos   TodoService
	pages   pagination.Defaults
	health  Pinger
	metrics *Metrics
	log     logging.Logger
}

func NewRouter(d Deps) http.Handler {
	if d.Metrics == nil {
		d.Metrics = NewMetrics()
	}
	h := &handler{
		users:   d.Users,
		todos:   d.Todos,
		pages:   d.Pages,
		health:  d.Health,
		metrics: d.Metrics,
		log:     d.Log,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(d.Log))
	r.Use(d.Metrics.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.healthCheck)
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.With(requireToken(d.Verifier, auth.RefreshToken, d.Log)).Post("/refresh-token", h.refreshToken)
			r.Post("/check-user", h.checkUser)
		})

		r.Route("/todos", func(r chi.Router) {
			r.Use(requireToken(d.Verifier, auth.AccessToken, d.Log))

			r.Post("/", h.createTodo)
			r.Get("/byId/{id}", h.getTodo)
			r.Get("/offset", h.listTodosOffset)
			r.Get("/cursor", h.listTodosCursor)
			r.Patch("/{id}", h.updateTodo)
			r.Delete("/{id}", h.deleteTodo)
		})
	})

	return r
}

func (h *handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Ping(r.Context()); err != nil {
			h.log.Warn(r.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
