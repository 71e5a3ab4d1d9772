package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/eventmanager/server/internal/api/handlers"
	"github.com/eventmanager/server/internal/api/middleware"
	"github.com/eventmanager/server/internal/auth"
	"github.com/eventmanager/server/internal/config"
	"github.com/eventmanager/server/internal/domain/events"
	"github.com/eventmanager/server/internal/domain/users"
	"github.com/eventmanager/server/internal/metrics"
	"github.com/eventmanager/server/internal/storage"
	"github.com/eventmanager/server/internal/storage/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, pool *pgxpool.Pool) (http.Handler, error) {
	repo, err := postgres.NewRepository(pool)
	if err != nil {
		return nil, err
	}
	return buildRouter(cfg, logger, repo, handlers.Readyz(pool)), nil
}

// buildRouter wires routes against an abstract repository so tests can
// substitute an in-memory implementation.
func buildRouter(cfg config.Config, logger zerolog.Logger, repo storage.Repository, readyz http.Handler) http.Handler {
	usersService := users.NewService(repo, cfg.Auth.BcryptCost, logger)
	eventsService := events.NewService(repo, logger)
	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.JWTIssuer)

	authHandler := handlers.NewAuthHandler(usersService, tokens, cfg.Environment)
	eventsHandler := handlers.NewEventsHandler(eventsService, cfg.Environment)

	authorize := middleware.Authorize(tokens)
	loginLimit := middleware.LoginRateLimit(cfg.RateLimit.LoginPerMinute)

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", readyz)
	mux.Handle("/metrics", metrics.Handler())

	mux.Handle("/signup", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Signup),
	}))
	mux.Handle("/login", methodMux(map[string]http.Handler{
		http.MethodPost: loginLimit(http.HandlerFunc(authHandler.Login)),
	}))
	mux.Handle("/api/saveEvent", methodMux(map[string]http.Handler{
		http.MethodPost: authorize(http.HandlerFunc(eventsHandler.Save)),
	}))
	mux.Handle("/api/user/events", methodMux(map[string]http.Handler{
		http.MethodGet: authorize(http.HandlerFunc(eventsHandler.List)),
	}))

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORS, logger)(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
