package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/langarchive/internal/config"
	"github.com/heartmarshall/langarchive/internal/transport/middleware"
	"github.com/heartmarshall/langarchive/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (ctxutil.Identity, error)
}

// Handlers groups every REST handler mounted by NewRouter.
type Handlers struct {
	Auth        *AuthHandler
	Entries     *EntryHandler
	Aggregation *AggregationHandler
	Social      *SocialHandler
	Enrichment  *EnrichmentHandler
	Health      *HealthHandler
}

// RouterConfig holds transport-level settings. An empty UploadsDir disables
// serving uploaded audio.
type RouterConfig struct {
	CORS        config.CORSConfig
	RateLimit   config.RateLimitConfig
	UploadsDir  string
	UploadsPath string
}

// NewRouter builds the HTTP surface.
func NewRouter(h Handlers, tokens tokenValidator, limiter *middleware.RateLimiter, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	requireAuth := middleware.RequireAuth(tokens)
	optionalAuth := middleware.OptionalAuth(tokens)
	authLimit := limiter.Limit("auth", cfg.RateLimit.AuthPerMinute)
	aiLimit := limiter.Limit("ai", cfg.RateLimit.AIPerMinute)

	r.Get("/live", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	r.Get("/health", h.Health.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Use(authLimit)
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/me", h.Auth.Me)
		r.Get("/me/favorites", h.Social.Favorites)
		r.Get("/me/recent", h.Social.Recent)
		r.Post("/comments/{id}/upvote", h.Social.UpvoteComment)
	})

	r.Route("/entries", func(r chi.Router) {
		r.Get("/", h.Entries.List)
		r.With(optionalAuth).Post("/", h.Entries.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.With(optionalAuth).Get("/", h.Entries.Get)
			r.Post("/upvote", h.Aggregation.Upvote)
			r.Post("/unupvote", h.Aggregation.Unupvote)
			r.Get("/comments", h.Social.Comments)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Put("/", h.Entries.Update)
				r.Delete("/", h.Entries.Delete)
				r.Post("/rate", h.Aggregation.Rate)
				r.Post("/favorite", h.Social.Favorite)
				r.Post("/unfavorite", h.Social.Unfavorite)
				r.Post("/comments", h.Social.AddComment)
				r.With(aiLimit).Post("/generate-sentences", h.Enrichment.GenerateSentences)
			})
		})
	})

	r.With(aiLimit).Post("/ai/enrich", h.Enrichment.Enrich)

	r.Get("/word-of-day", h.Entries.WordOfDay)
	r.Get("/export/csv", h.Entries.ExportCSV)
	r.Get("/public/{token}", h.Entries.Public)

	if cfg.UploadsDir != "" {
		prefix := "/" + strings.Trim(cfg.UploadsPath, "/")
		files := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(cfg.UploadsDir)))
		r.Get(prefix+"/*", files.ServeHTTP)
	}

	return r
}
