package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/langarchive/internal/adapter/postgres"
	commentrepo "github.com/heartmarshall/langarchive/internal/adapter/postgres/comment"
	entryrepo "github.com/heartmarshall/langarchive/internal/adapter/postgres/entry"
	favoriterepo "github.com/heartmarshall/langarchive/internal/adapter/postgres/favorite"
	ratingrepo "github.com/heartmarshall/langarchive/internal/adapter/postgres/rating"
	recentviewrepo "github.com/heartmarshall/langarchive/internal/adapter/postgres/recentview"
	userrepo "github.com/heartmarshall/langarchive/internal/adapter/postgres/user"
	"github.com/heartmarshall/langarchive/internal/auth"
	"github.com/heartmarshall/langarchive/internal/config"
	"github.com/heartmarshall/langarchive/internal/domain"
	"github.com/heartmarshall/langarchive/internal/service/aggregation"
	authsvc "github.com/heartmarshall/langarchive/internal/service/auth"
	"github.com/heartmarshall/langarchive/internal/service/enrichment"
	"github.com/heartmarshall/langarchive/internal/service/entry"
	"github.com/heartmarshall/langarchive/internal/service/social"
	"github.com/heartmarshall/langarchive/internal/transport/middleware"
	"github.com/heartmarshall/langarchive/internal/transport/rest"
)

// AudioStore persists uploaded audio and returns a stored reference.
type AudioStore interface {
	Save(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}

// AIClient is the text-generation collaborator.
type AIClient interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string, schema domain.OutputSchema) (json.RawMessage, error)
	Configured() bool
}

// Deps are the external collaborators the HTTP surface is built on.
type Deps struct {
	Pool       *pgxpool.Pool
	Audio      AudioStore
	AI         AIClient
	UploadsDir string
	Version    string
}

// NewHTTPHandler wires repositories, services and handlers into the router.
func NewHTTPHandler(cfg *config.Config, deps Deps, limiter *middleware.RateLimiter, logger *slog.Logger) http.Handler {
	// Repositories.
	users := userrepo.New(deps.Pool)
	entries := entryrepo.New(deps.Pool)
	ratings := ratingrepo.New(deps.Pool)
	favorites := favoriterepo.New(deps.Pool)
	views := recentviewrepo.New(deps.Pool)
	comments := commentrepo.New(deps.Pool)
	txm := postgres.NewTxManager(deps.Pool)

	// Services.
	jwtMgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	authService := authsvc.NewService(logger, users, jwtMgr, cfg.Auth)
	socialService := social.NewService(logger, favorites, views, comments, cfg.Entries.RecentViewsLimit)
	entryService := entry.NewService(logger, entries, deps.Audio, socialService, txm)
	aggregationService := aggregation.NewService(logger, entries, ratings, txm)
	enrichmentService := enrichment.NewService(logger, deps.AI, entries)

	// Handlers.
	var audioURL func(ref string) string
	if deps.UploadsDir != "" {
		audioURL = rest.PublicAudioURL(uploadsPath(cfg.Storage.PublicPath))
	}

	handlers := rest.Handlers{
		Auth:        rest.NewAuthHandler(authService, logger),
		Entries:     rest.NewEntryHandler(entryService, audioURL, cfg.Entries.MaxUploadBytes, logger),
		Aggregation: rest.NewAggregationHandler(aggregationService, logger),
		Social:      rest.NewSocialHandler(socialService, audioURL, logger),
		Enrichment:  rest.NewEnrichmentHandler(enrichmentService, logger),
		Health:      rest.NewHealthHandler(deps.Pool, deps.AI, deps.Version),
	}

	return rest.NewRouter(handlers, authService, limiter, rest.RouterConfig{
		CORS:        cfg.CORS,
		RateLimit:   cfg.RateLimit,
		UploadsDir:  deps.UploadsDir,
		UploadsPath: uploadsPath(cfg.Storage.PublicPath),
	}, logger)
}

func uploadsPath(p string) string {
	return "/" + strings.Trim(p, "/")
}
