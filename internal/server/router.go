package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
	"github.com/lexirealty/homestead/internal/auth"
	"github.com/lexirealty/homestead/internal/enrich"
	"github.com/lexirealty/homestead/internal/models"
	"github.com/lexirealty/homestead/internal/redisx"
	"github.com/lexirealty/homestead/internal/repository"
)

// ContactSender relays contact-form submissions.
type ContactSender interface {
	Send(ctx context.Context, msg models.ContactMessage) error
}

// IdentityClient talks to the hosted identity provider.
type IdentityClient interface {
	SignUp(ctx context.Context, email, password string) (auth.Session, error)
	SignIn(ctx context.Context, email, password string) (auth.Session, error)
}

// ImageUploader stores binary images and returns public URLs.
type ImageUploader interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error)
}

// Deps carries everything the API handlers need. Cache, Coordinator,
// Searcher, Mailer, Auth and Images may each be nil; the corresponding
// feature then degrades or answers 503.
type Deps struct {
	Log         *slog.Logger
	Repo        repository.Interface
	Cache       *redisx.Client
	CacheTTL    time.Duration
	Coordinator *enrich.Coordinator
	Searcher    enrich.PlaceSearcher
	EnrichWait  time.Duration
	Mailer      ContactSender
	Auth        IdentityClient
	Images      ImageUploader
}

// NewRouter builds the public API router.
func NewRouter(deps Deps) http.Handler {
	router := chi.NewRouter()
	router.Use(httprate.LimitByIP(100, 1*time.Minute)) // protect upstream quotas
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	router.Route("/api", func(api chi.Router) {
		registerListings(api, deps)
		registerArticles(api, deps)
		registerForms(api, deps)
	})

	return router
}

func renderError(w http.ResponseWriter, r *http.Request, status int, code string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]any{"error": code})
}
