package httpapi

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/alexsalminskiy/cryptoschool-sub000/internal/config"
	"github.com/alexsalminskiy/cryptoschool-sub000/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
)

// Uploader is the slice of the object-storage client the upload handler needs.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, size int64, reader io.Reader) (string, error)
}

type Server struct {
	DB         *sqlx.DB
	Config     config.Config
	Tokens     services.TokenService
	Translator *services.Translator
	StatsHub   *services.StatsHub
	Storage    Uploader
}

func NewServer(db *sqlx.DB, cfg config.Config, hub *services.StatsHub, store Uploader) *Server {
	tokens := services.TokenService{
		Secret:     []byte(cfg.JWTSecret),
		Issuer:     cfg.JWTIssuer,
		AccessTTL:  time.Duration(cfg.AccessTTLSeconds) * time.Second,
		RefreshTTL: time.Duration(cfg.RefreshTTLSeconds) * time.Second,
	}
	return &Server{
		DB:         db,
		Config:     cfg,
		Tokens:     tokens,
		Translator: services.NewTranslator(cfg.TranslateAPIURL, cfg.TranslateAPIKey, cfg.TranslateModel),
		StatsHub:   hub,
		Storage:    store,
	}
}

func (s *Server) Router(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", s.Register)
		api.Post("/auth/login", s.Login)
		api.Post("/auth/refresh", s.Refresh)
		api.Post("/auth/logout", s.Logout)

		api.Route("/me", func(me chi.Router) {
			me.With(s.OptionalAuth).Get("/access", s.AccessCheck)
			me.Group(func(g chi.Router) {
				g.Use(s.WithAuth)
				g.Get("/", s.Me)
				g.Get("/approval", s.ApprovalStatus)
			})
		})

		api.Route("/articles", func(articles chi.Router) {
			articles.Get("/", s.ListArticles)
			articles.With(s.OptionalAuth, GateMember).Get("/{slug}", s.PublicArticle)
			articles.Group(func(g chi.Router) {
				g.Use(s.WithAuth, GateAdmin)
				g.Post("/", s.CreateArticle)
				g.Put("/", s.UpdateArticle)
				g.Delete("/", s.DeleteArticle)
				g.Get("/by-id/{articleId}", s.ArticleForEdit)
			})
		})

		api.Route("/users", func(users chi.Router) {
			users.Use(s.WithAuth, GateAdmin)
			users.Get("/", s.ListProfiles)
			users.Put("/", s.UpdateProfile)
			users.Delete("/", s.DeleteProfile)
		})

		api.With(s.WithAuth, GateAdmin).Get("/stats", s.Stats)
		api.With(s.WithAuth, GateAdmin).Get("/admin/stats/history", s.StatsHistory)
		api.With(s.WithAuth, GateAdmin).Post("/upload", s.Upload)

		api.Post("/translate", s.Translate)
		api.Post("/editor/apply", s.EditorApply)

		api.Post("/visits", s.TrackVisit)
		api.Get("/visits/count", s.VisitCount)
	})

	r.Get("/ws/admin/stats", s.StatsSocket)
	return r
}
