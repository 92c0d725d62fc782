package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/edsu-house/edsu-backend/api/controllers"
	"github.com/edsu-house/edsu-backend/api/middleware"
	articlesvc "github.com/edsu-house/edsu-backend/internal/articles"
	artistsvc "github.com/edsu-house/edsu-backend/internal/artists"
	authsvc "github.com/edsu-house/edsu-backend/internal/auth"
	beemsvc "github.com/edsu-house/edsu-backend/internal/beem"
	mediasvc "github.com/edsu-house/edsu-backend/internal/media"
	tbytsvc "github.com/edsu-house/edsu-backend/internal/mediatbyt"
	programsvc "github.com/edsu-house/edsu-backend/internal/programs"
	uimediasvc "github.com/edsu-house/edsu-backend/internal/uimedia"
	uploadsvc "github.com/edsu-house/edsu-backend/internal/uploads"
	usersvc "github.com/edsu-house/edsu-backend/internal/users"
	"github.com/edsu-house/edsu-backend/pkg/config"
	"github.com/edsu-house/edsu-backend/pkg/enums"
	"github.com/edsu-house/edsu-backend/pkg/logger"
	"github.com/edsu-house/edsu-backend/pkg/metrics"
	"github.com/edsu-house/edsu-backend/pkg/redis"
)

// Services bundles everything the router hands to controllers.
type Services struct {
	Auth      authsvc.Service
	Users     usersvc.Service
	Media     mediasvc.Service
	Artists   artistsvc.Service
	Articles  articlesvc.Service
	Programs  programsvc.Service
	Books     beemsvc.Service
	UIMedia   uimediasvc.Service
	MediaTBYT tbytsvc.Service
	Uploads   uploadsvc.Service
}

// Dependencies carries the infrastructure the router needs beyond services.
type Dependencies struct {
	Redis       *redis.Client
	HTTPMetrics *metrics.HTTPMetrics
	Registry    prometheus.Gatherer
	Readiness   []controllers.DependencyCheck
}

// NewRouter assembles the full HTTP surface. Reads are public; mutations
// require a bearer token, user administration additionally the admin role.
func NewRouter(cfg *config.Config, logg *logger.Logger, svcs Services, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
	)

	r.Get("/healthz", controllers.HealthLive())
	r.Get("/readyz", controllers.HealthReady(logg, deps.Readiness...))
	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Registry))
	}

	authed := middleware.Auth(cfg.JWT, logg)
	adminOnly := middleware.RequireRole(enums.UserRoleAdmin.String(), logg)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.Login(svcs.Auth, logg))
			r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.Register(svcs.Auth, logg))
			r.With(authed).Get("/me", controllers.Me(svcs.Auth, logg))
		})

		r.Route("/programs", func(r chi.Router) {
			r.Get("/", controllers.ListPrograms(svcs.Programs, logg))
			r.Get("/{id}", controllers.GetProgram(svcs.Programs, logg))
			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Post("/", controllers.CreateProgram(svcs.Programs, logg))
				r.Put("/{id}", controllers.UpdateProgram(svcs.Programs, logg))
				r.Delete("/{id}", controllers.DeleteProgram(svcs.Programs, logg))
			})
		})

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", controllers.ListArticles(svcs.Articles, logg))
			r.Get("/{id}", controllers.GetArticle(svcs.Articles, logg))
			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Post("/", controllers.CreateArticle(svcs.Articles, logg))
				r.Put("/{id}", controllers.UpdateArticle(svcs.Articles, logg))
				r.Delete("/{id}", controllers.DeleteArticle(svcs.Articles, logg))
			})
		})

		r.Route("/media", func(r chi.Router) {
			r.Get("/", controllers.ListMedia(svcs.Media, logg))
			r.Get("/{id}", controllers.GetMedia(svcs.Media, logg))
			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Post("/", controllers.CreateMedia(svcs.Media, logg))
				r.Patch("/hero", controllers.SetHeroMedia(svcs.Media, logg))
				r.Patch("/{id}", controllers.UpdateMedia(svcs.Media, logg))
				r.Delete("/{id}", controllers.DeleteMedia(svcs.Media, logg))
			})
		})

		r.Route("/artists", func(r chi.Router) {
			r.Get("/", controllers.ListArtists(svcs.Artists, logg))
			r.Get("/{id}", controllers.GetArtist(svcs.Artists, logg))
			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Post("/", controllers.CreateArtist(svcs.Artists, logg))
				r.Patch("/{id}", controllers.UpdateArtist(svcs.Artists, logg))
				r.Delete("/{id}", controllers.DeleteArtist(svcs.Artists, logg))
			})
		})

		r.Route("/be-em", func(r chi.Router) {
			r.Get("/", controllers.ListBooks(svcs.Books, logg))
			r.Get("/{id}", controllers.GetBook(svcs.Books, logg))
			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Post("/", controllers.CreateBook(svcs.Books, logg))
				r.Put("/{id}", controllers.UpdateBook(svcs.Books, logg))
				r.Delete("/{id}", controllers.DeleteBook(svcs.Books, logg))
			})
		})

		r.Route("/media-tbyt", func(r chi.Router) {
			r.Get("/", controllers.ListMediaTBYT(svcs.MediaTBYT, logg))
			r.Get("/{id}", controllers.GetMediaTBYT(svcs.MediaTBYT, logg))
			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Post("/", controllers.CreateMediaTBYT(svcs.MediaTBYT, logg))
				r.Put("/{id}", controllers.UpdateMediaTBYT(svcs.MediaTBYT, logg))
				r.Delete("/{id}", controllers.DeleteMediaTBYT(svcs.MediaTBYT, logg))
			})
		})

		r.Route("/ui-media", func(r chi.Router) {
			r.Get("/", controllers.ListUIMedia(svcs.UIMedia, logg))
			r.Get("/by-location/{locationId}", controllers.GetUIMediaByLocation(svcs.UIMedia, logg))
			r.Get("/{id}", controllers.GetUIMedia(svcs.UIMedia, logg))
			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Post("/", controllers.UploadUIMedia(svcs.UIMedia, logg))
				r.Put("/{id}", controllers.UpdateUIMedia(svcs.UIMedia, logg))
				r.Delete("/{id}", controllers.DeleteUIMedia(svcs.UIMedia, logg))
			})
		})

		r.Route("/upload", func(r chi.Router) {
			r.Use(authed)
			r.Post("/", controllers.UploadMedia(svcs.Uploads, logg))
			r.Post("/presign", controllers.PresignUpload(svcs.Uploads, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.Register(svcs.Auth, logg))
			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Get("/me/current", controllers.Me(svcs.Auth, logg))
				r.Get("/{id}", controllers.GetUser(svcs.Users, logg))
				r.Put("/{id}", controllers.UpdateUser(svcs.Users, logg))
				r.Group(func(r chi.Router) {
					r.Use(adminOnly)
					r.Get("/", controllers.ListUsers(svcs.Users, logg))
					r.Post("/", controllers.CreateUser(svcs.Users, logg))
					r.Delete("/{id}", controllers.DeleteUser(svcs.Users, logg))
				})
			})
		})
	})

	return r
}
