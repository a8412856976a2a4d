package router

import (
	"net/http"
	"strings"

	_ "pet-adoption/docs"
	"pet-adoption/internal/adapters/media/s3"
	"pet-adoption/internal/adapters/storage/memory"
	"pet-adoption/internal/config"
	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/choices"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/regions"
	"pet-adoption/internal/domain/shelters"
	"pet-adoption/internal/domain/users"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config config.Config
	Logger logger.Logger

	// Opcional: si no viene, todo en memoria con las regiones por defecto.
	Repos *Repos

	// Vacío => modo dev: X-Debug-User-ID identifica al usuario.
	Verifiers []auth.AuthVerifier

	// Firebase e Issuer habilitan /v1/authentication/firebase/connect/.
	Firebase auth.AuthVerifier
	Issuer   users.TokenIssuer

	Limiter  choices.Limiter // puede ser nil
	Cache    regions.Cache   // puede ser nil
	Photos   pets.PhotoStore // nil con Repos => fotos deshabilitadas
	URLs     pets.URLResolver
	Notifier pets.StatusNotifier
}

func NewRouter(opts Options) http.Handler {
	cfg := opts.Config
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	repos := opts.Repos
	photos := opts.Photos
	if repos == nil {
		store := memory.NewStore()
		store.SeedDefaultRegions()
		repos = MemoryRepos(store)
		if photos == nil {
			photos = memory.NewPhotoStore()
		}
	}
	urls := opts.URLs
	if urls == nil {
		urls = s3.StaticURLs{BaseURL: cfg.Media.BaseURL}
	}

	// Services por módulo
	regionsSvc := regions.NewService(repos.Regions, log)
	if opts.Cache != nil {
		regionsSvc = regionsSvc.WithCache(opts.Cache, cfg.Redis.CacheTTL)
	}
	usersSvc := users.NewService(repos.Users)
	sheltersSvc := shelters.NewService(repos.Shelters).WithRegions(regionsSvc)

	petOpts := []pets.Option{pets.WithURLResolver(urls), pets.WithLogger(log)}
	if photos != nil {
		petOpts = append(petOpts, pets.WithPhotos(photos))
	}
	if opts.Notifier != nil {
		petOpts = append(petOpts, pets.WithNotifier(opts.Notifier))
	}
	petsSvc := pets.NewService(repos.Pets, petOpts...)
	choicesSvc := choices.NewService(repos.Choices, petsSvc)
	adoptionsSvc := adoptions.NewService(repos.Adoptions, petsSvc, log)

	cookie := middleware.ShelterCookie{Secure: cfg.Cookie.Secure}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.API.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.DebugUserHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if cfg.HTTP.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.HTTP.RequestTimeout))
	}

	r.Use(middleware.AuthContext(usersSvc, log, opts.Verifiers...))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/api/docs/*", httpSwagger.Handler(httpSwagger.URL("/api/docs/doc.json")))

	if mp, ok := photos.(*memory.PhotoStore); ok {
		r.Get("/media/*", mediaHandler(mp))
	}

	// Rutas de la app
	r.Group(func(v chi.Router) {
		if cfg.API.RateLimitRequests > 0 {
			v.Use(httprate.LimitByIP(cfg.API.RateLimitRequests, cfg.API.RateLimitWindow))
		}
		regions.RegisterRoutes(v, regionsSvc)
		shelters.RegisterRoutes(v, sheltersSvc)
		users.RegisterRoutes(v, usersSvc, opts.Firebase, opts.Issuer)
		pets.RegisterRoutes(v, petsSvc, regionsSvc, choicesSvc)
		choices.RegisterRoutes(v, choicesSvc, opts.Limiter)
		adoptions.RegisterRoutes(v, adoptionsSvc)
	})

	// Panel de refugios
	r.Route("/management", func(m chi.Router) {
		m.Use(middleware.ShelterContext(sheltersSvc, cookie, log))
		shelters.RegisterManagementRoutes(m, sheltersSvc, cookie)
		pets.RegisterManagementRoutes(m, petsSvc, cfg.S3.MaxUpload)
		adoptions.RegisterManagementRoutes(m, adoptionsSvc)
	})

	return r
}

// mediaHandler sirve las fotos guardadas en memoria (modo dev).
func mediaHandler(store *memory.PhotoStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, contentType, ok := store.Get(chi.URLParam(r, "*"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		_, _ = w.Write(body)
	}
}
