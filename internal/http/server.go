package httpapi

import (
	"net/http"

	"fitcoach-backend-go/internal/config"
	"fitcoach-backend-go/internal/metrics"
	"fitcoach-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type Server struct {
	Services *services.Services
	Config   config.Config
	Log      *zap.Logger
	Metrics  *metrics.Metrics
}

func NewServer(svc *services.Services, cfg config.Config, log *zap.Logger, m *metrics.Metrics) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		Services: svc,
		Config:   cfg,
		Log:      log,
		Metrics:  m,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.RequestLogger)
	r.Use(middleware.Recoverer)
	if s.Metrics != nil {
		r.Use(s.Metrics.HTTPMetrics)
	}
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Disposition"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", s.Health)
		api.Post("/auth/register", s.Register)
		api.Post("/auth/login", s.Login)
		api.Get("/workouts/csv-template", s.CSVTemplate)

		// downloads are linked from <img> tags, so the token may ride in ?auth=
		api.With(s.WithAuth(true)).Get("/files/*", s.FileContent)

		api.Group(func(p chi.Router) {
			p.Use(s.WithAuth(false))

			p.Get("/auth/me", s.Me)
			p.Put("/profile", s.UpdateProfile)
			p.Put("/profile/password", s.ChangePassword)
			p.Get("/settings", s.GetSettings)
			p.Put("/settings", s.UpdateSettings)

			p.Route("/athletes", func(athletes chi.Router) {
				athletes.Post("/", s.CreateAthlete)
				athletes.Get("/", s.ListAthletes)
				athletes.Get("/{athleteId}", s.GetAthlete)
				athletes.Delete("/{athleteId}", s.DeleteAthlete)
			})

			p.Route("/workouts", func(workouts chi.Router) {
				workouts.Post("/", s.CreateWorkout)
				workouts.Get("/", s.ListWorkouts)
				workouts.Post("/csv", s.ImportWorkouts)
				workouts.Get("/{workoutId}", s.GetWorkout)
				workouts.Put("/{workoutId}", s.UpdateWorkout)
				workouts.Delete("/{workoutId}", s.DeleteWorkout)
			})

			p.Route("/tests", func(tests chi.Router) {
				tests.Post("/", s.CreateTest)
				tests.Get("/", s.ListTests)
				tests.Get("/history", s.TestHistory)
				tests.Put("/{testId}", s.UpdateTest)
				tests.Delete("/{testId}", s.DeleteTest)
			})

			p.Get("/analytics/summary", s.AnalyticsSummary)
			p.Get("/analytics/progress", s.AnalyticsProgress)

			p.Post("/upload", s.Upload)
			p.Delete("/files/*", s.DeleteFile)
		})
	})
	return r
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
