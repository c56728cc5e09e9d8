package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AnshRaj112/portfolio-backend/internal/apperrors"
	"github.com/AnshRaj112/portfolio-backend/internal/handlers"
	"github.com/AnshRaj112/portfolio-backend/internal/logger"
	"github.com/AnshRaj112/portfolio-backend/internal/middleware"
)

// RouterOptions configures the outer middleware stack.
type RouterOptions struct {
	AllowedOrigins []string
	AllowedHosts   []string
	Development    bool
}

// NewRouter builds the full HTTP surface.
func NewRouter(h *handlers.Handler, authn middleware.Authenticator, log *logger.Logger, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.TraceID(log))
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.PrometheusMiddleware)
	r.Use(middleware.NewSecure(middleware.SecureOptions(opts.Development, opts.AllowedHosts)))
	r.Use(middleware.CORS(opts.AllowedOrigins))

	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/media/*", h.ServeMedia)

	r.Route("/api/v1", func(r chi.Router) {
		SetupRoutes(r, h, middleware.RequireAuth(authn, handlers.WriteError))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, r, errRouteNotFound)
	})
	return r
}

// SetupRoutes mounts the versioned API. auth guards the owner-only routes.
func SetupRoutes(r chi.Router, h *handlers.Handler, auth func(http.Handler) http.Handler) {
	r.Route("/message", func(r chi.Router) {
		r.Post("/send", h.SendMessage)
		r.Get("/getAll", h.GetAllMessages)
		r.With(auth).Get("/getById/{id}", h.GetMessage)
		r.With(auth).Delete("/delete/{id}", h.DeleteMessage)
	})

	r.Route("/user", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(auth).Get("/logout", h.Logout)
		r.With(auth).Get("/profile", h.Profile)
		r.With(auth).Put("/profile/update", h.UpdateProfile)
		r.With(auth).Put("/profile/updatePassword", h.UpdatePassword)
		r.Get("/profile/portfolio", h.Portfolio)
		r.Post("/forgotPassword", h.ForgotPassword)
		r.Put("/resetPassword/{token}", h.ResetPassword)
	})

	r.Route("/projects", func(r chi.Router) {
		r.With(auth).Post("/add", h.AddProject)
		r.Get("/getAll", h.GetAllProjects)
		r.Get("/getById/{id}", h.GetProject)
		r.With(auth).Put("/update/{id}", h.UpdateProject)
		r.With(auth).Delete("/delete/{id}", h.DeleteProject)
	})

	r.Route("/skills", func(r chi.Router) {
		r.With(auth).Post("/add", h.AddSkill)
		r.Get("/getAll", h.GetAllSkills)
		r.Get("/getById/{id}", h.GetSkill)
		r.With(auth).Put("/update/{id}", h.UpdateSkill)
		r.With(auth).Delete("/delete/{id}", h.DeleteSkill)
	})

	r.Route("/timelines", func(r chi.Router) {
		r.With(auth).Post("/add", h.AddTimeline)
		r.Get("/getAll", h.GetAllTimelines)
		r.Get("/getById/{id}", h.GetTimeline)
		r.With(auth).Put("/update/{id}", h.UpdateTimeline)
		r.With(auth).Delete("/delete/{id}", h.DeleteTimeline)
	})

	r.Route("/softwareApps", func(r chi.Router) {
		r.With(auth).Post("/add", h.AddSoftwareApp)
		r.Get("/getAll", h.GetAllSoftwareApps)
		r.Get("/getById/{id}", h.GetSoftwareApp)
		r.With(auth).Put("/update/{id}", h.UpdateSoftwareApp)
		r.With(auth).Delete("/delete/{id}", h.DeleteSoftwareApp)
	})
}

var errRouteNotFound = apperrors.NotFound("Route not found")
