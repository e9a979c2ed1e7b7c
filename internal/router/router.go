package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/amberbeaumont/IThelpdesklite/internal/app"
	"github.com/amberbeaumont/IThelpdesklite/internal/config"
	"github.com/amberbeaumont/IThelpdesklite/internal/handlers"
	"github.com/amberbeaumont/IThelpdesklite/internal/middleware"
	"github.com/amberbeaumont/IThelpdesklite/internal/models"
	"github.com/amberbeaumont/IThelpdesklite/internal/service"
)

func New(log zerolog.Logger, cfg config.Config, st *app.Stores) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{"Content-Disposition", "X-Total-Count", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(cfg.RateLimit, time.Minute))

	// Health
	r.Get("/healthz", handlers.Health())
	r.Get("/readyz", handlers.Ready(st.Ping))
	r.Handle("/metrics", promhttp.Handler())

	// Services + handlers
	authSvc := service.NewAuthService(st.Users, cfg.SessionSecret)
	reportSvc := service.NewReportService(log, st.Tickets, st.Equipment, st.Users, service.ReportOptions{
		Locale:   cfg.Locale(),
		Location: cfg.Location(),
	})
	ah := handlers.NewAuthHTTP(authSvc, st.Users, cfg.Env != "dev").OnLogout(reportSvc.DropSession)
	th := handlers.NewTicketHTTP(st.Tickets, st.Users)
	uh := handlers.NewUserHTTP(st.Users)
	eh := handlers.NewEquipmentHTTP(st.Equipment, cfg.Location())
	rh := handlers.NewReportsHTTP(reportSvc)

	admin := middleware.RequireRoles(models.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.WithAuth(log, cfg))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", ah.Register())
			r.Post("/login", ah.Login())
			r.Post("/logout", ah.Logout())
			r.With(middleware.RequireAuth).Get("/me", ah.Me())
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Route("/tickets", func(r chi.Router) {
				r.Get("/", th.List())
				r.Post("/", th.Create())
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", th.Get())
					r.With(middleware.RequireSupport).Patch("/", th.Update())
					r.With(middleware.RequireSupport).Delete("/", th.Delete())
					r.Post("/comments", th.AddComment())
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.With(middleware.RequireSupport).Get("/", uh.List())
				r.With(middleware.RequireSupport).Get("/{id}", uh.Get())
				r.With(admin).Patch("/{id}/role", uh.UpdateRole())
				r.With(middleware.RequireSelfOrRoles(models.RoleAdmin)).Patch("/{id}/basic", uh.UpdateBasic())
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSupport)

				r.Route("/equipment", func(r chi.Router) {
					r.Get("/", eh.List())
					r.Post("/", eh.Create())
					r.Get("/{id}", eh.Get())
					r.Put("/{id}", eh.Update())
					r.Delete("/{id}", eh.Delete())
				})

				r.Route("/workspace", func(r chi.Router) {
					r.Route("/notes", handlers.NewCollectionHTTP(st.Notes).Mount)
					r.Route("/bookmarks", handlers.NewCollectionHTTP(st.Bookmarks).Mount)
					r.Route("/documents", handlers.NewCollectionHTTP(st.Documents).Mount)
					r.Route("/snippets", handlers.NewCollectionHTTP(st.Snippets).Mount)
				})

				r.Route("/reports", func(r chi.Router) {
					r.Get("/fields", rh.Fields())
					r.Get("/run", rh.RunQuery())
					r.Post("/run", rh.Run())
					r.Get("/summary", rh.Summary())
					r.Route("/session", func(r chi.Router) {
						r.Get("/", rh.Session())
						r.Delete("/", rh.ResetSession())
						r.Post("/fields/{key}", rh.ToggleField())
						r.Post("/sort/{key}", rh.ToggleSort())
						r.Put("/range", rh.SetRange())
						r.Get("/table", rh.SessionTable())
						r.Get("/export", rh.Export())
					})
				})
			})
		})
	})

	return r
}
