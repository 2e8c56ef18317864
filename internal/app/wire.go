package app

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/squadroom/platform/internal/auth"
	"github.com/squadroom/platform/internal/cache"
	"github.com/squadroom/platform/internal/handler"
	"github.com/squadroom/platform/internal/infra"
	"github.com/squadroom/platform/internal/repository"
	"github.com/squadroom/platform/internal/service"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	// DB is passed to every repository call; nil for the in-memory store.
	DB repository.DBTX
	// Pinger backs /health; nil for the in-memory store.
	Pinger infra.Pinger

	Players    repository.PlayerRepository
	Sessions   repository.SessionRepository
	Attendance repository.AttendanceRepository

	Listings *cache.Listings
	Changes  service.Announcer
	JWTMgr   *auth.JWTManager
	Logger   *slog.Logger

	CORSAllowedOrigins string
	// Now and Location define "today" for the dashboard.
	Now      func() time.Time
	Location *time.Location
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	logger := deps.Logger
	jwtMgr := deps.JWTMgr

	// Services
	playerDir := service.NewPlayerDirectory(deps.DB, deps.Players, deps.Listings, deps.Changes, logger)
	sessionDir := service.NewSessionDirectory(deps.DB, deps.Sessions, deps.Listings, deps.Changes, logger)
	attendanceMgr := service.NewAttendanceManager(deps.DB, deps.Attendance, playerDir, deps.Changes, logger)
	dashboard := service.NewDashboard(playerDir, sessionDir, deps.Now, deps.Location)

	// Handlers
	playerHandler := handler.NewPlayerHandler(playerDir)
	sessionHandler := handler.NewSessionHandler(sessionDir)
	attendanceHandler := handler.NewAttendanceHandler(attendanceMgr)
	dashboardHandler := handler.NewDashboardHandler(dashboard)

	origins := deps.CORSAllowedOrigins
	if origins == "" {
		origins = "*"
	}

	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORSWithOrigins(origins))
	r.Use(handler.JSONContentType)

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(deps.Pinger))

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Authenticate(jwtMgr))

		// Reads: either credential tier.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireTier(auth.ReadTiers()...))

			r.Get("/dashboard", dashboardHandler.Get)
			r.Get("/players", playerHandler.List)
			r.Get("/players/{id}", playerHandler.Get)
			r.Get("/sessions", sessionHandler.List)
			r.Get("/sessions/{id}", sessionHandler.Get)
			r.Get("/sessions/{id}/attendance", attendanceHandler.List)
			r.Get("/sessions/{id}/available-players", attendanceHandler.AvailablePlayers)
		})

		// Writes: elevated credential only.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireTier(auth.WriteTiers()...))

			r.Post("/players", playerHandler.Create)
			r.Patch("/players/{id}", playerHandler.Update)
			r.Delete("/players/{id}", playerHandler.Delete)

			r.Post("/sessions", sessionHandler.Create)
			r.Patch("/sessions/{id}", sessionHandler.Update)
			r.Delete("/sessions/{id}", sessionHandler.Delete)

			r.Post("/sessions/{id}/attendance", attendanceHandler.AddPlayer)
			r.Patch("/sessions/{id}/attendance/{playerID}", attendanceHandler.Update)
			r.Delete("/sessions/{id}/attendance/{playerID}", attendanceHandler.RemovePlayer)
		})
	})

	return r
}
