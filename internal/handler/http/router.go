package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-admin-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string
}

type Handlers struct {
	Dashboard    DashboardHandler
	User         UserHandler
	Timesheet    TimesheetHandler
	Leave        LeaveHandler
	Report       ReportHandler
	Action       ActionHandler
	Notification NotificationHandler
	ExportFile   ExportFileHandler
	Settings     SettingsHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-admin"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// per-file permission is checked by the handler
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)
		r.Get("/exports/*", h.ExportFile.Download)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/notifications", func(r chi.Router) {
			// authenticated by the short-lived token in the query string
			r.Get("/stream", h.Notification.Stream)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired)
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Post("/read", h.Notification.MarkAsRead)
				r.Post("/read-all", h.Notification.MarkAllAsRead)
				r.Get("/sse-token", h.Notification.GetSSEToken)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.With(middleware.RequirePermission(user.PermissionDashboardView)).
				Get("/dashboard", h.Dashboard.GetDashboard)
			r.With(middleware.RequirePermission(user.PermissionDashboardView)).
				Get("/settings", h.Settings.Get)

			r.Route("/users", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserView))
					r.Get("/", h.User.List)
					r.Get("/export", h.User.Export)
					r.Get("/{id}", h.User.Get)
					r.Get("/{id}/stats", h.User.Stats)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserManage))
					r.Post("/", h.User.Create)
					r.Put("/{id}", h.User.Update)
				})
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionTimesheetView))
					r.Get("/", h.Timesheet.List)
					r.Get("/export", h.Timesheet.Export)
					r.Get("/{id}", h.Timesheet.Get)
					r.Get("/{id}/entries", h.Timesheet.Entries)
				})
				r.With(middleware.RequirePermission(user.PermissionTimesheetApprove)).
					Get("/pending", h.Timesheet.Pending)
				r.With(middleware.RequirePermission(user.PermissionTimesheetManage)).
					Post("/", h.Timesheet.Create)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveView))
					r.Get("/", h.Leave.List)
					r.Get("/calendar", h.Leave.Calendar)
					r.Get("/export", h.Leave.Export)
					r.Get("/{id}", h.Leave.Get)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveManage))
					r.Post("/", h.Leave.Create)
					r.Put("/{id}", h.Leave.Update)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionReportsView)).
					Get("/", h.Report.Generate)
				r.With(middleware.RequirePermission(user.PermissionReportsExport)).
					Get("/export", h.Report.Export)
			})

			// per-command permissions are checked by the handler
			r.Route("/actions", func(r chi.Router) {
				r.Use(middleware.RequireAnyPermission(
					user.PermissionUserManage,
					user.PermissionTimesheetManage,
					user.PermissionTimesheetApprove,
					user.PermissionLeaveManage,
					user.PermissionLeaveApprove,
				))
				r.Post("/", h.Action.Request)
				r.Get("/{token}", h.Action.Get)
				r.Post("/{token}/confirm", h.Action.Confirm)
				r.Delete("/{token}", h.Action.Cancel)
			})
		})
	})
	return r
}
