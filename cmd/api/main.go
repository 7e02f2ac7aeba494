package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/config"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/export"
	"github.com/cmlabs-hris/hris-admin-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/hris-admin-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/dispatch"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/email"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-admin-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-admin-go/internal/service/action"
	dashboardService "github.com/cmlabs-hris/hris-admin-go/internal/service/dashboard"
	exportService "github.com/cmlabs-hris/hris-admin-go/internal/service/export"
	leaveService "github.com/cmlabs-hris/hris-admin-go/internal/service/leave"
	notificationService "github.com/cmlabs-hris/hris-admin-go/internal/service/notification"
	reportService "github.com/cmlabs-hris/hris-admin-go/internal/service/report"
	timesheetService "github.com/cmlabs-hris/hris-admin-go/internal/service/timesheet"
	userService "github.com/cmlabs-hris/hris-admin-go/internal/service/user"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	userRepo := memory.NewUserRepository(fixtures.Users())
	timesheetRepo := memory.NewTimesheetRepository(fixtures.Timesheets())
	leaveRequestRepo := memory.NewLeaveRequestRepository(fixtures.LeaveRequests())
	notificationRepo := memory.NewNotificationRepository()

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize local storage: %w", err)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("failed to initialize email service: %w", err)
	}

	users := userService.NewUserService(userRepo, timesheetRepo, leaveRequestRepo)
	timesheets := timesheetService.NewTimesheetService(timesheetRepo, userRepo, cfg.Work.WorkHoursPerWeek)
	leaves := leaveService.NewLeaveService(leaveRequestRepo, userRepo)
	reports := reportService.NewReportService(userRepo, timesheetRepo)
	dashboards := dashboardService.NewDashboardService(userRepo, timesheetRepo, leaveRequestRepo)
	exports := exportService.NewExportService(users, timesheets, leaves, reports, fileStorage)

	hub := sse.NewHub()
	notifications := notificationService.NewNotificationService(notificationRepo, hub, emailService, notificationService.Config{})

	dispatcher := dispatch.New(dispatch.Config{
		TTL:     cfg.Action.ConfirmationTTL,
		Workers: cfg.Action.Workers,
	}, notifications)
	if err := action.Register(dispatcher, users, timesheets, leaves, notifications); err != nil {
		return fmt.Errorf("failed to register action handlers: %w", err)
	}

	scheduler := cron.NewScheduler()
	if err := cron.NewActionJobs(dispatcher, cfg.Action.SweepInterval).RegisterJobs(scheduler); err != nil {
		return fmt.Errorf("failed to register action jobs: %w", err)
	}
	if err := cron.NewExportJobs(fileStorage, export.Dir, cfg.Storage.ExportRetention, time.Hour).RegisterJobs(scheduler); err != nil {
		return fmt.Errorf("failed to register export jobs: %w", err)
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.AcceptableSkew)
	if err != nil {
		return fmt.Errorf("failed to initialize jwt service: %w", err)
	}

	pageSize := cfg.Table.DefaultPageSize
	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Env:            cfg.App.Env,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, JWTService, appHTTP.Handlers{
		Dashboard:    appHTTP.NewDashboardHandler(dashboards),
		User:         appHTTP.NewUserHandler(users, exports, pageSize),
		Timesheet:    appHTTP.NewTimesheetHandler(timesheets, exports, pageSize),
		Leave:        appHTTP.NewLeaveHandler(leaves, exports, pageSize),
		Report:       appHTTP.NewReportHandler(reports, exports, pageSize),
		Action:       appHTTP.NewActionHandler(dispatcher),
		Notification: appHTTP.NewNotificationHandler(notifications, JWTService),
		ExportFile:   appHTTP.NewExportFileHandler(fileStorage),
		Settings:     appHTTP.NewSettingsHandler(cfg.Work),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler.Start(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	// streams never finish on their own
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Failed to shut down server gracefully", "error", err)
	}

	scheduler.Stop()
	notifications.Stop()
	return nil
}
