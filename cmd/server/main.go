package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/folio/backend/internal/config"
	"github.com/folio/backend/internal/handler"
	"github.com/folio/backend/internal/logging"
	"github.com/folio/backend/internal/quota"
	"github.com/folio/backend/internal/repository"
	"github.com/folio/backend/internal/service"
	"github.com/folio/backend/internal/storage"
	"github.com/folio/backend/pkg/auth"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("load config failed", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	ctx := context.Background()
	pool, err := repository.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	// Redis が未設定の場合は日次クォータをプロセス内で数える
	var counter quota.Counter = quota.NewMemoryCounter()
	if cfg.Redis.Addr != "" {
		rdb, err := quota.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logging.Fatal("failed to connect to redis", "error", err)
		}
		defer rdb.Close()
		counter = quota.NewRedisCounter(rdb)
	}

	adviceRepo := repository.NewPgAdviceRepository(pool)
	contactRepo := repository.NewPgContactRepository(pool)
	storyRepo := repository.NewPgStoryRepository(pool)
	projectRepo := repository.NewPgProjectRepository(pool)
	settingRepo := repository.NewPgSettingRepository(pool)

	sessionSecret := auth.SessionSecretBytes(cfg.Auth.SessionSecret)

	intakeService := service.NewIntakeService(adviceRepo, contactRepo, settingRepo, counter)
	adviceService := service.NewAdviceService(adviceRepo)
	contactService := service.NewContactService(contactRepo)
	storyService := service.NewStoryService(storyRepo)
	projectService := service.NewProjectService(projectRepo)
	settingService := service.NewSettingService(settingRepo)
	dashboardService := service.NewDashboardService(storyRepo, projectRepo, adviceRepo, contactRepo)
	authService := service.NewAuthService(service.OperatorAccount{
		Email:        cfg.Auth.OperatorEmail,
		PasswordHash: cfg.Auth.OperatorPasswordHash,
	}, sessionSecret, cfg.Auth.SessionTTL)

	if cfg.Auth.Required && (cfg.Auth.OperatorEmail == "" || cfg.Auth.OperatorPasswordHash == "") {
		slog.Warn("operator account not configured; admin login is disabled")
	}

	store := storage.NewLocalStorage(cfg.Uploads.Dir, cfg.Uploads.URLPrefix)

	h := handler.New(pool, cfg.HTTP.FrontendURL)
	adviceHandler := handler.NewAdviceHandler(intakeService, adviceService).WithTrustedProxies(cfg.HTTP.TrustedProxies)
	contactHandler := handler.NewContactHandler(intakeService, contactService)
	storyHandler := handler.NewStoryHandler(storyService)
	projectHandler := handler.NewProjectHandler(projectService)
	imageHandler := handler.NewImageHandler(store, projectService)
	settingHandler := handler.NewSettingHandler(settingService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	authHandler := handler.NewAuthHandler(authService, handler.AuthConfig{
		SessionSecret: sessionSecret,
		SecureCookie:  cfg.Auth.SecureCookie,
		DevMode:       !cfg.Auth.Required,
	})

	limiter := handler.NewRateLimiter(cfg.HTTP.RateLimitPerMinute).WithTrustedProxies(cfg.HTTP.TrustedProxies)
	defer limiter.Stop()
	limited := func(fn http.HandlerFunc) http.Handler {
		return limiter.Middleware(fn)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)

	// 公開 API
	mux.Handle("POST /api/advice", limited(adviceHandler.Submit))
	mux.HandleFunc("GET /api/advice", adviceHandler.PublicList)
	mux.Handle("POST /api/contact", limited(contactHandler.Submit))
	mux.HandleFunc("GET /api/stories", storyHandler.List)
	mux.HandleFunc("GET /api/projects", projectHandler.List)
	mux.HandleFunc("GET /api/settings", settingHandler.Public)
	uploadPrefix := strings.TrimSuffix(cfg.Uploads.URLPrefix, "/")
	mux.Handle("GET "+uploadPrefix+"/", http.StripPrefix(uploadPrefix, http.FileServer(http.Dir(cfg.Uploads.Dir))))

	mux.Handle("POST /api/auth/login", limited(authHandler.Login))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/me", authHandler.Me)

	// オペレーター専用 API
	wrapAuth := func(fn http.HandlerFunc) http.Handler {
		if cfg.Auth.Required {
			return auth.RequireOperator(sessionSecret)(fn)
		}
		return auth.DevAuth(fn)
	}
	mux.Handle("GET /api/admin/stats", wrapAuth(dashboardHandler.Stats))

	mux.Handle("GET /api/admin/advice", wrapAuth(adviceHandler.AdminList))
	mux.Handle("POST /api/admin/advice", wrapAuth(adviceHandler.Create))
	mux.Handle("POST /api/admin/advice/{id}/approve", wrapAuth(adviceHandler.Approve))
	mux.Handle("POST /api/admin/advice/{id}/reject", wrapAuth(adviceHandler.Reject))
	mux.Handle("DELETE /api/admin/advice/{id}", wrapAuth(adviceHandler.Delete))

	mux.Handle("GET /api/admin/contacts", wrapAuth(contactHandler.AdminList))
	mux.Handle("POST /api/admin/contacts/{id}/open", wrapAuth(contactHandler.Open))
	mux.Handle("PATCH /api/admin/contacts/{id}/status", wrapAuth(contactHandler.UpdateStatus))
	mux.Handle("DELETE /api/admin/contacts/{id}", wrapAuth(contactHandler.Delete))

	mux.Handle("GET /api/admin/stories/{id}", wrapAuth(storyHandler.Get))
	mux.Handle("POST /api/admin/stories", wrapAuth(storyHandler.Create))
	mux.Handle("PUT /api/admin/stories/{id}", wrapAuth(storyHandler.Update))
	mux.Handle("DELETE /api/admin/stories/{id}", wrapAuth(storyHandler.Delete))

	mux.Handle("GET /api/admin/projects/{id}", wrapAuth(projectHandler.Get))
	mux.Handle("POST /api/admin/projects", wrapAuth(projectHandler.Create))
	mux.Handle("PUT /api/admin/projects/{id}", wrapAuth(projectHandler.Update))
	mux.Handle("DELETE /api/admin/projects/{id}", wrapAuth(projectHandler.Delete))
	mux.Handle("POST /api/admin/projects/{id}/image", wrapAuth(imageHandler.Upload))
	mux.Handle("DELETE /api/admin/projects/{id}/image", wrapAuth(imageHandler.Delete))

	mux.Handle("PUT /api/admin/settings", wrapAuth(settingHandler.Save))

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           h.CORS(handler.SecurityHeaders(handler.RequestLogger(mux))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
