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
	_ "time/tzdata"

	"github.com/go-chi/httplog/v3"
	"github.com/madwell/signin-backend-go/internal/config"
	"github.com/madwell/signin-backend-go/internal/domain/compliance"
	appHTTP "github.com/madwell/signin-backend-go/internal/handler/http"
	"github.com/madwell/signin-backend-go/internal/pkg/cron"
	"github.com/madwell/signin-backend-go/internal/pkg/jwt"
	"github.com/madwell/signin-backend-go/internal/pkg/oauth"
	"github.com/madwell/signin-backend-go/internal/repository/cache"
	"github.com/madwell/signin-backend-go/internal/repository/csv"
	"github.com/madwell/signin-backend-go/internal/repository/hrapi"
	serviceAuth "github.com/madwell/signin-backend-go/internal/service/auth"
	complianceService "github.com/madwell/signin-backend-go/internal/service/compliance"
)

const appVersion = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Error loading config", "error", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "signin-compliance"),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc := cfg.Location()
	httpClient := &http.Client{Timeout: cfg.PTO.Timeout}

	rosterCache := cache.NewRosterCache(csv.NewRosterSource(cfg.Roster.URL, httpClient), cfg.Roster.RefreshInterval)

	ptoHTTPClient := httpClient
	if cfg.PTO.AuthMode == hrapi.AuthModeOAuth2 {
		ptoHTTPClient = oauth.NewClientCredentialsClient(ctx, oauth.ClientCredentials{
			ClientID:     cfg.PTO.ClientID,
			ClientSecret: cfg.PTO.ClientSecret,
			TokenURL:     cfg.PTO.TokenURL,
			Scopes:       cfg.PTO.Scopes,
		}, httpClient)
	}
	ptoClient := hrapi.NewClient(hrapi.Config{
		URL:              cfg.PTO.URL,
		AuthMode:         cfg.PTO.AuthMode,
		Username:         cfg.PTO.Username,
		Password:         cfg.PTO.Password,
		Timeout:          cfg.PTO.Timeout,
		MaxRetries:       cfg.PTO.MaxRetries,
		ApprovedStatuses: cfg.PTO.ApprovedStatuses,
		Location:         loc,
	}, ptoHTTPClient)
	ptoCache := cache.NewPTOCache(ptoClient, cfg.PTO.RefreshInterval)

	policy, err := compliance.ParseUnmatchedPolicy(cfg.Engine.UnmatchedPolicy)
	if err != nil {
		slog.Error("Invalid unmatched policy", "error", err)
		os.Exit(1)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(JWTService, cfg.Auth.PasswordHash)
	engine := complianceService.NewEngine(cfg.Engine.Workers, policy)
	complianceSvc := complianceService.NewComplianceService(
		rosterCache,
		ptoCache,
		csv.NewSignInParser(loc),
		engine,
		cfg.PTO.Required,
	)

	scheduler := cron.NewScheduler(ctx)
	cron.NewSourceJobs(rosterCache, cfg.Roster.RefreshInterval, ptoCache, cfg.PTO.RefreshInterval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(authService)
	complianceHandler := appHTTP.NewComplianceHandler(complianceSvc, cfg.App.UploadMaxBytes)

	router := appHTTP.NewRouter(
		logger,
		cfg.App.CORSAllowedOrigins,
		JWTService,
		authHandler,
		complianceHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", loc.String(), "unmatched_policy", policy)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	slog.Info("Server stopped")
}
