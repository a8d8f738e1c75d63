package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Marga-Ghale/ora-identity-services/internal/api"
	"github.com/Marga-Ghale/ora-identity-services/internal/api/handlers"
	"github.com/Marga-Ghale/ora-identity-services/internal/api/middleware"
	"github.com/Marga-Ghale/ora-identity-services/internal/auth"
	"github.com/Marga-Ghale/ora-identity-services/internal/config"
	"github.com/Marga-Ghale/ora-identity-services/internal/cron"
	"github.com/Marga-Ghale/ora-identity-services/internal/db"
	"github.com/Marga-Ghale/ora-identity-services/internal/logger"
	"github.com/Marga-Ghale/ora-identity-services/internal/management"
	"github.com/Marga-Ghale/ora-identity-services/internal/metrics"
	"github.com/Marga-Ghale/ora-identity-services/internal/repository"
	"github.com/Marga-Ghale/ora-identity-services/internal/service"
	"github.com/Marga-Ghale/ora-identity-services/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var services, port string

	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Start the HTTP API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			envErr := godotenv.Load()

			cfg := config.Load()
			if cmd.Flags().Changed("services") {
				cfg.Services = config.ParseServices(services)
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			zl, err := logger.New(cfg.LogLevel, cfg.Environment)
			if err != nil {
				return err
			}
			defer zl.Sync()
			logger.Set(zl)

			if envErr != nil {
				logger.L().Debug("No .env file found, using environment variables")
			}
			return serve(cfg)
		},
	}

	cmd.Flags().StringVar(&services, "services", "", "comma separated services to serve (member,org,rebac,image or all)")
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides API_PORT)")
	return cmd
}

func serve(cfg *config.Config) error {
	log := logger.L()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := metrics.Register(registry); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	deps := &service.ServiceDeps{
		EnableMember:   cfg.Enabled(config.ServiceMember),
		EnableTenant:   cfg.Enabled(config.ServiceOrg),
		EnableRelation: cfg.Enabled(config.ServiceReBAC),
		EnableImage:    cfg.Enabled(config.ServiceImage),
		PresignExpiry:  cfg.PresignExpiry,
		ImageKeyTTL:    cfg.ImageKeyTTL,
	}

	if cfg.NeedsManagementClient() {
		client, err := management.NewClient(management.Config{
			ProjectID:     cfg.DescopeProjectID,
			ManagementKey: cfg.DescopeManagementKey,
			BaseURL:       cfg.DescopeBaseURL,
			Timeout:       cfg.DescopeTimeout,
		})
		if err != nil {
			return fmt.Errorf("initialize management client: %w", err)
		}
		deps.Management = client
		log.Infof("Management client initialized for project %s", cfg.DescopeProjectID)
	}

	routerDeps := api.RouterDeps{Config: cfg, Gatherer: registry}

	if deps.EnableImage {
		presigner, err := storage.NewS3Presigner(ctx, storage.S3Config{
			Bucket:    cfg.S3BucketName,
			Region:    cfg.AWSRegion,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return fmt.Errorf("initialize S3 presigner: %w", err)
		}
		deps.Presigner = presigner

		if cfg.RedisURL != "" {
			redisDB, err := db.NewRedisDB(cfg.RedisURL)
			if err != nil {
				log.Warnf("Failed to connect to Redis: %v (continuing without image key index)", err)
			} else {
				defer redisDB.Close()
				deps.ImageIndex = redisDB
				routerDeps.ImageIndexPing = redisDB.Ping
				log.Info("Image key index enabled")
			}
		}
	}

	var audit *middleware.AuditRecorder
	if cfg.DatabaseURL != "" {
		if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		pg, err := db.NewPostgresDB(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pg.Close()
		audit = middleware.NewAuditRecorder(repository.NewRepositories(pg.Pool).AuditRepo)
		routerDeps.Audit = audit
		routerDeps.AuditPing = pg.Ping
		log.Info("Audit trail enabled")
	}

	var verifier *auth.Verifier
	if cfg.AuthEnabled {
		keys := auth.NewKeySet(cfg.DescopeBaseURL, cfg.DescopeProjectID, cfg.DescopeTimeout)
		if err := keys.Refresh(ctx); err != nil {
			return fmt.Errorf("load session signing keys: %w", err)
		}
		verifier = auth.NewVerifier(keys)

		scheduler := cron.NewScheduler(keys)
		if err := scheduler.Start(cfg.JWKSRefreshSpec); err != nil {
			return err
		}
		defer scheduler.Stop()
		log.Infof("Session authentication enabled with %d signing key(s)", keys.Len())
	}

	services := service.NewServices(deps)
	log.Infof("Services enabled: %v", cfg.Services)

	routerDeps.Handlers = handlers.NewHandlers(services)
	if verifier != nil {
		routerDeps.Verifier = verifier
	}
	r := api.NewRouter(routerDeps)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.DescopeTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownErr := srv.Shutdown(shutdownCtx)
	if audit != nil {
		if err := audit.Wait(shutdownCtx); err != nil {
			log.Warnf("Audit events still pending at shutdown: %v", err)
		}
	}
	if shutdownErr != nil {
		return fmt.Errorf("server forced to shutdown: %w", shutdownErr)
	}

	log.Info("Server exited")
	return nil
}
