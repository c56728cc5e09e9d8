package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/AnshRaj112/portfolio-backend/internal/config"
	"github.com/AnshRaj112/portfolio-backend/internal/database"
	"github.com/AnshRaj112/portfolio-backend/internal/handlers"
	"github.com/AnshRaj112/portfolio-backend/internal/logger"
	"github.com/AnshRaj112/portfolio-backend/internal/routes"
	"github.com/AnshRaj112/portfolio-backend/internal/services"
	"github.com/AnshRaj112/portfolio-backend/internal/store"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.New("server", false).Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New("server", !cfg.IsProduction())
	zerolog.DefaultContextLogger = &log.Logger
	if envErr != nil {
		log.Debug().Msg("No .env file found")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, ping, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	media, files, err := openMedia(ctx, cfg, log)
	if err != nil {
		return err
	}

	var mailer services.Mailer
	if cfg.SMTPConfigured() {
		mailer = services.NewSMTPMailer(services.SMTPOptions{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
		log.Info().Str("host", cfg.SMTPHost).Msg("SMTP mailer configured")
	} else {
		mailer = services.NewLogMailer(log)
		log.Warn().Msg("SMTP not configured, password reset mails are only logged")
	}

	svc := services.New(repos, media, mailer, services.Options{
		JWTSecret:    cfg.JWTSecret,
		SessionTTL:   time.Duration(cfg.JWTExpirationDays) * 24 * time.Hour,
		DashboardURL: cfg.DashboardURL,
	})

	h := handlers.New(svc, handlers.Options{
		MaxUploadBytes: cfg.MaxUploadMB << 20,
		CookieTTL:      time.Duration(cfg.CookieExpirationDays) * 24 * time.Hour,
		SecureCookies:  cfg.IsProduction(),
		Ping:           ping,
		Files:          files,
	})

	router := routes.NewRouter(h, svc.Auth, log, routes.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedHosts:   cfg.AllowedHosts,
		Development:    !cfg.IsProduction(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Environment).Msg("portfolio backend running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*store.Repositories, func(context.Context) error, func(), error) {
	if cfg.DBDriver == "memory" {
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return store.NewMemoryRepositories(), nil, func() {}, nil
	}

	log.Info().Str("uri", maskURI(cfg.MongoURI)).Msg("connecting to MongoDB")
	db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := db.EnsureIndexes(ctx); err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}
	log.Info().Str("database", cfg.MongoDatabase).Msg("MongoDB connected, indexes ensured")

	closeFn := func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("failed to disconnect MongoDB")
		}
	}
	return store.NewMongoRepositories(db), db.Ping, closeFn, nil
}

func openMedia(ctx context.Context, cfg *config.Config, log *logger.Logger) (services.Media, handlers.FileSource, error) {
	switch cfg.MediaProvider {
	case "s3":
		m, err := services.NewS3Media(ctx, services.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("bucket", cfg.S3Bucket).Msg("S3 media configured")
		return m, nil, nil
	case "memory":
		log.Warn().Msg("media kept in memory and served under /media")
		m := services.NewMemoryMedia("http://localhost:" + cfg.Port + "/media")
		return m, m, nil
	default:
		m, err := services.NewCloudinaryMedia(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Msg("Cloudinary media configured")
		return m, nil, nil
	}
}

// maskURI hides the password of a connection string.
func maskURI(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}
