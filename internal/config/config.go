package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port        string `env:"PORT" envDefault:"4000"`
	Environment string `env:"ENV" envDefault:"development"`

	DBDriver      string `env:"DB_DRIVER" envDefault:"mongo"` // mongo or memory
	MongoURI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"PortFolio"`

	JWTSecret            string `env:"JWT_SECRET"`
	JWTExpirationDays    int    `env:"JWT_EXPIRATION_DAYS" envDefault:"7"`
	CookieExpirationDays int    `env:"COOKIE_EXPIRATION_DAYS" envDefault:"7"`

	PortfolioURL   string   `env:"PORTFOLIO_URL" envDefault:"http://localhost:5173"`
	DashboardURL   string   `env:"DASHBOARD_URL" envDefault:"http://localhost:5174"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	// AllowedHosts limits the Host header in production, empty allows any.
	AllowedHosts []string `env:"ALLOWED_HOSTS" envSeparator:","`

	MaxUploadMB int64 `env:"MAX_UPLOAD_MB" envDefault:"10"`

	MediaProvider       string `env:"MEDIA_PROVIDER" envDefault:"cloudinary"` // cloudinary, s3 or memory
	CloudinaryName      string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`

	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3PublicURL string `env:"S3_PUBLIC_URL"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`
}

// Load parses the environment. Origins default to the portfolio and
// dashboard URLs when ALLOWED_ORIGINS is unset.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	cfg.AllowedOrigins = trimOrigins(cfg.AllowedOrigins)
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = trimOrigins([]string{cfg.PortfolioURL, cfg.DashboardURL})
	}

	if !cfg.IsProduction() && cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWTExpirationDays <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION_DAYS must be positive"))
	}
	if c.CookieExpirationDays <= 0 {
		errs = append(errs, errors.New("COOKIE_EXPIRATION_DAYS must be positive"))
	}
	if c.MaxUploadMB <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_MB must be positive"))
	}
	switch c.DBDriver {
	case "mongo", "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver))
	}
	switch c.MediaProvider {
	case "cloudinary", "s3", "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown MEDIA_PROVIDER %q", c.MediaProvider))
	}
	if c.MediaProvider == "s3" && c.S3Bucket == "" {
		errs = append(errs, errors.New("S3_BUCKET is required when MEDIA_PROVIDER=s3"))
	}
	if c.MediaProvider == "cloudinary" && !c.CloudinaryConfigured() {
		errs = append(errs, errors.New("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required when MEDIA_PROVIDER=cloudinary"))
	}
	return errors.Join(errs...)
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CloudinaryConfigured reports whether all Cloudinary credentials are set.
func (c *Config) CloudinaryConfigured() bool {
	return c.CloudinaryName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// SMTPConfigured reports whether outbound mail can be delivered.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

func trimOrigins(in []string) []string {
	var out []string
	for _, part := range in {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part != "" && !containsOrigin(out, part) {
			out = append(out, part)
		}
	}
	return out
}

func containsOrigin(list []string, o string) bool {
	o = strings.ToLower(o)
	for _, v := range list {
		if strings.ToLower(v) == o {
			return true
		}
	}
	return false
}
