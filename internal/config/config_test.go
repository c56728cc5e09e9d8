package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("MEDIA_PROVIDER", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "PortFolio", cfg.MongoDatabase)
	assert.Equal(t, 7, cfg.JWTExpirationDays)
	assert.Equal(t, 7, cfg.CookieExpirationDays)
	assert.NotEmpty(t, cfg.JWTSecret, "development gets a fallback secret")
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:5174"}, cfg.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENV", "Production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestLoad_ExplicitOriginsAreTrimmedAndDeduplicated(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", " https://me.dev/ ,https://ME.dev, https://admin.me.dev")
	t.Setenv("MEDIA_PROVIDER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://me.dev", "https://admin.me.dev"}, cfg.AllowedOrigins)
}

func TestValidate_RejectsUnknownProviders(t *testing.T) {
	cfg := &Config{
		JWTSecret:            "s",
		JWTExpirationDays:    1,
		CookieExpirationDays: 1,
		MaxUploadMB:          1,
		DBDriver:             "postgres",
		MediaProvider:        "s3",
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown DB_DRIVER "postgres"`)
	assert.Contains(t, err.Error(), "S3_BUCKET is required")
}

func TestValidate_CloudinaryNeedsCredentials(t *testing.T) {
	cfg := &Config{
		JWTSecret:            "s",
		JWTExpirationDays:    1,
		CookieExpirationDays: 1,
		MaxUploadMB:          1,
		DBDriver:             "memory",
		MediaProvider:        "cloudinary",
		CloudinaryName:       "demo",
	}
	require.ErrorContains(t, cfg.Validate(), "CLOUDINARY_API_KEY")

	cfg.CloudinaryAPIKey = "key"
	cfg.CloudinaryAPISecret = "secret"
	assert.NoError(t, cfg.Validate())
}
