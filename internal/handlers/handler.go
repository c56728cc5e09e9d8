// Package handlers exposes the portfolio services over HTTP. Every response
// uses the {success, message, <resource>} envelope.
package handlers

import (
	"context"
	"time"

	"github.com/AnshRaj112/portfolio-backend/internal/services"
)

// FileSource serves stored media bytes, implemented by services.MemoryMedia.
type FileSource interface {
	Get(publicID string) ([]byte, bool)
}

// Options represents the HTTP-level settings of the handlers.
type Options struct {
	MaxUploadBytes int64
	CookieTTL      time.Duration
	SecureCookies  bool
	// Ping reports store health, nil skips the check.
	Ping func(ctx context.Context) error
	// Files is set when media is held in process.
	Files FileSource
}

// Handler represents the HTTP entry points backed by the portfolio services.
type Handler struct {
	svc  *services.Services
	opts Options
}

func New(svc *services.Services, opts Options) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	return &Handler{svc: svc, opts: opts}
}
