// Package services holds the business operations behind the HTTP handlers:
// identity and session management, the portfolio resources, and the media
// and mail delegates they call.
package services

import (
	"time"

	"github.com/AnshRaj112/portfolio-backend/internal/store"
)

// Options configures New.
type Options struct {
	JWTSecret    string
	SessionTTL   time.Duration
	DashboardURL string
}

// Services bundles every service used by the handlers.
type Services struct {
	Auth         *AuthService
	Messages     *MessageService
	Projects     *ProjectService
	Skills       *SkillService
	Timelines    *TimelineService
	SoftwareApps *SoftwareAppService
}

func New(repos *store.Repositories, media Media, mailer Mailer, opts Options) *Services {
	creds := NewCredentialStore(repos.Users)
	sessions := NewSessionIssuer(opts.JWTSecret, opts.SessionTTL)

	return &Services{
		Auth:         NewAuthService(repos.Users, creds, sessions, media, mailer, opts.DashboardURL),
		Messages:     NewMessageService(repos.Messages),
		Projects:     NewProjectService(repos.Projects, media),
		Skills:       NewSkillService(repos.Skills, media),
		Timelines:    NewTimelineService(repos.Timelines),
		SoftwareApps: NewSoftwareAppService(repos.SoftwareApps, media),
	}
}
