package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AnshRaj112/portfolio-backend/internal/apperrors"
	"github.com/AnshRaj112/portfolio-backend/internal/logger"
	"github.com/AnshRaj112/portfolio-backend/internal/models"
	"github.com/AnshRaj112/portfolio-backend/internal/store"
	"github.com/AnshRaj112/portfolio-backend/internal/validation"
)

var (
	errBadLogin       = apperrors.Unauthenticated("Invalid email or password.")
	errNoSession      = apperrors.Unauthenticated("User not authenticated.")
	errAlreadyHasUser = &apperrors.Error{Kind: apperrors.KindDuplicate, Message: "A portfolio owner is already registered."}
)

// Profile holds the editable identity fields.
type Profile struct {
	FullName     string
	Email        string
	PhoneNumber  string
	AboutMe      string
	PortfolioURL string
	GithubURL    string
	TwitterURL   string
	LinkedInURL  string
}

type RegisterInput struct {
	Profile
	Password string
	Avatar   *FileUpload
	Resume   *FileUpload
}

// ProfileUpdate applies non-empty fields and replaces the files that are set.
type ProfileUpdate struct {
	Profile
	Avatar *FileUpload
	Resume *FileUpload
}

type PasswordChange struct {
	Current string
	New     string
	Confirm string
}

// AuthService implements registration, login, the auth gate and the
// password flows for the single portfolio owner.
type AuthService struct {
	users        store.UserRepository
	creds        *CredentialStore
	sessions     *SessionIssuer
	assets       assetKeeper
	mailer       Mailer
	dashboardURL string
}

func NewAuthService(users store.UserRepository, creds *CredentialStore, sessions *SessionIssuer, media Media, mailer Mailer, dashboardURL string) *AuthService {
	return &AuthService{
		users:        users,
		creds:        creds,
		sessions:     sessions,
		assets:       assetKeeper{media: media},
		mailer:       mailer,
		dashboardURL: strings.TrimRight(dashboardURL, "/"),
	}
}

// Session is a signed token handed to the client.
type Session struct {
	User  *models.User
	Token string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	u := &models.User{}
	applyProfile(u, in.Profile)
	err := checkIdentity(u, in.Password,
		requireFile(in.Avatar, "Avatar is required"),
		requireFile(in.Resume, "Resume is required"))
	if err != nil {
		return nil, err
	}

	n, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, errAlreadyHasUser
	}

	if u.Avatar, err = s.assets.upload(ctx, in.Avatar, FolderAvatars, "avatar"); err != nil {
		return nil, err
	}
	if u.Resume, err = s.assets.upload(ctx, in.Resume, FolderResumes, "resume"); err != nil {
		s.assets.release(ctx, u.Avatar)
		return nil, err
	}

	if err := s.creds.CreateIdentity(ctx, u, in.Password); err != nil {
		s.assets.release(ctx, u.Avatar)
		s.assets.release(ctx, u.Resume)
		return nil, err
	}

	logger.FromContext(ctx).Info().Str("user_id", u.ID.Hex()).Msg("portfolio owner registered")
	return s.newSession(u)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.Validation("Email and password are required")
	}

	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errBadLogin
	}
	if err != nil {
		return nil, err
	}
	if !s.creds.VerifyPassword(u, password) {
		return nil, errBadLogin
	}
	return s.newSession(u)
}

// Authenticate resolves a session token to its identity.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, errNoSession
	}
	id, err := s.sessions.Parse(token)
	if err != nil {
		return nil, err
	}

	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidID) {
		return nil, apperrors.Unauthenticated("User not found.")
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateProfile overwrites the provided fields of u. New files are uploaded
// before the write and the replaced ones released after it.
func (s *AuthService) UpdateProfile(ctx context.Context, u *models.User, in ProfileUpdate) (*models.User, error) {
	updated := *u
	applyProfile(&updated, in.Profile)
	if err := validation.ValidateStruct(&updated); err != nil {
		return nil, err
	}

	var err error
	var fresh []models.Asset
	rollback := func() {
		for _, a := range fresh {
			s.assets.release(ctx, a)
		}
	}

	if in.Avatar != nil {
		if updated.Avatar, err = s.assets.upload(ctx, in.Avatar, FolderAvatars, "avatar"); err != nil {
			return nil, err
		}
		fresh = append(fresh, updated.Avatar)
	}
	if in.Resume != nil {
		if updated.Resume, err = s.assets.upload(ctx, in.Resume, FolderResumes, "resume"); err != nil {
			rollback()
			return nil, err
		}
		fresh = append(fresh, updated.Resume)
	}

	if err := s.users.Replace(ctx, &updated); err != nil {
		rollback()
		return nil, storeError(err, "User")
	}

	if in.Avatar != nil {
		s.assets.release(ctx, u.Avatar)
	}
	if in.Resume != nil {
		s.assets.release(ctx, u.Resume)
	}
	return &updated, nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, u *models.User, in PasswordChange) error {
	if in.Current == "" || in.New == "" || in.Confirm == "" {
		return apperrors.Validation("Please fill all fields.")
	}
	if !s.creds.VerifyPassword(u, in.Current) {
		return apperrors.Validation("Invalid current password.")
	}
	if in.New != in.Confirm {
		return apperrors.Validation("Passwords do not match.")
	}
	return s.creds.SetPassword(ctx, u, in.New)
}

// Portfolio returns the public owner profile.
func (s *AuthService) Portfolio(ctx context.Context) (*models.User, error) {
	u, err := s.users.FindFirst(ctx)
	if err != nil {
		return nil, storeError(err, "User")
	}
	return u, nil
}

// ForgotPassword mails a reset link to the owner. The token is revoked
// again when the mail cannot be delivered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.Validation("Email is required")
	}

	u, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	token, err := s.creds.IssueResetToken(ctx, u)
	if err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/resetPassword/%s", s.dashboardURL, token)
	body := fmt.Sprintf("Your Reset Password Token is:\n\n%s\n\nIf you have not requested this email then, please ignore it.", link)

	if err := s.mailer.Send(ctx, u.Email, "Personal Portfolio Dashboard Password Recovery", body); err != nil {
		if rerr := s.creds.RevokeResetToken(ctx, u); rerr != nil {
			logger.FromContext(ctx).Error().Err(rerr).Msg("failed to revoke reset token after delivery failure")
		}
		if errors.Is(err, apperrors.ErrDelivery) {
			return nil, err
		}
		return nil, apperrors.Delivery(err)
	}
	return u, nil
}

// ResetPassword consumes token, sets the new password and opens a session.
func (s *AuthService) ResetPassword(ctx context.Context, token, password, confirm string) (*Session, error) {
	if password == "" || confirm == "" {
		return nil, apperrors.Validation("Password and Confirm Password are required")
	}
	if password != confirm {
		return nil, apperrors.Validation("Password & Confirm Password do not match.")
	}

	u, err := s.creds.ConsumeResetToken(ctx, token, password)
	if err != nil {
		return nil, err
	}
	return s.newSession(u)
}

func (s *AuthService) newSession(u *models.User) (*Session, error) {
	token, _, err := s.sessions.Issue(u)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}
	return &Session{User: u, Token: token}, nil
}

func applyProfile(u *models.User, p Profile) {
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&u.FullName, p.FullName)
	set(&u.Email, p.Email)
	set(&u.PhoneNumber, p.PhoneNumber)
	set(&u.AboutMe, p.AboutMe)
	set(&u.PortfolioURL, p.PortfolioURL)
	set(&u.GithubURL, p.GithubURL)
	set(&u.TwitterURL, p.TwitterURL)
	set(&u.LinkedInURL, p.LinkedInURL)
}
