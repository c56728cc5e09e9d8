package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnshRaj112/portfolio-backend/internal/apperrors"
	"github.com/AnshRaj112/portfolio-backend/internal/models"
	"github.com/AnshRaj112/portfolio-backend/internal/store"
	"github.com/AnshRaj112/portfolio-backend/internal/validation"
	"github.com/AnshRaj112/portfolio-backend/pkg/utils"
)

const (
	MinPasswordLength = 8
	ResetTokenTTL     = 10 * time.Minute
)

var errResetToken = apperrors.NotFound("Reset password token is invalid or has been expired.")

// CredentialStore owns the identity's password hash and reset-token state.
// Raw passwords and raw reset tokens never reach the repository.
type CredentialStore struct {
	users store.UserRepository
	now   func() time.Time
}

func NewCredentialStore(users store.UserRepository) *CredentialStore {
	return &CredentialStore{users: users, now: time.Now}
}

// CreateIdentity validates u, hashes rawPassword into it and persists it.
func (c *CredentialStore) CreateIdentity(ctx context.Context, u *models.User, rawPassword string) error {
	if err := checkIdentity(u, rawPassword); err != nil {
		return err
	}

	hash, err := utils.HashPassword(rawPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.Password = hash

	if err := c.users.Create(ctx, u); err != nil {
		return storeError(err, "User")
	}
	return nil
}

// checkIdentity collects the field and password violations together.
func checkIdentity(u *models.User, rawPassword string, extra ...string) error {
	return withViolations(validation.ValidateStruct(u), append(extra, passwordViolation(rawPassword))...)
}

// withViolations folds extra rule violations into err, the result of a
// struct validation. Empty entries are skipped and non-validation errors
// pass through.
func withViolations(err error, extra ...string) error {
	var violations []string
	var appErr *apperrors.Error
	switch {
	case err == nil:
	case errors.As(err, &appErr) && appErr.Kind == apperrors.KindValidation:
		violations = append(violations, appErr.Violations...)
	default:
		return err
	}
	for _, v := range extra {
		if v != "" {
			violations = append(violations, v)
		}
	}

	if len(violations) > 0 {
		return apperrors.Validation(violations...)
	}
	return nil
}

// requireFile returns msg when f is missing.
func requireFile(f *FileUpload, msg string) string {
	if f == nil {
		return msg
	}
	return ""
}

func passwordViolation(raw string) string {
	if raw == "" {
		return "Password is required"
	}
	if len(raw) < MinPasswordLength {
		return fmt.Sprintf("Password must contain at least %d characters", MinPasswordLength)
	}
	return ""
}

func (c *CredentialStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := c.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, storeError(err, "User")
	}
	return u, nil
}

// VerifyPassword reports whether raw matches the stored hash.
func (c *CredentialStore) VerifyPassword(u *models.User, raw string) bool {
	ok, err := utils.VerifyPassword(raw, u.Password)
	return err == nil && ok
}

// SetPassword replaces the password of identity id.
func (c *CredentialStore) SetPassword(ctx context.Context, u *models.User, raw string) error {
	if v := passwordViolation(raw); v != "" {
		return apperrors.Validation(v)
	}
	hash, err := utils.HashPassword(raw)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := c.users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return storeError(err, "User")
	}
	u.Password = hash
	return nil
}

// IssueResetToken stores the digest of a fresh token with a ten minute
// expiry and returns the raw token for delivery.
func (c *CredentialStore) IssueResetToken(ctx context.Context, u *models.User) (string, error) {
	raw, hash, err := utils.NewResetToken()
	if err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	if err := c.users.SetResetToken(ctx, u.ID, hash, c.now().Add(ResetTokenTTL)); err != nil {
		return "", storeError(err, "User")
	}
	return raw, nil
}

// RevokeResetToken clears any outstanding reset token of u.
func (c *CredentialStore) RevokeResetToken(ctx context.Context, u *models.User) error {
	if err := c.users.ClearResetToken(ctx, u.ID); err != nil {
		return storeError(err, "User")
	}
	return nil
}

// ConsumeResetToken invalidates raw and, when newPassword is set, stores it
// in the same update. A token can be consumed once.
func (c *CredentialStore) ConsumeResetToken(ctx context.Context, raw, newPassword string) (*models.User, error) {
	if raw == "" {
		return nil, errResetToken
	}

	var hash string
	if newPassword != "" {
		if v := passwordViolation(newPassword); v != "" {
			return nil, apperrors.Validation(v)
		}
		var err error
		if hash, err = utils.HashPassword(newPassword); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	u, err := c.users.ConsumeResetToken(ctx, utils.HashResetToken(raw), c.now(), hash)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errResetToken
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// storeError maps repository errors onto the application taxonomy.
func storeError(err error, resource string) error {
	var dup *store.DuplicateKeyError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperrors.NotFound(resource + " not found.")
	case errors.Is(err, store.ErrInvalidID):
		return apperrors.Validation("Invalid id")
	case errors.As(err, &dup):
		return apperrors.Duplicate(dup.Field)
	default:
		return err
	}
}
