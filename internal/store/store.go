// Package store persists the portfolio documents. Every collection is served
// by a generic repository with a MongoDB and an in-memory implementation;
// identities get a few extra queries for the credential flows.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnshRaj112/portfolio-backend/internal/models"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrInvalidID = errors.New("invalid document id")
	ErrDuplicate = errors.New("duplicate key")
)

// DuplicateKeyError reports a unique index violation on Field.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return "duplicate key on " + e.Field
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicate
}

// Entity is satisfied by pointers to the model types embedding models.Base.
type Entity[T any] interface {
	*T
	GetID() primitive.ObjectID
	SetID(primitive.ObjectID)
}

// Repository is the keyed collection behind each resource. Writes are
// last-write-wins; Replace overwrites the whole document.
type Repository[T any] interface {
	Create(ctx context.Context, doc *T) error
	FindByID(ctx context.Context, id string) (*T, error)
	FindAll(ctx context.Context) ([]T, error)
	Replace(ctx context.Context, doc *T) error
	Delete(ctx context.Context, id string) error
}

// UserRepository adds the identity lookups used by authentication.
type UserRepository interface {
	Repository[models.User]

	Count(ctx context.Context) (int64, error)
	// FindFirst returns the oldest identity, the public portfolio owner.
	FindFirst(ctx context.Context) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error

	SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, id primitive.ObjectID) error
	// ConsumeResetToken atomically finds the identity holding tokenHash with
	// an expiry after now, clears both reset fields and, when passwordHash is
	// not empty, stores it as the new password.
	ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time, passwordHash string) (*models.User, error)
}

// Repositories bundles one repository per collection.
type Repositories struct {
	Users        UserRepository
	Messages     Repository[models.Message]
	Projects     Repository[models.Project]
	Skills       Repository[models.Skill]
	Timelines    Repository[models.Timeline]
	SoftwareApps Repository[models.SoftwareApp]
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
