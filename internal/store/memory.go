package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnshRaj112/portfolio-backend/internal/models"
)

// MemoryRepository keeps documents in process memory. It backs
// DB_DRIVER=memory and the tests.
type MemoryRepository[T any, PT Entity[T]] struct {
	mu    sync.RWMutex
	docs  map[primitive.ObjectID]T
	order []primitive.ObjectID

	// uniqueKey returns the field name and value that must be unique, if any.
	uniqueKey func(*T) (string, string)
}

func NewMemoryRepository[T any, PT Entity[T]]() *MemoryRepository[T, PT] {
	return &MemoryRepository[T, PT]{docs: make(map[primitive.ObjectID]T)}
}

// NewMemoryRepositories returns empty in-memory collections.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Users:        NewMemoryUserRepository(),
		Messages:     NewMemoryRepository[models.Message](),
		Projects:     NewMemoryRepository[models.Project](),
		Skills:       NewMemoryRepository[models.Skill](),
		Timelines:    NewMemoryRepository[models.Timeline](),
		SoftwareApps: NewMemoryRepository[models.SoftwareApp](),
	}
}

func (r *MemoryRepository[T, PT]) Create(_ context.Context, doc *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := PT(doc)
	if p.GetID().IsZero() {
		p.SetID(primitive.NewObjectID())
	}
	if _, exists := r.docs[p.GetID()]; exists {
		return &DuplicateKeyError{Field: "_id"}
	}
	if err := r.checkUnique(doc); err != nil {
		return err
	}
	r.docs[p.GetID()] = *doc
	r.order = append(r.order, p.GetID())
	return nil
}

func (r *MemoryRepository[T, PT]) FindByID(_ context.Context, id string) (*T, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[oid]
	if !ok {
		return nil, ErrNotFound
	}
	return &doc, nil
}

func (r *MemoryRepository[T, PT]) FindAll(_ context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]T, 0, len(r.order))
	for _, id := range r.order {
		docs = append(docs, r.docs[id])
	}
	return docs, nil
}

func (r *MemoryRepository[T, PT]) Replace(_ context.Context, doc *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := PT(doc).GetID()
	if _, ok := r.docs[id]; !ok {
		return ErrNotFound
	}
	if err := r.checkUnique(doc); err != nil {
		return err
	}
	r.docs[id] = *doc
	return nil
}

func (r *MemoryRepository[T, PT]) Delete(_ context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[oid]; !ok {
		return ErrNotFound
	}
	delete(r.docs, oid)
	for i, v := range r.order {
		if v == oid {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// checkUnique must be called with mu held.
func (r *MemoryRepository[T, PT]) checkUnique(doc *T) error {
	if r.uniqueKey == nil {
		return nil
	}
	field, value := r.uniqueKey(doc)
	id := PT(doc).GetID()
	for otherID, other := range r.docs {
		if otherID == id {
			continue
		}
		if _, v := r.uniqueKey(&other); v == value {
			return &DuplicateKeyError{Field: field}
		}
	}
	return nil
}

// update applies fn to the first document matching match, under the lock.
func (r *MemoryRepository[T, PT]) update(match func(*T) bool, fn func(*T)) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		doc := r.docs[id]
		if !match(&doc) {
			continue
		}
		fn(&doc)
		r.docs[id] = doc
		return &doc, nil
	}
	return nil, ErrNotFound
}

// MemoryUserRepository enforces the unique email index in memory.
type MemoryUserRepository struct {
	*MemoryRepository[models.User, *models.User]
}

func NewMemoryUserRepository() *MemoryUserRepository {
	repo := NewMemoryRepository[models.User]()
	repo.uniqueKey = func(u *models.User) (string, string) { return "email", u.Email }
	return &MemoryUserRepository{repo}
}

func (r *MemoryUserRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.docs)), nil
}

func (r *MemoryUserRepository) FindFirst(_ context.Context) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.order) == 0 {
		return nil, ErrNotFound
	}
	u := r.docs[r.order[0]]
	return &u, nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if u := r.docs[id]; u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) UpdatePassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	_, err := r.update(byID(id), func(u *models.User) { u.Password = passwordHash })
	return err
}

func (r *MemoryUserRepository) SetResetToken(_ context.Context, id primitive.ObjectID, tokenHash string, expiresAt time.Time) error {
	_, err := r.update(byID(id), func(u *models.User) {
		exp := expiresAt.UTC()
		u.ResetPasswordToken = tokenHash
		u.ResetPasswordExpiration = &exp
	})
	return err
}

func (r *MemoryUserRepository) ClearResetToken(_ context.Context, id primitive.ObjectID) error {
	_, err := r.update(byID(id), clearReset)
	return err
}

func (r *MemoryUserRepository) ConsumeResetToken(_ context.Context, tokenHash string, now time.Time, passwordHash string) (*models.User, error) {
	match := func(u *models.User) bool {
		return tokenHash != "" &&
			u.ResetPasswordToken == tokenHash &&
			u.ResetPasswordExpiration != nil &&
			u.ResetPasswordExpiration.After(now)
	}
	return r.update(match, func(u *models.User) {
		clearReset(u)
		if passwordHash != "" {
			u.Password = passwordHash
		}
	})
}

func byID(id primitive.ObjectID) func(*models.User) bool {
	return func(u *models.User) bool { return u.ID == id }
}

func clearReset(u *models.User) {
	u.ResetPasswordToken = ""
	u.ResetPasswordExpiration = nil
}
