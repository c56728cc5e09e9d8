package services

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/AnshRaj112/portfolio-backend/internal/models"
)

// MemoryMedia holds assets in process memory for MEDIA_PROVIDER=memory.
type MemoryMedia struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string][]byte
}

func NewMemoryMedia(baseURL string) *MemoryMedia {
	return &MemoryMedia{baseURL: baseURL, objects: make(map[string][]byte)}
}

func (m *MemoryMedia) Upload(_ context.Context, r io.Reader, _ string, folder string) (models.Asset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.Asset{}, err
	}
	key := folder + "/" + uuid.NewString()

	m.mu.Lock()
	m.objects[key] = data
	m.mu.Unlock()

	return models.Asset{PublicID: key, URL: m.baseURL + "/" + key}, nil
}

func (m *MemoryMedia) Delete(_ context.Context, publicID string) error {
	m.mu.Lock()
	delete(m.objects, publicID)
	m.mu.Unlock()
	return nil
}

// Get returns the stored bytes for publicID.
func (m *MemoryMedia) Get(publicID string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[publicID]
	return data, ok
}

func (m *MemoryMedia) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
