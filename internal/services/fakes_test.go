package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/AnshRaj112/portfolio-backend/internal/models"
)

type fakeMedia struct {
	mu         sync.Mutex
	seq        int
	objects    map[string]string
	deleted    []string
	uploads    int
	failUpload bool
	deleteErr  error
}

func newFakeMedia() *fakeMedia {
	return &fakeMedia{objects: make(map[string]string)}
}

func (m *fakeMedia) Upload(_ context.Context, r io.Reader, filename, folder string) (models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpload {
		return models.Asset{}, errors.New("media host unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return models.Asset{}, err
	}
	m.seq++
	m.uploads++
	key := fmt.Sprintf("%s/%d-%s", folder, m.seq, filename)
	m.objects[key] = string(data)
	return models.Asset{PublicID: key, URL: "https://media.test/" + key}, nil
}

func (m *fakeMedia) Delete(_ context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, publicID)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.objects, publicID)
	return nil
}

func (m *fakeMedia) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

func (m *fakeMedia) deletes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

// lastToken extracts the reset token from the most recent mail.
func (m *fakeMailer) lastToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return ""
	}
	body := m.sent[len(m.sent)-1].body
	_, rest, ok := strings.Cut(body, "/resetPassword/")
	if !ok {
		return ""
	}
	token, _, _ := strings.Cut(rest, "\n")
	return token
}

func file(name, content string) *FileUpload {
	return &FileUpload{Filename: name, Body: strings.NewReader(content)}
}

func ptr[T any](v T) *T {
	return &v
}
