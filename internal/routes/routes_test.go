package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/portfolio-backend/internal/handlers"
	"github.com/AnshRaj112/portfolio-backend/internal/logger"
	"github.com/AnshRaj112/portfolio-backend/internal/middleware"
	"github.com/AnshRaj112/portfolio-backend/internal/services"
	"github.com/AnshRaj112/portfolio-backend/internal/store"
)

type captureMailer struct {
	mu     sync.Mutex
	bodies []string
}

func (m *captureMailer) Send(_ context.Context, _, _, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bodies = append(m.bodies, body)
	return nil
}

func (m *captureMailer) token(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.bodies)
	_, rest, ok := strings.Cut(m.bodies[len(m.bodies)-1], "/resetPassword/")
	require.True(t, ok)
	token, _, _ := strings.Cut(rest, "\n")
	return token
}

type testServer struct {
	t      *testing.T
	router http.Handler
	media  *services.MemoryMedia
	mailer *captureMailer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	media := services.NewMemoryMedia("http://media.test/media")
	mailer := &captureMailer{}
	svc := services.New(store.NewMemoryRepositories(), media, mailer, services.Options{
		JWTSecret:    "test-secret",
		SessionTTL:   time.Hour,
		DashboardURL: "http://dash.test",
	})
	h := handlers.New(svc, handlers.Options{
		MaxUploadBytes: 1 << 20,
		CookieTTL:      time.Hour,
		Files:          media,
	})
	router := NewRouter(h, svc.Auth, logger.Nop(), RouterOptions{
		AllowedOrigins: []string{"http://localhost:5174"},
		Development:    true,
	})
	return &testServer{t: t, router: router, media: media, mailer: mailer}
}

type body struct {
	reader      io.Reader
	contentType string
}

func jsonBody(t *testing.T, v any) body {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return body{reader: bytes.NewReader(b), contentType: "application/json"}
}

func multipartBody(t *testing.T, fields map[string]string, files map[string]string) body {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for name, content := range files {
		fw, err := mw.CreateFormFile(name, name+".bin")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body{reader: &buf, contentType: mw.FormDataContentType()}
}

func (s *testServer) do(method, path string, b *body, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if b != nil {
		reader = b.reader
	}
	req := httptest.NewRequest(method, path, reader)
	if b != nil {
		req.Header.Set("Content-Type", b.contentType)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", middleware.SessionCookie)
	return nil
}

func (s *testServer) register() *http.Cookie {
	b := multipartBody(s.t, map[string]string{
		"fullName":    "Jane Doe",
		"email":       "jane@example.com",
		"phoneNumber": "+1 555 0100",
		"aboutMe":     "Backend developer",
		"password":    "password123",
	}, map[string]string{"avatar": "avatar-bytes", "resume": "resume-bytes"})
	rr := s.do(http.MethodPost, "/api/v1/user/register", &b, nil)
	require.Equal(s.t, http.StatusCreated, rr.Code, rr.Body.String())
	return sessionCookie(s.t, rr)
}

func TestEndToEnd_ProjectLifecycle(t *testing.T) {
	s := newTestServer(t)

	regCookie := s.register()
	assert.True(t, regCookie.HttpOnly)

	login := jsonBody(t, map[string]string{"email": "jane@example.com", "password": "password123"})
	rr := s.do(http.MethodPost, "/api/v1/user/login", &login, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	loginResp := decode(t, rr)
	assert.Equal(t, true, loginResp["success"])
	assert.NotEmpty(t, loginResp["token"])
	user := loginResp["user"].(map[string]any)
	assert.NotContains(t, user, "password")
	cookie := sessionCookie(t, rr)
	assert.Equal(t, loginResp["token"], cookie.Value)

	create := multipartBody(t, map[string]string{
		"title":        "Portfolio",
		"description":  "Personal site",
		"gitRepoURL":   "https://github.com/jane/portfolio",
		"projectLink":  "https://jane.dev",
		"technologies": "Go, MongoDB",
		"stack":        "Backend",
		"deployed":     "Yes",
	}, map[string]string{"projectBanner": "banner-bytes"})
	rr = s.do(http.MethodPost, "/api/v1/projects/add", &create, cookie)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	project := decode(t, rr)["project"].(map[string]any)
	id := project["_id"].(string)
	assert.Equal(t, []any{"Go", "MongoDB"}, project["technologies"])
	assert.Equal(t, true, project["deployed"])

	rr = s.do(http.MethodGet, "/api/v1/projects/getAll", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	projects := decode(t, rr)["projects"].([]any)
	require.Len(t, projects, 1)
	banner := projects[0].(map[string]any)["projectBanner"].(map[string]any)
	key := banner["public_id"].(string)

	bannerURL, err := url.Parse(banner["url"].(string))
	require.NoError(t, err)
	rr = s.do(http.MethodGet, bannerURL.Path, nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "banner-bytes", rr.Body.String())

	rr = s.do(http.MethodDelete, "/api/v1/projects/delete/"+id, nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "Project deleted successfully", decode(t, rr)["message"])

	_, ok := s.media.Get(key)
	assert.False(t, ok)
	rr = s.do(http.MethodGet, bannerURL.Path, nil, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.do(http.MethodGet, "/api/v1/projects/getAll", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode(t, rr)["projects"])

	rr = s.do(http.MethodDelete, "/api/v1/projects/delete/"+id, nil, cookie)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAuthGate(t *testing.T) {
	s := newTestServer(t)
	cookie := s.register()

	tests := []struct {
		name       string
		cookie     *http.Cookie
		wantStatus int
		wantMsg    string
	}{
		{"no cookie", nil, http.StatusUnauthorized, "User not authenticated."},
		{"tampered", &http.Cookie{Name: middleware.SessionCookie, Value: cookie.Value + "x"}, http.StatusUnauthorized, "Invalid token. Try Again."},
		{"garbage", &http.Cookie{Name: middleware.SessionCookie, Value: "abc"}, http.StatusUnauthorized, "Invalid token. Try Again."},
		{"valid", cookie, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.do(http.MethodGet, "/api/v1/user/profile", nil, tt.cookie)
			require.Equal(t, tt.wantStatus, rr.Code)
			resp := decode(t, rr)
			if tt.wantMsg != "" {
				assert.Equal(t, false, resp["success"])
				assert.Equal(t, tt.wantMsg, resp["message"])
				return
			}
			assert.Equal(t, "jane@example.com", resp["user"].(map[string]any)["email"])
		})
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	s := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/projects/add"},
		{http.MethodPut, "/api/v1/skills/update/0123456789abcdef01234567"},
		{http.MethodDelete, "/api/v1/timelines/delete/0123456789abcdef01234567"},
		{http.MethodPost, "/api/v1/softwareApps/add"},
		{http.MethodGet, "/api/v1/message/getById/0123456789abcdef01234567"},
		{http.MethodDelete, "/api/v1/message/delete/0123456789abcdef01234567"},
		{http.MethodPut, "/api/v1/user/profile/updatePassword"},
		{http.MethodGet, "/api/v1/user/logout"},
	} {
		rr := s.do(route.method, route.path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, route.path)
	}
}

func TestMessages(t *testing.T) {
	s := newTestServer(t)
	cookie := s.register()

	short := jsonBody(t, map[string]string{"senderName": "Bob", "subject": "Hi", "message": "Hello there"})
	rr := s.do(http.MethodPost, "/api/v1/message/send", &short, nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Subject must contain at least 3 characters", decode(t, rr)["message"])

	ok := jsonBody(t, map[string]string{"senderName": "Bob", "subject": "Hey", "message": "Hello there"})
	rr = s.do(http.MethodPost, "/api/v1/message/send", &ok, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	id := decode(t, rr)["data"].(map[string]any)["_id"].(string)

	rr = s.do(http.MethodGet, "/api/v1/message/getAll", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code, "listing messages is public")
	assert.Len(t, decode(t, rr)["messages"], 1)

	rr = s.do(http.MethodGet, "/api/v1/message/getById/"+id, nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(http.MethodGet, "/api/v1/message/getById/not-an-id", nil, cookie)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodDelete, "/api/v1/message/delete/"+id, nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = s.do(http.MethodDelete, "/api/v1/message/delete/"+id, nil, cookie)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSkillsTimelinesSoftwareApps(t *testing.T) {
	s := newTestServer(t)
	cookie := s.register()

	skill := multipartBody(t, map[string]string{"title": "Go", "proficiency": "90"}, map[string]string{"svg": "<svg/>"})
	rr := s.do(http.MethodPost, "/api/v1/skills/add", &skill, cookie)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	skillID := decode(t, rr)["skill"].(map[string]any)["_id"].(string)

	update := jsonBody(t, map[string]any{"proficiency": 95})
	rr = s.do(http.MethodPut, "/api/v1/skills/update/"+skillID, &update, cookie)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, float64(95), decode(t, rr)["skill"].(map[string]any)["proficiency"])

	tl := jsonBody(t, map[string]any{"title": "BSc", "description": "Computer Science", "timeline": map[string]string{"from": "2019", "to": "2023"}})
	rr = s.do(http.MethodPost, "/api/v1/timelines/add", &tl, cookie)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	event := decode(t, rr)["timelineEvent"].(map[string]any)
	assert.Equal(t, map[string]any{"from": "2019", "to": "2023"}, event["timeline"])

	rr = s.do(http.MethodGet, "/api/v1/timelines/getAll", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode(t, rr)["timelineEvents"], 1)

	noIcon := multipartBody(t, map[string]string{"name": "VS Code"}, nil)
	rr = s.do(http.MethodPost, "/api/v1/softwareApps/add", &noIcon, cookie)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	app := multipartBody(t, map[string]string{"name": "VS Code"}, map[string]string{"svg": "<svg/>"})
	rr = s.do(http.MethodPost, "/api/v1/softwareApps/add", &app, cookie)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	icon := decode(t, rr)["softwareApp"].(map[string]any)["svg"].(map[string]any)
	appKey := icon["public_id"].(string)

	rr = s.do(http.MethodGet, "/api/v1/softwareApps/getAll", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	apps := decode(t, rr)["softwareApps"].([]any)
	require.Len(t, apps, 1)

	rr = s.do(http.MethodDelete, "/api/v1/softwareApps/delete/"+apps[0].(map[string]any)["_id"].(string), nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	_, ok := s.media.Get(appKey)
	assert.False(t, ok)
}

func TestForgotAndResetPassword(t *testing.T) {
	s := newTestServer(t)
	s.register()

	forgot := jsonBody(t, map[string]string{"email": "jane@example.com"})
	rr := s.do(http.MethodPost, "/api/v1/user/forgotPassword", &forgot, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "Reset password email sent to email: jane@example.com successfully", decode(t, rr)["message"])

	token := s.mailer.token(t)
	reset := jsonBody(t, map[string]string{"password": "newpassword1", "confirmPassword": "newpassword1"})
	rr = s.do(http.MethodPut, "/api/v1/user/resetPassword/"+token, &reset, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.NotEmpty(t, sessionCookie(t, rr).Value)

	again := jsonBody(t, map[string]string{"password": "newpassword2", "confirmPassword": "newpassword2"})
	rr = s.do(http.MethodPut, "/api/v1/user/resetPassword/"+token, &again, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	login := jsonBody(t, map[string]string{"email": "jane@example.com", "password": "newpassword1"})
	rr = s.do(http.MethodPost, "/api/v1/user/login", &login, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestLogoutExpiresCookie(t *testing.T) {
	s := newTestServer(t)
	cookie := s.register()

	rr := s.do(http.MethodGet, "/api/v1/user/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	cleared := sessionCookie(t, rr)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	// no server-side revocation: the old token still authenticates
	rr = s.do(http.MethodGet, "/api/v1/user/profile", nil, cookie)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestPortfolioIsPublic(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodGet, "/api/v1/user/profile/portfolio", nil, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	s.register()
	rr = s.do(http.MethodGet, "/api/v1/user/profile/portfolio", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Jane Doe", decode(t, rr)["user"].(map[string]any)["fullName"])
}

func TestHealthAndUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", decode(t, rr)["status"])
	assert.NotEmpty(t, rr.Header().Get(middleware.TraceIDHeader))

	rr = s.do(http.MethodGet, "/api/v1/nope", nil, nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Route not found", decode(t, rr)["message"])
}
