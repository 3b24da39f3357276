package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/portfolio/adapters/persistence"
	"github.com/khoahotran/portfolio/internal/application/service"
	contactUC "github.com/khoahotran/portfolio/internal/application/usecase/contact"
	mediaUC "github.com/khoahotran/portfolio/internal/application/usecase/media"
	portfolioUC "github.com/khoahotran/portfolio/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio/internal/domain/contact"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const testSecret = "s3cret"

type fakeMailer struct {
	sent []contact.Email
	err  error
}

func (m *fakeMailer) Send(_ context.Context, email contact.Email) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, email)
	return "msg_123", nil
}

type fakeUploader struct {
	deleted *[]string
}

func (fakeUploader) Upload(_ context.Context, file io.Reader, folder, publicID string) (string, error) {
	if _, err := io.ReadAll(file); err != nil {
		return "", err
	}
	return "https://cdn.example.com/" + folder + "/" + publicID + ".png", nil
}

func (u fakeUploader) Delete(_ context.Context, publicID string) error {
	if u.deleted != nil {
		*u.deleted = append(*u.deleted, publicID)
	}
	return nil
}

type APITestSuite struct {
	suite.Suite
	router  *gin.Engine
	mailer  *fakeMailer
	store   service.BlobStore
	deleted []string
}

func newTestRouter(mailer service.Mailer, store service.BlobStore, uploader service.Uploader, opts RouterOptions) *gin.Engine {
	log := logger.NewNop()
	portfolio := portfolioUC.NewPortfolioUseCase(store, nil, "portfolio/data.json", log)
	return NewRouter(Handlers{
		Contact:   NewContactHandler(contactUC.NewSendMessageUseCase(mailer, "Portfolio <noreply@example.com>", "owner@example.com", log), log),
		Portfolio: NewPortfolioHandler(portfolio, log),
		Media: NewMediaHandler(
			mediaUC.NewUploadImageUseCase(uploader, "portfolio/projects", log),
			mediaUC.NewDeleteImageUseCase(uploader, "portfolio/projects", log),
			log,
		),
		RSS: NewRSSHandler(portfolio, "https://example.com/", log),
	}, opts, log)
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mailer = &fakeMailer{}
	s.store = persistence.NewMemoryBlobStore()
	s.deleted = nil
	s.router = newTestRouter(s.mailer, s.store, fakeUploader{deleted: &s.deleted}, RouterOptions{APISecret: testSecret})
}

func (s *APITestSuite) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var body map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token, "Content-Type": "application/json"}
}

func (s *APITestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/api/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"UP"}`, w.Body.String())
}

func (s *APITestSuite) TestContact_MethodNotAllowed() {
	w := s.do(http.MethodGet, "/api/contact", "", nil)
	s.Equal(http.StatusMethodNotAllowed, w.Code)
	s.Equal("POST", w.Header().Get("Allow"))
	s.Equal("Method not allowed", s.errorBody(w))
}

func (s *APITestSuite) TestContact_BlankFields() {
	w := s.do(http.MethodPost, "/api/contact", `{"name":"  ","email":"a@b.c","message":"hi"}`, nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Name, email, and message are required", s.errorBody(w))
	s.Empty(s.mailer.sent)
}

func (s *APITestSuite) TestContact_InvalidJSON() {
	w := s.do(http.MethodPost, "/api/contact", `{not json`, nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Name, email, and message are required", s.errorBody(w))
}

func (s *APITestSuite) TestContact_Sent() {
	w := s.do(http.MethodPost, "/api/contact", `{"name":" Ann ","email":"ann@x.io","message":"Hi\nthere"}`, nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"ok":true,"id":"msg_123"}`, w.Body.String())

	s.Require().Len(s.mailer.sent, 1)
	email := s.mailer.sent[0]
	s.Equal("Portfolio contact from Ann", email.Subject)
	s.Equal("ann@x.io", email.ReplyTo)
	s.Equal("owner@example.com", email.To)
	s.Equal("Hi\nthere\n\n---\nFrom: Ann\nEmail: ann@x.io", email.Text)
}

func (s *APITestSuite) TestContact_ProviderError() {
	s.mailer.err = &service.ProviderError{Message: "Domain not verified"}
	w := s.do(http.MethodPost, "/api/contact", `{"name":"Ann","email":"ann@x.io","message":"Hi"}`, nil)
	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("Domain not verified", s.errorBody(w))
}

func (s *APITestSuite) TestContact_TransportError() {
	s.mailer.err = errors.New("dial tcp: timeout")
	w := s.do(http.MethodPost, "/api/contact", `{"name":"Ann","email":"ann@x.io","message":"Hi"}`, nil)
	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("Failed to send message", s.errorBody(w))
}

func (s *APITestSuite) TestPortfolio_GetAbsent() {
	w := s.do(http.MethodGet, "/api/portfolio", "", nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Empty(w.Body.String())
}

func (s *APITestSuite) TestPortfolio_WriteRequiresSecret() {
	cases := map[string]map[string]string{
		"no header":     nil,
		"wrong secret":  bearer("nope"),
		"not bearer":    {"Authorization": "Basic " + testSecret},
		"empty bearer":  {"Authorization": "Bearer "},
		"secret suffix": bearer(testSecret + "x"),
	}
	for name, headers := range cases {
		s.Run(name, func() {
			w := s.do(http.MethodPost, "/api/portfolio", `{"name":"X"}`, headers)
			s.Equal(http.StatusUnauthorized, w.Code)
			s.Equal("Unauthorized", s.errorBody(w))

			_, err := s.store.Get(context.Background(), "portfolio/data.json")
			s.Error(err)
		})
	}
}

func (s *APITestSuite) TestPortfolio_PostThenGetReturnsSameBytes() {
	doc := `{"name":"Ann","skills":{"Go":["gin"]},"projects":[]}`
	w := s.do(http.MethodPost, "/api/portfolio", doc, bearer(testSecret))
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"ok":true}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/portfolio", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("application/json", w.Header().Get("Content-Type"))
	s.Equal(doc, w.Body.String())
}

func (s *APITestSuite) TestPortfolio_PutOverwrites() {
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/api/portfolio", `{"v":1}`, bearer(testSecret)).Code)
	s.Equal(http.StatusOK, s.do(http.MethodPut, "/api/portfolio", `{"v":2}`, bearer(testSecret)).Code)

	w := s.do(http.MethodGet, "/api/portfolio", "", nil)
	s.Equal(`{"v":2}`, w.Body.String())
}

func (s *APITestSuite) TestPortfolio_InvalidJSON() {
	w := s.do(http.MethodPost, "/api/portfolio", `{"name":`, bearer(testSecret))
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Invalid JSON body", s.errorBody(w))
}

func (s *APITestSuite) TestPortfolio_NullBodyRejected() {
	w := s.do(http.MethodPost, "/api/portfolio", `null`, bearer(testSecret))
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Invalid JSON body", s.errorBody(w))

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/portfolio", "", nil).Code)
}

func (s *APITestSuite) TestPortfolio_MethodNotAllowed() {
	w := s.do(http.MethodDelete, "/api/portfolio", "", bearer(testSecret))
	s.Equal(http.StatusMethodNotAllowed, w.Code)
	s.Equal("GET, POST, PUT", w.Header().Get("Allow"))
	s.Equal("Method Not Allowed", w.Body.String())
}

func (s *APITestSuite) TestProjectsFeed() {
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/projects/rss", "", nil).Code)

	doc := `{"name":"Ann","intro":"hi","projects":[{"id":"p1","title":"Relay","description":"Mail relay","techStack":[],"role":"dev"}]}`
	s.Require().Equal(http.StatusOK, s.do(http.MethodPost, "/api/portfolio", doc, bearer(testSecret)).Code)

	w := s.do(http.MethodGet, "/api/projects/rss", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Header().Get("Content-Type"), "application/xml")
	s.Contains(w.Body.String(), "<title>Relay</title>")
	s.Contains(w.Body.String(), "https://example.com/#projects")
}

func (s *APITestSuite) TestMediaUpload() {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "shot.png")
	s.Require().NoError(err)
	_, _ = part.Write([]byte("png-bytes"))
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/media", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testSecret)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusCreated, w.Code)
	var out map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	s.True(strings.HasPrefix(out["url"], "https://cdn.example.com/portfolio/projects/"))
	s.NotEmpty(out["public_id"])
}

func (s *APITestSuite) TestMediaUpload_RequiresSecret() {
	w := s.do(http.MethodPost, "/api/media", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *APITestSuite) TestMediaDelete() {
	w := s.do(http.MethodDelete, "/api/media/abc-123", "", bearer(testSecret))

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"ok":true}`, w.Body.String())
	s.Equal([]string{"portfolio/projects/abc-123"}, s.deleted)
}

func (s *APITestSuite) TestMediaDelete_RequiresSecret() {
	w := s.do(http.MethodDelete, "/api/media/abc-123", "", bearer("wrong"))

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Empty(s.deleted)
}

func (s *APITestSuite) TestMediaDelete_RejectsDotID() {
	w := s.do(http.MethodDelete, "/api/media/..", "", bearer(testSecret))

	s.NotEqual(http.StatusOK, w.Code)
	s.Empty(s.deleted)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func TestContact_NotConfiguredBeforeBodyIsRead(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newTestRouter(nil, persistence.NewMemoryBlobStore(), nil, RouterOptions{APISecret: testSecret})

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{garbage`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Contact form not configured"}`, w.Body.String())
}

func TestPortfolio_BlankServerSecretRejectsEveryWrite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newTestRouter(&fakeMailer{}, persistence.NewMemoryBlobStore(), nil, RouterOptions{})

	for _, auth := range []string{"", "Bearer ", "Bearer anything"} {
		req := httptest.NewRequest(http.MethodPost, "/api/portfolio", strings.NewReader(`{}`))
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "auth=%q", auth)
	}
}

func TestMediaUpload_NotConfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newTestRouter(&fakeMailer{}, persistence.NewMemoryBlobStore(), nil, RouterOptions{APISecret: testSecret})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "shot.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/media", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testSecret)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Media upload not configured"}`, w.Body.String())
}

func TestRateLimiter_RejectsBurstOverflow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newTestRouter(&fakeMailer{}, persistence.NewMemoryBlobStore(), nil,
		RouterOptions{APISecret: testSecret, ContactRPS: 0.001, ContactBurst: 1})

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/contact",
			strings.NewReader(`{"name":"Ann","email":"ann@x.io","message":"Hi"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewRateLimiter(1, 1)
	l.now = func() time.Time { return clock }
	l.lastSweep.Store(clock.UnixNano())

	l.limiter("10.0.0.1")
	l.limiter("10.0.0.2")
	assert.Equal(t, 2, l.size())

	clock = clock.Add(limiterIdleTTL / 2)
	l.limiter("10.0.0.2")
	assert.Equal(t, 2, l.size(), "no sweep before the ttl elapses")

	clock = clock.Add(limiterIdleTTL/2 + time.Second)
	l.limiter("10.0.0.3")
	assert.Equal(t, 2, l.size(), "10.0.0.1 idle past the ttl is dropped")
	_, ok := l.limiters.Load("10.0.0.1")
	assert.False(t, ok)
	_, ok = l.limiters.Load("10.0.0.2")
	assert.True(t, ok)
}

func TestRequestIDMiddleware_EchoesIncomingID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newTestRouter(&fakeMailer{}, persistence.NewMemoryBlobStore(), nil, RouterOptions{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-1", w.Header().Get(HeaderRequestID))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}
