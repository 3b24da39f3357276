package portfolio

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func newFakeStore() *fakeStore { return &fakeStore{objects: map[string][]byte{}} }

func (s *fakeStore) Get(_ context.Context, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	data, ok := s.objects[path]
	if !ok {
		return nil, apperror.NewNotFound("blob", path)
	}
	return data, nil
}

func (s *fakeStore) Put(_ context.Context, path string, data []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.objects[path] = data
	return nil
}

type chanPublisher chan service.PortfolioEvent

func (p chanPublisher) PublishPortfolioEvent(_ context.Context, e service.PortfolioEvent) error {
	p <- e
	return nil
}

func TestPortfolioUseCase_SaveThenGet(t *testing.T) {
	events := make(chanPublisher, 1)
	uc := NewPortfolioUseCase(newFakeStore(), events, "portfolio/data.json", logger.NewNop())
	body := []byte(`{"name":"Ann","skills":{"Go":["gin"]}}`)

	require.NoError(t, uc.ExecuteSave(context.Background(), body))

	got, err := uc.ExecuteGet(context.Background())
	require.NoError(t, err)
	assert.Equal(t, body, got)

	select {
	case e := <-events:
		assert.Equal(t, service.EventTypePortfolioUpdated, e.EventType)
		assert.Equal(t, "portfolio/data.json", e.Path)
		assert.JSONEq(t, string(body), string(e.Document))
		assert.NotEmpty(t, e.EventID)
	case <-time.After(time.Second):
		t.Fatal("expected a portfolio event")
	}
}

func TestPortfolioUseCase_GetMissing(t *testing.T) {
	uc := NewPortfolioUseCase(newFakeStore(), nil, "portfolio/data.json", logger.NewNop())

	_, err := uc.ExecuteGet(context.Background())

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestPortfolioUseCase_StorageFailure(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("connection refused")
	uc := NewPortfolioUseCase(store, nil, "portfolio/data.json", logger.NewNop())

	_, err := uc.ExecuteGet(context.Background())
	assert.ErrorIs(t, err, apperror.ErrInternal)
	assert.Equal(t, "Failed to load portfolio", apperror.Message(err))

	err = uc.ExecuteSave(context.Background(), []byte(`{}`))
	assert.Equal(t, "Failed to save portfolio", apperror.Message(err))
}

func TestPortfolioUseCase_RejectsInvalidJSON(t *testing.T) {
	store := newFakeStore()
	uc := NewPortfolioUseCase(store, nil, "portfolio/data.json", logger.NewNop())

	err := uc.ExecuteSave(context.Background(), []byte(`{"name":`))

	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Empty(t, store.objects)
}

func TestPortfolioUseCase_RejectsNonObjectBody(t *testing.T) {
	store := newFakeStore()
	uc := NewPortfolioUseCase(store, nil, "portfolio/data.json", logger.NewNop())

	for _, body := range []string{"null", "[]", `"doc"`} {
		err := uc.ExecuteSave(context.Background(), []byte(body))
		assert.ErrorIs(t, err, apperror.ErrInvalidInput, "body=%q", body)
	}
	assert.Empty(t, store.objects)
}

func TestPortfolioUseCase_ProjectsFeed(t *testing.T) {
	store := newFakeStore()
	uc := NewPortfolioUseCase(store, nil, "portfolio/data.json", logger.NewNop())
	body := `{"name":"Ann","intro":"hi","projects":[
		{"id":"p1","title":"Site","description":"d","techStack":[],"role":"dev","link":"https://a.dev"},
		{"id":"p2","title":"CLI","description":"","techStack":["Go"],"role":"dev"}]}`
	require.NoError(t, uc.ExecuteSave(context.Background(), []byte(body)))

	feed, err := uc.ExecuteProjectsFeed(context.Background(), "https://ann.dev")

	require.NoError(t, err)
	assert.Equal(t, "Ann - Projects", feed.Title)
	require.Len(t, feed.Items, 2)
	assert.Equal(t, "https://a.dev", feed.Items[0].Link.Href)
	assert.Equal(t, "https://ann.dev#projects", feed.Items[1].Link.Href)
}
