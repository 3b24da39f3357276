package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type BlobRepoIntegrationTestSuite struct {
	suite.Suite
	pgContainer *postgres.PostgresContainer
	blobRepo    service.BlobStore
	closePool   func()
}

func (s *BlobRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	var cfg config.Config
	cfg.DB.DSN = dsn
	pool, err := NewPostgresPool(cfg, logger.NewNop())
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.closePool = pool.Close
	s.blobRepo = NewPostgresBlobRepo(pool, logger.NewNop())
}

func (s *BlobRepoIntegrationTestSuite) TearDownSuite() {
	if s.closePool != nil {
		s.closePool()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestBlobRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(BlobRepoIntegrationTestSuite))
}

func (s *BlobRepoIntegrationTestSuite) Test_Get_Missing() {
	_, err := s.blobRepo.Get(context.Background(), "portfolio/missing.json")
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *BlobRepoIntegrationTestSuite) Test_Put_Overwrites() {
	ctx := context.Background()
	key := "portfolio/data.json"

	s.Require().NoError(s.blobRepo.Put(ctx, key, []byte(`{"name":"A"}`), "application/json"))
	s.Require().NoError(s.blobRepo.Put(ctx, key, []byte(`{"name":"B"}`), "application/json"))

	body, err := s.blobRepo.Get(ctx, key)
	s.NoError(err)
	s.Equal(`{"name":"B"}`, string(body))
}

func (s *BlobRepoIntegrationTestSuite) Test_Put_KeepsBytesVerbatim() {
	ctx := context.Background()
	raw := []byte("{\n  \"intro\": \"<b>hi</b> é\"\n}")

	s.Require().NoError(s.blobRepo.Put(ctx, "portfolio/raw.json", raw, "application/json"))

	body, err := s.blobRepo.Get(ctx, "portfolio/raw.json")
	s.NoError(err)
	s.Equal(raw, body)
}
