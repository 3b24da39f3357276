package localstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type failingKV struct{ *MemoryKV }

func (failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk gone")
}

func (failingKV) Set(context.Context, string, string) error { return errors.New("disk full") }

func TestLoad_EmptyStoreReturnsDefault(t *testing.T) {
	s := New(NewMemoryKV(), logger.NewNop())
	assert.Equal(t, Default(), s.Load(context.Background()))
}

func TestLoad_CorruptDataReturnsDefault(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(context.Background(), KeyPortfolio, "{oops"))

	s := New(kv, logger.NewNop())
	assert.Equal(t, Default(), s.Load(context.Background()))
}

func TestLoad_ReadErrorReturnsDefault(t *testing.T) {
	s := New(failingKV{NewMemoryKV()}, logger.NewNop())
	assert.Equal(t, Default(), s.Load(context.Background()))
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryKV(), logger.NewNop())

	doc := Default()
	doc.Name = "Ann"
	doc.Skills = doc.Skills.Rename("Languages", "Lang")
	doc.Projects = append(doc.Projects, portfolio.Project{ID: "p2", Title: "Second", TechStack: []string{}})

	require.NoError(t, s.Save(ctx, doc))
	assert.Equal(t, doc, s.Load(ctx))
}

func TestSave_WritesIndentedJSON(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := New(kv, logger.NewNop())

	require.NoError(t, s.Save(ctx, portfolio.Document{Name: "Ann"}))
	raw, ok, _ := kv.Get(ctx, KeyPortfolio)
	require.True(t, ok)
	assert.Contains(t, raw, "\n  \"name\": \"Ann\"")
}

func TestSave_PropagatesWriteError(t *testing.T) {
	s := New(failingKV{NewMemoryKV()}, logger.NewNop())
	assert.Error(t, s.Save(context.Background(), Default()))
}

func TestToken(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := New(kv, logger.NewNop())

	assert.Empty(t, s.Token(ctx))
	require.NoError(t, s.SetToken(ctx, "abc"))
	assert.Equal(t, "abc", s.Token(ctx))

	require.NoError(t, s.SetToken(ctx, ""))
	_, ok, _ := kv.Get(ctx, KeyToken)
	assert.False(t, ok)
}

func TestDefault_IsIndependentCopy(t *testing.T) {
	a := Default()
	a.Projects[0].Title = "changed"
	assert.NotEqual(t, "changed", Default().Projects[0].Title)
}

func TestLoad_NullDocumentReturnsDefault(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(context.Background(), KeyPortfolio, "null"))

	s := New(kv, logger.NewNop())
	assert.Equal(t, Default(), s.Load(context.Background()))
}
