// Package editor is the admin's working copy of the portfolio document. Every
// edit produces a new draft, saves it locally and pushes it in the background.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/internal/localstore"
	"github.com/khoahotran/portfolio/internal/syncclient"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const ExportFileName = "portfolio.json"

var (
	ErrUnknownField = errors.New("unknown field")
	ErrNotFound     = errors.New("not found")
)

// Remote is the part of syncclient.Client the editor depends on.
type Remote interface {
	FetchRemote(ctx context.Context) portfolio.Document
	Push(ctx context.Context, doc portfolio.Document, token string) syncclient.SyncResult
}

type Editor struct {
	store  *localstore.Store
	remote Remote
	logger logger.Logger
	now    func() time.Time

	mu       sync.Mutex
	draft    portfolio.Document
	lastSync *syncclient.SyncResult

	pushes sync.WaitGroup
}

// New starts from the locally stored document.
func New(ctx context.Context, store *localstore.Store, remote Remote, log logger.Logger) *Editor {
	return &Editor{
		store:  store,
		remote: remote,
		logger: log,
		now:    time.Now,
		draft:  store.Load(ctx),
	}
}

// Draft returns a copy of the current document.
func (e *Editor) Draft() portfolio.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.Clone()
}

// LastSync is the result of the most recently completed push, if any.
func (e *Editor) LastSync() (syncclient.SyncResult, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastSync == nil {
		return syncclient.SyncResult{}, false
	}
	return *e.lastSync, true
}

// Wait blocks until every background push and mount refresh has finished.
func (e *Editor) Wait() {
	e.pushes.Wait()
}

// Mount refreshes the draft from the remote in the background.
func (e *Editor) Mount(ctx context.Context) {
	e.pushes.Add(1)
	go func() {
		defer e.pushes.Done()
		e.Refresh(ctx)
	}()
}

// Refresh replaces the draft with the remote document, or the local one when
// the remote is unreachable.
func (e *Editor) Refresh(ctx context.Context) portfolio.Document {
	doc := e.remote.FetchRemote(ctx)
	e.mu.Lock()
	e.draft = doc.Clone()
	e.mu.Unlock()
	return doc
}

func (e *Editor) Token(ctx context.Context) string {
	return e.store.Token(ctx)
}

// SetToken stores the sync token. Blank means local-only.
func (e *Editor) SetToken(ctx context.Context, token string) error {
	if err := e.store.SetToken(ctx, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// SaveToCloud pushes the current draft and waits for the result.
func (e *Editor) SaveToCloud(ctx context.Context) syncclient.SyncResult {
	doc := e.Draft()
	if err := e.store.Save(ctx, doc); err != nil {
		e.logger.Warn("Local save failed", zap.Error(err))
	}
	res := e.remote.Push(ctx, doc, e.store.Token(ctx))
	e.setLastSync(res)
	return res
}

// LoadFromCloud replaces the draft with the remote document.
func (e *Editor) LoadFromCloud(ctx context.Context) syncclient.SyncResult {
	e.Refresh(ctx)
	res := syncclient.SyncResult{Synced: true}
	e.setLastSync(res)
	return res
}

// Export writes the draft as indented JSON. Nothing is persisted.
func (e *Editor) Export(w io.Writer) error {
	data, err := portfolio.Encode(e.Draft())
	if err != nil {
		return fmt.Errorf("encode portfolio: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func (e *Editor) setLastSync(res syncclient.SyncResult) {
	e.mu.Lock()
	e.lastSync = &res
	e.mu.Unlock()
}

// apply runs edit on a copy of the draft. When edit reports a change the copy
// becomes the draft, is saved locally and pushed in the background.
func (e *Editor) apply(ctx context.Context, edit func(d *portfolio.Document) (bool, error)) error {
	e.mu.Lock()
	next := e.draft.Clone()
	changed, err := edit(&next)
	if err != nil || !changed {
		e.mu.Unlock()
		return err
	}
	e.draft = next
	saveErr := e.store.Save(ctx, next)
	e.mu.Unlock()

	if saveErr != nil {
		return saveErr
	}

	token := e.store.Token(ctx)
	e.pushes.Add(1)
	go func() {
		defer e.pushes.Done()
		res := e.remote.Push(ctx, next, token)
		if !res.Synced && res.Error != "" {
			e.logger.Warn("Background push failed", zap.String("error", res.Error))
		}
		e.setLastSync(res)
	}()
	return nil
}
