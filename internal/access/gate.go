// Package access holds the admin flag that gates editor commands.
package access

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/localstore"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const (
	adminUser = "admin"
	adminPass = "123456"

	LoginPath       = "/admin"
	DefaultLanding  = "/admin/dashboard"
	grantedFlagTrue = "true"
)

var ErrInvalidCredentials = errors.New("Invalid username or password")

// Redirect tells the caller where to send a denied request and where it came from.
type Redirect struct {
	To   string
	From string
}

type Gate struct {
	kv     service.KeyValue
	logger logger.Logger
}

func NewGate(kv service.KeyValue, log logger.Logger) *Gate {
	return &Gate{kv: kv, logger: log}
}

func (g *Gate) IsGranted(ctx context.Context) bool {
	v, ok, err := g.kv.Get(ctx, localstore.KeyAdmin)
	if err != nil {
		g.logger.Warn("Admin flag read failed", zap.Error(err))
		return false
	}
	return ok && v == grantedFlagTrue
}

func (g *Gate) Grant(ctx context.Context) error {
	if err := g.kv.Set(ctx, localstore.KeyAdmin, grantedFlagTrue); err != nil {
		return fmt.Errorf("grant admin: %w", err)
	}
	return nil
}

func (g *Gate) Revoke(ctx context.Context) error {
	if err := g.kv.Delete(ctx, localstore.KeyAdmin); err != nil {
		return fmt.Errorf("revoke admin: %w", err)
	}
	return nil
}

// Guard reports whether requested may proceed. When it may not, the redirect
// points at the login screen and remembers requested.
func (g *Gate) Guard(ctx context.Context, requested string) (Redirect, bool) {
	if g.IsGranted(ctx) {
		return Redirect{}, true
	}
	return Redirect{To: LoginPath, From: requested}, false
}

// Login compares against the fixed admin credentials and grants on a match.
func (g *Gate) Login(ctx context.Context, username, password string) error {
	if username != adminUser || password != adminPass {
		g.logger.Info("Admin login rejected", zap.String("username", username))
		return ErrInvalidCredentials
	}
	return g.Grant(ctx)
}

// ResolveFrom is the post-login destination.
func ResolveFrom(from string) string {
	if from == "" {
		return DefaultLanding
	}
	return from
}
