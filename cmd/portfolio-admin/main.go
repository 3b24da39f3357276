package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/khoahotran/portfolio/adapters/persistence"
	"github.com/khoahotran/portfolio/internal/cli"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/internal/localstore"
	"github.com/khoahotran/portfolio/internal/syncclient"
	"github.com/khoahotran/portfolio/pkg/logger"
)

func main() {
	ctx := context.Background()

	var kv *persistence.SQLiteKV
	opts := &cli.RootOptions{}
	opts.Open = func(opts *cli.RootOptions) (*cli.Session, error) {
		load := config.LoadConfigQuiet
		if opts.Verbose {
			load = config.LoadConfig
		}
		cfg, err := load()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}

		log := logger.NewNop()
		if opts.Verbose {
			log = logger.NewZapLogger(cfg.App.Env)
		}

		dbPath := cfg.Admin.LocalDB
		if dbPath == "" {
			dbPath, err = defaultLocalDB()
			if err != nil {
				return nil, err
			}
		}
		kv, err = persistence.OpenSQLiteKV(dbPath)
		if err != nil {
			return nil, err
		}

		timeout := cfg.Admin.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}

		store := localstore.New(kv, log)
		client := syncclient.New(cfg.Admin.Endpoint, &http.Client{Timeout: timeout}, store, log)
		session := cli.NewSession(ctx, store, client, log)
		session.ReadPassword = cli.TerminalPassword
		return session, nil
	}

	err := cli.NewRootCommand(opts).ExecuteContext(ctx)
	if kv != nil {
		kv.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func defaultLocalDB() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".portfolio-admin", "local.db"), nil
}
