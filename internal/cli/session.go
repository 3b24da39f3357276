package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/khoahotran/portfolio/internal/access"
	"github.com/khoahotran/portfolio/internal/editor"
	"github.com/khoahotran/portfolio/internal/localstore"
	"github.com/khoahotran/portfolio/internal/syncclient"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// Session wires the local store, access gate, sync client and editor.
type Session struct {
	Store  *localstore.Store
	Gate   *access.Gate
	Client *syncclient.Client
	Logger logger.Logger

	// ReadPassword reads a secret without echo. Nil reads a plain line.
	ReadPassword func() (string, error)

	editor *editor.Editor
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

func NewSession(ctx context.Context, store *localstore.Store, client *syncclient.Client, log logger.Logger) *Session {
	return &Session{
		Store:  store,
		Gate:   access.NewGate(store.KV(), log),
		Client: client,
		Logger: log,
		editor: editor.New(ctx, store, client, log),
	}
}

func (s *Session) Editor() *editor.Editor { return s.editor }

func (s *Session) bindIO(cmd *cobra.Command) {
	s.in = bufio.NewReader(cmd.InOrStdin())
	s.out = cmd.OutOrStdout()
	s.errOut = cmd.ErrOrStderr()
}

// TerminalPassword reads from the controlling terminal when stdin is one.
func TerminalPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errNotTerminal
	}
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	return string(b), err
}

var errNotTerminal = errors.New("stdin is not a terminal")

func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.errOut, prompt)
	return s.rawLine()
}

func (s *Session) rawLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Session) readSecret(prompt string) (string, error) {
	fmt.Fprint(s.errOut, prompt)
	if s.ReadPassword != nil {
		secret, err := s.ReadPassword()
		if !errors.Is(err, errNotTerminal) {
			return secret, err
		}
	}
	return s.rawLine()
}

// login prompts for credentials and grants access on a match.
func (s *Session) login(ctx context.Context, username, password string) error {
	var err error
	if username == "" {
		if username, err = s.readLine("Username: "); err != nil {
			return fmt.Errorf("read username: %w", err)
		}
	}
	if password == "" {
		if password, err = s.readSecret("Password: "); err != nil {
			return fmt.Errorf("read password: %w", err)
		}
	}
	return s.Gate.Login(ctx, username, password)
}
