package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type sessionFunc func(ctx context.Context, cmd *cobra.Command, args []string, s *Session) error

// guarded runs fn only for a logged-in admin, after refreshing the draft from
// the remote. A denied request goes through the login prompt and then resumes.
func guarded(opts *RootOptions, fn sessionFunc) func(*cobra.Command, []string) error {
	return guard(opts, true, fn)
}

// guardedLocal is guarded without the remote refresh.
func guardedLocal(opts *RootOptions, fn sessionFunc) func(*cobra.Command, []string) error {
	return guard(opts, false, fn)
}

func guard(opts *RootOptions, refresh bool, fn sessionFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s := opts.session

		if redirect, ok := s.Gate.Guard(ctx, cmd.CommandPath()); !ok {
			fmt.Fprintf(s.errOut, "%s requires admin login\n", redirect.From)
			if err := s.login(ctx, "", ""); err != nil {
				return err
			}
			fmt.Fprintln(s.errOut, successStyle.Render("Logged in"))
		}

		if refresh && !opts.Offline {
			s.Editor().Refresh(ctx)
		}
		return fn(ctx, cmd, args, s)
	}
}

// mutate applies an editor change and reports the sync outcome.
func mutate(opts *RootOptions, fn func(ctx context.Context, args []string, s *Session) error) func(*cobra.Command, []string) error {
	return guarded(opts, func(ctx context.Context, cmd *cobra.Command, args []string, s *Session) error {
		if err := fn(ctx, args, s); err != nil {
			return err
		}
		s.Editor().Wait()
		if res, ok := s.Editor().LastSync(); ok {
			printSyncStatus(s.out, res, s.Editor().Token(ctx) != "")
		}
		return nil
	})
}
