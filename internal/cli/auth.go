package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khoahotran/portfolio/internal/access"
)

func NewLoginCommand(opts *RootOptions) *cobra.Command {
	var username, password, from string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as the portfolio admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := opts.session
			if err := s.login(ctx, username, password); err != nil {
				return err
			}
			fmt.Fprintf(s.out, "%s, continue at %s\n", successStyle.Render("Logged in"), access.ResolveFrom(from))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username (prompted when empty)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password (prompted when empty)")
	cmd.Flags().StringVar(&from, "from", "", "page to continue at after login")
	return cmd
}

func NewLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the admin session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := opts.session.Gate.Revoke(ctx); err != nil {
				return err
			}
			fmt.Fprintln(opts.session.out, "Logged out")
			return nil
		},
	}
}
