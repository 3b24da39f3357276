package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func NewSyncCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push, pull and configure cloud sync",
	}

	var clearToken bool
	tokenCmd := &cobra.Command{
		Use:   "token [secret]",
		Short: "Set the API secret used for pushes",
		Long:  "Set the API secret used for pushes. Without an argument the secret is prompted for; --clear switches to local-only mode.",
		Args:  cobra.MaximumNArgs(1),
		RunE: guardedLocal(opts, func(ctx context.Context, cmd *cobra.Command, args []string, s *Session) error {
			var token string
			switch {
			case clearToken:
			case len(args) == 1:
				token = args[0]
			default:
				var err error
				if token, err = s.readSecret("API secret: "); err != nil {
					return fmt.Errorf("read secret: %w", err)
				}
			}
			if err := s.Editor().SetToken(ctx, token); err != nil {
				return err
			}
			if token == "" {
				fmt.Fprintln(s.out, dimStyle.Render("API secret cleared, changes stay local"))
			} else {
				fmt.Fprintln(s.out, successStyle.Render("API secret saved"))
			}
			return nil
		}),
	}
	tokenCmd.Flags().BoolVar(&clearToken, "clear", false, "remove the stored secret")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "push",
			Short: "Save the current draft to the cloud now",
			Args:  cobra.NoArgs,
			RunE: guardedLocal(opts, func(ctx context.Context, cmd *cobra.Command, args []string, s *Session) error {
				res := s.Editor().SaveToCloud(ctx)
				printSyncStatus(s.out, res, s.Editor().Token(ctx) != "")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "pull",
			Short: "Replace the local draft with the cloud copy",
			Args:  cobra.NoArgs,
			RunE: guardedLocal(opts, func(ctx context.Context, cmd *cobra.Command, args []string, s *Session) error {
				res := s.Editor().LoadFromCloud(ctx)
				printSyncStatus(s.out, res, true)
				return nil
			}),
		},
		tokenCmd,
	)
	return cmd
}
