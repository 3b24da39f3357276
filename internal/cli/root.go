// Package cli implements the portfolio-admin command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags and the session shared by all commands.
type RootOptions struct {
	Verbose bool
	Offline bool

	// Open builds the session once flags are parsed.
	Open    func(opts *RootOptions) (*Session, error)
	session *Session
}

func NewRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio-admin",
		Short: "Edit the portfolio document and sync it with the site",
		Long: `portfolio-admin keeps a local copy of the portfolio document, edits it and
pushes every change to the site's /api/portfolio endpoint when an API secret is set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.session == nil {
				s, err := opts.Open(opts)
				if err != nil {
					return err
				}
				opts.session = s
			}
			opts.session.bindIO(cmd)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.session == nil {
				return nil
			}
			opts.session.Editor().Wait()
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log to stderr")
	cmd.PersistentFlags().BoolVar(&opts.Offline, "offline", false, "skip the remote refresh before editing")

	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewSkillsCommand(opts))
	cmd.AddCommand(NewProjectsCommand(opts))
	cmd.AddCommand(NewExperienceCommand(opts))
	cmd.AddCommand(NewSyncCommand(opts))

	return cmd
}
