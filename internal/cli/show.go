package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khoahotran/portfolio/internal/editor"
	"github.com/khoahotran/portfolio/internal/site"
)

func NewShowCommand(opts *RootOptions) *cobra.Command {
	var raw bool
	var style string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the public portfolio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := opts.session

			doc := s.Store.Load(ctx)
			if !opts.Offline {
				doc = s.Client.FetchRemote(ctx)
			}

			if raw {
				fmt.Fprint(s.out, site.Markdown(doc))
				return nil
			}
			out, err := site.Render(doc, site.TerminalWidth(), style)
			if err != nil {
				return fmt.Errorf("render portfolio: %w", err)
			}
			fmt.Fprintln(s.out, out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown instead of styled output")
	cmd.Flags().StringVar(&style, "style", "", "glamour style (dark, light, notty); auto when empty")
	return cmd
}

func NewExportCommand(opts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current draft as JSON",
		Long:  "Write the current draft as indented JSON to portfolio.json, another file, or stdout with -o -.",
		Args:  cobra.NoArgs,
		RunE: guarded(opts, func(ctx context.Context, cmd *cobra.Command, args []string, s *Session) error {
			if output == "-" {
				return s.Editor().Export(s.out)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := s.Editor().Export(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(s.out, "Exported to %s\n", output)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&output, "output", "o", editor.ExportFileName, "destination file, - for stdout")
	return cmd
}
