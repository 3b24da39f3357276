package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khoahotran/portfolio/internal/editor"
)

func NewSetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <value...>",
		Short: "Set a hero or contact field",
		Long: fmt.Sprintf(`Set a hero field (%s) or a contact field (contact.%s).`,
			strings.Join(editor.HeroFields, ", "), strings.Join(editor.ContactFields, ", contact.")),
		Example: `  portfolio-admin set title "Backend Engineer"
  portfolio-admin set contact.github https://github.com/me`,
		Args: cobra.MinimumNArgs(2),
		RunE: mutate(opts, func(ctx context.Context, args []string, s *Session) error {
			value := strings.Join(args[1:], " ")
			if field, ok := strings.CutPrefix(args[0], "contact."); ok {
				return s.Editor().SetContactField(ctx, field, value)
			}
			return s.Editor().SetHeroField(ctx, args[0], value)
		}),
	}
}

func NewSkillsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Manage skill categories and skills",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List categories in display order",
			Args:  cobra.NoArgs,
			RunE: guarded(opts, func(ctx context.Context, cmd *cobra.Command, args []string, s *Session) error {
				for _, c := range s.Editor().Draft().Skills.Categories() {
					fmt.Fprintf(s.out, "%s %s\n", headerStyle.Render(c.Name+":"), strings.Join(c.Skills, ", "))
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "add <category>",
			Short: "Add an empty category",
			Args:  cobra.ExactArgs(1),
			RunE: mutate(opts, func(ctx context.Context, args []string, s *Session) error {
				return s.Editor().AddSkillCategory(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:   "rm <category>",
			Short: "Remove a category and its skills",
			Args:  cobra.ExactArgs(1),
			RunE: mutate(opts, func(ctx context.Context, args []string, s *Session) error {
				return s.Editor().RemoveSkillCategory(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:   "rename <old> <new>",
			Short: "Rename a category, keeping its skills",
			Args:  cobra.ExactArgs(2),
			RunE: mutate(opts, func(ctx context.Context, args []string, s *Session) error {
				return s.Editor().RenameSkillCategory(ctx, args[0], args[1])
			}),
		},
		&cobra.Command{
			Use:   "add-skill <category> <skill...>",
			Short: "Append a skill to a category",
			Args:  cobra.MinimumNArgs(2),
			RunE: mutate(opts, func(ctx context.Context, args []string, s *Session) error {
				return s.Editor().AddSkill(ctx, args[0], strings.Join(args[1:], " "))
			}),
		},
		&cobra.Command{
			Use:   "rm-skill <category> <index>",
			Short: "Remove the skill at a zero-based index",
			Args:  cobra.ExactArgs(2),
			RunE: mutate(opts, func(ctx context.Context, args []string, s *Session) error {
				i, err := parseIndex(args[1])
				if err != nil {
					return err
				}
				return s.Editor().RemoveSkill(ctx, args[0], i)
			}),
		},
	)
	return cmd
}

func NewProjectsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List projects with their ids",
			Args:  cobra.NoArgs,
			RunE: guarded(opts, func(ctx context.Context, cmd *cobra.Command, args []string, s *Session) error {
				for _, p := range s.Editor().Draft().Projects {
					fmt.Fprintf(s.out, "%s %s %s\n", dimStyle.Render(p.ID), p.Title, dimStyle.Render(strings.Join(p.TechStack, ", ")))
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "add",
			Short: "Add a blank project at the top",
			Args:  cobra.NoArgs,
			RunE: mutate(opts, func(ctx context.Context, args []string, s *Session) error {
				id, err := s.Editor().AddProject(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(s.out, id)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "rm <id>",
			Short: "Remove a project",
			Args:  cobra.ExactArgs(1),
			RunE: mutate(opts, func(ctx context.Context, args []string, s *Session) error {
				return s.Editor().RemoveProject(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:   "set <id> <field> <value...>",
			Short: "Set a project field (" + strings.Join(editor.ProjectFields, ", ") + ")",
			Args:  cobra.MinimumNArgs(3),
			RunE: mutate(opts, func(ctx context.Context, args []string, s *Session) error {
				return s.Editor().SetProjectField(ctx, args[0], args[1], strings.Join(args[2:], " "))
			}),
		},
		&cobra.Command{
			Use:   "add-tech <id> <tech...>",
			Short: "Append to a project's tech stack",
			Args:  cobra.MinimumNArgs(2),
			RunE: mutate(opts, func(ctx context.Context, args []string, s *Session) error {
				return s.Editor().AddTech(ctx, args[0], strings.Join(args[1:], " "))
			}),
		},
		&cobra.Command{
			Use:   "rm-tech <id> <index>",
			Short: "Remove the tech at a zero-based index",
			Args:  cobra.ExactArgs(2),
			RunE: mutate(opts, func(ctx context.Context, args []string, s *Session) error {
				i, err := parseIndex(args[1])
				if err != nil {
					return err
				}
				return s.Editor().RemoveTech(ctx, args[0], i)
			}),
		},
	)
	return cmd
}

func NewExperienceCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "experience",
		Aliases: []string{"exp"},
		Short:   "Manage experience entries",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List experience entries with their ids",
			Args:  cobra.NoArgs,
			RunE: guarded(opts, func(ctx context.Context, cmd *cobra.Command, args []string, s *Session) error {
				for _, x := range s.Editor().Draft().Experience {
					fmt.Fprintf(s.out, "%s %s at %s %s\n", dimStyle.Render(x.ID), x.Role, x.Company, dimStyle.Render(x.Period))
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "add",
			Short: "Add a blank entry at the top",
			Args:  cobra.NoArgs,
			RunE: mutate(opts, func(ctx context.Context, args []string, s *Session) error {
				id, err := s.Editor().AddExperience(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(s.out, id)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "rm <id>",
			Short: "Remove an entry",
			Args:  cobra.ExactArgs(1),
			RunE: mutate(opts, func(ctx context.Context, args []string, s *Session) error {
				return s.Editor().RemoveExperience(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:   "set <id> <field> <value...>",
			Short: "Set an entry field (" + strings.Join(editor.ExperienceFields, ", ") + ")",
			Args:  cobra.MinimumNArgs(3),
			RunE: mutate(opts, func(ctx context.Context, args []string, s *Session) error {
				return s.Editor().SetExperienceField(ctx, args[0], args[1], strings.Join(args[2:], " "))
			}),
		},
		&cobra.Command{
			Use:   "add-highlight <id> <text...>",
			Short: "Append a highlight",
			Args:  cobra.MinimumNArgs(2),
			RunE: mutate(opts, func(ctx context.Context, args []string, s *Session) error {
				return s.Editor().AddHighlight(ctx, args[0], strings.Join(args[1:], " "))
			}),
		},
		&cobra.Command{
			Use:   "rm-highlight <id> <index>",
			Short: "Remove the highlight at a zero-based index",
			Args:  cobra.ExactArgs(2),
			RunE: mutate(opts, func(ctx context.Context, args []string, s *Session) error {
				i, err := parseIndex(args[1])
				if err != nil {
					return err
				}
				return s.Editor().RemoveHighlight(ctx, args[0], i)
			}),
		},
	)
	return cmd
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("index must be a non-negative integer, got %q", s)
	}
	return i, nil
}
