package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/app"
	"github.com/Makepad-fr/tada/internal/ui"
)

func (r *runner) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <title...>",
		Short:   "Add a task (title can be multiple words)",
		Example: `  tada add "Buy milk"`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usagef("usage: tada add <title...>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withSession(func(s *app.Session) error {
				t, err := s.Add(strings.Join(args, " "))
				if err != nil {
					return fmt.Errorf("add: %w", err)
				}
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added %d", t.ID))
				return nil
			})
		},
	}
}

func (r *runner) newListCmd() *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks, newest first",
		Args:    noArgs("ls"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withSession(func(s *app.Session) error {
				l := s.Tasks()
				done, _ := l.Stats()
				t := ui.Current()

				var lines []string
				lines = append(lines, ui.Header(l))
				lines = append(lines, t.Muted.Render(ui.ProgressBar(done, len(l), 28)))
				lines = append(lines, "")
				if group {
					lines = append(lines, ui.GroupLines(l)...)
				} else {
					lines = append(lines, ui.FlatLines(l)...)
				}
				lines = append(lines, "")
				lines = append(lines, t.Muted.Render("Tip: add with `tada add \"Buy milk\"`"))
				fmt.Fprintln(cmd.OutOrStdout(), ui.Panel(lines))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}

func (r *runner) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove the task with the given id",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usagef("usage: tada rm <id>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return r.withSession(func(s *app.Session) error {
				existed := s.Tasks().Has(id)
				if err := s.Delete(id); err != nil {
					return fmt.Errorf("rm: %w", err)
				}
				if !existed {
					ui.Hint(cmd.ErrOrStderr(), fmt.Sprintf("no task with id %d; nothing removed", id))
					return nil
				}
				ui.OK(cmd.OutOrStdout(), "removed")
				return nil
			})
		},
	}
}

func (r *runner) newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "edit <id> <title...>",
		Aliases: []string{"rename"},
		Short:   "Replace the title of the task with the given id",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return usagef("usage: tada edit <id> <title...>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return r.withSession(func(s *app.Session) error {
				existed := s.Tasks().Has(id)
				if err := s.UpdateTitle(id, strings.Join(args[1:], " ")); err != nil {
					return fmt.Errorf("edit: %w", err)
				}
				if !existed {
					ui.Hint(cmd.ErrOrStderr(), fmt.Sprintf("no task with id %d; nothing changed", id))
					return nil
				}
				ui.OK(cmd.OutOrStdout(), "updated")
				return nil
			})
		},
	}
}

func (r *runner) newUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive list (default)",
		Args:  noArgs("ui"),
		RunE:  r.runUI,
	}
}

func (r *runner) runUI(cmd *cobra.Command, _ []string) error {
	return r.withSession(func(s *app.Session) error {
		return r.interactive(s.Controller)
	})
}

func noArgs(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return usagef("%s takes no arguments", name)
		}
		return nil
	}
}
