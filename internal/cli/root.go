// Package cli wires the cobra command tree. Every subcommand performs one
// request against a freshly hydrated session.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/app"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// usageError marks errors that should exit with ExitUsage.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error { return usageError{fmt.Sprintf(format, a...)} }

// flags are the root persistent flags; unset ones leave config values alone.
type flags struct {
	configFile string
	backend    string
	data       string
	key        string
	theme      string
	onCorrupt  string
	verbose    bool
}

type runner struct {
	flags  flags
	stdout io.Writer
	stderr io.Writer

	cfg *config.Config
	log *log.Logger

	// interactive is swapped in tests.
	interactive func(*app.Controller) error
}

// Run executes the command line and returns an exit code
// (0 ok, 1 error, 2 usage).
func Run(args []string, stdout, stderr io.Writer) int {
	r := &runner{stdout: stdout, stderr: stderr, interactive: tui.Run}
	return r.execute(args)
}

func (r *runner) execute(args []string) int {
	root := r.newRootCmd()
	root.SetArgs(args)
	root.SetOut(r.stdout)
	root.SetErr(r.stderr)

	err := root.Execute()
	if err == nil {
		return ExitOK
	}
	ui.Fail(r.stderr, err.Error())
	var ue usageError
	if errors.As(err, &ue) || errors.Is(err, app.ErrEmptyTitle) {
		return ExitUsage
	}
	return ExitError
}

func (r *runner) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tada",
		Short: "tada - a tiny task list",
		Long: `tada keeps a short list of tasks, newest first.

With no subcommand it opens the interactive list. The whole list is written
back to storage after every change.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown subcommand: %s", args[0])
			}
			return nil
		},
		PersistentPreRunE: r.loadConfig,
		RunE:              r.runUI,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&r.flags.configFile, "config", "", "config file (default "+config.GlobalConfigPath()+" then ./"+config.ProjectFile+")")
	pf.StringVar(&r.flags.backend, "backend", "", "storage backend: file, sqlite or memory")
	pf.StringVar(&r.flags.data, "data", "", "data directory (file backend) or database file (sqlite backend)")
	pf.StringVar(&r.flags.key, "key", "", "storage key the list is saved under")
	pf.StringVar(&r.flags.theme, "theme", "", "color theme: classic, neon or mono")
	pf.StringVar(&r.flags.onCorrupt, "on-corrupt", "", "what to do with unreadable stored data: fail or reset")
	pf.BoolVarP(&r.flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		r.newAddCmd(),
		r.newListCmd(),
		r.newRemoveCmd(),
		r.newEditCmd(),
		r.newUICmd(),
		r.newConfigCmd(),
	)
	return root
}

// loadConfig merges config sources, then applies flags set on the command
// line.
func (r *runner) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(r.flags.configFile)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("backend") {
		cfg.Storage.Backend = r.flags.backend
	}
	if f.Changed("data") {
		if cfg.Storage.Backend == config.BackendSQLite {
			cfg.Storage.Path = r.flags.data
		} else {
			cfg.Storage.Dir = r.flags.data
		}
	}
	if f.Changed("key") {
		cfg.Storage.Key = r.flags.key
	}
	if f.Changed("theme") {
		cfg.UI.Theme = r.flags.theme
	}
	if f.Changed("on-corrupt") {
		cfg.Storage.OnCorrupt = r.flags.onCorrupt
	}
	if f.Changed("verbose") {
		cfg.Verbose = r.flags.verbose
	}

	r.cfg = cfg
	r.log = logging.New(r.stderr, cfg.Verbose)
	ui.SetTheme(cfg.UI.Theme)
	return nil
}

// withSession opens the configured store, runs fn and closes the store.
func (r *runner) withSession(fn func(*app.Session) error) error {
	s, err := app.Start(r.cfg, r.log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			r.log.Warn("close store", "err", cerr)
		}
	}()
	return fn(s)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, usagef("not a task id: %s", s)
	}
	return id, nil
}
