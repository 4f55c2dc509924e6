// Package cli wires configuration, the login store and its two front ends
// (interactive TUI and headless login) into a cobra command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/loginmvi/internal/auth"
	"github.com/idilsaglam/loginmvi/internal/config"
	"github.com/idilsaglam/loginmvi/internal/logutil"
	"github.com/idilsaglam/loginmvi/internal/mvi"
	"github.com/idilsaglam/loginmvi/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	ConfigPath string
	LogPath    string
	Theme      string
	NoColor    bool
	ForceColor bool
}

// errReported marks a failure already shown to the user.
var errReported = errors.New("failure reported")

// usageError is a bad flag or argument (exit code 2).
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// session is the per-invocation state built by the root pre-run.
type session struct {
	opt     Options
	cfg     config.Config
	logFile *os.File
}

// Execute runs the command line and returns an exit code (0 ok, 1 error,
// 2 usage).
func Execute(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root, s := newRootCommand()
	return exitCode(root, execute(ctx, root, s, args))
}

// execute runs root with args and releases the session afterwards, whether
// or not the command failed.
func execute(ctx context.Context, root *cobra.Command, s *session, args []string) error {
	defer s.teardown()
	ui.SetOutput(root.OutOrStdout(), root.ErrOrStderr())
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil && strings.HasPrefix(err.Error(), "unknown command") {
		err = usageError{err}
	}
	return err
}

// exitCode reports err to the user and maps it to an exit code.
func exitCode(root *cobra.Command, err error) int {
	var uerr usageError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errReported):
		return 1
	case errors.As(err, &uerr):
		ui.Fail(err.Error())
		fmt.Fprintln(root.ErrOrStderr(), root.UsageString())
		return 2
	}
	ui.Fail(err.Error())
	return 1
}

// NewRootCommand builds the loginmvi command tree.
func NewRootCommand() *cobra.Command {
	root, _ := newRootCommand()
	return root
}

func newRootCommand() (*cobra.Command, *session) {
	s := &session{}
	root := &cobra.Command{
		Use:           "loginmvi",
		Short:         "Login screen driven by a reactive state container",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.setup(cmd)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	f := root.PersistentFlags()
	f.StringVarP(&s.opt.ConfigPath, "config", "c", "", "YAML config file (default: built-in stub settings)")
	f.StringVar(&s.opt.LogPath, "log", "", "append debug log to this file")
	f.StringVar(&s.opt.Theme, "theme", "", "output theme: classic, neon or mono")
	f.BoolVar(&s.opt.NoColor, "no-color", false, "disable colored output")
	f.BoolVar(&s.opt.ForceColor, "force-color", false, "color output even when not a terminal")

	root.AddCommand(tuiCmd(s), loginCmd(s), configCmd(s))
	return root, s
}

// noArgs rejects positional arguments as a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return usageError{err}
	}
	return nil
}

func (s *session) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(s.opt.ConfigPath)
	if err != nil {
		return err
	}
	if s.opt.Theme != "" {
		cfg.Theme = s.opt.Theme
	}
	if s.opt.LogPath != "" {
		cfg.Log = s.opt.LogPath
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}
	s.cfg = cfg

	ui.SetColorForcing(s.opt.ForceColor, s.opt.NoColor)
	ui.SetTheme(cfg.Theme)

	if cfg.Log != "" {
		f, err := os.OpenFile(cfg.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		s.logFile = f
		logutil.SetOutput(f)
	}
	return nil
}

func (s *session) teardown() {
	if s.logFile != nil {
		logutil.SetOutput(nil)
		s.logFile.Close()
		s.logFile = nil
	}
}

// newStore builds the login container backed by the configured stub.
func (s *session) newStore() *mvi.Container[auth.UserProfile] {
	return mvi.New(auth.Fields(), auth.Submitter(s.cfg.Stub()),
		mvi.WithTimeout(s.cfg.Backend.Timeout),
		mvi.WithLogger(logutil.GetLogger("[mvi] ")),
	)
}
