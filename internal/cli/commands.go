package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/loginmvi/internal/auth"
	"github.com/idilsaglam/loginmvi/internal/mvi"
	"github.com/idilsaglam/loginmvi/internal/tui"
	"github.com/idilsaglam/loginmvi/internal/ui"
)

type loginState = mvi.State[auth.UserProfile]

func tuiCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive login screen",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := s.newStore()
			defer store.Close()

			final, err := tui.Run(store, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if err != nil {
				return err
			}
			if final.Successful {
				ui.OK("logged in")
				printProfile(final.Result)
			}
			return nil
		},
	}
}

func loginCmd(s *session) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in without the TUI, printing every state change",
		Example: `  loginmvi login -u admin -p 1234
  loginmvi --config accounts.yaml login -u admin -p wrong`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := s.newStore()
			defer store.Close()
			return runLogin(cmd.Context(), store, username, password)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "user name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	return cmd
}

func configCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := s.cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}

// runLogin feeds the credentials to store as intents and prints each
// published state until the submission settles.
func runLogin(ctx context.Context, store *mvi.Container[auth.UserProfile], username, password string) error {
	settled := make(chan loginState, 1)
	var prev *loginState
	unsubscribe := store.Subscribe(func(st loginState) {
		printTransition(prev, st)
		prev = &st
		if st.Successful || (st.Idle() && st.Err != nil) {
			select {
			case settled <- st:
			default:
			}
		}
	})
	defer unsubscribe()

	store.Dispatch(mvi.FieldChanged{Name: auth.FieldUsername, Value: username})
	store.Dispatch(mvi.FieldChanged{Name: auth.FieldPassword, Value: password})
	store.Dispatch(mvi.Submit{})

	select {
	case st := <-settled:
		if !st.Successful {
			return errReported
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("login: %w", ctx.Err())
	}
}

func printTransition(prev *loginState, st loginState) {
	switch {
	case prev == nil:
		ui.Info(ui.Current().SymField, "idle")
	case st.Loading && !prev.Loading:
		name, _ := st.Value(auth.FieldUsername)
		ui.Info(ui.Current().SymLoading, "signing in as "+name)
	case st.Successful:
		ui.OK("login successful, welcome " + st.Result.Name)
		printProfile(st.Result)
	case st.Err != nil:
		ui.Fail(st.ErrorMessage())
	default:
		for _, f := range st.Fields {
			old, _ := prev.Value(f.Name)
			if old == f.Value {
				continue
			}
			v := f.Value
			if f.Name == auth.FieldPassword {
				v = strings.Repeat("•", len([]rune(v)))
			}
			ui.Info(ui.Current().SymField, fmt.Sprintf("%s = %q", f.Name, v))
		}
	}
}

func printProfile(p auth.UserProfile) {
	ui.Panel([]string{
		ui.KeyValue("name", p.Name),
		ui.KeyValue("avatar", p.Avatar),
	})
}
