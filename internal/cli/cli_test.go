package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/loginmvi/internal/logutil"
	"github.com/idilsaglam/loginmvi/internal/ui"
)

const testConfig = `
backend:
  delay: 0s
  timeout: 1s
  accounts:
    - username: admin
      password: "1234"
      name: Administrator
      avatar: admin.png
theme: mono
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loginmvi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))
	return path
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root, s := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	t.Cleanup(func() {
		ui.SetColorForcing(false, false)
		ui.SetTheme("classic")
	})
	err = execute(context.Background(), root, s, args)
	return out.String(), errOut.String(), err
}

// runCode runs args and returns the process exit code.
func runCode(t *testing.T, args ...string) (code int, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	root, s := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	t.Cleanup(func() {
		ui.SetColorForcing(false, false)
		ui.SetTheme("classic")
	})
	return exitCode(root, execute(context.Background(), root, s, args)), errOut.String()
}

func TestLogin_Success(t *testing.T) {
	out, _, err := run(t, "--config", writeConfig(t), "login", "-u", "admin", "-p", "1234")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	require.Equal(t, "- idle", lines[0])
	require.Equal(t, `- username = "admin"`, lines[1])
	require.Equal(t, `- password = "••••"`, lines[2])
	require.Equal(t, ".. signing in as admin", lines[3])
	require.Contains(t, out, "ok login successful, welcome Administrator")
	require.Contains(t, out, "avatar: admin.png")
	require.NotContains(t, out, "1234")
}

func TestLogin_BadCredentials(t *testing.T) {
	out, errOut, err := run(t, "--config", writeConfig(t), "login", "-u", "admin", "-p", "nope")
	require.ErrorIs(t, err, errReported)
	require.Contains(t, out, "signing in as admin")
	require.Equal(t, "x bad credentials\n", errOut)
}

func TestLogin_Validation(t *testing.T) {
	out, errOut, err := run(t, "--config", writeConfig(t), "login", "-u", "admin")
	require.ErrorIs(t, err, errReported)
	require.NotContains(t, out, "signing in")
	require.Equal(t, "x please enter password\n", errOut)
}

func TestLogin_UnknownFlag(t *testing.T) {
	_, _, err := run(t, "login", "--bogus")
	var uerr usageError
	require.ErrorAs(t, err, &uerr)
}

func TestConfig_PrintsEffectiveConfig(t *testing.T) {
	out, _, err := run(t, "--config", writeConfig(t), "--theme", "neon", "config")
	require.NoError(t, err)
	require.Contains(t, out, "theme: neon")
	require.Contains(t, out, "username: admin")
	require.Contains(t, out, "timeout: 1s")
}

func TestConfig_BadTheme(t *testing.T) {
	_, _, err := run(t, "--theme", "disco", "config")
	var uerr usageError
	require.ErrorAs(t, err, &uerr)
}

func TestLogin_WritesLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "loginmvi.log")
	_, _, err := run(t, "--config", writeConfig(t), "--log", logPath, "login", "-u", "admin", "-p", "1234")
	require.NoError(t, err)

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(b), "[mvi] submission succeeded")
	require.Contains(t, string(b), `[auth] login "admin"`)
}

func TestExitCodes(t *testing.T) {
	cfg := writeConfig(t)
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"success", []string{"--config", cfg, "login", "-u", "admin", "-p", "1234"}, 0},
		{"login failure", []string{"--config", cfg, "login", "-u", "admin", "-p", "nope"}, 1},
		{"missing config file", []string{"--config", cfg + ".missing", "config"}, 1},
		{"unknown flag", []string{"login", "--bogus"}, 2},
		{"extra argument", []string{"login", "extra"}, 2},
		{"extra argument to config", []string{"config", "extra"}, 2},
		{"unknown subcommand", []string{"bogus"}, 2},
		{"bad theme", []string{"--theme", "disco", "config"}, 2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			code, stderr := runCode(t, test.args...)
			require.Equal(t, test.want, code, "stderr: %s", stderr)
			if test.want == 2 {
				require.Contains(t, stderr, "Usage:")
			}
		})
	}
}

func TestLogin_FailureReleasesLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "loginmvi.log")
	_, _, err := run(t, "--config", writeConfig(t), "--log", logPath, "login", "-u", "admin", "-p", "nope")
	require.ErrorIs(t, err, errReported)

	before, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(before), "bad credentials")

	logutil.GetLogger("[test] ").Println("after the command")
	after, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Equal(t, string(before), string(after), "log sink still points at the file")
}
