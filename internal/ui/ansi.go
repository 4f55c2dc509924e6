package ui

import (
	"fmt"
	"io"
	"os"
)

var (
	reset = "\033[0m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgRed    = "\033[31m"
)

var (
	forceColor   bool
	disableColor bool

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

// SetOutput redirects OK/Info/Panel (out) and Fail (err). Nil keeps the
// current writer.
func SetOutput(out, err io.Writer) {
	if out != nil {
		stdout = out
	}
	if err != nil {
		stderr = err
	}
}

func isTTY() bool {
	f, ok := stdout.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func C(color, s string) string {
	if disableColor || color == "" {
		return s
	}
	if forceColor || isTTY() {
		return color + s + reset
	}
	return s
}

func OK(msg string) {
	fmt.Fprintln(stdout, C(current.Success, current.SymOK+" "+msg))
}

func Fail(msg string) {
	fmt.Fprintln(stderr, C(current.Error, current.SymFail+" "+msg))
}

// Info prints a neutral status line, e.g. "⋯ signing in".
func Info(sym, msg string) {
	fmt.Fprintln(stdout, C(current.Pending, sym)+" "+msg)
}
