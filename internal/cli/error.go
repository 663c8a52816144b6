package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
)

// usageErrPrefixes covers the parse errors cobra and pflag can produce for
// this command: a long flag missing its value, an unknown long or shorthand
// flag, a stray positional argument (cobra reports those as an unknown
// command), and an unparsable bool value. Cobra has no typed usage error to
// match on, so prefixes are the best we can do (spf13/cobra#2266).
var usageErrPrefixes = []string{
	"flag needs an argument:",
	"unknown flag:",
	"unknown shorthand flag:",
	"unknown command",
	"invalid argument",
}

// ErrorHandler renders a CLI error through fang's styles, appending a --help
// hint when the error came from argument parsing.
func ErrorHandler(w io.Writer, styles fang.Styles, err error) {
	mustN(fmt.Fprintln(w, styles.ErrorHeader.String()))
	mustN(fmt.Fprintln(w, lipgloss.NewStyle().MarginLeft(2).Render(err.Error())))
	mustN(fmt.Fprintln(w))

	if !isUsageError(err) {
		return
	}

	mustN(fmt.Fprintln(w, lipgloss.JoinHorizontal(
		lipgloss.Left,
		styles.ErrorText.UnsetWidth().Render("Try"),
		styles.Program.Flag.Render("--help"),
		styles.ErrorText.UnsetWidth().UnsetMargins().UnsetTransform().PaddingLeft(1).Render("for usage."),
	)))
	mustN(fmt.Fprintln(w))
}

func isUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range usageErrPrefixes {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}

	return false
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func mustN(_ int, err error) {
	must(err)
}
