package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// bindEnvVars seeds every flag of cmd from its PALETTE_<FLAG_NAME> environment
// variable, so "--log-level" can also be set through PALETTE_LOG_LEVEL. A flag
// given on the command line wins over its environment variable, which wins
// over the default. Each flag's usage string gains the variable name so it
// shows up in --help.
func bindEnvVars(cmd *cobra.Command) {
	for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()} {
		fs.VisitAll(bindFlag)
	}
}

func bindFlag(flag *pflag.Flag) {
	envVar := flagEnvVar(flag.Name)

	if !strings.Contains(flag.Usage, envVar) {
		flag.Usage = fmt.Sprintf("%s ($%s)", flag.Usage, envVar)
	}

	// A value from the command line always wins.
	if flag.Changed {
		return
	}

	val, ok := os.LookupEnv(envVar)
	if !ok {
		return
	}

	if err := flag.Value.Set(val); err != nil {
		// Keep the default rather than failing startup on a bad variable.
		slog.Error("ignoring invalid environment variable",
			slog.String("flag", flag.Name),
			slog.String("env", envVar),
			slog.String("value", val),
			slog.Any("error", err),
		)
	}
}

// flagEnvVar maps a flag name to its environment variable,
// e.g. "log-level" to "PALETTE_LOG_LEVEL".
func flagEnvVar(name string) string {
	return strings.ToUpper(cmdName + "_" + strings.ReplaceAll(name, "-", "_"))
}
