package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cataplot/palette/pkg/config"
	"github.com/cataplot/palette/pkg/log"
	"github.com/cataplot/palette/pkg/palette"
	"github.com/cataplot/palette/pkg/ui"
)

const (
	cmdExamples = `  # Open the palette:
  palette

  # Use an alternate configuration file:
  palette --config ./config.yaml

  # Write the default configuration file and exit:
  palette --write-config

  # Print the active configuration and exit:
  palette --show-config`
)

type RunArgs struct {
	*RootArgs

	ConfigPath  string
	WriteConfig bool
	ShowConfig  bool
}

func NewRunArgs(rootArgs *RootArgs) *RunArgs {
	return &RunArgs{
		RootArgs: rootArgs,
	}
}

func (ra *RunArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ra.ConfigPath, "config", "", "Path to the palette configuration file")
	cmd.Flags().BoolVar(&ra.WriteConfig, "write-config", false, "Write the default configuration file and exit")
	cmd.Flags().BoolVar(&ra.ShowConfig, "show-config", false, "Print the active configuration and exit")

	err := cmd.MarkFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}
}

func run(cmd *cobra.Command, rc *RunArgs) error {
	configPath := rc.ConfigPath
	if configPath == "" {
		configPath = config.GetPath()
	}

	err := config.WriteDefault(configPath, false)
	if err != nil {
		slog.Error("write default config", slog.Any("err", err))
	}
	if rc.WriteConfig {
		// Exit early after writing the default config.
		// Also, if there was an error, it should be fatal.
		return err
	}

	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("invalid config %q: %w", configPath, err)
	}

	if rc.ShowConfig {
		slog.Info("active configuration", slog.String("path", configPath))

		yamlBytes, err := cfg.MarshalYAML()
		if err != nil {
			return fmt.Errorf("marshal config yaml: %w", err)
		}

		mustN(fmt.Fprintln(cmd.OutOrStdout(), string(yamlBytes)))

		return nil
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal")
	}

	// Redirect logs into a ring buffer while the TUI owns the terminal; flush
	// them to stderr on exit.
	logBuf := log.NewCircularBuffer(100)

	logHandler, err := log.CreateHandlerWithStrings(logBuf, rc.LogLevel, rc.LogFormat)
	if err != nil {
		return fmt.Errorf("create log handler: %w", err)
	}

	slog.SetDefault(slog.New(logHandler))

	err = runUI(cmd, cfg)
	if err != nil {
		slog.Error("run UI", slog.Any("err", err))
		flushLogs(cmd.ErrOrStderr(), logBuf)

		return fmt.Errorf("ui program failure: %w", err)
	}

	flushLogs(cmd.ErrOrStderr(), logBuf)

	return nil
}

// runUI starts the UI program and pumps executor events into it.
func runUI(cmd *cobra.Command, cfg *config.Config) error {
	registry := palette.NewRegistry()

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	registerBuiltins(registry, root)

	var p *tea.Program

	ctrl := palette.NewController(registry,
		palette.WithContext(cmd.Context()),
		palette.WithErrorReporter(func(err error) {
			slog.Error("command failed", slog.Any("err", err))
			p.Send(ui.ErrorMsg(err))
		}),
	)

	p = ui.NewProgram(ctrl, cfg)

	// Buffered so a burst of progress events does not stall background work
	// while the update loop is busy.
	ch := make(chan palette.Event, 64)
	ctrl.Executor().Subscribe(ch)

	go func() {
		for event := range ch {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	m, err := p.Run()

	ctrl.Executor().Close()

	if err != nil {
		return fmt.Errorf("tea: %w", err)
	}

	if pm, ok := m.(ui.Model); ok && pm.FatalErr() != nil {
		return pm.FatalErr()
	}

	return nil
}

func flushLogs(w io.Writer, buf *log.CircularBuffer) {
	slog.Debug("flush logs to console",
		slog.Int("count", buf.Size()),
		slog.Int("max", buf.Capacity()),
		slog.Bool("truncated", buf.IsFull()),
	)

	_, err := buf.WriteTo(w)
	if err != nil {
		panic(err)
	}
}
