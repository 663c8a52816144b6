package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cataplot/palette/pkg/log"
	"github.com/cataplot/palette/pkg/palette"
)

// registerBuiltins installs the commands the standalone binary ships with. An
// embedding application would register its own set instead.
func registerBuiltins(registry *palette.Registry, root string) {
	registry.Register("Browse Files", browseFiles(root), map[string]any{"root": root})
	registry.Register("Reload Data", reloadData, nil)
	registry.Register("Show Log Path", showLogPath, nil)
}

// browseFiles drills into directories under root. Each breadcrumb label past
// the command name is a path element; directories yield a sub-menu of their
// entries, files complete the command.
func browseFiles(root string) palette.WorkFunc {
	return func(ctx context.Context, path palette.Breadcrumbs, _ palette.ProgressFunc) (palette.Result, error) {
		if err := ctx.Err(); err != nil {
			return palette.Result{}, err
		}

		dir := filepath.Join(append([]string{root}, path.Rest...)...)

		info, err := os.Stat(dir)
		if err != nil {
			return palette.Result{}, fmt.Errorf("stat %q: %w", dir, err)
		}

		if !info.IsDir() {
			log.WithContext(ctx).InfoContext(ctx, "selected file", slog.String("path", dir))

			return palette.Completed(), nil
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return palette.Result{}, fmt.Errorf("read %q: %w", dir, err)
		}

		if len(entries) == 0 {
			return palette.Completed(), nil
		}

		names := make([]string, len(entries))
		for i, entry := range entries {
			names[i] = entry.Name()
		}

		return palette.SubCommand(names...), nil
	}
}

// reloadData simulates a staged background load, reporting progress as it
// goes.
func reloadData(ctx context.Context, _ palette.Breadcrumbs, report palette.ProgressFunc) (palette.Result, error) {
	for i := 1; i <= 10; i++ {
		select {
		case <-ctx.Done():
			return palette.Result{}, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}

		report(i * 10)
	}

	return palette.Completed(), nil
}

// showLogPath completes immediately after logging, demonstrating a command
// with no sub-menu and no meaningful progress.
func showLogPath(ctx context.Context, _ palette.Breadcrumbs, _ palette.ProgressFunc) (palette.Result, error) {
	if err := ctx.Err(); err != nil {
		return palette.Result{}, err
	}

	log.WithContext(ctx).InfoContext(ctx, "logs are buffered in memory and flushed to stderr on exit")

	return palette.Completed(), nil
}
