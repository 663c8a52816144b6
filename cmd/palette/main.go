package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/cataplot/palette/internal/cli"
	"github.com/cataplot/palette/pkg/version"
)

func main() {
	err := fang.Execute(
		context.Background(),
		cli.NewRootCmd(),
		fang.WithVersion(version.GetVersion()),
		fang.WithErrorHandler(cli.ErrorHandler),
	)
	if err != nil {
		os.Exit(1)
	}
}
