package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/atmconf/internal/app"
	"github.com/vk/atmconf/internal/cli"
	"github.com/vk/atmconf/internal/confopts"
)

// main is the entrypoint for the atmconf configuration builder.
func main() {
	// Minimal logger until the configured one takes over.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		var usageErr *confopts.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprint(os.Stderr, usageErr.Usage)
			os.Exit(usageErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and
// error handling.
func run(outW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	atmconfApp := app.NewApp(outW, appConfig)
	return atmconfApp.Run(context.Background(), appConfig)
}
