// mpdsticker reads and writes MPD stickers from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"

	"github.com/spf13/pflag"

	"github.com/pior/mpd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	cfg, flags, err := parseConfig(args, getenv)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printUsage(stderr, flags)
			return 0
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	args = flags.Args()
	if len(args) == 0 {
		printUsage(stderr, flags)
		return 2
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	client, err := mpd.NewClient(mpd.NewStaticServers(cfg.address()), mpd.Config{
		MaxSize:  1,
		Password: cfg.Password,
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer client.Close()

	r := &runner{client: client, out: stdout, timeout: cfg.Timeout}

	if args[0] == "shell" {
		if err := runShell(ctx, r); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := r.exec(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		var usage *usageError
		if errors.As(err, &usage) {
			return 2
		}
		return 1
	}
	return 0
}

func printUsage(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: mpdsticker [flags] <command> [args]\n\nCommands:\n")
	printCommands(w)
	fmt.Fprintf(w, "  %-46s %s\n", "shell", "run commands interactively")

	if flags != nil {
		fmt.Fprintf(w, "\nFlags:\n")
		flags.SetOutput(w)
		flags.PrintDefaults()
	}
}

func printCommands(w io.Writer) {
	for _, name := range slices.Sorted(maps.Keys(commands)) {
		cmd := commands[name]
		fmt.Fprintf(w, "  %-46s %s\n", cmd.usage, cmd.help)
	}
}
