package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chzyer/readline"

	"github.com/pior/mpd/proto"
)

// runShell reads commands interactively until EOF, "quit" or ctx is done.
// Arguments with spaces are double-quoted, as on the MPD wire.
func runShell(ctx context.Context, r *runner) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "mpd> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	shell := *r
	shell.out = rl.Stdout()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			return nil // EOF
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, args, err := proto.SplitCommand(line)
		if err != nil {
			fmt.Fprintf(rl.Stderr(), "error: %v\n", err)
			continue
		}

		switch name {
		case "quit", "exit":
			return nil
		case "help", "?":
			printCommands(rl.Stdout())
			continue
		}

		if err := shell.exec(ctx, name, args); err != nil {
			fmt.Fprintf(rl.Stderr(), "error: %v\n", err)
		}
	}
}

func completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(commands)+3)
	for name := range commands {
		items = append(items, readline.PcItem(name))
	}
	items = append(items, readline.PcItem("help"), readline.PcItem("quit"))
	return readline.NewPrefixCompleter(items...)
}
