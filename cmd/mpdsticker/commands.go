package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pior/mpd"
	"github.com/pior/mpd/sticker"
)

var errNotFound = errors.New("sticker not found")

const findUsage = "find <type> <base-uri> <name> [<op> <value>]"

type usageError struct {
	usage string
}

func (e *usageError) Error() string {
	return "usage: " + e.usage
}

type command struct {
	usage   string
	help    string
	minArgs int
	maxArgs int
	run     func(r *runner, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"set": {
		usage: "set <type> <uri> <name> <value>", help: "set a sticker value",
		minArgs: 4, maxArgs: 4, run: (*runner).set,
	},
	"get": {
		usage: "get <type> <uri> <name>", help: "print a sticker value",
		minArgs: 3, maxArgs: 3, run: (*runner).get,
	},
	"list": {
		usage: "list <type> <uri>", help: "print the stickers of an object",
		minArgs: 2, maxArgs: 2, run: (*runner).list,
	},
	"delete": {
		usage: "delete <type> <uri> [name]", help: "delete a sticker, or all of them",
		minArgs: 2, maxArgs: 3, run: (*runner).delete,
	},
	"find": {
		usage: findUsage, help: "search objects carrying a sticker",
		minArgs: 3, maxArgs: 5, run: (*runner).find,
	},
	"inc": {
		usage: "inc <type> <uri> <name> [delta]", help: "increment an integer sticker",
		minArgs: 3, maxArgs: 4, run: (*runner).inc,
	},
	"dec": {
		usage: "dec <type> <uri> <name> [delta]", help: "decrement an integer sticker",
		minArgs: 3, maxArgs: 4, run: (*runner).dec,
	},
	"names": {
		usage: "names", help: "print the sticker names in use",
		run: (*runner).names,
	},
	"types": {
		usage: "types", help: "print the object types supporting stickers",
		run: (*runner).types,
	},
	"export": {
		usage: "export <type> <uri>", help: "print the stickers of an object as YAML",
		minArgs: 2, maxArgs: 2, run: (*runner).export,
	},
	"ping": {
		usage: "ping", help: "check the server answers",
		run: (*runner).ping,
	},
	"stats": {
		usage: "stats", help: "print client and pool statistics",
		run: (*runner).stats,
	},
}

// runner executes commands against a client and prints to out.
type runner struct {
	client  *mpd.Client
	out     io.Writer
	timeout time.Duration
}

func (r *runner) exec(ctx context.Context, name string, args []string) error {
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	if len(args) < cmd.minArgs || len(args) > cmd.maxArgs {
		return &usageError{usage: cmd.usage}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return cmd.run(r, ctx, args)
}

func objectArg(args []string) sticker.ObjectRef {
	return sticker.ObjectRef{Type: args[0], URI: args[1]}
}

func (r *runner) set(ctx context.Context, args []string) error {
	return r.client.StickerSet(ctx, objectArg(args), args[2], args[3])
}

func (r *runner) get(ctx context.Context, args []string) error {
	value, found, err := r.client.StickerGet(ctx, objectArg(args), args[2])
	if err != nil {
		return err
	}
	if !found {
		return errNotFound
	}
	fmt.Fprintln(r.out, value)
	return nil
}

func (r *runner) list(ctx context.Context, args []string) error {
	stickers, err := r.client.StickerList(ctx, objectArg(args))
	if err != nil {
		return err
	}
	for _, s := range stickers {
		fmt.Fprintln(r.out, s)
	}
	return nil
}

func (r *runner) delete(ctx context.Context, args []string) error {
	var name string
	if len(args) == 3 {
		name = args[2]
	}
	return r.client.StickerDelete(ctx, objectArg(args), name)
}

func (r *runner) find(ctx context.Context, args []string) error {
	typ, base, name := args[0], args[1], args[2]

	var found []sticker.Found
	var err error
	switch len(args) {
	case 3:
		found, err = r.client.StickerFind(ctx, typ, base, name)
	case 5:
		found, err = r.client.StickerFindValue(ctx, typ, base, name, sticker.Operator(args[3]), args[4])
	default:
		return &usageError{usage: findUsage}
	}
	if err != nil {
		return err
	}

	for _, f := range found {
		fmt.Fprintf(r.out, "%s\t%s\n", f.URI, f.Value)
	}
	return nil
}

func (r *runner) inc(ctx context.Context, args []string) error {
	delta, err := deltaArg(args)
	if err != nil {
		return err
	}
	return r.client.StickerInc(ctx, objectArg(args), args[2], delta)
}

func (r *runner) dec(ctx context.Context, args []string) error {
	delta, err := deltaArg(args)
	if err != nil {
		return err
	}
	return r.client.StickerDec(ctx, objectArg(args), args[2], delta)
}

func deltaArg(args []string) (uint64, error) {
	if len(args) < 4 {
		return 1, nil
	}
	delta, err := strconv.ParseUint(args[3], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid delta %q: %w", args[3], err)
	}
	return delta, nil
}

func (r *runner) names(ctx context.Context, _ []string) error {
	names, err := r.client.StickerNames(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(r.out, name)
	}
	return nil
}

func (r *runner) types(ctx context.Context, _ []string) error {
	types, err := r.client.StickerTypes(ctx)
	if err != nil {
		return err
	}
	for _, typ := range types {
		fmt.Fprintln(r.out, typ)
	}
	return nil
}

// export is the document written by the export command.
type export struct {
	Type     string            `yaml:"type"`
	URI      string            `yaml:"uri"`
	Stickers map[string]string `yaml:"stickers"`
}

func (r *runner) export(ctx context.Context, args []string) error {
	obj := objectArg(args)

	stickers, err := r.client.StickerList(ctx, obj)
	if err != nil {
		return err
	}

	doc := export{Type: obj.Type, URI: obj.URI, Stickers: make(map[string]string, len(stickers))}
	for _, s := range stickers {
		doc.Stickers[s.Name] = s.Value
	}

	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func (r *runner) ping(ctx context.Context, _ []string) error {
	if err := r.client.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(r.out, "OK")
	return nil
}

func (r *runner) stats(_ context.Context, _ []string) error {
	s := r.client.Stats()
	fmt.Fprintf(r.out, "sets=%d gets=%d hits=%d lists=%d deletes=%d finds=%d updates=%d listings=%d errors=%d\n",
		s.Sets, s.Gets, s.GetHits, s.Lists, s.Deletes, s.Finds, s.Updates, s.Listings, s.Errors)

	for _, ps := range r.client.AllPoolStats() {
		fmt.Fprintf(r.out, "%s: total=%d idle=%d active=%d created=%d destroyed=%d breaker=%s\n",
			ps.Addr, ps.PoolStats.TotalConns, ps.PoolStats.IdleConns, ps.PoolStats.ActiveConns,
			ps.PoolStats.CreatedConns, ps.PoolStats.DestroyedConns, ps.CircuitBreakerState)
	}
	return nil
}
