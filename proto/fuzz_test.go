package proto

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

// FuzzReadPair checks that ReadPair never panics and that a returned pair
// always has a non-empty key.
// Run with: go test -fuzz='^FuzzReadPair$' -fuzztime=60s ./proto
func FuzzReadPair(f *testing.F) {
	f.Add([]byte("sticker: rating=5\n"))
	f.Add([]byte("OK\n"))
	f.Add([]byte("ACK [50@0] {sticker} no such sticker\n"))
	f.Add([]byte("ACK [5@0] {} unknown command \"foo\"\n"))
	f.Add([]byte("file: a.flac\n"))
	f.Add([]byte("list_OK\n"))
	f.Add([]byte("ACK [\n"))
	f.Add([]byte(": \n"))
	f.Add([]byte(""))

	f.Fuzz(func(t *testing.T, data []byte) {
		pair, err := ReadPair(bufio.NewReader(bytes.NewReader(data)))
		if err == nil && pair != nil && pair.Key == "" {
			t.Errorf("pair with empty key from %q", data)
		}
	})
}

// FuzzQuote checks that quoting is reversible by the server-side rule:
// a backslash escapes the next byte.
func FuzzQuote(f *testing.F) {
	f.Add("rating")
	f.Add(`a "quoted" \path\`)
	f.Add("")

	f.Fuzz(func(t *testing.T, s string) {
		q := Quote(s)
		if !strings.HasPrefix(q, `"`) || !strings.HasSuffix(q, `"`) || len(q) < 2 {
			t.Fatalf("not wrapped in quotes: %q", q)
		}

		var out []byte
		inner := q[1 : len(q)-1]
		for i := 0; i < len(inner); i++ {
			c := inner[i]
			if c == '"' {
				t.Fatalf("unescaped quote in %q", q)
			}
			if c == '\\' {
				i++
				c = inner[i]
			}
			out = append(out, c)
		}
		if string(out) != s {
			t.Errorf("unquote(%q) = %q, want %q", q, out, s)
		}
	})
}

// FuzzSplitCommand checks that SplitCommand recovers every argument written
// by AppendCommand.
func FuzzSplitCommand(f *testing.F) {
	f.Add("rating", "5")
	f.Add(`"`, `\`)
	f.Add("", "a b")

	f.Fuzz(func(t *testing.T, a, b string) {
		line, err := AppendCommand(nil, "sticker", a, b)
		if err != nil {
			return // line breaks are rejected
		}

		verb, args, err := SplitCommand(string(line))
		if err != nil {
			t.Fatalf("SplitCommand(%q): %v", line, err)
		}
		if verb != "sticker" || len(args) != 2 || args[0] != a || args[1] != b {
			t.Errorf("SplitCommand(%q) = %q %q", line, verb, args)
		}
	})
}
