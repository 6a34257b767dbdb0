package proto

import "strings"

// Pair is a single "key: value" line of a response.
//
// Key and Value are owned by the Pair: they never alias the reader's buffer,
// so a Pair stays valid after the next read.
type Pair struct {
	Key   string
	Value string
}

// ParsePair splits a response line (without its trailing LF) into a Pair.
// Only the first ": " is a separator; the value may contain more.
func ParsePair(line string) (Pair, error) {
	key, value, found := strings.Cut(line, PairSeparator)
	if !found || key == "" {
		return Pair{}, &ParseError{Message: "malformed pair line: " + line}
	}
	return Pair{Key: key, Value: value}, nil
}
