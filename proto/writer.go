package proto

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"sync"
)

// Buffer pool for building command lines
var bufferPool = sync.Pool{
	New: func() any {
		// Sticker commands carry a URI and a value, 256 bytes covers most
		return bytes.NewBuffer(make([]byte, 0, 256))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}

// ValidateArgument checks that an argument can be carried by a quoted token.
// MPD reads one command per line, so a newline can never be escaped.
func ValidateArgument(arg string) error {
	if strings.ContainsAny(arg, "\n\r") {
		return &InvalidArgumentError{Message: "argument contains a line break"}
	}
	return nil
}

// ValidateVerb checks that a command verb is non-empty and unquoted-safe.
func ValidateVerb(verb string) error {
	if verb == "" {
		return &InvalidArgumentError{Message: "command is empty"}
	}
	if strings.ContainsAny(verb, " \t\n\r\"\\") {
		return &InvalidArgumentError{Message: "command contains whitespace or quotes"}
	}
	return nil
}

// AppendQuoted appends s to dst as a quoted MPD argument:
// wrapped in double quotes, with '"' and '\' escaped by a backslash.
func AppendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			dst = append(dst, '\\')
		}
		dst = append(dst, c)
	}
	return append(dst, '"')
}

// Quote returns s as a quoted MPD argument.
func Quote(s string) string {
	return string(AppendQuoted(make([]byte, 0, len(s)+2), s))
}

// AppendCommand appends a full command line to dst.
// Format: <verb>[ "<arg>"]*\n
//
// The verb is written as-is, every argument is quoted.
func AppendCommand(dst []byte, verb string, args ...string) ([]byte, error) {
	if err := ValidateVerb(verb); err != nil {
		return dst, err
	}
	for _, arg := range args {
		if err := ValidateArgument(arg); err != nil {
			return dst, err
		}
	}

	dst = append(dst, verb...)
	for _, arg := range args {
		dst = append(dst, ' ')
		dst = AppendQuoted(dst, arg)
	}
	return append(dst, '\n'), nil
}

// WriteCommand serializes a command line and writes it to w.
// Arguments are validated before anything is written.
//
// When w is a *bufio.Writer the line is written into its buffer and flushed,
// otherwise it is built in a pooled buffer and written in a single call.
func WriteCommand(w io.Writer, verb string, args ...string) error {
	buf := getBuffer()
	defer putBuffer(buf)

	line, err := AppendCommand(buf.AvailableBuffer(), verb, args...)
	if err != nil {
		return err
	}

	if bw, ok := w.(*bufio.Writer); ok {
		if _, err := bw.Write(line); err != nil {
			return err
		}
		return bw.Flush()
	}

	_, err = w.Write(line)
	return err
}
