package proto

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error types for MPD protocol operations.
// These errors help clients decide whether a connection can be reused.

// ServerError represents an ACK response from MPD.
// The response is complete once the ACK line is read, so the protocol state
// is still valid.
//
// Common causes:
//   - Unknown object or sticker (AckNoExist)
//   - Bad argument (AckArg)
//   - Missing permission (AckPermission)
//
// Connection handling: Connection can be REUSED
type ServerError struct {
	Code    AckCode
	Index   int    // Position of the failing command in a command list
	Command string // Name of the failing command, may be empty
	Message string
}

func (e *ServerError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("mpd: ACK [%d@%d] {%s} %s", e.Code, e.Index, e.Command, e.Message)
	}
	return fmt.Sprintf("mpd: ACK [%d@%d] %s", e.Code, e.Index, e.Message)
}

// ShouldCloseConnection returns false - ACK ends the response cleanly
func (e *ServerError) ShouldCloseConnection() bool {
	return false
}

// IsAck reports whether err is a ServerError with the given code.
func IsAck(err error, code AckCode) bool {
	var se *ServerError
	return errors.As(err, &se) && se.Code == code
}

// InvalidArgumentError is returned when a command argument cannot be encoded.
// The command was rejected client-side, nothing was written.
//
// Common causes:
//   - Empty command verb
//   - Argument containing a newline
//
// Connection handling: Connection is still valid
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return "mpd: invalid argument: " + e.Message
}

// ShouldCloseConnection returns false - nothing reached the wire
func (e *InvalidArgumentError) ShouldCloseConnection() bool {
	return false
}

// ParseError represents a client-side parsing error.
// The server sent something this package does not understand, which leaves
// the position in the response stream uncertain.
//
// Connection handling: Connection should be CLOSED
type ParseError struct {
	Message string
	Err     error // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return "mpd: parse error: " + e.Message + ": " + e.Err.Error()
	}
	return "mpd: parse error: " + e.Message
}

// Unwrap returns the underlying error for error chain inspection
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ShouldCloseConnection returns true - parse errors indicate corrupted state
func (e *ParseError) ShouldCloseConnection() bool {
	return true
}

// ConnectionError wraps underlying I/O errors from connection operations.
//
// Connection handling: Connection is already broken, CLOSE it
type ConnectionError struct {
	Op  string // Operation that failed (read, write, dial, ...)
	Err error  // Underlying error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("mpd: connection error during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ShouldCloseConnection returns true - connection errors mean connection is broken
func (e *ConnectionError) ShouldCloseConnection() bool {
	return true
}

// ErrorWithConnectionState is implemented by errors that know whether the
// connection they happened on can be reused.
type ErrorWithConnectionState interface {
	error
	ShouldCloseConnection() bool
}

// ShouldCloseConnection reports whether err requires closing the connection.
//
// Returns false for nil, ServerError and InvalidArgumentError.
// Unknown error types are treated conservatively and return true.
func ShouldCloseConnection(err error) bool {
	if err == nil {
		return false
	}

	var e ErrorWithConnectionState
	if errors.As(err, &e) {
		return e.ShouldCloseConnection()
	}

	return true
}

// ParseAck parses an ACK line (without its trailing LF).
//
// Wire format: ACK [<code>@<index>] {<command>} <message>
func ParseAck(line string) (*ServerError, error) {
	rest, ok := strings.CutPrefix(line, AckPrefix)
	if !ok {
		return nil, &ParseError{Message: "not an ACK line: " + line}
	}

	rest, ok = strings.CutPrefix(rest, "[")
	if !ok {
		return nil, &ParseError{Message: "ACK missing '[': " + line}
	}
	codeIndex, rest, ok := strings.Cut(rest, "]")
	if !ok {
		return nil, &ParseError{Message: "ACK missing ']': " + line}
	}
	codeStr, indexStr, ok := strings.Cut(codeIndex, "@")
	if !ok {
		return nil, &ParseError{Message: "ACK missing '@': " + line}
	}

	code, err := strconv.Atoi(codeStr)
	if err != nil {
		return nil, &ParseError{Message: "invalid ACK code", Err: err}
	}
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		return nil, &ParseError{Message: "invalid ACK index", Err: err}
	}

	se := &ServerError{Code: AckCode(code), Index: index}

	rest, _ = strings.CutPrefix(rest, Space)
	if braced, ok := strings.CutPrefix(rest, "{"); ok {
		command, after, ok := strings.Cut(braced, "}")
		if !ok {
			return nil, &ParseError{Message: "ACK missing '}': " + line}
		}
		se.Command = command
		rest, _ = strings.CutPrefix(after, Space)
	}
	se.Message = rest

	return se, nil
}
