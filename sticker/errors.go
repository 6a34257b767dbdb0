package sticker

import (
	"errors"
	"strconv"
)

var (
	// ErrInvalidArgument is matched by every *ArgumentError.
	ErrInvalidArgument = errors.New("sticker: invalid argument")

	// ErrUnexpectedKey is matched by every *UnexpectedKeyError.
	ErrUnexpectedKey = errors.New("sticker: unexpected key")

	// ErrMalformedSticker is matched by every *MalformedStickerError.
	ErrMalformedSticker = errors.New("sticker: malformed sticker")
)

// ArgumentError is returned when a required argument is missing.
// The command was rejected before anything was sent.
//
// Connection handling: Connection is untouched
type ArgumentError struct {
	Op    Op
	Field string
}

func (e *ArgumentError) Error() string {
	return "sticker: " + string(e.Op) + ": " + e.Field + " is required"
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// ShouldCloseConnection returns false - nothing reached the wire
func (e *ArgumentError) ShouldCloseConnection() bool {
	return false
}

// UnexpectedKeyError is returned when a response row does not have the shape
// of a sticker response, e.g. a key other than "sticker".
//
// The row was consumed whole, so the stream is still aligned: finish the
// response before reusing the connection.
type UnexpectedKeyError struct {
	Key      string // Key that was received, empty on a premature end of response
	Expected string // What the receiver was waiting for
}

func (e *UnexpectedKeyError) Error() string {
	if e.Key == "" {
		return "sticker: unexpected end of response, want " + strconv.Quote(e.Expected)
	}
	return "sticker: unexpected key " + strconv.Quote(e.Key) + ", want " + strconv.Quote(e.Expected)
}

func (e *UnexpectedKeyError) Is(target error) bool {
	return target == ErrUnexpectedKey
}

// ShouldCloseConnection returns false - the offending line was fully read
func (e *UnexpectedKeyError) ShouldCloseConnection() bool {
	return false
}

// MalformedStickerError is returned when a "sticker" row has no '=' between
// name and value.
type MalformedStickerError struct {
	Input string
}

func (e *MalformedStickerError) Error() string {
	return "sticker: malformed sticker " + strconv.Quote(e.Input) + ": missing '='"
}

func (e *MalformedStickerError) Is(target error) bool {
	return target == ErrMalformedSticker
}

// ShouldCloseConnection returns false - the offending line was fully read
func (e *MalformedStickerError) ShouldCloseConnection() bool {
	return false
}
