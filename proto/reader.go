package proto

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// ReadLine reads a single line from r and returns it without the trailing LF.
//
// Uses ReadSlice to avoid an allocation for the common case and falls back
// to ReadBytes when the line exceeds the buffer size. The returned string is
// always a copy.
func ReadLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadSlice('\n')
	if err == bufio.ErrBufferFull {
		// Line exceeds buffer, keep what we have and read the rest
		head := bytes.Clone(line)
		var tail []byte
		tail, err = r.ReadBytes('\n')
		line = append(head, tail...)
	}
	if err == io.EOF && len(line) > 0 {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return "", err
	}

	line = bytes.TrimSuffix(line, []byte(LF))
	return string(line), nil
}

// ReadGreeting reads the banner MPD sends when a connection is accepted
// and returns the protocol version it announces.
//
// Wire format: OK MPD <version>\n
func ReadGreeting(r *bufio.Reader) (string, error) {
	line, err := ReadLine(r)
	if err != nil {
		return "", err
	}

	version, ok := strings.CutPrefix(line, GreetingPrefix)
	if !ok {
		return "", &ParseError{Message: "unexpected greeting: " + line}
	}
	if version == "" {
		return "", &ParseError{Message: "greeting without version"}
	}
	return version, nil
}

// ReadPair reads the next line of a response.
//
// Returns:
//   - (*Pair, nil) for a "key: value" line
//   - (nil, nil) for "OK", the end of a successful response
//   - (nil, *ServerError) for "ACK ...", the end of a failed response
//
// Go errors other than *ServerError indicate I/O or parsing failures:
//   - io.EOF or other I/O errors: connection issues
//   - *ParseError: malformed line, the stream position is unknown
func ReadPair(r *bufio.Reader) (*Pair, error) {
	line, err := ReadLine(r)
	if err != nil {
		return nil, err
	}

	switch {
	case line == StatusOK:
		return nil, nil
	case strings.HasPrefix(line, AckPrefix):
		se, err := ParseAck(line)
		if err != nil {
			return nil, err
		}
		return nil, se
	case line == StatusListOK:
		return nil, &ParseError{Message: "unexpected list_OK outside a command list"}
	}

	pair, err := ParsePair(line)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// ReadResponse reads pairs until the end of the response.
// The returned error is the ACK, if any, or a read failure.
func ReadResponse(r *bufio.Reader) ([]Pair, error) {
	var pairs []Pair
	for {
		pair, err := ReadPair(r)
		if err != nil {
			return pairs, err
		}
		if pair == nil {
			return pairs, nil
		}
		pairs = append(pairs, *pair)
	}
}
