// Package proto provides a low-level wire protocol implementation for the
// Music Player Daemon (MPD) text protocol.
//
// It is the shared command-building and response-reading facility for the
// packages built on top of it: it knows how to quote arguments, how a command
// line and a response line look, and which errors leave a connection usable.
// It does not own connections and never retries.
//
// # Commands
//
// A command is a verb followed by quoted arguments, terminated by LF:
//
//	sticker set "song" "a/b.flac" "rating" "5"
//
// Arguments are wrapped in double quotes; '"' and '\' are escaped with a
// backslash. Line breaks cannot be escaped and are rejected with
// *InvalidArgumentError before anything is written.
//
//	err := proto.WriteCommand(w, "sticker", "get", "song", uri, "rating")
//
// # Responses
//
// A response is a sequence of "key: value" lines terminated by a status line,
// either "OK" or "ACK [code@index] {command} message":
//
//	sticker: rating=5
//	OK
//
// ReadPair returns one pair per call, nil at "OK" and a *ServerError at "ACK":
//
//	for {
//	    pair, err := proto.ReadPair(r)
//	    if err != nil {
//	        return err
//	    }
//	    if pair == nil {
//	        break // end of response
//	    }
//	    fmt.Println(pair.Key, pair.Value)
//	}
//
// # Errors
//
// ShouldCloseConnection tells whether an error leaves the connection in an
// unknown state:
//
//   - *ServerError: response ended cleanly, connection reusable
//   - *InvalidArgumentError: nothing written, connection reusable
//   - *ParseError, *ConnectionError and unknown errors: close the connection
package proto
