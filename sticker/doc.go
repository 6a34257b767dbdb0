// Package sticker implements the MPD sticker sub-protocol on top of any
// connection that can send a command and receive response pairs.
//
// Stickers are name/value strings attached to server objects, addressed by
// an object type ("song") and a URI. MPD stores them without interpreting
// them; clients use them for ratings, play counts and similar data.
//
// # Sending
//
// Each operation is a Command value. Encode turns it into a verb and an
// argument list, Send transmits it, Run also waits for the reply:
//
//	err := sticker.RunSet(conn, sticker.Song("a/b.flac"), "rating", "5")
//
//	err = sticker.Send(conn, &sticker.List{Object: sticker.Song("a/b.flac")})
//
// Commands missing a required argument fail with an *ArgumentError before
// the connection is touched.
//
// # Receiving
//
// Rows of get and list responses look like "sticker: name=value". Recv reads
// one row and splits it at the first '=':
//
//	for {
//	    s, err := sticker.Recv(conn)
//	    if err != nil {
//	        return err
//	    }
//	    if s == nil {
//	        break // end of response
//	    }
//	    fmt.Println(s.Name, s.Value)
//	}
//
// Find responses pair each sticker with the object it belongs to: use
// RecvFound. Names and Types responses carry bare names under the "sticker"
// and "stickertype" keys and are read with ReadNames, never with Recv.
//
// # Errors
//
//   - *ArgumentError (ErrInvalidArgument): missing type, URI or operator
//   - *UnexpectedKeyError (ErrUnexpectedKey): a row that is not a sticker row
//   - *MalformedStickerError (ErrMalformedSticker): a sticker row without '='
//   - anything else comes from the connection unchanged
//
// Nothing is retried: sticker operations are not assumed idempotent.
package sticker
