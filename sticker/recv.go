package sticker

import "iter"

// Response keys
const (
	KeySticker     = "sticker"
	KeyStickerType = "stickertype"
)

// Found is one match of a find response: the object URI and its sticker.
type Found struct {
	URI string
	Sticker
}

// Recv receives the next sticker of a get or list response.
//
// It returns (nil, nil) at the end of the response. Every row must carry the
// "sticker" key: any other key is reported as *UnexpectedKeyError, a value
// without '=' as *MalformedStickerError. Errors from conn are returned
// unchanged.
//
// The returned Sticker owns its strings and stays valid across calls.
func Recv(conn PairReceiver) (*Sticker, error) {
	pair, err := conn.RecvPair()
	if err != nil || pair == nil {
		return nil, err
	}

	if pair.Key != KeySticker {
		return nil, &UnexpectedKeyError{Key: pair.Key, Expected: KeySticker}
	}

	s, err := Parse(pair.Value)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// RecvFound receives the next match of a find response.
//
// MPD answers find with two rows per match: the object row, keyed by the
// object kind ("file" for songs), then the "sticker" row. It returns
// (nil, nil) at the end of the response.
func RecvFound(conn PairReceiver) (*Found, error) {
	object, err := conn.RecvPair()
	if err != nil || object == nil {
		return nil, err
	}
	if object.Key == KeySticker {
		return nil, &UnexpectedKeyError{Key: object.Key, Expected: "object URI"}
	}

	s, err := Recv(conn)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, &UnexpectedKeyError{Expected: KeySticker}
	}

	return &Found{URI: object.Value, Sticker: *s}, nil
}

// All returns an iterator over the remaining stickers of the response.
// Iteration stops after the first error, which is yielded once.
func All(conn PairReceiver) iter.Seq2[Sticker, error] {
	return func(yield func(Sticker, error) bool) {
		for {
			s, err := Recv(conn)
			if err != nil {
				yield(Sticker{}, err)
				return
			}
			if s == nil {
				return
			}
			if !yield(*s, nil) {
				return
			}
		}
	}
}

// ReadAll drains a get or list response.
// On error, the stickers received so far are returned along with it.
func ReadAll(conn PairReceiver) ([]Sticker, error) {
	var stickers []Sticker
	for s, err := range All(conn) {
		if err != nil {
			return stickers, err
		}
		stickers = append(stickers, s)
	}
	return stickers, nil
}

// ReadAllFound drains a find response.
func ReadAllFound(conn PairReceiver) ([]Found, error) {
	var found []Found
	for {
		f, err := RecvFound(conn)
		if err != nil {
			return found, err
		}
		if f == nil {
			return found, nil
		}
		found = append(found, *f)
	}
}

// ReadNames drains a response whose rows all carry key and returns the
// values as-is. Use KeySticker for stickernames and KeyStickerType for
// stickertypes: those values are bare names, not "name=value".
func ReadNames(conn PairReceiver, key string) ([]string, error) {
	var names []string
	for {
		pair, err := conn.RecvPair()
		if err != nil {
			return names, err
		}
		if pair == nil {
			return names, nil
		}
		if pair.Key != key {
			return names, &UnexpectedKeyError{Key: pair.Key, Expected: key}
		}
		names = append(names, pair.Value)
	}
}
