package sticker

import (
	"errors"

	"github.com/pior/mpd/proto"
)

// sentCommand is one command recorded by fakeConn.
type sentCommand struct {
	verb string
	args []string
}

// fakeConn replays a scripted response and records sent commands.
// A nil entry in pairs marks the end of the response.
type fakeConn struct {
	sent     []sentCommand
	pairs    []*proto.Pair
	finalErr error // returned instead of the end marker, e.g. an ACK
	sendErr  error
	ended    bool
	finished int
}

func newFakeConn(pairs ...proto.Pair) *fakeConn {
	c := &fakeConn{}
	for i := range pairs {
		c.pairs = append(c.pairs, &pairs[i])
	}
	return c
}

func stickerPairs(values ...string) []proto.Pair {
	pairs := make([]proto.Pair, len(values))
	for i, v := range values {
		pairs[i] = proto.Pair{Key: KeySticker, Value: v}
	}
	return pairs
}

func (c *fakeConn) SendCommand(verb string, args ...string) error {
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sent = append(c.sent, sentCommand{verb: verb, args: args})
	c.ended = false
	return nil
}

func (c *fakeConn) RecvPair() (*proto.Pair, error) {
	if c.ended {
		return nil, nil
	}
	if len(c.pairs) == 0 {
		c.ended = true
		return nil, c.finalErr
	}
	p := c.pairs[0]
	c.pairs = c.pairs[1:]
	return p, nil
}

func (c *fakeConn) ResponseFinish() error {
	c.finished++
	for {
		p, err := c.RecvPair()
		if err != nil || p == nil {
			return err
		}
	}
}

var errSendFailed = errors.New("send failed")
