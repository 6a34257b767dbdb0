package mpd

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/pior/mpd/proto"
	"github.com/pior/mpd/sticker"
)

var (
	ErrConnectionClosed = errors.New("mpd: connection closed")
	ErrResponsePending  = errors.New("mpd: previous response not finished")
)

// Connection is a single MPD connection.
//
// It runs one command at a time: after SendCommand, the response must be
// drained with RecvPair (until it returns nil) or discarded with
// ResponseFinish before the next command can be sent.
//
// A Connection is not safe for concurrent use, except for Close.
type Connection struct {
	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer

	version string
	pending bool // a command was sent and its status line not read yet

	mu     sync.Mutex
	closed bool
}

var _ sticker.Conn = (*Connection)(nil)

// NewConnection wraps an established net.Conn.
// Call Handshake before sending commands to consume the server greeting.
func NewConnection(netConn net.Conn) *Connection {
	return &Connection{
		conn:   netConn,
		reader: bufio.NewReader(netConn),
		writer: bufio.NewWriter(netConn),
	}
}

// Dial connects to an MPD server and reads its greeting.
// Addresses starting with '/' or '@' are unix sockets, anything else is TCP.
func Dial(ctx context.Context, address string) (*Connection, error) {
	return dialWith(ctx, &net.Dialer{}, address)
}

func dialWith(ctx context.Context, dialer *net.Dialer, address string) (*Connection, error) {
	netConn, err := dialer.DialContext(ctx, network(address), address)
	if err != nil {
		return nil, &proto.ConnectionError{Op: "dial", Err: err}
	}

	c := NewConnection(netConn)
	if deadline, ok := ctx.Deadline(); ok {
		_ = netConn.SetDeadline(deadline)
	}
	if err := c.Handshake(); err != nil {
		_ = c.Close()
		return nil, err
	}
	_ = netConn.SetDeadline(time.Time{})

	return c, nil
}

func network(address string) string {
	if strings.HasPrefix(address, "/") || strings.HasPrefix(address, "@") {
		return "unix"
	}
	return "tcp"
}

// Handshake reads the "OK MPD <version>" greeting.
func (c *Connection) Handshake() error {
	version, err := proto.ReadGreeting(c.reader)
	if err != nil {
		return c.readFailed(err)
	}
	c.version = version
	return nil
}

// Version returns the protocol version announced by the server.
func (c *Connection) Version() string {
	return c.version
}

// SendCommand writes one command line. Arguments are quoted.
//
// Fails with ErrConnectionClosed after Close or a broken I/O, and with
// ErrResponsePending while the previous response has not been drained.
// An *proto.InvalidArgumentError leaves the connection untouched.
func (c *Connection) SendCommand(verb string, args ...string) error {
	if c.IsClosed() {
		return ErrConnectionClosed
	}
	if c.pending {
		return ErrResponsePending
	}

	if err := proto.WriteCommand(c.writer, verb, args...); err != nil {
		var invalid *proto.InvalidArgumentError
		if errors.As(err, &invalid) {
			return err
		}
		c.markClosed()
		return &proto.ConnectionError{Op: "write", Err: err}
	}

	c.pending = true
	return nil
}

// RecvPair returns the next pair of the current response.
//
// It returns nil at the end of the response ("OK"), and a *proto.ServerError
// when the response ends with "ACK". Once the response has ended, further
// calls return nil immediately until the next command is sent.
//
// The returned Pair owns its strings.
func (c *Connection) RecvPair() (*proto.Pair, error) {
	if !c.pending {
		return nil, nil
	}

	pair, err := proto.ReadPair(c.reader)
	if err != nil {
		c.pending = false
		var se *proto.ServerError
		if errors.As(err, &se) {
			return nil, err
		}
		return nil, c.readFailed(err)
	}

	if pair == nil {
		c.pending = false
	}
	return pair, nil
}

// ResponseFinish discards the remaining pairs of the current response and
// returns its terminal status: nil for "OK", a *proto.ServerError for "ACK".
// It is a no-op when no response is pending.
func (c *Connection) ResponseFinish() error {
	for {
		pair, err := c.RecvPair()
		if err != nil {
			return err
		}
		if pair == nil {
			return nil
		}
	}
}

// RunCommand sends a command and waits for the end of its response.
func (c *Connection) RunCommand(verb string, args ...string) error {
	if err := c.SendCommand(verb, args...); err != nil {
		return err
	}
	return c.ResponseFinish()
}

// Pending reports whether a response is still being read.
func (c *Connection) Pending() bool {
	return c.pending
}

// Ping checks that the server answers.
func (c *Connection) Ping() error {
	return c.RunCommand(proto.CmdPing)
}

// Password authenticates the connection.
func (c *Connection) Password(password string) error {
	return c.RunCommand(proto.CmdPassword, password)
}

// SetDeadline sets the read and write deadline of the underlying connection.
func (c *Connection) SetDeadline(t time.Time) error {
	return c.conn.SetDeadline(t)
}

// IsClosed returns whether the connection is closed
func (c *Connection) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Close closes the connection
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	return c.conn.Close()
}

// readFailed marks the connection unusable after a failed read.
// Parse errors are returned as-is, I/O errors wrapped in ConnectionError.
func (c *Connection) readFailed(err error) error {
	c.markClosed()

	var parseErr *proto.ParseError
	if errors.As(err, &parseErr) {
		return err
	}
	return &proto.ConnectionError{Op: "read", Err: err}
}

// markClosed closes the socket after a protocol or I/O failure.
func (c *Connection) markClosed() {
	c.pending = false
	_ = c.Close()
}
