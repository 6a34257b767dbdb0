package sticker

import "github.com/pior/mpd/proto"

// PairReceiver is the generic receive primitive of a connection.
//
// RecvPair returns the next pair of the current response, nil at the end of
// the response, or an error (a *proto.ServerError when the server answered
// with ACK). Calling it again after the end returns nil immediately.
type PairReceiver interface {
	RecvPair() (*proto.Pair, error)
}

// Conn is the connection abstraction the sticker commands run on.
//
// SendCommand quotes and transmits one command; it fails when the connection
// cannot accept a new command (closed, or a previous response not drained).
// ResponseFinish discards what is left of the current response and returns
// its terminal status.
//
// A Conn is used by one goroutine at a time.
type Conn interface {
	PairReceiver
	SendCommand(verb string, args ...string) error
	ResponseFinish() error
}

// Send encodes cmd and transmits it. The response must then be drained with
// the receiver matching the command (Recv, RecvFound or ReadNames) or
// discarded with conn.ResponseFinish.
//
// Argument errors are returned without touching conn; send errors are
// returned unchanged.
func Send(conn Conn, cmd Command) error {
	verb, args, err := Encode(cmd)
	if err != nil {
		return err
	}
	return conn.SendCommand(verb, args...)
}

// Run sends cmd and waits for the end of its response, discarding any rows.
// It succeeds only if both the send and the response succeed.
func Run(conn Conn, cmd Command) error {
	if err := Send(conn, cmd); err != nil {
		return err
	}
	return conn.ResponseFinish()
}

// SendSet sends "sticker set".
func SendSet(conn Conn, obj ObjectRef, name, value string) error {
	return Send(conn, &Set{Object: obj, Name: name, Value: value})
}

// RunSet adds or replaces a sticker value and waits for the server's reply.
func RunSet(conn Conn, obj ObjectRef, name, value string) error {
	return Run(conn, &Set{Object: obj, Name: name, Value: value})
}

// SendDelete sends "sticker delete". An empty name deletes every sticker of obj.
func SendDelete(conn Conn, obj ObjectRef, name string) error {
	return Send(conn, &Delete{Object: obj, Name: name})
}

// RunDelete deletes a sticker (or all of them when name is empty) and waits
// for the server's reply.
func RunDelete(conn Conn, obj ObjectRef, name string) error {
	return Run(conn, &Delete{Object: obj, Name: name})
}

// SendGet sends "sticker get". Receive the value with Recv.
func SendGet(conn Conn, obj ObjectRef, name string) error {
	return Send(conn, &Get{Object: obj, Name: name})
}

// SendList sends "sticker list". Receive each sticker with Recv.
func SendList(conn Conn, obj ObjectRef) error {
	return Send(conn, &List{Object: obj})
}

// SendFind sends "sticker find". An empty baseURI searches every object of
// the type. Receive each match with RecvFound.
func SendFind(conn Conn, typ, baseURI, name string) error {
	return Send(conn, &Find{Type: typ, BaseURI: baseURI, Name: name})
}

// SendNames sends "stickernames". Its rows are plain pairs: receive them with
// conn.RecvPair or ReadNames.
func SendNames(conn Conn) error {
	return Send(conn, &Names{})
}
