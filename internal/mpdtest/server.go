// Package mpdtest runs an in-process MPD server that speaks the sticker
// commands, for tests.
package mpdtest

import (
	"bufio"
	"fmt"
	"maps"
	"net"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/pior/mpd/proto"
)

// Version is the protocol version announced in the greeting.
const Version = "0.24.0"

// HandlerFunc answers one command. It returns the full response, including
// the terminating "OK\n" or ACK line.
type HandlerFunc func(args []string) string

// Server is a fake MPD server holding stickers in memory.
// It listens on 127.0.0.1 and stops when the test ends.
type Server struct {
	listener net.Listener

	mu       sync.Mutex
	stickers map[object]map[string]string
	commands []string
	handlers map[string]HandlerFunc
	password string
	conns    map[net.Conn]struct{}
}

type object struct {
	typ string
	uri string
}

// NewServer starts a server for the duration of the test.
func NewServer(t testing.TB) *Server {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to start test server: %v", err)
	}

	s := &Server{
		listener: listener,
		stickers: make(map[object]map[string]string),
		handlers: make(map[string]HandlerFunc),
		conns:    make(map[net.Conn]struct{}),
	}
	t.Cleanup(s.Close)

	go s.serve()
	return s
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Close stops the server and drops every client connection.
func (s *Server) Close() {
	_ = s.listener.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		_ = conn.Close()
	}
}

// SetPassword requires clients to send password before any other command.
func (s *Server) SetPassword(password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.password = password
}

// SetSticker stores a sticker directly, bypassing the protocol.
func (s *Server) SetSticker(typ, uri, name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(object{typ, uri}, name, value)
}

// Sticker returns a stored sticker value.
func (s *Server) Sticker(typ, uri, name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.stickers[object{typ, uri}][name]
	return value, ok
}

// Commands returns every command line received so far, without the LF.
func (s *Server) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.commands)
}

// Handle overrides the response to every command with the given verb.
// For "sticker", the sub-command is args[0].
func (s *Server) Handle(verb string, fn HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[verb] = fn
}

// DropConnections closes the client connections currently open.
func (s *Server) DropConnections() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		_ = conn.Close()
		delete(s.conns, conn)
	}
}

func (s *Server) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}

		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		go s.serveConn(conn)
	}
}

func (s *Server) serveConn(conn net.Conn) {
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		_ = conn.Close()
	}()

	reader := bufio.NewReader(conn)
	writer := bufio.NewWriter(conn)

	fmt.Fprintf(writer, "%s%s\n", proto.GreetingPrefix, Version)
	if writer.Flush() != nil {
		return
	}

	authenticated := false
	for {
		line, err := proto.ReadLine(reader)
		if err != nil {
			return
		}

		verb, args, err := proto.SplitCommand(line)
		if err != nil {
			writer.WriteString(ack(proto.AckArg, "", err.Error()))
			if writer.Flush() != nil {
				return
			}
			continue
		}
		if verb == proto.CmdClose {
			return
		}

		s.mu.Lock()
		s.commands = append(s.commands, line)
		response := s.dispatch(verb, args, &authenticated)
		s.mu.Unlock()

		writer.WriteString(response)
		if writer.Flush() != nil {
			return
		}
	}
}

// dispatch runs one command. s.mu is held.
func (s *Server) dispatch(verb string, args []string, authenticated *bool) string {
	if verb == proto.CmdPassword {
		if len(args) != 1 {
			return ack(proto.AckArg, verb, "wrong number of arguments")
		}
		if args[0] != s.password {
			return ack(proto.AckPassword, verb, "incorrect password")
		}
		*authenticated = true
		return proto.StatusOK + proto.LF
	}

	if s.password != "" && !*authenticated && verb != proto.CmdPing {
		return ack(proto.AckPermission, verb, fmt.Sprintf("you don't have permission for %q", verb))
	}

	if fn, ok := s.handlers[verb]; ok {
		return fn(args)
	}

	switch verb {
	case proto.CmdPing:
		return proto.StatusOK + proto.LF
	case "sticker":
		return s.sticker(args)
	case "stickernames":
		return s.names()
	case "stickertypes":
		return "stickertype: song\nstickertype: playlist\nstickertype: filter\nOK\n"
	}
	return ack(proto.AckUnknown, "", fmt.Sprintf("unknown command %q", verb))
}

func (s *Server) sticker(args []string) string {
	const verb = "sticker"

	if len(args) < 3 {
		return ack(proto.AckArg, verb, "bad request")
	}
	sub, obj := args[0], object{args[1], args[2]}

	switch {
	case sub == "set" && len(args) == 5:
		s.set(obj, args[3], args[4])
		return okResponse()

	case sub == "get" && len(args) == 4:
		value, ok := s.stickers[obj][args[3]]
		if !ok {
			return ack(proto.AckNoExist, verb, "no such sticker")
		}
		return stickerRow(args[3], value) + okResponse()

	case sub == "list" && len(args) == 3:
		var b strings.Builder
		for _, name := range slices.Sorted(maps.Keys(s.stickers[obj])) {
			b.WriteString(stickerRow(name, s.stickers[obj][name]))
		}
		return b.String() + okResponse()

	case sub == "delete" && len(args) == 3:
		if len(s.stickers[obj]) == 0 {
			return ack(proto.AckNoExist, verb, "no such sticker")
		}
		delete(s.stickers, obj)
		return okResponse()

	case sub == "delete" && len(args) == 4:
		if _, ok := s.stickers[obj][args[3]]; !ok {
			return ack(proto.AckNoExist, verb, "no such sticker")
		}
		delete(s.stickers[obj], args[3])
		return okResponse()

	case (sub == "inc" || sub == "dec") && len(args) == 5:
		return s.update(sub, obj, args[3], args[4])

	case sub == "find" && (len(args) == 4 || len(args) == 6):
		var op, operand string
		if len(args) == 6 {
			op, operand = args[4], args[5]
		}
		return s.find(obj.typ, obj.uri, args[3], op, operand)
	}

	return ack(proto.AckArg, verb, "bad request")
}

func (s *Server) set(obj object, name, value string) {
	if s.stickers[obj] == nil {
		s.stickers[obj] = make(map[string]string)
	}
	s.stickers[obj][name] = value
}

func (s *Server) update(sub string, obj object, name, deltaArg string) string {
	delta, err := strconv.ParseInt(deltaArg, 10, 64)
	if err != nil {
		return ack(proto.AckArg, "sticker", "bad delta")
	}

	var current int64
	if value, ok := s.stickers[obj][name]; ok {
		current, err = strconv.ParseInt(value, 10, 64)
		if err != nil {
			return ack(proto.AckArg, "sticker", "not an integer sticker")
		}
	}

	if sub == "dec" {
		delta = -delta
	}
	s.set(obj, name, strconv.FormatInt(current+delta, 10))
	return okResponse()
}

func (s *Server) find(typ, base, name, op, operand string) string {
	var uris []string
	for obj, stickers := range s.stickers {
		if obj.typ != typ || !underBase(obj.uri, base) {
			continue
		}
		value, ok := stickers[name]
		if !ok {
			continue
		}
		if op != "" {
			match, err := compare(value, op, operand)
			if err != nil {
				return ack(proto.AckArg, "sticker", err.Error())
			}
			if !match {
				continue
			}
		}
		uris = append(uris, obj.uri)
	}
	slices.Sort(uris)

	key := typ
	if typ == "song" {
		key = "file"
	}

	var b strings.Builder
	for _, uri := range uris {
		b.WriteString(key + proto.PairSeparator + uri + proto.LF)
		b.WriteString(stickerRow(name, s.stickers[object{typ, uri}][name]))
	}
	return b.String() + okResponse()
}

func (s *Server) names() string {
	seen := make(map[string]struct{})
	for _, stickers := range s.stickers {
		for name := range stickers {
			seen[name] = struct{}{}
		}
	}

	var b strings.Builder
	for _, name := range slices.Sorted(maps.Keys(seen)) {
		b.WriteString("sticker" + proto.PairSeparator + name + proto.LF)
	}
	return b.String() + okResponse()
}

func underBase(uri, base string) bool {
	return base == "" || uri == base || strings.HasPrefix(uri, base+"/")
}

func compare(value, op, operand string) (bool, error) {
	switch op {
	case "=":
		return value == operand, nil
	case "<":
		return value < operand, nil
	case ">":
		return value > operand, nil
	case "contains":
		return strings.Contains(value, operand), nil
	case "starts_with":
		return strings.HasPrefix(value, operand), nil
	case "eq", "lt", "gt":
		a, errA := strconv.ParseInt(value, 10, 64)
		b, errB := strconv.ParseInt(operand, 10, 64)
		if errB != nil {
			return false, fmt.Errorf("bad integer %q", operand)
		}
		if errA != nil {
			return false, nil
		}
		switch op {
		case "eq":
			return a == b, nil
		case "lt":
			return a < b, nil
		}
		return a > b, nil
	}
	return false, fmt.Errorf("bad operator %q", op)
}

func stickerRow(name, value string) string {
	return "sticker" + proto.PairSeparator + name + "=" + value + proto.LF
}

func okResponse() string {
	return proto.StatusOK + proto.LF
}

func ack(code proto.AckCode, command, message string) string {
	return fmt.Sprintf("%s[%d@0] {%s} %s\n", proto.AckPrefix, code, command, message)
}
