package mpd

import (
	"net"
	"strconv"

	"github.com/pior/mpd/proto"
)

// Servers provides the list of MPD server addresses.
type Servers interface {
	List() []string
}

// StaticServers is a fixed list of server addresses.
type StaticServers []string

// NewStaticServers creates a static list of servers.
func NewStaticServers(addrs ...string) StaticServers {
	return StaticServers(addrs)
}

func (s StaticServers) List() []string {
	return s
}

// JoinHostPort builds a server address from a host and a port.
// Hosts starting with '/' or '@' are unix socket paths and are returned as-is.
// A zero port means proto.DefaultPort.
func JoinHostPort(host string, port int) string {
	if network(host) == "unix" {
		return host
	}
	if port == 0 {
		port = proto.DefaultPort
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}
