package mpd

import (
	"github.com/pior/mpd/internal"
	"github.com/zeebo/xxh3"
)

// ServerSelector picks the index of the server owning an object URI.
// It is called with serverCount >= 1.
type ServerSelector func(uri string, serverCount int) int

// DefaultServerSelector uses Jump Hash over the xxh3 hash of the URI.
// Jump Hash moves few URIs when servers are added or removed.
func DefaultServerSelector(uri string, serverCount int) int {
	return internal.JumpHash(xxh3.HashString(uri), serverCount)
}

// staticSelector is used in tests to always select a specific server.
func staticSelector(index int) ServerSelector {
	return func(uri string, serverCount int) int {
		return index % serverCount
	}
}
