package mpd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticServers_List(t *testing.T) {
	servers := NewStaticServers("mpd1:6600", "mpd2:6600", "/run/mpd/socket")

	assert.Equal(t, []string{"mpd1:6600", "mpd2:6600", "/run/mpd/socket"}, servers.List())
}

func TestStaticServers_EmptyList(t *testing.T) {
	assert.Empty(t, NewStaticServers().List())
}

func TestJoinHostPort(t *testing.T) {
	tests := []struct {
		host     string
		port     int
		expected string
	}{
		{"localhost", 6600, "localhost:6600"},
		{"localhost", 0, "localhost:6600"},
		{"music.lan", 6601, "music.lan:6601"},
		{"::1", 6600, "[::1]:6600"},
		{"/run/mpd/socket", 6600, "/run/mpd/socket"},
		{"@mpd", 0, "@mpd"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, JoinHostPort(tt.host, tt.port))
		})
	}
}
