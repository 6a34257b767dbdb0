package mpd

import (
	"context"
	"testing"
	"time"

	"github.com/pior/mpd/internal/mpdtest"
	"github.com/pior/mpd/internal/testutils"
	"github.com/stretchr/testify/require"
)

const greeting = "OK MPD 0.24.0\n"

// newMockConnection returns a connection past its handshake, replaying the
// given server output.
func newMockConnection(t testing.TB, responses ...string) (*Connection, *testutils.ConnectionMock) {
	t.Helper()

	mock := testutils.NewConnectionMock(append([]string{greeting}, responses...)...)
	conn := NewConnection(mock)
	require.NoError(t, conn.Handshake())
	return conn, mock
}

// newTestClient returns a client connected to a fresh fake server.
func newTestClient(t testing.TB, config Config) (*Client, *mpdtest.Server) {
	t.Helper()

	server := mpdtest.NewServer(t)
	client, err := NewClient(NewStaticServers(server.Addr()), config)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return client, server
}

func testContext(t testing.TB) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}
