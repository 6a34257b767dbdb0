package mpd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pior/mpd/internal/mpdtest"
	"github.com/pior/mpd/internal/testutils"
	"github.com/pior/mpd/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnection_Handshake(t *testing.T) {
	conn, _ := newMockConnection(t)
	assert.Equal(t, "0.24.0", conn.Version())
}

func TestConnection_HandshakeRejectsOtherServers(t *testing.T) {
	mock := testutils.NewConnectionMock("VERSION 1.6.0\r\n")
	conn := NewConnection(mock)

	err := conn.Handshake()

	var parseErr *proto.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.True(t, conn.IsClosed())
	assert.True(t, mock.IsClosed())
}

func TestConnection_SendCommandQuotesArguments(t *testing.T) {
	conn, mock := newMockConnection(t, "OK\n")

	require.NoError(t, conn.SendCommand("sticker", "get", "song", `a "b".flac`, "rating"))
	assert.True(t, conn.Pending())
	require.NoError(t, conn.ResponseFinish())
	assert.False(t, conn.Pending())

	assert.Equal(t, `sticker "get" "song" "a \"b\".flac" "rating"`+"\n", mock.Written())
}

func TestConnection_SendCommandWhilePending(t *testing.T) {
	conn, mock := newMockConnection(t, "sticker: a=1\nOK\n")

	require.NoError(t, conn.SendCommand("sticker", "list", "song", "x"))
	err := conn.SendCommand("ping")
	require.ErrorIs(t, err, ErrResponsePending)
	assert.False(t, conn.IsClosed())

	require.NoError(t, conn.ResponseFinish())
	assert.Equal(t, `sticker "list" "song" "x"`+"\n", mock.Written())
}

func TestConnection_SendCommandInvalidArgument(t *testing.T) {
	conn, mock := newMockConnection(t)

	err := conn.SendCommand("sticker", "set", "song", "x", "name", "two\nlines")

	var invalid *proto.InvalidArgumentError
	require.ErrorAs(t, err, &invalid)
	assert.False(t, conn.IsClosed())
	assert.False(t, conn.Pending())
	assert.Empty(t, mock.Written())
}

func TestConnection_SendCommandWriteFailure(t *testing.T) {
	conn, mock := newMockConnection(t)
	mock.WriteErr = errors.New("broken pipe")

	err := conn.SendCommand("ping")

	var connErr *proto.ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "write", connErr.Op)
	assert.True(t, conn.IsClosed())

	require.ErrorIs(t, conn.SendCommand("ping"), ErrConnectionClosed)
}

func TestConnection_RecvPair(t *testing.T) {
	conn, _ := newMockConnection(t, "file: a.flac\nsticker: rating=5\nOK\n")

	require.NoError(t, conn.SendCommand("sticker", "find", "song", "", "rating"))

	pair, err := conn.RecvPair()
	require.NoError(t, err)
	assert.Equal(t, &proto.Pair{Key: "file", Value: "a.flac"}, pair)

	pair, err = conn.RecvPair()
	require.NoError(t, err)
	assert.Equal(t, &proto.Pair{Key: "sticker", Value: "rating=5"}, pair)

	pair, err = conn.RecvPair()
	require.NoError(t, err)
	assert.Nil(t, pair)

	// Ended responses stay ended
	pair, err = conn.RecvPair()
	require.NoError(t, err)
	assert.Nil(t, pair)
}

func TestConnection_RecvPairAck(t *testing.T) {
	conn, _ := newMockConnection(t, "ACK [50@0] {sticker} no such sticker\nOK\n")

	require.NoError(t, conn.SendCommand("sticker", "get", "song", "x", "rating"))

	_, err := conn.RecvPair()
	require.True(t, proto.IsAck(err, proto.AckNoExist))
	assert.False(t, conn.Pending())
	assert.False(t, conn.IsClosed())

	// The connection accepts the next command
	require.NoError(t, conn.RunCommand("ping"))
}

func TestConnection_RecvPairTruncated(t *testing.T) {
	conn, _ := newMockConnection(t, "sticker: rat")

	require.NoError(t, conn.SendCommand("sticker", "list", "song", "x"))

	_, err := conn.RecvPair()
	var connErr *proto.ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.True(t, proto.ShouldCloseConnection(err))
	assert.True(t, conn.IsClosed())
}

func TestConnection_RecvPairMalformedLine(t *testing.T) {
	conn, _ := newMockConnection(t, "garbage\nOK\n")

	require.NoError(t, conn.SendCommand("sticker", "list", "song", "x"))

	_, err := conn.RecvPair()
	var parseErr *proto.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.True(t, conn.IsClosed())
}

func TestConnection_ResponseFinishWithoutCommand(t *testing.T) {
	conn, _ := newMockConnection(t)
	require.NoError(t, conn.ResponseFinish())
}

func TestConnection_Close(t *testing.T) {
	conn, mock := newMockConnection(t)

	require.NoError(t, conn.Close())
	assert.True(t, conn.IsClosed())
	assert.True(t, mock.IsClosed())

	// Idempotent
	require.NoError(t, conn.Close())
}

func TestDial(t *testing.T) {
	server := mpdtest.NewServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	conn, err := Dial(ctx, server.Addr())
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, mpdtest.Version, conn.Version())
	require.NoError(t, conn.Ping())
	assert.Equal(t, []string{"ping"}, server.Commands())
}

func TestDial_Password(t *testing.T) {
	server := mpdtest.NewServer(t)
	server.SetPassword("secret")

	conn, err := Dial(testContext(t), server.Addr())
	require.NoError(t, err)
	defer conn.Close()

	err = conn.RunCommand("stickernames")
	require.True(t, proto.IsAck(err, proto.AckPermission))

	err = conn.Password("wrong")
	require.True(t, proto.IsAck(err, proto.AckPassword))

	require.NoError(t, conn.Password("secret"))
	require.NoError(t, conn.RunCommand("stickernames"))
}

func TestDial_Refused(t *testing.T) {
	server := mpdtest.NewServer(t)
	addr := server.Addr()
	server.Close()

	_, err := Dial(testContext(t), addr)

	var connErr *proto.ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "dial", connErr.Op)
}

func TestNetwork(t *testing.T) {
	assert.Equal(t, "tcp", network("localhost:6600"))
	assert.Equal(t, "tcp", network("[::1]:6600"))
	assert.Equal(t, "unix", network("/run/mpd/socket"))
	assert.Equal(t, "unix", network("@mpd"))
}
