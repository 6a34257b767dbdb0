package proto

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "rating", `"rating"`},
		{"empty", "", `""`},
		{"space", "a b.flac", `"a b.flac"`},
		{"double quote", `say "hi"`, `"say \"hi\""`},
		{"backslash", `C:\music`, `"C:\\music"`},
		{"both", `\"`, `"\\\""`},
		{"utf8", "Björk/Homogenic", `"Björk/Homogenic"`},
		{"equals", "a=b", `"a=b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Quote(tt.input))
		})
	}
}

func TestWriteCommand(t *testing.T) {
	tests := []struct {
		name     string
		verb     string
		args     []string
		expected string
	}{
		{
			name:     "no arguments",
			verb:     "stickernames",
			expected: "stickernames\n",
		},
		{
			name:     "sticker set",
			verb:     "sticker",
			args:     []string{"set", "song", "a/b.flac", "rating", "5"},
			expected: "sticker \"set\" \"song\" \"a/b.flac\" \"rating\" \"5\"\n",
		},
		{
			name:     "empty argument is quoted",
			verb:     "sticker",
			args:     []string{"find", "song", "", "rating"},
			expected: "sticker \"find\" \"song\" \"\" \"rating\"\n",
		},
		{
			name:     "escaped argument",
			verb:     "password",
			args:     []string{`p"w\d`},
			expected: "password \"p\\\"w\\\\d\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := WriteCommand(&buf, tt.verb, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteCommand_Buffered(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)

	err := WriteCommand(bw, "sticker", "list", "song", "x.ogg")
	require.NoError(t, err)

	// Flushed by WriteCommand
	assert.Equal(t, "sticker \"list\" \"song\" \"x.ogg\"\n", buf.String())
	assert.Equal(t, 0, bw.Buffered())
}

func TestWriteCommand_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		verb string
		args []string
	}{
		{"empty verb", "", nil},
		{"verb with space", "sticker set", nil},
		{"verb with quote", `sticker"`, nil},
		{"argument with LF", "sticker", []string{"get", "song", "a\nb", "x"}},
		{"argument with CR", "sticker", []string{"get", "song", "a\rb", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := WriteCommand(&buf, tt.verb, tt.args...)

			var invalid *InvalidArgumentError
			require.ErrorAs(t, err, &invalid)
			assert.False(t, ShouldCloseConnection(err))
			assert.Zero(t, buf.Len(), "nothing should be written")
		})
	}
}

func TestAppendCommand_ReusesBuffer(t *testing.T) {
	dst := make([]byte, 0, 64)
	line, err := AppendCommand(dst, "ping")
	require.NoError(t, err)
	assert.Equal(t, "ping\n", string(line))
	assert.Equal(t, 64, cap(line))
}
