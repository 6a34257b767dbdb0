package proto

// Protocol delimiters
const (
	// LF terminates every command and response line. MPD does not use CRLF.
	LF = "\n"

	// Space separates command tokens
	Space = " "

	// PairSeparator separates key and value in a response line.
	PairSeparator = ": "
)

// Response status lines
const (
	// StatusOK terminates a successful response.
	StatusOK = "OK"

	// StatusListOK separates sub-responses inside a command list.
	// Command lists are not sent by this package; the constant exists so the
	// reader can reject the line with a precise error.
	StatusListOK = "list_OK"

	// AckPrefix starts an error status line.
	//
	// Wire format: ACK [<code>@<index>] {<command>} <message>
	AckPrefix = "ACK "

	// GreetingPrefix starts the line MPD sends right after accepting a connection.
	//
	// Wire format: OK MPD <version>
	GreetingPrefix = "OK MPD "
)

// AckCode is the numeric error code carried by an ACK line.
type AckCode int

// Error codes, as defined by the MPD protocol (ack.h).
const (
	AckNotList       AckCode = 1
	AckArg           AckCode = 2
	AckPassword      AckCode = 3
	AckPermission    AckCode = 4
	AckUnknown       AckCode = 5
	AckNoExist       AckCode = 50
	AckPlaylistMax   AckCode = 51
	AckSystem        AckCode = 52
	AckPlaylistLoad  AckCode = 53
	AckUpdateAlready AckCode = 54
	AckPlayerSync    AckCode = 55
	AckExist         AckCode = 56
)

func (c AckCode) String() string {
	switch c {
	case AckNotList:
		return "not_list"
	case AckArg:
		return "arg"
	case AckPassword:
		return "password"
	case AckPermission:
		return "permission"
	case AckUnknown:
		return "unknown"
	case AckNoExist:
		return "no_exist"
	case AckPlaylistMax:
		return "playlist_max"
	case AckSystem:
		return "system"
	case AckPlaylistLoad:
		return "playlist_load"
	case AckUpdateAlready:
		return "update_already"
	case AckPlayerSync:
		return "player_sync"
	case AckExist:
		return "exist"
	default:
		return "ack"
	}
}

// Commands used by the connection layer itself.
const (
	CmdPing     = "ping"
	CmdPassword = "password"
	CmdClose    = "close"
)

// DefaultPort is the TCP port MPD listens on unless configured otherwise.
const DefaultPort = 6600
