package sticker

import (
	"fmt"
	"strconv"
)

// Op names a sticker operation. It is also the sub-command on the wire for
// the "sticker" verb.
type Op string

const (
	OpSet       Op = "set"
	OpDelete    Op = "delete"
	OpGet       Op = "get"
	OpList      Op = "list"
	OpFind      Op = "find"
	OpInc       Op = "inc"
	OpDec       Op = "dec"
	OpNames     Op = "names"
	OpTypes     Op = "types"
	OpFindValue Op = "find-value"
)

// Protocol verbs
const (
	VerbSticker      = "sticker"
	VerbStickerNames = "stickernames"
	VerbStickerTypes = "stickertypes"
)

// Operator compares sticker values in a FindValue search.
type Operator string

const (
	// String comparison, available since MPD 0.21
	OpEqual   Operator = "="
	OpLess    Operator = "<"
	OpGreater Operator = ">"

	// Integer comparison and substring matching, available since MPD 0.24
	OpIntEqual   Operator = "eq"
	OpIntLess    Operator = "lt"
	OpIntGreater Operator = "gt"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "starts_with"
)

func (o Operator) valid() bool {
	switch o {
	case OpEqual, OpLess, OpGreater, OpIntEqual, OpIntLess, OpIntGreater, OpContains, OpStartsWith:
		return true
	}
	return false
}

// Command is one of the sticker commands: *Set, *Delete, *Get, *List,
// *Find, *FindValue, *Inc, *Dec, *Names or *Types.
//
// The set is closed; Encode handles every member.
type Command interface {
	Op() Op
	isCommand()
}

// Set adds or replaces a sticker value.
//
// Wire format: sticker set <type> <uri> <name> <value>
type Set struct {
	Object ObjectRef
	Name   string
	Value  string
}

// Delete removes one sticker, or every sticker of the object when Name is empty.
//
// Wire format: sticker delete <type> <uri> [<name>]
type Delete struct {
	Object ObjectRef
	Name   string
}

// Get reads one sticker value. Drain the response with Recv.
//
// Wire format: sticker get <type> <uri> <name>
type Get struct {
	Object ObjectRef
	Name   string
}

// List reads all stickers of an object. Drain the response with Recv.
//
// Wire format: sticker list <type> <uri>
type List struct {
	Object ObjectRef
}

// Find searches objects of Type under BaseURI carrying the sticker Name.
// An empty BaseURI searches every object of the type.
// Drain the response with RecvFound.
//
// Wire format: sticker find <type> <base_uri> <name>
type Find struct {
	Type    string
	BaseURI string
	Name    string
}

// FindValue is Find restricted to stickers whose value matches Operator and Value.
//
// Wire format: sticker find <type> <base_uri> <name> <operator> <value>
type FindValue struct {
	Type     string
	BaseURI  string
	Name     string
	Operator Operator
	Value    string
}

// Inc adds Delta to an integer sticker, creating it when missing (MPD 0.24).
//
// Wire format: sticker inc <type> <uri> <name> <delta>
type Inc struct {
	Object ObjectRef
	Name   string
	Delta  uint64
}

// Dec subtracts Delta from an integer sticker (MPD 0.24).
//
// Wire format: sticker dec <type> <uri> <name> <delta>
type Dec struct {
	Object ObjectRef
	Name   string
	Delta  uint64
}

// Names lists the distinct sticker names known to the server (MPD 0.24).
// Rows carry the bare name; drain them with ReadNames, not Recv.
//
// Wire format: stickernames
type Names struct{}

// Types lists the object types the server accepts for stickers (MPD 0.24).
//
// Wire format: stickertypes
type Types struct{}

func (*Set) Op() Op       { return OpSet }
func (*Delete) Op() Op    { return OpDelete }
func (*Get) Op() Op       { return OpGet }
func (*List) Op() Op      { return OpList }
func (*Find) Op() Op      { return OpFind }
func (*FindValue) Op() Op { return OpFindValue }
func (*Inc) Op() Op       { return OpInc }
func (*Dec) Op() Op       { return OpDec }
func (*Names) Op() Op     { return OpNames }
func (*Types) Op() Op     { return OpTypes }

func (*Set) isCommand()       {}
func (*Delete) isCommand()    {}
func (*Get) isCommand()       {}
func (*List) isCommand()      {}
func (*Find) isCommand()      {}
func (*FindValue) isCommand() {}
func (*Inc) isCommand()       {}
func (*Dec) isCommand()       {}
func (*Names) isCommand()     {}
func (*Types) isCommand()     {}

// Encode validates cmd and returns the protocol verb and the unquoted
// argument list. Quoting is left to the connection.
//
// Missing required arguments yield an *ArgumentError. Name is required by
// every command that takes one, except Delete where empty means all.
func Encode(cmd Command) (verb string, args []string, err error) {
	switch c := cmd.(type) {
	case *Set:
		if err := c.Object.validate(OpSet); err != nil {
			return "", nil, err
		}
		if c.Name == "" {
			return "", nil, &ArgumentError{Op: OpSet, Field: "name"}
		}
		return VerbSticker, []string{string(OpSet), c.Object.Type, c.Object.URI, c.Name, c.Value}, nil

	case *Delete:
		if err := c.Object.validate(OpDelete); err != nil {
			return "", nil, err
		}
		args := []string{string(OpDelete), c.Object.Type, c.Object.URI}
		if c.Name != "" {
			args = append(args, c.Name)
		}
		return VerbSticker, args, nil

	case *Get:
		if err := c.Object.validate(OpGet); err != nil {
			return "", nil, err
		}
		if c.Name == "" {
			return "", nil, &ArgumentError{Op: OpGet, Field: "name"}
		}
		return VerbSticker, []string{string(OpGet), c.Object.Type, c.Object.URI, c.Name}, nil

	case *List:
		if err := c.Object.validate(OpList); err != nil {
			return "", nil, err
		}
		return VerbSticker, []string{string(OpList), c.Object.Type, c.Object.URI}, nil

	case *Find:
		if c.Type == "" {
			return "", nil, &ArgumentError{Op: OpFind, Field: "type"}
		}
		if c.Name == "" {
			return "", nil, &ArgumentError{Op: OpFind, Field: "name"}
		}
		// The URI slot is positional: "" stands for the whole namespace.
		return VerbSticker, []string{string(OpFind), c.Type, c.BaseURI, c.Name}, nil

	case *FindValue:
		if c.Type == "" {
			return "", nil, &ArgumentError{Op: OpFindValue, Field: "type"}
		}
		if c.Name == "" {
			return "", nil, &ArgumentError{Op: OpFindValue, Field: "name"}
		}
		if !c.Operator.valid() {
			return "", nil, &ArgumentError{Op: OpFindValue, Field: "operator"}
		}
		return VerbSticker, []string{string(OpFind), c.Type, c.BaseURI, c.Name, string(c.Operator), c.Value}, nil

	case *Inc:
		if err := c.Object.validate(OpInc); err != nil {
			return "", nil, err
		}
		if c.Name == "" {
			return "", nil, &ArgumentError{Op: OpInc, Field: "name"}
		}
		return VerbSticker, []string{string(OpInc), c.Object.Type, c.Object.URI, c.Name, strconv.FormatUint(c.Delta, 10)}, nil

	case *Dec:
		if err := c.Object.validate(OpDec); err != nil {
			return "", nil, err
		}
		if c.Name == "" {
			return "", nil, &ArgumentError{Op: OpDec, Field: "name"}
		}
		return VerbSticker, []string{string(OpDec), c.Object.Type, c.Object.URI, c.Name, strconv.FormatUint(c.Delta, 10)}, nil

	case *Names:
		return VerbStickerNames, nil, nil

	case *Types:
		return VerbStickerTypes, nil, nil

	case nil:
		return "", nil, fmt.Errorf("%w: nil command", ErrInvalidArgument)
	}

	panic(fmt.Sprintf("sticker: unhandled command %T", cmd))
}
