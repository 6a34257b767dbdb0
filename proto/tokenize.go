package proto

import "strings"

// SplitCommand splits a command line, as written by AppendCommand, into its
// verb and unquoted arguments. The trailing LF is optional.
//
// Arguments may be quoted or bare; inside quotes a backslash escapes the
// next byte. This is the server side of the protocol, used by test servers.
func SplitCommand(line string) (verb string, args []string, err error) {
	line = strings.TrimSuffix(line, LF)

	verb, rest, _ := strings.Cut(line, Space)
	if err := ValidateVerb(verb); err != nil {
		return "", nil, err
	}

	for {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			return verb, args, nil
		}

		var arg string
		if rest[0] == '"' {
			arg, rest, err = cutQuoted(rest[1:])
			if err != nil {
				return "", nil, err
			}
		} else {
			arg, rest, _ = strings.Cut(rest, Space)
			if strings.ContainsAny(arg, "\"\\") {
				return "", nil, &ParseError{Message: "quote or backslash in bare argument"}
			}
		}
		args = append(args, arg)
	}
}

// cutQuoted reads a quoted argument whose opening quote was consumed.
func cutQuoted(s string) (arg, rest string, err error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			i++
			if i == len(s) {
				return "", "", &ParseError{Message: "unterminated escape in quoted argument"}
			}
			b.WriteByte(s[i])
		case '"':
			rest = s[i+1:]
			if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
				return "", "", &ParseError{Message: "missing space after quoted argument"}
			}
			return b.String(), rest, nil
		default:
			b.WriteByte(c)
		}
	}
	return "", "", &ParseError{Message: "unterminated quoted argument"}
}
