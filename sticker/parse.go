package sticker

import "strings"

// Sticker is a parsed name/value pair.
type Sticker struct {
	Name  string
	Value string
}

// SplitValue splits a "name=value" sticker string at the first '='.
//
// It returns the substring after the separator and the length of the name,
// so input[:nameLen] is the name. The input is not copied. ok is false when
// input has no '='; an empty name ("=value") is accepted.
func SplitValue(input string) (value string, nameLen int, ok bool) {
	i := strings.IndexByte(input, '=')
	if i < 0 {
		return "", 0, false
	}
	return input[i+1:], i, true
}

// Parse splits a "name=value" sticker string into a Sticker.
// Only the first '=' separates, the value may contain more.
func Parse(input string) (Sticker, error) {
	value, nameLen, ok := SplitValue(input)
	if !ok {
		return Sticker{}, &MalformedStickerError{Input: input}
	}
	return Sticker{Name: input[:nameLen], Value: value}, nil
}

// String returns the sticker in its wire form, "name=value".
func (s Sticker) String() string {
	return s.Name + "=" + s.Value
}
