package serial

import "strings"

// An escape sequence is four characters: '0', an 'x' or 'X' marker and two
// hex digits. Digits are 0-9 and upper-case A-F; lower-case a-f never
// matches as a digit, only as the marker.
const escapeLen = 4

// Encode translates a typed command into the literal text to transmit,
// decoding every 0xHH escape into the single character with that value so
// callers can embed non-printable bytes in otherwise plain commands.
//
// The input is scanned with a sliding window of one escape width. A matched
// escape consumes all four characters; anything else copies the character at
// the window start and slides by one. Inputs shorter than one escape are
// returned unchanged. Malformed escapes are not an error, they are plain
// text.
func Encode(in string) string {
	runes := []rune(in)
	if len(runes) < escapeLen {
		return in
	}

	var out strings.Builder
	out.Grow(len(in))

	i := 0
	for i+escapeLen <= len(runes) {
		if v, ok := decodeEscape(runes[i : i+escapeLen]); ok {
			out.WriteRune(v)
			i += escapeLen
			continue
		}
		out.WriteRune(runes[i])
		i++
	}
	return out.String()
}

// decodeEscape reports whether w holds a full 0xHH escape and, if so, the
// character it denotes. w is always exactly escapeLen runes.
func decodeEscape(w []rune) (rune, bool) {
	if w[0] != '0' || (w[1] != 'x' && w[1] != 'X') {
		return 0, false
	}
	hi, ok := hexDigit(w[2])
	if !ok {
		return 0, false
	}
	lo, ok := hexDigit(w[3])
	if !ok {
		return 0, false
	}
	return rune(hi<<4 | lo), true
}

func hexDigit(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	}
	return 0, false
}
