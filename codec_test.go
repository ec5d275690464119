package serial

import "testing"

func TestEncodeShortInputUnchanged(t *testing.T) {
	for _, in := range []string{"", "a", "ok", "abc"} {
		if got := Encode(in); got != in {
			t.Fatalf("Encode(%q) = %q, want input unchanged", in, got)
		}
	}
}

func TestEncodeSingleEscape(t *testing.T) {
	if got := Encode("0x41"); got != "A" {
		t.Fatalf("Encode(0x41) = %q, want %q", got, "A")
	}
}

func TestEncodeUpperCaseMarker(t *testing.T) {
	if got := Encode("0X41"); got != "A" {
		t.Fatalf("Encode(0X41) = %q, want %q", got, "A")
	}
}

func TestEncodeAdjacentEscapes(t *testing.T) {
	if got := Encode("0x020x23"); got != "\x02#" {
		t.Fatalf("Encode(0x020x23) = %q, want %q", got, "\x02#")
	}
}

func TestEncodeMixedTextAndEscapes(t *testing.T) {
	want := "\x02iii\x17ii\x03"
	if got := Encode("0x02iii0x17ii0x03"); got != want {
		t.Fatalf("Encode = %q, want %q", got, want)
	}
}

func TestEncodeUpperHexDigits(t *testing.T) {
	if got := Encode("0xAF"); got != "¯" {
		t.Fatalf("Encode(0xAF) = %q, want %q", got, "¯")
	}
}

func TestEncodeLowerCaseDigitNotAnEscape(t *testing.T) {
	// 'a' is not accepted as a hex digit, so 0x0a is plain text and the
	// scan slides through it one character at a time.
	if got := Encode("0x0aZZ0x41"); got != "0x0aZZA" {
		t.Fatalf("Encode = %q, want %q", got, "0x0aZZA")
	}
}

func TestEncodeTailBehavior(t *testing.T) {
	// The window stops where a full escape could still start; a trailing
	// remainder shorter than one escape is not emitted.
	if got := Encode("0x0aZZZZ"); got != "0x0aZ" {
		t.Fatalf("Encode = %q, want %q", got, "0x0aZ")
	}
}

func TestEncodeTrailingEscapeConsumed(t *testing.T) {
	if got := Encode("ii0x03"); got != "ii\x03" {
		t.Fatalf("Encode = %q, want %q", got, "ii\x03")
	}
}
