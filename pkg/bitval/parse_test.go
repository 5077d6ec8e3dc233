package bitval

import (
	"errors"
	"strings"
	"testing"
)

func TestParseBases(t *testing.T) {
	cases := []struct {
		text     string
		width    int
		want     uint64
		negative bool
	}{
		{"0", 1, 0, false},
		{"1", 1, 1, false},
		{"0b101", 3, 5, false},
		{"0B101", 3, 5, false},
		{"0o17", 4, 15, false},
		{"0O17", 4, 15, false},
		{"0xFF", 8, 255, false},
		{"0xff", 8, 255, false},
		{"255", 8, 255, false},
		{"+42", 8, 42, false},
		{"-42", 8, 42, true},
		{"-0x10", 8, 16, true},
		{"-0", 8, 0, false},
		{"000000000000000000000000000007", 3, 7, false},
		{"18446744073709551615", 64, ^uint64(0), false},
	}

	for _, tc := range cases {
		v := New(tc.width)
		if err := v.Parse(tc.text); err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tc.text, err)
		}
		if got := v.Word(0); got != tc.want {
			t.Fatalf("Parse(%q) word 0 = %d, want %d", tc.text, got, tc.want)
		}
		if v.Negative() != tc.negative {
			t.Fatalf("Parse(%q) negative = %v, want %v", tc.text, v.Negative(), tc.negative)
		}
	}
}

func TestParseBitBudget(t *testing.T) {
	v := New(2)
	err := v.Parse("0b101")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Parse(0b101) error = %v, want *ParseError", err)
	}
	if len(perr.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v, want 1", perr.Diagnostics)
	}
	d := perr.Diagnostics[0]
	if d.Start != 2 || d.End != 5 {
		t.Fatalf("diagnostic range = %d..%d, want 2..5", d.Start, d.End)
	}
	if !strings.Contains(d.Message, "needs 3 bits") {
		t.Fatalf("diagnostic message = %q, want bit budget message", d.Message)
	}

	ok := New(8)
	if err := ok.Parse("0xFF"); err != nil {
		t.Fatalf("Parse(0xFF) into 8 bits: %v", err)
	}
	if got := ok.Hex(); got != "ff" {
		t.Fatalf("Hex() = %q, want %q", got, "ff")
	}
}

func TestParseFailureKeepsValue(t *testing.T) {
	v := FromUint64(8, 0x5a)
	before := v
	for _, text := range []string{"", "-", "0x", "0q12", "0xZZ", "0x1FF", "12a", "256"} {
		if err := v.Parse(text); err == nil {
			t.Fatalf("Parse(%q) succeeded, want error", text)
		}
		if v != before {
			t.Fatalf("Parse(%q) modified value to %v", text, v)
		}
	}
}

func TestParseDiagnostics(t *testing.T) {
	cases := []struct {
		text  string
		width int
		want  []Diagnostic
	}{
		{"", 8, []Diagnostic{{0, 0, "empty value"}}},
		{"-", 8, []Diagnostic{{1, 1, "expected decimal digits"}}},
		{"0x", 8, []Diagnostic{{2, 2, "expected hexadecimal digits"}}},
		{"0d12", 8, []Diagnostic{{0, 2, `unknown base prefix "0d"`}}},
		{"-0k1", 8, []Diagnostic{{1, 3, `unknown base prefix "0k"`}}},
		{"0xg", 8, []Diagnostic{{2, 3, `invalid hexadecimal digits "g"`}}},
		{"0b12", 8, []Diagnostic{{2, 4, `invalid binary digits "12"`}}},
	}

	for _, tc := range cases {
		_, err := Parse(tc.text, tc.width)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("Parse(%q) error = %v, want *ParseError", tc.text, err)
		}
		if len(perr.Diagnostics) != len(tc.want) {
			t.Fatalf("Parse(%q) diagnostics = %v, want %v", tc.text, perr.Diagnostics, tc.want)
		}
		for i, d := range perr.Diagnostics {
			if d != tc.want[i] {
				t.Fatalf("Parse(%q) diagnostic %d = %v, want %v", tc.text, i, d, tc.want[i])
			}
		}
	}
}

func TestParseReportsEveryBadChunk(t *testing.T) {
	// 16 hex digits per chunk: "g" + 15 digits + "h" + 15 digits.
	text := "0xg" + strings.Repeat("0", 15) + "h" + strings.Repeat("0", 15)
	_, err := Parse(text, MaxBits)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if len(perr.Diagnostics) != 2 {
		t.Fatalf("diagnostics = %v, want 2", perr.Diagnostics)
	}
	if perr.Diagnostics[0].Start != 2 || perr.Diagnostics[1].Start != 18 {
		t.Fatalf("diagnostic starts = %d, %d, want 2, 18", perr.Diagnostics[0].Start, perr.Diagnostics[1].Start)
	}
}

func TestParseMultiWord(t *testing.T) {
	hex := "0x1" + strings.Repeat("0", 16) + "2"
	v, err := Parse(hex, 80)
	if err != nil {
		t.Fatalf("Parse(%q): %v", hex, err)
	}
	if v.Word(0) != 2 || v.Word(1) != 0x10 {
		t.Fatalf("words = %#x %#x, want 0x2 0x10", v.Word(0), v.Word(1))
	}

	// 2^64 in decimal spans two 19-digit chunks and two words.
	d, err := Parse("18446744073709551616", 65)
	if err != nil {
		t.Fatalf("Parse(2^64): %v", err)
	}
	if d.Word(0) != 0 || d.Word(1) != 1 {
		t.Fatalf("2^64 words = %#x %#x, want 0 1", d.Word(0), d.Word(1))
	}
	if _, err := Parse("18446744073709551616", 64); err == nil {
		t.Fatalf("Parse(2^64) into 64 bits succeeded, want budget error")
	}

	// 2^63 in octal is a 1 followed by 21 zeros: the second chunk sits at bit 63.
	o, err := Parse("0o1"+strings.Repeat("0", 21), 64)
	if err != nil {
		t.Fatalf("Parse(0o1 000...): %v", err)
	}
	if o.Word(0) != 1<<63 {
		t.Fatalf("octal 2^63 word 0 = %#x, want %#x", o.Word(0), uint64(1)<<63)
	}
}

func TestParseDecimalOverflow(t *testing.T) {
	// 10^160 does not fit in 512 bits.
	text := "1" + strings.Repeat("0", 160)
	_, err := Parse(text, MaxBits)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if len(perr.Diagnostics) == 0 || perr.Diagnostics[0].Start != 0 {
		t.Fatalf("diagnostics = %v, want one on the leading chunk", perr.Diagnostics)
	}
}

func TestParseWidthGuard(t *testing.T) {
	if _, err := Parse("1", 0); !errors.Is(err, ErrWidth) {
		t.Fatalf("Parse with width 0 error = %v, want ErrWidth", err)
	}
}

func TestRender(t *testing.T) {
	_, err := Parse("0b101", 2)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	want := " | 0b101\n |   ^^^ value needs 3 bits, width is 2"
	if got := perr.Render(); got != want {
		t.Fatalf("Render() =\n%s\nwant\n%s", got, want)
	}
}
