package bitval

import (
	"strconv"
	"strings"
)

const digitChars = "0123456789abcdef"

// decimalDigits[w] is the number of decimal digits of 2^w-1.
var decimalDigits [MaxBits + 1]int

func init() {
	var all words
	for w := 1; w <= MaxBits; w++ {
		all.orShifted(1, w-1)
		decimalDigits[w] = len(formatDecimal(all))
	}
}

// DigitCount returns how many digits base needs to print any value of the
// given width. Format pads to this count.
func DigitCount(base Base, width int) int {
	if width < 1 || width > MaxBits {
		return 0
	}
	switch base {
	case Binary:
		return width
	case Octal:
		return (width + 2) / 3
	case Hex:
		return (width + 3) / 4
	}
	return decimalDigits[width]
}

// Format prints v in base, zero-padded to DigitCount(base, v.Width()).
//
// Binary, octal, hexadecimal and unsigned decimal output is the width-bit
// two's-complement pattern of the value and never carries a sign. Signed
// decimal output of a negative value is "-" followed by the padded magnitude.
func (v Value) Format(base Base, signed bool) string {
	switch base {
	case Binary:
		return formatPow2(v.pattern(), v.width, 1)
	case Octal:
		return formatPow2(v.pattern(), v.width, 3)
	case Hex:
		return formatPow2(v.pattern(), v.width, 4)
	}
	if signed && v.negative && !v.words.isZero() {
		return "-" + pad(formatDecimal(v.words), decimalDigits[v.width])
	}
	return pad(formatDecimal(v.pattern()), decimalDigits[v.width])
}

// Bin is Format(Binary, false).
func (v Value) Bin() string { return v.Format(Binary, false) }

// Oct is Format(Octal, false).
func (v Value) Oct() string { return v.Format(Octal, false) }

// Hex is Format(Hex, false).
func (v Value) Hex() string { return v.Format(Hex, false) }

// Dec is Format(Decimal, signed).
func (v Value) Dec(signed bool) string { return v.Format(Decimal, signed) }

// Float64 converts v by printing it in decimal and reading the text back.
// Values wider than the float64 mantissa lose precision.
func (v Value) Float64(signed bool) float64 {
	f, err := strconv.ParseFloat(v.Dec(signed), 64)
	if err != nil {
		return 0
	}
	return f
}

// formatPow2 prints the low width bits of w, k bits per digit.
func formatPow2(w words, width, k int) string {
	n := (width + k - 1) / k
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		buf[n-1-i] = digitChars[w.field(i*k, k)]
	}
	return string(buf)
}

// formatDecimal prints w without padding.
func formatDecimal(w words) string {
	if w.isZero() {
		return "0"
	}
	var groups []uint64
	for !w.isZero() {
		groups = append(groups, w.divMod(decimalChunk))
	}
	var b strings.Builder
	b.WriteString(strconv.FormatUint(groups[len(groups)-1], 10))
	for i := len(groups) - 2; i >= 0; i-- {
		b.WriteString(pad(strconv.FormatUint(groups[i], 10), 19))
	}
	return b.String()
}

func pad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return strings.Repeat("0", n-len(s)) + s
}
