package bitval

import (
	"errors"
	"math/bits"
	"strconv"
)

// Base is a numeric radix supported by Parse and Format.
type Base int

const (
	Binary  Base = 2
	Octal   Base = 8
	Decimal Base = 10
	Hex     Base = 16
)

var baseNames = map[Base]string{
	Binary:  "binary",
	Octal:   "octal",
	Decimal: "decimal",
	Hex:     "hexadecimal",
}

func (b Base) String() string {
	if name, ok := baseNames[b]; ok {
		return name
	}
	return "Base(" + strconv.Itoa(int(b)) + ")"
}

// Prefix returns the literal prefix Parse recognises for b ("" for decimal).
func (b Base) Prefix() string {
	switch b {
	case Binary:
		return "0b"
	case Octal:
		return "0o"
	case Hex:
		return "0x"
	}
	return ""
}

// chunkDigits is the number of digits that always fit in one uint64.
func (b Base) chunkDigits() int {
	switch b {
	case Binary:
		return 64
	case Octal:
		return 21
	case Hex:
		return 16
	}
	return 19
}

// chunkBits is the bit span of a full chunk for power-of-two bases.
func (b Base) chunkBits() int {
	switch b {
	case Octal:
		return 63
	case Decimal:
		return 0
	}
	return 64
}

const decimalChunk = 10_000_000_000_000_000_000 // 10^19

// Parse replaces the contents of v with the value described by text. The
// width is kept. On failure v is left untouched and the returned error is a
// *ParseError.
func (v *Value) Parse(text string) error {
	w, negative, err := parse(text, v.width)
	if err != nil {
		return err
	}
	v.words = w
	v.negative = negative
	return nil
}

// Parse returns a new value of the given width parsed from text.
func Parse(text string, width int) (Value, error) {
	if width < 1 || width > MaxBits {
		return Value{}, ErrWidth
	}
	v := New(width)
	if err := v.Parse(text); err != nil {
		return Value{}, err
	}
	return v, nil
}

func parse(text string, width int) (words, bool, error) {
	perr := &ParseError{Input: text}
	if text == "" {
		perr.add(0, 0, "empty value")
		return words{}, false, perr
	}

	pos := 0
	negative := false
	switch text[0] {
	case '-':
		negative = true
		pos++
	case '+':
		pos++
	}

	base := Decimal
	if len(text)-pos >= 2 && text[pos] == '0' && isLetter(text[pos+1]) {
		switch text[pos+1] | 0x20 {
		case 'b':
			base = Binary
		case 'o':
			base = Octal
		case 'x':
			base = Hex
		default:
			perr.add(pos, pos+2, "unknown base prefix %q", text[pos:pos+2])
			return words{}, false, perr
		}
		pos += 2
	}

	if pos == len(text) {
		perr.add(pos, pos, "expected %s digits", base)
		return words{}, false, perr
	}

	var acc words
	overflow := false
	n := base.chunkDigits()
	msStart, msEnd := pos, len(text)
	for k, end := 0, len(text); end > pos; k, end = k+1, end-n {
		start := end - n
		if start < pos {
			start = pos
		}
		msStart, msEnd = start, end
		chunk := text[start:end]

		x, err := strconv.ParseUint(chunk, int(base), 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				perr.add(start, end, "%q does not fit in 64 bits", chunk)
			} else {
				perr.add(start, end, "invalid %s digits %q", base, chunk)
			}
			continue
		}

		if base == Decimal {
			need, over, carry := placeDecimal(&acc, x, k)
			switch {
			case over:
				perr.add(start, end, "value exceeds %d bits", MaxBits)
			case need > width:
				perr.add(start, end, "value needs %d bits, width is %d", need, width)
			}
			overflow = overflow || carry
			continue
		}

		off := k * base.chunkBits()
		need := 0
		if x != 0 {
			need = off + bits.Len64(x)
		}
		if acc.orShifted(x, off) || need > width {
			perr.add(start, end, "value needs %d bits, width is %d", need, width)
		}
	}

	if len(perr.Diagnostics) == 0 && (overflow || acc.bitLen() > width) {
		if overflow {
			perr.add(msStart, msEnd, "value exceeds %d bits", MaxBits)
		} else {
			perr.add(msStart, msEnd, "value needs %d bits, width is %d", acc.bitLen(), width)
		}
	}
	if len(perr.Diagnostics) > 0 {
		perr.sort()
		return words{}, false, perr
	}
	return acc, negative && !acc.isZero(), nil
}

// placeDecimal adds x*10^(19k) to acc. It returns the bit length of that
// term, whether the term itself overflowed the storage, and whether the
// running sum carried out of the storage.
func placeDecimal(acc *words, x uint64, k int) (need int, over, carry bool) {
	if x == 0 {
		return 0, false, false
	}
	var term words
	term[0] = x
	for i := 0; i < k; i++ {
		if term.mulAdd(decimalChunk, 0) != 0 {
			return MaxBits + 1, true, false
		}
	}
	return term.bitLen(), false, acc.add(&term) != 0
}

func isLetter(c byte) bool {
	c |= 0x20
	return c >= 'a' && c <= 'z'
}
