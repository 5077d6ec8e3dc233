package bitval

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// MaxBits is the largest width a Value can have.
	MaxBits = 512
	// WordBits is the size of one storage word.
	WordBits = 64
	// Words is the number of storage words in every Value.
	Words = MaxBits / WordBits
)

// ErrWidth is returned when a requested width is outside 1..MaxBits.
var ErrWidth = errors.New("bitval: width out of range")

// Value is a fixed-width integer with a separate sign flag.
//
// Values are compared with == (or Equal): two values are equal only if their
// width, raw words and sign flag all match, so the same number held at two
// different widths is not equal.
type Value struct {
	width    int
	words    words
	negative bool
}

// New returns a zero value of the given width. It panics if width is outside
// 1..MaxBits.
func New(width int) Value {
	if width < 1 || width > MaxBits {
		panic(fmt.Sprintf("bitval: width %d out of range 1..%d", width, MaxBits))
	}
	return Value{width: width}
}

// FromUint64 returns a value of the given width holding x, truncated to width.
func FromUint64(width int, x uint64) Value {
	v := New(width)
	v.words[0] = x
	v.words.mask(width)
	return v
}

// Width returns the active width in bits.
func (v Value) Width() int {
	return v.width
}

// SetWidth changes the width. Growing keeps the value; shrinking drops the
// high bits for good.
func (v *Value) SetWidth(width int) error {
	if width < 1 || width > MaxBits {
		return fmt.Errorf("%w: %d (max %d)", ErrWidth, width, MaxBits)
	}
	v.width = width
	v.words.mask(width)
	v.normalize()
	return nil
}

// Negative reports the sign flag.
func (v Value) Negative() bool {
	return v.negative
}

// Word returns raw storage word i (0 is least significant).
func (v Value) Word(i int) uint64 {
	if i < 0 || i >= Words {
		return 0
	}
	return v.words[i]
}

// Bit returns bit i of the stored magnitude.
func (v Value) Bit(i int) bool {
	if i < 0 || i >= v.width {
		return false
	}
	return v.words.field(i, 1) == 1
}

// SetBit sets bit i of the stored magnitude. Bits outside the width are
// ignored.
func (v *Value) SetBit(i int, b bool) {
	if i < 0 || i >= v.width {
		return
	}
	m := uint64(1) << uint(i%WordBits)
	if b {
		v.words[i/WordBits] |= m
	} else {
		v.words[i/WordBits] &^= m
	}
	v.normalize()
}

// Bool returns bit 0. Only meaningful for 1-bit values.
func (v Value) Bool() bool {
	return v.words[0]&1 == 1
}

// SetBool sets bit 0.
func (v *Value) SetBool(b bool) {
	v.SetBit(0, b)
}

// Toggle inverts bit 0.
func (v *Value) Toggle() {
	v.words[0] ^= 1
	v.normalize()
}

// normalize keeps zero non-negative.
func (v *Value) normalize() {
	if v.words.isZero() {
		v.negative = false
	}
}

// SetZero clears the magnitude and the sign flag, keeping the width.
func (v *Value) SetZero() {
	v.words = words{}
	v.negative = false
}

// IsZero reports whether the magnitude is zero.
func (v Value) IsZero() bool {
	return v.words.isZero()
}

// Equal reports whether v and o have the same width, words and sign.
func (v Value) Equal(o Value) bool {
	return v == o
}

// Compare orders values by raw words (word 0 first), then width, then sign.
// It is a total order for sorting and deduplication, not a numeric one.
func (v Value) Compare(o Value) int {
	for i := range v.words {
		switch {
		case v.words[i] < o.words[i]:
			return -1
		case v.words[i] > o.words[i]:
			return 1
		}
	}
	switch {
	case v.width < o.width:
		return -1
	case v.width > o.width:
		return 1
	case v.negative == o.negative:
		return 0
	case o.negative:
		return -1
	}
	return 1
}

// pattern returns the width-bit two's-complement layout of the signed value.
func (v Value) pattern() words {
	w := v.words
	if v.negative && !w.isZero() {
		w.negate(v.width)
	}
	return w
}

// String renders the value as a Verilog-style sized literal, e.g. "8'hff".
func (v Value) String() string {
	sign := ""
	if v.negative && !v.words.isZero() {
		sign = "-"
	}
	return fmt.Sprintf("%s%d'h%s", sign, v.width, formatPow2(v.words, v.width, 4))
}

type valueJSON struct {
	Width    int      `json:"width"`
	Words    []uint64 `json:"words"`
	Negative bool     `json:"negative,omitempty"`
}

// MarshalJSON encodes the width, the storage words covering the width and
// the sign flag.
func (v Value) MarshalJSON() ([]byte, error) {
	n := (v.width + WordBits - 1) / WordBits
	return json.Marshal(valueJSON{
		Width:    v.width,
		Words:    append([]uint64(nil), v.words[:n]...),
		Negative: v.negative,
	})
}

// UnmarshalJSON decodes a value written by MarshalJSON. Stray bits above the
// width are rejected rather than masked.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw valueJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Width < 1 || raw.Width > MaxBits {
		return fmt.Errorf("%w: %d (max %d)", ErrWidth, raw.Width, MaxBits)
	}
	if len(raw.Words) > Words {
		return fmt.Errorf("bitval: %d words exceed storage of %d", len(raw.Words), Words)
	}
	var w words
	copy(w[:], raw.Words)
	masked := w
	masked.mask(raw.Width)
	if masked != w {
		return fmt.Errorf("bitval: bits set above width %d", raw.Width)
	}
	*v = Value{width: raw.Width, words: w, negative: raw.Negative && !w.isZero()}
	return nil
}
