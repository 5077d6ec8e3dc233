package bitval

import "math/bits"

// words is the raw little-endian storage of a Value.
type words [Words]uint64

func (w *words) isZero() bool {
	for _, x := range w {
		if x != 0 {
			return false
		}
	}
	return true
}

// bitLen returns the index of the highest set bit plus one.
func (w *words) bitLen() int {
	for i := Words - 1; i >= 0; i-- {
		if w[i] != 0 {
			return i*WordBits + bits.Len64(w[i])
		}
	}
	return 0
}

// mask clears every bit at or above width.
func (w *words) mask(width int) {
	for i := range w {
		lo := i * WordBits
		switch {
		case lo >= width:
			w[i] = 0
		case width-lo < WordBits:
			w[i] &= 1<<uint(width-lo) - 1
		}
	}
}

// mulAdd sets w = w*m + a and returns the carry out of the top word.
func (w *words) mulAdd(m, a uint64) uint64 {
	carry := a
	for i := range w {
		hi, lo := bits.Mul64(w[i], m)
		var c uint64
		w[i], c = bits.Add64(lo, carry, 0)
		carry = hi + c
	}
	return carry
}

// add sets w = w+o and returns the carry out of the top word.
func (w *words) add(o *words) uint64 {
	var carry uint64
	for i := range w {
		w[i], carry = bits.Add64(w[i], o[i], carry)
	}
	return carry
}

// divMod sets w = w/d and returns the remainder.
func (w *words) divMod(d uint64) uint64 {
	var rem uint64
	for i := Words - 1; i >= 0; i-- {
		w[i], rem = bits.Div64(rem, w[i], d)
	}
	return rem
}

// orShifted ORs v<<off into w. It reports whether any bit of v fell off the
// top of the storage.
func (w *words) orShifted(v uint64, off int) bool {
	if v == 0 {
		return false
	}
	idx, sh := off/WordBits, uint(off%WordBits)
	if idx >= Words {
		return true
	}
	w[idx] |= v << sh
	if sh == 0 {
		return false
	}
	if spill := v >> (WordBits - sh); spill != 0 {
		if idx+1 >= Words {
			return true
		}
		w[idx+1] |= spill
	}
	return false
}

// field extracts n (1..64) bits starting at bit off.
func (w *words) field(off, n int) uint64 {
	idx, sh := off/WordBits, uint(off%WordBits)
	var v uint64
	if idx < Words {
		v = w[idx] >> sh
	}
	if sh != 0 && idx+1 < Words {
		v |= w[idx+1] << (WordBits - sh)
	}
	if n < WordBits {
		v &= 1<<uint(n) - 1
	}
	return v
}

// negate replaces w with its two's complement over width bits. The borrow
// of the +1 ripples across word boundaries.
func (w *words) negate(width int) {
	carry := uint64(1)
	for i := range w {
		w[i], carry = bits.Add64(^w[i], 0, carry)
	}
	w.mask(width)
}
