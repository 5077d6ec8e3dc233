package bitval

import (
	"encoding/json"
	"errors"
	"sort"
	"testing"
)

func TestNewPanicsOutOfRange(t *testing.T) {
	for _, w := range []int{0, -1, MaxBits + 1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("New(%d) did not panic", w)
				}
			}()
			New(w)
		}()
	}
}

func TestSetWidth(t *testing.T) {
	v := FromUint64(16, 0xabcd)

	if err := v.SetWidth(16); err != nil {
		t.Fatalf("SetWidth(16): %v", err)
	}
	if got := v.Hex(); got != "abcd" {
		t.Fatalf("same width changed value to %q", got)
	}

	if err := v.SetWidth(8); err != nil {
		t.Fatalf("SetWidth(8): %v", err)
	}
	if got := v.Hex(); got != "cd" {
		t.Fatalf("after shrink Hex() = %q, want cd", got)
	}
	if err := v.SetWidth(16); err != nil {
		t.Fatalf("SetWidth(16): %v", err)
	}
	if got := v.Hex(); got != "00cd" {
		t.Fatalf("after regrow Hex() = %q, want 00cd", got)
	}

	for _, w := range []int{0, MaxBits + 1} {
		if err := v.SetWidth(w); !errors.Is(err, ErrWidth) {
			t.Fatalf("SetWidth(%d) error = %v, want ErrWidth", w, err)
		}
	}
	if v.Width() != 16 {
		t.Fatalf("failed SetWidth changed width to %d", v.Width())
	}
}

func TestSetWidthClearsSignOfZero(t *testing.T) {
	v, err := Parse("-0x100", 12)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := v.SetWidth(8); err != nil {
		t.Fatalf("SetWidth: %v", err)
	}
	if v.Negative() || !v.IsZero() {
		t.Fatalf("after shrink value = %v, want positive zero", v)
	}
}

func TestBits(t *testing.T) {
	v := New(70)
	v.SetBit(65, true)
	v.SetBit(70, true)
	if !v.Bit(65) || v.Word(1) != 2 {
		t.Fatalf("SetBit(65) gave word 1 = %#x", v.Word(1))
	}
	if v.Bit(70) {
		t.Fatalf("bit beyond width was set")
	}
	v.SetBit(65, false)
	if !v.IsZero() {
		t.Fatalf("value = %v, want zero", v)
	}

	b := New(1)
	b.Toggle()
	if !b.Bool() {
		t.Fatalf("Toggle did not set bit 0")
	}
	b.SetBool(false)
	if b.Bool() {
		t.Fatalf("SetBool(false) left bit 0 set")
	}
}

func TestBitWritesKeepZeroNonNegative(t *testing.T) {
	v, err := Parse("-1", 1)
	if err != nil {
		t.Fatalf("Parse(-1): %v", err)
	}
	v.Toggle()
	if v.Negative() || v != New(1) {
		t.Fatalf("toggled -1 = %v (negative %v), want %v", v, v.Negative(), New(1))
	}
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back Value
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal(%s): %v", data, err)
	}
	if back != v {
		t.Fatalf("JSON round trip of %s = %v, want %v", data, back, v)
	}
	v.Toggle()
	if got := v.Dec(true); got != "1" {
		t.Fatalf("Dec(true) after second toggle = %q, want %q", got, "1")
	}

	w, _ := Parse("-0x10000000000000000", 72)
	w.SetBit(64, false)
	if w.Negative() || w != New(72) {
		t.Fatalf("cleared -2^64 = %v (negative %v), want zero", w, w.Negative())
	}
	w, _ = Parse("-1", 8)
	w.SetBool(false)
	if w.Negative() {
		t.Fatalf("SetBool(false) on -1 left the sign set")
	}
}

func TestSetZero(t *testing.T) {
	v, _ := Parse("-7", 8)
	v.SetZero()
	if !v.IsZero() || v.Negative() || v.Width() != 8 {
		t.Fatalf("SetZero gave %v", v)
	}
}

func TestEqualAndCompare(t *testing.T) {
	a := FromUint64(8, 3)
	b := FromUint64(8, 3)
	wide := FromUint64(9, 3)
	neg, _ := Parse("-3", 8)

	if !a.Equal(b) {
		t.Fatalf("identical values not equal")
	}
	if a.Equal(wide) {
		t.Fatalf("values of different widths compare equal")
	}
	if a.Equal(neg) {
		t.Fatalf("values of different sign compare equal")
	}

	vals := []Value{neg, wide, FromUint64(8, 4), a, FromUint64(8, 1)}
	sort.Slice(vals, func(i, j int) bool { return vals[i].Compare(vals[j]) < 0 })
	want := []Value{FromUint64(8, 1), a, neg, wide, FromUint64(8, 4)}
	for i := range want {
		if vals[i] != want[i] {
			t.Fatalf("sorted[%d] = %v, want %v", i, vals[i], want[i])
		}
	}
	if a.Compare(b) != 0 {
		t.Fatalf("Compare of equal values = %d", a.Compare(b))
	}
}

func TestString(t *testing.T) {
	if got := FromUint64(8, 0xff).String(); got != "8'hff" {
		t.Fatalf("String() = %q, want 8'hff", got)
	}
	neg, _ := Parse("-1", 4)
	if got := neg.String(); got != "-4'h1" {
		t.Fatalf("String() = %q, want -4'h1", got)
	}
}

func TestJSON(t *testing.T) {
	v, err := Parse("-0x1"+"0000000000000000", 72)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"width":72,"words":[0,1],"negative":true}` {
		t.Fatalf("Marshal = %s", data)
	}
	var got Value
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != v {
		t.Fatalf("round trip = %v, want %v", got, v)
	}
}

func TestJSONRejectsBadInput(t *testing.T) {
	for _, in := range []string{
		`{"width":0,"words":[]}`,
		`{"width":513,"words":[]}`,
		`{"width":4,"words":[16]}`,
		`{"width":8,"words":[0,0,0,0,0,0,0,0,0]}`,
		`{"width":"8"}`,
	} {
		var v Value
		if err := json.Unmarshal([]byte(in), &v); err == nil {
			t.Fatalf("Unmarshal(%s) succeeded, want error", in)
		}
	}

	var v Value
	if err := json.Unmarshal([]byte(`{"width":4,"words":[0],"negative":true}`), &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if v.Negative() {
		t.Fatalf("negative zero survived decoding")
	}
}
