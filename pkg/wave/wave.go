package wave

import (
	"math"
	"slices"
	"strings"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/bitval"
)

// Wave is one signal timeline.
type Wave struct {
	label    string
	typ      Type
	display  Display
	samples  []bitval.Value
	selected map[int]struct{}
	min, max float64
	deleted  bool

	state  State
	edit   *Edit
	change *TypeChange
}

// New returns a wire wave with length zero samples.
func New(label string, length int) *Wave {
	w := &Wave{
		label:    label,
		typ:      Wire(),
		display:  DisplayBinary,
		selected: make(map[int]struct{}),
	}
	w.SetLen(length)
	return w
}

// Label returns the user-facing name.
func (w *Wave) Label() string { return w.label }

// SetLabel renames the wave.
func (w *Wave) SetLabel(label string) { w.label = label }

// Name returns the label as an identifier, spaces replaced by underscores.
func (w *Wave) Name() string {
	return strings.ReplaceAll(w.label, " ", "_")
}

func (w *Wave) Type() Type { return w.typ }

// RegSize returns the width of every sample.
func (w *Wave) RegSize() int { return w.typ.Width() }

// ExportDecl returns the HDL declaration matching the wave type.
func (w *Wave) ExportDecl() string { return w.typ.ExportDecl() }

func (w *Wave) Display() Display { return w.display }

// SetDisplay changes the display mode. The extrema are recomputed when the
// sign interpretation changes.
func (w *Wave) SetDisplay(d Display) {
	flip := d.IsSigned() != w.display.IsSigned()
	w.display = d
	if flip {
		w.RefreshMinMax()
	}
}

// Len returns the number of samples.
func (w *Wave) Len() int { return len(w.samples) }

// Sample returns sample i. It panics if i is out of range.
func (w *Wave) Sample(i int) bitval.Value { return w.samples[i] }

// Samples returns a copy of the timeline.
func (w *Wave) Samples() []bitval.Value { return slices.Clone(w.samples) }

// Extrema returns the cached numeric minimum and maximum of the samples
// under the current sign interpretation.
func (w *Wave) Extrema() (lo, hi float64) { return w.min, w.max }

// RefreshMinMax recomputes the extrema from every sample. An empty wave
// has extrema 0, 0.
func (w *Wave) RefreshMinMax() {
	if len(w.samples) == 0 {
		w.min, w.max = 0, 0
		return
	}
	signed := w.display.IsSigned()
	w.min, w.max = math.Inf(1), math.Inf(-1)
	for _, v := range w.samples {
		w.widen(v.Float64(signed))
	}
}

func (w *Wave) widen(f float64) {
	if f < w.min {
		w.min = f
	}
	if f > w.max {
		w.max = f
	}
}

// SetLen grows the timeline with zero samples or truncates it. Clock waves
// are regenerated and the extrema recomputed either way. Selected indices
// and a pending edit beyond the new end are dropped.
func (w *Wave) SetLen(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(w.samples) {
		w.samples = w.samples[:n:n]
	}
	for len(w.samples) < n {
		w.samples = append(w.samples, bitval.New(w.RegSize()))
	}
	for i := range w.selected {
		if i >= n {
			delete(w.selected, i)
		}
	}
	if w.state == StateEdit && w.edit.Index >= n {
		w.CancelEdit()
	}
	if w.change != nil {
		w.change.Bound = n
	}
	w.regenerateClock()
	w.RefreshMinMax()
}

// ExtendByLast grows the timeline to n samples by repeating the last
// sample, or a zero sample when the wave is empty. It does nothing if n is
// not larger than Len.
func (w *Wave) ExtendByLast(n int) {
	if n <= len(w.samples) {
		return
	}
	last := bitval.New(w.RegSize())
	if len(w.samples) > 0 {
		last = w.samples[len(w.samples)-1]
	}
	for len(w.samples) < n {
		w.samples = append(w.samples, last)
	}
}

// SetLast overwrites the final sample. The value is resized to the wave
// width. Nothing happens on an empty wave.
func (w *Wave) SetLast(v bitval.Value) {
	if len(w.samples) == 0 {
		return
	}
	if v.Width() != w.RegSize() {
		_ = v.SetWidth(w.RegSize())
	}
	w.samples[len(w.samples)-1] = v
}

func (w *Wave) regenerateClock() {
	c, ok := w.typ.Clock()
	if !ok {
		return
	}
	for i := range w.samples {
		v := bitval.New(1)
		v.SetBool(c.Level(i))
		w.samples[i] = v
	}
}

// SetType applies t to every sample and cancels any pending edit. Clocks
// are regenerated with extrema [0, 1] and a binary display; wires and
// registers are resized with a binary or hex display and fresh extrema.
func (w *Wave) SetType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	w.reset()
	w.typ = t
	switch t.Kind() {
	case KindClock:
		w.display = DisplayBinary
		w.regenerateClock()
		w.min, w.max = 0, 1
		if len(w.samples) == 0 {
			w.min, w.max = 0, 0
		}
		return nil
	case KindWire:
		w.display = DisplayBinary
	case KindReg:
		w.display = DisplayHex
	}
	for i := range w.samples {
		_ = w.samples[i].SetWidth(t.Width())
	}
	w.RefreshMinMax()
	return nil
}

// Delete marks the wave for removal by the next Sweep.
func (w *Wave) Delete() { w.deleted = true }

// Deleted reports whether Delete was called.
func (w *Wave) Deleted() bool { return w.deleted }

// Sweep removes the deleted waves from ws in place and returns the shortened
// slice. The order of the remaining waves is kept.
func Sweep(ws []*Wave) []*Wave {
	return slices.DeleteFunc(ws, (*Wave).Deleted)
}

// Select marks sample i for bulk edits.
func (w *Wave) Select(i int) error {
	if i < 0 || i >= len(w.samples) {
		return ErrIndex
	}
	w.selected[i] = struct{}{}
	return nil
}

// Deselect clears the mark on sample i.
func (w *Wave) Deselect(i int) { delete(w.selected, i) }

// ToggleSelect flips the mark on sample i.
func (w *Wave) ToggleSelect(i int) error {
	if _, ok := w.selected[i]; ok {
		delete(w.selected, i)
		return nil
	}
	return w.Select(i)
}

// ClearSelection removes every mark.
func (w *Wave) ClearSelection() { clear(w.selected) }

// IsSelected reports whether sample i is marked.
func (w *Wave) IsSelected(i int) bool {
	_, ok := w.selected[i]
	return ok
}

// Selected returns the marked indices in ascending order.
func (w *Wave) Selected() []int {
	out := make([]int, 0, len(w.selected))
	for i := range w.selected {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}
