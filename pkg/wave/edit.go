package wave

import "fmt"

// State returns the current edit state.
func (w *Wave) State() State { return w.state }

// PendingEdit returns the pending sample edit, or nil outside StateEdit.
func (w *Wave) PendingEdit() *Edit { return w.edit }

// PendingTypeChange returns the pending type change, or nil outside
// StateTypeChange.
func (w *Wave) PendingTypeChange() *TypeChange { return w.change }

func (w *Wave) reset() {
	w.state = StateShow
	w.edit = nil
	w.change = nil
}

// BeginEdit moves the wave to StateEdit on sample i. The editor text is
// seeded from the sample in the current display mode.
func (w *Wave) BeginEdit(i int) (*Edit, error) {
	if w.state != StateShow {
		return nil, fmt.Errorf("%w: wave is in %s", ErrBusy, w.state)
	}
	if i < 0 || i >= len(w.samples) {
		return nil, fmt.Errorf("%w: %d (length %d)", ErrIndex, i, len(w.samples))
	}
	if w.typ.Kind() == KindClock {
		return nil, ErrClockEdit
	}
	v := w.samples[i]
	w.edit = &Edit{
		Index:   i,
		Value:   v,
		Type:    w.typ,
		Display: w.display,
		Text:    w.display.EditText(v),
	}
	w.state = StateEdit
	return w.edit, nil
}

// CommitEdit writes the edited value to every selected sample, or to the
// edited sample when nothing is selected, widens the extrema and returns to
// StateShow. An edit whose text failed to parse is not committed and stays
// pending.
func (w *Wave) CommitEdit() error {
	if w.state != StateEdit {
		return ErrNotEditing
	}
	e := w.edit
	if e.Err != nil {
		return e.Err
	}
	if len(w.selected) > 0 {
		for i := range w.selected {
			w.samples[i] = e.Value
		}
	} else {
		w.samples[e.Index] = e.Value
	}
	w.widen(e.Value.Float64(w.display.IsSigned()))
	w.reset()
	return nil
}

// CancelEdit drops a pending sample edit.
func (w *Wave) CancelEdit() {
	if w.state == StateEdit {
		w.reset()
	}
}

// BeginTypeChange moves the wave to StateTypeChange proposing a type of the
// given kind: the current clock (or DefaultClock) for KindClock, a 1-bit
// register for KindReg and a wire for KindWire.
func (w *Wave) BeginTypeChange(kind Kind) (*TypeChange, error) {
	if w.state != StateShow {
		return nil, fmt.Errorf("%w: wave is in %s", ErrBusy, w.state)
	}
	var proposed Type
	switch kind {
	case KindClock:
		proposed = ClockType(DefaultClock())
		if w.typ.Kind() == KindClock {
			proposed = w.typ
		}
	case KindReg:
		proposed = Reg(1)
	case KindWire:
		proposed = Wire()
	default:
		return nil, fmt.Errorf("wave: unknown kind %d", kind)
	}
	w.change = &TypeChange{Current: w.typ, Proposed: proposed, Bound: len(w.samples)}
	w.state = StateTypeChange
	return w.change, nil
}

// CommitTypeChange applies the proposed type and returns to StateShow. A
// clock whose period exceeds the timeline length is refused and the change
// stays pending.
func (w *Wave) CommitTypeChange() error {
	if w.state != StateTypeChange {
		return ErrNotChangingType
	}
	c := w.change
	if clk, ok := c.Proposed.Clock(); ok {
		if err := clk.Validate(c.Bound); err != nil {
			return err
		}
	}
	if err := c.Proposed.Validate(); err != nil {
		return err
	}
	return w.SetType(c.Proposed)
}

// CancelTypeChange drops a pending type change.
func (w *Wave) CancelTypeChange() {
	if w.state == StateTypeChange {
		w.reset()
	}
}
