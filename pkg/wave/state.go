package wave

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/bitval"
)

// State is the position of a wave in its edit state machine.
type State uint8

const (
	StateShow State = iota
	StateEdit
	StateTypeChange
)

var stateNames = map[State]string{
	StateShow:       "Show",
	StateEdit:       "Edit",
	StateTypeChange: "TypeChange",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", s)
}

var (
	// ErrBusy is returned when a transition leaves Show while another edit
	// is pending.
	ErrBusy = errors.New("wave: another edit is pending")
	// ErrClockEdit is returned by BeginEdit on a clock wave.
	ErrClockEdit = errors.New("wave: clock samples change only through a type change")
	// ErrNotEditing is returned by edit commits when no edit is pending.
	ErrNotEditing = errors.New("wave: no sample edit pending")
	// ErrNotChangingType is returned by type change commits when no type
	// change is pending.
	ErrNotChangingType = errors.New("wave: no type change pending")
	// ErrIndex is returned for sample indices outside the timeline.
	ErrIndex = errors.New("wave: sample index out of range")
)

// Edit is the payload of StateEdit.
type Edit struct {
	Index   int
	Value   bitval.Value
	Type    Type
	Display Display
	// Text is the editor buffer and Err the result of its last parse.
	Text string
	Err  error
}

// SetText stores s and parses it into Value. A failed parse keeps the last
// good Value and records the error in Err.
func (e *Edit) SetText(s string) error {
	e.Text = s
	if err := e.Value.Parse(s); err != nil {
		e.Err = err
		return err
	}
	e.Err = nil
	return nil
}

// Toggle flips a wire sample.
func (e *Edit) Toggle() {
	e.Value.Toggle()
	e.Text = e.Display.EditText(e.Value)
	e.Err = nil
}

// TypeChange is the payload of StateTypeChange.
type TypeChange struct {
	Current  Type
	Proposed Type
	// Bound is the largest clock period allowed, the timeline length.
	Bound int
}

// SetClock proposes a clock type after checking c against Bound.
func (c *TypeChange) SetClock(clk Clock) error {
	if err := clk.Validate(c.Bound); err != nil {
		return err
	}
	c.Proposed = ClockType(clk)
	return nil
}

// SetRegWidth proposes a register type of the given width.
func (c *TypeChange) SetRegWidth(width int) error {
	t := Reg(width)
	if err := t.Validate(); err != nil {
		return err
	}
	c.Proposed = t
	return nil
}
