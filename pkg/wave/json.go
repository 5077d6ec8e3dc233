package wave

import (
	"encoding/json"
	"fmt"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/bitval"
)

type waveJSON struct {
	Label    string         `json:"label"`
	Type     Type           `json:"type"`
	Display  Display        `json:"display"`
	Samples  []bitval.Value `json:"samples"`
	Selected []int          `json:"selected,omitempty"`
}

// MarshalJSON encodes the label, type, display, samples and selection. The
// edit state and the delete flag are not persisted.
func (w *Wave) MarshalJSON() ([]byte, error) {
	samples := w.samples
	if samples == nil {
		samples = []bitval.Value{}
	}
	return json.Marshal(waveJSON{
		Label:    w.label,
		Type:     w.typ,
		Display:  w.display,
		Samples:  samples,
		Selected: w.Selected(),
	})
}

// UnmarshalJSON decodes a wave written by MarshalJSON. Every sample must
// have the width of the type; clock samples are regenerated.
func (w *Wave) UnmarshalJSON(data []byte) error {
	var raw waveJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	width := raw.Type.Width()
	for i, v := range raw.Samples {
		if v.Width() != width {
			return fmt.Errorf("wave %q: sample %d has width %d, type %s needs %d", raw.Label, i, v.Width(), raw.Type, width)
		}
	}
	selected := make(map[int]struct{}, len(raw.Selected))
	for _, i := range raw.Selected {
		if i < 0 || i >= len(raw.Samples) {
			return fmt.Errorf("wave %q: %w: selected index %d", raw.Label, ErrIndex, i)
		}
		selected[i] = struct{}{}
	}
	*w = Wave{
		label:    raw.Label,
		typ:      raw.Type,
		display:  raw.Display,
		samples:  raw.Samples,
		selected: selected,
	}
	w.regenerateClock()
	w.RefreshMinMax()
	return nil
}
