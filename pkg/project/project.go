// Package project holds the shared timeline length and the ordered wave
// collection, and persists, imports and exports them.
package project

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/vcd"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/wave"
)

// DefaultLength is the timeline length of a new project.
const DefaultLength = 16

// ErrLength is returned for a timeline length below one sample.
var ErrLength = errors.New("project: length must be at least 1")

// Project is a set of waves sharing one timeline length.
type Project struct {
	length int
	waves  []*wave.Wave
	log    logrus.FieldLogger
}

// New returns an empty project. A nil log discards messages.
func New(length int, log logrus.FieldLogger) (*Project, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: %d", ErrLength, length)
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Project{length: length, log: log}, nil
}

// Length returns the shared timeline length.
func (p *Project) Length() int { return p.length }

// SetLength resizes every wave to n samples.
func (p *Project) SetLength(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrLength, n)
	}
	p.length = n
	for _, w := range p.waves {
		w.SetLen(n)
	}
	p.log.WithField("length", n).Debug("timeline resized")
	return nil
}

// Waves returns the waves in display order. The slice is a copy; the waves
// are not.
func (p *Project) Waves() []*wave.Wave { return slices.Clone(p.waves) }

// Find returns the first wave whose label or exported name is name.
func (p *Project) Find(name string) (*wave.Wave, bool) {
	for _, w := range p.waves {
		if w.Label() == name || w.Name() == name {
			return w, true
		}
	}
	return nil, false
}

// AddWave appends a zero wire wave of the project length.
func (p *Project) AddWave(label string) *wave.Wave {
	w := wave.New(label, p.length)
	p.waves = append(p.waves, w)
	return w
}

// Adopt appends waves built elsewhere. The project grows to the longest
// adopted wave and shorter adopted waves are extended with their last
// value.
func (p *Project) Adopt(ws ...*wave.Wave) {
	longest := p.length
	for _, w := range ws {
		longest = max(longest, w.Len())
	}
	if longest > p.length {
		_ = p.SetLength(longest)
	}
	for _, w := range ws {
		w.ExtendByLast(p.length)
		w.RefreshMinMax()
	}
	p.waves = append(p.waves, ws...)
}

// ImportVCD replays the dump at path and adopts its waves.
func (p *Project) ImportVCD(im *vcd.Importer, path string) (*vcd.Result, error) {
	if im.Log == nil {
		cp := *im
		cp.Log = p.log
		im = &cp
	}
	res, err := im.Import(path)
	if err != nil {
		return nil, err
	}
	p.Adopt(res.Waves...)
	p.log.WithFields(logrus.Fields{"file": path, "waves": len(res.Waves), "length": p.length}).Info("imported dump")
	return res, nil
}

// Sweep drops deleted waves and returns how many were removed.
func (p *Project) Sweep() int {
	before := len(p.waves)
	p.waves = wave.Sweep(p.waves)
	return before - len(p.waves)
}
