package viewer

import (
	"gioui.org/f32"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/wave"
)

// margin is the fraction of the value range added above and below a trace.
const margin = 0.05

// Trace returns the plot of w in sample coordinates: x is the sample index,
// y the numeric value. Binary, hex and decimal displays hold each value for
// one whole sample (two points per sample); analog displays join one point
// per sample.
func Trace(w *wave.Wave) []f32.Point {
	d := w.Display()
	signed := d.IsSigned()
	n := w.Len()
	if d.Mode == wave.ModeAnalog {
		pts := make([]f32.Point, n)
		for i := 0; i < n; i++ {
			pts[i] = f32.Pt(float32(i), float32(w.Sample(i).Float64(signed)))
		}
		return pts
	}
	pts := make([]f32.Point, 0, 2*n)
	for i := 0; i < n; i++ {
		y := float32(w.Sample(i).Float64(signed))
		pts = append(pts, f32.Pt(float32(i), y), f32.Pt(float32(i+1), y))
	}
	return pts
}

// Frame maps sample coordinates of one wave onto a row of pixels.
type Frame struct {
	Size    f32.Point // row size in pixels
	Samples int       // timeline length
	Lo, Hi  float64   // value range, usually the wave extrema
}

// FrameOf builds the frame for w drawn into size.
func FrameOf(w *wave.Wave, size f32.Point) Frame {
	lo, hi := w.Extrema()
	return Frame{Size: size, Samples: w.Len(), Lo: lo, Hi: hi}
}

// X returns the pixel column of sample boundary i.
func (f Frame) X(i float32) float32 {
	if f.Samples == 0 {
		return 0
	}
	return i * f.Size.X / float32(f.Samples)
}

// Y returns the pixel row of value v. Larger values are drawn higher; a flat
// range is drawn through the middle of the row.
func (f Frame) Y(v float32) float32 {
	span := f.Hi - f.Lo
	if span <= 0 {
		return f.Size.Y / 2
	}
	lo := f.Lo - span*margin
	span *= 1 + 2*margin
	return f.Size.Y - float32((float64(v)-lo)/span)*f.Size.Y
}

// Map converts sample coordinates to pixels.
func (f Frame) Map(pts []f32.Point) []f32.Point {
	out := make([]f32.Point, len(pts))
	for i, p := range pts {
		out[i] = f32.Pt(f.X(p.X), f.Y(p.Y))
	}
	return out
}

// Highlights returns the sample indices to shade: the selection, or the index
// of a pending edit when nothing is selected.
func Highlights(w *wave.Wave) []int {
	if sel := w.Selected(); len(sel) > 0 {
		return sel
	}
	if e := w.PendingEdit(); e != nil {
		return []int{e.Index}
	}
	return nil
}
