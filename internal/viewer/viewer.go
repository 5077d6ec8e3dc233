// Package viewer draws a read-only window with one row per wave: the label
// and info lines on the left, the plotted samples on the right.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"slices"
	"sync"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/sirupsen/logrus"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/wave"
)

var (
	ColorBackground = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	ColorPlot       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	ColorTrace      = color.NRGBA{R: 30, G: 30, B: 150, A: 255}
	ColorSelected   = color.NRGBA{R: 150, G: 30, B: 30, A: 125}
	ColorSeparator  = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
)

const (
	rowHeight   = unit.Dp(80)
	infoWidth   = unit.Dp(200)
	traceWidth  = unit.Dp(1.5)
)

// InfoFunc returns the lines printed under a wave's label.
type InfoFunc func(w *wave.Wave) []string

// DefaultInfo prints the register width and the wave type.
func DefaultInfo(w *wave.Wave) []string {
	return []string{
		fmt.Sprintf("Bit size: %d", w.RegSize()),
		fmt.Sprintf("Type: %s", w.Type()),
	}
}

// Viewer holds the waves on screen. SetWaves and SetStatus may be called from
// any goroutine while Run is drawing.
type Viewer struct {
	info InfoFunc
	log  logrus.FieldLogger

	mu     sync.Mutex
	waves  []*wave.Wave
	status string
	window *app.Window

	theme *material.Theme
	list  widget.List
}

// New returns an empty viewer. A nil info uses DefaultInfo; a nil log
// discards messages.
func New(info InfoFunc, log logrus.FieldLogger) *Viewer {
	if info == nil {
		info = DefaultInfo
	}
	if log == nil {
		log = discard()
	}
	v := &Viewer{
		info:  info,
		log:   log,
		theme: material.NewTheme(),
	}
	v.theme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	v.list.Axis = layout.Vertical
	return v
}

// SetWaves replaces the waves on screen. Deleted waves are left out.
func (v *Viewer) SetWaves(ws []*wave.Wave) {
	ws = wave.Sweep(slices.Clone(ws))
	v.mu.Lock()
	v.waves = ws
	w := v.window
	v.mu.Unlock()
	v.log.WithField("waves", len(ws)).Debug("viewer updated")
	if w != nil {
		w.Invalidate()
	}
}

// Waves returns the waves currently on screen.
func (v *Viewer) Waves() []*wave.Wave {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.waves)
}

// SetStatus sets the line shown above the rows, typically the source file or
// the last reload error.
func (v *Viewer) SetStatus(s string) {
	v.mu.Lock()
	v.status = s
	w := v.window
	v.mu.Unlock()
	if w != nil {
		w.Invalidate()
	}
}

// Run drives w until it is closed or Escape or Q is pressed.
func (v *Viewer) Run(w *app.Window) error {
	v.mu.Lock()
	v.window = w
	v.mu.Unlock()

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			ops.Reset()
			gtx := layout.Context{
				Ops:         &ops,
				Constraints: layout.Exact(e.Size),
				Metric:      e.Metric,
				Now:         e.Now,
				Source:      e.Source,
			}
			if v.handleInput(gtx) {
				return nil
			}
			paint.Fill(&ops, ColorBackground)
			v.layout(gtx)
			e.Frame(&ops)
		}
	}
}

// quitKeys close the viewer.
var quitKeys = []key.Name{key.NameEscape, "Q"}

// handleInput reports whether a quit key was pressed.
func (v *Viewer) handleInput(gtx layout.Context) bool {
	quit := false
	for _, name := range quitKeys {
		for {
			ev, ok := gtx.Event(key.Filter{Name: name})
			if !ok {
				break
			}
			quit = quit || isQuit(ev)
		}
	}
	return quit
}

func isQuit(ev event.Event) bool {
	ke, ok := ev.(key.Event)
	if !ok || ke.State != key.Press {
		return false
	}
	return slices.Contains(quitKeys, ke.Name)
}

func (v *Viewer) layout(gtx layout.Context) layout.Dimensions {
	v.mu.Lock()
	waves := v.waves
	status := v.status
	v.mu.Unlock()

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				if len(waves) == 0 && status == "" {
					status = "No waves loaded"
				}
				return material.Body1(v.theme, status).Layout(gtx)
			})
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return material.List(v.theme, &v.list).Layout(gtx, len(waves), func(gtx layout.Context, i int) layout.Dimensions {
				return v.layoutRow(gtx, waves[i])
			})
		}),
	)
}

func (v *Viewer) layoutRow(gtx layout.Context, w *wave.Wave) layout.Dimensions {
	height := gtx.Dp(rowHeight)
	dims := layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			width := gtx.Dp(infoWidth)
			gtx.Constraints.Min.X = width
			gtx.Constraints.Max.X = width
			return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return v.layoutInfo(gtx, w)
			})
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				size := image.Pt(gtx.Constraints.Max.X, height)
				drawPlot(gtx, w, size)
				return layout.Dimensions{Size: size}
			})
		}),
	)
	sep := clip.Rect{Min: image.Pt(0, dims.Size.Y-1), Max: image.Pt(dims.Size.X, dims.Size.Y)}.Op()
	paint.FillShape(gtx.Ops, ColorSeparator, sep)
	return dims
}

func (v *Viewer) layoutInfo(gtx layout.Context, w *wave.Wave) layout.Dimensions {
	children := []layout.FlexChild{
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			label := material.Body1(v.theme, w.Label())
			label.Font.Weight = font.Bold
			return label.Layout(gtx)
		}),
	}
	for _, line := range v.info(w) {
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.Body2(v.theme, line).Layout(gtx)
		}))
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

// drawPlot paints the plot area, the highlighted samples and the trace.
func drawPlot(gtx layout.Context, w *wave.Wave, size image.Point) {
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	paint.FillShape(gtx.Ops, ColorPlot, clip.Rect{Max: size}.Op())

	f := FrameOf(w, f32.Pt(float32(size.X), float32(size.Y)))
	for _, i := range Highlights(w) {
		x0, x1 := int(f.X(float32(i))), int(f.X(float32(i+1)))
		if x1 == x0 {
			x1++
		}
		r := clip.Rect{Min: image.Pt(x0, 0), Max: image.Pt(x1, size.Y)}.Op()
		paint.FillShape(gtx.Ops, ColorSelected, r)
	}

	pts := f.Map(Trace(w))
	if len(pts) < 2 {
		return
	}
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(pts[0])
	for _, p := range pts[1:] {
		path.LineTo(p)
	}
	stroke := clip.Stroke{
		Path:  path.End(),
		Width: float32(gtx.Dp(traceWidth)),
	}.Op()
	paint.FillShape(gtx.Ops, ColorTrace, stroke)
}
