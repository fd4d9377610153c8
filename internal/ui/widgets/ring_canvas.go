package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/cantocalc/internal/model"
)

var (
	bandColor   = color.NRGBA{R: 210, G: 180, B: 140, A: 255} // wound material
	strokeColor = color.NRGBA{R: 90, G: 90, B: 90, A: 255}
)

// RingCanvas draws the cross-section of a roll: the outer diameter filled
// with band material and the hollow core, scaled to the widget size.
type RingCanvas struct {
	widget.BaseWidget
	measurement model.Measurement
	valid       bool
	minSize     float32
}

// NewRingCanvas creates an empty ring diagram of at least size×size.
func NewRingCanvas(size float32) *RingCanvas {
	rc := &RingCanvas{minSize: size}
	rc.ExtendBaseWidget(rc)
	return rc
}

// SetMeasurement shows m. Invalid measurements clear the diagram.
func (rc *RingCanvas) SetMeasurement(m model.Measurement) {
	rc.measurement = m
	rc.valid = m.Validate() == nil
	rc.Refresh()
}

// Clear removes the diagram.
func (rc *RingCanvas) Clear() {
	rc.valid = false
	rc.Refresh()
}

func (rc *RingCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &ringCanvasRenderer{
		rc:      rc,
		outer:   canvas.NewCircle(bandColor),
		inner:   canvas.NewCircle(theme.Color(theme.ColorNameBackground)),
		caption: canvas.NewText("", theme.Color(theme.ColorNameForeground)),
		empty:   canvas.NewText("Enter roll dimensions", theme.Color(theme.ColorNamePlaceHolder)),
	}
	r.outer.StrokeColor = strokeColor
	r.outer.StrokeWidth = 2
	r.inner.StrokeColor = strokeColor
	r.inner.StrokeWidth = 1
	r.caption.TextSize = 11
	r.caption.Alignment = fyne.TextAlignCenter
	r.empty.Alignment = fyne.TextAlignCenter
	r.Refresh()
	return r
}

// RingGeometry returns the outer and core radii in pixels for m drawn inside
// a square of side size. The outer circle always fills the square.
func RingGeometry(m model.Measurement, size float32) (outerR, innerR float32) {
	if m.OuterCM <= 0 || size <= 0 {
		return 0, 0
	}
	outerR = size / 2
	innerR = outerR * float32(m.InnerCM/m.OuterCM)
	return outerR, innerR
}

type ringCanvasRenderer struct {
	rc      *RingCanvas
	outer   *canvas.Circle
	inner   *canvas.Circle
	caption *canvas.Text
	empty   *canvas.Text
}

func (r *ringCanvasRenderer) Layout(size fyne.Size) {
	captionH := r.caption.MinSize().Height
	side := size.Width
	if h := size.Height - captionH - theme.Padding(); h < side {
		side = h
	}
	if side < 0 {
		side = 0
	}

	cx := size.Width / 2
	cy := (size.Height - captionH) / 2
	outerR, innerR := RingGeometry(r.rc.measurement, side)

	r.outer.Move(fyne.NewPos(cx-outerR, cy-outerR))
	r.outer.Resize(fyne.NewSize(2*outerR, 2*outerR))
	r.inner.Move(fyne.NewPos(cx-innerR, cy-innerR))
	r.inner.Resize(fyne.NewSize(2*innerR, 2*innerR))

	r.caption.Move(fyne.NewPos(0, size.Height-captionH))
	r.caption.Resize(fyne.NewSize(size.Width, captionH))
	r.empty.Move(fyne.NewPos(0, size.Height/2-r.empty.MinSize().Height/2))
	r.empty.Resize(fyne.NewSize(size.Width, r.empty.MinSize().Height))
}

func (r *ringCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.rc.minSize, r.rc.minSize+r.caption.MinSize().Height)
}

func (r *ringCanvasRenderer) Refresh() {
	m := r.rc.measurement
	if r.rc.valid {
		r.caption.Text = fmt.Sprintf("Ø %.2f cm / core Ø %.2f cm", m.OuterCM, m.InnerCM)
		r.inner.Hidden = m.InnerCM == 0
	} else {
		r.caption.Text = ""
	}
	r.inner.FillColor = theme.Color(theme.ColorNameBackground)
	r.caption.Color = theme.Color(theme.ColorNameForeground)

	r.outer.Hidden = !r.rc.valid
	if !r.rc.valid {
		r.inner.Hidden = true
	}
	r.empty.Hidden = r.rc.valid

	r.Layout(r.rc.Size())
	canvas.Refresh(r.rc)
}

func (r *ringCanvasRenderer) Destroy() {}

func (r *ringCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.outer, r.inner, r.caption, r.empty}
}
