package viz

import (
	"image"

	"github.com/san-kum/gravitywell/internal/sim"
)

type WidgetKind int

const (
	WidgetButton WidgetKind = iota
	WidgetSlider
)

func (k WidgetKind) String() string {
	if k == WidgetSlider {
		return "slider"
	}
	return "button"
}

// Widget is an on-screen control. Min, Max and Value are only meaningful
// for sliders.
type Widget struct {
	Kind  WidgetKind
	Label string
	Key   string
	Rect  image.Rectangle

	Min, Max, Value float64
}

// Fill is a slider's position in [0, 1].
func (w Widget) Fill() float64 {
	if w.Kind != WidgetSlider || w.Max <= w.Min {
		return 0
	}
	return max(0, min(1, (w.Value-w.Min)/(w.Max-w.Min)))
}

const (
	widgetGap      = 10
	buttonHeight   = 20
	sliderWidth    = 200
	sliderHeight   = 80
	pauseFromFloor = 74
	panelRight     = 350
)

func button(label, key string, topLeft image.Point, fontSize int) Widget {
	w := len(label) * fontSize / 2
	return Widget{
		Kind:  WidgetButton,
		Label: label,
		Key:   key,
		Rect:  image.Rectangle{Min: topLeft, Max: topLeft.Add(image.Pt(w, buttonHeight))},
	}
}

func slider(label, key string, topLeft image.Point, lo, hi, v float64) Widget {
	return Widget{
		Kind:  WidgetSlider,
		Label: label,
		Key:   key,
		Rect:  image.Rectangle{Min: topLeft, Max: topLeft.Add(image.Pt(sliderWidth, sliderHeight))},
		Min:   lo,
		Max:   hi,
		Value: v,
	}
}

// Layout places the controls for the world's current phase in screen
// pixels. The rects feed the world's overlap hint.
func Layout(w *sim.World) []Widget {
	p := w.Params()
	screen := image.Rect(0, 0, p.ScreenW, p.ScreenH)
	var out []Widget

	switch w.Phase() {
	case sim.Preview:
		pause := button("PAUSE", "p", image.Pt(30, screen.Max.Y-pauseFromFloor), 30)
		reset := button("RESET", "r", image.Pt(30, pause.Rect.Max.Y+widgetGap), 30)
		ready := button("READY LAUNCH", "enter", image.Point{}, 80)
		c := screen.Size().Div(2)
		ready.Rect = ready.Rect.Add(c.Sub(ready.Rect.Size().Div(2)))
		out = append(out, pause, reset, ready)

	case sim.Aiming:
		observe := button("OBSERVE", "o", image.Pt(screen.Max.X-panelRight, 50), 40)
		launch := button("LAUNCH", "enter", image.Pt(screen.Max.X-panelRight, observe.Rect.Max.Y+widgetGap), 40)
		speed := w.Aim().Len()
		out = append(out, observe, launch,
			slider("ANGLE", "←→", image.Pt(420, 40), -180, 180, w.LaunchAngle()),
			slider("SPEED", "↑↓", image.Pt(650, 40), p.MinSpeed, p.MaxSpeed, speed),
		)
		top := 70
		for i := range w.Replay() {
			r := button("replay", string(rune('1'+i)), image.Pt(50, top), 32)
			out = append(out, r)
			top = r.Rect.Max.Y + widgetGap
		}

	case sim.Flight:
		out = append(out,
			button("PAUSE", "p", image.Pt(30, screen.Max.Y-pauseFromFloor), 30),
			button("RESET", "r", image.Pt(30, screen.Max.Y-pauseFromFloor+buttonHeight+widgetGap), 30),
		)
	}
	return out
}

func rects(widgets []Widget) []image.Rectangle {
	out := make([]image.Rectangle, len(widgets))
	for i, w := range widgets {
		out[i] = w.Rect
	}
	return out
}
