package layout

// Rect is an axis-aligned rectangle in page space (y up).
type Rect struct {
	Left, Right float64
	Bottom, Top float64
}

// RectAround returns the w x h rectangle centred on (cx, cy).
func RectAround(cx, cy, w, h float64) Rect {
	return Rect{Left: cx - w/2, Right: cx + w/2, Bottom: cy - h/2, Top: cy + h/2}
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Top - r.Bottom }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return (r.Bottom + r.Top) / 2 }
