package cropengine

// ViewportRect viewport'un istemci (sayfa) koordinatlarındaki sol üst köşesi.
type ViewportRect struct {
	Left float64 `json:"left" form:"left"`
	Top  float64 `json:"top" form:"top"`
}

// PointerInput fare olayının istemci koordinatları.
type PointerInput struct {
	ClientX float64 `json:"clientX" form:"clientX"`
	ClientY float64 `json:"clientY" form:"clientY"`
}

// Point olayı viewport'a göre bir noktaya çevirir.
func (p PointerInput) Point(vp ViewportRect) Point {
	return Point{X: p.ClientX - vp.Left, Y: p.ClientY - vp.Top}
}

// TouchInput dokunma olayı; yalnızca ilk parmak dikkate alınır.
type TouchInput struct {
	Touches []PointerInput `json:"touches"`
}

// Point ilk dokunuşu fare olayıyla aynı şekilde çevirir. Dokunuş yoksa ok false döner.
func (t TouchInput) Point(vp ViewportRect) (Point, bool) {
	if len(t.Touches) == 0 {
		return Point{}, false
	}
	return t.Touches[0].Point(vp), true
}
