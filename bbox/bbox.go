/*
Package bbox maintains the running extent of a Gerber image. Arc extents
are a fast conservative superset of the true sweep: the four on-circle
reflection points of the center offset are tested with sign checks only,
no trigonometry.
*/
package bbox

import (
	"strconv"

	"github.com/akavel/polyclip-go"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/MacroFab/DataGerber/gerbertypes"
)

// Box is the running bounding box. All four bounds are absent until the
// first contributing point; after that the box only ever grows.
type Box struct {
	min mgl64.Vec2
	max mgl64.Vec2
	set bool
}

// Valid reports whether any point has contributed yet.
func (b *Box) Valid() bool { return b.set }

// Bounds returns left X, bottom Y, right X, top Y. ok is false while the
// box is still empty.
func (b *Box) Bounds() (lx, by, rx, ty float64, ok bool) {
	if !b.set {
		return 0, 0, 0, 0, false
	}
	return b.min.X(), b.min.Y(), b.max.X(), b.max.Y(), true
}

func (b *Box) Width() float64 {
	if !b.set {
		return 0
	}
	return b.max.X() - b.min.X()
}

func (b *Box) Height() float64 {
	if !b.set {
		return 0
	}
	return b.max.Y() - b.min.Y()
}

func (b *Box) String() string {
	if !b.set {
		return "bbox <empty>"
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	return "bbox (" + f(b.min.X()) + "," + f(b.min.Y()) + ")-(" + f(b.max.X()) + "," + f(b.max.Y()) + ")"
}

// Point folds one point into the box.
func (b *Box) Point(p mgl64.Vec2) {
	if !b.set {
		b.min, b.max = p, p
		b.set = true
		return
	}
	if p.X() < b.min.X() {
		b.min[0] = p.X()
	}
	if p.X() > b.max.X() {
		b.max[0] = p.X()
	}
	if p.Y() < b.min.Y() {
		b.min[1] = p.Y()
	}
	if p.Y() > b.max.Y() {
		b.max[1] = p.Y()
	}
}

// Rect folds a polyclip rectangle (a closed region contour's bound) into
// the box.
func (b *Box) Rect(r polyclip.Rectangle) {
	b.Point(mgl64.Vec2{r.Min.X, r.Min.Y})
	b.Point(mgl64.Vec2{r.Max.X, r.Max.Y})
}

// Union folds another box in.
func (b *Box) Union(o *Box) {
	if o == nil || !o.set {
		return
	}
	b.Point(o.min)
	b.Point(o.max)
}

/*
######################### arc extension ############################
*/

// Arc folds a multi-quadrant circular interpolation from start to end into
// the box. offset is the I/J vector from start to the arc center, dir is
// IPModeCwC or IPModeCCwC. A zero-length arc is a full circle.
func (b *Box) Arc(start, end, offset mgl64.Vec2, dir gerbertypes.IPmode) {
	center := start.Add(offset)
	// the four reflections of the offset about the center all lie on the
	// circle; they bracket every axis-aligned extreme the sweep can reach
	corners := [4]mgl64.Vec2{
		{center.X() + offset.X(), center.Y() + offset.Y()},
		{center.X() + offset.X(), center.Y() - offset.Y()},
		{center.X() - offset.X(), center.Y() + offset.Y()},
		{center.X() - offset.X(), center.Y() - offset.Y()},
	}

	b.Point(start)
	if start == end {
		// full circle
		for _, c := range corners {
			b.Point(c)
		}
		return
	}
	b.Point(end)

	u := start.Sub(center)
	v := end.Sub(center)
	for _, c := range corners {
		if swept(u, v, c.Sub(center), dir) {
			b.Point(c)
		}
	}
}

// swept reports whether the point with radius vector w lies on the arc
// traced from radius vector u to radius vector v in direction dir. Pure
// sign tests on cross products.
func swept(u, v, w mgl64.Vec2, dir gerbertypes.IPmode) bool {
	if dir == gerbertypes.IPModeCwC {
		// a clockwise sweep from u to v is a counter-clockwise sweep
		// from v to u
		u, v = v, u
	}
	if cross(u, v) >= 0 {
		return cross(u, w) >= 0 && cross(w, v) >= 0
	}
	return cross(u, w) >= 0 || cross(w, v) >= 0
}

func cross(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}
