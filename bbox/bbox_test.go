package bbox

import (
	"testing"

	"github.com/akavel/polyclip-go"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/MacroFab/DataGerber/gerbertypes"
)

func checkBounds(t *testing.T, b *Box, lx, by, rx, ty float64) {
	t.Helper()
	glx, gby, grx, gty, ok := b.Bounds()
	if !ok {
		t.Fatal("box still empty")
	}
	if glx != lx || gby != by || grx != rx || gty != ty {
		t.Errorf("bounds got (%v,%v)-(%v,%v), want (%v,%v)-(%v,%v)",
			glx, gby, grx, gty, lx, by, rx, ty)
	}
}

func TestBox_Point(t *testing.T) {
	var b Box
	if _, _, _, _, ok := b.Bounds(); ok {
		t.Fatal("empty box reported bounds")
	}
	b.Point(mgl64.Vec2{1, 2})
	checkBounds(t, &b, 1, 2, 1, 2)
	b.Point(mgl64.Vec2{-3, 5})
	checkBounds(t, &b, -3, 2, 1, 5)
	// a point inside never shrinks the box
	b.Point(mgl64.Vec2{0, 3})
	checkBounds(t, &b, -3, 2, 1, 5)
}

func TestBox_Rect(t *testing.T) {
	var b Box
	b.Rect(polyclip.Rectangle{
		Min: polyclip.Point{X: -1, Y: -2},
		Max: polyclip.Point{X: 4, Y: 3},
	})
	checkBounds(t, &b, -1, -2, 4, 3)
}

func TestBox_Union(t *testing.T) {
	var a, b Box
	a.Point(mgl64.Vec2{0, 0})
	b.Point(mgl64.Vec2{2, -1})
	a.Union(&b)
	checkBounds(t, &a, 0, -1, 2, 0)
	var empty Box
	a.Union(&empty)
	checkBounds(t, &a, 0, -1, 2, 0)
}

// a zero-length multi-quadrant arc is a full circle: the box covers the
// start point and all four offset reflections about the center
func TestBox_ArcFullCircle(t *testing.T) {
	var b Box
	start := mgl64.Vec2{1, 1}
	offset := mgl64.Vec2{2, 1} // center at (3, 2)
	b.Arc(start, start, offset, gerbertypes.IPModeCwC)
	checkBounds(t, &b, 1, 1, 5, 3)
}

// a quarter arc only picks up the reflections its sweep actually crosses
func TestBox_ArcQuarterSweep(t *testing.T) {
	start := mgl64.Vec2{1, 0}
	end := mgl64.Vec2{0, 1}
	offset := mgl64.Vec2{-1, 0} // center at origin

	var ccw Box
	ccw.Arc(start, end, offset, gerbertypes.IPModeCCwC)
	checkBounds(t, &ccw, 0, 0, 1, 1)

	// the clockwise sweep between the same endpoints goes the long way
	// around and crosses the mirrored corner at (-1, 0)
	var cw Box
	cw.Arc(start, end, offset, gerbertypes.IPModeCwC)
	checkBounds(t, &cw, -1, 0, 1, 1)
}

func TestBox_ArcEndpointsAlwaysIncluded(t *testing.T) {
	var b Box
	start := mgl64.Vec2{2, 3}
	end := mgl64.Vec2{4, 5}
	b.Arc(start, end, mgl64.Vec2{1, 1}, gerbertypes.IPModeCCwC)
	lx, by, rx, ty, ok := b.Bounds()
	if !ok {
		t.Fatal("box empty after arc")
	}
	if lx > 2 || by > 3 || rx < 4 || ty < 5 {
		t.Error("endpoints fell outside the bound:", lx, by, rx, ty)
	}
}
