package raster

import (
	"github.com/chewxy/math32"
)

// clipNear clips a triangle against the z >= 0 clip-space plane, which also keeps w positive
// under a perspective projection. It returns zero, one or two triangles.
func clipNear(in [3]clipVertex, out [][3]clipVertex) [][3]clipVertex {
	inside := 0
	for _, v := range in {
		if v.clip[2] >= 0 {
			inside++
		}
	}
	switch inside {
	case 0:
		return out
	case 3:
		return append(out, in)
	}

	poly := make([]clipVertex, 0, 4)
	for i := 0; i < 3; i++ {
		a, b := in[i], in[(i+1)%3]
		aIn, bIn := a.clip[2] >= 0, b.clip[2] >= 0
		if aIn {
			poly = append(poly, a)
		}
		if aIn != bIn {
			t := a.clip[2] / (a.clip[2] - b.clip[2])
			poly = append(poly, lerpVertex(a, b, t))
		}
	}
	for i := 1; i+1 < len(poly); i++ {
		out = append(out, [3]clipVertex{poly[0], poly[i], poly[i+1]})
	}
	return out
}

func lerpVertex(a, b clipVertex, t float32) clipVertex {
	var v clipVertex
	for i := 0; i < 4; i++ {
		v.clip[i] = a.clip[i] + (b.clip[i]-a.clip[i])*t
	}
	for i := 0; i < 3; i++ {
		v.world[i] = a.world[i] + (b.world[i]-a.world[i])*t
		v.normal[i] = a.normal[i] + (b.normal[i]-a.normal[i])*t
	}
	return v
}

// project performs the perspective divide and viewport mapping. Screen y grows downward.
func project(v clipVertex, width, height int) screenVertex {
	invW := 1 / v.clip[3]
	s := screenVertex{
		x:    (v.clip[0]*invW*0.5 + 0.5) * float32(width),
		y:    (0.5 - v.clip[1]*invW*0.5) * float32(height),
		z:    v.clip[2] * invW,
		invW: invW,
	}
	for i := 0; i < 3; i++ {
		s.world[i] = v.world[i] * invW
		s.normal[i] = v.normal[i] * invW
	}
	return s
}

// orient is twice the signed area of abc in screen space.
func orient(ax, ay, bx, by, cx, cy float32) float32 {
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}

// setup orders the vertices so the triangle has positive orientation and computes its pixel bounds.
// Counter-clockwise triangles in clip space arrive with negative orientation on a y-down screen;
// with cull set those back faces are dropped.
func setup(v [3]screenVertex, cull bool, width, height int) (triangle, bool) {
	area := orient(v[0].x, v[0].y, v[1].x, v[1].y, v[2].x, v[2].y)
	if area == 0 || math32.IsNaN(area) {
		return triangle{}, false
	}
	if area > 0 {
		if cull {
			return triangle{}, false
		}
	} else {
		v[1], v[2] = v[2], v[1]
	}

	t := triangle{v: v}
	minX := math32.Min(v[0].x, math32.Min(v[1].x, v[2].x))
	maxX := math32.Max(v[0].x, math32.Max(v[1].x, v[2].x))
	minY := math32.Min(v[0].y, math32.Min(v[1].y, v[2].y))
	maxY := math32.Max(v[0].y, math32.Max(v[1].y, v[2].y))

	t.minX = max(int(math32.Floor(minX)), 0)
	t.minY = max(int(math32.Floor(minY)), 0)
	t.maxX = min(int(math32.Ceil(maxX)), width-1)
	t.maxY = min(int(math32.Ceil(maxY)), height-1)
	if t.minX > t.maxX || t.minY > t.maxY {
		return triangle{}, false
	}
	return t, true
}

// edge holds one edge function in the form a*px + b*py + c with its fill-rule tie break.
type edge struct {
	a, b, c float32
	topLeft bool
}

func newEdge(p, q screenVertex) edge {
	dx, dy := q.x-p.x, q.y-p.y
	return edge{
		a:       -dy,
		b:       dx,
		c:       dy*p.x - dx*p.y,
		topLeft: (dy == 0 && dx > 0) || dy < 0,
	}
}

func (e edge) eval(x, y float32) float32 {
	return e.a*x + e.b*y + e.c
}

func (e edge) covers(w float32) bool {
	return w > 0 || (w == 0 && e.topLeft)
}

// fragment is the interpolated state handed to a fragment callback.
type fragment struct {
	x, y   int
	z      float32
	w      float32
	world  [3]float32
	normal [3]float32
}

// rasterize walks the pixels of t between rows y0 (inclusive) and y1 (exclusive), calling fn for
// every covered pixel center. World position and normal are interpolated perspective-correctly
// only when attrs is set.
func rasterize(t *triangle, y0, y1 int, attrs bool, fn func(f *fragment)) {
	ys := max(t.minY, y0)
	ye := min(t.maxY, y1-1)
	if ys > ye {
		return
	}

	v0, v1, v2 := t.v[0], t.v[1], t.v[2]
	e0 := newEdge(v1, v2)
	e1 := newEdge(v2, v0)
	e2 := newEdge(v0, v1)
	area := e2.eval(v2.x, v2.y)
	if area <= 0 {
		return
	}
	inv := 1 / area

	var f fragment
	for y := ys; y <= ye; y++ {
		py := float32(y) + 0.5
		for x := t.minX; x <= t.maxX; x++ {
			px := float32(x) + 0.5
			w0 := e0.eval(px, py)
			w1 := e1.eval(px, py)
			w2 := e2.eval(px, py)
			if !e0.covers(w0) || !e1.covers(w1) || !e2.covers(w2) {
				continue
			}
			l0, l1, l2 := w0*inv, w1*inv, w2*inv

			f.x, f.y = x, y
			f.z = l0*v0.z + l1*v1.z + l2*v2.z
			if attrs {
				invW := l0*v0.invW + l1*v1.invW + l2*v2.invW
				f.w = 1 / invW
				for i := 0; i < 3; i++ {
					f.world[i] = (l0*v0.world[i] + l1*v1.world[i] + l2*v2.world[i]) * f.w
					f.normal[i] = (l0*v0.normal[i] + l1*v1.normal[i] + l2*v2.normal[i]) * f.w
				}
			}
			fn(&f)
		}
	}
}
