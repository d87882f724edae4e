package common

import (
	"github.com/chewxy/math32"
)

// CurveType selects the knot parameterization of a CatmullRomCurve.
type CurveType int

const (
	// CurveCentripetal uses alpha = 0.5 knot spacing. It never forms cusps or self-intersections within a segment.
	CurveCentripetal CurveType = iota
	// CurveChordal uses alpha = 1 knot spacing.
	CurveChordal
	// CurveUniform uses evenly spaced knots with the curve's tension.
	CurveUniform
)

// arcLengthDivisions is the number of chords used to approximate the curve's arc length.
const arcLengthDivisions = 200

// CatmullRomCurve is an immutable open Catmull-Rom spline through an ordered list of control points.
// Endpoints are extended by reflecting the neighbouring control point so the curve passes through
// the first and last points.
type CatmullRomCurve struct {
	points    [][3]float32
	curveType CurveType
	tension   float32

	arcLengths []float32
}

// CurveOption configures a CatmullRomCurve.
type CurveOption func(*CatmullRomCurve)

// WithCurveType sets the knot parameterization. Defaults to CurveCentripetal.
func WithCurveType(t CurveType) CurveOption {
	return func(c *CatmullRomCurve) {
		c.curveType = t
	}
}

// WithTension sets the tension used by CurveUniform. Defaults to 0.5.
func WithTension(tension float32) CurveOption {
	return func(c *CatmullRomCurve) {
		c.tension = tension
	}
}

// NewCatmullRomCurve creates a curve through the given control points.
// The points are copied; later mutation of the input slice does not affect the curve.
//
// Parameters:
//   - points: at least two control points
//   - options: functional options to configure the curve
//
// Returns:
//   - *CatmullRomCurve: the newly created curve
func NewCatmullRomCurve(points [][3]float32, options ...CurveOption) *CatmullRomCurve {
	c := &CatmullRomCurve{
		points:    append([][3]float32(nil), points...),
		curveType: CurveCentripetal,
		tension:   0.5,
	}
	for _, opt := range options {
		opt(c)
	}
	c.arcLengths = c.lengths(arcLengthDivisions)
	return c
}

// Points returns a copy of the control points.
func (c *CatmullRomCurve) Points() [][3]float32 {
	return append([][3]float32(nil), c.points...)
}

// Point evaluates the curve at parameter t in [0, 1]. The parameter is uniform per segment,
// not per unit of arc length.
//
// Parameters:
//   - t: curve parameter, 0 is the first control point and 1 the last
//
// Returns:
//   - [3]float32: the point on the curve
func (c *CatmullRomCurve) Point(t float32) [3]float32 {
	l := len(c.points)
	if l == 0 {
		return [3]float32{}
	}
	if l == 1 {
		return c.points[0]
	}

	p := float32(l-1) * t
	intPoint := int(math32.Floor(p))
	weight := p - float32(intPoint)

	if intPoint < 0 {
		intPoint, weight = 0, 0
	}
	if intPoint >= l-1 {
		intPoint = l - 2
		weight = 1
	}

	var p0, p3 [3]float32
	if intPoint > 0 {
		p0 = c.points[intPoint-1]
	} else {
		p0 = Sub3(Scale3(c.points[0], 2), c.points[1])
	}
	p1 := c.points[intPoint]
	p2 := c.points[intPoint+1]
	if intPoint+2 < l {
		p3 = c.points[intPoint+2]
	} else {
		p3 = Sub3(Scale3(c.points[l-1], 2), c.points[l-2])
	}

	var polys [3]cubicPoly
	switch c.curveType {
	case CurveUniform:
		for i := 0; i < 3; i++ {
			polys[i] = catmullRomPoly(p0[i], p1[i], p2[i], p3[i], c.tension)
		}
	default:
		pow := float32(0.25)
		if c.curveType == CurveChordal {
			pow = 0.5
		}
		dt0 := math32.Pow(distSq(p0, p1), pow)
		dt1 := math32.Pow(distSq(p1, p2), pow)
		dt2 := math32.Pow(distSq(p2, p3), pow)

		// Guard against coincident control points.
		if dt1 < 1e-4 {
			dt1 = 1
		}
		if dt0 < 1e-4 {
			dt0 = dt1
		}
		if dt2 < 1e-4 {
			dt2 = dt1
		}
		for i := 0; i < 3; i++ {
			polys[i] = nonUniformPoly(p0[i], p1[i], p2[i], p3[i], dt0, dt1, dt2)
		}
	}

	return [3]float32{polys[0].calc(weight), polys[1].calc(weight), polys[2].calc(weight)}
}

// PointAt evaluates the curve at arc-length fraction u in [0, 1], so equal steps in u
// cover equal distances along the curve.
//
// Parameters:
//   - u: fraction of the total arc length
//
// Returns:
//   - [3]float32: the point on the curve
func (c *CatmullRomCurve) PointAt(u float32) [3]float32 {
	return c.Point(c.uToT(u))
}

// Tangent returns the unit tangent at parameter t, estimated by central differences.
func (c *CatmullRomCurve) Tangent(t float32) [3]float32 {
	const delta = 0.0001
	t1 := t - delta
	t2 := t + delta
	if t1 < 0 {
		t1 = 0
	}
	if t2 > 1 {
		t2 = 1
	}
	return Normalize3(Sub3(c.Point(t2), c.Point(t1)))
}

// TangentAt returns the unit tangent at arc-length fraction u.
func (c *CatmullRomCurve) TangentAt(u float32) [3]float32 {
	return c.Tangent(c.uToT(u))
}

// Length returns the approximate total arc length of the curve.
func (c *CatmullRomCurve) Length() float32 {
	return c.arcLengths[len(c.arcLengths)-1]
}

// Frames computes parallel-transport frames at segments+1 arc-length samples along the curve.
// The frames rotate minimally between samples, which keeps swept geometry free of twisting.
//
// Parameters:
//   - segments: number of intervals along the curve
//
// Returns:
//   - tangents, normals, binormals: unit vectors per sample
func (c *CatmullRomCurve) Frames(segments int) (tangents, normals, binormals [][3]float32) {
	tangents = make([][3]float32, segments+1)
	normals = make([][3]float32, segments+1)
	binormals = make([][3]float32, segments+1)

	for i := 0; i <= segments; i++ {
		tangents[i] = c.TangentAt(float32(i) / float32(segments))
	}

	// Seed the first normal from the axis least aligned with the initial tangent.
	smallest := float32(math32.MaxFloat32)
	var axis [3]float32
	for i, v := range tangents[0] {
		if a := math32.Abs(v); a <= smallest {
			smallest = a
			axis = [3]float32{}
			axis[i] = 1
		}
	}
	vec := Normalize3(Cross3(tangents[0], axis))
	normals[0] = Cross3(tangents[0], vec)
	binormals[0] = Cross3(tangents[0], normals[0])

	for i := 1; i <= segments; i++ {
		normals[i] = normals[i-1]
		vec := Cross3(tangents[i-1], tangents[i])
		if Length3(vec) > 1e-6 {
			vec = Normalize3(vec)
			d := Dot3(tangents[i-1], tangents[i])
			if d > 1 {
				d = 1
			} else if d < -1 {
				d = -1
			}
			normals[i] = RotateAxis(normals[i], vec, math32.Acos(d))
		}
		binormals[i] = Cross3(tangents[i], normals[i])
	}
	return tangents, normals, binormals
}

// lengths returns cumulative chord lengths over divisions+1 uniform parameter samples.
func (c *CatmullRomCurve) lengths(divisions int) []float32 {
	out := make([]float32, divisions+1)
	last := c.Point(0)
	var sum float32
	for i := 1; i <= divisions; i++ {
		cur := c.Point(float32(i) / float32(divisions))
		sum += Length3(Sub3(cur, last))
		out[i] = sum
		last = cur
	}
	return out
}

// uToT maps an arc-length fraction to the curve parameter by binary search over the cached lengths.
func (c *CatmullRomCurve) uToT(u float32) float32 {
	lens := c.arcLengths
	il := len(lens)
	target := u * lens[il-1]

	low, high := 0, il-1
	for low <= high {
		i := low + (high-low)/2
		cmp := lens[i] - target
		if cmp < 0 {
			low = i + 1
		} else if cmp > 0 {
			high = i - 1
		} else {
			high = i
			break
		}
	}
	i := high
	if i < 0 {
		return 0
	}
	if lens[i] == target || i >= il-1 {
		return float32(i) / float32(il-1)
	}

	before := lens[i]
	segment := lens[i+1] - before
	if segment == 0 {
		return float32(i) / float32(il-1)
	}
	return (float32(i) + (target-before)/segment) / float32(il-1)
}

// cubicPoly holds the coefficients c0 + c1*t + c2*t^2 + c3*t^3.
type cubicPoly struct {
	c0, c1, c2, c3 float32
}

func (p cubicPoly) calc(t float32) float32 {
	t2 := t * t
	return p.c0 + p.c1*t + p.c2*t2 + p.c3*t2*t
}

func hermitePoly(x0, x1, t0, t1 float32) cubicPoly {
	return cubicPoly{
		c0: x0,
		c1: t0,
		c2: -3*x0 + 3*x1 - 2*t0 - t1,
		c3: 2*x0 - 2*x1 + t0 + t1,
	}
}

func catmullRomPoly(x0, x1, x2, x3, tension float32) cubicPoly {
	return hermitePoly(x1, x2, tension*(x2-x0), tension*(x3-x1))
}

func nonUniformPoly(x0, x1, x2, x3, dt0, dt1, dt2 float32) cubicPoly {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2

	// Rescale tangents to the [0, 1] parameter range of the middle segment.
	return hermitePoly(x1, x2, t1*dt1, t2*dt1)
}

func distSq(a, b [3]float32) float32 {
	d := Sub3(a, b)
	return Dot3(d, d)
}
