package model

import (
	"github.com/Carmen-Shannon/bridgeworks/common"
	"github.com/chewxy/math32"
)

// Path is a parametric curve a tube can be swept along.
// common.CatmullRomCurve satisfies it.
type Path interface {
	// PointAt returns the point at arc-length fraction u in [0, 1].
	PointAt(u float32) [3]float32

	// Frames returns parallel-transport frames at segments+1 evenly spaced arc-length samples.
	Frames(segments int) (tangents, normals, binormals [][3]float32)
}

// NewPlane creates a single-quad plane of the given size lying in the XY plane and facing +Z,
// centered on the origin.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//   - options: functional options applied to the resulting Model
//
// Returns:
//   - Model: the plane mesh
func NewPlane(width, height float32, options ...ModelBuilderOption) Model {
	hw, hh := width/2, height/2
	n := [3]float32{0, 0, 1}
	vertices := []Vertex{
		{Position: [3]float32{-hw, -hh, 0}, Normal: n},
		{Position: [3]float32{hw, -hh, 0}, Normal: n},
		{Position: [3]float32{hw, hh, 0}, Normal: n},
		{Position: [3]float32{-hw, hh, 0}, Normal: n},
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	return NewModel(vertices, indices, prepend(options, WithName("plane"), withKind(KindPlane))...)
}

// boxFaces lists each face's outward normal and two in-plane axes whose cross product is the normal.
var boxFaces = [6][3][3]float32{
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
}

// NewBox creates an axis-aligned box centered on the origin with flat-shaded faces.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//   - depth: extent along Z
//   - options: functional options applied to the resulting Model
//
// Returns:
//   - Model: the box mesh (24 vertices, 12 triangles)
func NewBox(width, height, depth float32, options ...ModelBuilderOption) Model {
	half := [3]float32{width / 2, height / 2, depth / 2}
	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)

	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range boxFaces {
		n, u, v := f[0], f[1], f[2]
		base := uint32(len(vertices))
		for _, c := range corners {
			var p [3]float32
			for i := 0; i < 3; i++ {
				p[i] = (n[i] + c[0]*u[i] + c[1]*v[i]) * half[i]
			}
			vertices = append(vertices, Vertex{Position: p, Normal: n})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return NewModel(vertices, indices, prepend(options, WithName("box"), withKind(KindBox))...)
}

// NewCylinder creates a capped cylinder (or truncated cone) along the Y axis, centered on the origin.
//
// Parameters:
//   - radiusTop: radius at y = +height/2
//   - radiusBottom: radius at y = -height/2
//   - height: extent along Y
//   - radialSegments: number of segments around the circumference (minimum 3)
//   - options: functional options applied to the resulting Model
//
// Returns:
//   - Model: the cylinder mesh
func NewCylinder(radiusTop, radiusBottom, height float32, radialSegments int, options ...ModelBuilderOption) Model {
	radialSegments = max(radialSegments, 3)
	halfHeight := height / 2
	slope := (radiusBottom - radiusTop) / height

	var vertices []Vertex
	var indices []uint32

	// Side wall: two rings sharing the seam vertex duplicated at theta = 2*pi.
	for row := 0; row <= 1; row++ {
		radius := radiusTop + float32(row)*(radiusBottom-radiusTop)
		y := halfHeight - float32(row)*height
		for x := 0; x <= radialSegments; x++ {
			theta := float32(x) / float32(radialSegments) * 2 * math32.Pi
			s, c := math32.Sin(theta), math32.Cos(theta)
			vertices = append(vertices, Vertex{
				Position: [3]float32{radius * s, y, radius * c},
				Normal:   common.Normalize3([3]float32{s, slope, c}),
			})
		}
	}
	stride := uint32(radialSegments + 1)
	for x := uint32(0); x < uint32(radialSegments); x++ {
		a := x
		b := stride + x
		c := stride + x + 1
		d := x + 1
		indices = append(indices, a, b, d, b, c, d)
	}

	// Caps as triangle fans.
	for _, top := range []bool{true, false} {
		radius, y, ny := radiusBottom, -halfHeight, float32(-1)
		if top {
			radius, y, ny = radiusTop, halfHeight, 1
		}
		if radius <= 0 {
			continue
		}
		n := [3]float32{0, ny, 0}
		center := uint32(len(vertices))
		vertices = append(vertices, Vertex{Position: [3]float32{0, y, 0}, Normal: n})
		ring := uint32(len(vertices))
		for x := 0; x <= radialSegments; x++ {
			theta := float32(x) / float32(radialSegments) * 2 * math32.Pi
			vertices = append(vertices, Vertex{
				Position: [3]float32{radius * math32.Sin(theta), y, radius * math32.Cos(theta)},
				Normal:   n,
			})
		}
		for x := uint32(0); x < uint32(radialSegments); x++ {
			if top {
				indices = append(indices, ring+x, ring+x+1, center)
			} else {
				indices = append(indices, ring+x+1, ring+x, center)
			}
		}
	}
	return NewModel(vertices, indices, prepend(options, WithName("cylinder"), withKind(KindCylinder))...)
}

// NewTube sweeps a circle of the given radius along a path. The ends are left open.
//
// Parameters:
//   - path: the curve to follow
//   - tubularSegments: number of segments along the path
//   - radius: tube radius
//   - radialSegments: number of segments around the tube
//   - options: functional options applied to the resulting Model
//
// Returns:
//   - Model: the tube mesh
func NewTube(path Path, tubularSegments int, radius float32, radialSegments int, options ...ModelBuilderOption) Model {
	tubularSegments = max(tubularSegments, 1)
	radialSegments = max(radialSegments, 3)
	_, normals, binormals := path.Frames(tubularSegments)

	vertices := make([]Vertex, 0, (tubularSegments+1)*(radialSegments+1))
	for i := 0; i <= tubularSegments; i++ {
		p := path.PointAt(float32(i) / float32(tubularSegments))
		N, B := normals[i], binormals[i]
		for j := 0; j <= radialSegments; j++ {
			v := float32(j) / float32(radialSegments) * 2 * math32.Pi
			sin, cos := math32.Sin(v), -math32.Cos(v)
			n := common.Normalize3(common.Add3(common.Scale3(N, cos), common.Scale3(B, sin)))
			vertices = append(vertices, Vertex{
				Position: common.Add3(p, common.Scale3(n, radius)),
				Normal:   n,
			})
		}
	}

	stride := uint32(radialSegments + 1)
	indices := make([]uint32, 0, tubularSegments*radialSegments*6)
	for j := uint32(1); j <= uint32(tubularSegments); j++ {
		for i := uint32(1); i <= uint32(radialSegments); i++ {
			a := stride*(j-1) + (i - 1)
			b := stride*j + (i - 1)
			c := stride*j + i
			d := stride*(j-1) + i
			indices = append(indices, a, b, d, b, c, d)
		}
	}
	return NewModel(vertices, indices, prepend(options, WithName("tube"), withKind(KindTube))...)
}

// prepend places the primitive defaults before caller options so callers can override them.
func prepend(options []ModelBuilderOption, defaults ...ModelBuilderOption) []ModelBuilderOption {
	return append(defaults, options...)
}
