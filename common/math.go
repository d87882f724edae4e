package common

import (
	"github.com/chewxy/math32"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a perspective projection matrix.
// Depth is mapped to the WebGPU clip range [0, 1]: the near plane lands on 0 and the far plane on 1.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / math32.Tan(fovY/2.0)
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// Ortho creates an orthographic projection matrix with WebGPU depth range [0, 1].
// Used for directional light shadow frustums.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - left, right, bottom, top: view volume extents in view space
//   - near, far: clipping plane distances along -Z
func Ortho(out []float32, left, right, bottom, top, near, far float32) {
	Identity(out)

	out[0] = 2 / (right - left)
	out[5] = 2 / (top - bottom)
	out[10] = -1 / (far - near)
	out[12] = -(right + left) / (right - left)
	out[13] = -(top + bottom) / (top - bottom)
	out[14] = -near / (far - near)
}

// BuildModelMatrix constructs a 4x4 model matrix from position, Euler rotation, and scale.
// The rotation order is X * Y * Z, so Z is applied first. All matrices are column-major.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - posX, posY, posZ: translation in parent space
//   - rotX, rotY, rotZ: rotation angles in radians around each axis
//   - scaleX, scaleY, scaleZ: scale factors along each axis
func BuildModelMatrix(out []float32, posX, posY, posZ, rotX, rotY, rotZ, scaleX, scaleY, scaleZ float32) {
	cx, sx := math32.Cos(rotX), math32.Sin(rotX)
	cy, sy := math32.Cos(rotY), math32.Sin(rotY)
	cz, sz := math32.Cos(rotZ), math32.Sin(rotZ)

	// R = Rx * Ry * Rz, column-major
	out[0] = (cy * cz) * scaleX
	out[1] = (cx*sz + sx*sy*cz) * scaleX
	out[2] = (sx*sz - cx*sy*cz) * scaleX
	out[3] = 0

	out[4] = (-cy * sz) * scaleY
	out[5] = (cx*cz - sx*sy*sz) * scaleY
	out[6] = (sx*cz + cx*sy*sz) * scaleY
	out[7] = 0

	out[8] = sy * scaleZ
	out[9] = (-sx * cy) * scaleZ
	out[10] = (cx * cy) * scaleZ
	out[11] = 0

	out[12] = posX
	out[13] = posY
	out[14] = posZ
	out[15] = 1
}

// Invert4 computes the inverse of a 4x4 column-major matrix using the Laplace
// expansion (cofactor) method. If the matrix is singular the output is left
// unchanged and the function returns false.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - m: source matrix (16 elements, column-major)
//
// Returns:
//   - bool: true if the matrix was successfully inverted, false if singular
func Invert4(out, m []float32) bool {
	// 2x2 sub-determinants of the upper-left and lower-right quadrants.
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return false
	}

	invDet := 1.0 / det

	out[0] = (m[5]*c5 - m[6]*c4 + m[7]*c3) * invDet
	out[1] = (-m[1]*c5 + m[2]*c4 - m[3]*c3) * invDet
	out[2] = (m[13]*s5 - m[14]*s4 + m[15]*s3) * invDet
	out[3] = (-m[9]*s5 + m[10]*s4 - m[11]*s3) * invDet

	out[4] = (-m[4]*c5 + m[6]*c2 - m[7]*c1) * invDet
	out[5] = (m[0]*c5 - m[2]*c2 + m[3]*c1) * invDet
	out[6] = (-m[12]*s5 + m[14]*s2 - m[15]*s1) * invDet
	out[7] = (m[8]*s5 - m[10]*s2 + m[11]*s1) * invDet

	out[8] = (m[4]*c4 - m[5]*c2 + m[7]*c0) * invDet
	out[9] = (-m[0]*c4 + m[1]*c2 - m[3]*c0) * invDet
	out[10] = (m[12]*s4 - m[13]*s2 + m[15]*s0) * invDet
	out[11] = (-m[8]*s4 + m[9]*s2 - m[11]*s0) * invDet

	out[12] = (-m[4]*c3 + m[5]*c1 - m[6]*c0) * invDet
	out[13] = (m[0]*c3 - m[1]*c1 + m[2]*c0) * invDet
	out[14] = (-m[12]*s3 + m[13]*s1 - m[14]*s0) * invDet
	out[15] = (m[8]*s3 - m[9]*s1 + m[10]*s0) * invDet

	return true
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eyeX, eyeY, eyeZ: camera position in world space
//   - centerX, centerY, centerZ: target point the camera looks at
//   - upX, upY, upZ: up vector defining camera orientation (typically 0,1,0)
func LookAt(out []float32, eyeX, eyeY, eyeZ, centerX, centerY, centerZ, upX, upY, upZ float32) {
	z := Normalize3([3]float32{eyeX - centerX, eyeY - centerY, eyeZ - centerZ})
	x := Normalize3(Cross3([3]float32{upX, upY, upZ}, z))
	y := Cross3(z, x)

	out[0], out[4], out[8], out[12] = x[0], x[1], x[2], -(x[0]*eyeX + x[1]*eyeY + x[2]*eyeZ)
	out[1], out[5], out[9], out[13] = y[0], y[1], y[2], -(y[0]*eyeX + y[1]*eyeY + y[2]*eyeZ)
	out[2], out[6], out[10], out[14] = z[0], z[1], z[2], -(z[0]*eyeX + z[1]*eyeY + z[2]*eyeZ)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// TransformPoint multiplies the homogeneous point (x, y, z, 1) by m.
//
// Parameters:
//   - m: column-major 4x4 matrix
//   - p: the point to transform
//
// Returns:
//   - [4]float32: the transformed homogeneous point (w not divided out)
func TransformPoint(m []float32, p [3]float32) [4]float32 {
	return [4]float32{
		m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12],
		m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13],
		m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14],
		m[3]*p[0] + m[7]*p[1] + m[11]*p[2] + m[15],
	}
}

// TransformDirection multiplies the direction (x, y, z, 0) by the upper 3x3 of m.
// Translation is ignored and the result is not normalized.
//
// Parameters:
//   - m: column-major 4x4 matrix
//   - d: the direction to transform
//
// Returns:
//   - [3]float32: the transformed direction
func TransformDirection(m []float32, d [3]float32) [3]float32 {
	return [3]float32{
		m[0]*d[0] + m[4]*d[1] + m[8]*d[2],
		m[1]*d[0] + m[5]*d[1] + m[9]*d[2],
		m[2]*d[0] + m[6]*d[1] + m[10]*d[2],
	}
}

// NormalMatrix writes the inverse transpose of the upper 3x3 of m into out as a
// 4x4 column-major matrix. Falls back to m itself when m is singular.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - m: column-major model matrix
func NormalMatrix(out, m []float32) {
	var inv [16]float32
	if !Invert4(inv[:], m) {
		copy(out, m[:16])
		return
	}
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[c*4+r] = inv[r*4+c]
		}
	}
}

// Dot3 returns the dot product of a and b.
func Dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross3 returns the cross product a x b.
func Cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Length3 returns the Euclidean length of v.
func Length3(v [3]float32) float32 {
	return math32.Sqrt(Dot3(v, v))
}

// Normalize3 returns v scaled to unit length. A zero vector is returned unchanged.
func Normalize3(v [3]float32) [3]float32 {
	l := Length3(v)
	if l == 0 {
		return v
	}
	inv := 1 / l
	return [3]float32{v[0] * inv, v[1] * inv, v[2] * inv}
}

// Sub3 returns a - b.
func Sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Add3 returns a + b.
func Add3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Scale3 returns v * s.
func Scale3(v [3]float32, s float32) [3]float32 {
	return [3]float32{v[0] * s, v[1] * s, v[2] * s}
}

// RotateAxis rotates v around the unit axis by angle radians (Rodrigues' formula).
//
// Parameters:
//   - v: the vector to rotate
//   - axis: unit rotation axis
//   - angle: rotation angle in radians
//
// Returns:
//   - [3]float32: the rotated vector
func RotateAxis(v, axis [3]float32, angle float32) [3]float32 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	k := Cross3(axis, v)
	d := Dot3(axis, v) * (1 - c)
	return [3]float32{
		v[0]*c + k[0]*s + axis[0]*d,
		v[1]*c + k[1]*s + axis[1]*d,
		v[2]*c + k[2]*s + axis[2]*d,
	}
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}
