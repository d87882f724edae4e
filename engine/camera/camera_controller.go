package camera

// CameraController owns the camera's positional state. The camera reads from it
// and computes view/projection matrices. Orbit controls move the eye on a sphere
// around the target; Reset restores the pose the controller was built with.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetTarget sets the look-at/pivot point and recomputes position from spherical coordinates.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// Zoom adjusts the orbit radius. Positive delta moves toward the target.
	//
	// Parameters:
	//   - delta: zoom amount scaled by the zoom speed
	Zoom(delta float32)

	// OrbitLeft rotates the camera left around the target by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the camera right around the target by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the camera upward by one step, clamped to the max elevation.
	OrbitUp()

	// OrbitDown tilts the camera downward by one step, clamped to the min elevation.
	OrbitDown()

	// Reset restores the initial radius, azimuth, elevation and target.
	Reset()

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// Azimuth returns the horizontal angle around the Y axis, 0 along +Z.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// Elevation returns the vertical angle above the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32
}
