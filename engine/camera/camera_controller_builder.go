package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithEye places the eye at a world position, deriving radius and angles relative to the target.
// Apply after WithTarget when both are given.
//
// Parameters:
//   - x, y, z: world-space eye position
//
// Returns:
//   - CameraControllerOption: functional option to set the eye position
func WithEye(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.setEye([3]float32{x, y, z})
	}
}

// WithTarget sets the look-at/pivot point.
//
// Parameters:
//   - x, y, z: world-space target coordinates
//
// Returns:
//   - CameraControllerOption: functional option to set the target position
func WithTarget(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = [3]float32{x, y, z}
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - lo: minimum zoom distance
//   - hi: maximum zoom distance
//
// Returns:
//   - CameraControllerOption: functional option to set radius bounds
func WithRadiusBounds(lo, hi float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius = lo
		cc.maxRadius = hi
	}
}

// WithOrbitSpeed sets the keyboard orbit speed.
//
// Parameters:
//   - speed: radians per orbit call
//
// Returns:
//   - CameraControllerOption: functional option to set orbit speed
func WithOrbitSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.orbitSpeed = speed
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
//
// Parameters:
//   - speed: world units per scroll step
//
// Returns:
//   - CameraControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}
