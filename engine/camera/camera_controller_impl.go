package camera

import (
	"sync"

	"github.com/chewxy/math32"
)

// orbitPose is the spherical state that Reset returns to.
type orbitPose struct {
	target    [3]float32
	radius    float32
	azimuth   float32
	elevation float32
}

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	// Camera position (computed from target + spherical coords)
	position [3]float32
	target   [3]float32

	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed float32
	zoomSpeed  float32

	initial orbitPose
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates an orbit controller. The default pose puts the eye at
// (0, 80, 200) looking at the origin.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},

		minRadius:    20.0,
		maxRadius:    800.0,
		minElevation: -math32.Pi/2 + 0.05,
		maxElevation: math32.Pi/2 - 0.05,

		orbitSpeed: 0.03,
		zoomSpeed:  10.0,
	}
	cc.setEye([3]float32{0, 80, 200})

	for _, option := range options {
		option(cc)
	}

	cc.clamp()
	cc.initial = orbitPose{
		target:    cc.target,
		radius:    cc.radius,
		azimuth:   cc.azimuth,
		elevation: cc.elevation,
	}
	cc.updatePosition()
	return cc
}

// setEye derives spherical coordinates so the eye sits at the given world position.
func (cc *cameraControllerImpl) setEye(eye [3]float32) {
	dx := eye[0] - cc.target[0]
	dy := eye[1] - cc.target[1]
	dz := eye[2] - cc.target[2]
	cc.radius = math32.Sqrt(dx*dx + dy*dy + dz*dz)
	if cc.radius == 0 {
		return
	}
	cc.azimuth = math32.Atan2(dx, dz)
	cc.elevation = math32.Asin(dy / cc.radius)
}

// clamp keeps radius and elevation inside their bounds. Caller must hold the mutex.
func (cc *cameraControllerImpl) clamp() {
	cc.radius = min(max(cc.radius, cc.minRadius), cc.maxRadius)
	cc.elevation = min(max(cc.elevation, cc.minElevation), cc.maxElevation)
}

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	sinElev, cosElev := math32.Sincos(cc.elevation)
	sinAzim, cosAzim := math32.Sincos(cc.azimuth)

	cc.position[0] = cc.target[0] + cc.radius*cosElev*sinAzim
	cc.position[1] = cc.target[1] + cc.radius*sinElev
	cc.position[2] = cc.target[2] + cc.radius*cosElev*cosAzim
}

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target[0], cc.target[1], cc.target[2]
}

func (cc *cameraControllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = [3]float32{x, y, z}
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius -= delta * cc.zoomSpeed
	cc.clamp()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitLeft() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth -= cc.orbitSpeed
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitRight() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth += cc.orbitSpeed
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation += cc.orbitSpeed
	cc.clamp()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitDown() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation -= cc.orbitSpeed
	cc.clamp()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Reset() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = cc.initial.target
	cc.radius = cc.initial.radius
	cc.azimuth = cc.initial.azimuth
	cc.elevation = cc.initial.elevation
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}
