package site

import (
	"math"
)

// Pose is the animated state of one crane.
type Pose struct {
	Yaw         float32
	CableScaleY float32
	CableY      float32
	HookY       float32
	BlockY      float32
}

// WaterOpacity returns the water opacity at t milliseconds. It stays within [0.5, 0.7].
func WaterOpacity(t float64) float32 {
	return float32(0.6 + math.Sin(t*0.001)*0.1)
}

// HookHeight returns how far crane i has lifted its load at t milliseconds, within [-8, 8].
func HookHeight(t float64, i int) float32 {
	return float32(math.Sin(t*0.001+float64(i)*0.5) * 8)
}

// CranePose returns the pose of crane i at t milliseconds.
//
// Parameters:
//   - t: timestamp in milliseconds
//   - i: crane index
//
// Returns:
//   - Pose: the crane pose
func CranePose(t float64, i int) Pose {
	h := HookHeight(t, i)
	return Pose{
		Yaw:         float32(math.Sin(t*0.0005+float64(i)) * 0.5),
		CableScaleY: 1 + h*0.1,
		CableY:      cableRestY - h*0.5,
		HookY:       hookRestY - h,
		BlockY:      blockRestY - h,
	}
}
