package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnimationRanges(t *testing.T) {
	for ms := 0.0; ms < 20000; ms += 37 {
		op := WaterOpacity(ms)
		assert.GreaterOrEqual(t, op, float32(0.5)-1e-6)
		assert.LessOrEqual(t, op, float32(0.7)+1e-6)

		for i := 0; i < len(CranePositions); i++ {
			p := CranePose(ms, i)
			h := HookHeight(ms, i)
			assert.GreaterOrEqual(t, p.Yaw, float32(-0.5))
			assert.LessOrEqual(t, p.Yaw, float32(0.5))
			assert.InDelta(t, 18-h, p.HookY, 1e-5)
			assert.InDelta(t, 14-h, p.BlockY, 1e-5)
			assert.InDelta(t, 28-0.5*h, p.CableY, 1e-5)
			assert.InDelta(t, 1+0.1*h, p.CableScaleY, 1e-5)
			assert.LessOrEqual(t, h, float32(8))
			assert.GreaterOrEqual(t, h, float32(-8))
		}
	}
}

func TestPoseAtZero(t *testing.T) {
	p := CranePose(0, 0)
	assert.Equal(t, float32(0), p.Yaw)
	assert.Equal(t, float32(18), p.HookY)
	assert.Equal(t, float32(1), p.CableScaleY)
	assert.InDelta(t, 0.6, WaterOpacity(0), 1e-6)
}
