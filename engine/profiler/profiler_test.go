package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickLogsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	p := NewProfiler(slog.New(slog.NewJSONHandler(&buf, nil)))
	p.updateInterval = 10 * time.Millisecond

	assert.False(t, p.Tick())
	assert.Empty(t, buf.String())

	p.lastTime = time.Now().Add(-20 * time.Millisecond)
	assert.True(t, p.Tick())
	assert.Contains(t, buf.String(), `"fps"`)
	assert.Equal(t, 0, p.frameCount)
}
