package raster

import (
	"sync"

	"github.com/Carmen-Shannon/bridgeworks/common"
	"github.com/Carmen-Shannon/bridgeworks/engine/light"
	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/chewxy/math32"
)

// shadowMap is a depth image rendered from a directional light's orthographic frustum.
type shadowMap struct {
	size      int
	depth     []float32
	viewProj  [16]float32
	bias      float32
	slopeBias float32
	pcf       int
}

func newShadowMap(cfg light.Shadow, viewProj [16]float32) *shadowMap {
	size := max(cfg.MapSize, 1)
	return &shadowMap{
		size:      size,
		depth:     make([]float32, size*size),
		viewProj:  viewProj,
		bias:      cfg.Bias,
		slopeBias: cfg.SlopeBias,
		pcf:       cfg.PCFRadius,
	}
}

// render draws every shadow-casting item into the depth map in horizontal bands on the pool.
// Both faces are drawn so thin geometry such as cables still casts.
func (sm *shadowMap) render(pool worker.DynamicWorkerPool, bands int, items []Item) int {
	for i := range sm.depth {
		sm.depth[i] = 1
	}

	var tris []triangle
	var clipped [][3]clipVertex
	for _, it := range items {
		if !it.CastShadow || it.Model == nil {
			continue
		}
		var mvp [16]float32
		common.Mul4(mvp[:], sm.viewProj[:], it.World[:])
		verts := it.Model.Vertices()
		idx := it.Model.Indices()
		for i := 0; i+2 < len(idx); i += 3 {
			var in [3]clipVertex
			for k := 0; k < 3; k++ {
				in[k].clip = common.TransformPoint(mvp[:], verts[idx[i+k]].Position)
			}
			clipped = clipNear(in, clipped[:0])
			for _, c := range clipped {
				sv := [3]screenVertex{
					project(c[0], sm.size, sm.size),
					project(c[1], sm.size, sm.size),
					project(c[2], sm.size, sm.size),
				}
				if t, ok := setup(sv, false, sm.size, sm.size); ok {
					tris = append(tris, t)
				}
			}
		}
	}

	runBands(pool, bands, sm.size, func(y0, y1 int) {
		for i := range tris {
			rasterize(&tris[i], y0, y1, false, func(f *fragment) {
				if f.z < 0 || f.z > 1 {
					return
				}
				p := f.y*sm.size + f.x
				if f.z < sm.depth[p] {
					sm.depth[p] = f.z
				}
			})
		}
	})
	return len(tris)
}

// visibility returns the lit fraction in [0, 1] of a world position using percentage-closer filtering.
// Points outside the light frustum are fully lit.
func (sm *shadowMap) visibility(world [3]float32, dotNL float32) float32 {
	p := common.TransformPoint(sm.viewProj[:], world)
	z := p[2]
	if z < 0 || z > 1 {
		return 1
	}
	u := (p[0]*0.5 + 0.5) * float32(sm.size)
	v := (0.5 - p[1]*0.5) * float32(sm.size)
	cx, cy := int(math32.Floor(u)), int(math32.Floor(v))
	if cx < 0 || cy < 0 || cx >= sm.size || cy >= sm.size {
		return 1
	}

	tan := math32.Sqrt(max(1-dotNL*dotNL, 0)) / max(dotNL, 0.1)
	ref := z - (sm.bias + sm.slopeBias*tan)

	var lit, total float32
	for dy := -sm.pcf; dy <= sm.pcf; dy++ {
		y := min(max(cy+dy, 0), sm.size-1)
		for dx := -sm.pcf; dx <= sm.pcf; dx++ {
			x := min(max(cx+dx, 0), sm.size-1)
			total++
			if ref <= sm.depth[y*sm.size+x] {
				lit++
			}
		}
	}
	return lit / total
}

// runBands splits rows [0, height) into bands and runs fn for each on the pool, returning once all finish.
// A WaitGroup is the per-call barrier; the pool's own Wait blocks until workers go idle.
func runBands(pool worker.DynamicWorkerPool, bands, height int, fn func(y0, y1 int)) {
	bands = min(max(bands, 1), height)
	rows := (height + bands - 1) / bands

	var wg sync.WaitGroup
	for id, y0 := 0, 0; y0 < height; id, y0 = id+1, y0+rows {
		y1 := min(y0+rows, height)
		wg.Add(1)
		lo, hi := y0, y1
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				fn(lo, hi)
				return nil, nil
			},
		})
	}
	wg.Wait()
}
