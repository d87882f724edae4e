package raster

import (
	"image"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/bridgeworks/common"
	"github.com/Carmen-Shannon/bridgeworks/engine/light"
)

type rasterizer struct {
	mu *sync.Mutex

	width, height int
	supersample   int
	workers       int
	bandsPerCore  int
	shadowSize    int

	pool worker.DynamicWorkerPool

	color []common.Color
	depth []float32
	hi    *image.RGBA
	out   *image.RGBA

	shadows map[light.Light]*shadowMap
	stats   Stats
}

// Rasterizer renders a Frame into an sRGB image on the CPU.
//
// Opaque geometry is depth tested and shaded per pixel. Transparent geometry is then blended back to
// front without writing depth. Horizontal bands of the image are rendered concurrently on a worker pool;
// each band owns its rows, so results do not depend on scheduling.
type Rasterizer interface {
	// Render draws f and returns the resolved image. The image is owned by the rasterizer
	// and is overwritten by the next call.
	//
	// Parameters:
	//   - f: the frame description
	//
	// Returns:
	//   - *image.RGBA: the rendered image at the output size
	Render(f *Frame) *image.RGBA

	// Resize changes the output size. Non-positive sizes are ignored.
	//
	// Parameters:
	//   - width, height: the new output size in pixels
	Resize(width, height int)

	// Size returns the output size in pixels.
	//
	// Returns:
	//   - width, height: the output size
	Size() (width, height int)

	// Stats returns counters for the last rendered frame.
	//
	// Returns:
	//   - Stats: the counters
	Stats() Stats

	// Release stops the worker pool. The rasterizer must not be used afterward.
	Release()
}

var _ Rasterizer = &rasterizer{}

// NewRasterizer creates a Rasterizer for the given output size.
//
// Parameters:
//   - width, height: the output size in pixels
//   - options: functional options to configure the rasterizer
//
// Returns:
//   - Rasterizer: the new rasterizer
func NewRasterizer(width, height int, options ...RasterizerBuilderOption) Rasterizer {
	r := &rasterizer{
		mu:           &sync.Mutex{},
		supersample:  1,
		workers:      max(runtime.NumCPU()-1, 1),
		bandsPerCore: 4,
		shadows:      make(map[light.Light]*shadowMap),
	}
	for _, option := range options {
		option(r)
	}
	r.pool = worker.NewDynamicWorkerPool(r.workers, 256, 1*time.Second)
	r.allocate(max(width, 1), max(height, 1))
	return r
}

func (r *rasterizer) allocate(width, height int) {
	r.width, r.height = width, height
	w, h := width*r.supersample, height*r.supersample
	r.color = make([]common.Color, w*h)
	r.depth = make([]float32, w*h)
	r.hi = image.NewRGBA(image.Rect(0, 0, w, h))
	if r.supersample > 1 {
		r.out = image.NewRGBA(image.Rect(0, 0, width, height))
	} else {
		r.out = r.hi
	}
}

func (r *rasterizer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if width == r.width && height == r.height {
		return
	}
	r.allocate(width, height)
}

func (r *rasterizer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *rasterizer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *rasterizer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pool.Stop()
}

func (r *rasterizer) Render(f *Frame) *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, h := r.width*r.supersample, r.height*r.supersample
	bands := r.workers * r.bandsPerCore
	stats := Stats{Items: len(f.Items)}

	lit := newLighting(f)
	r.renderShadows(f, lit, bands, &stats)

	opaque, transparent := r.transform(f, w, h, &stats)
	stats.Transparent = len(transparent)

	background := f.Background
	runBands(r.pool, bands, h, func(y0, y1 int) {
		for i := y0 * w; i < y1*w; i++ {
			r.color[i] = background
			r.depth[i] = 1
		}
		for i := range opaque {
			t := &opaque[i]
			rasterize(t, y0, y1, true, func(fr *fragment) {
				if fr.z < 0 || fr.z > 1 {
					return
				}
				p := fr.y*w + fr.x
				if fr.z >= r.depth[p] {
					return
				}
				r.depth[p] = fr.z
				r.color[p] = lit.shade(t.surface, fr)
			})
		}
		for i := range transparent {
			t := &transparent[i]
			alpha := t.surface.mat.opacity
			rasterize(t, y0, y1, true, func(fr *fragment) {
				if fr.z < 0 || fr.z > 1 {
					return
				}
				p := fr.y*w + fr.x
				if fr.z >= r.depth[p] {
					return
				}
				r.color[p] = r.color[p].Lerp(lit.shade(t.surface, fr), alpha)
			})
		}
		encodeRows(r.hi, r.color, w, y0, y1)
	})

	r.stats = stats
	return resolve(r.out, r.hi)
}

// renderShadows refreshes the depth map of every enabled directional light that casts shadows.
func (r *rasterizer) renderShadows(f *Frame, lit *lighting, bands int, stats *Stats) {
	si := 0
	for _, src := range f.Lights {
		if !src.Enabled() || src.Type() != light.LightTypeDirectional {
			continue
		}
		idx := si
		si++
		if !src.CastsShadows() {
			continue
		}
		cfg := src.Shadow()
		if r.shadowSize > 0 {
			cfg.MapSize = r.shadowSize
		}
		sm, ok := r.shadows[src]
		if !ok || sm.size != cfg.MapSize {
			sm = newShadowMap(cfg, src.ShadowViewProjection())
			r.shadows[src] = sm
		}
		sm.viewProj = src.ShadowViewProjection()
		sm.render(r.pool, bands, f.Items)
		lit.suns[idx].shadow = sm
		stats.ShadowMaps++
	}
}

// transform culls items against the view frustum and turns their triangles into screen space.
// Items are processed concurrently; each writes only its own slot.
func (r *rasterizer) transform(f *Frame, w, h int, stats *Stats) (opaque, transparent []triangle) {
	frustum := common.ExtractFrustumFromMatrix(f.ViewProjection[:])

	perItem := make([][]triangle, len(f.Items))
	visible := make([]bool, len(f.Items))

	var wg sync.WaitGroup
	for i := range f.Items {
		it := &f.Items[i]
		if it.Model == nil || it.Material == nil {
			continue
		}
		center, radius := it.Model.Bounds()
		wc := common.TransformPoint(it.World[:], center)
		if !frustum.IntersectsSphere([3]float32{wc[0], wc[1], wc[2]}, radius*common.MaxScale(it.World[:])) {
			continue
		}
		visible[i] = true

		wg.Add(1)
		slot := i
		r.pool.SubmitTask(worker.Task{
			ID: slot,
			Do: func() (any, error) {
				defer wg.Done()
				perItem[slot] = transformItem(&f.Items[slot], f.ViewProjection, f.Eye, w, h)
				return nil, nil
			},
		})
	}
	wg.Wait()

	for i, tris := range perItem {
		if !visible[i] {
			if f.Items[i].Model != nil {
				stats.Culled++
			}
			continue
		}
		stats.Triangles += len(tris)
		if len(tris) > 0 && tris[0].surface.mat.transparent {
			transparent = append(transparent, tris...)
		} else {
			opaque = append(opaque, tris...)
		}
	}

	sort.SliceStable(transparent, func(a, b int) bool {
		return transparent[a].depth > transparent[b].depth
	})
	return opaque, transparent
}

func transformItem(it *Item, viewProj [16]float32, eye [3]float32, w, h int) []triangle {
	var mvp, normalMatrix [16]float32
	common.Mul4(mvp[:], viewProj[:], it.World[:])
	common.NormalMatrix(normalMatrix[:], it.World[:])

	center, _ := it.Model.Bounds()
	wc := common.TransformPoint(it.World[:], center)
	s := &surface{
		mat:           snapshot(it.Material),
		receiveShadow: it.ReceiveShadow,
	}
	dist := common.Length3(common.Sub3([3]float32{wc[0], wc[1], wc[2]}, eye))
	// A negative scale mirrors the mesh and turns its front faces clockwise.
	mirrored := determinant3(it.World[:]) < 0

	verts := it.Model.Vertices()
	idx := it.Model.Indices()
	out := make([]triangle, 0, len(idx)/3)
	var clipped [][3]clipVertex
	for i := 0; i+2 < len(idx); i += 3 {
		var in [3]clipVertex
		for k := 0; k < 3; k++ {
			vx := verts[idx[i+k]]
			in[k].clip = common.TransformPoint(mvp[:], vx.Position)
			wp := common.TransformPoint(it.World[:], vx.Position)
			in[k].world = [3]float32{wp[0], wp[1], wp[2]}
			in[k].normal = common.TransformDirection(normalMatrix[:], vx.Normal)
		}
		if mirrored {
			in[1], in[2] = in[2], in[1]
		}
		clipped = clipNear(in, clipped[:0])
		for _, c := range clipped {
			sv := [3]screenVertex{project(c[0], w, h), project(c[1], w, h), project(c[2], w, h)}
			t, ok := setup(sv, true, w, h)
			if !ok {
				continue
			}
			t.surface = s
			t.depth = dist
			out = append(out, t)
		}
	}
	return out
}

// determinant3 returns the determinant of the upper-left 3x3 of a column-major matrix.
func determinant3(m []float32) float32 {
	return m[0]*(m[5]*m[10]-m[9]*m[6]) -
		m[4]*(m[1]*m[10]-m[9]*m[2]) +
		m[8]*(m[1]*m[6]-m[5]*m[2])
}
