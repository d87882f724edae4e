package raster

import (
	"testing"

	"github.com/Carmen-Shannon/bridgeworks/common"
	"github.com/Carmen-Shannon/bridgeworks/engine/light"
	"github.com/Carmen-Shannon/bridgeworks/engine/model"
	"github.com/Carmen-Shannon/bridgeworks/engine/renderer/material"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testW, testH = 64, 48

func lookFrom(eye [3]float32) [16]float32 {
	var view, proj, vp [16]float32
	common.LookAt(view[:], eye[0], eye[1], eye[2], 0, 0, 0, 0, 1, 0)
	common.Perspective(proj[:], common.DegToRad(60), float32(testW)/testH, 0.1, 100)
	common.Mul4(vp[:], proj[:], view[:])
	return vp
}

func placed(x, y, z, rx float32) [16]float32 {
	var m [16]float32
	common.BuildModelMatrix(m[:], x, y, z, rx, 0, 0, 1, 1, 1)
	return m
}

func glowing(hex uint32, opts ...material.MaterialBuilderOption) material.Material {
	opts = append([]material.MaterialBuilderOption{material.WithColor(0x000000), material.WithEmissive(hex)}, opts...)
	return material.NewMaterial(opts...)
}

func pixelOf(vp [16]float32, p [3]float32) (int, int) {
	c := common.TransformPoint(vp[:], p)
	x := (c[0]/c[3]*0.5 + 0.5) * testW
	y := (0.5 - c[1]/c[3]*0.5) * testH
	return int(x), int(y)
}

func rgb(r Rasterizer, f *Frame, x, y int) uint32 {
	img := r.Render(f)
	c := img.RGBAAt(x, y)
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func TestEmptyFrameIsBackground(t *testing.T) {
	r := NewRasterizer(testW, testH, WithWorkers(2))
	defer r.Release()

	img := r.Render(&Frame{ViewProjection: lookFrom([3]float32{0, 0, 10}), Background: common.ColorFromHex(0x87ceeb)})
	require.Equal(t, testW, img.Bounds().Dx())
	for _, p := range [][2]int{{0, 0}, {testW - 1, testH - 1}, {testW / 2, testH / 2}} {
		c := img.RGBAAt(p[0], p[1])
		assert.Equal(t, [4]uint8{0x87, 0xce, 0xeb, 0xff}, [4]uint8{c.R, c.G, c.B, c.A})
	}
}

func TestNearerSurfaceWins(t *testing.T) {
	r := NewRasterizer(testW, testH, WithWorkers(3))
	defer r.Release()

	plane := model.NewPlane(4, 4)
	f := &Frame{
		ViewProjection: lookFrom([3]float32{0, 0, 10}),
		Eye:            [3]float32{0, 0, 10},
		Items: []Item{
			{Model: plane, Material: glowing(0x00ff00), World: placed(0, 0, 2, 0)},
			{Model: plane, Material: glowing(0xff0000), World: placed(0, 0, 0, 0)},
		},
	}
	assert.Equal(t, uint32(0x00ff00), rgb(r, f, testW/2, testH/2))
	assert.Equal(t, uint32(0x000000), rgb(r, f, 0, 0))
}

func TestBackFacesAreCulled(t *testing.T) {
	r := NewRasterizer(testW, testH)
	defer r.Release()

	f := &Frame{
		ViewProjection: lookFrom([3]float32{0, 0, -10}),
		Eye:            [3]float32{0, 0, -10},
		Background:     common.ColorFromHex(0x102030),
		Items:          []Item{{Model: model.NewPlane(4, 4), Material: glowing(0xffffff), World: placed(0, 0, 0, 0)}},
	}
	assert.Equal(t, uint32(0x102030), rgb(r, f, testW/2, testH/2))
}

func TestTransparentBlendsOverOpaque(t *testing.T) {
	r := NewRasterizer(testW, testH)
	defer r.Release()

	plane := model.NewPlane(4, 4)
	f := &Frame{
		ViewProjection: lookFrom([3]float32{0, 0, 10}),
		Eye:            [3]float32{0, 0, 10},
		Items: []Item{
			{Model: plane, Material: glowing(0x0000ff, material.WithTransparent(0.5)), World: placed(0, 0, 1, 0)},
			{Model: plane, Material: glowing(0xff0000), World: placed(0, 0, 0, 0)},
		},
	}
	er, eg, eb := common.Color{R: 0.5, G: 0, B: 0.5}.SRGB8()
	want := uint32(er)<<16 | uint32(eg)<<8 | uint32(eb)
	got := rgb(r, f, testW/2, testH/2)
	assert.InDelta(t, want>>16, got>>16, 1)
	assert.InDelta(t, want&0xff, got&0xff, 1)
	assert.Equal(t, 2, r.Stats().Transparent)
}

func TestTransparentBehindOpaqueIsHidden(t *testing.T) {
	r := NewRasterizer(testW, testH)
	defer r.Release()

	plane := model.NewPlane(4, 4)
	f := &Frame{
		ViewProjection: lookFrom([3]float32{0, 0, 10}),
		Eye:            [3]float32{0, 0, 10},
		Items: []Item{
			{Model: plane, Material: glowing(0x0000ff, material.WithTransparent(0.5)), World: placed(0, 0, -1, 0)},
			{Model: plane, Material: glowing(0xff0000), World: placed(0, 0, 0, 0)},
		},
	}
	assert.Equal(t, uint32(0xff0000), rgb(r, f, testW/2, testH/2))
}

func TestFogReachesFullColorPastFar(t *testing.T) {
	r := NewRasterizer(testW, testH)
	defer r.Release()

	f := &Frame{
		ViewProjection: lookFrom([3]float32{0, 0, 50}),
		Eye:            [3]float32{0, 0, 50},
		Fog:            &Fog{Color: common.ColorFromHex(0x87ceeb), Near: 10, Far: 20},
		Items:          []Item{{Model: model.NewPlane(40, 40), Material: glowing(0xffffff), World: placed(0, 0, 0, 0)}},
	}
	assert.Equal(t, uint32(0x87ceeb), rgb(r, f, testW/2, testH/2))

	f.Fog = &Fog{Color: common.ColorFromHex(0x87ceeb), Near: 100, Far: 200}
	assert.Equal(t, uint32(0xffffff), rgb(r, f, testW/2, testH/2))
}

func TestSmoothstep(t *testing.T) {
	assert.Equal(t, float32(0), smoothstep(10, 20, 5))
	assert.Equal(t, float32(1), smoothstep(10, 20, 25))
	assert.InDelta(t, 0.5, smoothstep(10, 20, 15), 1e-6)
}

func TestDirectionalLightAndShadow(t *testing.T) {
	r := NewRasterizer(testW, testH, WithShadowMapSize(512), WithWorkers(2))
	defer r.Release()

	eye := [3]float32{0, 40, 20}
	vp := lookFrom(eye)
	sun := light.NewLight(light.LightTypeDirectional,
		light.WithPosition(0, 100, 0),
		light.WithCastsShadows(true),
		light.WithShadowFrustum(-30, 30, -30, 30, 0.5, 200),
	)
	f := &Frame{
		ViewProjection: vp,
		Eye:            eye,
		Lights:         []light.Light{sun},
		Items: []Item{
			{
				Model:         model.NewPlane(100, 100),
				Material:      material.NewMaterial(material.WithColor(0xffffff)),
				World:         placed(0, 0, 0, -math32.Pi/2),
				ReceiveShadow: true,
			},
			{
				Model:      model.NewBox(4, 4, 4),
				Material:   material.NewMaterial(material.WithColor(0xffffff)),
				World:      placed(0, 10, 0, 0),
				CastShadow: true,
			},
		},
	}

	sx, sy := pixelOf(vp, [3]float32{0, 0, 0})
	lx, ly := pixelOf(vp, [3]float32{12, 0, 0})
	img := r.Render(f)
	shadowed := img.RGBAAt(sx, sy)
	lit := img.RGBAAt(lx, ly)

	assert.Less(t, shadowed.R, uint8(20))
	assert.Greater(t, lit.R, uint8(200))
	assert.Equal(t, 1, r.Stats().ShadowMaps)
}

func TestAmbientOnlyLightsEveryFace(t *testing.T) {
	r := NewRasterizer(testW, testH)
	defer r.Release()

	amb := light.NewLight(light.LightTypeAmbient, light.WithColor(0xffffff), light.WithIntensity(1))
	f := &Frame{
		ViewProjection: lookFrom([3]float32{0, 0, 10}),
		Eye:            [3]float32{0, 0, 10},
		Lights:         []light.Light{amb},
		Items:          []Item{{Model: model.NewPlane(4, 4), Material: material.NewMaterial(material.WithColor(0x808080)), World: placed(0, 0, 0, 0)}},
	}
	assert.Equal(t, uint32(0x808080), rgb(r, f, testW/2, testH/2))
}

func TestFrustumCulling(t *testing.T) {
	r := NewRasterizer(testW, testH)
	defer r.Release()

	f := &Frame{
		ViewProjection: lookFrom([3]float32{0, 0, 10}),
		Eye:            [3]float32{0, 0, 10},
		Items: []Item{
			{Model: model.NewBox(1, 1, 1), Material: glowing(0xffffff), World: placed(500, 0, 0, 0)},
			{Model: model.NewBox(1, 1, 1), Material: glowing(0xffffff), World: placed(0, 0, 0, 0)},
		},
	}
	r.Render(f)
	st := r.Stats()
	assert.Equal(t, 2, st.Items)
	assert.Equal(t, 1, st.Culled)
	assert.Greater(t, st.Triangles, 0)
}

func TestRenderIsIndependentOfWorkerCount(t *testing.T) {
	sun := light.NewLight(light.LightTypeDirectional, light.WithPosition(10, 20, 10), light.WithCastsShadows(true), light.WithShadowMapSize(256))
	f := &Frame{
		ViewProjection: lookFrom([3]float32{6, 5, 10}),
		Eye:            [3]float32{6, 5, 10},
		Lights:         []light.Light{sun, light.NewLight(light.LightTypeAmbient, light.WithIntensity(0.3))},
		Items: []Item{
			{Model: model.NewCylinder(1, 1, 4, 16), Material: material.NewMaterial(material.WithColor(0xffaa00), material.WithMetalness(0.5)), World: placed(0, 0, 0, 0.3), CastShadow: true},
			{Model: model.NewPlane(20, 20), Material: material.NewMaterial(material.WithType(material.MaterialTypePhong)), World: placed(0, -2, 0, -math32.Pi/2), ReceiveShadow: true},
		},
	}

	a := NewRasterizer(testW, testH, WithWorkers(1))
	defer a.Release()
	b := NewRasterizer(testW, testH, WithWorkers(4), WithSupersample(1))
	defer b.Release()

	assert.Equal(t, a.Render(f).Pix, b.Render(f).Pix)
}

func TestSupersampleResolvesToOutputSize(t *testing.T) {
	r := NewRasterizer(testW, testH, WithSupersample(2))
	defer r.Release()

	img := r.Render(&Frame{ViewProjection: lookFrom([3]float32{0, 0, 10}), Background: common.ColorFromHex(0x336699)})
	assert.Equal(t, testW, img.Bounds().Dx())
	assert.Equal(t, testH, img.Bounds().Dy())
	c := img.RGBAAt(testW/2, testH/2)
	assert.InDelta(t, 0x33, c.R, 1)
	assert.InDelta(t, 0x99, c.B, 1)

	r.Resize(32, 16)
	w, h := r.Size()
	assert.Equal(t, [2]int{32, 16}, [2]int{w, h})
	r.Resize(0, 10)
	w, _ = r.Size()
	assert.Equal(t, 32, w)
}

func TestClipNear(t *testing.T) {
	v := func(z float32) clipVertex { return clipVertex{clip: [4]float32{0, 0, z, 1}} }

	assert.Len(t, clipNear([3]clipVertex{v(1), v(1), v(1)}, nil), 1)
	assert.Len(t, clipNear([3]clipVertex{v(-1), v(-1), v(-1)}, nil), 0)
	assert.Len(t, clipNear([3]clipVertex{v(1), v(1), v(-1)}, nil), 2)

	one := clipNear([3]clipVertex{v(1), v(-1), v(-1)}, nil)
	require.Len(t, one, 1)
	for _, cv := range one[0] {
		assert.GreaterOrEqual(t, cv.clip[2], float32(0))
	}
}

func TestMirroredMeshKeepsFrontFaces(t *testing.T) {
	r := NewRasterizer(testW, testH)
	defer r.Release()

	var world [16]float32
	common.BuildModelMatrix(world[:], 0, 0, 0, 0, 0, 0, 1, -1, 1)
	f := &Frame{
		ViewProjection: lookFrom([3]float32{0, 0, 10}),
		Eye:            [3]float32{0, 0, 10},
		Items:          []Item{{Model: model.NewPlane(4, 4), Material: glowing(0xff0000), World: world}},
	}
	assert.Equal(t, uint32(0xff0000), rgb(r, f, testW/2, testH/2))
	assert.Less(t, determinant3(world[:]), float32(0))
}
