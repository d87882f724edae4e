package raster

import (
	"github.com/Carmen-Shannon/bridgeworks/common"
	"github.com/Carmen-Shannon/bridgeworks/engine/light"
	"github.com/chewxy/math32"
)

// sun is a directional light prepared for shading: direction toward the light and premultiplied radiance.
type sun struct {
	toLight  [3]float32
	radiance common.Color
	shadow   *shadowMap
}

// lighting is the per-frame light setup shared by every band.
type lighting struct {
	ambient common.Color
	suns    []sun
	eye     [3]float32
	fog     *Fog
}

func newLighting(f *Frame) *lighting {
	l := &lighting{eye: f.Eye, fog: f.Fog}
	for _, src := range f.Lights {
		if !src.Enabled() {
			continue
		}
		radiance := src.Color().Scale(src.Intensity())
		switch src.Type() {
		case light.LightTypeAmbient:
			l.ambient = l.ambient.Add(radiance)
		case light.LightTypeDirectional:
			l.suns = append(l.suns, sun{
				toLight:  common.Scale3(src.Direction(), -1),
				radiance: radiance,
			})
		}
	}
	return l
}

// shade evaluates the surface color at a fragment in linear space, including fog.
func (l *lighting) shade(s *surface, frag *fragment) common.Color {
	m := &s.mat
	n := common.Normalize3(frag.normal)
	v := common.Normalize3(common.Sub3(l.eye, frag.world))

	var out common.Color
	if m.phong {
		out = l.ambient.Mul(m.color)
	} else {
		out = l.ambient.Mul(m.color.Scale(1 - m.metalness))
	}

	for i := range l.suns {
		sn := &l.suns[i]
		dotNL := common.Dot3(n, sn.toLight)
		if dotNL <= 0 {
			continue
		}
		visibility := float32(1)
		if s.receiveShadow && sn.shadow != nil {
			visibility = sn.shadow.visibility(frag.world, dotNL)
			if visibility == 0 {
				continue
			}
		}
		irradiance := sn.radiance.Scale(dotNL * visibility)
		if m.phong {
			out = out.Add(irradiance.Mul(m.color.Add(blinnPhong(n, v, sn.toLight, m.specular, m.shininess))))
		} else {
			diffuse := m.color.Scale(1 - m.metalness)
			f0 := common.Color{R: 0.04, G: 0.04, B: 0.04}.Lerp(m.color, m.metalness)
			out = out.Add(irradiance.Mul(diffuse.Add(ggx(n, v, sn.toLight, f0, m.roughness))))
		}
	}

	out = out.Add(m.emissive)

	if l.fog != nil {
		out = out.Lerp(l.fog.Color, smoothstep(l.fog.Near, l.fog.Far, frag.w))
	}
	return out
}

func smoothstep(edge0, edge1, x float32) float32 {
	if edge1 <= edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := min(max((x-edge0)/(edge1-edge0), 0), 1)
	return t * t * (3 - 2*t)
}

func schlick(f0 common.Color, dotVH float32) common.Color {
	fresnel := math32.Exp2((-5.55473*dotVH - 6.98316) * dotVH)
	return f0.Scale(1 - fresnel).Add(common.Color{R: fresnel, G: fresnel, B: fresnel})
}

// ggx is the Cook-Torrance specular term with a correlated Smith visibility. The result is already
// scaled by pi so it pairs with radiance-times-cosine irradiance.
func ggx(n, v, l [3]float32, f0 common.Color, roughness float32) common.Color {
	roughness = max(roughness, 0.0525)
	alpha := roughness * roughness
	a2 := alpha * alpha

	h := common.Normalize3(common.Add3(l, v))
	dotNL := clamp01(common.Dot3(n, l))
	dotNV := clamp01(common.Dot3(n, v))
	dotNH := clamp01(common.Dot3(n, h))
	dotVH := clamp01(common.Dot3(v, h))

	gv := dotNL * math32.Sqrt(a2+(1-a2)*dotNV*dotNV)
	gl := dotNV * math32.Sqrt(a2+(1-a2)*dotNL*dotNL)
	vis := 0.5 / max(gv+gl, 1e-6)

	denom := dotNH*dotNH*(a2-1) + 1
	d := a2 / (denom * denom)

	return schlick(f0, dotVH).Scale(vis * d)
}

// blinnPhong is the normalized Blinn-Phong specular term.
func blinnPhong(n, v, l [3]float32, specular common.Color, shininess float32) common.Color {
	h := common.Normalize3(common.Add3(l, v))
	dotNH := clamp01(common.Dot3(n, h))
	dotVH := clamp01(common.Dot3(v, h))
	d := (shininess*0.5 + 1) * math32.Pow(dotNH, shininess)
	return schlick(specular, dotVH).Scale(0.25 * d)
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
