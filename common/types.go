// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/chewxy/math32"
)

// Color is an RGB color with components in [0, 1], stored in linear space for lighting math.
type Color struct {
	R, G, B float32
}

// srgbToLinear is a lookup table decoding 8-bit sRGB channel values to linear intensity.
var srgbToLinear [256]float32

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = SRGBToLinear(float32(i) / 255)
	}
}

// ColorFromHex converts a 0xRRGGBB sRGB value into a linear Color.
//
// Parameters:
//   - hex: the packed sRGB color
//
// Returns:
//   - Color: the color in linear space
func ColorFromHex(hex uint32) Color {
	return Color{
		R: srgbToLinear[(hex>>16)&0xff],
		G: srgbToLinear[(hex>>8)&0xff],
		B: srgbToLinear[hex&0xff],
	}
}

// Hex encodes the color back to a 0xRRGGBB sRGB value.
func (c Color) Hex() uint32 {
	r, g, b := c.SRGB8()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// SRGB8 encodes the color as 8-bit sRGB channels, clamping out-of-range values.
func (c Color) SRGB8() (r, g, b uint8) {
	return encode8(c.R), encode8(c.G), encode8(c.B)
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Add returns the channel-wise sum of c and o.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Mul returns the channel-wise product of c and o.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Lerp blends from c toward o by t in [0, 1].
func (c Color) Lerp(o Color, t float32) Color {
	return Color{
		c.R + (o.R-c.R)*t,
		c.G + (o.G-c.G)*t,
		c.B + (o.B-c.B)*t,
	}
}

// SRGBToLinear decodes one sRGB channel in [0, 1] to linear.
func SRGBToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math32.Pow((v+0.055)/1.055, 2.4)
}

// LinearToSRGB encodes one linear channel in [0, 1] to sRGB.
func LinearToSRGB(v float32) float32 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math32.Pow(v, 1/2.4) - 0.055
}

func encode8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(LinearToSRGB(v)*255 + 0.5)
}
