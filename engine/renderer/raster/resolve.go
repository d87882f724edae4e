package raster

import (
	"image"

	"github.com/Carmen-Shannon/bridgeworks/common"
	"golang.org/x/image/draw"
)

// encodeRows writes linear colors for rows [y0, y1) into dst as opaque 8-bit sRGB.
func encodeRows(dst *image.RGBA, src []common.Color, width, y0, y1 int) {
	for y := y0; y < y1; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+width*4]
		for x := 0; x < width; x++ {
			r, g, b := src[y*width+x].SRGB8()
			row[x*4+0] = r
			row[x*4+1] = g
			row[x*4+2] = b
			row[x*4+3] = 0xff
		}
	}
}

// resolve downsamples a supersampled image into dst. When both are the same image it is a no-op.
func resolve(dst, src *image.RGBA) *image.RGBA {
	if dst == src {
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
