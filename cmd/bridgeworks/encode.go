package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

type encodeFunc func(w io.Writer, img image.Image) error

// encoderFor picks the image encoder from the output file extension.
func encoderFor(path string) (encodeFunc, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return png.Encode, nil
	case ".webp":
		return func(w io.Writer, img image.Image) error {
			return nativewebp.Encode(w, img, nil)
		}, nil
	case ".tga":
		return tga.Encode, nil
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q: use .png, .webp or .tga", ext)
	}
}
