package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/bridgeworks/internal/predict"
	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 80), B: 0x94, A: 0xff})
		}
	}
	return img
}

func TestEncoderForRoundTrips(t *testing.T) {
	decoders := map[string]func(*bytes.Reader) (image.Image, error){
		"out.png":  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		"OUT.TGA":  func(r *bytes.Reader) (image.Image, error) { return tga.Decode(r) },
		"out.webp": func(r *bytes.Reader) (image.Image, error) { return webp.Decode(r) },
	}
	src := testImage()
	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			encode, err := encoderFor(name)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, encode(&buf, src))
			img, err := decode(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, src.Bounds().Size(), img.Bounds().Size())

			r, g, b, _ := img.At(3, 2).RGBA()
			assert.Equal(t, [3]uint32{180, 160, 0x94}, [3]uint32{r >> 8, g >> 8, b >> 8})
		})
	}
}

func TestEncoderForRejectsUnknownExtension(t *testing.T) {
	_, err := encoderFor("frame.jpg")
	assert.ErrorContains(t, err, `".jpg"`)
	_, err = encoderFor("frame")
	assert.Error(t, err)
}

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "bridgeworks.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[log]
level = "warn"

[render]
supersample = 1
workers = 2
shadow_map_size = 64
`), 0o644))
	return path
}

func TestSnapshotCommandWritesImage(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "site.png")

	root := newRootCommand()
	root.SetArgs([]string{
		"--config", writeConfig(t, dir),
		"snapshot", "--time", "1500", "--out", out, "--width", "40", "--height", "30",
	})
	root.SetErr(&bytes.Buffer{})
	require.NoError(t, root.Execute())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(40, 30), img.Bounds().Size())
}

func TestSnapshotCommandRejectsFormatBeforeRendering(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "site.bmp")

	root := newRootCommand()
	root.SetArgs([]string{"snapshot", "--out", out})
	root.SetErr(&bytes.Buffer{})
	assert.Error(t, root.Execute())
	assert.NoFileExists(t, out)
}

func TestFitCommandWritesModel(t *testing.T) {
	out := filepath.Join(t.TempDir(), "models.toml")

	root := newRootCommand()
	root.SetArgs([]string{
		"--log-level", "error",
		"fit", "--data", "../../internal/predict/testdata/beams_labelled.csv", "--out", out, "--version", "cli",
	})
	root.SetErr(&bytes.Buffer{})
	require.NoError(t, root.Execute())

	m, err := predict.LoadModel(out)
	require.NoError(t, err)
	assert.Equal(t, "cli", m.Version)
	assert.Len(t, m.Regressors, len(predict.Targets))
}

func TestFitCommandRequiresData(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"fit"})
	root.SetErr(&bytes.Buffer{})
	assert.Error(t, root.Execute())
}
