package console

import (
	"image"
	"image/color"
	"image/png"
	"io"
)

// EncodePNG writes the visible region of b as a PNG image. Scanline padding
// beyond Width is dropped; the unused fourth pixel byte becomes full alpha.
func EncodePNG(w io.Writer, b Bitmap) error {
	img := image.NewRGBA(image.Rect(0, 0, b.Width(), b.Height()))
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			p := pixelAt(b, x, y)
			img.SetRGBA(x, y, color.RGBA{R: p[2], G: p[1], B: p[0], A: 0xFF})
		}
	}
	return png.Encode(w, img)
}
