package console

import (
	"bytes"
	"fmt"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bootheap/firmware"
)

func pixel(t *testing.T, b Bitmap, x, y int) uint32 {
	t.Helper()
	p := pixelAt(b, x, y)
	return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16
}

func Test_DrawPoint(t *testing.T) {
	im := NewImage(16, 16)

	require.NoError(t, DrawPoint(im, 0xFF8040, 3, 5))
	require.Equal(t, uint32(0xFF8040), pixel(t, im, 3, 5))
	require.Zero(t, pixel(t, im, 4, 5), "neighbour untouched")

	require.ErrorIs(t, DrawPoint(im, 0xFFFFFF, 16, 0), ErrOutOfRange)
	require.ErrorIs(t, DrawPoint(im, 0xFFFFFF, 0, -1), ErrOutOfRange)
}

func Test_FillRect(t *testing.T) {
	im := NewImage(16, 16)

	require.NoError(t, FillRect(im, 0x00FF00, 2, 3, 4, 5))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			inside := x >= 2 && x < 6 && y >= 3 && y < 8
			if inside {
				require.Equal(t, uint32(0x00FF00), pixel(t, im, x, y))
			} else {
				require.Zero(t, pixel(t, im, x, y))
			}
		}
	}

	// A rectangle sticking out draws nothing at all.
	im2 := NewImage(16, 16)
	require.ErrorIs(t, FillRect(im2, 0xFF0000, 14, 14, 4, 4), ErrOutOfRange)
	require.Zero(t, pixel(t, im2, 15, 15))
	require.ErrorIs(t, FillRect(im2, 0xFF0000, 0, 0, 0, 4), ErrOutOfRange)
}

func Test_DrawLineEndpoints(t *testing.T) {
	cases := []struct{ x0, y0, x1, y1 int }{
		{0, 0, 15, 15},  // diagonal
		{0, 8, 15, 8},   // horizontal
		{8, 0, 8, 15},   // vertical
		{15, 15, 0, 0},  // reversed
		{0, 15, 15, 3},  // shallow
		{3, 0, 5, 15},   // steep
		{7, 7, 7, 7},    // single point
	}
	for _, c := range cases {
		im := NewImage(16, 16)
		require.NoError(t, DrawLine(im, 0xFFFFFF, c.x0, c.y0, c.x1, c.y1))
		require.Equal(t, uint32(0xFFFFFF), pixel(t, im, c.x0, c.y0),
			"start of line %v", c)
		require.Equal(t, uint32(0xFFFFFF), pixel(t, im, c.x1, c.y1),
			"end of line %v", c)
	}

	im := NewImage(16, 16)
	require.ErrorIs(t, DrawLine(im, 0xFFFFFF, 0, 0, 16, 16), ErrOutOfRange)
}

func Test_DrawLineContiguous(t *testing.T) {
	// Every column of a major-axis-x line gets exactly one pixel.
	im := NewImage(32, 16)
	require.NoError(t, DrawLine(im, 0xFFFFFF, 0, 2, 31, 13))
	for x := 0; x < 32; x++ {
		var lit int
		for y := 0; y < 16; y++ {
			if pixel(t, im, x, y) != 0 {
				lit++
			}
		}
		require.Equal(t, 1, lit, "column %d", x)
	}
}

func Test_DrawStringAdvancesByGlyph(t *testing.T) {
	im := NewImage(8*8, 16)
	DrawString(im, 0xFFFFFF, "HI", 0, 0)

	first := countLit(t, im, 0, 0, GlyphWidth, GlyphHeight)
	second := countLit(t, im, GlyphWidth, 0, GlyphWidth, GlyphHeight)
	require.NotZero(t, first, "H cell has pixels")
	require.NotZero(t, second, "I cell has pixels")

	// Unknown characters are skipped, lowercase folds to uppercase.
	im2 := NewImage(8*8, 16)
	DrawString(im2, 0xFFFFFF, "h\x01", 0, 0)
	require.Equal(t, first, countLit(t, im2, 0, 0, GlyphWidth, GlyphHeight))
	require.Zero(t, countLit(t, im2, GlyphWidth, 0, GlyphWidth, GlyphHeight))
}

func countLit(t *testing.T, b Bitmap, x, y, w, h int) int {
	t.Helper()
	var lit int
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			if pixel(t, b, x+dx, y+dy) != 0 {
				lit++
			}
		}
	}
	return lit
}

func Test_TextWriterCursor(t *testing.T) {
	im := NewImage(64, 48)
	w := NewTextWriter(im, 0x00FFFF)

	n, err := fmt.Fprintf(w, "OK %d\n", 7)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	x, y := w.Pos()
	require.Equal(t, 0, x, "newline returns to column zero")
	require.Equal(t, GlyphHeight, y)

	fmt.Fprint(w, "AB")
	x, y = w.Pos()
	require.Equal(t, 2*GlyphWidth, x)
	require.Equal(t, GlyphHeight, y)

	require.NotZero(t, countLit(t, im, 0, GlyphHeight, GlyphWidth, GlyphHeight))
}

func Test_SurfaceWrapsFramebuffer(t *testing.T) {
	// A framebuffer with scanline padding: 10 visible pixels, stride 16.
	fb := &firmware.Framebuffer{
		Info: firmware.FramebufferInfo{Width: 10, Height: 4, PixelsPerLine: 16},
		Buf:  make([]byte, 16*4*BytesPerPixel),
	}
	s := NewSurface(fb)
	require.Equal(t, 10, s.Width())
	require.Equal(t, 16, s.PixelsPerLine())

	require.NoError(t, DrawPoint(s, 0x123456, 9, 3))
	off := (3*16 + 9) * BytesPerPixel
	require.Equal(t, byte(0x56), fb.Buf[off], "blue byte first")
	require.Equal(t, byte(0x34), fb.Buf[off+1])
	require.Equal(t, byte(0x12), fb.Buf[off+2])

	require.ErrorIs(t, DrawPoint(s, 0xFFFFFF, 10, 0), ErrOutOfRange,
		"stride pixels are not drawable")
}

func Test_TestPatternCoversSurface(t *testing.T) {
	im := NewImage(32, 24)
	TestPattern(im)

	// Border is white, diagonals present.
	require.Equal(t, uint32(0xFFFFFF), pixel(t, im, 0, 0))
	require.Equal(t, uint32(0xFFFFFF), pixel(t, im, 31, 23))
	require.Equal(t, uint32(0xFFFFFF), pixel(t, im, 31, 0))
	require.Equal(t, uint32(0xFFFFFF), pixel(t, im, 0, 23))
}

func Test_EncodePNGRoundTrip(t *testing.T) {
	im := NewImage(8, 8)
	require.NoError(t, FillRect(im, 0xFF0000, 0, 0, 8, 8))
	require.NoError(t, DrawPoint(im, 0x0000FF, 2, 2))

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, im))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 8, decoded.Bounds().Dx())
	r, g, b, _ := decoded.At(0, 0).RGBA()
	require.Equal(t, uint32(0xFFFF), r)
	require.Zero(t, g)
	require.Zero(t, b)
	r, _, b, _ = decoded.At(2, 2).RGBA()
	require.Zero(t, r)
	require.Equal(t, uint32(0xFFFF), b)
}
