package console

import (
	"errors"
	"fmt"
)

// ErrOutOfRange reports a draw call whose coordinates fall outside the target
// bitmap. Nothing is drawn when any part of the shape is out of range.
var ErrOutOfRange = errors.New("console: out of range")

// contains reports whether (x, y) is a valid pixel coordinate on b.
func contains(b Bitmap, x, y int) bool {
	return x >= 0 && x < b.Width() && y >= 0 && y < b.Height()
}

// pixelAt returns the 4-byte cell for (x, y). Callers must bounds-check first.
func pixelAt(b Bitmap, x, y int) []byte {
	off := (y*b.PixelsPerLine() + x) * BytesPerPixel
	return b.Buf()[off : off+BytesPerPixel]
}

// putPixel stores a 0x00RRGGBB color into one cell, little-endian, so the
// bytes land in BGRx order.
func putPixel(b Bitmap, color uint32, x, y int) {
	p := pixelAt(b, x, y)
	p[0] = byte(color)
	p[1] = byte(color >> 8)
	p[2] = byte(color >> 16)
	p[3] = 0
}

// DrawPoint colors a single pixel.
func DrawPoint(b Bitmap, color uint32, x, y int) error {
	if !contains(b, x, y) {
		return fmt.Errorf("%w: point (%d, %d)", ErrOutOfRange, x, y)
	}
	putPixel(b, color, x, y)
	return nil
}

// FillRect fills a w x h rectangle with its top-left corner at (x, y). The
// whole rectangle must fit on the bitmap.
func FillRect(b Bitmap, color uint32, x, y, w, h int) error {
	if w <= 0 || h <= 0 ||
		!contains(b, x, y) || !contains(b, x+w-1, y+h-1) {
		return fmt.Errorf("%w: rect (%d, %d) %dx%d", ErrOutOfRange, x, y, w, h)
	}
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			putPixel(b, color, x+dx, y+dy)
		}
	}
	return nil
}

// slopePoint maps step ia along the major axis (length da) onto the minor
// axis (length db), rounding to the nearest pixel. da >= db >= 0.
func slopePoint(da, db, ia int) int {
	if da == 0 {
		return 0
	}
	return (2*db*ia + da) / da / 2
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// DrawLine draws a straight line from (x0, y0) to (x1, y1) inclusive, walking
// the longer axis one pixel at a time.
func DrawLine(b Bitmap, color uint32, x0, y0, x1, y1 int) error {
	if !contains(b, x0, y0) || !contains(b, x1, y1) {
		return fmt.Errorf("%w: line (%d, %d)-(%d, %d)", ErrOutOfRange, x0, y0, x1, y1)
	}
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	if dx >= dy {
		for i := 0; i <= dx; i++ {
			putPixel(b, color, x0+sx*i, y0+sy*slopePoint(dx, dy, i))
		}
	} else {
		for i := 0; i <= dy; i++ {
			putPixel(b, color, x0+sx*slopePoint(dy, dx, i), y0+sy*i)
		}
	}
	return nil
}

// DrawChar draws one glyph with its top-left corner at (x, y). Characters
// without a glyph are skipped silently, as is any part of the glyph that
// falls off the bitmap.
func DrawChar(b Bitmap, color uint32, c byte, x, y int) {
	glyph, ok := lookupGlyph(c)
	if !ok {
		return
	}
	for row := 0; row < GlyphHeight; row++ {
		bits := glyph[row]
		for col := 0; col < GlyphWidth; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			if contains(b, x+col, y+row) {
				putPixel(b, color, x+col, y+row)
			}
		}
	}
}

// DrawString draws s left to right starting at (x, y).
func DrawString(b Bitmap, color uint32, s string, x, y int) {
	for i := 0; i < len(s); i++ {
		DrawChar(b, color, s[i], x+i*GlyphWidth, y)
	}
}

// TestPattern fills the bitmap with a diagnostic pattern: color gradient
// background, a border, and crossing lines. Useful for checking that the
// framebuffer geometry the boot layer reported matches the panel.
func TestPattern(b Bitmap) {
	w, h := b.Width(), b.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := uint32(x*255/w)<<16 | uint32(y*255/h)<<8
			putPixel(b, c, x, y)
		}
	}
	if w < 2 || h < 2 {
		return
	}
	_ = DrawLine(b, 0xFF0000, 0, 0, w-1, h-1)
	_ = DrawLine(b, 0x00FF00, 0, h-1, w-1, 0)
	_ = DrawLine(b, 0xFFFFFF, 0, 0, w-1, 0)
	_ = DrawLine(b, 0xFFFFFF, 0, h-1, w-1, h-1)
	_ = DrawLine(b, 0xFFFFFF, 0, 0, 0, h-1)
	_ = DrawLine(b, 0xFFFFFF, w-1, 0, w-1, h-1)
}
