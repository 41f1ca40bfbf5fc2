// Package console renders text and simple graphics into a framebuffer. It
// draws directly into pixel memory: either the framebuffer the boot layer
// located, or an in-memory image for offscreen composition and tests.
package console

import "github.com/joshuapare/bootheap/firmware"

// BytesPerPixel is the size of one pixel cell. Pixels are 32-bit BGRx: byte 0
// blue, byte 1 green, byte 2 red, byte 3 unused.
const BytesPerPixel = 4

// Bitmap is a rectangular pixel surface. PixelsPerLine is the row stride in
// pixels and may exceed Width on surfaces with scanline padding.
type Bitmap interface {
	Width() int
	Height() int
	PixelsPerLine() int
	// Buf returns the raw pixel memory, PixelsPerLine*Height*BytesPerPixel
	// bytes, rows in top-down order.
	Buf() []byte
}

// Surface wraps a firmware framebuffer as a drawable bitmap.
type Surface struct {
	info firmware.FramebufferInfo
	buf  []byte
}

// NewSurface wraps the framebuffer the boot layer located.
func NewSurface(fb *firmware.Framebuffer) *Surface {
	return &Surface{info: fb.Info, buf: fb.Buf}
}

func (s *Surface) Width() int         { return int(s.info.Width) }
func (s *Surface) Height() int        { return int(s.info.Height) }
func (s *Surface) PixelsPerLine() int { return int(s.info.PixelsPerLine) }
func (s *Surface) Buf() []byte        { return s.buf }

// Image is an in-memory bitmap with no scanline padding.
type Image struct {
	width  int
	height int
	buf    []byte
}

// NewImage allocates a width x height image backed by ordinary memory.
func NewImage(width, height int) *Image {
	return &Image{
		width:  width,
		height: height,
		buf:    make([]byte, width*height*BytesPerPixel),
	}
}

func (im *Image) Width() int         { return im.width }
func (im *Image) Height() int        { return im.height }
func (im *Image) PixelsPerLine() int { return im.width }
func (im *Image) Buf() []byte        { return im.buf }
