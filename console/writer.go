package console

// TextWriter renders text onto a bitmap, tracking a cursor in pixel
// coordinates. It implements io.Writer so it can sit behind fmt.Fprintf.
type TextWriter struct {
	target Bitmap
	color  uint32
	x, y   int
}

// NewTextWriter creates a writer drawing in the given color, cursor at the
// top-left corner.
func NewTextWriter(target Bitmap, color uint32) *TextWriter {
	return &TextWriter{target: target, color: color}
}

// Write renders p onto the target. A newline moves the cursor to the start of
// the next text row; everything else advances it one glyph cell. Output past
// the right or bottom edge is clipped, never wrapped.
func (w *TextWriter) Write(p []byte) (int, error) {
	for _, c := range p {
		if c == '\n' {
			w.x = 0
			w.y += GlyphHeight
			continue
		}
		DrawChar(w.target, w.color, c, w.x, w.y)
		w.x += GlyphWidth
	}
	return len(p), nil
}

// Pos returns the cursor position in pixels.
func (w *TextWriter) Pos() (x, y int) {
	return w.x, w.y
}
