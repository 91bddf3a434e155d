package vm

import "strings"

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Frame is a snapshot of the monochrome display, one byte per pixel.
// A zero byte is an unlit pixel, any other value a lit one.
type Frame [Height][Width]byte

// Pixel returns whether the pixel at the given coordinates is lit.
// Coordinates outside of the display are reported as unlit.
func (f Frame) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f[y][x] != 0
}

// Lit returns the number of lit pixels.
func (f Frame) Lit() int {
	var count int
	for y := range f {
		for _, p := range f[y] {
			if p != 0 {
				count++
			}
		}
	}
	return count
}

// String renders the frame as text, one line per row.
func (f Frame) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 1))
	for y := range f {
		for _, p := range f[y] {
			if p != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// clear turns all pixels off in place.
func (f *Frame) clear() {
	*f = Frame{}
}

// draw XORs a sprite onto the frame with its top left corner at x, y.
// Pixels that fall off an edge wrap around to the opposite edge. It returns
// whether any lit pixel was turned off.
func (f *Frame) draw(x, y uint8, sprite []byte) bool {
	var collision bool
	for row, bits := range sprite {
		py := (int(y) + row) % Height
		for col := range 8 {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := (int(x) + col) % Width
			if f[py][px] != 0 {
				f[py][px] = 0
				collision = true
			} else {
				f[py][px] = 1
			}
		}
	}
	return collision
}
