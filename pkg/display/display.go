// Copyright (C) 2023  The gochip8 authors

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package display holds the monochrome framebuffer state and the XOR
// draw/collision model. Pixel state is owned here; a rendering backend is
// only ever written to, never read back.
package display

const (
	Width  = 64
	Height = 32
)

// Renderer is the host rendering collaborator. SetPixel changes one scaled
// pixel, Present pushes the finished frame to the screen.
type Renderer interface {
	SetPixel(x, y int, on bool)
	Present()
}

// Framebuffer is a Width x Height grid of on/off pixel state. The zero value
// is a blank framebuffer with no rendering backend attached.
type Framebuffer struct {
	pixels [Height][Width]bool

	Renderer Renderer
}

// Pixel reports the state of the pixel at (x, y), wrapping both coordinates.
func (fb *Framebuffer) Pixel(x, y int) bool {
	return fb.pixels[y%Height][x%Width]
}

// Clear turns every pixel off. Clearing an already blank framebuffer is a
// no-op.
func (fb *Framebuffer) Clear() {
	for y := range fb.pixels {
		for x := range fb.pixels[y] {
			if fb.pixels[y][x] && fb.Renderer != nil {
				fb.Renderer.SetPixel(x, y, false)
			}

			fb.pixels[y][x] = false
		}
	}

	fb.Present()
}

// DrawByte XORs the eight bits of b, most significant first, into the row
// y mod Height starting at column x. Columns wrap at Width. It reports
// whether any set bit landed on a pixel that was already on.
func (fb *Framebuffer) DrawByte(x, y int, b uint8) bool {
	row := y % Height

	overwritten := false

	for i := 0; i < 8; i++ {
		if b&(0x80>>i) == 0 {
			continue
		}

		col := (x + i) % Width

		on := fb.pixels[row][col]
		fb.pixels[row][col] = !on

		if fb.Renderer != nil {
			fb.Renderer.SetPixel(col, row, !on)
		}

		if on {
			overwritten = true
		}
	}

	return overwritten
}

// Present flushes the frame to the rendering backend, if one is attached.
func (fb *Framebuffer) Present() {
	if fb.Renderer != nil {
		fb.Renderer.Present()
	}
}
