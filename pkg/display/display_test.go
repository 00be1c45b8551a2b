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

package display_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gochip8/gochip8/pkg/display"
)

// recordingRenderer captures SetPixel/Present calls for inspection.
type recordingRenderer struct {
	set      map[[2]int]bool
	presents int
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{set: make(map[[2]int]bool)}
}

func (r *recordingRenderer) SetPixel(x, y int, on bool) {
	r.set[[2]int{x, y}] = on
}

func (r *recordingRenderer) Present() {
	r.presents++
}

func TestDrawByte(t *testing.T) {
	var fb display.Framebuffer

	overwritten := fb.DrawByte(0, 0, 0xA5) // 10100101

	assert.False(t, overwritten)
	assert.True(t, fb.Pixel(0, 0))
	assert.False(t, fb.Pixel(1, 0))
	assert.True(t, fb.Pixel(2, 0))
	assert.False(t, fb.Pixel(3, 0))
	assert.False(t, fb.Pixel(4, 0))
	assert.True(t, fb.Pixel(5, 0))
	assert.False(t, fb.Pixel(6, 0))
	assert.True(t, fb.Pixel(7, 0))
}

func TestDrawByteXOR(t *testing.T) {
	var fb display.Framebuffer

	fb.DrawByte(0, 0, 0xF0)

	// Overlapping bits turn off, fresh bits turn on
	overwritten := fb.DrawByte(0, 0, 0xFF)

	assert.True(t, overwritten)

	for x := 0; x < 4; x++ {
		assert.False(t, fb.Pixel(x, 0), "pixel %d should be erased", x)
	}

	for x := 4; x < 8; x++ {
		assert.True(t, fb.Pixel(x, 0), "pixel %d should be set", x)
	}
}

func TestDrawByteHorizontalWrap(t *testing.T) {
	var fb display.Framebuffer

	overwritten := fb.DrawByte(display.Width-4, 0, 0xFF)

	assert.False(t, overwritten)

	for _, x := range []int{60, 61, 62, 63, 0, 1, 2, 3} {
		assert.True(t, fb.Pixel(x, 0), "pixel %d not set", x)
	}

	// The wrapped half collides on redraw
	overwritten = fb.DrawByte(display.Width-4, 0, 0x0F)
	assert.True(t, overwritten)
}

func TestDrawByteRowWrap(t *testing.T) {
	var fb display.Framebuffer

	// Row argument wraps with a plain modulo per call
	fb.DrawByte(0, display.Height, 0x80)
	assert.True(t, fb.Pixel(0, 0))

	fb.DrawByte(0, display.Height+1, 0x80)
	assert.True(t, fb.Pixel(0, 1))
}

func TestClear(t *testing.T) {
	var fb display.Framebuffer

	fb.DrawByte(0, 0, 0xFF)
	fb.DrawByte(10, 5, 0xFF)

	fb.Clear()

	for y := 0; y < display.Height; y++ {
		for x := 0; x < display.Width; x++ {
			assert.False(t, fb.Pixel(x, y), "pixel (%d,%d) set", x, y)
		}
	}

	// Clearing twice is the same as clearing once
	fb.Clear()

	assert.False(t, fb.Pixel(0, 0))
}

func TestRendererWrites(t *testing.T) {
	renderer := newRecordingRenderer()

	fb := display.Framebuffer{Renderer: renderer}

	fb.DrawByte(0, 0, 0x80)
	assert.True(t, renderer.set[[2]int{0, 0}])

	// XOR off reaches the backend too
	fb.DrawByte(0, 0, 0x80)
	assert.False(t, renderer.set[[2]int{0, 0}])

	fb.Present()
	assert.Equal(t, 1, renderer.presents)

	fb.DrawByte(1, 0, 0x80)
	fb.Clear()
	assert.False(t, renderer.set[[2]int{1, 0}])

	// Clear presents the blank frame itself
	assert.Equal(t, 2, renderer.presents)
}
