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

package main

import (
	"errors"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/gochip8/gochip8/pkg/display"
)

// errQuitRequested propagates a window close out of a blocking key-wait.
var errQuitRequested = errors.New("quit requested")

// keyMappings maps the 16 logical pad keys to host scancodes, the pad's
// 123C/456D/789E/A0BF layout folded onto 1234/QWER/ASDF/ZXCV.
var keyMappings = map[uint8]sdl.Scancode{
	0x1: sdl.SCANCODE_1,
	0x2: sdl.SCANCODE_2,
	0x3: sdl.SCANCODE_3,
	0xC: sdl.SCANCODE_4,
	0x4: sdl.SCANCODE_Q,
	0x5: sdl.SCANCODE_W,
	0x6: sdl.SCANCODE_E,
	0xD: sdl.SCANCODE_R,
	0x7: sdl.SCANCODE_A,
	0x8: sdl.SCANCODE_S,
	0x9: sdl.SCANCODE_D,
	0xE: sdl.SCANCODE_F,
	0xA: sdl.SCANCODE_Z,
	0x0: sdl.SCANCODE_X,
	0xB: sdl.SCANCODE_C,
	0xF: sdl.SCANCODE_V,
}

// sdlHost implements both the display.Renderer and machine.Keypad
// collaborators on one SDL window.
type sdlHost struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	scale    int32
}

func newSDLHost(scale int) (*sdlHost, error) {
	if err := sdl.Init(uint32(sdl.INIT_VIDEO | sdl.INIT_EVENTS)); err != nil {
		return nil, err
	}

	window, err := sdl.CreateWindow(
		"gochip8",
		int32(sdl.WINDOWPOS_UNDEFINED),
		int32(sdl.WINDOWPOS_UNDEFINED),
		int32(display.Width*scale),
		int32(display.Height*scale),
		uint32(sdl.WINDOW_SHOWN),
	)

	if err != nil {
		sdl.Quit()
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(
		window, -1, uint32(sdl.RENDERER_ACCELERATED),
	)

	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, err
	}

	host := &sdlHost{
		window:   window,
		renderer: renderer,
		scale:    int32(scale),
	}

	host.renderer.SetDrawColor(0, 0, 0, 255)
	host.renderer.Clear()
	host.renderer.Present()

	return host, nil
}

func (host *sdlHost) close() {
	host.renderer.Destroy()
	host.window.Destroy()
	sdl.Quit()
}

// SetPixel fills one scaled framebuffer pixel. The frame becomes visible on
// the next Present.
func (host *sdlHost) SetPixel(x, y int, on bool) {
	if on {
		host.renderer.SetDrawColor(255, 255, 255, 255)
	} else {
		host.renderer.SetDrawColor(0, 0, 0, 255)
	}

	host.renderer.FillRect(&sdl.Rect{
		X: int32(x) * host.scale,
		Y: int32(y) * host.scale,
		W: host.scale,
		H: host.scale,
	})
}

func (host *sdlHost) Present() {
	host.renderer.Present()
}

// IsPressed reports whether the logical pad key is currently held.
func (host *sdlHost) IsPressed(key uint8) bool {
	scancode, ok := keyMappings[key]

	if !ok {
		return false
	}

	return sdl.GetKeyboardState()[scancode] != 0
}

// WaitKey blocks until a key-down event for a mapped pad key arrives and
// returns its logical index. A window close aborts the wait.
func (host *sdlHost) WaitKey() (uint8, error) {
	for {
		event := sdl.WaitEvent()

		switch ev := event.(type) {
		case *sdl.QuitEvent:
			return 0, errQuitRequested

		case *sdl.KeyboardEvent:
			if ev.Type != sdl.KEYDOWN {
				continue
			}

			for key, scancode := range keyMappings {
				if ev.Keysym.Scancode == scancode {
					return key, nil
				}
			}
		}
	}
}

// pumpEvents drains the SDL event queue between cycles so the window stays
// responsive and close requests are seen.
func (host *sdlHost) pumpEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if _, ok := event.(*sdl.QuitEvent); ok {
			shouldexit = true
		}
	}
}
