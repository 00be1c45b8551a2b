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

package machine

import (
	"github.com/gochip8/gochip8/pkg/display"
)

// MachineState is the mutable register/memory substrate every opcode reads
// and writes. The first 0xA0 bytes of Memory hold the glyph font table,
// written by Reset and never touched by program logic afterwards.
type MachineState struct {
	// General purpose registers. VF doubles as the carry/borrow/collision
	// flag output of the arithmetic and draw opcodes.
	V [NUM_REGISTERS]uint8

	// Address register
	I uint16

	// Program counter, always the address of the next instruction word
	PC uint16

	// Stack pointer, indexes the last pushed stack entry
	SP uint8

	// Call stack of return addresses. Slot 0 is reserved by the
	// increment-then-write push discipline and never holds a live entry.
	Stack [STACK_SIZE]uint16

	// Countdown timers, decremented toward zero at the timer rate
	Delay uint8
	Sound uint8

	Memory [MEMORY_SIZE]uint8
}

// Keypad is the host input collaborator for the 16-key pad. WaitKey blocks
// until a key-down event for a recognized logical key (0x0..0xF) arrives and
// returns that logical index.
type Keypad interface {
	IsPressed(key uint8) bool
	WaitKey() (uint8, error)
}

// MachineDebugger is invoked at the top of every cycle, before fetch, and
// may block for operator commands. A non-nil error aborts the cycle before
// anything executes.
type MachineDebugger interface {
	Step(mc *Machine) error
}

type Machine struct {
	State    MachineState
	Display  display.Framebuffer
	Keys     Keypad
	Debugger MachineDebugger

	// Rand overrides the random byte source for the RND opcode, nil means
	// math/rand
	Rand func() uint8
}
