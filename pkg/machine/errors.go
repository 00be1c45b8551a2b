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
	"errors"
	"fmt"
)

var (
	// ErrStackOverflow is returned by a call that would push past the last
	// stack slot.
	ErrStackOverflow = errors.New("machine: call stack overflow")

	// ErrStackUnderflow is returned by a return with no pushed entry to pop.
	ErrStackUnderflow = errors.New("machine: call stack underflow")

	// ErrNoKeypad is returned by key opcodes that block when no keypad
	// collaborator is attached.
	ErrNoKeypad = errors.New("machine: no keypad attached")
)

// UnknownOpcodeError reports an instruction word with no registered handler.
// The cycle that decoded it is aborted with the program counter untouched.
type UnknownOpcodeError struct {
	Opcode uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("machine: unknown opcode %#04x", e.Opcode)
}

// ROMTooLargeError reports an image that does not fit in memory from its
// load address. Nothing is written when it is returned.
type ROMTooLargeError struct {
	Size int
	Addr uint16
}

func (e *ROMTooLargeError) Error() string {
	return fmt.Sprintf(
		"machine: %d byte image does not fit in memory at %#04x",
		e.Size,
		e.Addr,
	)
}
