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

package debugger

import (
	"io"

	"github.com/gochip8/gochip8/pkg/machine"
)

type Breakpoint struct {
	Addr uint16
}

// Action is what the command loop should do after a command has executed.
type Action int

const (
	// Stay at the prompt
	Prompt Action = iota

	// Run until the next breakpoint
	Resume

	// Execute exactly one cycle, then halt again
	StepOne

	// Quit the process
	Quit
)

type Debugger struct {
	// Break forces a halt before the next cycle regardless of breakpoints
	Break bool

	Breakpoints []Breakpoint

	// HandleBreak blocks for operator commands while halted. Returning
	// ErrQuit ends the session.
	HandleBreak func(*Debugger, *machine.Machine) error

	// Out receives inspection output, nil means os.Stdout
	Out io.Writer

	lastcmd []string
}
