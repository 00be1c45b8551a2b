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
	"fmt"
	"strings"

	"github.com/gochip8/gochip8/pkg/encoding"
	"github.com/gochip8/gochip8/pkg/machine"
)

// Execute runs one operator command line against the machine:
//
//	b <hex-addr>   set breakpoint
//	d <hex-addr>   delete breakpoint
//	s              single-step
//	c              continue
//	q              quit
//	p <target>     inspect: 0x<addr>, v<N>, i, pc, sp, stack, b, r
//
// Verbs are case-insensitive and whitespace is collapsed. An empty line
// repeats the previously issued command. A malformed command returns an
// error and changes nothing, the caller re-prompts.
func (dbg *Debugger) Execute(mc *machine.Machine, line string) (Action, error) {
	args := strings.Fields(strings.ToLower(line))

	if len(args) == 0 {
		if len(dbg.lastcmd) == 0 {
			return Prompt, nil
		}

		args = dbg.lastcmd
	} else {
		dbg.lastcmd = make([]string, len(args))
		copy(dbg.lastcmd, args)
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "b":
		const usage = "b <hex-addr>"

		if len(args) != 1 {
			return Prompt, fmt.Errorf("usage: %s", usage)
		}

		addr, err := encoding.DecodeHex(args[0])

		if err != nil {
			return Prompt, err
		}

		if dbg.AddBreakpoint(addr) {
			fmt.Fprintf(dbg.out(), "Breakpoint added [0x%04X]\n", addr)
		}

	case "d":
		const usage = "d <hex-addr>"

		if len(args) != 1 {
			return Prompt, fmt.Errorf("usage: %s", usage)
		}

		addr, err := encoding.DecodeHex(args[0])

		if err != nil {
			return Prompt, err
		}

		if dbg.RemoveBreakpoint(addr) {
			fmt.Fprintf(dbg.out(), "Breakpoint removed [0x%04X]\n", addr)
		} else {
			fmt.Fprintf(dbg.out(), "No breakpoint at 0x%04X\n", addr)
		}

	case "s":
		return StepOne, nil

	case "c":
		return Resume, nil

	case "q":
		return Quit, nil

	case "p":
		const usage = "p <0x<addr>|v<N>|i|pc|sp|stack|b|r>"

		if len(args) != 1 {
			return Prompt, fmt.Errorf("usage: %s", usage)
		}

		return Prompt, dbg.inspect(&mc.State, args[0])

	default:
		return Prompt, fmt.Errorf("'%s' is not a valid command", cmd)
	}

	return Prompt, nil
}

// inspect prints one named piece of machine state. It never mutates
// anything.
func (dbg *Debugger) inspect(st *machine.MachineState, target string) error {
	switch target {
	case "i":
		fmt.Fprintf(dbg.out(), "0x%04X\n", st.I)

	case "pc":
		fmt.Fprintf(dbg.out(), "0x%04X\n", st.PC)

	case "sp":
		fmt.Fprintf(dbg.out(), "0x%04X\n", st.SP)

	case "stack":
		dbg.PrintStack(st)

	case "b":
		dbg.PrintBreakpoints()

	case "r":
		dbg.PrintRegisters(st)

	default:
		if addr, err := encoding.DecodeHex(target); err == nil {
			dbg.PrintOpcode(st, addr)
			return nil
		}

		if reg, err := encoding.DecodeRegister(target); err == nil {
			fmt.Fprintf(dbg.out(), "V%X\t%04X\n", reg, st.V[reg])
			return nil
		}

		return fmt.Errorf("'%s' is not a valid inspect target", target)
	}

	return nil
}
