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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gochip8/gochip8/pkg/machine"
)

// ErrQuit is returned through the break handler when the operator quits the
// session from the prompt.
var ErrQuit = errors.New("debugger: quit requested")

// Step gates one interpreter cycle. It blocks in HandleBreak when the
// machine is halted by a breakpoint at the current PC or by single-step
// mode. A non-nil error from the handler aborts the cycle.
func (dbg *Debugger) Step(mc *machine.Machine) error {
	if dbg.Break {
		return dbg.HandleBreak(dbg, mc)
	}

	for _, breakpoint := range dbg.Breakpoints {
		if mc.State.PC == breakpoint.Addr {
			return dbg.HandleBreak(dbg, mc)
		}
	}

	return nil
}

// AddBreakpoint records addr, reporting false if it was already set.
func (dbg *Debugger) AddBreakpoint(addr uint16) bool {
	if dbg.HasBreakpoint(addr) {
		return false
	}

	dbg.Breakpoints = append(dbg.Breakpoints, Breakpoint{Addr: addr})
	return true
}

// RemoveBreakpoint deletes addr, reporting false if it was not set.
func (dbg *Debugger) RemoveBreakpoint(addr uint16) bool {
	for i, breakpoint := range dbg.Breakpoints {
		if breakpoint.Addr == addr {
			dbg.Breakpoints[i] = dbg.Breakpoints[len(dbg.Breakpoints)-1]
			dbg.Breakpoints = dbg.Breakpoints[:len(dbg.Breakpoints)-1]
			return true
		}
	}

	return false
}

func (dbg *Debugger) HasBreakpoint(addr uint16) bool {
	for _, breakpoint := range dbg.Breakpoints {
		if breakpoint.Addr == addr {
			return true
		}
	}

	return false
}

func (dbg *Debugger) out() io.Writer {
	if dbg.Out != nil {
		return dbg.Out
	}

	return os.Stdout
}

// PrintOpcode prints the instruction word at addr.
func (dbg *Debugger) PrintOpcode(st *machine.MachineState, addr uint16) {
	fmt.Fprintf(dbg.out(), "0x%04X\t%04X\n", addr, st.OpcodeAt(addr))
}

// PrintRegisters prints a full register dump.
func (dbg *Debugger) PrintRegisters(st *machine.MachineState) {
	for i, register := range st.V {
		fmt.Fprintf(dbg.out(), "V%X\t%04X\n", i, register)
	}

	fmt.Fprintf(dbg.out(), "I\t%04X\n", st.I)
	fmt.Fprintf(dbg.out(), "PC\t%04X\n", st.PC)
	fmt.Fprintf(dbg.out(), "SP\t%04X\n", st.SP)
	fmt.Fprintf(dbg.out(), "DT\t%04X\n", st.Delay)
	fmt.Fprintf(dbg.out(), "ST\t%04X\n", st.Sound)
}

// PrintStack prints every call stack slot.
func (dbg *Debugger) PrintStack(st *machine.MachineState) {
	for i, value := range st.Stack {
		fmt.Fprintf(dbg.out(), "\tStack[%d]: %d\n", i, value)
	}
}

// PrintBreakpoints prints the breakpoint set.
func (dbg *Debugger) PrintBreakpoints() {
	for _, breakpoint := range dbg.Breakpoints {
		fmt.Fprintf(dbg.out(), "0x%04X\n", breakpoint.Addr)
	}
}
