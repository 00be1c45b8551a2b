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

package debugger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gochip8/gochip8/pkg/debugger"
	"github.com/gochip8/gochip8/pkg/machine"
)

func newTestMachine() *machine.Machine {
	var mc machine.Machine
	mc.State.Reset()
	return &mc
}

func TestStepGatesOnBreakpoint(t *testing.T) {
	mc := newTestMachine()

	halts := 0

	dbg := debugger.Debugger{
		HandleBreak: func(d *debugger.Debugger, m *machine.Machine) error {
			halts++
			return nil
		},
	}

	dbg.AddBreakpoint(0x300)

	require.NoError(t, dbg.Step(mc))
	assert.Equal(t, 0, halts)

	mc.State.PC = 0x300
	require.NoError(t, dbg.Step(mc))
	assert.Equal(t, 1, halts)
}

func TestStepGatesOnSingleStep(t *testing.T) {
	mc := newTestMachine()

	halts := 0

	dbg := debugger.Debugger{
		Break: true,
		HandleBreak: func(d *debugger.Debugger, m *machine.Machine) error {
			halts++
			d.Break = false
			return nil
		},
	}

	require.NoError(t, dbg.Step(mc))
	require.NoError(t, dbg.Step(mc))
	assert.Equal(t, 1, halts)
}

func TestBreakpointSet(t *testing.T) {
	var dbg debugger.Debugger

	assert.True(t, dbg.AddBreakpoint(0x200))
	assert.False(t, dbg.AddBreakpoint(0x200), "duplicate accepted")
	assert.True(t, dbg.HasBreakpoint(0x200))

	assert.True(t, dbg.RemoveBreakpoint(0x200))
	assert.False(t, dbg.RemoveBreakpoint(0x200), "removed twice")
	assert.False(t, dbg.HasBreakpoint(0x200))
}

func TestExecuteBreakpointCommands(t *testing.T) {
	mc := newTestMachine()

	var out bytes.Buffer
	dbg := debugger.Debugger{Out: &out}

	action, err := dbg.Execute(mc, "b 0x300")
	require.NoError(t, err)
	assert.Equal(t, debugger.Prompt, action)
	assert.True(t, dbg.HasBreakpoint(0x300))

	// Case-insensitive, whitespace-collapsed
	action, err = dbg.Execute(mc, "  D   0X300 ")
	require.NoError(t, err)
	assert.Equal(t, debugger.Prompt, action)
	assert.False(t, dbg.HasBreakpoint(0x300))
}

func TestExecuteFlowCommands(t *testing.T) {
	mc := newTestMachine()

	var dbg debugger.Debugger

	action, err := dbg.Execute(mc, "s")
	require.NoError(t, err)
	assert.Equal(t, debugger.StepOne, action)

	action, err = dbg.Execute(mc, "c")
	require.NoError(t, err)
	assert.Equal(t, debugger.Resume, action)

	action, err = dbg.Execute(mc, "q")
	require.NoError(t, err)
	assert.Equal(t, debugger.Quit, action)
}

func TestExecuteEmptyLineRepeatsLastCommand(t *testing.T) {
	mc := newTestMachine()

	var dbg debugger.Debugger

	// Nothing issued yet, nothing to repeat
	action, err := dbg.Execute(mc, "")
	require.NoError(t, err)
	assert.Equal(t, debugger.Prompt, action)

	_, err = dbg.Execute(mc, "s")
	require.NoError(t, err)

	action, err = dbg.Execute(mc, "")
	require.NoError(t, err)
	assert.Equal(t, debugger.StepOne, action)
}

func TestExecuteMalformedCommands(t *testing.T) {
	mc := newTestMachine()

	var out bytes.Buffer
	dbg := debugger.Debugger{Out: &out}
	dbg.AddBreakpoint(0x400)

	for _, line := range []string{
		"x",      // unrecognized verb
		"b",      // missing operand
		"b zzz",  // bad operand
		"d",      // missing operand
		"p",      // missing target
		"p vx",   // bad register
		"p what", // bad target
	} {
		action, err := dbg.Execute(mc, line)
		assert.Error(t, err, "line %q accepted", line)
		assert.Equal(t, debugger.Prompt, action)
	}

	// No state was corrupted
	assert.Equal(t, []debugger.Breakpoint{{Addr: 0x400}}, dbg.Breakpoints)
	assert.Equal(t, machine.START_ADDR, mc.State.PC)
}

func TestInspect(t *testing.T) {
	mc := newTestMachine()

	mc.State.V[0x3] = 0xAB
	mc.State.I = 0x123
	mc.State.PC = 0x0204
	mc.State.SP = 2
	mc.State.Stack[1] = 0x0200
	mc.State.Stack[2] = 0x0300
	mc.State.Memory[0x204] = 0x6A
	mc.State.Memory[0x205] = 0x99

	var dbg debugger.Debugger
	dbg.AddBreakpoint(0x400)

	inspect := func(target string) string {
		var out bytes.Buffer
		dbg.Out = &out

		action, err := dbg.Execute(mc, "p "+target)
		require.NoError(t, err)
		assert.Equal(t, debugger.Prompt, action)

		return out.String()
	}

	assert.Equal(t, "V3\t00AB\n", inspect("v3"))
	assert.Equal(t, "0x0123\n", inspect("i"))
	assert.Equal(t, "0x0204\n", inspect("pc"))
	assert.Equal(t, "0x0002\n", inspect("sp"))
	assert.Equal(t, "0x0204\t6A99\n", inspect("0x204"))
	assert.Equal(t, "0x0400\n", inspect("b"))

	assert.Contains(t, inspect("stack"), "\tStack[2]: 768\n")

	dump := inspect("r")
	assert.Contains(t, dump, "V3\t00AB\n")
	assert.Contains(t, dump, "PC\t0204\n")

	// Inspection never mutates
	assert.Equal(t, uint16(0x0204), mc.State.PC)
	assert.Equal(t, uint8(2), mc.State.SP)
}
