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
	"io"
	"math/rand"
)

// opcode is the decoded form of one instruction word. It only lives for the
// cycle that decoded it.
type opcode struct {
	all uint16
	x   uint8  // second nibble, usually a register index
	y   uint8  // third nibble, usually a register index
	n   uint8  // fourth nibble
	kk  uint8  // last byte
	nnn uint16 // last three nibbles, usually an address
}

func decode(word uint16) opcode {
	return opcode{
		all: word,
		x:   uint8(word>>8) & 0xF,
		y:   uint8(word>>4) & 0xF,
		n:   uint8(word) & 0xF,
		kk:  uint8(word),
		nnn: word & 0x0FFF,
	}
}

func (st *MachineState) Reset() {
	for i := range st.V {
		st.V[i] = 0x00
	}

	for i := range st.Stack {
		st.Stack[i] = 0x0000
	}

	for i := range st.Memory {
		st.Memory[i] = 0x00
	}

	st.I = 0x0000
	st.SP = 0x00
	st.Delay = 0x00
	st.Sound = 0x00

	// Program execution begins at the ROM load address
	st.PC = START_ADDR

	copy(st.Memory[FONT_ADDR:], FONT_SET[:])
}

// LoadMemory copies data into memory starting at start. Data that would
// extend past the end of memory is rejected before any byte is written.
func (st *MachineState) LoadMemory(start uint16, data []uint8) error {
	if len(data) > MEMORY_SIZE-int(start) {
		return &ROMTooLargeError{Size: len(data), Addr: start}
	}

	copy(st.Memory[start:], data)
	return nil
}

// OpcodeAt combines the two bytes at addr big-endian into an instruction
// word.
func (st *MachineState) OpcodeAt(addr uint16) uint16 {
	hi := st.Memory[addr&(MEMORY_SIZE-1)]
	lo := st.Memory[(addr+1)&(MEMORY_SIZE-1)]
	return uint16(hi)<<8 | uint16(lo)
}

// TickTimers decrements both countdown timers toward zero. The caller paces
// calls at the timer rate, independently of the instruction rate.
func (st *MachineState) TickTimers() {
	if st.Delay > 0 {
		st.Delay--
	}

	if st.Sound > 0 {
		st.Sound--
	}
}

// LoadROM resets the machine and copies the ROM image into memory at
// START_ADDR. The image is validated in full before any byte is written.
func (mc *Machine) LoadROM(reader io.Reader) error {
	rom, err := io.ReadAll(reader)

	if err != nil {
		return err
	}

	mc.State.Reset()

	return mc.State.LoadMemory(START_ADDR, rom)
}

func (mc *Machine) push(value uint16) error {
	if mc.State.SP+1 >= STACK_SIZE {
		return ErrStackOverflow
	}

	mc.State.SP++
	mc.State.Stack[mc.State.SP] = value
	return nil
}

func (mc *Machine) pop() (uint16, error) {
	if mc.State.SP == 0 {
		return 0, ErrStackUnderflow
	}

	value := mc.State.Stack[mc.State.SP]
	mc.State.Stack[mc.State.SP] = 0
	mc.State.SP--
	return value, nil
}

func (mc *Machine) randByte() uint8 {
	if mc.Rand != nil {
		return mc.Rand()
	}

	return uint8(rand.Intn(256))
}

func (mc *Machine) isPressed(key uint8) bool {
	if mc.Keys == nil {
		return false
	}

	return mc.Keys.IsPressed(key)
}

// Step performs one fetch-decode-execute-advance cycle. Control transfer
// opcodes set PC to target-2 so that the unconditional advance at the end of
// the cycle lands on the intended target; no handler is a special case in
// the dispatch. A failed cycle returns with the machine state untouched.
func (mc *Machine) Step() error {
	if mc.Debugger != nil {
		if err := mc.Debugger.Step(mc); err != nil {
			return err
		}
	}

	op := decode(mc.State.OpcodeAt(mc.State.PC))

	switch uint8(op.all >> 12) {
	// CLS  |0000    |0000|1110|0000       | Clear the screen
	// RET  |0000    |0000|1110|1110       | Return from subroutine
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_SYS:
		switch op.kk {
		case SYS_CLS:
			mc.Display.Clear()

		case SYS_RET:
			addr, err := mc.pop()

			if err != nil {
				return err
			}

			// Popped value is the address of the call instruction, the
			// post-execute advance moves past it
			mc.State.PC = addr

		default:
			return &UnknownOpcodeError{Opcode: op.all}
		}

	// JP   |0001    |nnn                  | Jump to nnn
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_JP:
		mc.State.PC = op.nnn - 2

	// CALL |0010    |nnn                  | Call subroutine at nnn
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_CALL:
		if err := mc.push(mc.State.PC); err != nil {
			return err
		}

		mc.State.PC = op.nnn - 2

	// SE   |0011    |x   |kk              | Skip next if Vx == kk
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_SE:
		if mc.State.V[op.x] == op.kk {
			mc.State.PC += 2
		}

	// SNE  |0100    |x   |kk              | Skip next if Vx != kk
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_SNE:
		if mc.State.V[op.x] != op.kk {
			mc.State.PC += 2
		}

	// SE   |0101    |x   |y   |0000       | Skip next if Vx == Vy
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_SER:
		if mc.State.V[op.x] == mc.State.V[op.y] {
			mc.State.PC += 2
		}

	// LD   |0110    |x   |kk              | Vx = kk
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LD:
		mc.State.V[op.x] = op.kk

	// ADD  |0111    |x   |kk              | Vx += kk, no flag
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_ADD:
		mc.State.V[op.x] += op.kk

	// ALU  |1000    |x   |y   |op         | Register/register arithmetic
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_ALU:
		if err := mc.stepALU(op); err != nil {
			return err
		}

	// SNE  |1001    |x   |y   |0000       | Skip next if Vx != Vy
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_SNER:
		if mc.State.V[op.x] != mc.State.V[op.y] {
			mc.State.PC += 2
		}

	// LD   |1010    |nnn                  | I = nnn
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LDI:
		mc.State.I = op.nnn

	// JP   |1011    |nnn                  | Jump to nnn + V0
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_JPV0:
		mc.State.PC = op.nnn + uint16(mc.State.V[0x0]) - 2

	// RND  |1100    |x   |kk              | Vx = random byte AND kk
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_RND:
		mc.State.V[op.x] = mc.randByte() & op.kk

	// DRW  |1101    |x   |y   |n          | Draw n-byte sprite at (Vx,Vy)
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_DRW:
		x := int(mc.State.V[op.x])
		y := int(mc.State.V[op.y])

		overwritten := false

		for r := 0; r < int(op.n); r++ {
			b := mc.State.Memory[(mc.State.I+uint16(r))&(MEMORY_SIZE-1)]

			// Each row wraps independently inside DrawByte
			if mc.Display.DrawByte(x, y+r, b) {
				overwritten = true
			}
		}

		mc.Display.Present()

		if overwritten {
			mc.State.V[0xF] = 1
		} else {
			mc.State.V[0xF] = 0
		}

	// SKP  |1110    |x   |1001|1110       | Skip next if key Vx held
	// SKNP |1110    |x   |1010|0001       | Skip next if key Vx not held
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_KEY:
		switch op.kk {
		case KEY_SKP:
			if mc.isPressed(mc.State.V[op.x]) {
				mc.State.PC += 2
			}

		case KEY_SKNP:
			if !mc.isPressed(mc.State.V[op.x]) {
				mc.State.PC += 2
			}

		default:
			return &UnknownOpcodeError{Opcode: op.all}
		}

	// MISC |1111    |x   |op              | Timer/key/memory transfers
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_MISC:
		if err := mc.stepMisc(op); err != nil {
			return err
		}

	default:
		return &UnknownOpcodeError{Opcode: op.all}
	}

	mc.State.PC += 2

	return nil
}

// stepALU executes the 0x8 opcode group, keyed on the fourth nibble.
func (mc *Machine) stepALU(op opcode) error {
	switch op.n {
	// LD   |1000    |x   |y   |0000       | Vx = Vy
	case ALU_LD:
		mc.State.V[op.x] = mc.State.V[op.y]

	// OR   |1000    |x   |y   |0001       | Vx |= Vy
	case ALU_OR:
		mc.State.V[op.x] |= mc.State.V[op.y]

	// AND  |1000    |x   |y   |0010       | Vx &= Vy
	case ALU_AND:
		mc.State.V[op.x] &= mc.State.V[op.y]

	// XOR  |1000    |x   |y   |0011       | Vx ^= Vy
	case ALU_XOR:
		mc.State.V[op.x] ^= mc.State.V[op.y]

	// ADD  |1000    |x   |y   |0100       | Vx += Vy, VF = carry
	case ALU_ADD:
		sum := uint16(mc.State.V[op.x]) + uint16(mc.State.V[op.y])

		mc.State.V[op.x] = uint8(sum)

		if sum > 0xFF {
			mc.State.V[0xF] = 1
		} else {
			mc.State.V[0xF] = 0
		}

	// SUB  |1000    |x   |y   |0101       | Vx -= Vy, VF = no borrow
	case ALU_SUB:
		vx := mc.State.V[op.x]
		vy := mc.State.V[op.y]

		mc.State.V[op.x] = vx - vy

		if vx >= vy {
			mc.State.V[0xF] = 1
		} else {
			mc.State.V[0xF] = 0
		}

	// SHR  |1000    |x   |y   |0110       | VF = Vx & 1, Vx >>= 1
	case ALU_SHR:
		mc.State.V[0xF] = mc.State.V[op.x] & 0x1
		mc.State.V[op.x] >>= 1

	// SUBN |1000    |x   |y   |0111       | Vx = Vy - Vx, VF = no borrow
	case ALU_SUBN:
		vx := mc.State.V[op.x]
		vy := mc.State.V[op.y]

		mc.State.V[op.x] = vy - vx

		if vy >= vx {
			mc.State.V[0xF] = 1
		} else {
			mc.State.V[0xF] = 0
		}

	// SHL  |1000    |x   |y   |1110       | VF = Vx >> 7, Vx <<= 1
	case ALU_SHL:
		mc.State.V[0xF] = (mc.State.V[op.x] & 0x80) >> 7
		mc.State.V[op.x] <<= 1

	default:
		return &UnknownOpcodeError{Opcode: op.all}
	}

	return nil
}

// stepMisc executes the 0xF opcode group, keyed on the last byte.
func (mc *Machine) stepMisc(op opcode) error {
	switch op.kk {
	// LD   |1111    |x   |0000|0111       | Vx = delay timer
	case MISC_LDDT:
		mc.State.V[op.x] = mc.State.Delay

	// LD   |1111    |x   |0000|1010       | Block until key down, Vx = key
	case MISC_WAITK:
		if mc.Keys == nil {
			return ErrNoKeypad
		}

		key, err := mc.Keys.WaitKey()

		if err != nil {
			return err
		}

		mc.State.V[op.x] = key

	// LD   |1111    |x   |0001|0101       | Delay timer = Vx
	case MISC_STDT:
		mc.State.Delay = mc.State.V[op.x]

	// LD   |1111    |x   |0001|1000       | Sound timer = Vx
	case MISC_STST:
		mc.State.Sound = mc.State.V[op.x]

	// ADD  |1111    |x   |0001|1110       | I += Vx
	case MISC_ADDI:
		mc.State.I += uint16(mc.State.V[op.x])

	// LD   |1111    |x   |0010|1001       | I = font glyph address for Vx
	case MISC_FONT:
		mc.State.I = FONT_ADDR + uint16(mc.State.V[op.x])*FONT_GLYPH_SIZE

	// LD   |1111    |x   |0011|0011       | BCD of Vx at I, I+1, I+2
	case MISC_BCD:
		vx := mc.State.V[op.x]

		mc.State.Memory[mc.State.I&(MEMORY_SIZE-1)] = vx / 100 % 10
		mc.State.Memory[(mc.State.I+1)&(MEMORY_SIZE-1)] = vx / 10 % 10
		mc.State.Memory[(mc.State.I+2)&(MEMORY_SIZE-1)] = vx % 10

	// LD   |1111    |x   |0101|0101       | Memory[I..I+x] = V0..Vx
	case MISC_PUSH:
		for i := uint16(0); i <= uint16(op.x); i++ {
			mc.State.Memory[(mc.State.I+i)&(MEMORY_SIZE-1)] = mc.State.V[i]
		}

	// LD   |1111    |x   |0110|0101       | V0..Vx = Memory[I..I+x]
	case MISC_POP:
		for i := uint16(0); i <= uint16(op.x); i++ {
			mc.State.V[i] = mc.State.Memory[(mc.State.I+i)&(MEMORY_SIZE-1)]
		}

	default:
		return &UnknownOpcodeError{Opcode: op.all}
	}

	return nil
}
