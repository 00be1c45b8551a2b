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

const (
	STACK_SIZE    = 16
	MEMORY_SIZE   = 4096
	NUM_REGISTERS = 16
)

const (
	// First executable address, ROMs are loaded here
	START_ADDR uint16 = 0x200

	// Base address of the built-in glyph font table
	FONT_ADDR uint16 = 0x0

	// Bytes per font glyph
	FONT_GLYPH_SIZE uint16 = 5
)

// First nibble dispatch values
const (
	OP_SYS  uint8 = 0x0
	OP_JP   uint8 = 0x1
	OP_CALL uint8 = 0x2
	OP_SE   uint8 = 0x3
	OP_SNE  uint8 = 0x4
	OP_SER  uint8 = 0x5
	OP_LD   uint8 = 0x6
	OP_ADD  uint8 = 0x7
	OP_ALU  uint8 = 0x8
	OP_SNER uint8 = 0x9
	OP_LDI  uint8 = 0xA
	OP_JPV0 uint8 = 0xB
	OP_RND  uint8 = 0xC
	OP_DRW  uint8 = 0xD
	OP_KEY  uint8 = 0xE
	OP_MISC uint8 = 0xF
)

// Secondary dispatch on the last byte for 0x0 opcodes
const (
	SYS_CLS uint8 = 0xE0
	SYS_RET uint8 = 0xEE
)

// Secondary dispatch on the fourth nibble for 0x8 opcodes
const (
	ALU_LD   uint8 = 0x0
	ALU_OR   uint8 = 0x1
	ALU_AND  uint8 = 0x2
	ALU_XOR  uint8 = 0x3
	ALU_ADD  uint8 = 0x4
	ALU_SUB  uint8 = 0x5
	ALU_SHR  uint8 = 0x6
	ALU_SUBN uint8 = 0x7
	ALU_SHL  uint8 = 0xE
)

// Secondary dispatch on the last byte for 0xE opcodes
const (
	KEY_SKP  uint8 = 0x9E
	KEY_SKNP uint8 = 0xA1
)

// Secondary dispatch on the last byte for 0xF opcodes
const (
	MISC_LDDT  uint8 = 0x07
	MISC_WAITK uint8 = 0x0A
	MISC_STDT  uint8 = 0x15
	MISC_STST  uint8 = 0x18
	MISC_ADDI  uint8 = 0x1E
	MISC_FONT  uint8 = 0x29
	MISC_BCD   uint8 = 0x33
	MISC_PUSH  uint8 = 0x55
	MISC_POP   uint8 = 0x65
)

// FONT_SET holds the 16 built-in hex glyphs, 5 bytes per glyph. Reset copies
// it to FONT_ADDR.
var FONT_SET = [80]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}
