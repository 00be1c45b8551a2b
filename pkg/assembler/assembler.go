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

package assembler

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/gochip8/gochip8/pkg/encoding"
	"github.com/gochip8/gochip8/pkg/machine"
)

func parseDirective(ident string) DirectiveType {
	if strings.EqualFold(ident, ".ORIG") {
		return DIRECTIVE_ORIG
	} else if strings.EqualFold(ident, ".BYTE") {
		return DIRECTIVE_BYTE
	} else if strings.EqualFold(ident, ".WORD") {
		return DIRECTIVE_WORD
	} else if strings.EqualFold(ident, ".END") {
		return DIRECTIVE_END
	}

	return DIRECTIVE_INVALID
}

func parseInstruction(ident string) InstructionType {
	if strings.EqualFold(ident, "CLS") {
		return INSTRUCTION_CLS
	} else if strings.EqualFold(ident, "RET") {
		return INSTRUCTION_RET
	} else if strings.EqualFold(ident, "SYS") {
		return INSTRUCTION_SYS
	} else if strings.EqualFold(ident, "JP") {
		return INSTRUCTION_JP
	} else if strings.EqualFold(ident, "CALL") {
		return INSTRUCTION_CALL
	} else if strings.EqualFold(ident, "SE") {
		return INSTRUCTION_SE
	} else if strings.EqualFold(ident, "SNE") {
		return INSTRUCTION_SNE
	} else if strings.EqualFold(ident, "LD") {
		return INSTRUCTION_LD
	} else if strings.EqualFold(ident, "ADD") {
		return INSTRUCTION_ADD
	} else if strings.EqualFold(ident, "OR") {
		return INSTRUCTION_OR
	} else if strings.EqualFold(ident, "AND") {
		return INSTRUCTION_AND
	} else if strings.EqualFold(ident, "XOR") {
		return INSTRUCTION_XOR
	} else if strings.EqualFold(ident, "SUB") {
		return INSTRUCTION_SUB
	} else if strings.EqualFold(ident, "SHR") {
		return INSTRUCTION_SHR
	} else if strings.EqualFold(ident, "SUBN") {
		return INSTRUCTION_SUBN
	} else if strings.EqualFold(ident, "SHL") {
		return INSTRUCTION_SHL
	} else if strings.EqualFold(ident, "RND") {
		return INSTRUCTION_RND
	} else if strings.EqualFold(ident, "DRW") {
		return INSTRUCTION_DRW
	} else if strings.EqualFold(ident, "SKP") {
		return INSTRUCTION_SKP
	} else if strings.EqualFold(ident, "SKNP") {
		return INSTRUCTION_SKNP
	}

	return INSTRUCTION_INVALID
}

func parseLiteral(token *Token, bits LiteralType) (uint16, error) {
	if strings.ContainsAny(token.Value, "xX") {
		result, err := encoding.DecodeHex(token.Value)

		if err != nil {
			return 0, &InvalidLiteralError{token.Position}
		}

		if bits < 16 {
			limit := uint16(1) << bits

			if result >= limit {
				return 0, &OversizedLiteralError{
					token.Position, limit - 1, result,
				}
			}
		}

		return result, nil
	} else {
		result, err := encoding.DecodeInt(token.Value)

		if err != nil {
			return 0, &InvalidLiteralError{token.Position}
		}

		if bits < 16 {
			limit := int16(1) << bits

			if result <= -limit || result >= limit {
				return 0, &OversizedLiteralError{
					token.Position, limit - 1, result,
				}
			}
		}

		return uint16(result) & uint16((uint32(1)<<bits)-1), nil
	}
}

// isRegister reports whether token names a V register.
func isRegister(token *Token) bool {
	if token.Type != TOKEN_IDENT {
		return false
	}

	_, err := encoding.DecodeRegister(token.Value)
	return err == nil
}

// isTarget reports whether token names a fixed operand such as I, DT or [I].
func isTarget(token *Token, name string) bool {
	return token.Type == TOKEN_IDENT && strings.EqualFold(token.Value, name)
}

func registerOperand(token *Token) (uint16, error) {
	if token.Type != TOKEN_IDENT {
		return 0, &InvalidOperandError{
			token.Position, []TokenType{TOKEN_IDENT}, token.Type,
		}
	}

	reg, err := encoding.DecodeRegister(token.Value)

	if err != nil {
		return 0, &InvalidRegisterError{token.Position}
	}

	return uint16(reg) & 0xF, nil
}

func literalOperand(token *Token, bits LiteralType) (uint16, error) {
	if token.Type != TOKEN_LITERAL {
		return 0, &InvalidOperandError{
			token.Position, []TokenType{TOKEN_LITERAL}, token.Type,
		}
	}

	return parseLiteral(token, bits)
}

// AssembleSource assembles gochip8 assembly into a ROM image. The returned
// slice starts at the load address, ready for the interpreter to place at
// 0x200. Addresses recorded in symtable are absolute.
func AssembleSource(input io.ReadSeeker, symtable *SymTable) (result []uint8, errs []error) {
	type LabelRef struct {
		Label    string
		Addr     uint32
		Position Cursor
	}

	var labels = make(map[string]uint16)
	var labelRefs []LabelRef
	var wordRefs []LabelRef

	var image = make([]uint8, machine.MEMORY_SIZE)
	var program uint32 = uint32(machine.START_ADDR)
	var high uint32 = uint32(machine.START_ADDR)

	var builder strings.Builder
	var scanner = bufio.NewScanner(input)

	var cursor = Cursor{Line: 1, Column: 0, Size: 0, Byte: 0}

	errs = make([]error, 0)

	overflow := false

	// emit writes one big-endian instruction word at the program counter
	emit := func(word uint16) {
		if program+1 >= uint32(len(image)) {
			overflow = true
			return
		}

		image[program] = uint8(word >> 8)
		image[program+1] = uint8(word)
		program += 2

		if program > high {
			high = program
		}
	}

	// emitByte writes one raw data byte at the program counter
	emitByte := func(b uint8) {
		if program >= uint32(len(image)) {
			overflow = true
			return
		}

		image[program] = b
		program++

		if program > high {
			high = program
		}
	}

	// addrOperand resolves a 12-bit address operand, deferring unknown
	// labels to the patch pass
	addrOperand := func(token *Token) uint16 {
		switch token.Type {
		case TOKEN_LITERAL:
			literal, err := parseLiteral(token, LITERAL_ADDR)

			if err != nil {
				errs = append(errs, err)
			}

			return literal

		case TOKEN_IDENT:
			if addr, exists := labels[token.Value]; exists {
				return addr & 0xFFF
			}

			labelRefs = append(
				labelRefs, LabelRef{token.Value, program, token.Position},
			)

			return 0

		default:
			errs = append(
				errs,
				&InvalidOperandError{
					token.Position,
					[]TokenType{TOKEN_LITERAL, TOKEN_IDENT},
					token.Type,
				},
			)

			return 0
		}
	}

	// Process:
	// - Parse line
	// - Assemble line
	for scanner.Scan() {
		var tokens = make([]Token, 0, 4)
		var tokenStart int = 0
		var tokenType TokenType = TOKEN_NONE

		var lineErrs = len(errs)

		line := scanner.Text()
		builder.Grow(len(line))

		cursor.Size = int64(len(line))

		// Parse Line:
		// - Gather tokens and their types
		// - Check for syntax errors
		for column, char := range line {
			cursor.Column = column + 1

			var flush bool = false
			var skip bool = false

			if tokenType == TOKEN_NONE {
				tokenStart = cursor.Column
			}

			switch {
			// Whitespace
			case unicode.IsSpace(char):
				if tokenType == TOKEN_NONE {
					continue
				}

				flush = true

			// Comments
			case char == ';':
				if tokenType == TOKEN_NONE {
					skip = true
				} else {
					flush = true
					skip = true
				}

			// Assembler Directives
			case char == '.':
				if tokenType == TOKEN_NONE {
					tokenType = TOKEN_DIRECTIVE
				} else {
					errs = append(errs, &UnexpectedCharacterError{cursor, char})
				}

			// Operand Separator
			case char == ',':
				flush = true

			// Hex Literal (i.e. x2A, no leading zero)
			case char == 'x' || char == 'X':
				if tokenType == TOKEN_NONE {
					tokenType = TOKEN_LITERAL
				}

			// Base 10 Literal (i.e. #42)
			case char == '#':
				if tokenType == TOKEN_NONE {
					tokenType = TOKEN_LITERAL
				} else {
					errs = append(errs, &UnexpectedCharacterError{cursor, char})
				}

			// Indirect register operand (i.e. [I])
			case char == '[' || char == ']':
				if tokenType == TOKEN_NONE {
					tokenType = TOKEN_IDENT
				}

			// Numeric Literal
			case unicode.IsDigit(char):
				if tokenType == TOKEN_NONE {
					tokenType = TOKEN_LITERAL
				}

			// Numeric Sign
			case char == '-':
				if tokenType != TOKEN_LITERAL {
					errs = append(errs, &UnexpectedCharacterError{cursor, char})
				}

			// Underscore'd Identifier
			case char == '_':
				if tokenType == TOKEN_NONE {
					tokenType = TOKEN_IDENT
				} else if tokenType != TOKEN_IDENT {
					errs = append(errs, &UnexpectedCharacterError{cursor, char})
				}

			// Identifier
			case unicode.IsLetter(char):
				if char > unicode.MaxASCII {
					errs = append(errs, &OversizedCharacterError{cursor})
				}

				if tokenType == TOKEN_NONE {
					tokenType = TOKEN_IDENT
				}

			default:
				if char > unicode.MaxASCII {
					errs = append(errs, &OversizedCharacterError{cursor})
				}

				errs = append(errs, &UnexpectedCharacterError{cursor, char})
			}

			if cursor.Column == len(line) {
				if char == ',' {
					errs = append(errs, &UnexpectedCharacterError{cursor, char})
				}

				if !flush && !skip {
					builder.WriteRune(char)
				}

				flush = true
			}

			if flush {
				if builder.Len() > 0 {
					var token Token
					token.Position = Cursor{
						Line:     cursor.Line,
						Column:   tokenStart,
						Byte:     cursor.Byte + int64(tokenStart-1),
						Size:     int64(builder.Len()),
						LineByte: cursor.Byte,
					}
					token.Type = tokenType
					token.Value = builder.String()
					tokens = append(tokens, token)
					builder.Reset()
				}

				flush = false
				tokenType = TOKEN_NONE
			} else if !skip {
				builder.WriteRune(char)
			}

			if skip {
				break
			}
		}

		if len(tokens) == 0 || len(errs) > lineErrs {
			// Pass any potential assembler errors if we already had
			// parser errors
			cursor.Line++
			cursor.Byte += int64(len(line) + 1)
			cursor.LineByte += int64(len(line) + 1)
			continue
		}

		// Assemble line
		// - Write instruction bytes to the image
		// - Save label refs for unknown labels
		// - Type check instruction arguments
		var label *Token = nil
		var directive DirectiveType
		var instruction InstructionType
		var keyword *Token = nil
		var operands []Token

		var scratch uint16 = 0

		if instruction = parseInstruction(tokens[0].Value); instruction != INSTRUCTION_INVALID {
			keyword = &tokens[0]

			if len(tokens) > 1 {
				operands = tokens[1:]
			}
		} else if directive = parseDirective(tokens[0].Value); directive != DIRECTIVE_INVALID {
			keyword = &tokens[0]

			if len(tokens) > 1 {
				operands = tokens[1:]
			}
		} else {
			label = &tokens[0]
		}

		if label != nil {
			if _, exists := labels[label.Value]; !exists {
				labels[label.Value] = uint16(program)
			} else {
				errs = append(
					errs, &RedeclaredLabelError{label.Position, label.Value},
				)
			}

			// No need to assemble label-only statements
			if len(tokens) == 1 {
				cursor.Line++
				cursor.Byte += int64(len(line) + 1)
				cursor.LineByte += int64(len(line) + 1)
				continue
			}

			if instruction = parseInstruction(tokens[1].Value); instruction != INSTRUCTION_INVALID {
				keyword = &tokens[1]

				if len(tokens) > 2 {
					operands = tokens[2:]
				}
			} else if directive = parseDirective(tokens[1].Value); directive != DIRECTIVE_INVALID {
				keyword = &tokens[1]

				if len(tokens) > 2 {
					operands = tokens[2:]
				}
			}
		}

		if keyword == nil {
			errs = append(
				errs,
				&UnknownIdentifierError{tokens[0].Position, tokens[0].Value},
			)

			cursor.Line++
			cursor.Byte += int64(len(line) + 1)
			cursor.LineByte += int64(len(line) + 1)
			continue
		}

		if directive == DIRECTIVE_END {
			if count := len(operands); count != 0 {
				errs = append(
					errs, &InvalidNumArgumentsError{keyword.Position, 0, count},
				)
			}

			break
		}

		if symtable != nil && instruction != INSTRUCTION_INVALID {
			symtable.Symbols[uint16(program)] = cursor.LineByte
		}

		switch directive {
		// .ORIG #
		case DIRECTIVE_ORIG:
			if count := len(operands); count != 1 {
				errs = append(
					errs, &InvalidNumArgumentsError{keyword.Position, 1, count},
				)

				break
			}

			literal, err := literalOperand(&operands[0], LITERAL_ADDR)

			if err != nil {
				errs = append(errs, err)
				break
			}

			if literal < machine.START_ADDR {
				errs = append(
					errs, &InvalidOriginError{operands[0].Position, literal},
				)

				break
			}

			program = uint32(literal)

		// .BYTE # [, # ...]
		case DIRECTIVE_BYTE:
			if count := len(operands); count < 1 {
				errs = append(
					errs, &InvalidNumArgumentsError{keyword.Position, 1, count},
				)

				break
			}

			for i := range operands {
				literal, err := literalOperand(&operands[i], LITERAL_BYTE)

				if err != nil {
					errs = append(errs, err)
					continue
				}

				emitByte(uint8(literal))
			}

		// .WORD # | .WORD label
		case DIRECTIVE_WORD:
			if count := len(operands); count != 1 {
				errs = append(
					errs, &InvalidNumArgumentsError{keyword.Position, 1, count},
				)

				break
			}

			if operands[0].Type == TOKEN_LITERAL {
				literal, err := parseLiteral(&operands[0], LITERAL_WORD)

				if err != nil {
					errs = append(errs, err)
				}

				emit(literal)
			} else if operands[0].Type == TOKEN_IDENT {
				if addr, exists := labels[operands[0].Value]; exists {
					emit(addr)
				} else {
					wordRefs = append(
						wordRefs,
						LabelRef{
							operands[0].Value,
							program,
							operands[0].Position,
						},
					)

					emit(0)
				}
			} else {
				errs = append(
					errs,
					&InvalidOperandError{
						operands[0].Position,
						[]TokenType{TOKEN_LITERAL, TOKEN_IDENT},
						operands[0].Type,
					},
				)
			}
		}

		switch instruction {
		// CLS  |0000    |0000|1110|0000       | Clear the display
		// RET  |0000    |0000|1110|1110       | Return from subroutine
		// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
		case INSTRUCTION_CLS, INSTRUCTION_RET:
			if count := len(operands); count != 0 {
				errs = append(
					errs, &InvalidNumArgumentsError{keyword.Position, 0, count},
				)

				break
			}

			if instruction == INSTRUCTION_CLS {
				scratch = 0x00E0
			} else {
				scratch = 0x00EE
			}

			emit(scratch)

		// SYS  |0000    |nnn                  | Machine routine at nnn
		// JP   |0001    |nnn                  | Jump to nnn
		// CALL |0010    |nnn                  | Call subroutine at nnn
		// JP   |1011    |nnn                  | Jump to nnn + V0
		// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
		case INSTRUCTION_SYS, INSTRUCTION_JP, INSTRUCTION_CALL:
			count := len(operands)

			if instruction == INSTRUCTION_JP && count == 2 {
				reg, err := registerOperand(&operands[0])

				if err != nil {
					errs = append(errs, err)
					break
				}

				if reg != 0 {
					errs = append(
						errs, &InvalidRegisterError{operands[0].Position},
					)

					break
				}

				emit(0xB000 | addrOperand(&operands[1]))
				break
			}

			if count != 1 {
				errs = append(
					errs, &InvalidNumArgumentsError{keyword.Position, 1, count},
				)

				break
			}

			switch instruction {
			case INSTRUCTION_SYS:
				scratch = 0x0000
			case INSTRUCTION_JP:
				scratch = 0x1000
			case INSTRUCTION_CALL:
				scratch = 0x2000
			}

			emit(scratch | addrOperand(&operands[0]))

		// SE   |0011    |x   |kk              | Skip next if Vx == kk
		// SE   |0101    |x   |y   |0000       | Skip next if Vx == Vy
		// SNE  |0100    |x   |kk              | Skip next if Vx != kk
		// SNE  |1001    |x   |y   |0000       | Skip next if Vx != Vy
		// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
		case INSTRUCTION_SE, INSTRUCTION_SNE:
			if count := len(operands); count != 2 {
				errs = append(
					errs, &InvalidNumArgumentsError{keyword.Position, 2, count},
				)

				break
			}

			x, err := registerOperand(&operands[0])

			if err != nil {
				errs = append(errs, err)
				break
			}

			if operands[1].Type == TOKEN_LITERAL {
				kk, err := parseLiteral(&operands[1], LITERAL_BYTE)

				if err != nil {
					errs = append(errs, err)
					break
				}

				if instruction == INSTRUCTION_SE {
					scratch = 0x3000
				} else {
					scratch = 0x4000
				}

				emit(scratch | x<<8 | kk)
			} else {
				y, err := registerOperand(&operands[1])

				if err != nil {
					errs = append(errs, err)
					break
				}

				if instruction == INSTRUCTION_SE {
					scratch = 0x5000
				} else {
					scratch = 0x9000
				}

				emit(scratch | x<<8 | y<<4)
			}

		// ADD  |0111    |x   |kk              | Vx += kk
		// ADD  |1000    |x   |y   |0100       | Vx += Vy, VF carry
		// ADD  |1111    |x   |0001|1110       | I += Vx
		// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
		case INSTRUCTION_ADD:
			if count := len(operands); count != 2 {
				errs = append(
					errs, &InvalidNumArgumentsError{keyword.Position, 2, count},
				)

				break
			}

			if isTarget(&operands[0], "I") {
				x, err := registerOperand(&operands[1])

				if err != nil {
					errs = append(errs, err)
					break
				}

				emit(0xF01E | x<<8)
				break
			}

			x, err := registerOperand(&operands[0])

			if err != nil {
				errs = append(errs, err)
				break
			}

			if operands[1].Type == TOKEN_LITERAL {
				kk, err := parseLiteral(&operands[1], LITERAL_BYTE)

				if err != nil {
					errs = append(errs, err)
					break
				}

				emit(0x7000 | x<<8 | kk)
			} else {
				y, err := registerOperand(&operands[1])

				if err != nil {
					errs = append(errs, err)
					break
				}

				emit(0x8004 | x<<8 | y<<4)
			}

		// OR   |1000    |x   |y   |0001       | Vx |= Vy
		// AND  |1000    |x   |y   |0010       | Vx &= Vy
		// XOR  |1000    |x   |y   |0011       | Vx ^= Vy
		// SUB  |1000    |x   |y   |0101       | Vx -= Vy, VF no-borrow
		// SUBN |1000    |x   |y   |0111       | Vx = Vy - Vx, VF no-borrow
		// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
		case INSTRUCTION_OR,
			INSTRUCTION_AND,
			INSTRUCTION_XOR,
			INSTRUCTION_SUB,
			INSTRUCTION_SUBN:
			if count := len(operands); count != 2 {
				errs = append(
					errs, &InvalidNumArgumentsError{keyword.Position, 2, count},
				)

				break
			}

			x, err := registerOperand(&operands[0])

			if err != nil {
				errs = append(errs, err)
				break
			}

			y, err := registerOperand(&operands[1])

			if err != nil {
				errs = append(errs, err)
				break
			}

			switch instruction {
			case INSTRUCTION_OR:
				scratch = 0x8001
			case INSTRUCTION_AND:
				scratch = 0x8002
			case INSTRUCTION_XOR:
				scratch = 0x8003
			case INSTRUCTION_SUB:
				scratch = 0x8005
			case INSTRUCTION_SUBN:
				scratch = 0x8007
			}

			emit(scratch | x<<8 | y<<4)

		// SHR  |1000    |x   |y   |0110       | Vx >>= 1, VF low bit
		// SHL  |1000    |x   |y   |1110       | Vx <<= 1, VF high bit
		// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
		case INSTRUCTION_SHR, INSTRUCTION_SHL:
			count := len(operands)

			if count != 1 && count != 2 {
				errs = append(
					errs, &InvalidNumArgumentsError{keyword.Position, 1, count},
				)

				break
			}

			x, err := registerOperand(&operands[0])

			if err != nil {
				errs = append(errs, err)
				break
			}

			var y uint16 = 0

			if count == 2 {
				y, err = registerOperand(&operands[1])

				if err != nil {
					errs = append(errs, err)
					break
				}
			}

			if instruction == INSTRUCTION_SHR {
				scratch = 0x8006
			} else {
				scratch = 0x800E
			}

			emit(scratch | x<<8 | y<<4)

		// RND  |1100    |x   |kk              | Vx = rand() & kk
		// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
		case INSTRUCTION_RND:
			if count := len(operands); count != 2 {
				errs = append(
					errs, &InvalidNumArgumentsError{keyword.Position, 2, count},
				)

				break
			}

			x, err := registerOperand(&operands[0])

			if err != nil {
				errs = append(errs, err)
				break
			}

			kk, err := literalOperand(&operands[1], LITERAL_BYTE)

			if err != nil {
				errs = append(errs, err)
				break
			}

			emit(0xC000 | x<<8 | kk)

		// DRW  |1101    |x   |y   |n          | Draw n-byte sprite at Vx,Vy
		// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
		case INSTRUCTION_DRW:
			if count := len(operands); count != 3 {
				errs = append(
					errs, &InvalidNumArgumentsError{keyword.Position, 3, count},
				)

				break
			}

			x, err := registerOperand(&operands[0])

			if err != nil {
				errs = append(errs, err)
				break
			}

			y, err := registerOperand(&operands[1])

			if err != nil {
				errs = append(errs, err)
				break
			}

			n, err := literalOperand(&operands[2], LITERAL_NIBBLE)

			if err != nil {
				errs = append(errs, err)
				break
			}

			emit(0xD000 | x<<8 | y<<4 | n)

		// SKP  |1110    |x   |1001|1110       | Skip next if key Vx held
		// SKNP |1110    |x   |1010|0001       | Skip next if key Vx not held
		// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
		case INSTRUCTION_SKP, INSTRUCTION_SKNP:
			if count := len(operands); count != 1 {
				errs = append(
					errs, &InvalidNumArgumentsError{keyword.Position, 1, count},
				)

				break
			}

			x, err := registerOperand(&operands[0])

			if err != nil {
				errs = append(errs, err)
				break
			}

			if instruction == INSTRUCTION_SKP {
				scratch = 0xE09E
			} else {
				scratch = 0xE0A1
			}

			emit(scratch | x<<8)

		// LD   |0110    |x   |kk              | Vx = kk
		// LD   |1000    |x   |y   |0000       | Vx = Vy
		// LD   |1010    |nnn                  | I = nnn
		// LD   |1111    |x   |0000|0111       | Vx = delay timer
		// LD   |1111    |x   |0000|1010       | Vx = next key press
		// LD   |1111    |x   |0001|0101       | delay timer = Vx
		// LD   |1111    |x   |0001|1000       | sound timer = Vx
		// LD   |1111    |x   |0010|1001       | I = glyph addr of Vx
		// LD   |1111    |x   |0011|0011       | BCD of Vx at I..I+2
		// LD   |1111    |x   |0101|0101       | Store V0..Vx at I
		// LD   |1111    |x   |0110|0101       | Load V0..Vx from I
		// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
		case INSTRUCTION_LD:
			if count := len(operands); count != 2 {
				errs = append(
					errs, &InvalidNumArgumentsError{keyword.Position, 2, count},
				)

				break
			}

			dst, src := &operands[0], &operands[1]

			if isRegister(dst) {
				x, err := registerOperand(dst)

				if err != nil {
					errs = append(errs, err)
					break
				}

				switch {
				case src.Type == TOKEN_LITERAL:
					kk, err := parseLiteral(src, LITERAL_BYTE)

					if err != nil {
						errs = append(errs, err)
						break
					}

					emit(0x6000 | x<<8 | kk)

				case isRegister(src):
					y, _ := registerOperand(src)
					emit(0x8000 | x<<8 | y<<4)

				case isTarget(src, "DT"):
					emit(0xF007 | x<<8)

				case isTarget(src, "K"):
					emit(0xF00A | x<<8)

				case isTarget(src, "[I]"):
					emit(0xF065 | x<<8)

				default:
					errs = append(
						errs,
						&UnknownIdentifierError{src.Position, src.Value},
					)
				}

				break
			}

			switch {
			case isTarget(dst, "I"):
				emit(0xA000 | addrOperand(src))

			case isTarget(dst, "DT"), isTarget(dst, "ST"),
				isTarget(dst, "F"), isTarget(dst, "B"),
				isTarget(dst, "[I]"):
				x, err := registerOperand(src)

				if err != nil {
					errs = append(errs, err)
					break
				}

				switch {
				case isTarget(dst, "DT"):
					scratch = 0xF015
				case isTarget(dst, "ST"):
					scratch = 0xF018
				case isTarget(dst, "F"):
					scratch = 0xF029
				case isTarget(dst, "B"):
					scratch = 0xF033
				default:
					scratch = 0xF055
				}

				emit(scratch | x<<8)

			default:
				errs = append(
					errs, &UnknownIdentifierError{dst.Position, dst.Value},
				)
			}
		}

		if overflow {
			errs = append(errs, &OversizedBinaryError{})
			return image[machine.START_ADDR:high], errs
		}

		cursor.Line++
		cursor.Byte += int64(len(line) + 1)
		cursor.LineByte += int64(len(line) + 1)
	}

	// Label
	// - Validate and resolve instruction label references
	// - Add labels to symbol table
	for _, ref := range labelRefs {
		addr, exists := labels[ref.Label]

		if !exists {
			errs = append(errs, &UnknownLabelError{ref.Position, ref.Label})
			continue
		}

		image[ref.Addr] |= uint8((addr >> 8) & 0xF)
		image[ref.Addr+1] = uint8(addr)
	}

	// Word
	// - Resolve word directives whose arguments were unresolved label
	//   references
	for _, ref := range wordRefs {
		addr, exists := labels[ref.Label]

		if !exists {
			errs = append(errs, &UnknownLabelError{ref.Position, ref.Label})
			continue
		}

		image[ref.Addr] = uint8(addr >> 8)
		image[ref.Addr+1] = uint8(addr)
	}

	if symtable != nil {
		for label, addr := range labels {
			symtable.Labels[addr] = label
		}
	}

	return image[machine.START_ADDR:high], errs
}
