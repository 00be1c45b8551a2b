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

package assembler_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/gochip8/gochip8/pkg/assembler"
)

type testCase struct {
	Name     string
	Input    string
	Output   []uint8
	SymTable *assembler.SymTable
}

type failCase struct {
	Name  string
	Input string
	Error error
}

func testAssemblerSuccess(t *testing.T, test *testCase) {
	var symtable assembler.SymTable
	var symtarget *assembler.SymTable = nil

	if test.SymTable != nil {
		symtable.Symbols = make(map[uint16]int64)
		symtable.Labels = make(map[uint16]string)
		symtarget = &symtable
	}

	result, errs := assembler.AssembleSource(
		strings.NewReader(test.Input), symtarget,
	)

	if len(errs) > 0 {
		t.Fatal(errs[0])
	}

	if !reflect.DeepEqual(result, test.Output) {
		t.Fatalf(
			"Encoding mismatch\n"+
				"want:% 02X\n"+
				"have:% 02X",
			test.Output,
			result,
		)
	}

	if test.SymTable != nil {
		if !reflect.DeepEqual(symtable.Symbols, test.SymTable.Symbols) {
			t.Fatalf(
				"Symtable symbol mismatch\n"+
					"want:%v\n"+
					"have:%v",
				test.SymTable.Symbols,
				symtable.Symbols,
			)
		}

		if !reflect.DeepEqual(symtable.Labels, test.SymTable.Labels) {
			t.Fatalf(
				"Symtable label mismatch\n"+
					"want:%v\n"+
					"have:%v",
				test.SymTable.Labels,
				symtable.Labels,
			)
		}
	}
}

func testAssemblerFail(t *testing.T, test *failCase) {
	file := strings.NewReader(test.Input)

	_, errs := assembler.AssembleSource(file, nil)

	if test.Error == nil {
		panic("Fail case missing error value")
	}

	if len(errs) == 0 {
		t.Fatalf(
			"%s produced error of incorrect type"+
				"\nwant:%T (test.Error)\nhave:<nil>",
			t.Name(),
			test.Error,
		)
	}

	if len(errs) > 1 {
		errTypes := make([]reflect.Type, 0, len(errs))
		for _, err := range errs {
			errTypes = append(errTypes, reflect.TypeOf(err))
		}

		t.Fatalf(
			"%s produced multiple errors:\n\twant:%T (test.Error)\n\thave:%v",
			t.Name(),
			test.Error,
			errTypes,
		)
	}

	if reflect.TypeOf(errs[0]) != reflect.TypeOf(test.Error) {
		t.Fatalf(
			"%s produced error of incorrect type"+
				"\nwant:%T (test.Error)\nhave:%T",
			t.Name(),
			test.Error,
			errs[0],
		)
	}
}

func testSuccess(t *testing.T, tests []testCase) {
	t.Run("Success", func(t *testing.T) {
		for _, test := range tests {
			t.Run(test.Name, func(t *testing.T) {
				testAssemblerSuccess(t, &test)
			})
		}
	})
}

func testFail(t *testing.T, tests []failCase) {
	t.Run("Fail", func(t *testing.T) {
		for _, test := range tests {
			t.Run(test.Name, func(t *testing.T) {
				testAssemblerFail(t, &test)
			})
		}
	})
}

// CLS  |0000    |0000|1110|0000       | Clear the display
// RET  |0000    |0000|1110|1110       | Return from subroutine
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestSystem(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "CLS",
			Input:  `CLS`,
			Output: []uint8{0x00, 0xE0},
		},
		{
			Name:   "RET",
			Input:  `RET`,
			Output: []uint8{0x00, 0xEE},
		},
		{
			Name:   "SYS",
			Input:  `SYS x2A0`,
			Output: []uint8{0x02, 0xA0},
		},
		{
			Name:   "Comments and whitespace",
			Input:  "  CLS ; clear the screen",
			Output: []uint8{0x00, 0xE0},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "CLS Operands",
			Input: `CLS V0`,
			Error: &assembler.InvalidNumArgumentsError{},
		},
		{
			Name:  "Unexpected Character",
			Input: `CLS $`,
			Error: &assembler.UnexpectedCharacterError{},
		},
	})
}

// JP   |0001    |nnn                  | Jump to nnn
// CALL |0010    |nnn                  | Call subroutine at nnn
// JP   |1011    |nnn                  | Jump to nnn + V0
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestJump(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "JP",
			Input:  `JP x300`,
			Output: []uint8{0x13, 0x00},
		},
		{
			Name:   "JP V0",
			Input:  `JP V0, x300`,
			Output: []uint8{0xB3, 0x00},
		},
		{
			Name:   "CALL",
			Input:  `CALL x2A2`,
			Output: []uint8{0x22, 0xA2},
		},
		{
			Name:   "Backward Label",
			Input:  "MAIN CLS\nJP MAIN",
			Output: []uint8{0x00, 0xE0, 0x12, 0x00},
		},
		{
			Name:   "Forward Label",
			Input:  "JP DONE\nCLS\nDONE CLS",
			Output: []uint8{0x12, 0x04, 0x00, 0xE0, 0x00, 0xE0},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "JP No Operands",
			Input: `JP`,
			Error: &assembler.InvalidNumArgumentsError{},
		},
		{
			Name:  "JP Bad Offset Register",
			Input: `JP V1, x300`,
			Error: &assembler.InvalidRegisterError{},
		},
		{
			Name:  "JP Unknown Label",
			Input: `JP NOWHERE`,
			Error: &assembler.UnknownLabelError{},
		},
		{
			Name:  "JP Oversized Address",
			Input: `JP x1000`,
			Error: &assembler.OversizedLiteralError{},
		},
	})
}

// SE   |0011    |x   |kk              | Skip next if Vx == kk
// SE   |0101    |x   |y   |0000       | Skip next if Vx == Vy
// SNE  |0100    |x   |kk              | Skip next if Vx != kk
// SNE  |1001    |x   |y   |0000       | Skip next if Vx != Vy
// SKP  |1110    |x   |1001|1110       | Skip next if key Vx held
// SKNP |1110    |x   |1010|0001       | Skip next if key Vx not held
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestSkip(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "SE Byte",
			Input:  `SE V1, x2A`,
			Output: []uint8{0x31, 0x2A},
		},
		{
			Name:   "SE Register",
			Input:  `SE V1, V2`,
			Output: []uint8{0x51, 0x20},
		},
		{
			Name:   "SNE Byte",
			Input:  `SNE V1, #42`,
			Output: []uint8{0x41, 0x2A},
		},
		{
			Name:   "SNE Register",
			Input:  `SNE V1, V2`,
			Output: []uint8{0x91, 0x20},
		},
		{
			Name:   "SKP",
			Input:  `SKP V1`,
			Output: []uint8{0xE1, 0x9E},
		},
		{
			Name:   "SKNP",
			Input:  `SKNP V1`,
			Output: []uint8{0xE1, 0xA1},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "SE Bad Register",
			Input: `SE V16, x2A`,
			Error: &assembler.InvalidRegisterError{},
		},
		{
			Name:  "SE Oversized Byte",
			Input: `SE V1, x100`,
			Error: &assembler.OversizedLiteralError{},
		},
		{
			Name:  "SKP Literal",
			Input: `SKP #1`,
			Error: &assembler.InvalidOperandError{},
		},
	})
}

// ADD  |0111    |x   |kk              | Vx += kk
// ADD  |1000    |x   |y   |0100       | Vx += Vy, VF carry
// ADD  |1111    |x   |0001|1110       | I += Vx
// OR   |1000    |x   |y   |0001       | Vx |= Vy
// AND  |1000    |x   |y   |0010       | Vx &= Vy
// XOR  |1000    |x   |y   |0011       | Vx ^= Vy
// SUB  |1000    |x   |y   |0101       | Vx -= Vy, VF no-borrow
// SUBN |1000    |x   |y   |0111       | Vx = Vy - Vx, VF no-borrow
// SHR  |1000    |x   |y   |0110       | Vx >>= 1, VF low bit
// SHL  |1000    |x   |y   |1110       | Vx <<= 1, VF high bit
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestArithmetic(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "ADD Byte",
			Input:  `ADD V1, #16`,
			Output: []uint8{0x71, 0x10},
		},
		{
			Name:   "ADD Register",
			Input:  `ADD V1, V2`,
			Output: []uint8{0x81, 0x24},
		},
		{
			Name:   "ADD I",
			Input:  `ADD I, V1`,
			Output: []uint8{0xF1, 0x1E},
		},
		{
			Name:   "OR",
			Input:  `OR V1, V2`,
			Output: []uint8{0x81, 0x21},
		},
		{
			Name:   "AND",
			Input:  `AND V1, V2`,
			Output: []uint8{0x81, 0x22},
		},
		{
			Name:   "XOR",
			Input:  `XOR V1, V2`,
			Output: []uint8{0x81, 0x23},
		},
		{
			Name:   "SUB",
			Input:  `SUB V1, V2`,
			Output: []uint8{0x81, 0x25},
		},
		{
			Name:   "SUBN",
			Input:  `SUBN V1, V2`,
			Output: []uint8{0x81, 0x27},
		},
		{
			Name:   "SHR",
			Input:  `SHR V1`,
			Output: []uint8{0x81, 0x06},
		},
		{
			Name:   "SHR Pair",
			Input:  `SHR V1, V2`,
			Output: []uint8{0x81, 0x26},
		},
		{
			Name:   "SHL",
			Input:  `SHL V1`,
			Output: []uint8{0x81, 0x0E},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "ADD Oversized Byte",
			Input: `ADD V1, #256`,
			Error: &assembler.OversizedLiteralError{},
		},
		{
			Name:  "OR Literal",
			Input: `OR V1, #2`,
			Error: &assembler.InvalidOperandError{},
		},
		{
			Name:  "SUB Missing Operand",
			Input: `SUB V1`,
			Error: &assembler.InvalidNumArgumentsError{},
		},
	})
}

// LD   |0110    |x   |kk              | Vx = kk
// LD   |1000    |x   |y   |0000       | Vx = Vy
// LD   |1010    |nnn                  | I = nnn
// LD   |1111    |x   |...             | Timer, key, font, BCD, transfer
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestLoad(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "LD Byte",
			Input:  `LD V1, x2A`,
			Output: []uint8{0x61, 0x2A},
		},
		{
			Name:   "LD Negative Byte",
			Input:  `LD V1, #-1`,
			Output: []uint8{0x61, 0xFF},
		},
		{
			Name:   "LD Register",
			Input:  `LD V1, V2`,
			Output: []uint8{0x81, 0x20},
		},
		{
			Name:   "LD I",
			Input:  `LD I, x300`,
			Output: []uint8{0xA3, 0x00},
		},
		{
			Name:   "LD I Label",
			Input:  "LD I, SPRITE\nSPRITE .BYTE xFF",
			Output: []uint8{0xA2, 0x02, 0xFF},
		},
		{
			Name:   "LD Delay Read",
			Input:  `LD V1, DT`,
			Output: []uint8{0xF1, 0x07},
		},
		{
			Name:   "LD Key Wait",
			Input:  `LD V1, K`,
			Output: []uint8{0xF1, 0x0A},
		},
		{
			Name:   "LD Delay Write",
			Input:  `LD DT, V1`,
			Output: []uint8{0xF1, 0x15},
		},
		{
			Name:   "LD Sound Write",
			Input:  `LD ST, V1`,
			Output: []uint8{0xF1, 0x18},
		},
		{
			Name:   "LD Font",
			Input:  `LD F, V1`,
			Output: []uint8{0xF1, 0x29},
		},
		{
			Name:   "LD BCD",
			Input:  `LD B, V1`,
			Output: []uint8{0xF1, 0x33},
		},
		{
			Name:   "LD Store",
			Input:  `LD [I], V5`,
			Output: []uint8{0xF5, 0x55},
		},
		{
			Name:   "LD Load",
			Input:  `LD VA, [I]`,
			Output: []uint8{0xFA, 0x65},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "LD Missing Operand",
			Input: `LD V1`,
			Error: &assembler.InvalidNumArgumentsError{},
		},
		{
			Name:  "LD Bad Source",
			Input: `LD V1, Q`,
			Error: &assembler.UnknownIdentifierError{},
		},
		{
			Name:  "LD Bad Destination",
			Input: `LD Q, V1`,
			Error: &assembler.UnknownIdentifierError{},
		},
		{
			Name:  "LD Oversized Byte",
			Input: `LD V1, x100`,
			Error: &assembler.OversizedLiteralError{},
		},
	})
}

// RND  |1100    |x   |kk              | Vx = rand() & kk
// DRW  |1101    |x   |y   |n          | Draw n-byte sprite at Vx,Vy
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestRandomAndDraw(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "RND",
			Input:  `RND V1, xFF`,
			Output: []uint8{0xC1, 0xFF},
		},
		{
			Name:   "DRW",
			Input:  `DRW V1, V2, x5`,
			Output: []uint8{0xD1, 0x25},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "DRW Oversized Height",
			Input: `DRW V1, V2, x10`,
			Error: &assembler.OversizedLiteralError{},
		},
		{
			Name:  "RND Register Mask",
			Input: `RND V1, V2`,
			Error: &assembler.InvalidOperandError{},
		},
	})
}

func TestDirectives(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "Byte",
			Input:  `.BYTE x3C`,
			Output: []uint8{0x3C},
		},
		{
			Name:   "Byte List",
			Input:  `.BYTE x3C, x42, x81`,
			Output: []uint8{0x3C, 0x42, 0x81},
		},
		{
			Name:   "Word",
			Input:  `.WORD xABCD`,
			Output: []uint8{0xAB, 0xCD},
		},
		{
			Name:   "Word Label",
			Input:  "JP MAIN\nTABLE .WORD MAIN\nMAIN CLS",
			Output: []uint8{0x12, 0x04, 0x02, 0x04, 0x00, 0xE0},
		},
		{
			Name:   "Origin",
			Input:  ".ORIG x204\nCLS",
			Output: []uint8{0x00, 0x00, 0x00, 0x00, 0x00, 0xE0},
		},
		{
			Name:   "End",
			Input:  "CLS\n.END\nCLS",
			Output: []uint8{0x00, 0xE0},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "Origin Below Load Address",
			Input: `.ORIG x100`,
			Error: &assembler.InvalidOriginError{},
		},
		{
			Name:  "Byte Missing Operand",
			Input: `.BYTE`,
			Error: &assembler.InvalidNumArgumentsError{},
		},
		{
			Name:  "Byte Oversized",
			Input: `.BYTE x100`,
			Error: &assembler.OversizedLiteralError{},
		},
		{
			Name:  "End Operands",
			Input: `.END x200`,
			Error: &assembler.InvalidNumArgumentsError{},
		},
		{
			Name:  "Unknown Directive",
			Input: `.STRINGZ foo`,
			Error: &assembler.UnknownIdentifierError{},
		},
	})
}

func TestLabels(t *testing.T) {
	testFail(t, []failCase{
		{
			Name:  "Redeclared",
			Input: "A CLS\nA CLS",
			Error: &assembler.RedeclaredLabelError{},
		},
		{
			Name:  "Unknown Keyword",
			Input: `FOO BAR`,
			Error: &assembler.UnknownIdentifierError{},
		},
	})
}

func TestSymTable(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "Symbols",
			Input:  "MAIN CLS\nJP MAIN",
			Output: []uint8{0x00, 0xE0, 0x12, 0x00},
			SymTable: &assembler.SymTable{
				Symbols: map[uint16]int64{
					0x0200: 0,
					0x0202: 9,
				},
				Labels: map[uint16]string{
					0x0200: "MAIN",
				},
			},
		},
	})
}
