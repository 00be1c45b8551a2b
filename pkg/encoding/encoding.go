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

// Package encoding decodes the textual operands shared by the debugger and
// assembler grammars.
package encoding

import (
	"errors"
	"strconv"
	"strings"
)

// Decodes a hexadecimal string in the formats: 0xFFFF, xFFFF, 0xFF, xFF
func DecodeHex(s string) (uint16, error) {
	if i := strings.IndexAny(s, "xX"); i == 0 {
		s = "0" + s
	} else if i == -1 || i != 1 {
		return 0, errors.New("Invalid hex string")
	}

	result, err := strconv.ParseUint(s, 0, 16)

	if err != nil {
		return 0, err
	}

	return uint16(result), nil
}

// Decodes a decimal string in the formats: #255, 255, #-128, -128
func DecodeInt(s string) (int16, error) {
	if i := strings.Index(s, "#"); i == 0 {
		s = s[1:]
	}

	result, err := strconv.ParseInt(s, 10, 16)

	if err != nil {
		return 0, err
	}

	return int16(result), nil
}

// Decodes a register operand in the formats: v0..vF, V0..VF
func DecodeRegister(s string) (uint8, error) {
	if len(s) != 2 || (s[0] != 'v' && s[0] != 'V') {
		return 0, errors.New("Invalid register name")
	}

	result, err := strconv.ParseUint(s[1:], 16, 8)

	if err != nil {
		return 0, err
	}

	return uint8(result), nil
}
