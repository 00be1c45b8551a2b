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

package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/gochip8/gochip8/pkg/debugger"
	"github.com/gochip8/gochip8/pkg/machine"
)

// debugREPL blocks for operator commands until one of them resumes
// execution or quits. The terminal is returned to cooked mode for the
// duration of the prompt.
func debugREPL(dbg *debugger.Debugger, mc *machine.Machine) error {
	exitRawTerm()
	defer enterRawTerm()

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\033[1;30m>>\033[0m ")

		if !scanner.Scan() {
			fmt.Println()
			return debugger.ErrQuit
		}

		action, err := dbg.Execute(mc, scanner.Text())

		if err != nil {
			log.Println(err)
			continue
		}

		switch action {
		case debugger.Resume:
			return nil

		case debugger.StepOne:
			dbg.Break = true
			return nil

		case debugger.Quit:
			return debugger.ErrQuit
		}
	}
}

func handleBreak(dbg *debugger.Debugger, mc *machine.Machine) error {
	dbg.PrintOpcode(&mc.State, mc.State.PC)
	dbg.Break = false
	return debugREPL(dbg, mc)
}
