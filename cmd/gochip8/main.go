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
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gochip8/gochip8/pkg/clock"
	"github.com/gochip8/gochip8/pkg/debugger"
	"github.com/gochip8/gochip8/pkg/machine"
)

var helpvar bool
var debugvar bool
var scalevar int
var shouldexit bool

const usage = "gochip8 filename"

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(&debugvar, "debug", false, "Runs the machine in a debug CLI")
	flag.IntVar(&scalevar, "scale", 10, "Screen pixels per framebuffer pixel")
	flag.Parse()
}

func gochip8() int {
	if helpvar {
		fmt.Println(usage)
		return 0
	}

	args := flag.Args()

	if len(args) != 1 {
		log.Println(usage)
		return 1
	}

	file, err := os.Open(args[0])

	if err != nil {
		log.Println(err)
		return 1
	}

	defer file.Close()

	var mc machine.Machine

	if err := mc.LoadROM(file); err != nil {
		log.Println(err)
		return 1
	}

	host, err := newSDLHost(scalevar)

	if err != nil {
		log.Println(err)
		return 1
	}

	defer host.close()

	mc.Display.Renderer = host
	mc.Keys = host

	if debugvar {
		var dbg debugger.Debugger
		dbg.HandleBreak = handleBreak
		dbg.Out = os.Stdout

		// Halt before the first instruction
		dbg.Break = true

		mc.Debugger = &dbg

		c := make(chan os.Signal, 1)
		defer close(c)

		signal.Notify(c, os.Interrupt)
		go func() {
			for range c {
				fmt.Println()
				dbg.Break = true
			}
		}()

		enterRawTerm()
		defer exitRawTerm()
	}

	sched := clock.NewScheduler(
		clock.DefaultCyclePeriod,
		clock.DefaultTimerPeriod,
	)
	sched.Start()

	// Timer decrement shares this loop with the cycle, so timers stall
	// while the machine blocks on key-wait or at the debug prompt
	for !shouldexit {
		host.pumpEvents()

		if shouldexit {
			break
		}

		if err := mc.Step(); err != nil {
			if errors.Is(err, errQuitRequested) ||
				errors.Is(err, debugger.ErrQuit) {
				break
			}

			log.Println(err)
			return 1
		}

		if sched.TimerDue() {
			mc.State.TickTimers()
		}

		sched.WaitCycle()
	}

	return 0
}

func main() {
	os.Exit(gochip8())
}
