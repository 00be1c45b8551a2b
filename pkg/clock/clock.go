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

// Package clock paces the two fixed-rate gates of the emulation loop: the
// instruction cycle gate and the timer decrement gate. The gates share one
// monotonic time source but keep independent phase.
package clock

import (
	"time"
)

const (
	// 500 instructions per second
	DefaultCyclePeriod = 2 * time.Millisecond

	// 60 timer decrements per second
	DefaultTimerPeriod = time.Second / 60
)

type Scheduler struct {
	CyclePeriod time.Duration
	TimerPeriod time.Duration

	now   func() time.Time
	sleep func(time.Duration)

	lastCycle time.Time
	lastTimer time.Time
}

func NewScheduler(cycle, timer time.Duration) *Scheduler {
	return &Scheduler{
		CyclePeriod: cycle,
		TimerPeriod: timer,
		now:         time.Now,
		sleep:       time.Sleep,
	}
}

// Start resets both gate references to the current tick.
func (s *Scheduler) Start() {
	t := s.now()
	s.lastCycle = t
	s.lastTimer = t
}

// WaitCycle blocks until the cycle period has elapsed since the previous
// cycle, then advances the cycle reference. A loop iteration that already
// overran the period does not block.
func (s *Scheduler) WaitCycle() {
	elapsed := s.now().Sub(s.lastCycle)

	if elapsed < s.CyclePeriod {
		s.sleep(s.CyclePeriod - elapsed)
	}

	s.lastCycle = s.now()
}

// TimerDue reports whether the timer period has elapsed since the last
// decrement, resetting the gate reference when it has. A loop iteration that
// overran several periods still yields a single decrement; time blocked on
// key-wait or at a debug prompt is not fast-forwarded.
func (s *Scheduler) TimerDue() bool {
	t := s.now()

	if t.Sub(s.lastTimer) >= s.TimerPeriod {
		s.lastTimer = t
		return true
	}

	return false
}
