/*
 * S370 - Apple 1 system bus overlay
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package apple1 overlays the Apple 1 memory map and PIA 6820-style
// keyboard/display registers onto a generic bus.Bus.
package apple1

import (
	"time"

	"github.com/sim6502/apple1/bus"
	"github.com/sim6502/apple1/terminal"
)

const (
	kbdData    = 0xD010 // keyboard latch, bit 7 set when a key is waiting
	kbdControl = 0xD011 // keyboard control register, polled for new keys
	dspData    = 0xD012 // display data/control register
	dspControl = 0xD013 // display control register, unused by software
)

const (
	ramEnd    = 0x7FFF
	basicBase = 0xE000
	basicEnd  = 0xEFFF
	wozBase   = 0xFF00
	wozEnd    = 0xFFFF
)

// SystemBus is the Apple 1 address space: 32KiB of RAM, the WozMon and
// BASIC ROMs, and the PIA keyboard/display registers, layered over a
// plain bus.Bus.
type SystemBus struct {
	*bus.Bus

	term terminal.Terminal
	kbd  uint8 // keyboard latch, high bit set while a key is pending
	dsp  uint8 // last raw byte written to the display register

	// Delay models the Apple 1's slow serial display; every character
	// written to $D012 sleeps this long before returning, the same way
	// the original console paced output through a real terminal.
	Delay time.Duration
}

// New returns a SystemBus with RAM, ROM and I/O permissions set up per
// the Apple 1 memory map. The ROM windows start empty; callers install
// the WozMon and BASIC images themselves (see bus.LoadROMFile).
func New(term terminal.Terminal, strict bool) *SystemBus {
	b := bus.New(strict)
	// $8000-$FFFF starts fully closed; the ROM windows are reopened
	// read-only below. The I/O registers need no permission bits since
	// Read and Write intercept them before the bus is consulted. RAM
	// below $8000 keeps the bus's default full read/write.
	b.SetRange(0x8000, 0xFFFF, false, false)
	b.SetRange(basicBase, basicEnd, true, false)
	b.SetRange(wozBase, wozEnd, true, false)

	return &SystemBus{
		Bus:   b,
		term:  term,
		Delay: 5 * time.Millisecond,
	}
}

// Read intercepts the four PIA registers and otherwise delegates to the
// embedded bus.
func (s *SystemBus) Read(addr uint16) (uint8, error) {
	switch addr {
	case kbdData:
		v := s.kbd
		s.kbd &^= 0x80
		return v, nil
	case kbdControl:
		return s.pollKeyboard(), nil
	case dspData, dspControl:
		return 0, nil
	default:
		return s.Bus.Read(addr)
	}
}

// pollKeyboard services $D011 reads: it polls the terminal for a new
// key, folds it into the Apple 1's expected character set, and latches
// it for a following $D010 read. A reset or halt request from the
// console (Ctrl-R / Ctrl-E) is raised as a bus interrupt, and the key
// is still latched as a character like any other.
func (s *SystemBus) pollKeyboard() uint8 {
	key, ok := s.term.PollKey()
	if !ok {
		return 0
	}

	switch key {
	case 18: // Ctrl-R
		s.RequestInterrupt(bus.Reset)
	case 5: // Ctrl-E
		s.RequestInterrupt(bus.Halt)
	}

	if key >= 'a' && key <= 'z' {
		key -= 32
	}
	if key == 10 { // LF -> CR
		key = 13
	}
	if key == 127 { // DEL -> underscore, matching the Apple 1 keyboard
		key = '_'
	}

	s.kbd = key | 0x80
	return 0x80
}

// Write intercepts the display register and otherwise delegates to the
// embedded bus.
func (s *SystemBus) Write(addr uint16, value uint8) error {
	switch addr {
	case dspData:
		s.dsp = value
		s.writeDisplay(value &^ 0x80)
		return nil
	case kbdControl, dspControl:
		return nil
	default:
		return s.Bus.Write(addr, value)
	}
}

// writeDisplay emits a single character to the console, folding it into
// the Apple 1's uppercase-only character set and honoring the fixed
// serial delay between characters.
func (s *SystemBus) writeDisplay(value uint8) {
	if value > 95 {
		value -= 32
	}
	if s.Delay > 0 {
		time.Sleep(s.Delay)
	}
	if value == 13 { // CR -> LF on emission
		value = 10
	}
	if (value >= 32 && value <= 95) || value == 10 {
		s.term.Emit(value)
	}
	s.term.Refresh()
}
