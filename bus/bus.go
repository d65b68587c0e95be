/*
 * S370 - System bus: flat address space with per-byte access control
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

// Package bus implements a generic 64KiB byte-addressable bus with
// per-address read/write permission bits and a single pending-interrupt
// slot. Machine-specific overlays (see package apple1) embed a Bus and
// intercept the address ranges they give special meaning.
package bus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sim6502/apple1/simerr"
)

const Size = 0x10000

// Interrupt is a closed set of conditions a Bus can signal to a CPU. The
// zero value, None, means nothing is pending.
type Interrupt uint8

const (
	None Interrupt = iota
	Reset
	Halt
	Irq
	Nmi
)

func (i Interrupt) String() string {
	switch i {
	case None:
		return "NONE"
	case Reset:
		return "RES"
	case Halt:
		return "HLT"
	case Irq:
		return "IRQ"
	case Nmi:
		return "NMI"
	default:
		return "UNKNOWN"
	}
}

// Bus is a flat 64KiB memory with independent readable/writable bits per
// address and a single latched interrupt condition.
type Bus struct {
	mem      [Size]uint8
	readable [Size]bool
	writable [Size]bool

	strict    bool
	interrupt Interrupt
	pending   bool
}

// New returns a Bus that is fully readable and writable everywhere. strict
// controls what Read/Write do when they touch an address that has been
// marked off limits: under strict accounting they return a SimError, and
// otherwise a read returns 0 and a write is silently dropped.
func New(strict bool) *Bus {
	b := &Bus{strict: strict}
	for i := range b.readable {
		b.readable[i] = true
		b.writable[i] = true
	}
	return b
}

// StrictMemory reports whether out-of-range accesses currently raise a
// SimError (true) or silently fall back to a no-op read/write (false).
func (b *Bus) StrictMemory() bool {
	return b.strict
}

// ToggleStrictMemory flips strict-memory accounting and returns the new
// value, for the REPL's TOGGLE command.
func (b *Bus) ToggleStrictMemory() bool {
	b.strict = !b.strict
	return b.strict
}

// SetRange marks start..end inclusive with the given permissions.
func (b *Bus) SetRange(start, end uint16, readable, writable bool) {
	for addr := uint32(start); addr <= uint32(end); addr++ {
		b.readable[addr] = readable
		b.writable[addr] = writable
	}
}

// Read returns the byte at addr, honoring the readable permission bit.
func (b *Bus) Read(addr uint16) (uint8, error) {
	if !b.readable[addr] {
		if b.strict {
			return 0, simerr.New("read from non-readable address $%04X", addr)
		}
		return 0, nil
	}
	return b.mem[addr], nil
}

// Write stores value at addr, honoring the writable permission bit.
func (b *Bus) Write(addr uint16, value uint8) error {
	if !b.writable[addr] {
		if b.strict {
			return simerr.New("write to non-writable address $%04X", addr)
		}
		return nil
	}
	b.mem[addr] = value
	return nil
}

// Poke writes directly to the backing array, bypassing the writable
// permission bit. Used by ROM loaders to install ROM images and by
// REPL deposit commands that explicitly want to override protection.
func (b *Bus) Poke(addr uint16, value uint8) {
	b.mem[addr] = value
}

// Peek reads directly from the backing array, bypassing the readable
// permission bit. Used by the REPL's examine command.
func (b *Bus) Peek(addr uint16) uint8 {
	return b.mem[addr]
}

// RequestInterrupt latches kind as the pending interrupt. A later request
// overwrites an earlier, unconsumed one.
func (b *Bus) RequestInterrupt(kind Interrupt) {
	b.interrupt = kind
	b.pending = true
}

// PendingInterrupt reports the latched interrupt, if any.
func (b *Bus) PendingInterrupt() (Interrupt, bool) {
	if !b.pending {
		return None, false
	}
	return b.interrupt, true
}

// ClearInterrupt consumes the latched interrupt.
func (b *Bus) ClearInterrupt() {
	b.pending = false
	b.interrupt = None
}

// LoadFile installs the contents of r at origin using one of three
// formats:
//
//	"raw" - bytes are copied verbatim starting at origin.
//	"hex" - whitespace-separated two-digit hex byte values, loaded
//	        starting at origin.
//	"woz" - line-oriented text; the first whitespace-separated token on
//	        every non-empty line is an address and is discarded, and
//	        every remaining token is a hex byte value, loaded
//	        consecutively starting at origin.
//
// LoadFile always writes through Poke, ignoring write protection, since
// it models installing ROM/RAM images rather than a running program
// storing to memory.
func (b *Bus) LoadFile(r io.Reader, origin uint16, format string) error {
	switch format {
	case "raw":
		return b.loadRaw(r, origin)
	case "hex":
		return b.loadHex(r, origin)
	case "woz":
		return b.loadWoz(r, origin)
	default:
		return simerr.New("unknown ROM file format %q", format)
	}
}

func (b *Bus) loadRaw(r io.Reader, origin uint16) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	addr := uint32(origin)
	for _, by := range data {
		if addr >= Size {
			return simerr.New("ROM image overruns address space at $%04X", addr)
		}
		b.Poke(uint16(addr), by)
		addr++
	}
	return nil
}

func (b *Bus) loadHex(r io.Reader, origin uint16) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	addr := uint32(origin)
	for _, tok := range strings.Fields(string(data)) {
		v, err := strconv.ParseUint(tok, 16, 8)
		if err != nil {
			return fmt.Errorf("invalid hex byte %q: %w", tok, err)
		}
		if addr >= Size {
			return simerr.New("ROM image overruns address space at $%04X", addr)
		}
		b.Poke(uint16(addr), uint8(v))
		addr++
	}
	return nil
}

func (b *Bus) loadWoz(r io.Reader, origin uint16) error {
	scanner := bufio.NewScanner(r)
	addr := uint32(origin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		fields = fields[1:] // each line leads with an address token, discarded
		for _, tok := range fields {
			v, err := strconv.ParseUint(tok, 16, 8)
			if err != nil {
				return fmt.Errorf("invalid woz byte %q: %w", tok, err)
			}
			if addr >= Size {
				return simerr.New("ROM image overruns address space at $%04X", addr)
			}
			b.Poke(uint16(addr), uint8(v))
			addr++
		}
	}
	return scanner.Err()
}

// LoadROMFile opens name and loads it via LoadFile. Convenience wrapper
// used by the driver.
func LoadROMFile(b *Bus, name string, origin uint16, format string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return b.LoadFile(f, origin, format)
}
