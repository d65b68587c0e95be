/*
 * S370 - MOS 6502 instruction execution engine
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

// Package cpu implements the MOS 6502 instruction set: all 151
// documented opcodes, the 13 addressing modes, and the status-register
// packing quirks (the B flag and bit 5) that differ between a BRK/PHP
// push and a PLP/RTI pull. Hardware IRQ/NMI interrupts are not
// serviced, so no interrupt-style status push is ever made.
package cpu

import (
	"time"

	"github.com/sim6502/apple1/bus"
	"github.com/sim6502/apple1/simerr"
)

const (
	stackBase    = 0x0100
	resetVector  = 0xFFFC
	breakVector  = 0xFFFE
	stackPageLen = 0x100
)

// Memory is the narrow interface the CPU needs from whatever bus it is
// attached to. bus.Bus and apple1.SystemBus both satisfy it.
type Memory interface {
	Read(addr uint16) (uint8, error)
	Write(addr uint16, value uint8) error
	PendingInterrupt() (bus.Interrupt, bool)
	ClearInterrupt()
}

// CPU holds the full MOS 6502 register file and execution state: the
// three general registers, stack pointer, program counter, the seven
// processor status bits tracked independently rather than packed into a
// single byte, and the breakpoint/halt bookkeeping needed to single-step
// through a stop exactly once.
type CPU struct {
	A, X, Y, S uint8
	PC         uint16

	N, V, D, I, Z, C bool
	// B does not correspond to a physical flip-flop on the 6502; it is
	// only ever meaningful as the value written into bit 4 of a pushed
	// status byte. PLP and RTI never restore it from the stack.
	B bool

	mem     Memory
	table   [256]opcodeEntry
	halted  bool
	Delay   time.Duration // artificial per-instruction delay, 0 disables

	breakpoints  map[uint16]struct{}
	lastBreak    uint16
	hasLastBreak bool
}

// New returns a CPU wired to mem with the dispatch table built and the
// CPU in the halted state; call Reset to load the reset vector and
// start fetching instructions.
func New(mem Memory) *CPU {
	c := &CPU{
		mem:         mem,
		breakpoints: make(map[uint16]struct{}),
		halted:      true,
	}
	c.table = buildTable()
	return c
}

// Halted reports whether Step will refuse to execute further
// instructions until Reset or Resume clears the halted flag.
func (c *CPU) Halted() bool {
	return c.halted
}

// Resume clears the halted flag without touching any register, used by
// the REPL's continue/step commands after an operator-initiated stop.
func (c *CPU) Resume() {
	c.halted = false
}

// Reset loads PC from the reset vector and sets the interrupt-disable
// flag. Every other register is left unchanged, matching real 6502
// reset behavior.
func (c *CPU) Reset() error {
	pc, err := c.readWord(resetVector)
	if err != nil {
		return err
	}
	c.PC = pc
	c.I = true
	c.halted = false
	c.hasLastBreak = false
	return nil
}

// AddBreakpoint arms a stop at addr; Step halts the CPU the first time
// PC reaches addr and resumes transparently the next time through,
// exactly once, so that stepping past a breakpoint does not re-trigger
// it until the CPU has left and returned to that address.
func (c *CPU) AddBreakpoint(addr uint16) {
	c.breakpoints[addr] = struct{}{}
}

func (c *CPU) RemoveBreakpoint(addr uint16) {
	delete(c.breakpoints, addr)
	if c.hasLastBreak && c.lastBreak == addr {
		c.hasLastBreak = false
	}
}

// SetBreakpoint toggles addr in the breakpoint set and reports whether
// it was added (true) or removed (false).
func (c *CPU) SetBreakpoint(addr uint16) bool {
	if c.HasBreakpoint(addr) {
		c.RemoveBreakpoint(addr)
		return false
	}
	c.AddBreakpoint(addr)
	return true
}

// ClearBreakpoints empties the breakpoint set and reports how many were
// present.
func (c *CPU) ClearBreakpoints() int {
	n := len(c.breakpoints)
	c.breakpoints = make(map[uint16]struct{})
	c.hasLastBreak = false
	return n
}

func (c *CPU) Breakpoints() []uint16 {
	addrs := make([]uint16, 0, len(c.breakpoints))
	for a := range c.breakpoints {
		addrs = append(addrs, a)
	}
	return addrs
}

// HasBreakpoint reports whether addr is currently armed.
func (c *CPU) HasBreakpoint(addr uint16) bool {
	_, ok := c.breakpoints[addr]
	return ok
}

// Step executes exactly one instruction, or services a pending
// interrupt, or arms/disarms a breakpoint stop. Interrupts are serviced
// before breakpoints are checked, and a breakpoint that was just
// serviced on the previous call
// is allowed through once before it can fire again.
func (c *CPU) Step() error {
	if c.halted {
		return simerr.New("cannot step: CPU is halted")
	}

	if kind, ok := c.mem.PendingInterrupt(); ok {
		c.mem.ClearInterrupt()
		switch kind {
		case bus.Reset:
			return c.Reset()
		case bus.Halt:
			c.halted = true
			return nil
		default:
			return simerr.New("unsupported interrupt condition: %s", kind)
		}
	}

	if _, armed := c.breakpoints[c.PC]; armed {
		if !c.hasLastBreak || c.lastBreak != c.PC {
			c.halted = true
			c.lastBreak = c.PC
			c.hasLastBreak = true
			return nil
		}
		c.hasLastBreak = false
	}

	if c.Delay > 0 {
		time.Sleep(c.Delay)
	}

	opcodePC := c.PC
	opcode, err := c.mem.Read(c.PC)
	if err != nil {
		return err
	}
	c.PC++

	entry := c.table[opcode]
	if entry.op == nil {
		c.halted = true
		return simerr.New("unrecognized opcode $%02X at $%04X", opcode, opcodePC)
	}

	var addr uint16
	var isAcc bool
	if entry.mode != nil {
		addr, isAcc, err = entry.mode(c)
		if err != nil {
			return err
		}
	}
	return entry.op(c, addr, isAcc)
}

// readWord reads a little-endian 16-bit value at addr, addr+1.
func (c *CPU) readWord(addr uint16) (uint16, error) {
	lo, err := c.mem.Read(addr)
	if err != nil {
		return 0, err
	}
	hi, err := c.mem.Read(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// fetchOperand reads the byte at PC and advances PC by one; used by
// addressing-mode resolvers and the branch operators.
func (c *CPU) fetchOperand() (uint8, error) {
	v, err := c.mem.Read(c.PC)
	if err != nil {
		return 0, err
	}
	c.PC++
	return v, nil
}

// fetchOperandWord reads the little-endian word at PC and advances PC
// by two.
func (c *CPU) fetchOperandWord() (uint16, error) {
	lo, err := c.fetchOperand()
	if err != nil {
		return 0, err
	}
	hi, err := c.fetchOperand()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// push writes value to the stack at $0100+S and decrements S, wrapping
// within the single stack page like real 6502 hardware.
func (c *CPU) push(value uint8) error {
	err := c.mem.Write(stackBase+uint16(c.S), value)
	c.S--
	return err
}

// pull increments S and reads the byte at $0100+S.
func (c *CPU) pull() (uint8, error) {
	c.S++
	return c.mem.Read(stackBase + uint16(c.S))
}

// statusByte packs the current flags into a single status byte. Bit 5 is
// always set; setBreak controls bit 4, and BRK/PHP pass true.
// StatusByte passes the CPU's B field for register display.
func (c *CPU) statusByte(setBreak bool) uint8 {
	var p uint8
	if c.N {
		p |= 0x80
	}
	if c.V {
		p |= 0x40
	}
	p |= 0x20
	if setBreak {
		p |= 0x10
	}
	if c.D {
		p |= 0x08
	}
	if c.I {
		p |= 0x04
	}
	if c.Z {
		p |= 0x02
	}
	if c.C {
		p |= 0x01
	}
	return p
}

// setStatusByte unpacks p into N, V, D, I, Z, C. Bits 4 and 5 are
// ignored, matching PLP/RTI's documented refusal to restore the B flag
// or the unused bit from the stack.
func (c *CPU) setStatusByte(p uint8) {
	c.N = p&0x80 != 0
	c.V = p&0x40 != 0
	c.D = p&0x08 != 0
	c.I = p&0x04 != 0
	c.Z = p&0x02 != 0
	c.C = p&0x01 != 0
}

// StatusByte exposes the current processor status as a single byte, for
// register-display purposes (the REGS REPL command). The B bit reflects
// the CPU's never-restored B field, which is always false in practice.
func (c *CPU) StatusByte() uint8 {
	return c.statusByte(c.B)
}

// setNZ sets N and Z from the low 8 bits of result, the shared tail of
// almost every load, transfer, increment and logic operator.
func (c *CPU) setNZ(result uint8) {
	c.N = result&0x80 != 0
	c.Z = result == 0
}
