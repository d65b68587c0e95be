/*
 * S370 - 6502 addressing modes
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

package cpu

// addressMode resolves the effective address for an instruction,
// consuming operand bytes at PC as it goes. isAcc is true only for the
// accumulator mode, where addr is meaningless and the operator reads and
// writes c.A directly. Implicit instructions (register transfers, flag
// ops, branches, stack ops) carry a nil mode in the dispatch table and
// read whatever operand they need themselves.
type addressMode func(c *CPU) (addr uint16, isAcc bool, err error)

func modeAccumulator(c *CPU) (uint16, bool, error) {
	return 0, true, nil
}

func modeImmediate(c *CPU) (uint16, bool, error) {
	addr := c.PC
	c.PC++
	return addr, false, nil
}

func modeZeroPage(c *CPU) (uint16, bool, error) {
	v, err := c.fetchOperand()
	return uint16(v), false, err
}

func modeZeroPageX(c *CPU) (uint16, bool, error) {
	v, err := c.fetchOperand()
	return uint16(v+c.X) & 0xFF, false, err
}

func modeZeroPageY(c *CPU) (uint16, bool, error) {
	v, err := c.fetchOperand()
	return uint16(v+c.Y) & 0xFF, false, err
}

func modeAbsolute(c *CPU) (uint16, bool, error) {
	addr, err := c.fetchOperandWord()
	return addr, false, err
}

func modeAbsoluteX(c *CPU) (uint16, bool, error) {
	base, err := c.fetchOperandWord()
	return base + uint16(c.X), false, err
}

func modeAbsoluteY(c *CPU) (uint16, bool, error) {
	base, err := c.fetchOperandWord()
	return base + uint16(c.Y), false, err
}

// modeIndirect resolves JMP ($nnnn)'s target, including the classic
// page-wrap bug: if the pointer's low byte is $FF, the high byte is
// fetched from the start of the same page rather than the next one.
func modeIndirect(c *CPU) (uint16, bool, error) {
	ptr, err := c.fetchOperandWord()
	if err != nil {
		return 0, false, err
	}
	lo, err := c.mem.Read(ptr)
	if err != nil {
		return 0, false, err
	}
	var hiAddr uint16
	if ptr&0xFF == 0xFF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	hi, err := c.mem.Read(hiAddr)
	if err != nil {
		return 0, false, err
	}
	return uint16(hi)<<8 | uint16(lo), false, nil
}

func modeIndirectX(c *CPU) (uint16, bool, error) {
	zp, err := c.fetchOperand()
	if err != nil {
		return 0, false, err
	}
	ptr := uint16(zp+c.X) & 0xFF
	lo, err := c.mem.Read(ptr)
	if err != nil {
		return 0, false, err
	}
	hi, err := c.mem.Read((ptr + 1) & 0xFF)
	if err != nil {
		return 0, false, err
	}
	return uint16(hi)<<8 | uint16(lo), false, nil
}

func modeIndirectY(c *CPU) (uint16, bool, error) {
	zp, err := c.fetchOperand()
	if err != nil {
		return 0, false, err
	}
	ptr := uint16(zp)
	lo, err := c.mem.Read(ptr)
	if err != nil {
		return 0, false, err
	}
	hi, err := c.mem.Read((ptr + 1) & 0xFF)
	if err != nil {
		return 0, false, err
	}
	return (uint16(hi)<<8 | uint16(lo)) + uint16(c.Y), false, nil
}
