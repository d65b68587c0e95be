/*
 * S370 - branch, jump and subroutine instructions
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

// branch reads the signed 8-bit displacement at PC, always advancing PC
// past it, and only applies it to PC when take is true.
func (c *CPU) branch(take bool) error {
	disp, err := c.fetchOperand()
	if err != nil {
		return err
	}
	if !take {
		return nil
	}
	c.PC = uint16(int32(c.PC) + int32(int8(disp)))
	return nil
}

func opBCC(c *CPU, addr uint16, isAcc bool) error { return c.branch(!c.C) }
func opBCS(c *CPU, addr uint16, isAcc bool) error { return c.branch(c.C) }
func opBEQ(c *CPU, addr uint16, isAcc bool) error { return c.branch(c.Z) }
func opBNE(c *CPU, addr uint16, isAcc bool) error { return c.branch(!c.Z) }
func opBMI(c *CPU, addr uint16, isAcc bool) error { return c.branch(c.N) }
func opBPL(c *CPU, addr uint16, isAcc bool) error { return c.branch(!c.N) }
func opBVC(c *CPU, addr uint16, isAcc bool) error { return c.branch(!c.V) }
func opBVS(c *CPU, addr uint16, isAcc bool) error { return c.branch(c.V) }

func opJMP(c *CPU, addr uint16, isAcc bool) error {
	c.PC = addr
	return nil
}

// opJSR pushes the address of the last byte of the JSR instruction
// (c.PC already points past the operand, since modeAbsolute consumed
// both operand bytes), then jumps to addr.
func opJSR(c *CPU, addr uint16, isAcc bool) error {
	ret := c.PC - 1
	if err := c.push(uint8(ret >> 8)); err != nil {
		return err
	}
	if err := c.push(uint8(ret)); err != nil {
		return err
	}
	c.PC = addr
	return nil
}

func opRTS(c *CPU, addr uint16, isAcc bool) error {
	lo, err := c.pull()
	if err != nil {
		return err
	}
	hi, err := c.pull()
	if err != nil {
		return err
	}
	c.PC = (uint16(hi)<<8 | uint16(lo)) + 1
	return nil
}

func opRTI(c *CPU, addr uint16, isAcc bool) error {
	p, err := c.pull()
	if err != nil {
		return err
	}
	c.setStatusByte(p)
	lo, err := c.pull()
	if err != nil {
		return err
	}
	hi, err := c.pull()
	if err != nil {
		return err
	}
	c.PC = uint16(hi)<<8 | uint16(lo)
	return nil
}

// opBRK implements software interrupt: it skips the signature byte that
// follows the BRK opcode, pushes the return address and status with
// both B and bit 5 set, then loads PC from the BRK/IRQ vector.
func opBRK(c *CPU, addr uint16, isAcc bool) error {
	c.PC++
	if err := c.push(uint8(c.PC >> 8)); err != nil {
		return err
	}
	if err := c.push(uint8(c.PC)); err != nil {
		return err
	}
	if err := c.push(c.statusByte(true)); err != nil {
		return err
	}
	c.I = true
	pc, err := c.readWord(breakVector)
	if err != nil {
		return err
	}
	c.PC = pc
	return nil
}
