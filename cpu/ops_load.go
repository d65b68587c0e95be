/*
 * S370 - load, store and register transfer instructions
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

func opLDA(c *CPU, addr uint16, isAcc bool) error {
	v, err := c.mem.Read(addr)
	if err != nil {
		return err
	}
	c.A = v
	c.setNZ(c.A)
	return nil
}

func opLDX(c *CPU, addr uint16, isAcc bool) error {
	v, err := c.mem.Read(addr)
	if err != nil {
		return err
	}
	c.X = v
	c.setNZ(c.X)
	return nil
}

func opLDY(c *CPU, addr uint16, isAcc bool) error {
	v, err := c.mem.Read(addr)
	if err != nil {
		return err
	}
	c.Y = v
	c.setNZ(c.Y)
	return nil
}

func opSTA(c *CPU, addr uint16, isAcc bool) error {
	return c.mem.Write(addr, c.A)
}

func opSTX(c *CPU, addr uint16, isAcc bool) error {
	return c.mem.Write(addr, c.X)
}

func opSTY(c *CPU, addr uint16, isAcc bool) error {
	return c.mem.Write(addr, c.Y)
}

func opTAX(c *CPU, addr uint16, isAcc bool) error { c.X = c.A; c.setNZ(c.X); return nil }
func opTAY(c *CPU, addr uint16, isAcc bool) error { c.Y = c.A; c.setNZ(c.Y); return nil }
func opTXA(c *CPU, addr uint16, isAcc bool) error { c.A = c.X; c.setNZ(c.A); return nil }
func opTYA(c *CPU, addr uint16, isAcc bool) error { c.A = c.Y; c.setNZ(c.A); return nil }
func opTSX(c *CPU, addr uint16, isAcc bool) error { c.X = c.S; c.setNZ(c.X); return nil }

// opTXS does not touch N or Z, matching the documented 6502 behavior
// that TXS alone among the transfer instructions leaves flags alone.
func opTXS(c *CPU, addr uint16, isAcc bool) error { c.S = c.X; return nil }
