/*
 * S370 - stack instructions
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

func opPHA(c *CPU, addr uint16, isAcc bool) error {
	return c.push(c.A)
}

func opPLA(c *CPU, addr uint16, isAcc bool) error {
	v, err := c.pull()
	if err != nil {
		return err
	}
	c.A = v
	c.setNZ(c.A)
	return nil
}

// opPHP always pushes the status byte with both B and bit 5 set, the
// same as a BRK push, regardless of the CPU's live B field.
func opPHP(c *CPU, addr uint16, isAcc bool) error {
	return c.push(c.statusByte(true))
}

// opPLP restores N, V, D, I, Z, C from the stack; bits 4 and 5 of the
// pulled byte are discarded rather than written back into B.
func opPLP(c *CPU, addr uint16, isAcc bool) error {
	v, err := c.pull()
	if err != nil {
		return err
	}
	c.setStatusByte(v)
	return nil
}
