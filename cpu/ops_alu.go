/*
 * S370 - arithmetic, logic and shift instructions
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

// bcdToBin decodes a packed-BCD byte (each nibble 0-9) into its binary
// value 0-99.
func bcdToBin(v uint8) uint8 {
	return (v>>4)*10 + (v & 0x0F)
}

// binToBcd encodes a binary value 0-99 into packed BCD.
func binToBcd(v int) uint8 {
	return uint8(((v/10)%16)<<4 | (v % 10))
}

// opADC implements ADC in both binary and decimal mode. Decimal mode
// decodes A and M as BCD, adds in base 10, and re-encodes the result;
// the overflow flag is still computed with the ordinary binary-ADC
// formula, but evaluated against the BCD-encoded operands and result
// rather than their decoded decimal values. This reproduces a
// documented divergence from real 6502 silicon rather than a NMOS-exact
// decimal overflow flag, and is intentional.
func opADC(c *CPU, addr uint16, isAcc bool) error {
	m, err := c.mem.Read(addr)
	if err != nil {
		return err
	}
	a := c.A

	if c.D {
		carry := 0
		if c.C {
			carry = 1
		}
		r := int(bcdToBin(a)) + int(bcdToBin(m)) + carry
		c.C = r >= 100
		if c.C {
			r -= 100
		}
		result := binToBcd(r)
		c.V = (a^result)&(m^result)&0x80 != 0
		c.setNZ(result)
		c.A = result
		return nil
	}

	carry := uint16(0)
	if c.C {
		carry = 1
	}
	sum := uint16(a) + uint16(m) + carry
	c.C = sum > 0xFF
	result := uint8(sum)
	c.V = (a^result)&(m^result)&0x80 != 0
	c.setNZ(result)
	c.A = result
	return nil
}

// opSBC mirrors opADC in reverse for decimal mode: bcd(A) - bcd(M) +
// C - 1, re-adding 100 and clearing carry on a negative result. Binary
// mode is the standard two's-complement SBC, equivalent to ADC of the
// bitwise complement of M.
func opSBC(c *CPU, addr uint16, isAcc bool) error {
	m, err := c.mem.Read(addr)
	if err != nil {
		return err
	}
	a := c.A

	if c.D {
		borrow := 0
		if !c.C {
			borrow = 1
		}
		r := int(bcdToBin(a)) - int(bcdToBin(m)) - borrow
		if r < 0 {
			r += 100
			c.C = false
		} else {
			c.C = true
		}
		result := binToBcd(r)
		c.V = (a^result)&(^m^result)&0x80 != 0
		c.setNZ(result)
		c.A = result
		return nil
	}

	borrow := uint8(0)
	if !c.C {
		borrow = 1
	}
	result := a - m - borrow
	c.C = int(a)-int(m)-int(borrow) >= 0
	c.V = (a^result)&(^m^result)&0x80 != 0
	c.setNZ(result)
	c.A = result
	return nil
}

func opAND(c *CPU, addr uint16, isAcc bool) error {
	v, err := c.mem.Read(addr)
	if err != nil {
		return err
	}
	c.A &= v
	c.setNZ(c.A)
	return nil
}

func opORA(c *CPU, addr uint16, isAcc bool) error {
	v, err := c.mem.Read(addr)
	if err != nil {
		return err
	}
	c.A |= v
	c.setNZ(c.A)
	return nil
}

func opEOR(c *CPU, addr uint16, isAcc bool) error {
	v, err := c.mem.Read(addr)
	if err != nil {
		return err
	}
	c.A ^= v
	c.setNZ(c.A)
	return nil
}

// compare implements the shared CMP/CPX/CPY semantics: C is set when
// reg >= n, N and Z come from the 8-bit difference, and V is left
// untouched.
func (c *CPU) compare(reg, n uint8) {
	c.C = reg >= n
	c.setNZ(reg - n)
}

func opCMP(c *CPU, addr uint16, isAcc bool) error {
	v, err := c.mem.Read(addr)
	if err != nil {
		return err
	}
	c.compare(c.A, v)
	return nil
}

func opCPX(c *CPU, addr uint16, isAcc bool) error {
	v, err := c.mem.Read(addr)
	if err != nil {
		return err
	}
	c.compare(c.X, v)
	return nil
}

func opCPY(c *CPU, addr uint16, isAcc bool) error {
	v, err := c.mem.Read(addr)
	if err != nil {
		return err
	}
	c.compare(c.Y, v)
	return nil
}

func opBIT(c *CPU, addr uint16, isAcc bool) error {
	v, err := c.mem.Read(addr)
	if err != nil {
		return err
	}
	c.Z = c.A&v == 0
	c.N = v&0x80 != 0
	c.V = v&0x40 != 0
	return nil
}

func opINC(c *CPU, addr uint16, isAcc bool) error {
	v, err := c.mem.Read(addr)
	if err != nil {
		return err
	}
	v++
	c.setNZ(v)
	return c.mem.Write(addr, v)
}

func opDEC(c *CPU, addr uint16, isAcc bool) error {
	v, err := c.mem.Read(addr)
	if err != nil {
		return err
	}
	v--
	c.setNZ(v)
	return c.mem.Write(addr, v)
}

func opINX(c *CPU, addr uint16, isAcc bool) error { c.X++; c.setNZ(c.X); return nil }
func opINY(c *CPU, addr uint16, isAcc bool) error { c.Y++; c.setNZ(c.Y); return nil }
func opDEX(c *CPU, addr uint16, isAcc bool) error { c.X--; c.setNZ(c.X); return nil }
func opDEY(c *CPU, addr uint16, isAcc bool) error { c.Y--; c.setNZ(c.Y); return nil }

// readModifyWrite fetches either the accumulator or the byte at addr,
// shared by the four shift/rotate operators.
func (c *CPU) readModifyWrite(addr uint16, isAcc bool) (uint8, error) {
	if isAcc {
		return c.A, nil
	}
	return c.mem.Read(addr)
}

func (c *CPU) storeModifyWrite(addr uint16, isAcc bool, v uint8) error {
	if isAcc {
		c.A = v
		return nil
	}
	return c.mem.Write(addr, v)
}

func opASL(c *CPU, addr uint16, isAcc bool) error {
	v, err := c.readModifyWrite(addr, isAcc)
	if err != nil {
		return err
	}
	c.C = v&0x80 != 0
	result := v << 1
	c.setNZ(result)
	return c.storeModifyWrite(addr, isAcc, result)
}

func opLSR(c *CPU, addr uint16, isAcc bool) error {
	v, err := c.readModifyWrite(addr, isAcc)
	if err != nil {
		return err
	}
	c.C = v&0x01 != 0
	result := v >> 1
	c.setNZ(result)
	return c.storeModifyWrite(addr, isAcc, result)
}

func opROL(c *CPU, addr uint16, isAcc bool) error {
	v, err := c.readModifyWrite(addr, isAcc)
	if err != nil {
		return err
	}
	oldCarry := c.C
	c.C = v&0x80 != 0
	result := v << 1
	if oldCarry {
		result |= 0x01
	}
	c.setNZ(result)
	return c.storeModifyWrite(addr, isAcc, result)
}

func opROR(c *CPU, addr uint16, isAcc bool) error {
	v, err := c.readModifyWrite(addr, isAcc)
	if err != nil {
		return err
	}
	oldCarry := c.C
	c.C = v&0x01 != 0
	result := v >> 1
	if oldCarry {
		result |= 0x80
	}
	c.setNZ(result)
	return c.storeModifyWrite(addr, isAcc, result)
}
