/*
 * S370 - flag and no-op instructions
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

// operator executes one instruction given its resolved address; addr
// and isAcc are unused by implicit instructions.
type operator func(c *CPU, addr uint16, isAcc bool) error

func opCLC(c *CPU, addr uint16, isAcc bool) error { c.C = false; return nil }
func opSEC(c *CPU, addr uint16, isAcc bool) error { c.C = true; return nil }
func opCLI(c *CPU, addr uint16, isAcc bool) error { c.I = false; return nil }
func opSEI(c *CPU, addr uint16, isAcc bool) error { c.I = true; return nil }
func opCLD(c *CPU, addr uint16, isAcc bool) error { c.D = false; return nil }
func opSED(c *CPU, addr uint16, isAcc bool) error { c.D = true; return nil }
func opCLV(c *CPU, addr uint16, isAcc bool) error { c.V = false; return nil }

// opNOP does nothing, leaving every register and flag exactly as it was.
func opNOP(c *CPU, addr uint16, isAcc bool) error { return nil }
