/*
 * S370 - fixed 256-entry opcode dispatch table
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

// opcodeEntry is one row of the dispatch table: mode resolves the
// effective address (nil for implicit instructions, which read their
// own operands), and op performs the instruction. An entry with a nil
// op marks an opcode outside the 151 documented 6502 instructions.
type opcodeEntry struct {
	mode addressMode
	op   operator
}

// buildTable constructs the 256-entry dispatch table once at CPU
// construction. Unlisted opcodes are left as the zero opcodeEntry,
// which Step treats as unrecognized.
func buildTable() [256]opcodeEntry {
	var t [256]opcodeEntry

	set := func(code uint8, mode addressMode, op operator) {
		t[code] = opcodeEntry{mode: mode, op: op}
	}

	// ADC
	set(0x69, modeImmediate, opADC)
	set(0x65, modeZeroPage, opADC)
	set(0x75, modeZeroPageX, opADC)
	set(0x6D, modeAbsolute, opADC)
	set(0x7D, modeAbsoluteX, opADC)
	set(0x79, modeAbsoluteY, opADC)
	set(0x61, modeIndirectX, opADC)
	set(0x71, modeIndirectY, opADC)

	// AND
	set(0x29, modeImmediate, opAND)
	set(0x25, modeZeroPage, opAND)
	set(0x35, modeZeroPageX, opAND)
	set(0x2D, modeAbsolute, opAND)
	set(0x3D, modeAbsoluteX, opAND)
	set(0x39, modeAbsoluteY, opAND)
	set(0x21, modeIndirectX, opAND)
	set(0x31, modeIndirectY, opAND)

	// ASL
	set(0x0A, modeAccumulator, opASL)
	set(0x06, modeZeroPage, opASL)
	set(0x16, modeZeroPageX, opASL)
	set(0x0E, modeAbsolute, opASL)
	set(0x1E, modeAbsoluteX, opASL)

	// Branches
	set(0x90, nil, opBCC)
	set(0xB0, nil, opBCS)
	set(0xF0, nil, opBEQ)
	set(0x30, nil, opBMI)
	set(0xD0, nil, opBNE)
	set(0x10, nil, opBPL)
	set(0x50, nil, opBVC)
	set(0x70, nil, opBVS)

	// BIT
	set(0x24, modeZeroPage, opBIT)
	set(0x2C, modeAbsolute, opBIT)

	// BRK
	set(0x00, nil, opBRK)

	// Flag clear/set
	set(0x18, nil, opCLC)
	set(0xD8, nil, opCLD)
	set(0x58, nil, opCLI)
	set(0xB8, nil, opCLV)
	set(0x38, nil, opSEC)
	set(0xF8, nil, opSED)
	set(0x78, nil, opSEI)

	// CMP
	set(0xC9, modeImmediate, opCMP)
	set(0xC5, modeZeroPage, opCMP)
	set(0xD5, modeZeroPageX, opCMP)
	set(0xCD, modeAbsolute, opCMP)
	set(0xDD, modeAbsoluteX, opCMP)
	set(0xD9, modeAbsoluteY, opCMP)
	set(0xC1, modeIndirectX, opCMP)
	set(0xD1, modeIndirectY, opCMP)

	// CPX / CPY
	set(0xE0, modeImmediate, opCPX)
	set(0xE4, modeZeroPage, opCPX)
	set(0xEC, modeAbsolute, opCPX)
	set(0xC0, modeImmediate, opCPY)
	set(0xC4, modeZeroPage, opCPY)
	set(0xCC, modeAbsolute, opCPY)

	// DEC / DEX / DEY
	set(0xC6, modeZeroPage, opDEC)
	set(0xD6, modeZeroPageX, opDEC)
	set(0xCE, modeAbsolute, opDEC)
	set(0xDE, modeAbsoluteX, opDEC)
	set(0xCA, nil, opDEX)
	set(0x88, nil, opDEY)

	// EOR
	set(0x49, modeImmediate, opEOR)
	set(0x45, modeZeroPage, opEOR)
	set(0x55, modeZeroPageX, opEOR)
	set(0x4D, modeAbsolute, opEOR)
	set(0x5D, modeAbsoluteX, opEOR)
	set(0x59, modeAbsoluteY, opEOR)
	set(0x41, modeIndirectX, opEOR)
	set(0x51, modeIndirectY, opEOR)

	// INC / INX / INY
	set(0xE6, modeZeroPage, opINC)
	set(0xF6, modeZeroPageX, opINC)
	set(0xEE, modeAbsolute, opINC)
	set(0xFE, modeAbsoluteX, opINC)
	set(0xE8, nil, opINX)
	set(0xC8, nil, opINY)

	// JMP / JSR
	set(0x4C, modeAbsolute, opJMP)
	set(0x6C, modeIndirect, opJMP)
	set(0x20, modeAbsolute, opJSR)

	// LDA / LDX / LDY
	set(0xA9, modeImmediate, opLDA)
	set(0xA5, modeZeroPage, opLDA)
	set(0xB5, modeZeroPageX, opLDA)
	set(0xAD, modeAbsolute, opLDA)
	set(0xBD, modeAbsoluteX, opLDA)
	set(0xB9, modeAbsoluteY, opLDA)
	set(0xA1, modeIndirectX, opLDA)
	set(0xB1, modeIndirectY, opLDA)

	set(0xA2, modeImmediate, opLDX)
	set(0xA6, modeZeroPage, opLDX)
	set(0xB6, modeZeroPageY, opLDX)
	set(0xAE, modeAbsolute, opLDX)
	set(0xBE, modeAbsoluteY, opLDX)

	set(0xA0, modeImmediate, opLDY)
	set(0xA4, modeZeroPage, opLDY)
	set(0xB4, modeZeroPageX, opLDY)
	set(0xAC, modeAbsolute, opLDY)
	set(0xBC, modeAbsoluteX, opLDY)

	// LSR
	set(0x4A, modeAccumulator, opLSR)
	set(0x46, modeZeroPage, opLSR)
	set(0x56, modeZeroPageX, opLSR)
	set(0x4E, modeAbsolute, opLSR)
	set(0x5E, modeAbsoluteX, opLSR)

	// NOP
	set(0xEA, nil, opNOP)

	// ORA
	set(0x09, modeImmediate, opORA)
	set(0x05, modeZeroPage, opORA)
	set(0x15, modeZeroPageX, opORA)
	set(0x0D, modeAbsolute, opORA)
	set(0x1D, modeAbsoluteX, opORA)
	set(0x19, modeAbsoluteY, opORA)
	set(0x01, modeIndirectX, opORA)
	set(0x11, modeIndirectY, opORA)

	// Stack
	set(0x48, nil, opPHA)
	set(0x08, nil, opPHP)
	set(0x68, nil, opPLA)
	set(0x28, nil, opPLP)

	// ROL / ROR
	set(0x2A, modeAccumulator, opROL)
	set(0x26, modeZeroPage, opROL)
	set(0x36, modeZeroPageX, opROL)
	set(0x2E, modeAbsolute, opROL)
	set(0x3E, modeAbsoluteX, opROL)

	set(0x6A, modeAccumulator, opROR)
	set(0x66, modeZeroPage, opROR)
	set(0x76, modeZeroPageX, opROR)
	set(0x6E, modeAbsolute, opROR)
	set(0x7E, modeAbsoluteX, opROR)

	// RTI / RTS
	set(0x40, nil, opRTI)
	set(0x60, nil, opRTS)

	// SBC
	set(0xE9, modeImmediate, opSBC)
	set(0xE5, modeZeroPage, opSBC)
	set(0xF5, modeZeroPageX, opSBC)
	set(0xED, modeAbsolute, opSBC)
	set(0xFD, modeAbsoluteX, opSBC)
	set(0xF9, modeAbsoluteY, opSBC)
	set(0xE1, modeIndirectX, opSBC)
	set(0xF1, modeIndirectY, opSBC)

	// STA / STX / STY
	set(0x85, modeZeroPage, opSTA)
	set(0x95, modeZeroPageX, opSTA)
	set(0x8D, modeAbsolute, opSTA)
	set(0x9D, modeAbsoluteX, opSTA)
	set(0x99, modeAbsoluteY, opSTA)
	set(0x81, modeIndirectX, opSTA)
	set(0x91, modeIndirectY, opSTA)

	set(0x86, modeZeroPage, opSTX)
	set(0x96, modeZeroPageY, opSTX)
	set(0x8E, modeAbsolute, opSTX)

	set(0x84, modeZeroPage, opSTY)
	set(0x94, modeZeroPageX, opSTY)
	set(0x8C, modeAbsolute, opSTY)

	// Register transfers
	set(0xAA, nil, opTAX)
	set(0xA8, nil, opTAY)
	set(0xBA, nil, opTSX)
	set(0x8A, nil, opTXA)
	set(0x9A, nil, opTXS)
	set(0x98, nil, opTYA)

	return t
}
