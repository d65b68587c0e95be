/*
 * S370 - REPL command table
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

package repl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sim6502/apple1/cpu"
)

// cmdSpec is one entry in the command table: every string in aliases
// dispatches to run. help is shown by the HELP command.
type cmdSpec struct {
	aliases []string
	help    string
	run     func(m *Machine, args []string) (quit bool, err error)
}

var cmdTable = []cmdSpec{
	{
		aliases: []string{"START", "GO", "RUN", "R", "G"},
		help:    "START|GO|RUN|R|G - resume execution until halt, breakpoint or error",
		run:     cmdStart,
	},
	{
		aliases: []string{"STEP", "S"},
		help:    "STEP|S [count] - execute count instructions (default 1)",
		run:     cmdStep,
	},
	{
		aliases: []string{"EXAMINE", "EX", "E"},
		help:    "EXAMINE|EX|E addr [end] - hex dump memory from addr to end",
		run:     cmdExamine,
	},
	{
		aliases: []string{"DEPOSIT", "D", "DEP"},
		help:    "DEPOSIT|D|DEP addr byte... - write bytes starting at addr",
		run:     cmdDeposit,
	},
	{
		aliases: []string{"BREAK", "BR", "BRK"},
		help:    "BREAK|BR|BRK [addr...] - list breakpoints, or toggle each given address",
		run:     cmdBreak,
	},
	{
		aliases: []string{"CLEAR", "CLR"},
		help:    "CLEAR|CLR - clear all breakpoints, report count",
		run:     cmdClear,
	},
	{
		aliases: []string{"RESET", "RES"},
		help:    "RESET|RES - load PC from the reset vector",
		run:     cmdReset,
	},
	{
		aliases: []string{"REGS", "PC"},
		help:    "REGS|PC - print the register file",
		run:     cmdRegs,
	},
	{
		aliases: []string{"DELAY", "CPU", "C"},
		help:    "DELAY|CPU|C microseconds - set the per-instruction CPU delay",
		run:     cmdDelay,
	},
	{
		aliases: []string{"TOGGLE", "MEM", "MEMORY"},
		help:    "TOGGLE|MEM|MEMORY - flip strict memory-protection accounting",
		run:     cmdToggle,
	},
	{
		aliases: []string{"HELP", "H", "?"},
		help:    "HELP|H|? - show this summary",
		run:     cmdHelp,
	},
	{
		aliases: []string{"QUIT", "EXIT", "BYE"},
		help:    "QUIT|EXIT|BYE - leave the simulator",
		run:     cmdQuit,
	},
}

var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]*cmdSpec {
	idx := make(map[string]*cmdSpec)
	for i := range cmdTable {
		spec := &cmdTable[i]
		for _, a := range spec.aliases {
			idx[a] = spec
		}
	}
	return idx
}

// ProcessCommand parses and dispatches a single REPL input line.
func ProcessCommand(m *Machine, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name := strings.ToUpper(fields[0])
	spec, ok := aliasIndex[name]
	if !ok {
		return false, fmt.Errorf("unrecognized command %q (try HELP)", fields[0])
	}
	return spec.run(m, fields[1:])
}

// CompleteCmd implements liner's tab-completion callback over the
// command table's canonical names.
func CompleteCmd(line string) []string {
	upper := strings.ToUpper(line)
	var matches []string
	for _, spec := range cmdTable {
		name := spec.aliases[0]
		if strings.HasPrefix(name, upper) {
			matches = append(matches, strings.ToLower(name))
		}
	}
	return matches
}

func cmdStart(m *Machine, args []string) (bool, error) {
	m.CPU.Resume()
	for !m.CPU.Halted() {
		if err := m.CPU.Step(); err != nil {
			return false, err
		}
	}
	return false, nil
}

func cmdStep(m *Machine, args []string) (bool, error) {
	count := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("invalid step count %q: %w", args[0], err)
		}
		count = n
	}
	m.CPU.Resume()
	for i := 0; i < count; i++ {
		if err := m.CPU.Step(); err != nil {
			return false, err
		}
		if m.CPU.Halted() {
			break
		}
	}
	return false, nil
}

func parseAddr(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid hex address %q: %w", s, err)
	}
	return uint16(v), nil
}

func cmdExamine(m *Machine, args []string) (bool, error) {
	if len(args) == 0 {
		return false, errors.New("EXAMINE requires a starting address")
	}
	start, err := parseAddr(args[0])
	if err != nil {
		return false, err
	}
	end := start
	if len(args) > 1 {
		end, err = parseAddr(args[1])
		if err != nil {
			return false, err
		}
	}

	addr := uint32(start)
	for addr <= uint32(end) {
		if addr%8 == 0 || addr == uint32(start) {
			if addr != uint32(start) {
				fmt.Println()
			}
			fmt.Printf("%04X:", addr)
		}
		fmt.Printf(" %02X", m.Bus.Peek(uint16(addr)))
		addr++
	}
	fmt.Println()
	return false, nil
}

func cmdDeposit(m *Machine, args []string) (bool, error) {
	if len(args) < 2 {
		return false, errors.New("DEPOSIT requires an address and at least one byte")
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		return false, err
	}
	for _, tok := range args[1:] {
		v, err := strconv.ParseUint(tok, 16, 8)
		if err != nil {
			return false, fmt.Errorf("invalid hex byte %q: %w", tok, err)
		}
		m.Bus.Poke(addr, uint8(v))
		addr++
	}
	return false, nil
}

func cmdBreak(m *Machine, args []string) (bool, error) {
	if len(args) == 0 {
		for _, addr := range m.CPU.Breakpoints() {
			fmt.Printf("%04X\n", addr)
		}
		return false, nil
	}
	for _, tok := range args {
		addr, err := parseAddr(tok)
		if err != nil {
			return false, err
		}
		if m.CPU.HasBreakpoint(addr) {
			m.CPU.RemoveBreakpoint(addr)
		} else {
			m.CPU.AddBreakpoint(addr)
		}
	}
	return false, nil
}

func cmdClear(m *Machine, args []string) (bool, error) {
	n := m.CPU.ClearBreakpoints()
	fmt.Printf("cleared %d breakpoint(s)\n", n)
	return false, nil
}

func cmdReset(m *Machine, args []string) (bool, error) {
	return false, m.CPU.Reset()
}

func cmdRegs(m *Machine, args []string) (bool, error) {
	fmt.Printf("PC=%04X A=%02X X=%02X Y=%02X S=%02X P=%02X %s\n",
		m.CPU.PC, m.CPU.A, m.CPU.X, m.CPU.Y, m.CPU.S, m.CPU.StatusByte(), flagString(m.CPU))
	return false, nil
}

func flagString(c *cpu.CPU) string {
	p := c.StatusByte()
	bits := "NV-BDIZC"
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		mask := uint8(1) << (7 - i)
		if p&mask != 0 {
			out[i] = bits[i]
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}

func cmdDelay(m *Machine, args []string) (bool, error) {
	if len(args) != 1 {
		return false, errors.New("DELAY requires a microsecond value")
	}
	us, err := strconv.Atoi(args[0])
	if err != nil {
		return false, fmt.Errorf("invalid delay %q: %w", args[0], err)
	}
	m.CPU.Delay = time.Duration(us) * time.Microsecond
	return false, nil
}

func cmdToggle(m *Machine, args []string) (bool, error) {
	strict := m.Bus.ToggleStrictMemory()
	fmt.Printf("strict memory accounting: %v\n", strict)
	return false, nil
}

func cmdHelp(m *Machine, args []string) (bool, error) {
	for _, spec := range cmdTable {
		fmt.Println(spec.help)
	}
	return false, nil
}

func cmdQuit(m *Machine, args []string) (bool, error) {
	return true, nil
}
