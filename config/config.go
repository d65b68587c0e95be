/*
 * S370 - Configuration file parser
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

// Package config loads the Apple 1 driver's startup file: a small,
// line-oriented grammar in the same hand-scanned style as the rest of
// the driver's configuration handling, rather than a general-purpose
// serialization format.
//
// Configuration file format:
//
//	'#' starts a comment, rest of line ignored.
//	rom <name> <path>       - load a ROM image; name is "wozmon" or "basic"
//	breakpoint <hex addr>   - arm a breakpoint at startup
//	delay <microseconds>    - per-instruction CPU delay
//	outputdelay <microseconds> - per-character display delay
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ROM names a ROM image to load and where to load it.
type ROM struct {
	Name string // "wozmon" or "basic"
	Path string
}

// Config is the parsed contents of a driver configuration file.
type Config struct {
	ROMs         []ROM
	Breakpoints  []uint16
	CPUDelayUS   int
	OutputDelay  int
	haveCPUDelay bool
	haveOutDelay bool
}

// HasCPUDelay reports whether the file set a CPU delay explicitly.
func (c *Config) HasCPUDelay() bool { return c.haveCPUDelay }

// HasOutputDelay reports whether the file set an output delay explicitly.
func (c *Config) HasOutputDelay() bool { return c.haveOutDelay }

// Load reads and parses the configuration file at name.
func Load(name string) (*Config, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a configuration file from r line by line.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{}
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		if err := cfg.parseLine(scanner.Text(), lineNumber); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) parseLine(raw string, lineNumber int) error {
	line := stripComment(raw)
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	keyword := strings.ToLower(fields[0])
	args := fields[1:]

	switch keyword {
	case "rom":
		if len(args) != 2 {
			return fmt.Errorf("line %d: rom requires a name and a path", lineNumber)
		}
		cfg.ROMs = append(cfg.ROMs, ROM{Name: strings.ToLower(args[0]), Path: args[1]})

	case "breakpoint":
		if len(args) != 1 {
			return fmt.Errorf("line %d: breakpoint requires one hex address", lineNumber)
		}
		addr, err := strconv.ParseUint(args[0], 16, 16)
		if err != nil {
			return fmt.Errorf("line %d: invalid breakpoint address %q: %w", lineNumber, args[0], err)
		}
		cfg.Breakpoints = append(cfg.Breakpoints, uint16(addr))

	case "delay":
		if len(args) != 1 {
			return fmt.Errorf("line %d: delay requires one value", lineNumber)
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("line %d: invalid delay %q: %w", lineNumber, args[0], err)
		}
		cfg.CPUDelayUS = v
		cfg.haveCPUDelay = true

	case "outputdelay":
		if len(args) != 1 {
			return fmt.Errorf("line %d: outputdelay requires one value", lineNumber)
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("line %d: invalid outputdelay %q: %w", lineNumber, args[0], err)
		}
		cfg.OutputDelay = v
		cfg.haveOutDelay = true

	default:
		return fmt.Errorf("line %d: unknown directive %q", lineNumber, fields[0])
	}
	return nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}
