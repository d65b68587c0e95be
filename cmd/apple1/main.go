/*
 * apple1 - Driver: wires up ROMs, console and REPL for the simulator
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

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	getopt "github.com/pborman/getopt/v2"

	"github.com/sim6502/apple1/apple1"
	"github.com/sim6502/apple1/bus"
	"github.com/sim6502/apple1/config"
	"github.com/sim6502/apple1/cpu"
	"github.com/sim6502/apple1/repl"
	"github.com/sim6502/apple1/terminal"
	"github.com/sim6502/apple1/util/logger"
)

func main() {
	configFile := getopt.StringLong("config", 'c', "apple1.cfg", "configuration file")
	logFile := getopt.StringLong("log", 'l', "apple1.log", "log file")
	romDir := getopt.StringLong("rom", 'r', "roms", "directory holding wozmon.bin and basic.woz")
	remotePort := getopt.StringLong("remote", 't', "", "serve a remote console on this TCP port instead of a local one")
	debug := getopt.BoolLong("debug", 'd', "mirror all log records to stderr")
	help := getopt.BoolLong("help", 0, "show usage")
	getopt.Parse()

	if *help {
		getopt.Usage()
		return
	}

	logW, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "apple1: cannot open log file:", err)
		os.Exit(1)
	}
	defer logW.Close()
	slog.SetDefault(slog.New(logger.NewHandler(logW, nil, debug)))

	if err := run(*configFile, *romDir, *remotePort); err != nil {
		slog.Error("apple1: " + err.Error())
		fmt.Fprintln(os.Stderr, "apple1:", err)
		os.Exit(1)
	}
}

func run(configFile, romDir, remotePort string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = &config.Config{}
	}

	term, err := openTerminal(remotePort)
	if err != nil {
		return fmt.Errorf("opening console: %w", err)
	}
	defer term.Close()

	sb := apple1.New(term, true)

	if cfg.HasOutputDelay() {
		sb.Delay = time.Duration(cfg.OutputDelay) * time.Microsecond
	}

	if err := loadROMs(sb, romDir, cfg); err != nil {
		return fmt.Errorf("loading ROMs: %w", err)
	}

	c := cpu.New(sb)
	if err := c.Reset(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if cfg.HasCPUDelay() {
		c.Delay = time.Duration(cfg.CPUDelayUS) * time.Microsecond
	}
	for _, addr := range cfg.Breakpoints {
		c.AddBreakpoint(addr)
	}

	slog.Info("apple1 simulator ready")
	repl.Run(&repl.Machine{CPU: c, Bus: sb})
	return nil
}

func openTerminal(remotePort string) (terminal.Terminal, error) {
	if remotePort != "" {
		return terminal.Listen(":" + remotePort)
	}
	return terminal.NewLocal()
}

// loadROMs installs WozMon and BASIC from romDir unless the config file
// names explicit ROM paths, in which case those take precedence.
func loadROMs(sb *apple1.SystemBus, romDir string, cfg *config.Config) error {
	wozPath := filepath.Join(romDir, "wozmon.bin")
	basicPath := filepath.Join(romDir, "basic.woz")
	for _, r := range cfg.ROMs {
		switch r.Name {
		case "wozmon":
			wozPath = r.Path
		case "basic":
			basicPath = r.Path
		}
	}

	if err := bus.LoadROMFile(sb.Bus, wozPath, 0xFF00, "raw"); err != nil {
		return fmt.Errorf("wozmon: %w", err)
	}
	if err := bus.LoadROMFile(sb.Bus, basicPath, 0xE000, "woz"); err != nil {
		return fmt.Errorf("basic: %w", err)
	}
	return nil
}
