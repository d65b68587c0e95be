package cpu

import (
	"testing"

	"github.com/sim6502/apple1/bus"
)

// flatMemory is a minimal Memory implementation for CPU unit tests: a
// plain 64KiB array with no permission bits and no interrupts, unless a
// test explicitly requests one.
type flatMemory struct {
	mem       [0x10000]uint8
	interrupt bus.Interrupt
	pending   bool
}

func newFlatMemory() *flatMemory { return &flatMemory{} }

func (m *flatMemory) Read(addr uint16) (uint8, error)  { return m.mem[addr], nil }
func (m *flatMemory) Write(addr uint16, v uint8) error { m.mem[addr] = v; return nil }
func (m *flatMemory) PendingInterrupt() (bus.Interrupt, bool) {
	if !m.pending {
		return bus.None, false
	}
	return m.interrupt, true
}
func (m *flatMemory) ClearInterrupt() { m.pending = false }

func (m *flatMemory) load(addr uint16, bytes ...uint8) {
	for i, b := range bytes {
		m.mem[int(addr)+i] = b
	}
}

func newTestCPU(mem *flatMemory, resetVec uint16) *CPU {
	mem.load(resetVector, uint8(resetVec), uint8(resetVec>>8))
	c := New(mem)
	_ = c.Reset()
	return c
}

func TestResetLoadsVector(t *testing.T) {
	mem := newFlatMemory()
	c := newTestCPU(mem, 0x0400)
	if c.PC != 0x0400 {
		t.Fatalf("got PC %#04x, want 0x0400", c.PC)
	}
	if c.Halted() {
		t.Fatal("CPU should not be halted after Reset")
	}
}

func TestResetLeavesOtherRegistersUnchanged(t *testing.T) {
	mem := newFlatMemory()
	c := newTestCPU(mem, 0x0400)
	c.A, c.X, c.Y, c.S = 1, 2, 3, 4
	if err := c.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if c.A != 1 || c.X != 2 || c.Y != 3 || c.S != 4 {
		t.Fatal("Reset must only load PC and set I, leaving A/X/Y/S unchanged")
	}
}

func TestNOPLeavesStateUnchanged(t *testing.T) {
	mem := newFlatMemory()
	c := newTestCPU(mem, 0x0400)
	c.A, c.X, c.Y, c.S = 1, 2, 3, 4
	c.N, c.V, c.D, c.I, c.Z, c.C = true, true, true, true, true, true
	mem.load(0x0400, 0xEA)

	wantA, wantX, wantY, wantS := c.A, c.X, c.Y, c.S
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != wantA || c.X != wantX || c.Y != wantY || c.S != wantS {
		t.Fatal("NOP must not touch any register")
	}
	if !c.N || !c.V || !c.D || !c.I || !c.Z || !c.C {
		t.Fatal("NOP must not touch any flag")
	}
	if c.PC != 0x0401 {
		t.Fatalf("PC should advance past the opcode, got %#04x", c.PC)
	}
}

func TestPHAPLARoundTrip(t *testing.T) {
	mem := newFlatMemory()
	c := newTestCPU(mem, 0x0400)
	c.A = 0x42
	mem.load(0x0400, 0x48, 0xA9, 0x00, 0x68) // PHA, LDA #0, PLA

	for i := 0; i < 3; i++ {
		if err := c.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	if c.A != 0x42 {
		t.Fatalf("got A=%#02x after PLA, want 0x42", c.A)
	}
}

func TestPHPPLPDoesNotRestoreB(t *testing.T) {
	mem := newFlatMemory()
	c := newTestCPU(mem, 0x0400)
	c.B = false
	mem.load(0x0400, 0x08, 0x28) // PHP, PLP

	if err := c.Step(); err != nil {
		t.Fatalf("PHP: %v", err)
	}
	pushed := mem.mem[stackBase+uint16(c.S+1)]
	if pushed&0x10 == 0 {
		t.Fatal("PHP must push the B flag set")
	}
	if pushed&0x20 == 0 {
		t.Fatal("PHP must push bit 5 set")
	}

	if err := c.Step(); err != nil {
		t.Fatalf("PLP: %v", err)
	}
	if c.B {
		t.Fatal("PLP must not restore B from the stack")
	}
}

func TestBranchSignExtension(t *testing.T) {
	mem := newFlatMemory()
	c := newTestCPU(mem, 0x0400)
	c.Z = true
	mem.load(0x0400, 0xF0, 0xFE) // BEQ -2 (branch to self)

	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0x0400 {
		t.Fatalf("got PC %#04x, want 0x0400 (branch back to self)", c.PC)
	}
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	mem := newFlatMemory()
	c := newTestCPU(mem, 0x0400)
	mem.load(0x0400, 0x6C, 0xFF, 0x02) // JMP ($02FF)
	mem.load(0x02FF, 0x00)
	mem.load(0x0200, 0x80) // high byte read from $0200, NOT $0300
	mem.load(0x0300, 0xFF) // if the bug were absent, this would be used instead

	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0x8000 {
		t.Fatalf("got PC %#04x, want 0x8000 (page-wrap bug reads high byte from $0200)", c.PC)
	}
}

func TestADCBinaryOverflow(t *testing.T) {
	mem := newFlatMemory()
	c := newTestCPU(mem, 0x0400)
	c.A = 0x7F
	c.C = false
	mem.load(0x0400, 0x69, 0x01) // ADC #$01

	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x80 || !c.V || !c.N || c.C {
		t.Fatalf("got A=%#02x V=%v N=%v C=%v; want A=0x80 V=true N=true C=false", c.A, c.V, c.N, c.C)
	}
}

func TestADCBinaryCarryAndOverflow(t *testing.T) {
	mem := newFlatMemory()
	c := newTestCPU(mem, 0x0400)
	c.A = 0x80
	c.C = false
	mem.load(0x0400, 0x69, 0xFF) // ADC #$FF

	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x7F || !c.V || c.N || !c.C {
		t.Fatalf("got A=%#02x V=%v N=%v C=%v; want A=0x7F V=true N=false C=true", c.A, c.V, c.N, c.C)
	}
}

func TestADCDecimalMode(t *testing.T) {
	mem := newFlatMemory()
	c := newTestCPU(mem, 0x0400)
	c.D = true
	c.A = 0x09
	c.C = false
	mem.load(0x0400, 0x69, 0x01) // ADC #$01

	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x10 || c.C {
		t.Fatalf("got A=%#02x C=%v; want A=0x10 C=false", c.A, c.C)
	}
}

func TestADCDecimalModeCarries(t *testing.T) {
	mem := newFlatMemory()
	c := newTestCPU(mem, 0x0400)
	c.D = true
	c.A = 0x99
	c.C = false
	mem.load(0x0400, 0x69, 0x01) // ADC #$01

	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x00 || !c.C {
		t.Fatalf("got A=%#02x C=%v; want A=0x00 C=true", c.A, c.C)
	}
}

func TestSBCBorrow(t *testing.T) {
	mem := newFlatMemory()
	c := newTestCPU(mem, 0x0400)
	c.A = 0x00
	c.C = true // no borrow going in
	mem.load(0x0400, 0xE9, 0x01) // SBC #$01

	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0xFF || c.C {
		t.Fatalf("got A=%#02x C=%v; want A=0xFF C=false (borrow occurred)", c.A, c.C)
	}
}

func TestCMPSetsFlagsWithoutTouchingA(t *testing.T) {
	mem := newFlatMemory()
	c := newTestCPU(mem, 0x0400)
	c.A = 0x10
	mem.load(0x0400, 0xC9, 0x10) // CMP #$10

	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x10 || !c.Z || !c.C || c.N {
		t.Fatalf("got A=%#02x Z=%v C=%v N=%v; want A unchanged, Z=true C=true N=false", c.A, c.Z, c.C, c.N)
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	mem := newFlatMemory()
	c := newTestCPU(mem, 0x0400)
	mem.load(0x0400, 0x20, 0x00, 0x05) // JSR $0500
	mem.load(0x0500, 0x60)             // RTS

	if err := c.Step(); err != nil { // JSR
		t.Fatalf("JSR: %v", err)
	}
	if c.PC != 0x0500 {
		t.Fatalf("got PC=%#04x after JSR, want 0x0500", c.PC)
	}
	if err := c.Step(); err != nil { // RTS
		t.Fatalf("RTS: %v", err)
	}
	if c.PC != 0x0403 {
		t.Fatalf("got PC=%#04x after RTS, want 0x0403 (instruction after JSR)", c.PC)
	}
}

func TestBreakpointArmsOnceThenResumes(t *testing.T) {
	mem := newFlatMemory()
	c := newTestCPU(mem, 0x0400)
	mem.load(0x0400, 0xEA, 0xEA) // NOP, NOP
	c.AddBreakpoint(0x0400)

	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !c.Halted() {
		t.Fatal("CPU should halt on first hit of an armed breakpoint")
	}
	if c.PC != 0x0400 {
		t.Fatalf("PC should not have advanced past the breakpoint, got %#04x", c.PC)
	}

	c.Resume()
	if err := c.Step(); err != nil {
		t.Fatalf("Step after resume: %v", err)
	}
	if c.Halted() {
		t.Fatal("CPU should execute through the breakpoint once resumed")
	}
	if c.PC != 0x0401 {
		t.Fatalf("got PC=%#04x, want 0x0401 after stepping past the breakpoint", c.PC)
	}
}

func TestResetInterruptTakesPrecedence(t *testing.T) {
	mem := newFlatMemory()
	c := newTestCPU(mem, 0x0400)
	mem.load(resetVector, 0x00, 0x06) // reset vector -> $0600
	mem.interrupt = bus.Reset
	mem.pending = true

	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0x0600 {
		t.Fatalf("got PC=%#04x, want 0x0600 after RES interrupt", c.PC)
	}
	if mem.pending {
		t.Fatal("interrupt should be cleared after being serviced")
	}
}

func TestUnrecognizedOpcodeHalts(t *testing.T) {
	mem := newFlatMemory()
	c := newTestCPU(mem, 0x0400)
	mem.load(0x0400, 0x02) // not a documented opcode

	if err := c.Step(); err == nil {
		t.Fatal("expected an error for an unrecognized opcode")
	}
	if !c.Halted() {
		t.Fatal("CPU should halt after an unrecognized opcode")
	}
}

func TestStepWhenHaltedErrors(t *testing.T) {
	mem := newFlatMemory()
	c := New(mem)
	if err := c.Step(); err == nil {
		t.Fatal("expected an error stepping a halted CPU")
	}
}
