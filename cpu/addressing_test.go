package cpu

import "testing"

func TestZeroPageXWrapsWithinPage(t *testing.T) {
	mem := newFlatMemory()
	c := newTestCPU(mem, 0x0400)
	c.X = 0x01
	mem.load(0x0400, 0xB5, 0xFF) // LDA $FF,X -> should read $00, not $0100
	mem.load(0x0000, 0x42)

	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x42 {
		t.Fatalf("got A=%#02x, want 0x42 (zero-page-X must wrap within page 0)", c.A)
	}
}

func TestIndirectXWrapsWithinZeroPage(t *testing.T) {
	mem := newFlatMemory()
	c := newTestCPU(mem, 0x0400)
	c.X = 0x01
	mem.load(0x0400, 0xA1, 0xFF) // LDA ($FF,X) -> pointer at $00 (wraps)
	mem.load(0x0000, 0x00, 0x03)
	mem.load(0x0300, 0x55)

	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x55 {
		t.Fatalf("got A=%#02x, want 0x55", c.A)
	}
}

func TestIndirectYAddsAfterDereference(t *testing.T) {
	mem := newFlatMemory()
	c := newTestCPU(mem, 0x0400)
	c.Y = 0x10
	mem.load(0x0400, 0xB1, 0x10) // LDA ($10),Y
	mem.load(0x0010, 0x00, 0x03)
	mem.load(0x0310, 0x77)

	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x77 {
		t.Fatalf("got A=%#02x, want 0x77", c.A)
	}
}

func TestAbsoluteXIndexing(t *testing.T) {
	mem := newFlatMemory()
	c := newTestCPU(mem, 0x0400)
	c.X = 0x05
	mem.load(0x0400, 0xBD, 0x00, 0x03) // LDA $0300,X
	mem.load(0x0305, 0x99)

	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x99 {
		t.Fatalf("got A=%#02x, want 0x99", c.A)
	}
}
