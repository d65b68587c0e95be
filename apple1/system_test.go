package apple1

import (
	"testing"

	"github.com/sim6502/apple1/terminal"
)

func newTestBus() (*SystemBus, *terminal.Headless) {
	h := terminal.NewHeadless()
	sb := New(h, true)
	sb.Delay = 0
	return sb, h
}

func TestRAMReadWrite(t *testing.T) {
	sb, _ := newTestBus()
	if err := sb.Write(0x0200, 0xAB); err != nil {
		t.Fatalf("Write: %v", err)
	}
	v, err := sb.Read(0x0200)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if v != 0xAB {
		t.Fatalf("got %#x, want 0xAB", v)
	}
}

func TestROMIsNotWritable(t *testing.T) {
	sb, _ := newTestBus()
	if err := sb.Write(0xFF00, 0x00); err == nil {
		t.Fatal("expected error writing to WozMon ROM range under strict mode")
	}
}

func TestKeyboardLatch(t *testing.T) {
	sb, h := newTestBus()
	h.Feed('a')

	ctrl, err := sb.Read(kbdControl)
	if err != nil {
		t.Fatalf("Read control: %v", err)
	}
	if ctrl != 0x80 {
		t.Fatalf("control read: got %#x, want 0x80", ctrl)
	}

	data, err := sb.Read(kbdData)
	if err != nil {
		t.Fatalf("Read data: %v", err)
	}
	if data != ('A' | 0x80) {
		t.Fatalf("data read: got %#x, want %#x (lowercase folded to upper, high bit set)", data, 'A'|0x80)
	}

	// Reading the latch again clears the high bit.
	data2, err := sb.Read(kbdData)
	if err != nil {
		t.Fatalf("Read data again: %v", err)
	}
	if data2&0x80 != 0 {
		t.Fatalf("latch should be cleared after read, got %#x", data2)
	}
}

func TestKeyboardNoKeyPending(t *testing.T) {
	sb, _ := newTestBus()
	v, err := sb.Read(kbdControl)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if v != 0 {
		t.Fatalf("got %#x, want 0 when no key pending", v)
	}
}

func TestCtrlRRaisesReset(t *testing.T) {
	sb, h := newTestBus()
	h.Feed(18)
	if _, err := sb.Read(kbdControl); err != nil {
		t.Fatalf("Read: %v", err)
	}
	kind, ok := sb.PendingInterrupt()
	if !ok || kind.String() != "RES" {
		t.Fatalf("got %v, %v; want RES, true", kind, ok)
	}
}

func TestDisplayWriteEmitsFoldedCharacter(t *testing.T) {
	sb, h := newTestBus()
	if err := sb.Write(0xD012, 'a'|0x80); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(h.Output) != 1 || h.Output[0] != 'A' {
		t.Fatalf("got %v, want [A] (lowercase folded to upper)", h.Output)
	}
}

func TestDisplayWriteConvertsCRtoLF(t *testing.T) {
	sb, h := newTestBus()
	if err := sb.Write(0xD012, 13|0x80); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(h.Output) != 1 || h.Output[0] != 10 {
		t.Fatalf("got %v, want [10] (CR converted to LF on emission)", h.Output)
	}
}

func TestDisplayWriteSuppressesControlBytes(t *testing.T) {
	sb, h := newTestBus()
	if err := sb.Write(0xD012, 0x01); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(h.Output) != 0 {
		t.Fatalf("control byte should be suppressed, got %v", h.Output)
	}
}
