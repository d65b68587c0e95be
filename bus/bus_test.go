package bus

import (
	"strings"
	"testing"
)

func TestReadWriteRoundTrip(t *testing.T) {
	b := New(true)
	if err := b.Write(0x1234, 0x42); err != nil {
		t.Fatalf("Write: %v", err)
	}
	v, err := b.Read(0x1234)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if v != 0x42 {
		t.Fatalf("got %#x, want 0x42", v)
	}
}

func TestStrictModeRejectsProtectedAccess(t *testing.T) {
	b := New(true)
	b.SetRange(0xE000, 0xEFFF, true, false)

	if err := b.Write(0xE000, 0x01); err == nil {
		t.Fatal("expected error writing to protected range in strict mode")
	}

	b.SetRange(0x8000, 0x8FFF, false, false)
	if _, err := b.Read(0x8000); err == nil {
		t.Fatal("expected error reading from non-readable range in strict mode")
	}
}

func TestToggleStrictMemory(t *testing.T) {
	b := New(true)
	if !b.StrictMemory() {
		t.Fatal("expected strict mode to start on")
	}
	if b.ToggleStrictMemory() {
		t.Fatal("expected toggle to turn strict mode off")
	}
	if b.StrictMemory() {
		t.Fatal("StrictMemory should reflect the toggled value")
	}
	if !b.ToggleStrictMemory() {
		t.Fatal("expected second toggle to turn strict mode back on")
	}
}

func TestNonStrictModeFallsBackSilently(t *testing.T) {
	b := New(false)
	b.SetRange(0xE000, 0xEFFF, true, false)

	if err := b.Write(0xE000, 0x01); err != nil {
		t.Fatalf("non-strict write should not error: %v", err)
	}
	v, err := b.Read(0xE000)
	if err != nil {
		t.Fatalf("non-strict read should not error: %v", err)
	}
	if v != 0 {
		t.Fatalf("write should have been dropped, got %#x", v)
	}
}

func TestInterruptLatch(t *testing.T) {
	b := New(true)
	if _, ok := b.PendingInterrupt(); ok {
		t.Fatal("no interrupt should be pending initially")
	}
	b.RequestInterrupt(Reset)
	kind, ok := b.PendingInterrupt()
	if !ok || kind != Reset {
		t.Fatalf("got %v, %v; want Reset, true", kind, ok)
	}
	b.ClearInterrupt()
	if _, ok := b.PendingInterrupt(); ok {
		t.Fatal("interrupt should be cleared")
	}
}

func TestLoadFileRaw(t *testing.T) {
	b := New(true)
	if err := b.LoadFile(strings.NewReader("\x01\x02\x03"), 0xFF00, "raw"); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if b.Peek(0xFF00) != 0x01 || b.Peek(0xFF01) != 0x02 || b.Peek(0xFF02) != 0x03 {
		t.Fatal("raw load did not install expected bytes")
	}
}

func TestLoadFileHex(t *testing.T) {
	b := New(true)
	if err := b.LoadFile(strings.NewReader("A9 00 8D 12 D0"), 0x0300, "hex"); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	want := []uint8{0xA9, 0x00, 0x8D, 0x12, 0xD0}
	for i, w := range want {
		if got := b.Peek(uint16(0x0300 + i)); got != w {
			t.Fatalf("byte %d: got %#x, want %#x", i, got, w)
		}
	}
}

func TestLoadFileWoz(t *testing.T) {
	b := New(true)
	src := "E000: A9 00\nE010: 8D 12 D0\n"
	if err := b.LoadFile(strings.NewReader(src), 0xE000, "woz"); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	want := []uint8{0xA9, 0x00, 0x8D, 0x12, 0xD0}
	for i, w := range want {
		if got := b.Peek(uint16(0xE000 + i)); got != w {
			t.Fatalf("byte %d: got %#x, want %#x", i, got, w)
		}
	}
}

func TestLoadFileUnknownFormat(t *testing.T) {
	b := New(true)
	if err := b.LoadFile(strings.NewReader(""), 0, "bogus"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
