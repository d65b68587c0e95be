package config

import (
	"strings"
	"testing"
)

func TestParseBasicDirectives(t *testing.T) {
	src := `# startup config
rom wozmon /roms/wozmon.bin
rom basic /roms/basic.woz
breakpoint FF00
delay 2
outputdelay 5000
`
	cfg, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.ROMs) != 2 || cfg.ROMs[0].Name != "wozmon" || cfg.ROMs[1].Path != "/roms/basic.woz" {
		t.Fatalf("got ROMs %+v", cfg.ROMs)
	}
	if len(cfg.Breakpoints) != 1 || cfg.Breakpoints[0] != 0xFF00 {
		t.Fatalf("got breakpoints %+v", cfg.Breakpoints)
	}
	if !cfg.HasCPUDelay() || cfg.CPUDelayUS != 2 {
		t.Fatalf("got CPUDelayUS=%d haveCPUDelay=%v", cfg.CPUDelayUS, cfg.HasCPUDelay())
	}
	if !cfg.HasOutputDelay() || cfg.OutputDelay != 5000 {
		t.Fatalf("got OutputDelay=%d haveOutputDelay=%v", cfg.OutputDelay, cfg.HasOutputDelay())
	}
}

func TestParseIgnoresBlankAndCommentLines(t *testing.T) {
	src := "\n# just a comment\n   \nrom wozmon /roms/wozmon.bin\n"
	cfg, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.ROMs) != 1 {
		t.Fatalf("got %d ROMs, want 1", len(cfg.ROMs))
	}
}

func TestParseRejectsUnknownDirective(t *testing.T) {
	if _, err := Parse(strings.NewReader("bogus 1 2 3\n")); err == nil {
		t.Fatal("expected an error for an unknown directive")
	}
}

func TestParseRejectsMalformedBreakpoint(t *testing.T) {
	if _, err := Parse(strings.NewReader("breakpoint zzzz\n")); err == nil {
		t.Fatal("expected an error for a non-hex breakpoint address")
	}
}
