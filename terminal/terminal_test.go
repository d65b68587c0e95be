package terminal

import "testing"

func TestHeadlessFeedAndPoll(t *testing.T) {
	h := NewHeadless()
	if _, ok := h.PollKey(); ok {
		t.Fatal("no key should be pending on a fresh Headless")
	}
	h.Feed('a')
	h.Feed('b')

	k, ok := h.PollKey()
	if !ok || k != 'a' {
		t.Fatalf("got %v, %v; want 'a', true", k, ok)
	}
	k, ok = h.PollKey()
	if !ok || k != 'b' {
		t.Fatalf("got %v, %v; want 'b', true", k, ok)
	}
	if _, ok := h.PollKey(); ok {
		t.Fatal("queue should be drained")
	}
}

func TestHeadlessEmitAccumulatesOutput(t *testing.T) {
	h := NewHeadless()
	h.Emit('A')
	h.Emit('B')
	if string(h.Output) != "AB" {
		t.Fatalf("got %q, want %q", h.Output, "AB")
	}
}
