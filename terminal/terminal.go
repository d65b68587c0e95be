/*
 * S370 - Console terminal abstraction
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

// Package terminal abstracts the Apple 1 console keyboard and display so
// that package apple1 never talks to a physical screen directly. Three
// backends are provided: a local termbox-go console, a single-session
// Telnet listener for a remote console, and a headless backend for tests.
package terminal

// Terminal is the console surface the Apple 1 I/O registers are wired
// to. PollKey is non-blocking: ok is false when no key is currently
// waiting, mirroring the original curses nodelay() keyboard poll.
type Terminal interface {
	PollKey() (key byte, ok bool)
	Emit(b byte)
	Refresh()
	Close() error
}

// Headless is a Terminal backend with no physical device behind it. It
// is used by unit tests and by any driver mode that wants to exercise
// the CPU without a console attached. Keys can be queued with Feed; emitted
// bytes accumulate in Output.
type Headless struct {
	queue  []byte
	Output []byte
}

func NewHeadless() *Headless {
	return &Headless{}
}

// Feed appends a key to the pending input queue, to be returned one at a
// time by subsequent PollKey calls.
func (h *Headless) Feed(b byte) {
	h.queue = append(h.queue, b)
}

func (h *Headless) PollKey() (byte, bool) {
	if len(h.queue) == 0 {
		return 0, false
	}
	k := h.queue[0]
	h.queue = h.queue[1:]
	return k, true
}

func (h *Headless) Emit(b byte) {
	h.Output = append(h.Output, b)
}

func (h *Headless) Refresh() {}

func (h *Headless) Close() error { return nil }
