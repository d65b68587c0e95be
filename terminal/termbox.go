/*
 * S370 - termbox-go console backend
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

package terminal

import (
	"github.com/nsf/termbox-go"
)

// Local is a Terminal backed by a raw-mode termbox-go console. It writes
// characters cell by cell across the whole screen, tracking the cursor
// column and row itself.
type Local struct {
	col    int
	row    int
	width  int
	events chan termbox.Event
	done   chan struct{}
}

// NewLocal initializes termbox in raw input mode and returns a console
// backend. Callers must call Close when done to restore the terminal.
func NewLocal() (*Local, error) {
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetInputMode(termbox.InputEsc)
	w, _ := termbox.Size()
	if w <= 0 {
		w = 80
	}
	l := &Local{
		width:  w,
		events: make(chan termbox.Event, 64),
		done:   make(chan struct{}),
	}
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	termbox.Flush()
	go l.pollLoop()
	return l, nil
}

// pollLoop runs for the lifetime of the terminal, feeding termbox events
// into a buffered channel so PollKey can poll it without blocking. A
// single background PollEvent loop, rather than one goroutine per poll,
// avoids leaking a goroutine for every call that finds no key waiting.
func (l *Local) pollLoop() {
	for {
		ev := termbox.PollEvent()
		select {
		case l.events <- ev:
		case <-l.done:
			return
		}
		select {
		case <-l.done:
			return
		default:
		}
	}
}

// PollKey checks for a pending keypress without blocking. It mirrors the
// curses nodelay() poll the console register depends on: no event ready
// means no key, exactly like the curses.ERR sentinel.
func (l *Local) PollKey() (byte, bool) {
	select {
	case ev := <-l.events:
		if ev.Type != termbox.EventKey {
			return 0, false
		}
		if ev.Ch != 0 {
			return byte(ev.Ch), true
		}
		switch ev.Key {
		case termbox.KeyEnter:
			return 13, true
		case termbox.KeyBackspace, termbox.KeyBackspace2:
			return 127, true
		case termbox.KeyCtrlR:
			return 18, true
		case termbox.KeyCtrlE:
			return 5, true
		case termbox.KeySpace:
			return ' ', true
		}
		return 0, false
	default:
		return 0, false
	}
}

// Emit writes a single display byte, wrapping to a new row at the
// console width. When the cursor moves past the bottom row the screen
// is cleared and output continues on the bottom row; it does not
// scroll.
func (l *Local) Emit(b byte) {
	switch b {
	case 10, 13: // LF (the display register's newline) or CR
		l.col = 0
		l.row++
	default:
		termbox.SetCell(l.col, l.row, rune(b), termbox.ColorDefault, termbox.ColorDefault)
		l.col++
		if l.col >= l.width {
			l.col = 0
			l.row++
		}
	}
	_, h := termbox.Size()
	if h > 0 && l.row >= h {
		l.row = h - 1
		l.col = 0
		termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	}
}

func (l *Local) Refresh() {
	termbox.Flush()
}

func (l *Local) Close() error {
	close(l.done)
	termbox.Close()
	return nil
}
