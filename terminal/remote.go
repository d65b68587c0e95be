/*
 * S370 - Telnet console backend
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
	"log/slog"
	"net"
)

// Telnet IAC protocol bytes, same numbering as RFC 854.
const (
	tnIAC  = 255
	tnDONT = 254
	tnDO   = 253
	tnWONT = 252
	tnWILL = 251
	tnSB   = 250
	tnSE   = 240
)

const (
	tnOptionBinary = 0
	tnOptionEcho   = 1
	tnOptionSGA    = 3
)

type tnReadState int

const (
	tnStateData tnReadState = iota
	tnStateIAC
	tnStateWILL
	tnStateWONT
	tnStateDO
	tnStateDONT
	tnStateSB
	tnStateSkipSB
)

// Remote is a Terminal backed by a single Telnet connection. Only one
// session is served at a time, matching the Apple 1's single console;
// a newly accepted connection replaces whatever session is currently
// attached.
type Remote struct {
	listener net.Listener
	conn     net.Conn
	state    tnReadState
	inbox    chan byte
	closed   chan struct{}
}

// Listen opens a TCP listener on addr (e.g. ":6502") and accepts Telnet
// connections one at a time in the background. Call Close to stop
// accepting and release the port.
func Listen(addr string) (*Remote, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	r := &Remote{
		listener: ln,
		inbox:    make(chan byte, 256),
		closed:   make(chan struct{}),
	}
	go r.acceptLoop()
	return r, nil
}

func (r *Remote) acceptLoop() {
	for {
		conn, err := r.listener.Accept()
		if err != nil {
			return
		}
		r.attach(conn)
	}
}

func (r *Remote) attach(conn net.Conn) {
	if r.conn != nil {
		r.conn.Close()
	}
	r.conn = conn
	r.state = tnStateData

	negotiate(conn, tnWILL, tnOptionEcho)
	negotiate(conn, tnWILL, tnOptionSGA)
	negotiate(conn, tnWILL, tnOptionBinary)

	go r.readLoop(conn)
}

func negotiate(conn net.Conn, verb, option byte) {
	_, _ = conn.Write([]byte{tnIAC, verb, option})
}

// readLoop runs the Telnet IAC state machine over the connection,
// forwarding plain data bytes to inbox and silently consuming option
// negotiation. It exits when the connection is closed or replaced.
func (r *Remote) readLoop(conn net.Conn) {
	buf := make([]byte, 256)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			if r.conn == conn {
				r.conn = nil
			}
			return
		}
		for _, b := range buf[:n] {
			r.consume(conn, b)
		}
	}
}

func (r *Remote) consume(conn net.Conn, b byte) {
	switch r.state {
	case tnStateData:
		if b == tnIAC {
			r.state = tnStateIAC
			return
		}
		select {
		case r.inbox <- b:
		default:
		}
	case tnStateIAC:
		switch b {
		case tnWILL:
			r.state = tnStateWILL
		case tnWONT:
			r.state = tnStateWONT
		case tnDO:
			r.state = tnStateDO
		case tnDONT:
			r.state = tnStateDONT
		case tnSB:
			r.state = tnStateSB
		case tnIAC:
			select {
			case r.inbox <- tnIAC:
			default:
			}
			r.state = tnStateData
		default:
			r.state = tnStateData
		}
	case tnStateWILL, tnStateWONT:
		r.state = tnStateData
	case tnStateDO:
		// Client offered to let us control an option we already WILL.
		r.state = tnStateData
	case tnStateDONT:
		r.state = tnStateData
	case tnStateSB:
		if b == tnIAC {
			r.state = tnStateSkipSB
			return
		}
	case tnStateSkipSB:
		if b == tnSE {
			r.state = tnStateData
		} else {
			r.state = tnStateSB
		}
	}
}

func (r *Remote) PollKey() (byte, bool) {
	select {
	case b := <-r.inbox:
		return b, true
	default:
		return 0, false
	}
}

func (r *Remote) Emit(b byte) {
	if r.conn == nil {
		return
	}
	out := []byte{b}
	if b == tnIAC {
		out = []byte{tnIAC, tnIAC}
	}
	if _, err := r.conn.Write(out); err != nil {
		slog.Warn("remote console write failed: " + err.Error())
	}
}

func (r *Remote) Refresh() {}

func (r *Remote) Close() error {
	if r.conn != nil {
		r.conn.Close()
	}
	return r.listener.Close()
}
