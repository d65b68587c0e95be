/*
 * S370 - Simulator error type
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

// Package simerr defines the single error type raised by the bus and CPU
// packages when the simulated machine hits a condition it cannot recover
// from on its own: an out-of-bounds memory access under strict accounting,
// an unmapped opcode, a halted CPU asked to step.
package simerr

import "fmt"

// SimError reports a condition the simulated hardware cannot step past.
// Callers that only care whether the run can continue should check for
// this type with errors.As rather than string-matching Error().
type SimError struct {
	Msg string
}

func (e *SimError) Error() string {
	return "SimError: " + e.Msg
}

// New builds a SimError from a formatted message.
func New(format string, args ...any) *SimError {
	return &SimError{Msg: fmt.Sprintf(format, args...)}
}
