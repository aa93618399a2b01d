package parse

/*
BSD License

Copyright (c) 2021–2022, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// --- State -----------------------------------------------------------------

// State is an immutable position within a source text. A State value is
// cheap to copy; parsers receive a State and return the State after the
// input they consumed.
type State struct {
	src string
	pos int
}

// StateOf wraps a source text into a parser state at position 0.
func StateOf(src string) State {
	return State{src: src}
}

// Pos returns the current input position as a byte offset.
func (st State) Pos() int {
	return st.pos
}

// Rest returns the not-yet-consumed remainder of the input.
func (st State) Rest() string {
	return st.src[st.pos:]
}

// AtEnd tells if all input has been consumed.
func (st State) AtEnd() bool {
	return st.pos >= len(st.src)
}

// Advance moves the position n bytes forward. It is the caller's
// responsibility not to move beyond the end of the input.
func (st State) Advance(n int) State {
	st.pos += n
	if st.pos > len(st.src) {
		st.pos = len(st.src)
	}
	return st
}

// Peek decodes the rune at the current position, returning the rune and its
// byte length. At the end of input it returns (0, 0).
func (st State) Peek() (rune, int) {
	if st.AtEnd() {
		return 0, 0
	}
	return utf8.DecodeRuneInString(st.src[st.pos:])
}

// HasPrefix tells if the remaining input starts with s.
func (st State) HasPrefix(s string) bool {
	return strings.HasPrefix(st.src[st.pos:], s)
}

// Between returns the input text between st and a later state end.
func (st State) Between(end State) string {
	return st.src[st.pos:end.pos]
}

// --- Failure ---------------------------------------------------------------

// Failure denotes an unsuccessful parse attempt. It carries a message and
// the position where parsing got stuck. A nil *Failure means success.
type Failure struct {
	Message string
	Pos     int
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s (at %d)", f.Message, f.Pos)
}

// Failf creates a failure at position pos.
func Failf(pos int, format string, v ...interface{}) *Failure {
	return &Failure{Message: fmt.Sprintf(format, v...), Pos: pos}
}

// --- Parser ----------------------------------------------------------------

// Parser is a function from a parser state to either a value plus the
// follow-up state, or a failure. Failing parsers must return the state they
// received, i.e. failure never consumes input.
type Parser[T any] func(st State) (T, State, *Failure)

// Succeed creates a parser which always succeeds with v, consuming nothing.
func Succeed[T any](v T) Parser[T] {
	return func(st State) (T, State, *Failure) {
		return v, st, nil
	}
}

// FailWith creates a parser which always fails with the given message.
func FailWith[T any](msg string) Parser[T] {
	return func(st State) (T, State, *Failure) {
		var zero T
		return zero, st, Failf(st.pos, "%s", msg)
	}
}

// Map transforms the result of p with f.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return func(st State) (U, State, *Failure) {
		v, next, fail := p(st)
		if fail != nil {
			var zero U
			return zero, st, fail
		}
		return f(v), next, nil
	}
}

// Bind sequences two parsers, where the second one may depend on the result
// of the first.
func Bind[T, U any](p Parser[T], f func(T) Parser[U]) Parser[U] {
	return func(st State) (U, State, *Failure) {
		v, next, fail := p(st)
		if fail != nil {
			var zero U
			return zero, st, fail
		}
		u, after, fail := f(v)(next)
		if fail != nil {
			var zero U
			return zero, st, fail
		}
		return u, after, nil
	}
}

// Or tries the given alternatives in order and returns the result of the
// first one to succeed. If all alternatives fail, the failure which got
// furthest into the input is reported.
func Or[T any](alts ...Parser[T]) Parser[T] {
	return func(st State) (T, State, *Failure) {
		var furthest *Failure
		for _, alt := range alts {
			v, next, fail := alt(st)
			if fail == nil {
				return v, next, nil
			}
			if furthest == nil || fail.Pos > furthest.Pos {
				furthest = fail
			}
		}
		var zero T
		if furthest == nil {
			furthest = Failf(st.pos, "no alternatives given")
		}
		tracer().Debugf("no alternative matched: %v", furthest)
		return zero, st, furthest
	}
}

// Rep applies p repeatedly until it fails, collecting the results. Rep
// always succeeds; an immediately failing p yields an empty slice. To
// guarantee termination, repetition stops as soon as p succeeds without
// consuming input.
func Rep[T any](p Parser[T]) Parser[[]T] {
	return func(st State) ([]T, State, *Failure) {
		var results []T
		for {
			v, next, fail := p(st)
			if fail != nil || next.pos == st.pos {
				return results, st, nil
			}
			results = append(results, v)
			st = next
		}
	}
}

// Rep1 is like Rep, but requires at least one successful application.
func Rep1[T any](p Parser[T]) Parser[[]T] {
	return func(st State) ([]T, State, *Failure) {
		v, next, fail := p(st)
		if fail != nil {
			return nil, st, fail
		}
		rest, after, _ := Rep(p)(next)
		return append([]T{v}, rest...), after, nil
	}
}

// Not is a negative lookahead: it succeeds, consuming nothing, if and only
// if p fails at the current position.
func Not[T any](p Parser[T]) Parser[struct{}] {
	return func(st State) (struct{}, State, *Failure) {
		_, _, fail := p(st)
		if fail == nil {
			return struct{}{}, st, Failf(st.pos, "unexpected match")
		}
		return struct{}{}, st, nil
	}
}

// EOF succeeds only at the end of the input.
func EOF() Parser[struct{}] {
	return func(st State) (struct{}, State, *Failure) {
		if !st.AtEnd() {
			return struct{}{}, st, Failf(st.pos, "expected end of input")
		}
		return struct{}{}, st, nil
	}
}
