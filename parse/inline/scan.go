package inline

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
	"github.com/npillmayer/malt/parse"
)

// EndCondition decides where a span of delimited text ends. A literal
// delimiter terminates the span and is consumed without becoming part of
// the scanned text; a boundary terminates the span but stays in the input;
// the end of the input terminates the span if EOF is set. Conditions may be
// combined, the first one satisfied wins.
type EndCondition struct {
	Delimiter string
	Boundary  string
	EOF       bool
}

// AtDelimiter creates an end condition requiring the literal delimiter s,
// which is consumed.
func AtDelimiter(s string) EndCondition {
	return EndCondition{Delimiter: s}
}

// Before creates an end condition terminating in front of the literal s,
// which is not consumed.
func Before(s string) EndCondition {
	return EndCondition{Boundary: s}
}

// AtEOF creates an end condition satisfied by the end of the input only.
func AtEOF() EndCondition {
	return EndCondition{EOF: true}
}

func (end EndCondition) expected() string {
	if end.Delimiter != "" {
		return end.Delimiter
	}
	return end.Boundary
}

// Scan reads literal text starting at st, up to the first occurrence of the
// end condition or of a trigger character. It returns the scanned chunk and
// the follow-up state, which is positioned
//
// ▪︎ after the end delimiter (or at the boundary) if the end condition
// terminated the scan (atTrigger is false), or
//
// ▪︎ at the trigger character if one was hit first (atTrigger is true, trig
// holds the character; the trigger is not consumed).
//
// If the input is exhausted and the end condition does not accept EOF, Scan
// fails with an "unterminated" failure at the scan's start position.
func Scan(st parse.State, end EndCondition, isTrigger func(rune) bool) (
	chunk string, next parse.State, trig rune, atTrigger bool, fail *parse.Failure) {
	//
	next = st
	for {
		if end.Delimiter != "" && next.HasPrefix(end.Delimiter) {
			chunk = st.Between(next)
			next = next.Advance(len(end.Delimiter))
			return chunk, next, 0, false, nil
		}
		if end.Boundary != "" && next.HasPrefix(end.Boundary) {
			return st.Between(next), next, 0, false, nil
		}
		r, w := next.Peek()
		if w == 0 { // end of input
			if end.EOF {
				return st.Between(next), next, 0, false, nil
			}
			fail = parse.Failf(st.Pos(), "unterminated text, expected %q", end.expected())
			return "", st, 0, false, fail
		}
		if isTrigger != nil && isTrigger(r) {
			return st.Between(next), next, r, true, nil
		}
		next = next.Advance(w)
	}
}
