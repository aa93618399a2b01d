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
	"unicode/utf8"

	"github.com/npillmayer/malt/parse"
	"github.com/npillmayer/malt/tree"
)

// Builder accumulates the results of one inline-parsing invocation. A
// builder instance is private to a single invocation and must not be
// shared. FromString lifts literal text into an element, Append adds an
// element (builders may merge or reorder internally), Result finalizes and
// returns the accumulated value.
type Builder[E, T any] interface {
	FromString(s string) E
	Append(e E)
	Result() T
}

// Dispatch creates a parser for nested inline spans. It scans literal text
// up to the end condition, dispatching on trigger characters: every key of
// the nested map is a trigger, and hitting one runs the mapped sub-parser
// immediately after the trigger character. A successful sub-parser
// contributes its element and parsing resumes at its end position; a
// failing sub-parser degrades the trigger character to a one-character
// literal and parsing resumes right after it, without ever retrying the
// same sub-parser at that position.
//
// The nested map thunk is evaluated once per invocation, not once per
// character, which permits recursive grammars. A fresh builder is created
// per invocation.
//
// The only hard failure is an unsatisfiable end condition; it propagates
// from the scanner with message and position.
func Dispatch[E, T any](end EndCondition, nested func() map[rune]parse.Parser[E],
	newBuilder func() Builder[E, T]) parse.Parser[T] {
	//
	return func(st parse.State) (T, parse.State, *parse.Failure) {
		var m map[rune]parse.Parser[E]
		if nested != nil {
			m = nested()
		}
		isTrigger := func(r rune) bool {
			_, ok := m[r]
			return ok
		}
		builder := newBuilder()
		for {
			chunk, next, trig, atTrigger, fail := Scan(st, end, isTrigger)
			if fail != nil {
				var zero T
				return zero, st, fail
			}
			if !atTrigger {
				if chunk != "" {
					builder.Append(builder.FromString(chunk))
				}
				return builder.Result(), next, nil
			}
			if chunk != "" {
				builder.Append(builder.FromString(chunk))
			}
			after := next.Advance(utf8.RuneLen(trig))
			elem, subEnd, subFail := m[trig](after)
			if subFail != nil {
				tracer().Debugf("no construct at trigger %q, emitting literal: %v", trig, subFail)
				builder.Append(builder.FromString(string(trig)))
				st = after
				continue
			}
			builder.Append(elem)
			st = subEnd
		}
	}
}

// Spans creates an inline parser producing a sequence of tree elements,
// using a SpanBuilder.
func Spans(end EndCondition, nested func() map[rune]parse.Parser[tree.Element]) parse.Parser[[]tree.Element] {
	return Dispatch(end, nested, func() Builder[tree.Element, []tree.Element] {
		return NewSpanBuilder()
	})
}

// Text creates an inline parser flattening all results into a single
// string, using a TextBuilder. Sub-parsers contribute strings, e.g. the
// replacement text of escape sequences.
func Text(end EndCondition, nested func() map[rune]parse.Parser[string]) parse.Parser[string] {
	return Dispatch(end, nested, func() Builder[string, string] {
		return NewTextBuilder()
	})
}
