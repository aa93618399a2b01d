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

// Character-level parsers. These are the workhorses for the grammars in
// packages directive and selector.

// Literal matches the string s exactly.
func Literal(s string) Parser[string] {
	return func(st State) (string, State, *Failure) {
		if !st.HasPrefix(s) {
			return "", st, Failf(st.pos, "expected %q", s)
		}
		return s, st.Advance(len(s)), nil
	}
}

// Rune matches a single given rune.
func Rune(r rune) Parser[rune] {
	return func(st State) (rune, State, *Failure) {
		c, w := st.Peek()
		if w == 0 || c != r {
			return 0, st, Failf(st.pos, "expected %q", r)
		}
		return c, st.Advance(w), nil
	}
}

// RuneWhere matches a single rune satisfying pred. The what argument names
// the expected class of characters for failure messages.
func RuneWhere(what string, pred func(rune) bool) Parser[rune] {
	return func(st State) (rune, State, *Failure) {
		c, w := st.Peek()
		if w == 0 || !pred(c) {
			return 0, st, Failf(st.pos, "expected %s", what)
		}
		return c, st.Advance(w), nil
	}
}

// AnyRune matches any single rune, failing only at the end of the input.
func AnyRune() Parser[rune] {
	return RuneWhere("any character", func(rune) bool { return true })
}

// TakeWhile consumes the longest (possibly empty) run of runes satisfying
// pred. It never fails.
func TakeWhile(pred func(rune) bool) Parser[string] {
	return func(st State) (string, State, *Failure) {
		next := st
		for {
			c, w := next.Peek()
			if w == 0 || !pred(c) {
				return st.Between(next), next, nil
			}
			next = next.Advance(w)
		}
	}
}

// TakeWhile1 is like TakeWhile, but requires the run to be non-empty.
func TakeWhile1(what string, pred func(rune) bool) Parser[string] {
	return func(st State) (string, State, *Failure) {
		s, next, _ := TakeWhile(pred)(st)
		if s == "" {
			return "", st, Failf(st.pos, "expected %s", what)
		}
		return s, next, nil
	}
}

// IsWhitespace is the whitespace predicate used by the grammars of this
// module: space, tab, newline and carriage return.
func IsWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// Whitespace consumes optional whitespace. It never fails.
func Whitespace() Parser[string] {
	return TakeWhile(IsWhitespace)
}

// Whitespace1 consumes mandatory whitespace.
func Whitespace1() Parser[string] {
	return TakeWhile1("whitespace", IsWhitespace)
}
