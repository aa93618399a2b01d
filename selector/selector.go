package selector

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
	"strings"
	"unicode"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/malt/core"
	"github.com/npillmayer/malt/parse"
	"github.com/npillmayer/malt/parse/inline"
)

// ParseRules parses a sequence of style rules, e.g.
//
//	p.note > em { color: red }
//	#toc       { margin: 0; padding: "1em 2\"em" !important }
//
// Malformed input is a hard error (code ESYNTAX), there is no fallback.
func ParseRules(src string) ([]*css.Rule, error) {
	st := parse.StateOf(src)
	var rules []*css.Rule
	for {
		_, st, _ = parse.Whitespace()(st)
		if st.AtEnd() {
			return rules, nil
		}
		rule, next, fail := parseRule(st)
		if fail != nil {
			tracer().Errorf("style rule: %v", fail)
			return nil, core.WrapError(fail, core.ESYNTAX, "cannot parse style rule")
		}
		rules = append(rules, rule)
		st = next
	}
}

// ParseRule parses a single style rule.
func ParseRule(src string) (*css.Rule, error) {
	_, st, _ := parse.Whitespace()(parse.StateOf(src))
	rule, next, fail := parseRule(st)
	if fail != nil {
		return nil, core.WrapError(fail, core.ESYNTAX, "cannot parse style rule")
	}
	if _, rest, _ := parse.Whitespace()(next); !rest.AtEnd() {
		return nil, core.Error(core.ESYNTAX, "trailing input after style rule")
	}
	return rule, nil
}

func parseRule(st parse.State) (*css.Rule, parse.State, *parse.Failure) {
	prelude, next, fail := inline.Text(inline.AtDelimiter("{"), nil)(st)
	if fail != nil {
		return nil, st, fail
	}
	selectors, err := parseSelectorGroup(prelude)
	if err != nil {
		return nil, st, parse.Failf(st.Pos(), "%s", err.Error())
	}
	decls, next, fail := parseDeclarations(next)
	if fail != nil {
		return nil, st, fail
	}
	rule := &css.Rule{
		Kind:         css.QualifiedRule,
		Prelude:      strings.TrimSpace(prelude),
		Selectors:    selectors,
		Declarations: decls,
	}
	tracer().Debugf("parsed rule for %v with %d declaration(s)", selectors, len(decls))
	return rule, next, nil
}

// --- Selectors -------------------------------------------------------------

// parseSelectorGroup splits a rule prelude at commas and validates each
// selector against the supported subset: compound selectors (type, class,
// id, universal) joined by descendant or child combinators.
func parseSelectorGroup(prelude string) ([]string, error) {
	var selectors []string
	for _, raw := range strings.Split(prelude, ",") {
		sel, err := normalizeSelector(raw)
		if err != nil {
			return nil, err
		}
		selectors = append(selectors, sel)
	}
	return selectors, nil
}

func normalizeSelector(raw string) (string, error) {
	// isolate child combinators, then tokenize at whitespace
	spaced := strings.ReplaceAll(raw, ">", " > ")
	tokens := strings.Fields(spaced)
	if len(tokens) == 0 {
		return "", core.Error(core.ESYNTAX, "empty selector")
	}
	expectCompound := true
	for _, tok := range tokens {
		if tok == ">" {
			if expectCompound {
				return "", core.Error(core.ESYNTAX, "misplaced '>' in selector %q", strings.TrimSpace(raw))
			}
			expectCompound = true
			continue
		}
		if err := checkCompound(tok); err != nil {
			return "", err
		}
		expectCompound = false
	}
	if expectCompound { // trailing combinator
		return "", core.Error(core.ESYNTAX, "selector %q ends in a combinator", strings.TrimSpace(raw))
	}
	return strings.Join(tokens, " "), nil
}

// checkCompound validates one compound selector: an optional type name (or
// '*') followed by any number of '.class' and '#id' qualifiers.
func checkCompound(tok string) error {
	st := parse.StateOf(tok)
	if st.HasPrefix("*") {
		st = st.Advance(1)
	} else if r, _ := st.Peek(); r != '.' && r != '#' {
		var fail *parse.Failure
		if _, st, fail = ident()(st); fail != nil {
			return core.Error(core.ESYNTAX, "invalid selector part %q", tok)
		}
	}
	for !st.AtEnd() {
		r, w := st.Peek()
		if r != '.' && r != '#' {
			return core.Error(core.ESYNTAX, "invalid selector part %q", tok)
		}
		var fail *parse.Failure
		if _, st, fail = ident()(st.Advance(w)); fail != nil {
			return core.Error(core.ESYNTAX, "invalid selector part %q", tok)
		}
	}
	return nil
}

// ident parses a CSS identifier (letters, digits, '-', '_'; no leading
// digit).
func ident() parse.Parser[string] {
	return func(st parse.State) (string, parse.State, *parse.Failure) {
		r, w := st.Peek()
		if w == 0 || !(unicode.IsLetter(r) || r == '-' || r == '_') {
			return "", st, parse.Failf(st.Pos(), "expected an identifier")
		}
		rest, next, _ := parse.TakeWhile(func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
		})(st.Advance(w))
		return string(r) + rest, next, nil
	}
}

// --- Declarations ----------------------------------------------------------

func parseDeclarations(st parse.State) ([]*css.Declaration, parse.State, *parse.Failure) {
	var decls []*css.Declaration
	for {
		_, st, _ = parse.Whitespace()(st)
		if st.HasPrefix("}") {
			return decls, st.Advance(1), nil
		}
		if st.AtEnd() {
			return nil, st, parse.Failf(st.Pos(), "unterminated declaration block")
		}
		prop, next, fail := ident()(st)
		if fail != nil {
			return nil, st, fail
		}
		_, next, _ = parse.Whitespace()(next)
		_, next, fail = parse.Rune(':')(next)
		if fail != nil {
			return nil, st, fail
		}
		value, next, fail := declarationValue(next)
		if fail != nil {
			return nil, st, fail
		}
		value, important := splitImportant(value)
		if value == "" {
			return nil, st, parse.Failf(st.Pos(), "declaration '%s' has no value", prop)
		}
		decls = append(decls, &css.Declaration{
			Property:  prop,
			Value:     value,
			Important: important,
		})
		st = next
	}
}

// declarationValue reads a property value up to ';' (consumed) or '}' (left
// in the input), honoring quoted strings and backslash escapes through the
// inline text helper.
func declarationValue(st parse.State) (string, parse.State, *parse.Failure) {
	end := inline.EndCondition{Delimiter: ";", Boundary: "}"}
	v, next, fail := inline.Text(end, valueTriggers)(st)
	if fail != nil {
		return "", st, fail
	}
	return strings.TrimSpace(v), next, nil
}

// valueTriggers keeps quoted strings and escapes intact inside a value, so
// that ';' and '}' inside a string do not terminate the declaration.
func valueTriggers() map[rune]parse.Parser[string] {
	return map[rune]parse.Parser[string]{
		'"':  quotedString(),
		'\\': parse.Map(parse.AnyRune(), func(r rune) string { return "\\" + string(r) }),
	}
}

// quotedString re-emits a double-quoted string literally, quotes and
// escapes included.
func quotedString() parse.Parser[string] {
	return func(st parse.State) (string, parse.State, *parse.Failure) {
		keepEscapes := func() map[rune]parse.Parser[string] {
			return map[rune]parse.Parser[string]{
				'\\': parse.Map(parse.AnyRune(), func(r rune) string { return "\\" + string(r) }),
			}
		}
		inner, next, fail := inline.Text(inline.AtDelimiter(`"`), keepEscapes)(st)
		if fail != nil {
			return "", st, fail
		}
		return `"` + inner + `"`, next, nil
	}
}

func splitImportant(value string) (string, bool) {
	if strings.HasSuffix(value, "!important") {
		return strings.TrimSpace(strings.TrimSuffix(value, "!important")), true
	}
	return value, false
}
