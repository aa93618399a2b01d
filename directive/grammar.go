package directive

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

	"github.com/npillmayer/malt/parse"
	"github.com/npillmayer/malt/parse/inline"
)

// The declaration grammar, informally:
//
//    declaration := "@"?  ":" name defaultAttr? attr*  bodyMarker?
//    name        := letter (letter|digit|'-'|'_')*
//    defaultAttr := (not followed by: name ws* '=') attrValue
//    attr        := name ws* '=' ws* attrValue
//    attrValue   := '"' text-with-escapes '"'
//                 | run of chars excluding {space, tab, newline, '.', ':'}
//    bodyMarker  := '.'                          (zero body parts)
//                 | ':' defaultBody? namedBody*
//    defaultBody := (not followed by: ws* '~' name ws* ':') bodyContent
//    namedBody   := ws* '~' name ws* ':' bodyContent
//
// bodyContent is supplied by the caller, since it differs per surrounding
// markup form; see BlockBody and BracedBody. The "@" prefix is required for
// block-form directives only.

func isNameStart(r rune) bool {
	return unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}

// Name parses a directive or attribute name.
func Name() parse.Parser[string] {
	return func(st parse.State) (string, parse.State, *parse.Failure) {
		r, w := st.Peek()
		if w == 0 || !isNameStart(r) {
			return "", st, parse.Failf(st.Pos(), "expected a name")
		}
		rest, next, _ := parse.TakeWhile(isNameChar)(st.Advance(w))
		return string(r) + rest, next, nil
	}
}

// isUnquotedValueChar admits the characters of an unquoted attribute value.
// '.' and ':' are excluded since they double as body markers.
func isUnquotedValueChar(r rune) bool {
	return !parse.IsWhitespace(r) && r != '.' && r != ':'
}

// AttrValue parses an attribute value, either quoted (with backslash
// escapes, parsed through the inline text helper) or as an unquoted
// non-empty character run.
func AttrValue() parse.Parser[string] {
	return parse.Or(quotedValue(), parse.TakeWhile1("attribute value", isUnquotedValueChar))
}

func quotedValue() parse.Parser[string] {
	return func(st parse.State) (string, parse.State, *parse.Failure) {
		_, next, fail := parse.Rune('"')(st)
		if fail != nil {
			return "", st, fail
		}
		v, after, fail := inline.Text(inline.AtDelimiter(`"`), escapeTrigger)(next)
		if fail != nil {
			return "", st, fail
		}
		return v, after, nil
	}
}

// escapeTrigger maps '\' to a sub-parser replacing the escape sequence by
// the escaped character itself.
func escapeTrigger() map[rune]parse.Parser[string] {
	return map[rune]parse.Parser[string]{
		'\\': parse.Map(parse.AnyRune(), func(r rune) string { return string(r) }),
	}
}

// --- Declaration -----------------------------------------------------------

// Declaration creates a parser for a full directive declaration. With
// atPrefix set, the declaration must start with "@" (block form). The body
// parser reads the content of one body part and is applied after the body
// marker and after each named-body introducer.
//
// Parts are returned in declaration order: default attribute, named
// attributes, default body, named bodies. Duplicate keys are not rejected
// here; see Apply.
func Declaration(atPrefix bool, body parse.Parser[string]) parse.Parser[ParsedDirective] {
	return func(st parse.State) (ParsedDirective, parse.State, *parse.Failure) {
		var zero ParsedDirective
		start := st // failure must return the received state
		if atPrefix {
			_, next, fail := parse.Rune('@')(st)
			if fail != nil {
				return zero, start, fail
			}
			st = next
		}
		_, next, fail := parse.Rune(':')(st)
		if fail != nil {
			return zero, start, fail
		}
		name, next, fail := Name()(next)
		if fail != nil {
			return zero, start, fail
		}
		d := ParsedDirective{Name: name}
		next = parseAttributes(&d, next)
		next, fail = parseBodies(&d, next, body)
		if fail != nil {
			return zero, start, fail
		}
		tracer().Debugf("parsed directive '%s' with %d part(s)", d.Name, len(d.Parts))
		return d, next, nil
	}
}

// parseAttributes reads the optional default attribute and any named
// attributes. Attributes never fail the declaration: an unparsable
// candidate simply ends the attribute list.
func parseAttributes(d *ParsedDirective, st parse.State) parse.State {
	// default attribute, unless the lookahead sees a named one
	if _, after, fail := parse.Whitespace1()(st); fail == nil && !namedAttrAhead(after) {
		if v, next, fail := AttrValue()(after); fail == nil {
			d.Parts = append(d.Parts, Part{Key: DefaultAttribute, Content: v})
			st = next
		}
	}
	for {
		_, after, fail := parse.Whitespace1()(st)
		if fail != nil {
			return st
		}
		name, after, fail := Name()(after)
		if fail != nil {
			return st
		}
		_, after, _ = parse.Whitespace()(after)
		_, after, fail = parse.Rune('=')(after)
		if fail != nil {
			return st
		}
		_, after, _ = parse.Whitespace()(after)
		v, after, fail := AttrValue()(after)
		if fail != nil {
			return st
		}
		d.Parts = append(d.Parts, Part{Key: AttributeKey(name), Content: v})
		st = after
	}
}

// namedAttrAhead probes for `name ws* '='` without consuming input.
func namedAttrAhead(st parse.State) bool {
	_, after, fail := Name()(st)
	if fail != nil {
		return false
	}
	_, after, _ = parse.Whitespace()(after)
	_, _, fail = parse.Rune('=')(after)
	return fail == nil
}

// parseBodies reads the optional body marker and body parts. A '.' marker
// declares zero body parts; a ':' marker is followed by an optional default
// body and any number of named bodies.
func parseBodies(d *ParsedDirective, st parse.State, body parse.Parser[string]) (parse.State, *parse.Failure) {
	if st.HasPrefix(".") {
		return st.Advance(1), nil
	}
	if !st.HasPrefix(":") {
		return st, nil // no body marker at all
	}
	st = st.Advance(1)
	if !namedBodyAhead(st) {
		content, next, fail := bodyContent(st, body)
		if fail != nil {
			return st, fail
		}
		d.Parts = append(d.Parts, Part{Key: DefaultBody, Content: content})
		st = next
	}
	for namedBodyAhead(st) {
		_, after, _ := parse.Whitespace()(st)
		_, after, _ = parse.Rune('~')(after)
		name, after, _ := Name()(after)
		_, after, _ = parse.Whitespace()(after)
		_, after, _ = parse.Rune(':')(after)
		content, next, fail := bodyContent(after, body)
		if fail != nil {
			return st, fail
		}
		d.Parts = append(d.Parts, Part{Key: BodyKey(name), Content: content})
		st = next
	}
	return st, nil
}

// bodyContent skips horizontal space after a body introducer and applies
// the caller-supplied content parser.
func bodyContent(st parse.State, body parse.Parser[string]) (string, parse.State, *parse.Failure) {
	_, after, _ := parse.TakeWhile(func(r rune) bool { return r == ' ' || r == '\t' })(st)
	return body(after)
}

// namedBodyAhead probes for `ws* '~' name ws* ':'` without consuming input.
func namedBodyAhead(st parse.State) bool {
	_, after, _ := parse.Whitespace()(st)
	_, after, fail := parse.Rune('~')(after)
	if fail != nil {
		return false
	}
	_, after, fail = Name()(after)
	if fail != nil {
		return false
	}
	_, after, _ = parse.Whitespace()(after)
	_, _, fail = parse.Rune(':')(after)
	return fail == nil
}

// --- Body-content parsers --------------------------------------------------

// BlockBody parses the body content of a block-form directive: the rest of
// the current line plus all immediately following indented lines. An
// all-whitespace body is rejected as an empty body.
func BlockBody() parse.Parser[string] {
	return func(st parse.State) (string, parse.State, *parse.Failure) {
		restOfLine := parse.TakeWhile(func(r rune) bool { return r != '\n' })
		_, next, _ := restOfLine(st)
		for {
			if !next.HasPrefix("\n") {
				break
			}
			peek := next.Advance(1)
			if r, w := peek.Peek(); w == 0 || (r != ' ' && r != '\t') {
				break
			}
			_, next, _ = restOfLine(peek)
		}
		content := st.Between(next)
		if strings.TrimSpace(content) == "" {
			return "", st, parse.Failf(st.Pos(), "empty body")
		}
		return content, next, nil
	}
}

// BracedBody parses the body content of an inline- or template-form
// directive: a brace-delimited text with nested-brace awareness, so that
// `{...{...}...}` balances before the outer closing brace terminates. The
// outer braces are not part of the content; backslash escapes a character.
func BracedBody() parse.Parser[string] {
	return func(st parse.State) (string, parse.State, *parse.Failure) {
		_, next, fail := parse.Rune('{')(st)
		if fail != nil {
			return "", st, fail
		}
		content, after, fail := inline.Text(inline.AtDelimiter("}"), bracedTriggers)(next)
		if fail != nil {
			return "", st, fail
		}
		return content, after, nil
	}
}

// bracedTriggers handles nested groups and escapes inside a braced body.
func bracedTriggers() map[rune]parse.Parser[string] {
	return map[rune]parse.Parser[string]{
		'{':  nestedGroup(),
		'\\': parse.Map(parse.AnyRune(), func(r rune) string { return string(r) }),
	}
}

// nestedGroup consumes a balanced brace group, whose opening brace was the
// trigger, and re-emits it literally including the braces.
func nestedGroup() parse.Parser[string] {
	return func(st parse.State) (string, parse.State, *parse.Failure) {
		inner, next, fail := inline.Text(inline.AtDelimiter("}"), bracedTriggers)(st)
		if fail != nil {
			return "", st, fail
		}
		return "{" + inner + "}", next, nil
	}
}

// --- Canned declaration forms ----------------------------------------------

// BlockDeclaration parses a block-form directive: "@" prefix, indented-block
// bodies.
func BlockDeclaration() parse.Parser[ParsedDirective] {
	return Declaration(true, BlockBody())
}

// SpanDeclaration parses a span-form directive: no prefix, brace-delimited
// bodies.
func SpanDeclaration() parse.Parser[ParsedDirective] {
	return Declaration(false, BracedBody())
}
