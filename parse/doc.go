/*
Package parse provides a small parser-combinator substrate for the markup
toolkit.

Parsers are functions over an immutable, position-tracked state. A parser
either succeeds, returning a value together with the state after the consumed
input, or fails with a message and the position where parsing got stuck.
Failing parsers never consume input, which makes alternation trivial: the
next alternative restarts at the original position.

The combinator set is deliberately lean: sequencing (Bind), alternation (Or),
repetition (Rep/Rep1), negative lookahead (Not) and mapping, plus a handful
of character-level parsers. Grammars in this module mostly sequence
imperatively, as is custom in Go, and reach for the combinators where
alternation or lookahead make the imperative form awkward.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parse

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'malt.parse'.
func tracer() tracing.Trace {
	return tracing.Select("malt.parse")
}
