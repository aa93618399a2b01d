/*
Package selector parses a small CSS subset for styling transformed
documents.

The subset covers qualified rules only: selector groups built from type,
class and id selectors with descendant and child combinators, plus a
declaration block. Property values are read with the inline text helper of
package parse/inline, so quoted strings and backslash escapes inside values
are handled correctly.

Parsed rules are represented with the types of
github.com/aymerick/douceur/css, so downstream styling code can consume them
like any other CSS source.

In contrast to the directive machinery, this parser does not degrade
malformed input into fallback content: a rule which cannot be parsed is a
hard error.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package selector

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'malt.selector'.
func tracer() tracing.Trace {
	return tracing.Select("malt.selector")
}
