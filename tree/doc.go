/*
Package tree provides the element model for transformed markup documents.

Documents are trees of elements. Most element variants are produced directly
by parsers, but two variants play a special role in the processing model:

▪︎ Invalid nodes carry an error message together with the literal source text
the message refers to. Recoverable processing errors degrade into Invalid
nodes instead of aborting a document transformation.

▪︎ Placeholder nodes stand in for content which can only be computed once the
complete document (or set of documents) has been assembled, e.g. a directive
that inspects cross-references. A placeholder owns a resolver function which
the rewrite driver of this package invokes exactly once, handing it a cursor
into the assembled tree.

Processing is two-phase: phase 1 parses documents independently, producing
final elements or placeholders; phase 2 (ResolveSet) runs after the whole
document set exists and replaces every placeholder in place.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'malt.tree'.
func tracer() tracing.Trace {
	return tracing.Select("malt.tree")
}
