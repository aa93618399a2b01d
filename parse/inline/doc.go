/*
Package inline implements the generic nested-span parser shared by all
markup grammars of this module.

Parsing inline markup naively means trying every possible construct at every
input position, which is prohibitively expensive. Instead, this package
scans literal text with a delimited-text scanner (Scan) and dispatches on
trigger characters: the first character of every potential nested construct
selects a sub-parser from a map. Only when a trigger character is hit does a
sub-parser run; if it fails, the trigger character degrades to a literal and
scanning resumes right after it. Each loop iteration consumes at least one
character, so termination is guaranteed.

Results are collected by an exchangeable builder. Two builders ship with the
package: SpanBuilder produces a sequence of tree elements and implements the
retraction protocol (see tree.Retract), TextBuilder flattens everything into
a single string, backed by a text cord.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package inline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'malt.inline'.
func tracer() tracing.Trace {
	return tracing.Select("malt.inline")
}
