/*
Package directive implements user-registrable markup constructs.

A directive is a named construct with attributes and body parts, embedded in
lightweight markup or templates, e.g.

	:callout type=warn: A span-level directive with one attribute.

	@:toc depth=2.

The package covers three concerns:

▪︎ The declaration grammar parses a directive's name, attributes and body
parts into a dialect-independent ParsedDirective. The content grammar for
body parts differs per surrounding markup form and is supplied by the
caller; BlockBody and BracedBody cover the two common forms.

▪︎ The Registry maps directive names to registered implementations, one
registry per directive kind (block-level, span-level, …). Registries are
built once and never mutated.

▪︎ Apply resolves a ParsedDirective against a registry. Lookup errors,
duplicate parts and errors reported by the directive implementation all
degrade into an invalid tree node carrying the collected messages; they
never abort the surrounding document parse. A directive whose
implementation requires access to the fully assembled document tree
structurally succeeds at parse time and yields a placeholder instead, to be
resolved by the rewrite driver of package tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package directive

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'malt.directive'.
func tracer() tracing.Trace {
	return tracing.Select("malt.directive")
}
