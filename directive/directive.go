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
	"sort"
	"strings"

	"github.com/derekparker/trie"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/malt/tree"
)

// --- Parts and keys --------------------------------------------------------

// Scope distinguishes attribute parts from body parts.
type Scope int8

const (
	Attribute Scope = iota
	Body
)

func (s Scope) String() string {
	if s == Attribute {
		return "attribute"
	}
	return "body"
}

// PartKey identifies one part of a directive declaration. An empty Name
// denotes the unnamed default part of the scope.
type PartKey struct {
	Scope Scope
	Name  string
}

// AttributeKey creates a key for a named attribute.
func AttributeKey(name string) PartKey {
	return PartKey{Scope: Attribute, Name: name}
}

// BodyKey creates a key for a named body part.
func BodyKey(name string) PartKey {
	return PartKey{Scope: Body, Name: name}
}

// DefaultAttribute is the key of the unnamed attribute part.
var DefaultAttribute = PartKey{Scope: Attribute}

// DefaultBody is the key of the unnamed body part.
var DefaultBody = PartKey{Scope: Body}

// IsDefault tells if k denotes an unnamed default part.
func (k PartKey) IsDefault() bool {
	return k.Name == ""
}

// Description returns the key's rendition for user-facing messages, e.g.
// "default attribute" or "body: sidebar".
func (k PartKey) Description() string {
	if k.IsDefault() {
		return "default " + k.Scope.String()
	}
	return k.Scope.String() + ": " + k.Name
}

// Part is one attribute or body fragment of a directive declaration, with
// its content kept as the raw source string.
type Part struct {
	Key     PartKey
	Content string
}

// ParsedDirective is the dialect-independent result of parsing a directive
// declaration. It is transient: the application engine converts it into a
// part map and discards it. Parts may contain duplicate keys at this stage;
// the grammar accepts both a default and a named form of the same part, and
// validation happens during application.
type ParsedDirective struct {
	Name  string
	Parts []Part
}

// --- Errors ----------------------------------------------------------------

// Messages is an error collecting one or more ordered messages from
// directive processing.
type Messages []string

func (m Messages) Error() string {
	return strings.Join(m, ", ")
}

// --- Context ---------------------------------------------------------------

// Context is the validated view of a directive instance, handed to the
// registered implementation. Part keys are unique by construction. The
// cursor is only present during deferred (phase 2) resolution.
type Context struct {
	parts  *linkedhashmap.Map // PartKey → string, in declaration order
	cursor *tree.Cursor
}

// Part returns the content of the part with the given key.
func (ctx *Context) Part(key PartKey) (string, bool) {
	if ctx.parts == nil {
		return "", false
	}
	v, ok := ctx.parts.Get(key)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Attr returns the content of a named attribute.
func (ctx *Context) Attr(name string) (string, bool) {
	return ctx.Part(AttributeKey(name))
}

// DefaultAttr returns the content of the unnamed attribute part.
func (ctx *Context) DefaultAttr() (string, bool) {
	return ctx.Part(DefaultAttribute)
}

// Body returns the content of a named body part.
func (ctx *Context) Body(name string) (string, bool) {
	return ctx.Part(BodyKey(name))
}

// DefaultBody returns the content of the unnamed body part.
func (ctx *Context) DefaultBody() (string, bool) {
	return ctx.Part(DefaultBody)
}

// Keys lists the part keys in declaration order.
func (ctx *Context) Keys() []PartKey {
	if ctx.parts == nil {
		return nil
	}
	keys := make([]PartKey, 0, ctx.parts.Size())
	for _, k := range ctx.parts.Keys() {
		keys = append(keys, k.(PartKey))
	}
	return keys
}

// Cursor returns the cursor into the assembled document tree. It is only
// available to context-requiring directives, during deferred resolution.
func (ctx *Context) Cursor() (tree.Cursor, bool) {
	if ctx.cursor == nil {
		return tree.Cursor{}, false
	}
	return *ctx.cursor, true
}

// --- Directive and registry ------------------------------------------------

// Directive is a registered implementation of a named markup construct. It
// resolves a validated directive instance to a tree element. Implementations
// answering true from RequiresContext are resolved in a deferred phase, when
// a cursor into the fully assembled document tree is available.
type Directive interface {
	Resolve(ctx *Context) (tree.Element, error)
	RequiresContext() bool
}

// Func adapts an ordinary function to the Directive interface, without
// requiring a cursor.
type Func func(ctx *Context) (tree.Element, error)

// Resolve is part of interface Directive.
func (f Func) Resolve(ctx *Context) (tree.Element, error) {
	return f(ctx)
}

// RequiresContext is part of interface Directive.
func (f Func) RequiresContext() bool {
	return false
}

// ContextFunc adapts a function to the Directive interface, flagging it as
// context-requiring: resolution is deferred until the document tree exists.
type ContextFunc func(ctx *Context) (tree.Element, error)

// Resolve is part of interface Directive.
func (f ContextFunc) Resolve(ctx *Context) (tree.Element, error) {
	return f(ctx)
}

// RequiresContext is part of interface Directive.
func (f ContextFunc) RequiresContext() bool {
	return true
}

// Registry is an immutable mapping from directive name to implementation,
// for one kind of directive (e.g. "span" or "block"). Clients supply one
// registry per kind.
type Registry struct {
	kind  string
	index *trie.Trie
}

// NewRegistry builds a registry for the given directive kind. The kind
// label appears in user-facing messages. The registry is built once and
// never mutated afterwards.
func NewRegistry(kind string, directives map[string]Directive) *Registry {
	index := trie.New()
	for name, d := range directives {
		index.Add(name, d)
	}
	return &Registry{kind: kind, index: index}
}

// Kind returns the registry's directive-kind label.
func (reg *Registry) Kind() string {
	return reg.kind
}

// Lookup finds the directive registered under name. On a miss, close
// matches among the registered names are traced to help with typos.
func (reg *Registry) Lookup(name string) (Directive, bool) {
	node, ok := reg.index.Find(name)
	if !ok {
		if sugg := reg.index.FuzzySearch(name); len(sugg) > 0 {
			tracer().Infof("no %s directive '%s', close matches: %s", reg.kind, name,
				strings.Join(sugg, ", "))
		}
		return nil, false
	}
	return node.Meta().(Directive), true
}

// Names lists all registered directive names, sorted.
func (reg *Registry) Names() []string {
	names := reg.index.Keys()
	sort.Strings(names)
	return names
}
