package tree

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

import "fmt"

// Element is a node of a document tree.
type Element interface {
	element()
}

// Text is a run of plain text.
type Text struct {
	Content string
}

func (Text) element() {}

func (t Text) String() string {
	return fmt.Sprintf("Text(%q)", t.Content)
}

// Invalid marks content which could not be processed. It carries an error
// message and the literal source text which may serve as a fallback
// rendition.
type Invalid struct {
	Message  string
	Fallback string
}

func (Invalid) element() {}

func (inv Invalid) String() string {
	return fmt.Sprintf("Invalid(%q)", inv.Message)
}

// Placeholder stands in for an element which can only be computed once the
// complete document tree has been assembled. The rewrite driver replaces a
// placeholder by the result of its resolver, which it invokes exactly once.
type Placeholder struct {
	Resolve func(Cursor) Element
}

func (Placeholder) element() {}

// Container is an element holding a sequence of child elements.
type Container struct {
	Children []Element
}

func (Container) element() {}

// Retract is an instruction to a result builder, not a proper tree node: it
// undoes the trailing Drop characters of just-emitted literal text and
// substitutes Replacement. If the preceding element is not plain text, or is
// shorter than Drop characters, Fallback is substituted instead and the
// preceding element stays untouched.
type Retract struct {
	Drop        int
	Replacement Element
	Fallback    Element
}

func (Retract) element() {}

// Document is the root of an assembled document tree.
type Document struct {
	Name    string
	Content []Element
}

// Cursor is a handle into a fully assembled document tree. It is passed,
// unmodified, into the resolvers of context-requiring directives. Set holds
// all documents of the current transformation, keyed by document name.
type Cursor struct {
	Doc *Document
	Set map[string]*Document
}

// Lookup returns the document registered under name, or nil.
func (c Cursor) Lookup(name string) *Document {
	if c.Set == nil {
		return nil
	}
	return c.Set[name]
}
