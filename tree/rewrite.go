package tree

import "sort"

// Rewrite applies f to every element of the document, bottom-up: the
// children of a container are rewritten before the container itself is
// handed to f. Elements returned by f are spliced in without being
// revisited.
func (d *Document) Rewrite(f func(Element) Element) {
	d.Content = rewriteAll(d.Content, f)
}

func rewriteAll(elems []Element, f func(Element) Element) []Element {
	result := make([]Element, 0, len(elems))
	for _, e := range elems {
		if c, ok := e.(Container); ok {
			c.Children = rewriteAll(c.Children, f)
			e = c
		}
		result = append(result, f(e))
	}
	return result
}

// ResolvePlaceholders replaces every placeholder of a document by the result
// of its resolver, invoking each resolver exactly once with the given
// cursor. A failing resolver degrades to a local Invalid node; it never
// aborts the rewrite.
//
// Resolvers must produce final content: a resolver returning another
// placeholder (or a chain of placeholders) is unsupported and is rejected
// with an Invalid node.
func ResolvePlaceholders(d *Document, cur Cursor) {
	d.Rewrite(func(e Element) Element {
		p, ok := e.(Placeholder)
		if !ok {
			return e
		}
		if p.Resolve == nil {
			tracer().Errorf("placeholder without resolver")
			return Invalid{Message: "placeholder without resolver"}
		}
		tracer().Debugf("resolving placeholder in document '%s'", d.Name)
		r := p.Resolve(cur)
		if r == nil {
			return Invalid{Message: "placeholder resolved to nothing"}
		}
		// resolvers must produce final content; this covers placeholders
		// nested inside the result as well
		return rewriteAll([]Element{r}, rejectPlaceholder)[0]
	})
}

func rejectPlaceholder(e Element) Element {
	if _, again := e.(Placeholder); !again {
		return e
	}
	tracer().Errorf("placeholder resolved to another placeholder")
	return Invalid{Message: "placeholder resolved to another placeholder"}
}

// ResolveSet runs the placeholder-resolution phase over a fully assembled
// set of documents. Documents are processed in deterministic (name) order;
// every resolver sees the complete set through its cursor.
func ResolveSet(docs map[string]*Document) {
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ResolvePlaceholders(docs[name], Cursor{Doc: docs[name], Set: docs})
	}
}
