package directive

import (
	"errors"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/malt/tree"
)

// InvalidFactory creates the tree node marking a failed directive. The
// message collects all processing errors; the concrete element variant
// (span-level, block-level, …) is owned by the caller's tree model, as is
// the literal fallback text.
type InvalidFactory func(message string) tree.Element

// PlaceholderFactory creates the tree node standing in for a deferred
// directive result. The rewrite driver invokes resolve exactly once, with a
// cursor into the fully assembled document tree.
type PlaceholderFactory func(resolve func(tree.Cursor) tree.Element) tree.Element

// Apply resolves a parsed directive against a registry.
//
// An unknown directive name and duplicate part keys are validation errors;
// they degrade into an invalid node via the invalid factory and never
// abort the surrounding parse. Duplicate keys are reported completely: one
// message per distinct duplicated key, in first-seen order.
//
// If the registered directive requires a cursor, Apply structurally
// succeeds and returns a placeholder wrapping the deferred resolution; all
// content errors then surface at resolution time, as invalid nodes.
// Otherwise the directive is resolved immediately.
func Apply(reg *Registry, parsed ParsedDirective, invalid InvalidFactory,
	placeholder PlaceholderFactory) tree.Element {
	//
	d, ok := reg.Lookup(parsed.Name)
	if !ok {
		return invalid("No " + reg.kind + " directive registered with name: " + parsed.Name)
	}
	parts, dupes := groupParts(parsed.Parts)
	if len(dupes) > 0 {
		msgs := make(Messages, len(dupes))
		for i, key := range dupes {
			msgs[i] = "Duplicate " + key.Description()
		}
		return collapse(parsed.Name, invalid, nil, msgs)
	}
	if d.RequiresContext() {
		tracer().Debugf("deferring directive '%s' until document tree is assembled", parsed.Name)
		return placeholder(func(cur tree.Cursor) tree.Element {
			ctx := &Context{parts: parts, cursor: &cur}
			el, err := d.Resolve(ctx)
			return collapse(parsed.Name, invalid, el, err)
		})
	}
	el, err := d.Resolve(&Context{parts: parts})
	return collapse(parsed.Name, invalid, el, err)
}

// groupParts builds the part map, keyed uniquely and ordered by first
// occurrence, and collects every key occurring more than once — each
// exactly once, in first-seen order.
func groupParts(parts []Part) (*linkedhashmap.Map, []PartKey) {
	grouped := linkedhashmap.New()
	var dupes []PartKey
	for _, p := range parts {
		if _, exists := grouped.Get(p.Key); exists {
			if !containsKey(dupes, p.Key) {
				dupes = append(dupes, p.Key)
			}
			continue
		}
		grouped.Put(p.Key, p.Content)
	}
	return grouped, dupes
}

func containsKey(keys []PartKey, key PartKey) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// collapse folds a directive result into a tree element: errors, including
// multi-message ones, degrade into an invalid node.
func collapse(name string, invalid InvalidFactory, el tree.Element, err error) tree.Element {
	if err == nil {
		return el
	}
	var msgs Messages
	if !errors.As(err, &msgs) {
		msgs = Messages{err.Error()}
	}
	tracer().Errorf("directive '%s' failed: %s", name, msgs.Error())
	return invalid("One or more errors processing directive '" + name + "': " +
		strings.Join(msgs, ", "))
}
