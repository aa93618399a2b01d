package inline

import (
	"github.com/npillmayer/cords"
	"github.com/npillmayer/malt/tree"
)

// --- Span-list builder -----------------------------------------------------

// SpanBuilder accumulates tree elements into a span sequence. It keeps a
// single pending element apart from the flushed output: adjacent plain-text
// elements merge into the pending slot, and a tree.Retract instruction may
// undo trailing characters of pending text. The output sequence never
// contains two adjacent plain-text elements.
type SpanBuilder struct {
	pending tree.Element // not yet committed to spans, nil if none
	spans   []tree.Element
}

// NewSpanBuilder creates an empty SpanBuilder. Builders are single-use and
// must not be shared between parser invocations.
func NewSpanBuilder() *SpanBuilder {
	return &SpanBuilder{}
}

// FromString lifts literal text into a tree.Text element.
func (b *SpanBuilder) FromString(s string) tree.Element {
	return tree.Text{Content: s}
}

// Append adds an element. Plain text merges with pending plain text;
// tree.Retract is executed rather than stored.
func (b *SpanBuilder) Append(e tree.Element) {
	if r, ok := e.(tree.Retract); ok {
		b.retract(r)
		return
	}
	if t, ok := e.(tree.Text); ok {
		if p, isText := b.pending.(tree.Text); isText {
			b.pending = tree.Text{Content: p.Content + t.Content}
			return
		}
	}
	b.flush()
	b.pending = e
}

// retract undoes the trailing r.Drop bytes of pending literal text and
// makes r.Replacement the new pending element. If pending is not plain text
// or is too short, it is flushed untouched and r.Fallback becomes pending.
func (b *SpanBuilder) retract(r tree.Retract) {
	if p, isText := b.pending.(tree.Text); isText && len(p.Content) >= r.Drop {
		if keep := p.Content[:len(p.Content)-r.Drop]; keep != "" {
			b.commit(tree.Text{Content: keep})
		}
		b.pending = r.Replacement
		return
	}
	b.flush()
	b.pending = r.Fallback
}

func (b *SpanBuilder) flush() {
	if b.pending != nil {
		b.commit(b.pending)
		b.pending = nil
	}
}

// commit moves an element into the output sequence, merging with a trailing
// text element to uphold the no-adjacent-text invariant.
func (b *SpanBuilder) commit(e tree.Element) {
	if t, ok := e.(tree.Text); ok && len(b.spans) > 0 {
		if last, isText := b.spans[len(b.spans)-1].(tree.Text); isText {
			b.spans[len(b.spans)-1] = tree.Text{Content: last.Content + t.Content}
			return
		}
	}
	b.spans = append(b.spans, e)
}

// Result flushes the pending element and returns the span sequence.
func (b *SpanBuilder) Result() []tree.Element {
	b.flush()
	return b.spans
}

// --- Text builder ----------------------------------------------------------

// TextBuilder flattens all results into a single string. Every appended
// string goes into a text cord; retraction semantics do not apply at the
// string level. Use it for grammars whose nested constructs produce text,
// e.g. escape sequences inside attribute values.
type TextBuilder struct {
	cb *cords.Builder
}

// NewTextBuilder creates an empty TextBuilder.
func NewTextBuilder() *TextBuilder {
	return &TextBuilder{cb: cords.NewBuilder()}
}

// FromString is the identity on strings.
func (b *TextBuilder) FromString(s string) string {
	return s
}

// Append adds s to the text.
func (b *TextBuilder) Append(s string) {
	if s == "" {
		return
	}
	b.cb.Append(textLeaf(s))
}

// Result returns the accumulated text.
func (b *TextBuilder) Result() string {
	return b.cb.Cord().String()
}

// textLeaf is the cord leaf type for accumulated literal text.
// Not intended for client usage.
type textLeaf string

// Weight is part of interface cords.Leaf.
func (l textLeaf) Weight() uint64 {
	return uint64(len(l))
}

// String is part of interface cords.Leaf.
func (l textLeaf) String() string {
	return string(l)
}

// Split is part of interface cords.Leaf.
func (l textLeaf) Split(i uint64) (cords.Leaf, cords.Leaf) {
	return l[:i], l[i:]
}

// Substring is part of interface cords.Leaf.
func (l textLeaf) Substring(i, j uint64) []byte {
	return []byte(l[i:j])
}

var _ cords.Leaf = textLeaf("")
