package inline

import (
	"reflect"
	"strings"
	"testing"

	"github.com/npillmayer/malt/parse"
	"github.com/npillmayer/malt/tree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// refParser parses `b}` after the trigger '{' and yields a nested element
// wrapping the reference target.
func refParser() parse.Parser[tree.Element] {
	return func(st parse.State) (tree.Element, parse.State, *parse.Failure) {
		target, next, fail := Text(AtDelimiter("}"), nil)(st)
		if fail != nil {
			return nil, st, fail
		}
		return tree.Container{Children: []tree.Element{tree.Text{Content: target}}}, next, nil
	}
}

func refTriggers() map[rune]parse.Parser[tree.Element] {
	return map[rune]parse.Parser[tree.Element]{'{': refParser()}
}

func TestDispatchNestedSpan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.inline")
	defer teardown()
	//
	spans, st, fail := Spans(AtEOF(), refTriggers)(parse.StateOf("a{b}c"))
	if fail != nil {
		t.Fatal(fail.Error())
	}
	if !st.AtEnd() {
		t.Errorf("expected all input to be consumed, rest is %q", st.Rest())
	}
	want := []tree.Element{
		tree.Text{Content: "a"},
		tree.Container{Children: []tree.Element{tree.Text{Content: "b"}}},
		tree.Text{Content: "c"},
	}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("expected %v, got %v", want, spans)
	}
}

func TestDispatchFailedTriggerDegradesToLiteral(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.inline")
	defer teardown()
	//
	// the '{'-triggered sub-parser fails on unterminated input; the brace
	// must merge with the surrounding text
	spans, _, fail := Spans(AtEOF(), refTriggers)(parse.StateOf("a{bc"))
	if fail != nil {
		t.Fatal(fail.Error())
	}
	want := []tree.Element{tree.Text{Content: "a{bc"}}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("expected %v, got %v", want, spans)
	}
}

func TestDispatchEndDelimiterConsumed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.inline")
	defer teardown()
	//
	spans, st, fail := Spans(AtDelimiter("*"), refTriggers)(parse.StateOf("ab*rest"))
	if fail != nil {
		t.Fatal(fail.Error())
	}
	if st.Rest() != "rest" {
		t.Errorf("expected position after the delimiter, rest is %q", st.Rest())
	}
	if len(spans) != 1 {
		t.Errorf("expected a single text span, got %v", spans)
	}
}

func TestDispatchUnterminatedPropagates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.inline")
	defer teardown()
	//
	_, _, fail := Spans(AtDelimiter("*"), refTriggers)(parse.StateOf("never ends"))
	if fail == nil {
		t.Fatal("expected scanner failure to propagate")
	}
}

// TestContentPreservation checks that concatenating all literal fragments,
// with each nested construct's original source text substituted back at its
// position, reconstructs the consumed input exactly.
func TestContentPreservation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.inline")
	defer teardown()
	//
	// the '{'-trigger re-emits its construct's source text verbatim
	verbatim := func() map[rune]parse.Parser[string] {
		return map[rune]parse.Parser[string]{
			'{': parse.Map(Text(AtDelimiter("}"), nil), func(inner string) string {
				return "{" + inner + "}"
			}),
		}
	}
	inputs := []string{
		"plain text without any construct",
		"x{ab}y{cd}z",
		"{at start}and{at end}",
		"failed trigger { remains literal",
		"",
	}
	for i, input := range inputs {
		got, st, fail := Text(AtEOF(), verbatim)(parse.StateOf(input))
		if fail != nil {
			t.Errorf("(%d) %s", i, fail.Error())
			continue
		}
		if !st.AtEnd() {
			t.Errorf("(%d) input not fully consumed, rest %q", i, st.Rest())
		}
		if got != input {
			t.Errorf("(%d) reconstruction mismatch:\n  input  %q\n  output %q", i, input, got)
		}
	}
}

func TestTextBuilderWithEscapes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.inline")
	defer teardown()
	//
	escapes := func() map[rune]parse.Parser[string] {
		return map[rune]parse.Parser[string]{
			'\\': parse.Map(parse.AnyRune(), func(r rune) string { return string(r) }),
		}
	}
	got, _, fail := Text(AtDelimiter(`"`), escapes)(parse.StateOf(`My \"quoted\" doc"rest`))
	if fail != nil {
		t.Fatal(fail.Error())
	}
	if got != `My "quoted" doc` {
		t.Errorf("expected escapes to be unescaped, got %q", got)
	}
}

// TestNoAdjacentText feeds inputs with many degraded triggers through the
// span builder and checks the output invariant: never two consecutive
// plain-text elements.
func TestNoAdjacentText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.inline")
	defer teardown()
	//
	inputs := []string{
		"a{b}c",
		"a{bc",
		"{{}",
		"a{}{b}{c",
		"{x}{y}",
	}
	for i, input := range inputs {
		spans, _, fail := Spans(AtEOF(), refTriggers)(parse.StateOf(input))
		if fail != nil {
			t.Errorf("(%d) %s", i, fail.Error())
			continue
		}
		for j := 1; j < len(spans); j++ {
			_, prevText := spans[j-1].(tree.Text)
			_, curText := spans[j].(tree.Text)
			if prevText && curText {
				t.Errorf("(%d) adjacent text spans in %v", i, spans)
			}
		}
	}
}

func TestDispatchNestedMapBuiltOncePerCall(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.inline")
	defer teardown()
	//
	calls := 0
	nested := func() map[rune]parse.Parser[tree.Element] {
		calls++
		return refTriggers()
	}
	input := strings.Repeat("a{b}", 10)
	if _, _, fail := Spans(AtEOF(), nested)(parse.StateOf(input)); fail != nil {
		t.Fatal(fail.Error())
	}
	if calls != 1 {
		t.Errorf("nested map should be built once per invocation, was built %d times", calls)
	}
}
