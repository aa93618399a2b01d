package directive

import (
	"reflect"
	"testing"

	"github.com/npillmayer/malt/parse"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func parseDecl(t *testing.T, atPrefix bool, body parse.Parser[string], input string) ParsedDirective {
	t.Helper()
	d, _, fail := Declaration(atPrefix, body)(parse.StateOf(input))
	if fail != nil {
		t.Fatalf("cannot parse %q: %s", input, fail.Error())
	}
	return d
}

func TestDeclarationDefaultAttribute(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.directive")
	defer teardown()
	//
	d := parseDecl(t, false, BlockBody(), `:title "My Doc"`)
	if d.Name != "title" {
		t.Errorf("expected name 'title', got %q", d.Name)
	}
	want := []Part{{Key: DefaultAttribute, Content: "My Doc"}}
	if !reflect.DeepEqual(d.Parts, want) {
		t.Errorf("expected parts %v, got %v", want, d.Parts)
	}
}

func TestDeclarationAttributeAndBody(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.directive")
	defer teardown()
	//
	d := parseDecl(t, false, BlockBody(), `:callout type=warn: some **body** text.`)
	if d.Name != "callout" {
		t.Errorf("expected name 'callout', got %q", d.Name)
	}
	want := []Part{
		{Key: AttributeKey("type"), Content: "warn"},
		{Key: DefaultBody, Content: "some **body** text."},
	}
	if !reflect.DeepEqual(d.Parts, want) {
		t.Errorf("expected parts %v, got %v", want, d.Parts)
	}
}

func TestDeclarationBlockForm(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.directive")
	defer teardown()
	//
	// '.' declares zero body parts
	d := parseDecl(t, true, BlockBody(), "@:toc depth=2.")
	want := []Part{{Key: AttributeKey("depth"), Content: "2"}}
	if !reflect.DeepEqual(d.Parts, want) {
		t.Errorf("expected parts %v, got %v", want, d.Parts)
	}
	// the '@' prefix is mandatory for the block form
	if _, _, fail := Declaration(true, BlockBody())(parse.StateOf(":toc.")); fail == nil {
		t.Errorf("expected failure without '@' prefix")
	}
}

func TestDeclarationIndentedBody(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.directive")
	defer teardown()
	//
	input := "@:note: first line\n  second line\nnot part of the body"
	d, next, fail := Declaration(true, BlockBody())(parse.StateOf(input))
	if fail != nil {
		t.Fatal(fail.Error())
	}
	want := []Part{{Key: DefaultBody, Content: "first line\n  second line"}}
	if !reflect.DeepEqual(d.Parts, want) {
		t.Errorf("expected parts %v, got %v", want, d.Parts)
	}
	if next.Rest() != "\nnot part of the body" {
		t.Errorf("unexpected rest %q", next.Rest())
	}
}

func TestDeclarationEmptyBodyRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.directive")
	defer teardown()
	//
	_, _, fail := Declaration(true, BlockBody())(parse.StateOf("@:note:   \nnext paragraph"))
	if fail == nil {
		t.Fatal("expected an all-whitespace body to be rejected")
	}
}

func TestDeclarationNamedBodies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.directive")
	defer teardown()
	//
	d := parseDecl(t, false, BracedBody(), ":figure: {main body} ~caption: {the caption}")
	want := []Part{
		{Key: DefaultBody, Content: "main body"},
		{Key: BodyKey("caption"), Content: "the caption"},
	}
	if !reflect.DeepEqual(d.Parts, want) {
		t.Errorf("expected parts %v, got %v", want, d.Parts)
	}
}

func TestDeclarationNamedBodyOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.directive")
	defer teardown()
	//
	// a named-body introducer right after ':' suppresses the default body
	d := parseDecl(t, false, BracedBody(), ":figure: ~caption: {only the caption}")
	want := []Part{{Key: BodyKey("caption"), Content: "only the caption"}}
	if !reflect.DeepEqual(d.Parts, want) {
		t.Errorf("expected parts %v, got %v", want, d.Parts)
	}
}

func TestDeclarationNestedBraces(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.directive")
	defer teardown()
	//
	d := parseDecl(t, false, BracedBody(), ":d: {outer {inner} text}")
	want := []Part{{Key: DefaultBody, Content: "outer {inner} text"}}
	if !reflect.DeepEqual(d.Parts, want) {
		t.Errorf("expected parts %v, got %v", want, d.Parts)
	}
}

func TestDeclarationQuotedEscapes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.directive")
	defer teardown()
	//
	d := parseDecl(t, false, BlockBody(), `:d "a\"b"`)
	want := []Part{{Key: DefaultAttribute, Content: `a"b`}}
	if !reflect.DeepEqual(d.Parts, want) {
		t.Errorf("expected parts %v, got %v", want, d.Parts)
	}
}

func TestDeclarationDuplicateKeysAreLegal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.directive")
	defer teardown()
	//
	// the grammar accepts duplicates; validation happens during Apply
	d := parseDecl(t, false, BlockBody(), ":d val x=1 x=2")
	want := []Part{
		{Key: DefaultAttribute, Content: "val"},
		{Key: AttributeKey("x"), Content: "1"},
		{Key: AttributeKey("x"), Content: "2"},
	}
	if !reflect.DeepEqual(d.Parts, want) {
		t.Errorf("expected parts %v, got %v", want, d.Parts)
	}
}

func TestDeclarationRejectsMalformedIntro(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.directive")
	defer teardown()
	//
	for i, input := range []string{"title", ":", ":1abc", "@title."} {
		if _, _, fail := Declaration(false, BlockBody())(parse.StateOf(input)); fail == nil {
			t.Errorf("(%d) expected %q to be rejected", i, input)
		}
	}
}

func TestDeclarationFailureConsumesNothing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.directive")
	defer teardown()
	//
	// a failing declaration must return the received state, so that a
	// caller's plain-text fallback alternative sees the full input
	inputs := []string{
		"@x not a directive",  // '@' consumed, then ':' missing
		"@:1 bad name",        // '@' and ':' consumed, then name fails
		"@:note:   \nno body", // failure deep in the body part
	}
	for i, input := range inputs {
		_, st, fail := Declaration(true, BlockBody())(parse.StateOf(input))
		if fail == nil {
			t.Errorf("(%d) expected %q to be rejected", i, input)
			continue
		}
		if st.Pos() != 0 {
			t.Errorf("(%d) failure consumed input, position is %d", i, st.Pos())
		}
	}
}

func TestNameGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.directive")
	defer teardown()
	//
	name, st, fail := Name()(parse.StateOf("foo-bar_2 rest"))
	if fail != nil {
		t.Fatal(fail.Error())
	}
	if name != "foo-bar_2" {
		t.Errorf("expected 'foo-bar_2', got %q", name)
	}
	if st.Rest() != " rest" {
		t.Errorf("unexpected rest %q", st.Rest())
	}
	if _, _, fail = Name()(parse.StateOf("-leading")); fail == nil {
		t.Errorf("a name must not start with '-'")
	}
}
