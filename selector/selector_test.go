package selector

import (
	"testing"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/malt/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestParseSimpleRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.selector")
	defer teardown()
	//
	rule, err := ParseRule("p.note > em { color: red }")
	assert.NoError(t, err)
	assert.Equal(t, css.QualifiedRule, rule.Kind)
	assert.Equal(t, "p.note > em", rule.Prelude)
	assert.Equal(t, []string{"p.note > em"}, rule.Selectors)
	assert.Equal(t, []*css.Declaration{
		{Property: "color", Value: "red"},
	}, rule.Declarations)
}

func TestParseDeclarationList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.selector")
	defer teardown()
	//
	rule, err := ParseRule("#toc { margin: 0; padding: 1em 2em !important }")
	assert.NoError(t, err)
	assert.Equal(t, []*css.Declaration{
		{Property: "margin", Value: "0"},
		{Property: "padding", Value: "1em 2em", Important: true},
	}, rule.Declarations)
}

func TestParseQuotedValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.selector")
	defer teardown()
	//
	// ';' and '}' inside a quoted string must not terminate the declaration
	rule, err := ParseRule(`p { content: "a;b}c"; color: red }`)
	assert.NoError(t, err)
	assert.Equal(t, []*css.Declaration{
		{Property: "content", Value: `"a;b}c"`},
		{Property: "color", Value: "red"},
	}, rule.Declarations)
}

func TestParseEscapedQuoteInValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.selector")
	defer teardown()
	//
	rule, err := ParseRule(`p { content: "say \"hi\"" }`)
	assert.NoError(t, err)
	assert.Equal(t, `"say \"hi\""`, rule.Declarations[0].Value)
}

func TestParseSelectorGroup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.selector")
	defer teardown()
	//
	rule, err := ParseRule("h1, h2.chapter, * > #intro { margin: 0 }")
	assert.NoError(t, err)
	assert.Equal(t, []string{"h1", "h2.chapter", "* > #intro"}, rule.Selectors)
}

func TestParseCombinatorNormalization(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.selector")
	defer teardown()
	//
	// child combinators without surrounding whitespace get canonical spacing
	rule, err := ParseRule("div>p.x { margin: 0 }")
	assert.NoError(t, err)
	assert.Equal(t, []string{"div > p.x"}, rule.Selectors)
}

func TestParseEmptyDeclarationBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.selector")
	defer teardown()
	//
	rule, err := ParseRule("p { }")
	assert.NoError(t, err)
	assert.Empty(t, rule.Declarations)
}

func TestParseRuleSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.selector")
	defer teardown()
	//
	rules, err := ParseRules(`
		p.note > em { color: red }
		#toc       { margin: 0 }
	`)
	assert.NoError(t, err)
	assert.Len(t, rules, 2)
	assert.Equal(t, []string{"p.note > em"}, rules[0].Selectors)
	assert.Equal(t, []string{"#toc"}, rules[1].Selectors)
}

func TestParseMalformedInputIsHardError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "malt.selector")
	defer teardown()
	//
	inputs := []string{
		"p { color }",           // missing ':'
		"p { color: }",          // missing value
		"p { color: red",        // unterminated block
		"{ margin: 0 }",         // empty selector
		"p > { margin: 0 }",     // trailing combinator
		"p..x { margin: 0 }",    // empty class name
		"3d { margin: 0 }",      // identifier starts with a digit
		"p[role] { margin: 0 }", // unsupported syntax
	}
	for _, input := range inputs {
		_, err := ParseRule(input)
		if assert.Error(t, err, "input %q", input) {
			assert.Equal(t, core.ESYNTAX, core.Code(err), "input %q", input)
		}
	}
}
