package main

import (
	"strings"
	"testing"

	"github.com/lukehoban/browser/css"
)

func TestEvaluateFixturePass(t *testing.T) {
	text := `
#data
p { color: red; }
#main { font-weight: bold; }
#tree
div
  p#main.note
#expected
#main color: red
#main font-weight: bold
`
	result, err := evaluateFixture(text, nil, css.OriginAuthor)
	if err != nil {
		t.Fatalf("evaluateFixture: %v", err)
	}
	if !result.pass {
		t.Errorf("expected pass, got failures: %v", result.messages)
	}
}

func TestEvaluateFixtureFailsOnMismatch(t *testing.T) {
	text := `
#data
p { color: red; }
#tree
p#main
#expected
#main color: blue
`
	result, err := evaluateFixture(text, nil, css.OriginAuthor)
	if err != nil {
		t.Fatalf("evaluateFixture: %v", err)
	}
	if result.pass {
		t.Errorf("expected failure for mismatched color, got pass")
	}
	if len(result.messages) != 1 || !strings.Contains(result.messages[0], "color") {
		t.Errorf("messages = %v, want one color mismatch message", result.messages)
	}
}

func TestEvaluateFixtureInheritance(t *testing.T) {
	text := `
#data
div { color: green; }
#tree
div
  span#inner
#expected
#inner color: green
`
	result, err := evaluateFixture(text, nil, css.OriginAuthor)
	if err != nil {
		t.Fatalf("evaluateFixture: %v", err)
	}
	if !result.pass {
		t.Errorf("expected inherited color to pass, got: %v", result.messages)
	}
}

func TestEvaluateFixtureAliasResolution(t *testing.T) {
	text := `
#data
p#main { background-color: red; }
#tree
p#main
#expected
#main bgcolor: red
`
	aliases := map[string]string{"bgcolor": "background-color"}
	result, err := evaluateFixture(text, aliases, css.OriginAuthor)
	if err != nil {
		t.Fatalf("evaluateFixture: %v", err)
	}
	if !result.pass {
		t.Errorf("expected alias-resolved property to pass, got: %v", result.messages)
	}
}

func TestEvaluateFixtureExpectedErrors(t *testing.T) {
	// A UTF-32BE byte-order mark names an encoding the engine does not
	// decode, which is the BadCharset case.
	text := "#data\n\x00\x00\xFE\xFF@charset \"utf-8\";\n#errors\nbad charset\n"
	result, err := evaluateFixture(text, nil, css.OriginAuthor)
	if err != nil {
		t.Fatalf("evaluateFixture: %v", err)
	}
	if !result.pass {
		t.Errorf("expected BadCharset fixture to pass, got: %v", result.messages)
	}
}
