package css

import (
	"testing"

	"github.com/lukehoban/browser/intern"
)

func parseOneSelector(t *testing.T, dict *intern.Dict, src string) *Selector {
	t.Helper()
	v := Tokenize(src, dict)
	sels, err := ParseSelectorList(v, dict)
	if err != Ok {
		t.Fatalf("ParseSelectorList(%q) = %v, want Ok", src, err)
	}
	if len(sels) != 1 {
		t.Fatalf("ParseSelectorList(%q) returned %d selectors, want 1", src, len(sels))
	}
	return sels[0]
}

func TestSelectorSpecificity(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"element", "p", 1},
		{"universal", "*", 0},
		{"class", ".warning", 100},
		{"id", "#main", 10000},
		{"element and class", "p.warning", 101},
		{"attribute counts as class", "a[href]", 101},
		{"pseudo-class counts as class", "a:hover", 101},
		{"pseudo-element counts as element", "p::first-line", 2},
		{"descendant chain sums", "#main p.warning", 10101},
		{"child combinator sums", "div > p", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dict := intern.New()
			sel := parseOneSelector(t, dict, tt.src)
			if sel.Specificity != tt.want {
				t.Errorf("Specificity(%q) = %d, want %d", tt.src, sel.Specificity, tt.want)
			}
		})
	}
}

func TestSelectorCombinatorChain(t *testing.T) {
	dict := intern.New()
	sel := parseOneSelector(t, dict, "ul.nav > li + li a")

	// Rightmost compound first.
	if len(sel.Details) != 1 || sel.Details[0].Kind != DetailElement || sel.Details[0].Name.String() != "a" {
		t.Fatalf("rightmost compound = %+v, want a bare <a>", sel.Details)
	}
	if sel.Combinator != CombinatorDescendant {
		t.Errorf("combinator into <a> = %v, want CombinatorDescendant", sel.Combinator)
	}

	li2 := sel.Ancestor
	if li2 == nil || li2.Combinator != CombinatorAdjacentSibling {
		t.Fatalf("expected an adjacent-sibling link before <a>, got %+v", li2)
	}

	li1 := li2.Ancestor
	if li1 == nil || li1.Combinator != CombinatorChild {
		t.Fatalf("expected a child combinator before the second <li>, got %+v", li1)
	}

	root := li1.Ancestor
	if root == nil || root.Ancestor != nil {
		t.Fatalf("expected ul.nav to be the chain root, got %+v", root)
	}
	if len(root.Details) != 2 || root.Details[0].Kind != DetailElement || root.Details[1].Kind != DetailClass {
		t.Errorf("root compound = %+v, want element+class", root.Details)
	}
}

func TestSelectorListCommaSplit(t *testing.T) {
	dict := intern.New()
	v := Tokenize("h1, h2, h3", dict)
	sels, err := ParseSelectorList(v, dict)
	if err != Ok {
		t.Fatalf("ParseSelectorList = %v, want Ok", err)
	}
	if len(sels) != 3 {
		t.Fatalf("got %d selectors, want 3", len(sels))
	}
	for i, want := range []string{"h1", "h2", "h3"} {
		if sels[i].Details[0].Name.String() != want {
			t.Errorf("selector %d = %q, want %q", i, sels[i].Details[0].Name.String(), want)
		}
	}
}

func TestAttributeSelectorOperators(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantOp  AttrOp
		wantVal string
	}{
		{"presence", "[title]", AttrPresent, ""},
		{"equals", `[lang="en"]`, AttrEqual, "en"},
		{"includes", "[class~=warning]", AttrIncludes, "warning"},
		{"dashmatch", "[lang|=en]", AttrDashmatch, "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dict := intern.New()
			sel := parseOneSelector(t, dict, "a"+tt.src)
			if len(sel.Details) != 2 {
				t.Fatalf("details = %+v, want element + attribute", sel.Details)
			}
			attr := sel.Details[1]
			if attr.Kind != DetailAttribute || attr.Op != tt.wantOp {
				t.Errorf("attribute detail = %+v, want op %v", attr, tt.wantOp)
			}
			if tt.wantVal != "" && (attr.Value == nil || attr.Value.String() != tt.wantVal) {
				t.Errorf("attribute value = %v, want %q", attr.Value, tt.wantVal)
			}
		})
	}
}

func TestParseSelectorListRejectsEmpty(t *testing.T) {
	dict := intern.New()
	v := Tokenize("", dict)
	if _, err := ParseSelectorList(v, dict); err != Invalid {
		t.Errorf("ParseSelectorList(\"\") = %v, want Invalid", err)
	}
}
