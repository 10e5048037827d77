package style

import (
	"testing"

	"github.com/lukehoban/browser/css"
	"github.com/lukehoban/browser/intern"
)

// fakeNode and fakeHost are a minimal Host implementation over an in-memory
// tree, standing in for the real dom.Node adapter (a separate concern) so
// this package's own cascade logic can be tested without that dependency.
type fakeNode struct {
	name     string
	id       string
	classes  []string
	attrs    map[string]string
	parent   *fakeNode
	children []*fakeNode
}

func elem(name string, children ...*fakeNode) *fakeNode {
	n := &fakeNode{name: name, attrs: map[string]string{}}
	for _, c := range children {
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

type fakeHost struct{}

func asNode(n Node) *fakeNode {
	if n == nil {
		return nil
	}
	return n.(*fakeNode)
}

func (fakeHost) Name(n Node) string { return asNode(n).name }
func (fakeHost) Parent(n Node) Node {
	p := asNode(n).parent
	if p == nil {
		return nil
	}
	return p
}
func (fakeHost) PreviousSibling(n Node) Node {
	fn := asNode(n)
	if fn.parent == nil {
		return nil
	}
	sibs := fn.parent.children
	for i, s := range sibs {
		if s == fn {
			if i == 0 {
				return nil
			}
			return sibs[i-1]
		}
	}
	return nil
}
func (h fakeHost) NamedAncestor(n Node, name string) Node {
	for p := h.Parent(n); p != nil; p = h.Parent(p) {
		if h.Name(p) == name {
			return p
		}
	}
	return nil
}
func (h fakeHost) NamedParent(n Node, name string) Node {
	p := h.Parent(n)
	if p != nil && h.Name(p) == name {
		return p
	}
	return nil
}
func (h fakeHost) NamedPreviousSibling(n Node, name string) Node {
	p := h.PreviousSibling(n)
	if p != nil && h.Name(p) == name {
		return p
	}
	return nil
}
func (fakeHost) HasClass(n Node, name string) bool {
	for _, c := range asNode(n).classes {
		if c == name {
			return true
		}
	}
	return false
}
func (fakeHost) HasID(n Node, name string) bool { return asNode(n).id == name }
func (fakeHost) HasAttribute(n Node, name string) bool {
	_, ok := asNode(n).attrs[name]
	return ok
}
func (fakeHost) HasAttributeEqual(n Node, name, value string) bool {
	return asNode(n).attrs[name] == value
}
func (fakeHost) HasAttributeDashmatch(n Node, name, value string) bool {
	v, ok := asNode(n).attrs[name]
	return ok && (v == value || (len(v) > len(value) && v[:len(value)+1] == value+"-"))
}
func (fakeHost) HasAttributeIncludes(n Node, name, value string) bool {
	v, ok := asNode(n).attrs[name]
	if !ok {
		return false
	}
	word := ""
	for i := 0; i <= len(v); i++ {
		if i == len(v) || v[i] == ' ' {
			if word == value {
				return true
			}
			word = ""
		} else {
			word += string(v[i])
		}
	}
	return false
}
func (fakeHost) IsFirstChild(n Node) bool {
	fn := asNode(n)
	return fn.parent != nil && len(fn.parent.children) > 0 && fn.parent.children[0] == fn
}

func parseTestSheet(t *testing.T, origin css.Origin, src string) *css.Sheet {
	t.Helper()
	sheet := css.CreateSheet("utf-8", "", "", origin, css.MediaAll, false, false, intern.New())
	if err := sheet.AppendData([]byte(src)); err != css.Ok && err != css.NeedData {
		t.Fatalf("AppendData: %v", err)
	}
	if err := sheet.DataDone(); err != css.Ok {
		t.Fatalf("DataDone: %v", err)
	}
	return sheet
}

func TestComputeAppliesMatchingDeclaration(t *testing.T) {
	sheet := parseTestSheet(t, css.OriginAuthor, `p { color: red; }`)
	p := elem("p")

	cs := Compute(fakeHost{}, p, []SheetRef{{Sheet: sheet}}, css.MediaScreen, nil, nil)

	got := cs.Get(css.OpColor).Colour
	if got != css.RGBA(0xff, 0, 0, 0xff) {
		t.Errorf("color = %#x, want red", uint32(got))
	}
}

func TestComputeSpecificityBreaksTies(t *testing.T) {
	sheet := parseTestSheet(t, css.OriginAuthor, `
		p { color: blue; }
		#main { color: green; }
	`)
	p := elem("p")
	p.id = "main"

	cs := Compute(fakeHost{}, p, []SheetRef{{Sheet: sheet}}, css.MediaScreen, nil, nil)
	if got := cs.Get(css.OpColor).Colour; got != css.RGBA(0, 0x80, 0, 0xff) {
		t.Errorf("color = %#x, want green (ID beats element)", uint32(got))
	}
}

func TestComputeImportantBeatsAuthorOrigin(t *testing.T) {
	ua := parseTestSheet(t, css.OriginUA, `p { color: black; }`)
	author := parseTestSheet(t, css.OriginAuthor, `p { color: blue !important; }`)
	user := parseTestSheet(t, css.OriginUser, `#main { color: green !important; }`)
	p := elem("p")
	p.id = "main"

	cs := Compute(fakeHost{}, p, []SheetRef{{Sheet: ua}, {Sheet: author}, {Sheet: user}}, css.MediaScreen, nil, nil)
	// important user-origin beats important author-origin regardless of
	// specificity, per CSS 2.1 Table 6.1.
	if got := cs.Get(css.OpColor).Colour; got != css.RGBA(0, 0x80, 0, 0xff) {
		t.Errorf("color = %#x, want green (important user beats important author)", uint32(got))
	}
}

func TestComputeInheritanceFlowsToChildren(t *testing.T) {
	sheet := parseTestSheet(t, css.OriginAuthor, `div { color: red; }`)
	span := elem("span")
	div := elem("div", span)
	_ = div

	divStyle := Compute(fakeHost{}, div, []SheetRef{{Sheet: sheet}}, css.MediaScreen, nil, nil)
	spanStyle := Compute(fakeHost{}, span, []SheetRef{{Sheet: sheet}}, css.MediaScreen, divStyle, nil)

	if got := spanStyle.Get(css.OpColor).Colour; got != css.RGBA(0xff, 0, 0, 0xff) {
		t.Errorf("span inherited color = %#x, want red", uint32(got))
	}
}

func TestComputeNonInheritedPropertyResetsToInitial(t *testing.T) {
	sheet := parseTestSheet(t, css.OriginAuthor, `div { display: none; }`)
	span := elem("span")
	div := elem("div", span)

	divStyle := Compute(fakeHost{}, div, []SheetRef{{Sheet: sheet}}, css.MediaScreen, nil, nil)
	spanStyle := Compute(fakeHost{}, span, []SheetRef{{Sheet: sheet}}, css.MediaScreen, divStyle, nil)

	if got := spanStyle.Get(css.OpDisplay).Keyword; got != 1 {
		t.Errorf("span display keyword = %d, want 1 (inline, the initial value)", got)
	}
}

func TestComputeMediaMaskExcludesNonMatchingSheet(t *testing.T) {
	sheet := parseTestSheet(t, css.OriginAuthor, `@media print { p { color: red; } }`)
	p := elem("p")

	cs := Compute(fakeHost{}, p, []SheetRef{{Sheet: sheet}}, css.MediaScreen, nil, nil)
	if got := cs.Get(css.OpColor).Colour; got == css.RGBA(0xff, 0, 0, 0xff) {
		t.Errorf("a print-only rule must not apply when computing for screen media")
	}
}

func TestComputeDescendantAndChildCombinators(t *testing.T) {
	sheet := parseTestSheet(t, css.OriginAuthor, `
		div p { color: red; }
		section > p { color: blue; }
	`)
	p1 := elem("p")
	div := elem("div", p1)
	_ = div
	p2 := elem("p")
	span := elem("span", p2)
	section := elem("section", span)
	_ = section

	cs1 := Compute(fakeHost{}, p1, []SheetRef{{Sheet: sheet}}, css.MediaScreen, nil, nil)
	if got := cs1.Get(css.OpColor).Colour; got != css.RGBA(0xff, 0, 0, 0xff) {
		t.Errorf("descendant selector should match p1, got %#x", uint32(got))
	}

	cs2 := Compute(fakeHost{}, p2, []SheetRef{{Sheet: sheet}}, css.MediaScreen, nil, nil)
	if got := cs2.Get(css.OpColor).Colour; got == css.RGBA(0, 0, 0xff, 0xff) {
		t.Errorf("child combinator must not match a grandchild, got %#x", uint32(got))
	}
}

func TestComputePseudoClassHover(t *testing.T) {
	sheet := parseTestSheet(t, css.OriginAuthor, `a:hover { color: red; }`)
	a := elem("a")

	notHovered := Compute(fakeHost{}, a, []SheetRef{{Sheet: sheet}}, css.MediaScreen, nil, nil)
	if got := notHovered.Get(css.OpColor).Colour; got == css.RGBA(0xff, 0, 0, 0xff) {
		t.Errorf(":hover matched with no active pseudo-classes supplied")
	}

	hovered := Compute(fakeHost{}, a, []SheetRef{{Sheet: sheet}}, css.MediaScreen, nil, map[string]bool{"hover": true})
	if got := hovered.Get(css.OpColor).Colour; got != css.RGBA(0xff, 0, 0, 0xff) {
		t.Errorf(":hover did not match with hover active, color = %#x", uint32(got))
	}
}
