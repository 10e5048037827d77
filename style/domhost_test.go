package style

import (
	"testing"

	"github.com/lukehoban/browser/css"
	"github.com/lukehoban/browser/dom"
	"github.com/lukehoban/browser/intern"
)

func TestDOMHostComputeAgainstRealTree(t *testing.T) {
	doc := dom.NewDocument()
	div := dom.NewElement("div")
	div.SetAttribute("id", "main")
	text := dom.NewText("hello")
	p := dom.NewElement("p")
	p.SetAttribute("class", "note important")
	doc.AppendChild(div)
	div.AppendChild(text)
	div.AppendChild(p)

	sheet := parseDOMTestSheet(t, `
		#main { color: red; }
		p.note { font-style: italic; }
	`)

	pStyle := Compute(DOMHost{}, p, []SheetRef{{Sheet: sheet}}, css.MediaScreen, nil, nil)
	if got := pStyle.Get(css.OpFontStyle).Keyword; got == 0 {
		t.Errorf("expected p.note's font-style to be set")
	}

	divStyle := Compute(DOMHost{}, div, []SheetRef{{Sheet: sheet}}, css.MediaScreen, nil, nil)
	if got := divStyle.Get(css.OpColor).Colour; got != css.RGBA(0xff, 0, 0, 0xff) {
		t.Errorf("#main color = %#x, want red", uint32(got))
	}
}

func TestDOMHostPreviousSiblingSkipsTextNodes(t *testing.T) {
	parent := dom.NewElement("ul")
	li1 := dom.NewElement("li")
	parent.AppendChild(li1)
	parent.AppendChild(dom.NewText("\n"))
	li2 := dom.NewElement("li")
	parent.AppendChild(li2)

	h := DOMHost{}
	if got := h.PreviousSibling(li2); got != Node(li1) {
		t.Errorf("PreviousSibling(li2) should skip the intervening text node and return li1")
	}
	if got := h.PreviousSibling(li1); got != nil {
		t.Errorf("PreviousSibling(li1) = %v, want nil", got)
	}
}

func TestDOMHostIsFirstChild(t *testing.T) {
	parent := dom.NewElement("ul")
	li1 := dom.NewElement("li")
	li2 := dom.NewElement("li")
	parent.AppendChild(li1)
	parent.AppendChild(li2)

	h := DOMHost{}
	if !h.IsFirstChild(li1) {
		t.Errorf("li1 should be the first child")
	}
	if h.IsFirstChild(li2) {
		t.Errorf("li2 should not be the first child")
	}
}

func parseDOMTestSheet(t *testing.T, src string) *css.Sheet {
	t.Helper()
	sheet := css.CreateSheet("utf-8", "", "", css.OriginAuthor, css.MediaAll, false, false, intern.New())
	if err := sheet.AppendData([]byte(src)); err != css.Ok && err != css.NeedData {
		t.Fatalf("AppendData: %v", err)
	}
	if err := sheet.DataDone(); err != css.Ok {
		t.Fatalf("DataDone: %v", err)
	}
	return sheet
}
