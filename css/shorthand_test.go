package css

import (
	"testing"

	"github.com/lukehoban/browser/intern"
)

// decodeAll drains a Buffer into its (opcode, value) pairs in encounter
// order, ignoring operand payloads — enough to check which longhands a
// shorthand touched and in what order.
func decodeAll(t *testing.T, buf *Buffer) []Opcode {
	t.Helper()
	var ops []Opcode
	r := NewReader(buf)
	for !r.Done() {
		op, _, _ := Decode(r)
		ops = append(ops, op)
	}
	return ops
}

func TestExpandFourSidesMirroring(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want [4]int
	}{
		{"one value sets all four", "1px", [4]int{1, 1, 1, 1}},
		{"two values mirror vertical+horizontal", "1px 2px", [4]int{1, 2, 1, 2}},
		{"three values mirror only left", "1px 2px 3px", [4]int{1, 2, 3, 2}},
		{"four values map in order", "1px 2px 3px 4px", [4]int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dict := intern.New()
			v := Tokenize(tt.src, dict)
			buf := expandShorthandDecl("margin", v, dict)
			if buf == nil {
				t.Fatalf("expandShorthandDecl(margin, %q) = nil, want a buffer", tt.src)
			}
			r := NewReader(buf)
			order := [4]Opcode{OpMarginTop, OpMarginRight, OpMarginBottom, OpMarginLeft}
			for i, wantOp := range order {
				op, _, val := Decode(r)
				if op != wantOp {
					t.Fatalf("side %d opcode = %v, want %v", i, op, wantOp)
				}
				if val.Fixed.ToInt() != tt.want[i] {
					t.Errorf("side %d value = %v, want %d", i, val.Fixed.ToInt(), tt.want[i])
				}
			}
		})
	}
}

func TestExpandBorderSideFillsUnspecifiedLonghands(t *testing.T) {
	dict := intern.New()
	v := Tokenize("solid", dict)
	buf := expandShorthandDecl("border-top", v, dict)
	if buf == nil {
		t.Fatal("expandShorthandDecl(border-top, \"solid\") = nil")
	}
	ops := decodeAll(t, buf)
	if len(ops) != 3 {
		t.Fatalf("got %d declarations, want 3 (width, style, color)", len(ops))
	}
	if ops[0] != OpBorderTopWidth || ops[1] != OpBorderTopStyle || ops[2] != OpBorderTopColor {
		t.Errorf("opcodes = %v, want width/style/color in that order", ops)
	}

	r := NewReader(buf)
	_, _, width := Decode(r)
	if width.Keyword != mediumWidth.value {
		t.Errorf("unfilled width keyword = %d, want medium (%d)", width.Keyword, mediumWidth.value)
	}
	_, _, style := Decode(r)
	if style.Keyword != 5 { // "solid" as parsed from source, not the fill
		t.Errorf("style keyword = %d, want 5 (solid)", style.Keyword)
	}
	_, _, color := Decode(r)
	if color.Keyword != currentColorUse {
		t.Errorf("unfilled color = %d, want the currentColor sentinel (%d)", color.Keyword, currentColorUse)
	}
}

func TestExpandBackgroundFillsAllFiveLonghands(t *testing.T) {
	dict := intern.New()
	v := Tokenize("red", dict)
	buf := expandShorthandDecl("background", v, dict)
	if buf == nil {
		t.Fatal("expandShorthandDecl(background, \"red\") = nil")
	}
	ops := decodeAll(t, buf)
	want := []Opcode{OpBackgroundColor, OpBackgroundImage, OpBackgroundRepeat, OpBackgroundAttachment, OpBackgroundPosition}
	if len(ops) != len(want) {
		t.Fatalf("got %d declarations, want %d", len(ops), len(want))
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("declaration %d = %v, want %v", i, ops[i], want[i])
		}
	}
}

func TestExpandShorthandUnknownNameReturnsNil(t *testing.T) {
	dict := intern.New()
	v := Tokenize("1px", dict)
	if buf := expandShorthandDecl("not-a-shorthand", v, dict); buf != nil {
		t.Error("expandShorthandDecl for an unregistered name should return nil")
	}
}
