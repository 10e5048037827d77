package css

import (
	"testing"

	"github.com/lukehoban/browser/fixed"
	"github.com/lukehoban/browser/intern"
)

func TestOPVRoundTrip(t *testing.T) {
	opv := BuildOPV(OpColor, FlagInherit|FlagImportant, 0x1234)
	if opv.Opcode() != OpColor {
		t.Errorf("Opcode() = %v, want %v", opv.Opcode(), OpColor)
	}
	if !opv.IsInherit() {
		t.Error("IsInherit() = false, want true")
	}
	if !opv.IsImportant() {
		t.Error("IsImportant() = false, want true")
	}
	if opv.Value() != 0x1234 {
		t.Errorf("Value() = %#x, want %#x", opv.Value(), 0x1234)
	}
}

func TestDecodeFixedUnit(t *testing.T) {
	dict := intern.New()
	buf := NewBuffer(dict)
	buf.WriteFixedUnit(OpMarginTop, FlagImportant, fixed.FromInt(12), UnitPX)

	r := NewReader(buf)
	op, flags, v := Decode(r)
	if op != OpMarginTop {
		t.Errorf("opcode = %v, want OpMarginTop", op)
	}
	if !flags.IsImportant() {
		t.Error("IsImportant() = false, want true")
	}
	if !v.IsSet || v.Fixed != fixed.FromInt(12) || v.Unit != UnitPX {
		t.Errorf("value = %+v, want IsSet Fixed=12px", v)
	}
	if !r.Done() {
		t.Error("reader should be exhausted after one declaration")
	}
}

func TestDecodeColour(t *testing.T) {
	dict := intern.New()
	buf := NewBuffer(dict)
	buf.WriteColour(OpColor, 0, RGBA(0x11, 0x22, 0x33, 0xff))

	r := NewReader(buf)
	op, _, v := Decode(r)
	if op != OpColor {
		t.Errorf("opcode = %v, want OpColor", op)
	}
	if !v.IsSet || v.Colour != RGBA(0x11, 0x22, 0x33, 0xff) {
		t.Errorf("value = %+v, want the written colour", v)
	}
}

func TestDecodeKeywordOnly(t *testing.T) {
	dict := intern.New()
	buf := NewBuffer(dict)
	buf.WriteOPV(OpDisplay, 0, 3) // some keyword discriminant, not ValueSet

	r := NewReader(buf)
	op, _, v := Decode(r)
	if op != OpDisplay {
		t.Errorf("opcode = %v, want OpDisplay", op)
	}
	if v.IsSet {
		t.Error("IsSet = true for a bare keyword declaration")
	}
	if v.Keyword != 3 {
		t.Errorf("Keyword = %d, want 3", v.Keyword)
	}
}

func TestDecodeStringRefRoundTrip(t *testing.T) {
	dict := intern.New()
	buf := NewBuffer(dict)
	name := dict.Intern("Helvetica")
	buf.WriteStringRef(OpFontFamily, 0, 1, name)
	buf.WriteOPV(OpFontFamily, 0, 0) // terminate the name list

	r := NewReader(buf)
	op, _, v := Decode(r)
	if op != OpFontFamily {
		t.Errorf("opcode = %v, want OpFontFamily", op)
	}
	if len(v.Items) != 1 || v.Items[0].Str.String() != "Helvetica" {
		t.Errorf("items = %+v, want one item named Helvetica", v.Items)
	}
}

func TestPatchFlagsAfterWrite(t *testing.T) {
	dict := intern.New()
	buf := NewBuffer(dict)
	buf.WriteColour(OpColor, 0, RGBA(0, 0, 0, 0xff))
	buf.PatchFlags(FlagImportant)

	r := NewReader(buf)
	_, flags, _ := Decode(r)
	if !flags.IsImportant() {
		t.Error("PatchFlags did not set important on an already-written OPV")
	}
}

func TestBufferReleaseUnrefsStrings(t *testing.T) {
	dict := intern.New()
	buf := NewBuffer(dict)
	name := dict.Intern("cursive")
	buf.WriteStringRef(OpFontFamily, 0, 1, name)
	buf.WriteOPV(OpFontFamily, 0, 0)

	if live := dict.Live(); len(live) == 0 {
		t.Fatal("expected the interned name to be referenced before Release")
	}
	buf.Release()
	if live := dict.Live(); len(live) != 0 {
		t.Errorf("Live() = %v after Release, want empty", live)
	}
}
