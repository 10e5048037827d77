package css

import (
	"testing"

	"github.com/lukehoban/browser/intern"
)

func TestParseDeclarationValueRollsBackOnFailure(t *testing.T) {
	dict := intern.New()
	// "red" isn't a valid display keyword, and display has no length/color
	// grammar to fall back on, so this must fail without consuming tokens.
	v := Tokenize("red foo bar", dict)
	mark := v.Mark()

	_, err := ParseDeclarationValue("display", v, dict)
	if err == Ok {
		t.Fatal("expected a parse failure for an invalid display value")
	}
	if v.Pos() != mark {
		t.Errorf("cursor at %d after failed parse, want %d (unchanged)", v.Pos(), mark)
	}

	// The vector must still be usable for the next declaration.
	next := v.Peek()
	if next.Type != IDENT || next.Lower() != "red" {
		t.Errorf("next token after rollback = %+v, want the original first token", next)
	}
}

func TestParseDeclarationValueUnknownProperty(t *testing.T) {
	dict := intern.New()
	v := Tokenize("red", dict)
	if _, err := ParseDeclarationValue("not-a-real-property", v, dict); err != Invalid {
		t.Errorf("err = %v, want Invalid for an unrecognized property", err)
	}
}

func TestParseDeclarationValueInherit(t *testing.T) {
	dict := intern.New()
	v := Tokenize("inherit", dict)
	buf, err := ParseDeclarationValue("color", v, dict)
	if err != Ok {
		t.Fatalf("ParseDeclarationValue(inherit) = %v, want Ok", err)
	}
	r := NewReader(buf)
	op, flags, _ := Decode(r)
	if op != OpColor {
		t.Errorf("opcode = %v, want OpColor", op)
	}
	if !flags.IsInherit() {
		t.Error("IsInherit() = false for an explicit inherit value")
	}
}

func TestParseDeclarationValueTrailingImportant(t *testing.T) {
	dict := intern.New()
	v := Tokenize("none !important", dict)
	buf, err := ParseDeclarationValue("display", v, dict)
	if err != Ok {
		t.Fatalf("ParseDeclarationValue = %v, want Ok", err)
	}
	r := NewReader(buf)
	_, flags, _ := Decode(r)
	if !flags.IsImportant() {
		t.Error("IsImportant() = false, want true after trailing !important")
	}
}

func TestParseDeclarationValueKeyword(t *testing.T) {
	dict := intern.New()
	v := Tokenize("none", dict)
	buf, err := ParseDeclarationValue("display", v, dict)
	if err != Ok {
		t.Fatalf("ParseDeclarationValue = %v, want Ok", err)
	}
	r := NewReader(buf)
	op, flags, value := Decode(r)
	if op != OpDisplay {
		t.Errorf("opcode = %v, want OpDisplay", op)
	}
	if flags.IsInherit() || flags.IsImportant() {
		t.Errorf("flags = %v, want neither set", flags)
	}
	if value.IsSet {
		t.Error("keyword-only value should not have IsSet")
	}
}
