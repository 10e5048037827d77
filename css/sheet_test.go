package css

import (
	"testing"

	"github.com/lukehoban/browser/intern"
)

func newTestSheet(dict *intern.Dict) *Sheet {
	return CreateSheet("", "https://example.test/style.css", "", OriginAuthor, MediaAll, false, false, dict)
}

func TestSheetRuleIndexIncreasesMonotonically(t *testing.T) {
	dict := intern.New()
	s := newTestSheet(dict)
	if err := s.AppendData([]byte(`
		p { color: red; }
		h1, h2 { color: blue; }
		.warning { color: yellow; }
	`)); err != Ok && err != NeedData {
		t.Fatalf("AppendData = %v", err)
	}
	if err := s.DataDone(); err != Ok {
		t.Fatalf("DataDone = %v", err)
	}

	if len(s.Rules) != 3 {
		t.Fatalf("got %d rules, want 3", len(s.Rules))
	}
	for i, r := range s.Rules {
		if r.Index != i {
			t.Errorf("rule %d has Index %d, want %d", i, r.Index, i)
		}
	}
}

func TestSheetParsesMultipleSelectorsPerRule(t *testing.T) {
	dict := intern.New()
	s := newTestSheet(dict)
	s.AppendData([]byte(`h1, h2, h3 { font-weight: bold; }`))
	if err := s.DataDone(); err != Ok {
		t.Fatalf("DataDone = %v", err)
	}
	if len(s.Rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(s.Rules))
	}
	if len(s.Rules[0].Selectors) != 3 {
		t.Errorf("got %d selectors, want 3", len(s.Rules[0].Selectors))
	}
}

func TestSheetSkipsUnknownAtRule(t *testing.T) {
	dict := intern.New()
	s := newTestSheet(dict)
	s.AppendData([]byte(`@unknown-thing foo bar; p { color: green; }`))
	if err := s.DataDone(); err != Ok {
		t.Fatalf("DataDone = %v", err)
	}
	if len(s.Rules) != 1 || s.Rules[0].Kind != RuleStyle {
		t.Fatalf("rules = %+v, want one style rule surviving the unknown at-rule", s.Rules)
	}
}

func TestSheetDestroyClearsRules(t *testing.T) {
	dict := intern.New()
	s := newTestSheet(dict)
	s.AppendData([]byte(`p { color: red; }`))
	if err := s.DataDone(); err != Ok {
		t.Fatalf("DataDone = %v", err)
	}
	s.Destroy()
	if s.Rules != nil {
		t.Errorf("Rules = %v after Destroy, want nil", s.Rules)
	}
}

func TestDecodeCharsetBOM(t *testing.T) {
	tests := []struct {
		name    string
		raw     []byte
		wantErr Error
		wantStr string
	}{
		{"utf8 bom stripped", append([]byte{0xEF, 0xBB, 0xBF}, "p{}"...), Ok, "p{}"},
		{"no bom passthrough", []byte("p{}"), Ok, "p{}"},
		{"utf16 bom rejected", []byte{0xFE, 0xFF, 0, 'p'}, BadCharset, ""},
		{"mismatched dictated charset", []byte("p{}"), BadCharset, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dictated := ""
			if tt.name == "mismatched dictated charset" {
				dictated = "iso-8859-1"
			}
			got, err := decodeCharset(tt.raw, dictated)
			if err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err == Ok && got != tt.wantStr {
				t.Errorf("text = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestSniffAtCharset(t *testing.T) {
	name, ok := sniffAtCharset([]byte(`@charset "UTF-8"; p { color: red; }`))
	if !ok || name != "UTF-8" {
		t.Errorf("sniffAtCharset = (%q, %v), want (UTF-8, true)", name, ok)
	}
	if _, ok := sniffAtCharset([]byte(`p { color: red; }`)); ok {
		t.Error("sniffAtCharset matched a stylesheet with no leading @charset")
	}
}
