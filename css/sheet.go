// This file implements stylesheet assembly: the public
// create/append_data/data_done/destroy surface, charset resolution, rule
// list ordering, and @media/@import handling. It drives the token vector
// produced by Tokenize and delegates selector bodies to ParseSelectorList
// and declaration bodies to ParseDeclarationValue. The rule-loop shape
// (skip-at-rule brace counting, declaration-list loop) is the same one
// any recursive-descent CSS parser uses.
package css

import (
	"bytes"
	"strings"

	"github.com/lukehoban/browser/intern"
	golog "github.com/lukehoban/browser/log"
)

// Origin is which actor authored a sheet, used with the important flag
// to rank the cascade.
type Origin int

const (
	OriginUA Origin = iota
	OriginUser
	OriginAuthor
)

// MediaMask is a bitmask over CSS 2.1's closed set of media types.
type MediaMask uint16

const (
	MediaAll MediaMask = 1 << iota
	MediaScreen
	MediaPrint
	MediaProjection
	MediaHandheld
	MediaEmbossed
	MediaBraille
	MediaSpeech // CSS 2.1 renamed 'aural' to 'speech' in an erratum; both accepted on parse.
	MediaTTY
	MediaTV
)

var mediaNames = map[string]MediaMask{
	"all": MediaAll, "screen": MediaScreen, "print": MediaPrint,
	"projection": MediaProjection, "handheld": MediaHandheld,
	"embossed": MediaEmbossed, "braille": MediaBraille,
	"speech": MediaSpeech, "aural": MediaSpeech,
	"tty": MediaTTY, "tv": MediaTV,
}

// RuleKind is the tagged-variant discriminant of a Rule.
type RuleKind int

const (
	RuleStyle RuleKind = iota
	RuleCharset
	RuleImport
	RuleMedia
	RuleFontFace
	RulePage
)

// Rule is one entry in a sheet's rule list. Its Index is insertion order
// and is the final cascade tiebreaker; it is never renumbered.
type Rule struct {
	Kind  RuleKind
	Index int

	// RuleStyle
	Selectors []*Selector
	Style     *Buffer

	// RuleCharset
	Charset string

	// RuleImport
	ImportURI   *intern.Name
	ImportMedia MediaMask
	ImportSheet *Sheet // filled in once the host resolves and loads it

	// RuleMedia
	MediaMask MediaMask
	Rules     []*Rule // nested rules, only meaningful for RuleMedia

	// RuleFontFace / RulePage
	Declarations *Buffer
}

// URIResolver resolves a relative URI found in @import against a
// sheet's base URL.
type URIResolver func(baseURL, relative string) (string, error)

// ImportLoader is notified once an @import's URI has been resolved, so
// the host can fetch and eventually attach the sub-sheet.
type ImportLoader func(sheet *Sheet, rule *Rule, absoluteURI string)

// Sheet is an ordered rule list plus the provenance and host hooks
// a stylesheet needs.
type Sheet struct {
	Rules  []*Rule
	Origin Origin
	Media  MediaMask
	URL    string
	Title  string
	Inline bool
	Quirks bool
	Dict   *intern.Dict

	DefaultCharset string
	Resolver       URIResolver
	OnImport       ImportLoader

	nextIndex   int
	buf         bytes.Buffer
	done        bool
	sawCharset  bool
	sawNonMeta  bool // a @charset/@import-ineligible rule has been appended
	charsetFix  string
}

// CreateSheet constructs an empty sheet handle, mirroring libcss's
// css_stylesheet_create(level, default_charset, url, title, origin,
// media_mask, inline_flag, quirks_flag, dictionary, allocator). The
// allocator parameter has no counterpart in a garbage-collected host.
func CreateSheet(defaultCharset, url, title string, origin Origin, media MediaMask, inline, quirks bool, dict *intern.Dict) *Sheet {
	return &Sheet{
		Origin:         origin,
		Media:          media,
		URL:            url,
		Title:          title,
		Inline:         inline,
		Quirks:         quirks,
		Dict:           dict,
		DefaultCharset: defaultCharset,
	}
}

// AppendData feeds raw bytes into the sheet. It may be called
// repeatedly; the sheet isn't actually parsed until DataDone, since the
// external tokenizer used here (unlike libcss's own incremental state
// machine) requires a complete input.
func (s *Sheet) AppendData(data []byte) Error {
	if s.done {
		return BadParam
	}
	s.buf.Write(data)
	if s.buf.Len() < 4 && s.charsetFix == "" && !s.sawCharset {
		return NeedData
	}
	return Ok
}

// DataDone completes the pending state machine: resolves the charset,
// tokenizes, and parses every rule. After this, no more bytes may be
// appended.
func (s *Sheet) DataDone() Error {
	if s.done {
		return BadParam
	}
	s.done = true

	raw := s.buf.Bytes()
	text, err := decodeCharset(raw, s.DefaultCharset)
	if err != Ok {
		return err
	}

	toks := Tokenize(text, s.Dict)
	s.parseRules(toks)
	return Ok
}

// Destroy releases every rule's bytecode and interned strings.
func (s *Sheet) Destroy() {
	for _, r := range s.Rules {
		releaseRule(r)
	}
	s.Rules = nil
}

func releaseRule(r *Rule) {
	if r.Style != nil {
		r.Style.Release()
	}
	if r.Declarations != nil {
		r.Declarations.Release()
	}
	for _, nested := range r.Rules {
		releaseRule(nested)
	}
}

// decodeCharset applies CSS 2.1's precedence order: a BOM first; otherwise
// a literal `@charset "name";` at byte 0; otherwise UTF-8. A non-empty
// caller-supplied charset other than UTF-8 yields BadCharset at once; a
// UTF-8 one does not override the BOM or @charset checks. Only UTF-8 (the
// overwhelming common case, and the only encoding the rest of the
// pipeline can decode without an external charset-conversion dependency
// this engine doesn't otherwise need) is actually decoded; any other
// named encoding yields BadCharset rather than silently falling back to
// the default.
func decodeCharset(raw []byte, dictated string) (string, Error) {
	if dictated != "" && !strings.EqualFold(dictated, "utf-8") {
		return "", BadCharset
	}

	if len(raw) >= 3 && raw[0] == 0xEF && raw[1] == 0xBB && raw[2] == 0xBF {
		return string(raw[3:]), Ok
	}
	if len(raw) >= 2 && ((raw[0] == 0xFE && raw[1] == 0xFF) || (raw[0] == 0xFF && raw[1] == 0xFE)) {
		return "", BadCharset // UTF-16 BOM: not decodable by this engine
	}
	if len(raw) >= 4 && ((raw[0] == 0 && raw[1] == 0 && raw[2] == 0xFE && raw[3] == 0xFF) ||
		(raw[0] == 0xFF && raw[1] == 0xFE && raw[2] == 0 && raw[3] == 0)) {
		return "", BadCharset // UTF-32 BOM
	}

	if name, ok := sniffAtCharset(raw); ok {
		if !strings.EqualFold(name, "utf-8") {
			return "", BadCharset
		}
	}

	return string(raw), Ok
}

// sniffAtCharset recognizes a literal `@charset "name";` at byte 0, the
// only encoding-declaration form this engine can see without a BOM or a
// host hint.
func sniffAtCharset(raw []byte) (string, bool) {
	const prefix = `@charset "`
	if !bytes.HasPrefix(raw, []byte(prefix)) {
		return "", false
	}
	rest := raw[len(prefix):]
	end := bytes.IndexByte(rest, '"')
	if end < 0 {
		return "", false
	}
	if end+2 > len(rest) || rest[end+1] != ';' {
		return "", false
	}
	return string(rest[:end]), true
}

// parseRules drives the top-level rule loop: `@charset`, `@import`,
// `@media`, `@font-face`, `@page`, or an ordinary selector-list rule.
func (s *Sheet) parseRules(v *Vector) {
	for {
		v.SkipWhitespace()
		if v.AtEnd() {
			return
		}
		t := v.Peek()
		if t.Type == CHAR && t.Raw() == "@" {
			s.parseAtRule(v)
			continue
		}
		s.parseStyleRule(v)
	}
}

// parseAtRule dispatches on the at-keyword and enforces CSS 2.1's
// ordering rule: `@charset` must be first; `@import` rules must precede
// any non-`@charset`/`@import` rule, with violations recovered by
// dropping the offending rule (with a log warning for a late `@import`).
func (s *Sheet) parseAtRule(v *Vector) {
	v.Next() // consume '@'
	kw := v.Peek()
	if kw.Type != IDENT {
		skipToRuleEnd(v)
		return
	}
	v.Next()
	name := kw.Lower()

	switch name {
	case "charset":
		s.parseCharsetRule(v)
	case "import":
		s.parseImportRule(v)
	case "media":
		s.parseMediaRule(v)
	case "font-face":
		s.parseDeclarationBlockRule(v, RuleFontFace)
	case "page":
		skipSelectorPrelude(v)
		s.parseDeclarationBlockRule(v, RulePage)
	default:
		skipToRuleEnd(v)
	}
}

func (s *Sheet) parseCharsetRule(v *Vector) {
	v.SkipWhitespace()
	t := v.Peek()
	if t.Type != STRING {
		skipToRuleEnd(v)
		return
	}
	v.Next()
	charsetName := t.Raw()
	expectChar(v, ";")

	if s.Index() != 0 {
		golog.WithFields(golog.WarnLevel, "css: @charset must be the first rule, dropping", map[string]interface{}{"charset": charsetName})
		return
	}
	s.sawCharset = true
	s.appendRule(&Rule{Kind: RuleCharset, Charset: charsetName})
}

func (s *Sheet) parseImportRule(v *Vector) {
	v.SkipWhitespace()
	t := v.Peek()
	var uri *intern.Name
	switch t.Type {
	case STRING, URI:
		v.Next()
		uri = t.Text
	default:
		skipToRuleEnd(v)
		return
	}

	media := s.parseMediaList(v)
	expectChar(v, ";")

	if s.sawNonMeta {
		golog.WithFields(golog.WarnLevel, "css: late @import dropped", map[string]interface{}{"uri": uri.String()})
		return
	}

	idx := s.nextIndex
	s.nextIndex++
	rule := &Rule{Kind: RuleImport, Index: idx, ImportURI: uri, ImportMedia: media}
	s.appendRule(rule)

	if s.Resolver != nil {
		abs, err := s.Resolver(s.URL, uri.String())
		if err == nil && s.OnImport != nil {
			s.OnImport(s, rule, abs)
		}
	}
}

func (s *Sheet) parseMediaRule(v *Vector) {
	media := s.parseMediaList(v)
	v.SkipWhitespace()
	if !expectChar(v, "{") {
		skipToRuleEnd(v)
		return
	}
	idx := s.nextIndex
	s.nextIndex++
	rule := &Rule{Kind: RuleMedia, Index: idx, MediaMask: media}
	for {
		v.SkipWhitespace()
		t := v.Peek()
		if t.Type == EOF {
			break
		}
		if t.Type == CHAR && t.Raw() == "}" {
			v.Next()
			break
		}
		if t.Type == CHAR && t.Raw() == "@" {
			before := len(rule.Rules)
			s.parseAtRuleInto(v, rule)
			if len(rule.Rules) == before {
				continue
			}
			continue
		}
		s.parseStyleRuleInto(v, rule)
	}
	s.appendRule(rule)
}

// parseAtRuleInto handles nested @-rules inside @media; CSS 2.1 only
// allows ordinary style rules there, but accepting nested @page/@font-face
// defensively keeps a malformed sheet from desyncing the rule loop.
func (s *Sheet) parseAtRuleInto(v *Vector, parent *Rule) {
	v.Next()
	kw := v.Peek()
	if kw.Type != IDENT {
		skipToRuleEnd(v)
		return
	}
	v.Next()
	switch kw.Lower() {
	case "font-face":
		idx := s.nextIndex
		s.nextIndex++
		decls := s.parseDeclarationBlock(v)
		parent.Rules = append(parent.Rules, &Rule{Kind: RuleFontFace, Index: idx, Declarations: decls})
	case "page":
		skipSelectorPrelude(v)
		idx := s.nextIndex
		s.nextIndex++
		decls := s.parseDeclarationBlock(v)
		parent.Rules = append(parent.Rules, &Rule{Kind: RulePage, Index: idx, Declarations: decls})
	default:
		skipToRuleEnd(v)
	}
}

func (s *Sheet) parseMediaList(v *Vector) MediaMask {
	var mask MediaMask
	for {
		v.SkipWhitespace()
		t := v.Peek()
		if t.Type != IDENT {
			break
		}
		v.Next()
		if m, ok := mediaNames[t.Lower()]; ok {
			mask |= m
		}
		v.SkipWhitespace()
		if !expectChar(v, ",") {
			break
		}
	}
	if mask == 0 {
		mask = MediaAll
	}
	return mask
}

func (s *Sheet) parseDeclarationBlockRule(v *Vector, kind RuleKind) {
	decls := s.parseDeclarationBlock(v)
	idx := s.nextIndex
	s.nextIndex++
	s.appendRule(&Rule{Kind: kind, Index: idx, Declarations: decls})
}

// skipSelectorPrelude consumes tokens up to (but not including) the next
// '{', used for @page's optional `:pseudo-page` selector this engine
// doesn't model further.
func skipSelectorPrelude(v *Vector) {
	for {
		t := v.Peek()
		if t.Type == EOF {
			return
		}
		if t.Type == CHAR && t.Raw() == "{" {
			return
		}
		v.Next()
	}
}

func (s *Sheet) parseStyleRule(v *Vector) {
	rule := s.parseStyleRuleRule(v)
	if rule != nil {
		s.appendRule(rule)
	}
}

func (s *Sheet) parseStyleRuleInto(v *Vector, parent *Rule) {
	rule := s.parseStyleRuleRule(v)
	if rule != nil {
		parent.Rules = append(parent.Rules, rule)
	}
}

// parseStyleRuleRule parses one ordinary `selector-list { declarations }`
// rule. A malformed prelude or an unterminated block is recovered by
// skipping to the next top-level '}' and continuing.
func (s *Sheet) parseStyleRuleRule(v *Vector) *Rule {
	selectors, err := ParseSelectorList(v, s.Dict)
	v.SkipWhitespace()
	if err != Ok || !expectChar(v, "{") {
		skipToRuleEnd(v)
		return nil
	}
	style := s.parseDeclarationBlock(v)
	if len(selectors) == 0 {
		style.Release()
		return nil
	}
	idx := s.nextIndex
	s.nextIndex++
	return &Rule{Kind: RuleStyle, Index: idx, Selectors: selectors, Style: style}
}

// parseDeclarationBlock parses `{ decl; decl; ... }`, already positioned
// just after the opening '{'. Each declaration is parsed independently;
// an unrecognized property or malformed value is dropped without
// disturbing its neighbours.
func (s *Sheet) parseDeclarationBlock(v *Vector) *Buffer {
	block := NewBuffer(s.Dict)
	for {
		v.SkipWhitespace()
		t := v.Peek()
		if t.Type == EOF {
			return block
		}
		if t.Type == CHAR && t.Raw() == "}" {
			v.Next()
			return block
		}
		if t.Type == CHAR && t.Raw() == ";" {
			v.Next()
			continue
		}
		if decl := s.parseOneDeclaration(v); decl != nil {
			block.bytes = append(block.bytes, decl.bytes...)
			block.strRefs = append(block.strRefs, decl.strRefs...)
		}
	}
}

func (s *Sheet) parseOneDeclaration(v *Vector) *Buffer {
	t := v.Peek()
	if t.Type != IDENT {
		skipToDeclarationEnd(v)
		return nil
	}
	name := t.Lower()
	v.Next()
	v.SkipWhitespace()
	if !expectChar(v, ":") {
		skipToDeclarationEnd(v)
		return nil
	}

	if shorthandExpanders[name] != nil {
		buf := expandShorthandDecl(name, v, s.Dict)
		if buf == nil {
			skipToDeclarationEnd(v)
		}
		return buf
	}

	buf, parseErr := ParseDeclarationValue(name, v, s.Dict)
	if parseErr != Ok {
		skipToDeclarationEnd(v)
		return nil
	}
	return buf
}

// skipToDeclarationEnd consumes tokens until the ';' that ends a
// declaration, or the '}' that ends the block (not consumed), so a
// single bad declaration never desyncs the rest of the block.
func skipToDeclarationEnd(v *Vector) {
	for {
		t := v.Peek()
		if t.Type == EOF {
			return
		}
		if t.Type == CHAR && (t.Raw() == ";" || t.Raw() == "}") {
			if t.Raw() == ";" {
				v.Next()
			}
			return
		}
		v.Next()
	}
}

// skipToRuleEnd recovers from a malformed rule by skipping to the next
// top-level '}' or ';', tracking brace depth.
func skipToRuleEnd(v *Vector) {
	depth := 0
	for {
		t := v.Peek()
		if t.Type == EOF {
			return
		}
		if t.Type == CHAR {
			switch t.Raw() {
			case "{":
				depth++
			case "}":
				depth--
				v.Next()
				if depth <= 0 {
					return
				}
				continue
			case ";":
				if depth == 0 {
					v.Next()
					return
				}
			}
		}
		v.Next()
	}
}

// appendRule records whether the rule list has passed the point where
// @import is still legal. Every caller has already assigned r.Index
// (RuleCharset is the sole exception: it's only ever valid as the first
// rule, so it never needs one of its own).
func (s *Sheet) appendRule(r *Rule) {
	if r.Kind != RuleCharset && r.Kind != RuleImport {
		s.sawNonMeta = true
	}
	s.Rules = append(s.Rules, r)
}

// Index reports how many rules have been appended so far, used to check
// "@charset must be first".
func (s *Sheet) Index() int { return len(s.Rules) }
