// Package scan provides string-boundary-aware scanning over signature
// and source text. The config merge uses it to work out which declared
// types a managed-side exported function depends on, by intersecting
// the identifiers in its signature with the types declared in the
// original source.
package scan

import "strings"

// Scanner iterates byte-by-byte over signature or source text, tracking
// string and character literal boundaries plus escape sequences, so
// identifier extraction never picks names out of literals.
type Scanner struct {
	src     string
	pos     int
	inStr   bool
	inChar  bool
	escaped bool
	closing bool // the byte just returned closed a literal
}

// New creates a Scanner for the given text. Call Next to advance to the
// first byte.
func New(src string) *Scanner {
	return &Scanner{src: src, pos: -1}
}

// Next advances to the next byte, updating literal state. Returns the
// byte and true, or (0, false) at end of input.
func (s *Scanner) Next() (byte, bool) {
	s.closing = false
	s.pos++
	if s.pos >= len(s.src) {
		return 0, false
	}
	ch := s.src[s.pos]
	if s.escaped {
		s.escaped = false
		return ch, true
	}
	if ch == '\\' && (s.inStr || s.inChar) {
		s.escaped = true
		return ch, true
	}
	switch {
	case ch == '"' && !s.inChar:
		if s.inStr {
			s.closing = true
		}
		s.inStr = !s.inStr
	case ch == '\'' && !s.inStr:
		if s.inChar {
			s.closing = true
		}
		s.inChar = !s.inChar
	}
	return ch, true
}

// InLiteral reports whether the current position is inside a string or
// character literal, including both delimiters.
func (s *Scanner) InLiteral() bool {
	return s.inStr || s.inChar || s.closing
}

// Pos returns the byte offset of the last byte returned by Next, or -1
// before the first call.
func (s *Scanner) Pos() int { return s.pos }

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentByte(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

// signature keywords and builtin type spellings that can never be
// dependencies of a function
var nonDepIdents = map[string]bool{
	"const": true, "unsigned": true, "signed": true, "struct": true,
	"class": true, "enum": true, "void": true, "bool": true,
	"char": true, "short": true, "int": true, "long": true,
	"float": true, "double": true, "auto": true, "static": true,
	"inline": true, "extern": true, "virtual": true, "noexcept": true,
	"fn": true, "pub": true, "mut": true, "ref": true, "self": true,
	"impl": true, "dyn": true, "where": true, "return": true,
}

// IsBuiltin reports whether id is a keyword or builtin type spelling
// that can never be a dependency of a function.
func IsBuiltin(id string) bool { return nonDepIdents[id] }

// Idents returns the candidate type identifiers in text, in first-seen
// order, de-duplicated, skipping literals, keywords, and builtin type
// spellings.
func Idents(text string) []string {
	var out []string
	seen := make(map[string]bool)
	sc := New(text)
	var cur strings.Builder
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		id := cur.String()
		cur.Reset()
		if nonDepIdents[id] || seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
	}
	for ch, ok := sc.Next(); ok; ch, ok = sc.Next() {
		if sc.InLiteral() {
			flush()
			continue
		}
		if cur.Len() == 0 {
			if isIdentStart(ch) {
				cur.WriteByte(ch)
			}
			continue
		}
		if isIdentByte(ch) {
			cur.WriteByte(ch)
			continue
		}
		flush()
	}
	flush()
	return out
}

// declKeywords introduce a type declaration in the original source.
var declKeywords = map[string]bool{
	"struct": true, "class": true, "enum": true, "type": true,
	"typedef": true, "using": true,
}

// DeclaredTypes returns the set of type names declared in source: every
// identifier that directly follows a type-introducing keyword outside
// literals.
func DeclaredTypes(source string) map[string]bool {
	out := make(map[string]bool)
	sc := New(source)
	var cur strings.Builder
	prevKeyword := false
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		id := cur.String()
		cur.Reset()
		if prevKeyword && !nonDepIdents[id] {
			out[id] = true
		}
		prevKeyword = declKeywords[id]
	}
	for ch, ok := sc.Next(); ok; ch, ok = sc.Next() {
		if sc.InLiteral() {
			flush()
			continue
		}
		if cur.Len() == 0 {
			if isIdentStart(ch) {
				cur.WriteByte(ch)
			}
			continue
		}
		if isIdentByte(ch) {
			cur.WriteByte(ch)
			continue
		}
		flush()
	}
	flush()
	return out
}

// Deps returns the identifiers in sig that name types declared in
// source, in signature order. An empty source yields no dependencies.
func Deps(sig, source string) []string {
	if source == "" {
		return nil
	}
	declared := DeclaredTypes(source)
	var out []string
	for _, id := range Idents(sig) {
		if declared[id] {
			out = append(out, id)
		}
	}
	return out
}
