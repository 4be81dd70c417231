package engine

import (
	"fmt"
	"sort"
	"strings"
)

// formKeywords lists the keywords each shape form accepts. Forms missing
// from the table (user functions, zygomys builtins) are not checked; forms
// mapped to nil take no keywords at all.
var formKeywords = map[string][]string{
	"vec3":        nil,
	"radians":     nil,
	"tolerance":   nil,
	"polyline":    nil,
	"line":        nil,
	"arc":         {"center", "xaxis", "yaxis", "radius", "start", "end"},
	"ellipse-arc": {"center", "xaxis", "yaxis", "xradius", "yradius", "start", "end"},
	"circle":      {"center", "xaxis", "yaxis", "radius"},
	"ellipse":     {"center", "xaxis", "yaxis", "xradius", "yradius"},
	"bezier":      {"weights"},
	"extrude":     {"axis", "length"},
	"sweep":       nil,
	"revolve":     {"center", "axis", "angle"},
	"cylinder":    {"base", "axis", "xaxis", "height", "radius"},
	"sphere":      {"center", "axis", "xaxis", "radius"},
	"cone":        {"base", "axis", "xaxis", "height", "radius"},
	"patch":       {"degree"},
	"defshape":    nil,
	"shape":       nil,
	"place":       {"at", "rotate"},
	"group":       {"description"},
}

// acceptsKeyword reports whether form takes :kw. Unknown forms accept
// anything.
func acceptsKeyword(form, kw string) bool {
	allowed, known := formKeywords[form]
	if !known {
		return true
	}
	for _, a := range allowed {
		if a == kw {
			return true
		}
	}
	return false
}

// openForm is one unclosed bracket. head is the symbol that opened a
// parenthesized form, in source spelling.
type openForm struct {
	head    string
	started bool
}

// scanner rewrites shape script source into something zygomys reads:
//
//   - :keyword becomes the string "__kw_keyword", so keywords never clash
//     with user variables;
//   - ellipse-arc becomes ellipse_arc, since zygomys reads a hyphen as
//     subtraction;
//   - ; comments become // comments.
//
// String literals pass through untouched. While rewriting, it checks every
// keyword against the innermost shape form it appears in.
type scanner struct {
	src  []byte
	out  []byte
	pos  int
	line int
	col  int

	forms []openForm
	errs  []EvalError
}

// preprocessSource rewrites source for zygomys and reports every keyword
// passed to a shape form that does not take it.
func preprocessSource(source string) (string, []EvalError) {
	s := &scanner{
		src:  []byte(source),
		out:  make([]byte, 0, len(source)+len(source)/4),
		line: 1,
		col:  1,
	}
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '"':
			s.token()
			s.literal('"', true)
		case c == '`':
			s.token()
			s.literal('`', false)
		case c == ';':
			s.comment()
		case c == '(' || c == '[' || c == '{':
			s.token()
			s.forms = append(s.forms, openForm{})
			s.copy(1)
		case c == ')' || c == ']' || c == '}':
			if len(s.forms) > 0 {
				s.forms = s.forms[:len(s.forms)-1]
			}
			s.copy(1)
		case c == ':' && s.peek(1) == '=':
			s.token()
			s.copy(2)
		case c == ':' && isLetter(s.peek(1)):
			s.token()
			s.keyword()
		case isLetter(c):
			s.symbol()
		default:
			if !isSpace(c) {
				s.token()
			}
			s.copy(1)
		}
	}
	return string(s.out), s.errs
}

func (s *scanner) peek(n int) byte {
	if s.pos+n < len(s.src) {
		return s.src[s.pos+n]
	}
	return 0
}

// advance consumes n source bytes without emitting them.
func (s *scanner) advance(n int) {
	for range n {
		if s.src[s.pos] == '\n' {
			s.line++
			s.col = 1
		} else {
			s.col++
		}
		s.pos++
	}
}

func (s *scanner) copy(n int) {
	s.out = append(s.out, s.src[s.pos:s.pos+n]...)
	s.advance(n)
}

// token marks the innermost form as having seen a token, and reports
// whether this was its first.
func (s *scanner) token() bool {
	if len(s.forms) == 0 {
		return false
	}
	f := &s.forms[len(s.forms)-1]
	first := !f.started
	f.started = true
	return first
}

// literal copies a quoted string through its closing quote.
func (s *scanner) literal(quote byte, escapes bool) {
	s.copy(1)
	for s.pos < len(s.src) && s.src[s.pos] != quote {
		if escapes && s.src[s.pos] == '\\' && s.pos+1 < len(s.src) {
			s.copy(2)
			continue
		}
		s.copy(1)
	}
	if s.pos < len(s.src) {
		s.copy(1)
	}
}

// comment turns a run of ; into // and copies the rest of the line.
func (s *scanner) comment() {
	s.out = append(s.out, '/', '/')
	for s.pos < len(s.src) && s.src[s.pos] == ';' {
		s.advance(1)
	}
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.copy(1)
	}
}

// symbol copies an identifier, turning hyphens between letters into
// underscores. The first symbol of a form is remembered as its head.
func (s *scanner) symbol() {
	start := s.pos
	end := start
	for end < len(s.src) {
		c := s.src[end]
		if isIdentChar(c) || (c == '-' && end+1 < len(s.src) && isLetter(s.src[end+1])) {
			end++
			continue
		}
		break
	}
	name := string(s.src[start:end])
	if s.token() {
		s.forms[len(s.forms)-1].head = name
	}
	s.out = append(s.out, strings.ReplaceAll(name, "-", "_")...)
	s.advance(end - start)
}

// keyword emits :name as a marked string and checks it against the
// enclosing form.
func (s *scanner) keyword() {
	line, col := s.line, s.col
	end := s.pos + 1
	for end < len(s.src) && isKWChar(s.src[end]) {
		end++
	}
	name := string(s.src[s.pos+1 : end])

	if n := len(s.forms); n > 0 {
		if form := s.forms[n-1].head; !acceptsKeyword(form, name) {
			s.errs = append(s.errs, EvalError{
				Line:    line,
				Col:     col,
				Message: unknownKeyword(form, name),
			})
		}
	}

	s.out = append(s.out, '"')
	s.out = append(s.out, kwPrefix...)
	s.out = append(s.out, name...)
	s.out = append(s.out, '"')
	s.advance(end - s.pos)
}

func unknownKeyword(form, kw string) string {
	allowed := formKeywords[form]
	if len(allowed) == 0 {
		return fmt.Sprintf("%s: unknown keyword :%s (%s takes no keywords)", form, kw, form)
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = ":" + a
	}
	sort.Strings(names)
	return fmt.Sprintf("%s: unknown keyword :%s (accepts %s)", form, kw, strings.Join(names, " "))
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
