package markup

import (
	"strings"

	"gopkg.in/yaml.v3"
)

type frame struct {
	el       *Element
	children []Node
}

type parser struct {
	src   string
	pos   int
	text  strings.Builder
	stack []*frame
}

// Parse splits body into nodes.
func Parse(body string) []Node {
	p := &parser{src: body, stack: []*frame{{}}}
	p.run()
	return p.stack[0].children
}

func (p *parser) run() {
	for p.pos < len(p.src) {
		if p.atLineStart() {
			if fence := p.fenceAt(p.pos); fence != "" {
				p.copyFenced(fence)
				continue
			}
		}

		c := p.src[p.pos]
		switch {
		case c == '`':
			p.copyCodeSpan()
		case strings.HasPrefix(p.src[p.pos:], "{/*"):
			p.skipComment()
		case c == '<' && p.peekUpper(1):
			if !p.openTag() {
				p.text.WriteByte(c)
				p.pos++
			}
		case c == '<' && p.peek(1) == '/' && p.peekUpper(2):
			if !p.closeTag() {
				p.text.WriteByte(c)
				p.pos++
			}
		default:
			p.text.WriteByte(c)
			p.pos++
		}
	}
	p.flush()
	for len(p.stack) > 1 {
		p.pop()
	}
}

func (p *parser) top() *frame { return p.stack[len(p.stack)-1] }

func (p *parser) flush() {
	if p.text.Len() == 0 {
		return
	}
	f := p.top()
	f.children = append(f.children, Text{Value: p.text.String()})
	p.text.Reset()
}

func (p *parser) pop() {
	f := p.top()
	p.stack = p.stack[:len(p.stack)-1]
	f.el.Children = f.children
	parent := p.top()
	parent.children = append(parent.children, f.el)
}

func (p *parser) peek(off int) byte {
	if p.pos+off < len(p.src) {
		return p.src[p.pos+off]
	}
	return 0
}

func (p *parser) peekUpper(off int) bool {
	c := p.peek(off)
	return c >= 'A' && c <= 'Z'
}

func (p *parser) atLineStart() bool {
	return p.pos == 0 || p.src[p.pos-1] == '\n'
}

// fenceAt returns the code fence opening the line at i, if any.
func (p *parser) fenceAt(i int) string {
	line := p.src[i:]
	if j := strings.IndexByte(line, '\n'); j >= 0 {
		line = line[:j]
	}
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return ""
	}
	for _, marker := range []byte{'`', '~'} {
		n := 0
		for n < len(trimmed) && trimmed[n] == marker {
			n++
		}
		if n >= 3 {
			return trimmed[:n]
		}
	}
	return ""
}

func (p *parser) copyFenced(fence string) {
	start := p.pos
	i := strings.IndexByte(p.src[start:], '\n')
	if i < 0 {
		p.text.WriteString(p.src[start:])
		p.pos = len(p.src)
		return
	}
	i += start + 1
	for i < len(p.src) {
		end := strings.IndexByte(p.src[i:], '\n')
		next := len(p.src)
		if end >= 0 {
			next = i + end + 1
		}
		if strings.HasPrefix(p.fenceAt(i), fence) {
			p.text.WriteString(p.src[start:next])
			p.pos = next
			return
		}
		i = next
	}
	p.text.WriteString(p.src[start:])
	p.pos = len(p.src)
}

func (p *parser) copyCodeSpan() {
	n := 0
	for p.peek(n) == '`' {
		n++
	}
	ticks := p.src[p.pos : p.pos+n]
	rest := p.src[p.pos+n:]
	end := strings.Index(rest, ticks)
	if nl := strings.Index(rest, "\n\n"); end < 0 || (nl >= 0 && nl < end) {
		p.text.WriteString(ticks)
		p.pos += n
		return
	}
	p.text.WriteString(p.src[p.pos : p.pos+n+end+n])
	p.pos += n + end + n
}

func (p *parser) skipComment() {
	end := strings.Index(p.src[p.pos:], "*/}")
	if end < 0 {
		p.pos = len(p.src)
		return
	}
	p.pos += end + len("*/}")
}

func isNameByte(c byte) bool {
	return c == '_' || c == '.' || c == '-' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (p *parser) scanName(i int) (string, int) {
	start := i
	for i < len(p.src) && isNameByte(p.src[i]) {
		i++
	}
	return p.src[start:i], i
}

func (p *parser) skipSpace(i int) int {
	for i < len(p.src) && strings.IndexByte(" \t\r\n", p.src[i]) >= 0 {
		i++
	}
	return i
}

// openTag parses "<Tag attrs...>" or "<Tag ... />" at p.pos. It reports
// false, consuming nothing, when the tag is malformed.
func (p *parser) openTag() bool {
	name, i := p.scanName(p.pos + 1)
	el := &Element{Tag: name, Attrs: map[string]any{}}

	for {
		i = p.skipSpace(i)
		if i >= len(p.src) {
			return false
		}
		switch {
		case strings.HasPrefix(p.src[i:], "/>"):
			el.SelfClosing = true
			p.flush()
			f := p.top()
			f.children = append(f.children, el)
			p.pos = i + 2
			return true
		case p.src[i] == '>':
			p.flush()
			p.stack = append(p.stack, &frame{el: el})
			p.pos = i + 1
			return true
		}

		attr, j := p.scanName(i)
		if attr == "" {
			return false
		}
		j = p.skipSpace(j)
		if j >= len(p.src) || p.src[j] != '=' {
			el.Attrs[attr] = true
			i = j
			continue
		}
		value, k, ok := p.attrValue(p.skipSpace(j + 1))
		if !ok {
			return false
		}
		el.Attrs[attr] = value
		i = k
	}
}

func (p *parser) attrValue(i int) (any, int, bool) {
	if i >= len(p.src) {
		return nil, i, false
	}
	switch q := p.src[i]; q {
	case '"', '\'':
		end := strings.IndexByte(p.src[i+1:], q)
		if end < 0 {
			return nil, i, false
		}
		return p.src[i+1 : i+1+end], i + end + 2, true
	case '{':
		end, ok := matchBrace(p.src, i)
		if !ok {
			return nil, i, false
		}
		return decodeExpr(p.src[i+1 : end]), end + 1, true
	}
	return nil, i, false
}

// matchBrace returns the index of the brace closing the one at open,
// skipping braces inside quoted strings.
func matchBrace(s string, open int) (int, bool) {
	depth := 0
	var quote byte
	for i := open; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// decodeExpr reads an attribute expression as a YAML flow value, falling
// back to the trimmed source text.
func decodeExpr(expr string) any {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return ""
	}
	if len(expr) >= 2 && expr[0] == '`' && expr[len(expr)-1] == '`' {
		return expr[1 : len(expr)-1]
	}
	if s, ok := unquoteString(expr); ok {
		return s
	}
	var v any
	if err := yaml.Unmarshal([]byte(expr), &v); err != nil {
		return expr
	}
	return v
}

// unquoteString decodes expr when it is exactly one quoted string literal,
// resolving backslash escapes such as \' that YAML does not accept.
func unquoteString(expr string) (string, bool) {
	q := expr[0]
	if len(expr) < 2 || (q != '"' && q != '\'') {
		return "", false
	}
	var b strings.Builder
	for i := 1; i < len(expr); i++ {
		c := expr[i]
		switch {
		case c == q:
			return b.String(), i == len(expr)-1
		case c == '\\' && i+1 < len(expr):
			i++
			switch e := expr[i]; e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(e)
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", false
}

// closeTag parses "</Tag>" and closes the nearest open element with that
// name, implicitly closing anything opened after it.
func (p *parser) closeTag() bool {
	name, i := p.scanName(p.pos + 2)
	i = p.skipSpace(i)
	if i >= len(p.src) || p.src[i] != '>' {
		return false
	}
	p.pos = i + 1

	depth := -1
	for d := len(p.stack) - 1; d > 0; d-- {
		if p.stack[d].el.Tag == name {
			depth = d
			break
		}
	}
	if depth < 0 {
		return true
	}
	p.flush()
	for len(p.stack) > depth {
		p.pop()
	}
	return true
}
