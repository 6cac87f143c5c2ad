package corpus

import (
	"strings"
)

// ParseList decodes a list cell. Bracketed values are read as a list literal
// of quoted strings or bare scalars; anything else, including a literal that
// fails to parse, is split on commas.
func ParseList(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return []string{}
	}
	if strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]") {
		if items, ok := parseLiteral(v[1 : len(v)-1]); ok {
			return items
		}
	}
	return splitComma(v)
}

func splitComma(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLiteral(s string) ([]string, bool) {
	out := []string{}
	i := 0
	for {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) {
			return out, true
		}

		var item string
		switch q := s[i]; q {
		case '\'', '"':
			var b strings.Builder
			i++
			closed := false
			for i < len(s) {
				c := s[i]
				if c == '\\' && i+1 < len(s) {
					b.WriteByte(unescape(s[i+1]))
					i += 2
					continue
				}
				if c == q {
					closed = true
					i++
					break
				}
				b.WriteByte(c)
				i++
			}
			if !closed {
				return nil, false
			}
			item = b.String()
		default:
			start := i
			for i < len(s) && s[i] != ',' {
				if s[i] == '\'' || s[i] == '"' || s[i] == '[' {
					return nil, false
				}
				i++
			}
			item = strings.TrimSpace(s[start:i])
		}
		out = append(out, item)

		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) {
			return out, true
		}
		if s[i] != ',' {
			return nil, false
		}
		i++
	}
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	default:
		return c
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
