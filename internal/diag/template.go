package diag

import (
	"fmt"
	"strings"
)

// templateArity scans a message template for positional placeholders of
// the form {0}, {1}, ... and returns the required argument count
// (highest index + 1). "{{" and "}}" escape literal braces.
func templateArity(template string) (int, error) {
	arity := 0
	i := 0
	for i < len(template) {
		c := template[i]
		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				i += 2
				continue
			}
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				return 0, fmt.Errorf("%w: unclosed placeholder at offset %d", ErrMalformedTemplate, i)
			}
			idx, err := parsePlaceholderIndex(template[i+1 : i+end])
			if err != nil {
				return 0, err
			}
			if idx+1 > arity {
				arity = idx + 1
			}
			i += end + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				i += 2
				continue
			}
			return 0, fmt.Errorf("%w: stray '}' at offset %d", ErrMalformedTemplate, i)
		default:
			i++
		}
	}
	return arity, nil
}

func parsePlaceholderIndex(body string) (int, error) {
	if body == "" {
		return 0, fmt.Errorf("%w: empty placeholder", ErrMalformedTemplate)
	}
	idx := 0
	for i := 0; i < len(body); i++ {
		if body[i] < '0' || body[i] > '9' {
			return 0, fmt.Errorf("%w: non-numeric placeholder {%s}", ErrMalformedTemplate, body)
		}
		idx = idx*10 + int(body[i]-'0')
		if idx > 255 {
			return 0, fmt.Errorf("%w: placeholder index {%s} too large", ErrMalformedTemplate, body)
		}
	}
	return idx, nil
}

// expandTemplate substitutes args into a template already validated by
// templateArity. Argument values are rendered with %v.
func expandTemplate(template string, args []any) string {
	var b strings.Builder
	b.Grow(len(template) + len(args)*8)

	i := 0
	for i < len(template) {
		c := template[i]
		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(template[i:], '}')
			idx, _ := parsePlaceholderIndex(template[i+1 : i+end])
			fmt.Fprintf(&b, "%v", args[idx])
			i += end + 1
		case '}':
			// validated: always an escaped "}}"
			b.WriteByte('}')
			i += 2
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}
