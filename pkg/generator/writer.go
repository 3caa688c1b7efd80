package generator

import (
	"fmt"
	"strconv"
	"strings"
)

// jsWriter renders a document as JS object literal text. Keys are never
// quoted (the output is JS, not JSON); string values always use double
// quotes, which the single-quote post-processing may rewrite later.
type jsWriter struct {
	sb     strings.Builder
	pretty bool
	depth  int
}

func renderDocument(doc *document, pretty bool) (string, error) {
	w := &jsWriter{pretty: pretty}
	if err := w.writeDocument(doc); err != nil {
		return "", err
	}
	return w.sb.String(), nil
}

func (w *jsWriter) writeDocument(doc *document) error {
	if doc.empty() {
		w.sb.WriteString("{}")
		return nil
	}

	w.sb.WriteByte('{')
	w.depth++
	for i, p := range doc.pairs {
		if i > 0 {
			w.sb.WriteByte(',')
		}
		w.newline()
		w.indent()
		w.sb.WriteString(p.key)
		w.sb.WriteByte(':')
		if w.pretty {
			w.sb.WriteByte(' ')
		}
		if err := w.writeValue(p.value); err != nil {
			return err
		}
	}
	w.depth--
	w.newline()
	w.indent()
	w.sb.WriteByte('}')
	return nil
}

func (w *jsWriter) writeList(values []any) error {
	if len(values) == 0 {
		w.sb.WriteString("[]")
		return nil
	}

	w.sb.WriteByte('[')
	w.depth++
	for i, v := range values {
		if i > 0 {
			w.sb.WriteByte(',')
		}
		w.newline()
		w.indent()
		if err := w.writeValue(v); err != nil {
			return err
		}
	}
	w.depth--
	w.newline()
	w.indent()
	w.sb.WriteByte(']')
	return nil
}

func (w *jsWriter) writeValue(value any) error {
	switch v := value.(type) {
	case nil:
		w.sb.WriteString("null")
	case raw:
		w.sb.WriteString(string(v))
	case string:
		w.writeString(v)
	case bool:
		w.sb.WriteString(strconv.FormatBool(v))
	case int:
		w.sb.WriteString(strconv.Itoa(v))
	case int64:
		w.sb.WriteString(strconv.FormatInt(v, 10))
	case float64:
		w.sb.WriteString(formatNumber(v))
	case *document:
		return w.writeDocument(v)
	case []any:
		return w.writeList(v)
	default:
		return fmt.Errorf("generator: unencodable value of type %T", value)
	}
	return nil
}

func (w *jsWriter) writeString(s string) {
	w.sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			w.sb.WriteString(`\"`)
		case '\\':
			w.sb.WriteString(`\\`)
		case '\n':
			w.sb.WriteString(`\n`)
		case '\r':
			w.sb.WriteString(`\r`)
		case '\t':
			w.sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&w.sb, `\u%04x`, r)
			} else {
				w.sb.WriteRune(r)
			}
		}
	}
	w.sb.WriteByte('"')
}

func (w *jsWriter) newline() {
	if w.pretty {
		w.sb.WriteByte('\n')
	}
}

func (w *jsWriter) indent() {
	if !w.pretty {
		return
	}
	for i := 0; i < w.depth; i++ {
		w.sb.WriteString("  ")
	}
}

// formatNumber renders a float without a trailing ".0" for whole values, so
// integral thresholds read as integers in the output.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
