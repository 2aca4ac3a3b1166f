package gdsf

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode"
)

// Writer emits GDSF sections. Every value is written quoted, and a blank
// line follows each section.
type Writer struct {
	w *bufio.Writer
}

// NewWriter returns a Writer that writes to w. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteSection writes one [name] header followed by the keys of body.
// Nothing is written when the section or one of its values would not parse
// back unchanged.
func (w *Writer) WriteSection(name string, body Section) error {
	if err := checkSection(name, body); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("[" + name + "]\n")
	for _, k := range body.keys {
		b.WriteString(k + ` = "` + body.values[k] + "\"\n")
	}
	b.WriteString("\n")

	_, err := w.w.WriteString(b.String())
	return err
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Encode writes r so that parsing the output yields an equal result: meta
// first, then generic sections, then edges, then schemas.
func Encode(w io.Writer, r *Result) error {
	gw := NewWriter(w)
	if !r.meta.Empty() {
		if err := gw.WriteSection(SectionMeta, r.meta); err != nil {
			return err
		}
	}
	for _, name := range r.sectionNames {
		if err := gw.WriteSection(name, r.sections[name]); err != nil {
			return err
		}
	}
	for _, e := range r.edges {
		if err := gw.WriteSection(SectionEdge, e); err != nil {
			return err
		}
	}
	for _, s := range r.schemas {
		if err := gw.WriteSection(SectionSchema, s); err != nil {
			return err
		}
	}
	return gw.Flush()
}

// Marshal returns the encoding of r.
func Marshal(r *Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func checkSection(name string, body Section) error {
	if name == "" {
		return &EncodeError{Section: name, Reason: "empty section name"}
	}
	if strings.ContainsAny(name, "\r\n") {
		return &EncodeError{Section: name, Reason: "section name spans lines"}
	}
	for _, k := range body.keys {
		if reason := checkKey(k); reason != "" {
			return &EncodeError{Section: name, Key: k, Reason: reason}
		}
		if reason := checkValue(body.values[k]); reason != "" {
			return &EncodeError{Section: name, Key: k, Reason: reason}
		}
	}
	return nil
}

func checkKey(k string) string {
	switch {
	case k == "":
		return "empty key"
	case strings.TrimSpace(k) != k:
		return "key has surrounding whitespace"
	case strings.ContainsAny(k, "=\r\n"):
		return "key contains '=' or a line break"
	case strings.HasPrefix(k, "#"):
		return "key would read as a comment"
	case strings.HasPrefix(k, "["):
		return "key would read as a section header"
	}
	return ""
}

// checkValue reports why a value cannot be written as a quoted, possibly
// multi-line, value. The parser ends a multi-line value at the first line
// whose trimmed text ends in a quote, and trims the first line.
func checkValue(v string) string {
	if strings.Contains(v, "\r") {
		return "value contains a carriage return"
	}
	lines := strings.Split(v, "\n")
	if len(lines) == 1 {
		return ""
	}

	first := lines[0]
	switch {
	case strings.TrimSpace(first) == "":
		return "multi-line value starts with a blank line"
	case strings.TrimRightFunc(first, unicode.IsSpace) != first:
		return "first line of a multi-line value ends in whitespace"
	case strings.HasSuffix(first, `"`):
		return `first line of a multi-line value ends in '"'`
	}
	for _, l := range lines[1 : len(lines)-1] {
		if strings.HasSuffix(strings.TrimSpace(l), `"`) {
			return `inner line of a multi-line value ends in '"'`
		}
	}
	return ""
}
