package gdsf

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// ParseFile reads and parses the GDSF file at path. Open and read failures
// are returned as *IOError; schema rule violations as *ValidationError.
func ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	res, err := parse(f)
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		ioErr.Path = path
	}
	return res, err
}

// ParseString parses GDSF text held in memory.
func ParseString(s string) (*Result, error) {
	return parse(strings.NewReader(s))
}

// Parse parses GDSF text read from r until EOF.
func Parse(r io.Reader) (*Result, error) {
	return parse(r)
}

// parser holds the state of a single pass over the input.
type parser struct {
	res     *Result
	seenIDs map[string]struct{}
	line    int

	section string
	current Section

	continuing bool
	pendingKey string
	pending    []string
}

func parse(r io.Reader) (*Result, error) {
	p := &parser{
		res:     &Result{},
		seenIDs: make(map[string]struct{}),
	}

	br := bufio.NewReader(r)
	for {
		raw, err := br.ReadString('\n')
		if len(raw) > 0 {
			if perr := p.feed(trimNewline(raw)); perr != nil {
				return nil, perr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &IOError{Err: err}
		}
	}

	if p.continuing {
		p.finishContinuation()
	}
	if err := p.closeSection(); err != nil {
		return nil, err
	}
	return p.res, nil
}

// feed processes one physical line without its line terminator.
func (p *parser) feed(raw string) error {
	p.line++
	stripped := strings.TrimSpace(raw)

	if p.continuing {
		p.pending = append(p.pending, raw)
		if strings.HasSuffix(stripped, `"`) {
			p.finishContinuation()
		}
		return nil
	}

	if stripped == "" || strings.HasPrefix(stripped, "#") {
		return nil
	}

	if strings.HasPrefix(stripped, "[") && strings.HasSuffix(stripped, "]") {
		if err := p.closeSection(); err != nil {
			return err
		}
		p.section = stripped[1 : len(stripped)-1]
		p.current = Section{}
		return nil
	}

	key, value, ok := strings.Cut(raw, "=")
	if !ok {
		// lines without '=' are tolerated and dropped
		return nil
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	if strings.HasPrefix(value, `"`) && !strings.HasSuffix(value, `"`) {
		p.continuing = true
		p.pendingKey = key
		p.pending = []string{value}
		return nil
	}
	// one quote pair only, so quoted JSON string literals keep their own quotes
	p.current.Set(key, unquote(value))
	return nil
}

func (p *parser) finishContinuation() {
	value := strings.TrimSpace(strings.Join(p.pending, "\n"))
	p.current.Set(p.pendingKey, unquote(value))
	p.continuing = false
	p.pendingKey = ""
	p.pending = nil
}

// closeSection records the body of the section that is currently open.
// Empty bodies, and bodies collected before any named header, are dropped.
func (p *parser) closeSection() error {
	body := p.current
	p.current = Section{}
	if body.Empty() {
		return nil
	}

	switch p.section {
	case SectionSchema:
		if err := validateSchema(body, p.line, p.seenIDs); err != nil {
			return err
		}
		p.res.schemas = append(p.res.schemas, body)
	case SectionEdge:
		p.res.edges = append(p.res.edges, body)
	case SectionMeta:
		p.res.meta.merge(body)
	case "":
	default:
		p.res.putSection(p.section, body)
	}
	return nil
}

// unquote removes one pair of surrounding double quotes. A lone quote
// opens and closes an empty value.
func unquote(s string) string {
	if s == `"` {
		return ""
	}
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

func trimNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
