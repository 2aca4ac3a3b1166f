package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jwebster45206/violeta/pkg/gdsf"
)

// Payload is a step value that is normally JSON. Values saved before the
// step produced JSON come back as Raw text.
type Payload struct {
	JSON json.RawMessage
	Raw  string
}

// IsJSON reports whether the stored value decoded as JSON.
func (p Payload) IsJSON() bool {
	return len(p.JSON) > 0
}

// Decode unmarshals the JSON form into v.
func (p Payload) Decode(v any) error {
	if !p.IsJSON() {
		return fmt.Errorf("payload is not JSON: %q", p.Raw)
	}
	return json.Unmarshal(p.JSON, v)
}

// String returns the JSON text, or the raw text for non-JSON payloads.
func (p Payload) String() string {
	if p.IsJSON() {
		return string(p.JSON)
	}
	return p.Raw
}

// encodePayload turns v into the single-line JSON stored in a section. Text
// that already is JSON is compacted; other text becomes a JSON string.
func encodePayload(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return encodeText(t)
	case []byte:
		return encodeText(string(t))
	case json.RawMessage:
		return encodeText(string(t))
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}
	return string(data), nil
}

func encodeText(text string) (string, error) {
	if json.Valid([]byte(text)) {
		var buf bytes.Buffer
		if err := json.Compact(&buf, []byte(text)); err != nil {
			return "", fmt.Errorf("failed to compact payload: %w", err)
		}
		return buf.String(), nil
	}
	data, err := json.Marshal(text)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}
	return string(data), nil
}

// decodePayload reads a stored value. With outerQuotes set, a value that is
// not JSON is retried with its first and last characters removed, which
// recovers values that were quoted twice.
func decodePayload(raw string, outerQuotes bool) Payload {
	if raw == "" {
		return Payload{}
	}
	if json.Valid([]byte(raw)) {
		return Payload{JSON: json.RawMessage(raw)}
	}
	if outerQuotes && len(raw) >= 2 {
		inner := raw[1 : len(raw)-1]
		if strings.TrimSpace(inner) != "" && json.Valid([]byte(inner)) {
			return Payload{JSON: json.RawMessage(inner)}
		}
	}
	return Payload{Raw: raw}
}

func (s *Store) savePayload(ctx context.Context, name string, v any) error {
	value, err := encodePayload(v)
	if err != nil {
		return err
	}
	return s.saveSection(ctx, name, gdsf.NewSection(keyValue, value))
}

func (s *Store) payload(ctx context.Context, name string, outerQuotes bool) (Payload, error) {
	raw, err := s.value(ctx, name)
	if err != nil {
		return Payload{}, err
	}
	return decodePayload(raw, outerQuotes), nil
}

// SaveSkillKernels stores the skill kernels. JSON text is stored as JSON,
// anything else as a JSON string.
func (s *Store) SaveSkillKernels(ctx context.Context, kernels string) error {
	return s.savePayload(ctx, SectionSkillKernels, kernels)
}

// SkillKernels returns the stored skill kernels.
func (s *Store) SkillKernels(ctx context.Context) (Payload, error) {
	return s.payload(ctx, SectionSkillKernels, true)
}

// SaveKernelMappings stores the kernel mapping table. mappings may be JSON
// text or any value encoding/json can marshal.
func (s *Store) SaveKernelMappings(ctx context.Context, mappings any) error {
	return s.savePayload(ctx, SectionKernelMappings, mappings)
}

// KernelMappings returns the stored kernel mapping table.
func (s *Store) KernelMappings(ctx context.Context) (Payload, error) {
	return s.payload(ctx, SectionKernelMappings, false)
}

// SaveKernelThemeMapping stores the kernel-to-theme table.
func (s *Store) SaveKernelThemeMapping(ctx context.Context, info any) error {
	return s.savePayload(ctx, SectionKernelThemeMapping, info)
}

// KernelThemeMapping returns the stored kernel-to-theme table.
func (s *Store) KernelThemeMapping(ctx context.Context) (Payload, error) {
	return s.payload(ctx, SectionKernelThemeMapping, false)
}
