package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// SkillCategory is a named group of atomic skills.
type SkillCategory struct {
	Name   string
	Skills []string
}

// AtomicSkills is either a flat list of skills or an ordered list of
// categories. It encodes as a JSON array or a JSON object respectively.
// Raw holds a stored value that was not JSON.
type AtomicSkills struct {
	List       []string
	Categories []SkillCategory
	Raw        string
}

// Categorized reports whether the skills are grouped into categories.
func (a AtomicSkills) Categorized() bool {
	return a.Categories != nil
}

// Empty reports whether no skills are held.
func (a AtomicSkills) Empty() bool {
	return len(a.List) == 0 && len(a.Categories) == 0 && a.Raw == ""
}

// ParseAtomicSkills reads skills typed one per line. Without blank lines
// every line is a skill. With blank lines, the first line of each
// blank-separated block names a category and the following lines are its
// skills.
func ParseAtomicSkills(text string) AtomicSkills {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return AtomicSkills{List: []string{}}
	}

	hasBlank := false
	for _, l := range lines {
		if l == "" {
			hasBlank = true
			break
		}
	}
	if !hasBlank {
		return AtomicSkills{List: lines}
	}

	var out AtomicSkills
	current := -1
	for _, l := range lines {
		if l == "" {
			current = -1
			continue
		}
		if current < 0 {
			current = out.category(l)
			continue
		}
		out.Categories[current].Skills = append(out.Categories[current].Skills, l)
	}
	return out
}

// category starts the named category and returns its index. A repeated name
// starts over in its original position.
func (a *AtomicSkills) category(name string) int {
	for i, c := range a.Categories {
		if c.Name == name {
			a.Categories[i].Skills = []string{}
			return i
		}
	}
	a.Categories = append(a.Categories, SkillCategory{Name: name, Skills: []string{}})
	return len(a.Categories) - 1
}

func (a AtomicSkills) MarshalJSON() ([]byte, error) {
	if !a.Categorized() {
		list := a.List
		if list == nil {
			list = []string{}
		}
		return json.Marshal(list)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range a.Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		skills := c.Skills
		if skills == nil {
			skills = []string{}
		}
		list, err := json.Marshal(skills)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(list)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts an array of strings or an object of string arrays,
// keeping object key order.
func (a *AtomicSkills) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		*a = AtomicSkills{List: list}
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("atomic skills: expected array or object, got %v", tok)
	}

	out := AtomicSkills{Categories: []SkillCategory{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var skills []string
		if err := dec.Decode(&skills); err != nil {
			return fmt.Errorf("atomic skills: category %q: %w", name, err)
		}
		out.Categories = append(out.Categories, SkillCategory{Name: name, Skills: skills})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*a = out
	return nil
}

// SaveAtomicSkills parses the typed skills and stores them as JSON.
func (s *Store) SaveAtomicSkills(ctx context.Context, text string) error {
	return s.savePayload(ctx, SectionAtomicSkills, ParseAtomicSkills(text))
}

// AtomicSkills returns the stored skills. A stored value that is not a skill
// list or category object is returned in Raw.
func (s *Store) AtomicSkills(ctx context.Context) (AtomicSkills, error) {
	raw, err := s.value(ctx, SectionAtomicSkills)
	if err != nil {
		return AtomicSkills{}, err
	}
	if raw == "" {
		return AtomicSkills{}, nil
	}

	var skills AtomicSkills
	if err := json.Unmarshal([]byte(raw), &skills); err != nil {
		return AtomicSkills{Raw: raw}, nil
	}
	return skills, nil
}
