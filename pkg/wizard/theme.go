package wizard

import (
	"context"
	"strings"

	"github.com/jwebster45206/violeta/pkg/gdsf"
)

const (
	keyName        = "name"
	keyDescription = "description"
)

// Theme is the game theme chosen in the wizard.
type Theme struct {
	Name        string
	Description string
}

// Text joins name and description back into a single block.
func (t Theme) Text() string {
	if t.Description == "" {
		return t.Name
	}
	return t.Name + "\n" + t.Description
}

// SplitTheme takes the first non-blank line as the name and the remaining
// non-blank lines as the description.
func SplitTheme(text string) Theme {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return Theme{}
	}
	return Theme{
		Name:        lines[0],
		Description: strings.TrimSpace(strings.Join(lines[1:], "\n")),
	}
}

// SaveTheme stores the theme text split into name and description.
func (s *Store) SaveTheme(ctx context.Context, text string) error {
	t := SplitTheme(text)
	return s.saveSection(ctx, SectionTheme, gdsf.NewSection(keyName, t.Name, keyDescription, t.Description))
}

// Theme returns the stored theme. Documents that kept the theme as a single
// value are split on read.
func (s *Store) Theme(ctx context.Context) (Theme, error) {
	sec, err := s.section(ctx, SectionTheme)
	if err != nil {
		return Theme{}, err
	}
	if sec.Has(keyName) {
		return Theme{Name: sec.Value(keyName), Description: sec.Value(keyDescription)}, nil
	}
	return SplitTheme(sec.Value(keyValue)), nil
}

// ThemeText returns the stored theme as one block of text for display.
func (s *Store) ThemeText(ctx context.Context) (string, error) {
	sec, err := s.section(ctx, SectionTheme)
	if err != nil {
		return "", err
	}
	if sec.Has(keyName) {
		return Theme{Name: sec.Value(keyName), Description: sec.Value(keyDescription)}.Text(), nil
	}
	return sec.Value(keyValue), nil
}
