// Package wizard stores the output of each VIOLETA wizard step as a GDSF
// section of the session's design document.
package wizard

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwebster45206/violeta/pkg/gdsf"
	"github.com/jwebster45206/violeta/pkg/storage"
)

// Section names, one per wizard step.
const (
	SectionAtomicUnit         = "atomic_unit"
	SectionAtomicSkills       = "atomic_skills"
	SectionTheme              = "theme"
	SectionSkillKernels       = "skill_kernels"
	SectionKernelMappings     = "kernel_mappings"
	SectionKernelThemeMapping = "kernel_theme_mapping"
)

const keyValue = "value"

// Store reads and writes the steps of one session. Saving a step replaces
// its section and leaves the rest of the document as it was.
type Store struct {
	storage storage.Storage
	session uuid.UUID
}

func NewStore(s storage.Storage, session uuid.UUID) *Store {
	return &Store{storage: s, session: session}
}

// Session returns the session the store is bound to.
func (s *Store) Session() uuid.UUID {
	return s.session
}

// Document returns the session's document, empty when nothing was saved yet.
func (s *Store) Document(ctx context.Context) (*gdsf.Result, error) {
	doc, err := s.storage.LoadDocument(ctx, s.session)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", s.session, err)
	}
	if doc == nil {
		return &gdsf.Result{}, nil
	}
	return doc, nil
}

func (s *Store) section(ctx context.Context, name string) (gdsf.Section, error) {
	doc, err := s.Document(ctx)
	if err != nil {
		return gdsf.Section{}, err
	}
	return doc.Section(name), nil
}

func (s *Store) saveSection(ctx context.Context, name string, body gdsf.Section) error {
	doc, err := s.Document(ctx)
	if err != nil {
		return err
	}
	if err := s.storage.SaveDocument(ctx, s.session, doc.WithSection(name, body)); err != nil {
		return fmt.Errorf("failed to save %s for session %s: %w", name, s.session, err)
	}
	return nil
}

func (s *Store) value(ctx context.Context, name string) (string, error) {
	sec, err := s.section(ctx, name)
	if err != nil {
		return "", err
	}
	return sec.Value(keyValue), nil
}

// SaveAtomicUnit stores the atomic unit text as given.
func (s *Store) SaveAtomicUnit(ctx context.Context, value string) error {
	return s.saveSection(ctx, SectionAtomicUnit, gdsf.NewSection(keyValue, value))
}

// AtomicUnit returns the saved atomic unit, or "" when none was saved.
func (s *Store) AtomicUnit(ctx context.Context) (string, error) {
	return s.value(ctx, SectionAtomicUnit)
}
