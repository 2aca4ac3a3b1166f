package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/violeta/pkg/gdsf"
	"github.com/jwebster45206/violeta/pkg/storage"
)

const documentExt = ".gdsf"

// FileStorage keeps each session's document in <dataDir>/<uuid>.gdsf.
type FileStorage struct {
	dataDir string
	logger  *slog.Logger
}

// Ensure FileStorage implements Storage interface
var _ storage.Storage = (*FileStorage)(nil)

// NewFileStorage creates a filesystem storage rooted at dataDir
func NewFileStorage(dataDir string, logger *slog.Logger) *FileStorage {
	if dataDir == "" {
		dataDir = "./data"
	}
	return &FileStorage{
		dataDir: dataDir,
		logger:  logger,
	}
}

func (f *FileStorage) path(id uuid.UUID) string {
	return filepath.Join(f.dataDir, id.String()+documentExt)
}

func (f *FileStorage) Ping(ctx context.Context) error {
	if err := os.MkdirAll(f.dataDir, 0o755); err != nil {
		return fmt.Errorf("data directory unavailable: %w", err)
	}
	return nil
}

func (f *FileStorage) Close() error {
	return nil
}

func (f *FileStorage) LoadDocument(ctx context.Context, id uuid.UUID) (*gdsf.Result, error) {
	path := f.path(id)
	doc, err := gdsf.ParseFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			f.logger.Debug("Document not found", "session", id, "path", path)
			return nil, nil
		}
		f.logger.Error("Failed to load document", "session", id, "path", path, "error", err)
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return doc, nil
}

// SaveDocument writes to a temporary file and renames it over the old
// document so readers never see a partial write.
func (f *FileStorage) SaveDocument(ctx context.Context, id uuid.UUID, doc *gdsf.Result) error {
	data, err := gdsf.Marshal(doc)
	if err != nil {
		f.logger.Error("Failed to encode document", "session", id, "error", err)
		return fmt.Errorf("failed to encode document: %w", err)
	}

	if err := os.MkdirAll(f.dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(f.dataDir, id.String()+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path(id)); err != nil {
		os.Remove(tmp.Name())
		f.logger.Error("Failed to save document", "session", id, "error", err)
		return fmt.Errorf("failed to save document: %w", err)
	}

	f.logger.Debug("Document saved", "session", id, "bytes", len(data))
	return nil
}

func (f *FileStorage) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	if err := os.Remove(f.path(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (f *FileStorage) ListSessions(ctx context.Context) ([]uuid.UUID, error) {
	entries, err := os.ReadDir(f.dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []uuid.UUID{}, nil
		}
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	ids := []uuid.UUID{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != documentExt {
			continue
		}
		id, err := uuid.Parse(strings.TrimSuffix(entry.Name(), documentExt))
		if err != nil {
			f.logger.Warn("Skipping non-session document", "file", entry.Name())
			continue
		}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}
