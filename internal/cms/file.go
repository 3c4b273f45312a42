package cms

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileSource reads a local snapshot. The file is YAML (JSON also parses)
// with top-level "practices" and "categories" lists in any CMS shape.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: strings.TrimSpace(path)}
}

func (f *FileSource) Name() string { return "file" }

type fileSnapshot struct {
	Practices  []any `yaml:"practices"`
	Categories []any `yaml:"categories"`
}

func (f *FileSource) Fetch(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	if f == nil || f.Path == "" {
		return Snapshot{}, fmt.Errorf("file source: %w", ErrNotFound)
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Snapshot{}, fmt.Errorf("file source %s: %w", f.Path, ErrNotFound)
		}
		return Snapshot{}, fmt.Errorf("file source: read %s: %w", f.Path, err)
	}
	snap, err := ParseSnapshot(data)
	if err != nil {
		return Snapshot{}, fmt.Errorf("file source %s: %w", f.Path, err)
	}
	snap.Source = f.Name()
	if info, statErr := os.Stat(f.Path); statErr == nil {
		snap.FetchedAt = info.ModTime()
	} else {
		snap.FetchedAt = time.Now()
	}
	return snap, nil
}

// ParseSnapshot decodes snapshot file contents.
func ParseSnapshot(data []byte) (Snapshot, error) {
	var raw fileSnapshot
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("parse snapshot: %w", err)
	}
	if raw.Practices == nil {
		raw.Practices = []any{}
	}
	if raw.Categories == nil {
		raw.Categories = []any{}
	}
	return Snapshot{Practices: raw.Practices, Categories: raw.Categories}, nil
}
