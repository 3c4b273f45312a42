package cms

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshotYAML = `
categories:
  - id: 1
    attributes:
      name: Derék
      slug: derek
practices:
  - id: 11
    attributes:
      name: Nyakkörzés
      slug: nyakkorzes
  - id: 12
    name: Macska-tehén
    slug: macska-teve
`

func TestParseSnapshot(t *testing.T) {
	snap, err := ParseSnapshot([]byte(snapshotYAML))
	require.NoError(t, err)
	assert.Len(t, snap.Practices, 2)
	assert.Len(t, snap.Categories, 1)

	snap, err = ParseSnapshot([]byte(`{"practices": [{"id": 1}]}`))
	require.NoError(t, err)
	assert.Len(t, snap.Practices, 1)
	assert.NotNil(t, snap.Categories)

	_, err = ParseSnapshot([]byte("practices: [unterminated"))
	assert.Error(t, err)
}

func TestFileSourceFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "practices.yaml")
	require.NoError(t, os.WriteFile(path, []byte(snapshotYAML), 0o644))

	snap, err := NewFileSource(path).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "file", snap.Source)
	assert.Len(t, snap.Practices, 2)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestFileSourceMissing(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.yaml")).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = NewFileSource("").Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositorySnapshotParses(t *testing.T) {
	snap, err := NewFileSource("../../data/practices.yaml").Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Practices, 5)
	assert.Len(t, snap.Categories, 5)
}
