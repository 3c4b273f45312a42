package catalog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	practices, categories := fixture()
	a, ok := Fingerprint(practices, categories)
	assert.True(t, ok)
	b, _ := Fingerprint(practices, categories)
	assert.Equal(t, a, b)

	c, _ := Fingerprint(practices[:2], categories)
	assert.NotEqual(t, a, c)
}

func TestMemoRebuildsOnlyOnChange(t *testing.T) {
	practices, categories := fixture()
	m := NewMemo(DefaultOptions())

	first, rebuilt := m.Get(practices, categories)
	assert.True(t, rebuilt)

	second, rebuilt := m.Get(practices, categories)
	assert.False(t, rebuilt)
	assert.Same(t, first, second)
	assert.Equal(t, 1, m.Builds())

	third, rebuilt := m.Get(practices[:1], categories)
	assert.True(t, rebuilt)
	assert.NotSame(t, first, third)
	assert.Len(t, third.Practices, 1)
	assert.Equal(t, 2, m.Builds())
}

func TestMemoInterfaceKeyedRecords(t *testing.T) {
	practices := []any{
		map[any]any{
			"id": 1, "name": "Nyakkörzés", "slug": "nyakkorzes",
			"categories": []any{map[any]any{"id": 2, "name": "Nyak", "slug": "nyak"}},
		},
	}

	fp, ok := Fingerprint(practices, nil)
	assert.True(t, ok)
	same, _ := Fingerprint([]any{map[string]any{
		"id": 1, "name": "Nyakkörzés", "slug": "nyakkorzes",
		"categories": []any{map[string]any{"id": 2, "name": "Nyak", "slug": "nyak"}},
	}}, nil)
	assert.Equal(t, fp, same)

	m := NewMemo(DefaultOptions())
	first, rebuilt := m.Get(practices, nil)
	assert.True(t, rebuilt)
	require.Len(t, first.Practices, 1)
	assert.Equal(t, []string{"nyak"}, first.Practices[0].CatKeys)

	second, rebuilt := m.Get(practices, nil)
	assert.False(t, rebuilt)
	assert.Same(t, first, second)
	assert.Equal(t, 1, m.Builds())
}

func TestMemoConcurrent(t *testing.T) {
	practices, categories := fixture()
	m := NewMemo(DefaultOptions())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			idx, _ := m.Get(practices, categories)
			assert.Len(t, idx.Practices, 3)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, m.Builds())
}
