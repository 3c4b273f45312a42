package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the raw input lists. Equal content gives an equal
// fingerprint; ok is false when the input cannot be encoded.
func Fingerprint(practices, categories []any) (uint64, bool) {
	d := xxhash.New()
	enc := json.NewEncoder(d)
	if err := enc.Encode(encodable(practices)); err != nil {
		return 0, false
	}
	if err := enc.Encode(encodable(categories)); err != nil {
		return 0, false
	}
	return d.Sum64(), true
}

// encodable rewrites interface-keyed maps (older YAML decoders) into
// string-keyed ones, the same way the record normalizer reads them.
func encodable(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = encodable(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = encodable(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = encodable(val)
		}
		return out
	default:
		return v
	}
}

// Memo caches the last built Index and rebuilds it only when the input
// fingerprint changes.
type Memo struct {
	opts Options

	mu          sync.Mutex
	fingerprint uint64
	idx         *Index
	builds      int
}

// NewMemo creates an empty memo building with opts.
func NewMemo(opts Options) *Memo {
	return &Memo{opts: opts}
}

// Get returns the index for the inputs, building it when needed. The
// second result reports whether a rebuild happened.
func (m *Memo) Get(practices, categories []any) (*Index, bool) {
	fp, ok := Fingerprint(practices, categories)

	m.mu.Lock()
	defer m.mu.Unlock()
	if ok && m.idx != nil && fp == m.fingerprint {
		return m.idx, false
	}
	m.idx = BuildIndex(practices, categories, m.opts)
	m.fingerprint = fp
	m.builds++
	return m.idx, true
}

// Fingerprint returns the fingerprint of the cached index.
func (m *Memo) Fingerprint() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fingerprint
}

// Builds returns how many times the index was rebuilt.
func (m *Memo) Builds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.builds
}
