// Package strapi converts loosely shaped Strapi v4/v5 records into fixed
// internal types. Nothing outside this package looks at the wire shape.
//
// Malformed input never produces an error: it degrades to empty values.
package strapi

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is one decoded CMS object (JSON or YAML mapping).
type Record = map[string]any

// Normalize returns the record's "attributes" when the record is wrapped
// (Strapi v4), otherwise the record itself (Strapi v5). The envelope id and
// documentId are carried into the result. Non-objects normalize to nil.
func Normalize(x any) Record {
	m := asRecord(x)
	if m == nil {
		return nil
	}
	attrs := asRecord(m["attributes"])
	if attrs == nil {
		return m
	}
	out := make(Record, len(attrs)+2)
	for k, v := range attrs {
		out[k] = v
	}
	for _, k := range []string{"id", "documentId"} {
		if _, ok := out[k]; ok {
			continue
		}
		if v, ok := m[k]; ok {
			out[k] = v
		}
	}
	return out
}

// UnwrapRelation accepts {data: T|T[]} or a bare T|T[] and returns the
// normalized items. Anything else yields an empty slice.
func UnwrapRelation(rel any) []Record {
	if m := asRecord(rel); m != nil {
		if data, ok := m["data"]; ok {
			return normalizeMany(data)
		}
	}
	return normalizeMany(rel)
}

// UnwrapSingleMedia returns the first related media item when it has a
// non-empty url.
func UnwrapSingleMedia(rel any) (Record, bool) {
	items := UnwrapRelation(rel)
	if len(items) == 0 {
		return nil, false
	}
	if String(items[0], "url") == "" {
		return nil, false
	}
	return items[0], true
}

func normalizeMany(v any) []Record {
	switch t := v.(type) {
	case nil:
		return []Record{}
	case []any:
		out := make([]Record, 0, len(t))
		for _, item := range t {
			if n := Normalize(item); n != nil {
				out = append(out, n)
			}
		}
		return out
	case []Record:
		out := make([]Record, 0, len(t))
		for _, item := range t {
			if n := Normalize(item); n != nil {
				out = append(out, n)
			}
		}
		return out
	default:
		if n := Normalize(t); n != nil {
			return []Record{n}
		}
		return []Record{}
	}
}

func asRecord(x any) Record {
	switch t := x.(type) {
	case map[string]any:
		return t
	case map[any]any:
		// older YAML decoders produce interface keys
		out := make(Record, len(t))
		for k, v := range t {
			out[fmt.Sprint(k)] = v
		}
		return out
	default:
		return nil
	}
}

// String returns the first non-empty scalar found under keys, trimmed.
// Numbers are rendered without exponent so numeric ids survive.
func String(m Record, keys ...string) string {
	for _, k := range keys {
		if s := strings.TrimSpace(scalar(m[k])); s != "" {
			return s
		}
	}
	return ""
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return scalar(float64(t))
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// Truthy mirrors the loose truthiness CMS editors rely on for flag fields.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "", "0", "false", "no", "off", "null":
			return false
		}
		return true
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	default:
		return asRecord(v) != nil
	}
}
