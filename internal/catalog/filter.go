package catalog

import (
	"strings"

	"practicehub/pkg/models"
)

// FilterState is the whole user input of the catalog page. At most one
// category and one preset are active at a time.
type FilterState struct {
	Query    string `json:"query"`
	Category string `json:"activeCategoryKey"`
	Preset   Preset `json:"activePreset"`
}

// IsEmpty is true when no query, category or preset is set.
func (s FilterState) IsEmpty() bool {
	return strings.TrimSpace(s.Query) == "" && s.Category == "" && s.Preset == PresetNone
}

// WithQuery replaces the search text.
func (s FilterState) WithQuery(q string) FilterState {
	s.Query = q
	return s
}

// ToggleCategory selects key, or clears it when it is already active.
func (s FilterState) ToggleCategory(key string) FilterState {
	if s.Category == key {
		s.Category = ""
	} else {
		s.Category = key
	}
	return s
}

// TogglePreset selects p, or clears it when it is already active.
func (s FilterState) TogglePreset(p Preset) FilterState {
	if s.Preset == p {
		s.Preset = PresetNone
	} else {
		s.Preset = p
	}
	return s
}

// Clear resets every criterion.
func (s FilterState) Clear() FilterState {
	return FilterState{}
}

// Filter returns the practices matching every active criterion, in index
// order. The query is a case-insensitive substring match.
func Filter(idx *Index, state FilterState) []models.NormalizedPractice {
	if idx == nil {
		return []models.NormalizedPractice{}
	}
	q := strings.ToLower(strings.TrimSpace(state.Query))
	out := make([]models.NormalizedPractice, 0, len(idx.Practices))
	for _, p := range idx.Practices {
		if state.Category != "" && !p.HasCategory(state.Category) {
			continue
		}
		if q != "" && !strings.Contains(p.Searchable, q) {
			continue
		}
		if !MatchesPreset(p, state.Preset) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ViewResult is what the catalog page renders for one FilterState.
type ViewResult struct {
	State     FilterState                 `json:"state"`
	Items     []models.NormalizedPractice `json:"items"`
	Total     int                         `json:"total"`
	HasMore   bool                        `json:"hasMore"`
	Empty     bool                        `json:"empty"`
	Editorial *Editorial                  `json:"editorial,omitempty"`
}

// View filters the index and applies "load more" paging: only the first
// limit items are returned (limit <= 0 returns all). The editorial layout
// is attached only when the state is empty.
func View(idx *Index, state FilterState, limit int) ViewResult {
	items := Filter(idx, state)
	res := ViewResult{
		State: state,
		Total: len(items),
		Empty: len(items) == 0,
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
		res.HasMore = true
	}
	res.Items = items
	if state.IsEmpty() && idx != nil {
		ed := idx.Editorial
		res.Editorial = &ed
	}
	return res
}
