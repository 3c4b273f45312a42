// Package catalog builds the in-memory practice index and answers filter
// and editorial queries against it. Everything here is pure: an Index is an
// immutable snapshot and every function is safe for concurrent callers.
package catalog

import (
	"strings"

	"practicehub/internal/classify"
	"practicehub/internal/strapi"
	"practicehub/pkg/models"
)

// MaxKPIs caps the extra metadata cards shown on a practice card.
const MaxKPIs = 4

// Index is the read-only snapshot handed to the presentation layer.
type Index struct {
	Cats          []models.Category           `json:"cats"`
	CatLabelByKey map[string]string           `json:"catLabelByKey"`
	CatCounts     map[string]int              `json:"catCounts"`
	Practices     []models.NormalizedPractice `json:"normalized"`
	PresetStats   PresetStats                 `json:"presetStats"`
	Editorial     Editorial                   `json:"editorial"`
}

// BuildIndex decodes, indexes and classifies the raw CMS lists. Input order
// of practices is preserved in the result.
func BuildIndex(practices, categories []any, opts Options) *Index {
	decoded := make([]strapi.Practice, 0, len(practices))
	for _, raw := range practices {
		if p, ok := strapi.DecodePractice(raw); ok {
			decoded = append(decoded, p)
		}
	}

	ci := buildCategories(strapi.DecodeCategories(categories), decoded, opts)

	normalized := make([]models.NormalizedPractice, 0, len(decoded))
	for _, p := range decoded {
		normalized = append(normalized, IndexPractice(p))
	}

	counts := make(map[string]int, len(ci.Cats))
	for _, c := range ci.Cats {
		counts[c.Key()] = 0
	}
	for _, p := range normalized {
		for _, k := range p.CatKeys {
			counts[k]++
		}
	}

	return &Index{
		Cats:          ci.Cats,
		CatLabelByKey: ci.CatLabelByKey,
		CatCounts:     counts,
		Practices:     normalized,
		PresetStats:   ComputePresetStats(normalized),
		Editorial:     SelectEditorial(normalized),
	}
}

// IndexPractice turns one decoded practice into its indexed form.
func IndexPractice(p strapi.Practice) models.NormalizedPractice {
	icons, used := classify.ResolveIconCards(p.Cards)

	np := models.NormalizedPractice{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description,
		Searchable:  searchText(p),
		CatKeys:     categoryKeys(p.Categories),
		Cards:       append([]models.MetadataCard(nil), p.Cards...),
		IconCards:   icons,
		KPIs:        kpis(p.Cards, used),
		Thumb:       ExtractThumb(p.Poster, p.Media),
		Media:       append([]models.Media(nil), p.Media...),
		IsVideo:     classify.AnyVideo(p.Media),
		Level:       models.LevelUnknown,
		Featured:    p.Featured,
	}
	if icons.Clock != nil {
		if n, ok := classify.ParseDurationMinutes(icons.Clock.Value); ok {
			np.Minutes = &n
		}
	}
	if icons.Difficult != nil {
		np.Level = classify.ClassifyDifficulty(icons.Difficult.Value)
	}
	return np
}

func searchText(p strapi.Practice) string {
	parts := make([]string, 0, 2+len(p.Cards))
	for _, s := range []string{p.Name, p.Description} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	for _, c := range p.Cards {
		if s := strings.TrimSpace(c.Label + " " + c.Value); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func categoryKeys(cats []models.Category) []string {
	keys := make([]string, 0, len(cats))
	seen := make(map[string]bool, len(cats))
	for _, c := range cats {
		k := c.Key()
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}

func kpis(cards []models.MetadataCard, used map[int]bool) []models.MetadataCard {
	out := make([]models.MetadataCard, 0, MaxKPIs)
	for i, c := range cards {
		if len(out) == MaxKPIs {
			break
		}
		if used[i] || (c.Label == "" && c.Value == "") {
			continue
		}
		out = append(out, c)
	}
	return out
}
