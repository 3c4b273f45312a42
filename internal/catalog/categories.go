package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"practicehub/internal/strapi"
	"practicehub/pkg/models"
)

// Options tune index builds. The zero value sorts with Hungarian collation.
type Options struct {
	Collation language.Tag
}

// DefaultOptions returns the options used by the site.
func DefaultOptions() Options {
	return Options{Collation: language.Hungarian}
}

func (o Options) collation() language.Tag {
	if o.Collation == language.Und {
		return language.Hungarian
	}
	return o.Collation
}

// CategoryIndex is the merged, sorted category catalog.
type CategoryIndex struct {
	Cats          []models.Category `json:"cats"`
	CatLabelByKey map[string]string `json:"catLabelByKey"`
}

// BuildCategories merges the explicit category list with every category
// referenced by a practice.
func BuildCategories(categories, practices []any, opts Options) CategoryIndex {
	decoded := make([]strapi.Practice, 0, len(practices))
	for _, raw := range practices {
		if p, ok := strapi.DecodePractice(raw); ok {
			decoded = append(decoded, p)
		}
	}
	return buildCategories(strapi.DecodeCategories(categories), decoded, opts)
}

func buildCategories(explicit []models.Category, practices []strapi.Practice, opts Options) CategoryIndex {
	byKey := make(map[string]models.Category, len(explicit))
	pick(byKey, explicit)

	discovered := make(map[string]models.Category)
	for _, p := range practices {
		pick(discovered, p.Categories)
	}
	// discovered categories never replace explicit ones
	for key, c := range discovered {
		if _, ok := byKey[key]; !ok {
			byKey[key] = c
		}
	}

	cats := make([]models.Category, 0, len(byKey))
	for _, c := range byKey {
		cats = append(cats, c)
	}
	sortCategories(cats, opts.collation())

	labels := make(map[string]string, len(cats))
	for _, c := range cats {
		labels[c.Key()] = c.Name
	}
	return CategoryIndex{Cats: cats, CatLabelByKey: labels}
}

// pick adds categories to dst keyed by Key(). When two share a key the
// smaller (name, id) stays, so input order never changes the outcome.
func pick(dst map[string]models.Category, list []models.Category) {
	for _, c := range list {
		key := c.Key()
		if key == "" || c.Name == "" {
			continue
		}
		existing, ok := dst[key]
		if !ok || less(c, existing) {
			dst[key] = c
		}
	}
}

func less(a, b models.Category) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}

func sortCategories(cats []models.Category, tag language.Tag) {
	// collators keep scratch buffers and are not shared across calls
	col := collate.New(tag)
	sort.SliceStable(cats, func(i, j int) bool {
		if c := col.CompareString(cats[i].Name, cats[j].Name); c != 0 {
			return c < 0
		}
		if cats[i].Key() != cats[j].Key() {
			return cats[i].Key() < cats[j].Key()
		}
		return cats[i].ID < cats[j].ID
	})
}
