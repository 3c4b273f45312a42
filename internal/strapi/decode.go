package strapi

import (
	"strings"

	"practicehub/pkg/models"
)

// FeaturedFields are the alternate flag names editors have used for "featured".
var FeaturedFields = []string{"featured", "is_featured", "highlighted", "isHighlighted"}

// Practice is a practice record decoded from the wire but not yet indexed.
type Practice struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Cards       []models.MetadataCard
	Categories  []models.Category
	Media       []models.Media
	Poster      *models.Media
	Featured    bool
}

// DecodeCategory converts one category record. Categories without a name
// are dropped.
func DecodeCategory(x any) (models.Category, bool) {
	m := Normalize(x)
	if m == nil {
		return models.Category{}, false
	}
	return categoryFromRecord(m)
}

func categoryFromRecord(m Record) (models.Category, bool) {
	c := models.Category{
		ID:   String(m, "id", "documentId"),
		Name: String(m, "name", "title"),
		Slug: String(m, "slug"),
	}
	if c.Name == "" {
		return models.Category{}, false
	}
	return c, true
}

// DecodeCategories converts a category list, dropping malformed entries.
func DecodeCategories(list []any) []models.Category {
	out := make([]models.Category, 0, len(list))
	for _, item := range list {
		if c, ok := DecodeCategory(item); ok {
			out = append(out, c)
		}
	}
	return out
}

// DecodeMedia converts an already normalized media record.
func DecodeMedia(m Record) models.Media {
	return models.Media{
		URL:  String(m, "url"),
		Mime: String(m, "mime", "mimeType"),
		Alt:  String(m, "alternativeText", "alt", "caption"),
	}
}

// DecodePractice converts one practice record. It reports false only when
// the record is not an object at all.
func DecodePractice(x any) (Practice, bool) {
	m := Normalize(x)
	if m == nil {
		return Practice{}, false
	}

	p := Practice{
		ID:          String(m, "id", "documentId"),
		Name:        String(m, "name", "title"),
		Slug:        String(m, "slug"),
		Description: strings.TrimSpace(plainText(m["description"])),
	}

	for _, card := range UnwrapRelation(m["practice_card"]) {
		p.Cards = append(p.Cards, models.MetadataCard{
			Icon:  String(card, "icon"),
			Label: String(card, "label", "title"),
			Value: String(card, "value", "text"),
		})
	}

	rels := UnwrapRelation(m["categories"])
	if len(rels) == 0 {
		rels = UnwrapRelation(m["category"])
	}
	for _, rel := range rels {
		if c, ok := categoryFromRecord(rel); ok {
			p.Categories = append(p.Categories, c)
		}
	}

	for _, item := range UnwrapRelation(m["media"]) {
		if md := DecodeMedia(item); md.URL != "" {
			p.Media = append(p.Media, md)
		}
	}

	poster, ok := UnwrapSingleMedia(m["video_poster"])
	if !ok {
		poster, ok = UnwrapSingleMedia(m["videoPoster"])
	}
	if ok {
		md := DecodeMedia(poster)
		p.Poster = &md
	}

	for _, f := range FeaturedFields {
		if Truthy(m[f]) {
			p.Featured = true
			break
		}
	}
	return p, true
}

// plainText flattens a description that may be a plain string or a
// Strapi v5 "blocks" rich text tree.
func plainText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := strings.TrimSpace(plainText(item)); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		m := asRecord(v)
		if m == nil {
			return ""
		}
		if s, ok := m["text"].(string); ok {
			return s
		}
		return plainText(m["children"])
	}
}
