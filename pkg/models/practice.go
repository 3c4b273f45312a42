package models

import "strings"

// Category is the normalized form of a practice category coming from the CMS.
type Category struct {
	ID   string `json:"id"`   // CMS id (numeric ids are rendered in base 10)
	Name string `json:"name"` // display name
	Slug string `json:"slug"` // optional; preferred identity when present
}

// Key is the deduplication identity of a category: slug when present, else name.
func (c Category) Key() string {
	if s := strings.TrimSpace(c.Slug); s != "" {
		return s
	}
	return strings.TrimSpace(c.Name)
}

// Media is a single uploaded asset (image or video) referenced by a practice.
type Media struct {
	URL  string `json:"url"`
	Mime string `json:"mime,omitempty"`
	Alt  string `json:"alt,omitempty"`
}

// MetadataCard is one label/value pair shown on a practice card.
type MetadataCard struct {
	Icon  string `json:"icon,omitempty"`  // "clock", "difficult", "type", ...
	Label string `json:"label,omitempty"` // localized label, e.g. "Időtartam"
	Value string `json:"value,omitempty"` // free text, e.g. "20 perc"
}

// IconCards holds the metadata cards resolved for the well-known slots.
type IconCards struct {
	Clock     *MetadataCard `json:"clock,omitempty"`
	Difficult *MetadataCard `json:"difficult,omitempty"`
	Type      *MetadataCard `json:"type,omitempty"`
}

// ThumbKind tells the presentation layer what kind of thumbnail it got.
type ThumbKind string

const (
	ThumbImage ThumbKind = "image"
	ThumbNone  ThumbKind = "none"
)

// Thumb is the resolved card thumbnail. It never points at a video.
type Thumb struct {
	Kind ThumbKind `json:"kind"`
	URL  string    `json:"url"`
}

// Level is the coarse difficulty bucket derived from the difficulty card.
type Level string

const (
	LevelEasy    Level = "easy"
	LevelMid     Level = "mid"
	LevelHard    Level = "hard"
	LevelUnknown Level = "unknown"
)

// NormalizedPractice is the internal, fixed-shape form of a practice record.
// It is built once per index build and never mutated afterwards.
type NormalizedPractice struct {
	ID          string         `json:"id"`
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Searchable  string         `json:"searchable"` // lower-cased name + description + card text
	CatKeys     []string       `json:"catKeys"`
	Cards       []MetadataCard `json:"cards,omitempty"` // original order, for the detail drawer
	IconCards   IconCards      `json:"iconCards"`
	KPIs        []MetadataCard `json:"kpis"` // at most 4 unclassified cards
	Thumb       Thumb          `json:"thumb"`
	Media       []Media        `json:"media,omitempty"`
	IsVideo     bool           `json:"isVideo"`
	Minutes     *int           `json:"minutes,omitempty"` // parsed from the clock card
	Level       Level          `json:"level"`
	Featured    bool           `json:"featured"`
}

// HasCategory reports whether the practice belongs to the category key.
func (p NormalizedPractice) HasCategory(key string) bool {
	for _, k := range p.CatKeys {
		if k == key {
			return true
		}
	}
	return false
}
