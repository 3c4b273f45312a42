package catalog

import (
	"strings"

	"practicehub/internal/classify"
	"practicehub/pkg/models"
)

// Preset is a one-click filter bucket. PresetNone matches everything.
type Preset string

const (
	PresetNone  Preset = ""
	PresetShort Preset = "short"
	PresetEasy  Preset = "easy"
	PresetMid   Preset = "mid"
	PresetHard  Preset = "hard"
	PresetVideo Preset = "video"
)

// Presets lists the selectable buckets in chip order.
var Presets = []Preset{PresetShort, PresetEasy, PresetMid, PresetHard, PresetVideo}

// ParsePreset validates a preset coming from user input.
func ParsePreset(s string) (Preset, bool) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	if p == PresetNone {
		return PresetNone, true
	}
	for _, known := range Presets {
		if p == known {
			return p, true
		}
	}
	return PresetNone, false
}

// MatchesPreset reports whether p falls into the preset bucket.
func MatchesPreset(p models.NormalizedPractice, preset Preset) bool {
	switch preset {
	case PresetNone:
		return true
	case PresetShort:
		return p.Minutes != nil && classify.IsShort(*p.Minutes)
	case PresetEasy:
		return p.Level == models.LevelEasy
	case PresetMid:
		return p.Level == models.LevelMid
	case PresetHard:
		return p.Level == models.LevelHard
	case PresetVideo:
		return p.IsVideo
	default:
		return false
	}
}

// PresetStats counts the practices in each preset bucket.
type PresetStats struct {
	Short int `json:"short"`
	Easy  int `json:"easy"`
	Mid   int `json:"mid"`
	Hard  int `json:"hard"`
	Video int `json:"video"`
}

// Count returns the count for one bucket; PresetNone has no count.
func (s PresetStats) Count(p Preset) int {
	switch p {
	case PresetShort:
		return s.Short
	case PresetEasy:
		return s.Easy
	case PresetMid:
		return s.Mid
	case PresetHard:
		return s.Hard
	case PresetVideo:
		return s.Video
	default:
		return 0
	}
}

// ComputePresetStats counts every bucket in a single pass using the same
// predicates as MatchesPreset.
func ComputePresetStats(practices []models.NormalizedPractice) PresetStats {
	var s PresetStats
	for _, p := range practices {
		if MatchesPreset(p, PresetShort) {
			s.Short++
		}
		if MatchesPreset(p, PresetEasy) {
			s.Easy++
		}
		if MatchesPreset(p, PresetMid) {
			s.Mid++
		}
		if MatchesPreset(p, PresetHard) {
			s.Hard++
		}
		if MatchesPreset(p, PresetVideo) {
			s.Video++
		}
	}
	return s
}
