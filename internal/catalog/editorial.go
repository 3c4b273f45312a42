package catalog

import "practicehub/pkg/models"

// Slot points at one practice of the index by position.
type Slot struct {
	Index int    `json:"index"`
	Slug  string `json:"slug"`
}

// Editorial is the default layout shown when no filter is active.
type Editorial struct {
	Hero      *Slot  `json:"hero"`
	Wide      *Slot  `json:"wide"`
	DailyPick *Slot  `json:"dailyPick"`
	Tiles     []Slot `json:"tiles"`
	Rest      []Slot `json:"rest"`
}

// TileSlots is the number of tile slots after the daily pick.
const TileSlots = 2

// SelectEditorial picks the hero (first featured practice, else the first
// one), the wide slot (first other practice) and then fills the daily pick
// and tile slots from the remaining practices in order.
func SelectEditorial(practices []models.NormalizedPractice) Editorial {
	ed := Editorial{Tiles: []Slot{}, Rest: []Slot{}}
	if len(practices) == 0 {
		return ed
	}

	hero := 0
	for i, p := range practices {
		if p.Featured {
			hero = i
			break
		}
	}
	ed.Hero = slotAt(practices, hero)

	pool := make([]int, 0, len(practices)-1)
	for i := range practices {
		if i != hero {
			pool = append(pool, i)
		}
	}

	if len(pool) > 0 {
		ed.Wide = slotAt(practices, pool[0])
		pool = pool[1:]
	}
	if len(pool) > 0 {
		ed.DailyPick = slotAt(practices, pool[0])
		pool = pool[1:]
	}
	for len(pool) > 0 && len(ed.Tiles) < TileSlots {
		ed.Tiles = append(ed.Tiles, *slotAt(practices, pool[0]))
		pool = pool[1:]
	}
	for _, i := range pool {
		ed.Rest = append(ed.Rest, *slotAt(practices, i))
	}
	return ed
}

func slotAt(practices []models.NormalizedPractice, i int) *Slot {
	return &Slot{Index: i, Slug: practices[i].Slug}
}

// Resolve returns the practice a slot points at.
func (idx *Index) Resolve(s *Slot) (models.NormalizedPractice, bool) {
	if idx == nil || s == nil || s.Index < 0 || s.Index >= len(idx.Practices) {
		return models.NormalizedPractice{}, false
	}
	return idx.Practices[s.Index], true
}

// BySlug finds a practice by slug.
func (idx *Index) BySlug(slug string) (models.NormalizedPractice, bool) {
	if idx == nil || slug == "" {
		return models.NormalizedPractice{}, false
	}
	for _, p := range idx.Practices {
		if p.Slug == slug {
			return p, true
		}
	}
	return models.NormalizedPractice{}, false
}
