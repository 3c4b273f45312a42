package classify

import "practicehub/pkg/models"

// CardSlot names one of the well-known metadata card slots.
type CardSlot string

const (
	SlotClock     CardSlot = "clock"
	SlotDifficult CardSlot = "difficult"
	SlotType      CardSlot = "type"
)

// Slots lists the card slots in resolution order.
var Slots = []CardSlot{SlotClock, SlotDifficult, SlotType}

type slotMatcher struct {
	icons    []string // exact icon tokens
	labels   []string // exact label tokens
	keywords []string // substring fallback on icon or label
}

// tokens are stored folded
var slotMatchers = map[CardSlot]slotMatcher{
	SlotClock: {
		icons:    []string{"clock", "time", "timer", "duration"},
		labels:   []string{"idotartam", "ido", "hossz", "duration", "time", "length", "dauer", "zeit"},
		keywords: []string{"clock", "time", "duration", "idotartam", "ido", "perc", "minute", "dauer", "zeit"},
	},
	SlotDifficult: {
		icons:    []string{"difficult", "difficulty", "level", "gauge"},
		labels:   []string{"nehezseg", "szint", "difficulty", "level", "schwierigkeit", "niveau"},
		keywords: []string{"difficult", "nehez", "szint", "level", "schwier", "niveau"},
	},
	SlotType: {
		icons:    []string{"type", "category", "tag"},
		labels:   []string{"tipus", "fajta", "jelleg", "type", "kind", "typ", "art"},
		keywords: []string{"type", "tipus", "fajta", "jelleg", "typ"},
	},
}

// ResolveCard returns the index of the card filling slot, or -1.
//
// Resolution runs in three passes over the cards in array order: exact icon
// token, exact label token, then keyword containment in icon or label. The
// first card matching the earliest pass wins.
func ResolveCard(cards []models.MetadataCard, slot CardSlot) int {
	return resolveCard(cards, slot, nil)
}

// resolveCard is ResolveCard ignoring the indexes in taken.
func resolveCard(cards []models.MetadataCard, slot CardSlot, taken map[int]bool) int {
	sm, ok := slotMatchers[slot]
	if !ok {
		return -1
	}
	icons := make([]string, len(cards))
	labels := make([]string, len(cards))
	for i, c := range cards {
		icons[i] = Fold(c.Icon)
		labels[i] = Fold(c.Label)
	}
	for i := range cards {
		if taken[i] {
			continue
		}
		if equalsAny(icons[i], sm.icons) {
			return i
		}
	}
	for i := range cards {
		if taken[i] {
			continue
		}
		if equalsAny(labels[i], sm.labels) {
			return i
		}
	}
	for i := range cards {
		if taken[i] {
			continue
		}
		if containsAny(icons[i], sm.keywords) || containsAny(labels[i], sm.keywords) {
			return i
		}
	}
	return -1
}

// ResolveIconCards resolves every slot and returns the cards plus the
// indexes that were claimed, so callers can exclude them from KPIs. Slots
// claim in Slots order and a card fills at most one slot.
func ResolveIconCards(cards []models.MetadataCard) (models.IconCards, map[int]bool) {
	var out models.IconCards
	used := make(map[int]bool, len(Slots))
	for _, slot := range Slots {
		i := resolveCard(cards, slot, used)
		if i < 0 {
			continue
		}
		used[i] = true
		c := cards[i]
		switch slot {
		case SlotClock:
			out.Clock = &c
		case SlotDifficult:
			out.Difficult = &c
		case SlotType:
			out.Type = &c
		}
	}
	return out, used
}
