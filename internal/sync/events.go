package sync

import "time"

const EventCatalogRefreshed = "catalog.refreshed"

// CatalogEvent tells subscribers that the catalog snapshot changed and the
// page should refetch it.
type CatalogEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Fingerprint string    `json:"fingerprint"`
	Source      string    `json:"source"`
	Practices   int       `json:"practices"`
	Categories  int       `json:"categories"`
	At          time.Time `json:"at"`
}
