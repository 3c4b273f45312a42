package catalog

import (
	"practicehub/internal/classify"
	"practicehub/pkg/models"
)

// ExtractThumb prefers the explicit poster image, then the first image in
// the media list. Videos are never used as thumbnails.
func ExtractThumb(poster *models.Media, media []models.Media) models.Thumb {
	if poster != nil && poster.URL != "" && !classify.IsVideoMedia(*poster) {
		return models.Thumb{Kind: models.ThumbImage, URL: poster.URL}
	}
	for _, m := range media {
		if classify.IsImageMedia(m) {
			return models.Thumb{Kind: models.ThumbImage, URL: m.URL}
		}
	}
	return models.Thumb{Kind: models.ThumbNone}
}
