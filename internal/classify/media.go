package classify

import (
	"regexp"
	"strings"

	"practicehub/pkg/models"
)

var (
	videoExt = regexp.MustCompile(`(?i)\.(mp4|webm|mov|m4v)(?:[?#]|$)`)
	imageExt = regexp.MustCompile(`(?i)\.(jpe?g|png|gif|webp|avif|svg)(?:[?#]|$)`)
)

// IsVideoMedia is true when the MIME type is video/* or the URL has a video extension.
func IsVideoMedia(m models.Media) bool {
	if strings.HasPrefix(strings.ToLower(m.Mime), "video/") {
		return true
	}
	return videoExt.MatchString(m.URL)
}

// IsImageMedia is true for image/* MIME types, or for an image extension
// when no MIME type is known. Videos are never images.
func IsImageMedia(m models.Media) bool {
	if m.URL == "" || IsVideoMedia(m) {
		return false
	}
	mime := strings.ToLower(m.Mime)
	if mime != "" {
		return strings.HasPrefix(mime, "image/")
	}
	return imageExt.MatchString(m.URL)
}

// AnyVideo reports whether any of the media items is a video.
func AnyVideo(media []models.Media) bool {
	for _, m := range media {
		if IsVideoMedia(m) {
			return true
		}
	}
	return false
}
