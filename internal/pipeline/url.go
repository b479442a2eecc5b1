package pipeline

import (
	"net/url"
	"strings"

	"github.com/vlatan/video-scribe/internal/models"
)

// ParseVideoURL classifies a raw input string as a YouTube video
// reference and extracts the video id. Pure function, three outcomes:
// accept, reject empty input, reject malformed input.
func ParseVideoURL(raw string) (models.VideoReference, error) {

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.VideoReference{}, models.NewError(
			models.ValidationFailed,
			"Please enter a YouTube URL",
		)
	}

	if id := extractVideoID(raw); id != "" {
		return models.VideoReference{URL: raw, ID: id}, nil
	}

	return models.VideoReference{}, models.NewError(
		models.ValidationFailed,
		"Please enter a valid YouTube URL",
	)
}

// Pull the video id out of the recognized URL shapes:
// watch URLs carry it in the 'v' query param, short links
// in the last path segment, embeds right after /embed/.
func extractVideoID(raw string) string {

	if !strings.Contains(raw, "youtube.com") && !strings.Contains(raw, "youtu.be") {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")

	switch {
	case host == "youtu.be":
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		return segments[len(segments)-1]

	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		if strings.HasPrefix(u.Path, "/embed/") {
			return strings.Split(strings.TrimPrefix(u.Path, "/embed/"), "/")[0]
		}
		return u.Query().Get("v")
	}

	return ""
}
