package models

import (
	"html/template"

	"github.com/vlatan/video-scribe/internal/config"
)

// Immutable reference to a source video,
// produced by URL validation
type VideoReference struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

// Video metadata reported by the extraction tool,
// used for the duration gate and for display
type VideoMetadata struct {
	Title     string `json:"title,omitempty"`
	Duration  int    `json:"duration,omitempty"` // seconds
	Uploader  string `json:"uploader,omitempty"`
	ViewCount int64  `json:"view_count,omitempty"`
}

// Local audio file produced by a download strategy
type AudioArtifact struct {
	Path string
	Size int64
	Ext  string
}

// Data struct to pass to templates
type TemplateData struct {
	Config     *config.Config
	Title      string
	YouTubeURL string
	Transcript string
	Video      *VideoMetadata
	Error      string
	CSRFField  template.HTML
}

// Successful API response
type TranscribeResponse struct {
	Success    bool           `json:"success"`
	Transcript string         `json:"transcript"`
	VideoInfo  *VideoMetadata `json:"video_info,omitempty"`
}

// Error API response
type JSONErrorData struct {
	Error string `json:"error"`
}
