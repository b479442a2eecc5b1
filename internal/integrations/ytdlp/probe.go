package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/vlatan/video-scribe/internal/models"
)

// Known provider error phrases mapped to friendly messages.
// This is a best effort classifier; yt-dlp reports availability
// problems as free text, so we pattern match on it.
var unavailablePhrases = []struct {
	phrase  string
	message string
}{
	{"video unavailable", "This video is unavailable."},
	{"private video", "This video is private."},
	{"sign in to confirm your age", "This video is age-restricted."},
	{"video has been removed", "This video has been removed."},
}

// Probe queries the extraction tool for video metadata only,
// no media transfer. Used as a fast fail gate before
// any download bytes move.
func (s *Service) Probe(ctx context.Context, ref models.VideoReference) (*models.VideoMetadata, error) {

	if s.ytdlpPath == "" {
		return nil, models.NewError(
			models.Unexpected,
			"The yt-dlp tool is not installed on the server.",
		)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.ProbeTimeout)
	defer cancel()

	args := []string{
		"--dump-single-json",
		"--skip-download",
		"--no-playlist",
		"--no-warnings",
		"--socket-timeout", fmt.Sprintf("%.0f", s.config.SocketTimeout.Seconds()),
		"--user-agent", userAgent,
		"--geo-bypass",
		ref.URL,
	}

	result, err := s.runner.Run(ctx, s.ytdlpPath, args...)
	if err != nil {
		log.Printf("Probe failed for video '%s' (exit %d): %s", ref.ID, result.ExitCode, result.Stderr)
		return nil, classifyProviderError(result.Stderr, err)
	}

	var meta struct {
		Title     string  `json:"title"`
		Duration  float64 `json:"duration"`
		Uploader  string  `json:"uploader"`
		ViewCount int64   `json:"view_count"`
	}

	output := strings.TrimSpace(result.Stdout)
	if output == "" {
		return nil, models.NewError(
			models.VideoUnavailable,
			"Could not fetch any information about this video.",
		)
	}

	if err := json.Unmarshal([]byte(output), &meta); err != nil {
		return nil, models.Errorf(
			models.Unexpected,
			"failed to parse video metadata: %w", err,
		)
	}

	return &models.VideoMetadata{
		Title:     meta.Title,
		Duration:  int(meta.Duration),
		Uploader:  meta.Uploader,
		ViewCount: meta.ViewCount,
	}, nil
}

// Classify the extractor error text into the pipeline vocabulary.
// Matched phrases get a friendly message, unmatched extractor errors
// still count as unavailable with the raw message appended,
// anything else is unexpected.
func classifyProviderError(stderr string, err error) *models.PipelineError {

	lowered := strings.ToLower(stderr)
	for _, known := range unavailablePhrases {
		if strings.Contains(lowered, known.phrase) {
			return models.NewError(models.VideoUnavailable, known.message)
		}
	}

	if msg := extractorMessage(stderr); msg != "" {
		return models.NewError(
			models.VideoUnavailable,
			"This video cannot be accessed: "+msg,
		)
	}

	return models.Errorf(models.Unexpected, "video probe failed: %w", err)
}

// Pull the first ERROR line out of yt-dlp's stderr
func extractorMessage(stderr string) string {
	for line := range strings.Lines(stderr) {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "ERROR:"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}
