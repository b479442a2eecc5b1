package ytdlp

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/vlatan/video-scribe/internal/models"
	"github.com/vlatan/video-scribe/internal/utils"
)

// One download attempt profile. Strategies are tried strictly
// in declared order, best fidelity first.
type strategy struct {
	label   string
	format  string
	quality string // target mp3 bitrate, empty for tool default
}

var strategies = []strategy{
	{"best audio", "bestaudio/best", "192"},
	{"worst audio", "worstaudio/worst", "128"},
	{"mp4 fallback", "mp4", ""},
}

// Extensions to look for at the output prefix after a download call.
// The tool picks the container, we take the first file that exists.
var candidateExts = []string{"mp3", "m4a", "webm", "mp4", "wav", "opus"}

// Download tries each strategy in order until one produces
// a local audio file within the configured size bounds.
// The first valid artifact wins; if every strategy falls through
// the last underlying error is reported as a download failure.
func (s *Service) Download(
	ctx context.Context,
	ref models.VideoReference,
	outputPrefix string,
) (*models.AudioArtifact, error) {

	if s.ytdlpPath == "" || s.ffmpegPath == "" {
		return nil, models.NewError(
			models.Unexpected,
			"The yt-dlp or ffmpeg tool is not installed on the server.",
		)
	}

	var lastErr error
	for _, st := range strategies {

		artifact, err := s.attempt(ctx, ref, st, outputPrefix)
		if err == nil {
			log.Printf(
				"Downloaded video '%s' with strategy '%s': %s (%d bytes)",
				ref.ID, st.label, artifact.Path, artifact.Size,
			)
			return artifact, nil
		}

		log.Printf("Strategy '%s' failed for video '%s': %v", st.label, ref.ID, err)
		lastErr = err
	}

	return nil, models.Errorf(
		models.DownloadFailed,
		"Download failed: all strategies exhausted; last error: %w", lastErr,
	)
}

// Run one strategy and inspect its output
func (s *Service) attempt(
	ctx context.Context,
	ref models.VideoReference,
	st strategy,
	outputPrefix string,
) (*models.AudioArtifact, error) {

	ctx, cancel := context.WithTimeout(ctx, s.config.StrategyTimeout)
	defer cancel()

	args := []string{
		"--format", st.format,
		"--extract-audio",
		"--audio-format", "mp3",
		"--output", outputPrefix + ".%(ext)s",
		"--ffmpeg-location", s.ffmpegPath,
		"--socket-timeout", fmt.Sprintf("%.0f", s.config.SocketTimeout.Seconds()),
		"--retries", fmt.Sprintf("%d", s.config.DownloadRetries),
		"--user-agent", userAgent,
		"--geo-bypass",
		"--no-playlist",
		"--no-warnings",
		ref.URL,
	}

	if st.quality != "" {
		args = append(args, "--audio-quality", st.quality)
	}

	if result, err := s.runner.Run(ctx, s.ytdlpPath, args...); err != nil {
		return nil, fmt.Errorf(
			"yt-dlp exited with code %d: %w", result.ExitCode, err,
		)
	}

	return s.findArtifact(outputPrefix)
}

// Look for the produced file at the output prefix
// and enforce the size bounds on it
func (s *Service) findArtifact(outputPrefix string) (*models.AudioArtifact, error) {

	for _, ext := range candidateExts {

		path := outputPrefix + "." + ext
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		size := info.Size()
		if size > s.config.MaxAudioSize {
			s.remove(path)
			return nil, fmt.Errorf(
				"audio file too large: %d bytes (max %d)",
				size, s.config.MaxAudioSize,
			)
		}

		if size < s.config.MinAudioSize {
			s.remove(path)
			return nil, fmt.Errorf(
				"audio file likely empty: %d %s",
				size, utils.Plural(int(size), "byte"),
			)
		}

		return &models.AudioArtifact{Path: path, Size: size, Ext: ext}, nil
	}

	return nil, fmt.Errorf("no audio file produced at '%s'", outputPrefix)
}

// Delete a rejected file so the next strategy starts clean
func (s *Service) remove(path string) {
	if err := os.Remove(path); err != nil {
		log.Printf("Failed to remove rejected file '%s': %v", path, err)
	}
}
