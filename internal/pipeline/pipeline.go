package pipeline

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/vlatan/video-scribe/internal/config"
	"github.com/vlatan/video-scribe/internal/drivers/redis"
	"github.com/vlatan/video-scribe/internal/models"
	"github.com/vlatan/video-scribe/internal/utils"
)

// Extractor resolves a video reference into metadata
// and into a local audio file
type Extractor interface {
	Probe(ctx context.Context, ref models.VideoReference) (*models.VideoMetadata, error)
	Download(ctx context.Context, ref models.VideoReference, outputPrefix string) (*models.AudioArtifact, error)
}

// Transcriber turns a local audio file into text
type Transcriber interface {
	Transcribe(ctx context.Context, artifact *models.AudioArtifact) (string, error)
}

// Service runs one URL through probe, download and transcription.
// Each call is an independent sequential pipeline instance with
// its own temporary workspace.
type Service struct {
	config      *config.Config
	extractor   Extractor
	transcriber Transcriber
	rdb         redis.Service // nil when caching is disabled
}

// Outcome of a successful pipeline run
type Result struct {
	Transcript string
	Video      *models.VideoMetadata
}

// Produce new pipeline service
func New(
	cfg *config.Config,
	extractor Extractor,
	transcriber Transcriber,
	rdb redis.Service,
) *Service {
	return &Service{
		config:      cfg,
		extractor:   extractor,
		transcriber: transcriber,
		rdb:         rdb,
	}
}

// Run sequences validation, probe, download and transcription
// for one video URL. Every error leaving here is a classified
// *models.PipelineError; the temporary workspace and the audio
// artifact are removed on every exit path.
func (s *Service) Run(ctx context.Context, rawURL string) (*Result, error) {

	ref, err := ParseVideoURL(rawURL)
	if err != nil {
		return nil, models.AsPipelineError(err)
	}

	log.Printf("Probing video '%s'", ref.ID)
	video, err := s.probe(ctx, ref)
	if err != nil {
		log.Printf("Probe stage failed for video '%s': %v", ref.ID, err)
		return nil, models.AsPipelineError(err)
	}

	// The duration gate runs before any download bytes move
	maxSeconds := int(s.config.MaxVideoDuration.Seconds())
	if video.Duration > maxSeconds {
		minutes := maxSeconds / 60
		return nil, models.Errorf(
			models.VideoTooLong,
			"Video is too long (%s). Maximum allowed duration is %d %s.",
			utils.FormatDuration(video.Duration),
			minutes, utils.Plural(minutes, "minute"),
		)
	}

	// Private workspace for this request, removed on every
	// way out together with the downloaded artifact
	tempDir, err := os.MkdirTemp("", "video-scribe-*")
	if err != nil {
		return nil, models.Errorf(models.Unexpected, "failed to create a temporary directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			log.Printf("Failed to remove temporary directory '%s': %v", tempDir, err)
		}
	}()

	log.Printf("Downloading audio for video '%s'", ref.ID)
	artifact, err := s.extractor.Download(ctx, ref, filepath.Join(tempDir, "audio"))
	if err != nil {
		log.Printf("Download stage failed for video '%s': %v", ref.ID, err)
		return nil, models.AsPipelineError(err)
	}

	log.Printf("Transcribing video '%s' (%d bytes of audio)", ref.ID, artifact.Size)
	transcript, err := s.transcriber.Transcribe(ctx, artifact)
	if err != nil {
		log.Printf("Transcription stage failed for video '%s': %v", ref.ID, err)
		return nil, models.AsPipelineError(err)
	}

	return &Result{Transcript: transcript, Video: video}, nil
}

// Probe the video metadata, through the cache when configured.
// Only successful probes are cached; cache trouble degrades
// to a direct probe and is logged inside the cache helper.
func (s *Service) probe(ctx context.Context, ref models.VideoReference) (*models.VideoMetadata, error) {

	var video models.VideoMetadata
	err := redis.Cached(
		ctx, s.rdb,
		"probe:"+ref.ID,
		s.config.CacheTimeout,
		&video,
		func() (models.VideoMetadata, error) {
			meta, err := s.extractor.Probe(ctx, ref)
			if err != nil {
				return models.VideoMetadata{}, err
			}
			return *meta, nil
		},
	)

	if err != nil {
		return nil, err
	}

	return &video, nil
}
