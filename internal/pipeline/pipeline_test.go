package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vlatan/video-scribe/internal/config"
	"github.com/vlatan/video-scribe/internal/models"
)

type fakeExtractor struct {
	meta        *models.VideoMetadata
	probeErr    error
	downloadErr error
	probed      int
	downloaded  int
	workDir     string // captured parent of the output prefix
	artifact    *models.AudioArtifact
}

func (f *fakeExtractor) Probe(ctx context.Context, ref models.VideoReference) (*models.VideoMetadata, error) {
	f.probed++
	return f.meta, f.probeErr
}

func (f *fakeExtractor) Download(
	ctx context.Context,
	ref models.VideoReference,
	outputPrefix string,
) (*models.AudioArtifact, error) {

	f.downloaded++
	f.workDir = filepath.Dir(outputPrefix)
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}

	// Materialize an artifact like a real strategy would
	path := outputPrefix + ".mp3"
	if err := os.WriteFile(path, []byte("audio-bytes"), 0o644); err != nil {
		return nil, err
	}

	f.artifact = &models.AudioArtifact{Path: path, Size: 11, Ext: "mp3"}
	return f.artifact, nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, artifact *models.AudioArtifact) (string, error) {
	return f.text, f.err
}

func testConfig() *config.Config {
	return &config.Config{
		MaxVideoDuration: 30 * time.Minute,
		CacheTimeout:     time.Hour,
	}
}

func TestRunSuccess(t *testing.T) {

	extractor := &fakeExtractor{meta: &models.VideoMetadata{Title: "A Talk", Duration: 120}}
	transcriber := &fakeTranscriber{text: "hello world"}
	svc := New(testConfig(), extractor, transcriber, nil)

	result, err := svc.Run(context.Background(), "https://youtu.be/abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Transcript != "hello world" {
		t.Errorf("got transcript %q, want %q", result.Transcript, "hello world")
	}

	if result.Video.Title != "A Talk" {
		t.Errorf("got video title %q, want %q", result.Video.Title, "A Talk")
	}

	// The temporary workspace must be gone after a successful run
	if _, err := os.Stat(extractor.workDir); !os.IsNotExist(err) {
		t.Errorf("temporary directory '%s' was not removed", extractor.workDir)
	}
}

func TestRunValidationShortCircuits(t *testing.T) {

	extractor := &fakeExtractor{}
	svc := New(testConfig(), extractor, &fakeTranscriber{}, nil)

	_, err := svc.Run(context.Background(), "not a url")
	perr := models.AsPipelineError(err)
	if perr == nil || perr.Kind != models.ValidationFailed {
		t.Fatalf("got %v, want ValidationFailed", err)
	}

	if extractor.probed != 0 || extractor.downloaded != 0 {
		t.Error("validation failure must not reach the extractor")
	}
}

func TestRunTooLongGate(t *testing.T) {

	extractor := &fakeExtractor{meta: &models.VideoMetadata{Title: "Long", Duration: 3600}}
	svc := New(testConfig(), extractor, &fakeTranscriber{}, nil)

	_, err := svc.Run(context.Background(), "https://youtu.be/abc123")
	perr := models.AsPipelineError(err)
	if perr == nil || perr.Kind != models.VideoTooLong {
		t.Fatalf("got %v, want VideoTooLong", err)
	}

	// The message reports the duration as MM:SS and the ceiling in minutes
	if !strings.Contains(perr.Message, "60:00") {
		t.Errorf("message %q does not report the duration as 60:00", perr.Message)
	}
	if !strings.Contains(perr.Message, "30 minutes") {
		t.Errorf("message %q does not report the 30 minutes ceiling", perr.Message)
	}

	if extractor.downloaded != 0 {
		t.Error("a too long video must never reach the download stage")
	}
}

func TestRunProbeFailurePassesThrough(t *testing.T) {

	extractor := &fakeExtractor{
		probeErr: models.NewError(models.VideoUnavailable, "This video is private."),
	}
	svc := New(testConfig(), extractor, &fakeTranscriber{}, nil)

	_, err := svc.Run(context.Background(), "https://youtu.be/abc123")
	perr := models.AsPipelineError(err)

	// The classified error crosses the boundary unchanged
	if perr.Kind != models.VideoUnavailable || perr.Message != "This video is private." {
		t.Errorf("got %s %q, want the probe error untouched", perr.Kind, perr.Message)
	}
}

func TestRunDownloadFailureCleansUp(t *testing.T) {

	extractor := &fakeExtractor{
		meta:        &models.VideoMetadata{Duration: 60},
		downloadErr: models.NewError(models.DownloadFailed, "Download failed: nope"),
	}
	svc := New(testConfig(), extractor, &fakeTranscriber{}, nil)

	_, err := svc.Run(context.Background(), "https://youtu.be/abc123")
	perr := models.AsPipelineError(err)
	if perr.Kind != models.DownloadFailed {
		t.Fatalf("got %v, want DownloadFailed", err)
	}

	if _, err := os.Stat(extractor.workDir); !os.IsNotExist(err) {
		t.Errorf("temporary directory '%s' was not removed after failure", extractor.workDir)
	}
}

func TestRunTranscriptionFailureCleansUp(t *testing.T) {

	extractor := &fakeExtractor{meta: &models.VideoMetadata{Duration: 60}}
	transcriber := &fakeTranscriber{
		err: models.NewError(models.TranscriptionFailed, "Transcription failed: noisy"),
	}
	svc := New(testConfig(), extractor, transcriber, nil)

	_, err := svc.Run(context.Background(), "https://youtu.be/abc123")
	perr := models.AsPipelineError(err)
	if perr.Kind != models.TranscriptionFailed {
		t.Fatalf("got %v, want TranscriptionFailed", err)
	}

	// Both the artifact and its directory must be gone
	if _, err := os.Stat(extractor.artifact.Path); !os.IsNotExist(err) {
		t.Error("audio artifact was not removed after failure")
	}
	if _, err := os.Stat(extractor.workDir); !os.IsNotExist(err) {
		t.Errorf("temporary directory '%s' was not removed after failure", extractor.workDir)
	}
}

func TestRunWrapsUnclassifiedErrors(t *testing.T) {

	extractor := &fakeExtractor{probeErr: os.ErrPermission}
	svc := New(testConfig(), extractor, &fakeTranscriber{}, nil)

	_, err := svc.Run(context.Background(), "https://youtu.be/abc123")
	perr := models.AsPipelineError(err)
	if perr.Kind != models.Unexpected {
		t.Errorf("got kind %s, want %s", perr.Kind, models.Unexpected)
	}
}
