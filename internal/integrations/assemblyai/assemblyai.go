package assemblyai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/vlatan/video-scribe/internal/config"
	"github.com/vlatan/video-scribe/internal/models"
)

// Terminal and transient job statuses reported by the service
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// Response body caps. The upload and submit responses are tiny,
// but a completed transcript carries per-word timing and can run
// well past a megabyte on long audio.
const (
	maxControlBody    = 1 << 20
	maxTranscriptBody = 64 << 20
)

// Remote transcription job, mutated only by polling reads
type Job struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Text   string `json:"text"`
	Error  string `json:"error"`
}

// Service wraps the AssemblyAI speech-to-text HTTP API
type Service struct {
	config  *config.Config
	client  *http.Client
	baseURL string
}

// Produce new AssemblyAI service
func New(cfg *config.Config) *Service {
	return &Service{
		config:  cfg,
		client:  &http.Client{},
		baseURL: cfg.AssemblyAIBaseURL,
	}
}

// Check if the API credential is present
func (s *Service) Configured() bool {
	return s.config.AssemblyAIAPIKey != ""
}

// Upload streams the artifact bytes to the upload endpoint
// and returns an opaque upload reference
func (s *Service) Upload(ctx context.Context, path string) (string, error) {

	file, err := os.Open(path)
	if err != nil {
		return "", models.Errorf(
			models.TranscriptionFailed,
			"Transcription failed: cannot open audio file: %w", err,
		)
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(ctx, s.config.UploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v2/upload", file)
	if err != nil {
		return "", models.Errorf(models.TranscriptionFailed, "Transcription failed: %w", err)
	}
	req.Header.Set("Authorization", s.config.AssemblyAIAPIKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	var response struct {
		UploadURL string `json:"upload_url"`
	}

	if err := s.do(req, &response, maxControlBody); err != nil {
		return "", models.Errorf(models.TranscriptionFailed, "Upload failed: %w", err)
	}

	if response.UploadURL == "" {
		return "", models.NewError(
			models.TranscriptionFailed,
			"Upload failed: the service returned no upload reference.",
		)
	}

	return response.UploadURL, nil
}

// Submit requests a transcription job against an upload reference
// and returns the remote job id
func (s *Service) Submit(ctx context.Context, uploadURL string) (string, error) {

	body, err := json.Marshal(map[string]any{
		"audio_url":     uploadURL,
		"language_code": s.config.LanguageCode,
		"punctuate":     true,
		"format_text":   true,
	})
	if err != nil {
		return "", models.Errorf(models.TranscriptionFailed, "Transcription failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.PollTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		s.baseURL+"/v2/transcript",
		bytes.NewReader(body),
	)
	if err != nil {
		return "", models.Errorf(models.TranscriptionFailed, "Transcription failed: %w", err)
	}
	req.Header.Set("Authorization", s.config.AssemblyAIAPIKey)
	req.Header.Set("Content-Type", "application/json")

	var job Job
	if err := s.do(req, &job, maxControlBody); err != nil {
		return "", models.Errorf(models.TranscriptionFailed, "Transcription request failed: %w", err)
	}

	if job.ID == "" {
		return "", models.NewError(
			models.TranscriptionFailed,
			"Transcription request failed: the service returned no job id.",
		)
	}

	return job.ID, nil
}

// Fetch the current job state by id
func (s *Service) getJob(ctx context.Context, id string) (*Job, error) {

	ctx, cancel := context.WithTimeout(ctx, s.config.PollTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet,
		s.baseURL+"/v2/transcript/"+id, nil,
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", s.config.AssemblyAIAPIKey)

	var job Job
	if err := s.do(req, &job, maxTranscriptBody); err != nil {
		return nil, err
	}

	return &job, nil
}

// Execute a request and decode the JSON response into target,
// reading at most maxBody bytes of it.
// A non-success status is an error carrying the response body.
func (s *Service) do(req *http.Request, target any, maxBody int64) error {

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("service responded with %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	return json.Unmarshal(body, target)
}
