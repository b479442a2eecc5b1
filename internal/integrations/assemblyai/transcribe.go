package assemblyai

import (
	"context"
	"log"
	"time"

	"github.com/vlatan/video-scribe/internal/models"
	"github.com/vlatan/video-scribe/internal/utils"
)

// Transcribe uploads the audio artifact, starts a transcription job
// and polls it to completion within the configured wall-clock budget.
// The full text is returned only on a completed job.
func (s *Service) Transcribe(ctx context.Context, artifact *models.AudioArtifact) (string, error) {

	if !s.Configured() {
		return "", models.NewError(
			models.TranscriptionFailed,
			"Transcription failed: AssemblyAI API key not configured.",
		)
	}

	// Gate on the service upload ceiling before any network call
	if artifact.Size > s.config.MaxUploadSize {
		return "", models.Errorf(
			models.TranscriptionFailed,
			"Transcription failed: audio file is %d bytes, above the %dMB upload limit.",
			artifact.Size, s.config.MaxUploadSize/(1<<20),
		)
	}

	uploadURL, err := s.Upload(ctx, artifact.Path)
	if err != nil {
		return "", err
	}

	jobID, err := s.Submit(ctx, uploadURL)
	if err != nil {
		return "", err
	}

	log.Printf("Transcription job '%s' submitted, polling every %s", jobID, s.config.PollInterval)
	return s.Poll(ctx, jobID)
}

// Poll fetches the job status on a fixed interval until it reaches
// a terminal state or the overall budget elapses. A transport failure
// on a poll is fatal, not retried.
func (s *Service) Poll(ctx context.Context, jobID string) (string, error) {

	deadline := time.Now().Add(s.config.TranscribeBudget)

	for {
		job, err := s.getJob(ctx, jobID)
		if err != nil {
			return "", models.Errorf(
				models.TranscriptionFailed,
				"Transcript status check failed: %w", err,
			)
		}

		switch job.Status {
		case StatusCompleted:
			return job.Text, nil
		case StatusError:
			return "", models.Errorf(
				models.TranscriptionFailed,
				"Transcription failed: %s", job.Error,
			)
		}

		// Still queued or processing; wait for the next poll
		// unless that would blow the overall budget
		if time.Until(deadline) < s.config.PollInterval {
			minutes := int(s.config.TranscribeBudget.Minutes())
			return "", models.Errorf(
				models.TranscriptionFailed,
				"Transcription timed out after %d %s.",
				minutes, utils.Plural(minutes, "minute"),
			)
		}

		select {
		case <-ctx.Done():
			return "", models.Errorf(
				models.TranscriptionFailed,
				"Transcription canceled: %w", ctx.Err(),
			)
		case <-time.After(s.config.PollInterval):
		}
	}
}
