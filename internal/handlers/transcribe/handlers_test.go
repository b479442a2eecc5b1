package transcribe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vlatan/video-scribe/internal/config"
	"github.com/vlatan/video-scribe/internal/models"
	"github.com/vlatan/video-scribe/internal/pipeline"
	"github.com/vlatan/video-scribe/internal/ui"
)

type fakeRunner struct {
	result *pipeline.Result
	err    error
	rawURL string
}

func (f *fakeRunner) Run(ctx context.Context, rawURL string) (*pipeline.Result, error) {
	f.rawURL = rawURL
	return f.result, f.err
}

type fakeTools struct {
	ytdlp  bool
	ffmpeg bool
}

func (f *fakeTools) Available() bool       { return f.ytdlp }
func (f *fakeTools) FfmpegAvailable() bool { return f.ffmpeg }

func testConfig() *config.Config {
	return &config.Config{
		Port:             5000,
		AssemblyAIAPIKey: "test-key",
	}
}

func testService(t *testing.T, runner *fakeRunner) *Service {
	t.Helper()
	cfg := testConfig()
	return New(cfg, runner, &fakeTools{ytdlp: true, ffmpeg: true}, nil, ui.New(cfg))
}

func TestHomeHandler(t *testing.T) {

	svc := testService(t, &fakeRunner{})
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	svc.HomeHandler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}

	if !strings.Contains(w.Body.String(), "youtube_url") {
		t.Error("home page does not contain the URL input field")
	}
}

func TestSubmitHandlerEmptyURL(t *testing.T) {

	runner := &fakeRunner{
		err: models.NewError(models.ValidationFailed, "Please enter a YouTube URL"),
	}
	svc := testService(t, runner)

	form := url.Values{"youtube_url": {""}}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	svc.SubmitHandler(w, r)

	// The form renders again with the message inline
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}

	if !strings.Contains(w.Body.String(), "Please enter a YouTube URL") {
		t.Error("response does not carry the validation message")
	}
}

func TestSubmitHandlerSuccess(t *testing.T) {

	runner := &fakeRunner{
		result: &pipeline.Result{
			Transcript: "hello world",
			Video:      &models.VideoMetadata{Title: "A Talk", Duration: 120},
		},
	}
	svc := testService(t, runner)

	form := url.Values{"youtube_url": {"https://youtu.be/abc123"}}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	svc.SubmitHandler(w, r)

	if runner.rawURL != "https://youtu.be/abc123" {
		t.Errorf("pipeline got URL %q, want the submitted one", runner.rawURL)
	}

	body := w.Body.String()
	if !strings.Contains(body, "hello world") {
		t.Error("response does not carry the transcript")
	}
	if !strings.Contains(body, "A Talk") {
		t.Error("response does not carry the video title")
	}
}

func TestAPIHandlerSuccess(t *testing.T) {

	runner := &fakeRunner{
		result: &pipeline.Result{
			Transcript: "hello world",
			Video:      &models.VideoMetadata{Title: "A Talk", Duration: 120, Uploader: "someone"},
		},
	}
	svc := testService(t, runner)

	payload := strings.NewReader(`{"youtube_url": "https://youtu.be/abc123"}`)
	r := httptest.NewRequest(http.MethodPost, "/api/transcribe", payload)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	svc.APIHandler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}

	var got models.TranscribeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode the response: %v", err)
	}

	want := models.TranscribeResponse{
		Success:    true,
		Transcript: "hello world",
		VideoInfo:  &models.VideoMetadata{Title: "A Talk", Duration: 120, Uploader: "someone"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestAPIHandlerFormBody(t *testing.T) {

	runner := &fakeRunner{result: &pipeline.Result{Transcript: "ok", Video: &models.VideoMetadata{}}}
	svc := testService(t, runner)

	form := url.Values{"youtube_url": {"https://youtu.be/abc123"}}
	r := httptest.NewRequest(http.MethodPost, "/api/transcribe", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	svc.APIHandler(w, r)

	if runner.rawURL != "https://youtu.be/abc123" {
		t.Errorf("pipeline got URL %q, want the form value", runner.rawURL)
	}
}

func TestAPIHandlerErrorStatus(t *testing.T) {

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "validation failure",
			err:        models.NewError(models.ValidationFailed, "Please enter a valid YouTube URL"),
			wantStatus: http.StatusBadRequest,
			wantError:  "Please enter a valid YouTube URL",
		},
		{
			name:       "unavailable video",
			err:        models.NewError(models.VideoUnavailable, "This video is private."),
			wantStatus: http.StatusBadRequest,
			wantError:  "This video is private.",
		},
		{
			name:       "exhausted strategies",
			err:        models.NewError(models.DownloadFailed, "Download failed: all strategies exhausted"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Download failed: all strategies exhausted",
		},
		{
			name:       "transcription failure",
			err:        models.NewError(models.TranscriptionFailed, "Transcription failed: audio too noisy"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Transcription failed: audio too noisy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			svc := testService(t, &fakeRunner{err: tt.err})

			payload := strings.NewReader(`{"youtube_url": "https://youtu.be/abc123"}`)
			r := httptest.NewRequest(http.MethodPost, "/api/transcribe", payload)
			r.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			svc.APIHandler(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", w.Code, tt.wantStatus)
			}

			var got models.JSONErrorData
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("failed to decode the error response: %v", err)
			}

			if got.Error != tt.wantError {
				t.Errorf("got error %q, want %q", got.Error, tt.wantError)
			}
		})
	}
}

func TestAPIHandlerMalformedBody(t *testing.T) {

	svc := testService(t, &fakeRunner{})

	r := httptest.NewRequest(http.MethodPost, "/api/transcribe", strings.NewReader("{not json"))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	svc.APIHandler(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHealthHandler(t *testing.T) {

	cfg := testConfig()
	svc := New(cfg, &fakeRunner{}, &fakeTools{ytdlp: true, ffmpeg: false}, nil, ui.New(cfg))

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	svc.HealthHandler(w, r)

	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode the health response: %v", err)
	}

	if got["status"] != "healthy" {
		t.Errorf("got status %v, want healthy", got["status"])
	}
	if got["assemblyai_configured"] != true {
		t.Error("assemblyai_configured should report true with a key set")
	}
	if got["ytdlp_available"] != true {
		t.Error("ytdlp_available should report true")
	}
	if got["ffmpeg_available"] != false {
		t.Error("ffmpeg_available should report false")
	}
	if _, ok := got["cache_status"]; ok {
		t.Error("cache_status should be absent with caching disabled")
	}
}
