package transcribe

import (
	"encoding/json"
	"log"
	"mime"
	"net/http"
	"strings"

	"github.com/vlatan/video-scribe/internal/models"
	"github.com/vlatan/video-scribe/internal/utils"
)

// Render the input form
func (s *Service) HomeHandler(w http.ResponseWriter, r *http.Request) {
	s.ui.RenderHTML(w, r, "home.html", s.ui.NewData(r))
}

// Handle the HTML form submission. The pipeline runs synchronously
// and the result (or the error message) renders inline.
func (s *Service) SubmitHandler(w http.ResponseWriter, r *http.Request) {

	data := s.ui.NewData(r)
	data.YouTubeURL = strings.TrimSpace(r.FormValue("youtube_url"))

	result, err := s.pipeline.Run(r.Context(), data.YouTubeURL)
	if err != nil {
		perr := models.AsPipelineError(err)
		data.Error = utils.Capitalize(perr.Message)
		s.ui.RenderHTML(w, r, "home.html", data)
		return
	}

	data.Transcript = result.Transcript
	data.Video = result.Video
	s.ui.RenderHTML(w, r, "home.html", data)
}

// Handle the JSON API. Accepts a JSON body or a form field,
// responds with the transcript or a classified error.
func (s *Service) APIHandler(w http.ResponseWriter, r *http.Request) {

	rawURL, err := requestURL(r)
	if err != nil {
		s.ui.JSONError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.pipeline.Run(r.Context(), rawURL)
	if err != nil {
		perr := models.AsPipelineError(err)
		s.ui.JSONError(w, r, perr.Kind.HTTPStatus(), perr.Message)
		return
	}

	s.ui.WriteJSON(w, r, models.TranscribeResponse{
		Success:    true,
		Transcript: result.Transcript,
		VideoInfo:  result.Video,
	})
}

// Report the service status and the state of its collaborators
func (s *Service) HealthHandler(w http.ResponseWriter, r *http.Request) {

	data := map[string]any{
		"status":                "healthy",
		"port":                  s.config.Port,
		"assemblyai_configured": s.configured,
		"ytdlp_available":       s.tools.Available(),
		"ffmpeg_available":      s.tools.FfmpegAvailable(),
	}

	if s.rdb != nil {
		data["cache_status"] = s.rdb.Health(r.Context())
	}

	s.ui.WriteJSON(w, r, data)
}

// Extract the video URL from a JSON or form body
func requestURL(r *http.Request) (string, error) {

	contentType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err == nil && contentType == "application/json" {
		var body struct {
			YouTubeURL string `json:"youtube_url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			log.Printf("Failed to decode the API request body: %v", err)
			return "", err
		}
		return strings.TrimSpace(body.YouTubeURL), nil
	}

	return strings.TrimSpace(r.FormValue("youtube_url")), nil
}
