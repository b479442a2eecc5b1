package ui

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/vlatan/video-scribe/internal/models"
	"github.com/vlatan/video-scribe/internal/utils"
)

// Creates new default data struct to be passed to the templates
func (s *service) NewData(r *http.Request) *models.TemplateData {
	return &models.TemplateData{
		Config:    s.config,
		Title:     "YouTube Transcriber",
		CSRFField: csrf.TemplateField(r),
	}
}

// RenderHTML checks if template exists in the collection of templates (map),
// executes the given template and writes the output to the response.
func (s *service) RenderHTML(
	w http.ResponseWriter,
	r *http.Request,
	templateName string,
	data *models.TemplateData) {

	tmpl, exists := s.templates[templateName]
	if !exists {
		log.Printf("Could not find the '%s' template on URI '%s'", templateName, r.RequestURI)
		utils.HttpError(w, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	// Write to response
	if err := tmpl.ExecuteTemplate(w, templateName, data); err != nil {
		log.Printf(
			"Failed to execute the HTML template '%s' on URI '%s': %v",
			templateName, r.RequestURI, err,
		)
		utils.HttpError(w, http.StatusInternalServerError)
	}
}

// WriteJSON converts the data into JSON-formatted string
// and writes the output to response
func (s *service) WriteJSON(w http.ResponseWriter, r *http.Request, data any) {
	// Encode data to JSON
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("Failed to encode JSON response on URI '%s': %v", r.RequestURI, err)
		utils.HttpError(w, http.StatusInternalServerError)
		return
	}

	// Write to response
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(jsonData); err != nil {
		// Too late for recovery here, just log the error
		log.Printf("Failed to write JSON to response on URI '%s': %v", r.RequestURI, err)
	}
}

// Write JSON error to response
func (s *service) JSONError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {

	// Craft data
	data := models.JSONErrorData{Error: message}

	// Encode data to JSON
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("Failed to encode JSON 'error' response on URI '%s': %v", r.RequestURI, err)
		utils.HttpError(w, statusCode)
		return
	}

	// Set status code and content type before writing the response
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err := w.Write(jsonData); err != nil {
		// Too late for recovery here, just log the error
		log.Printf("Failed to write JSON 'error' to response on URI '%s': %v", r.RequestURI, err)
	}
}
