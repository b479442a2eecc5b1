package ui

import (
	"html/template"
	"net/http"
	"regexp"
	"sync"

	"github.com/tdewolff/minify"
	"github.com/tdewolff/minify/css"
	"github.com/tdewolff/minify/html"
	"github.com/tdewolff/minify/js"

	"github.com/vlatan/video-scribe/internal/config"
	"github.com/vlatan/video-scribe/internal/models"
)

type Service interface {
	// Create new template data
	NewData(r *http.Request) *models.TemplateData
	// Write HTML template to response
	RenderHTML(w http.ResponseWriter, r *http.Request, templateName string, data *models.TemplateData)
	// Write JSON to response
	WriteJSON(w http.ResponseWriter, r *http.Request, data any)
	// Write JSON error to response
	JSONError(w http.ResponseWriter, r *http.Request, statusCode int, message string)
}

type service struct {
	templates map[string]*template.Template
	config    *config.Config
}

var validJS = regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$")

var (
	uiInstance *service
	once       sync.Once
)

// Parse the embedded templates and produce the UI service
func New(config *config.Config) Service {
	once.Do(func() {
		m := minify.New()
		m.AddFunc("text/css", css.Minify)
		m.AddFunc("text/html", html.Minify)
		m.AddFuncRegexp(validJS, js.Minify)

		uiInstance = &service{
			templates: parseTemplates(m),
			config:    config,
		}
	})

	return uiInstance
}
