package static

import (
	"net/http"
	"strings"

	"github.com/vlatan/video-scribe/internal/utils"
	"github.com/vlatan/video-scribe/web"
)

type Service struct{}

func New() *Service {
	return &Service{}
}

// Handle static files from the embedded FS
func (s *Service) StaticHandler(w http.ResponseWriter, r *http.Request) {

	// Validate the path
	if err := utils.ValidateFilePath(r.URL.Path); err != nil {
		http.NotFound(w, r)
		return
	}

	// Set long max age cache control
	w.Header().Set("Cache-Control", "max-age=31536000")

	// Serve from the embedded FS, which roots its paths
	// without the leading slash
	http.ServeFileFS(w, r, web.Files, strings.TrimPrefix(r.URL.Path, "/"))
}
