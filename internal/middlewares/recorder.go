package middlewares

import "net/http"

// A custom http.ResponseWriter that captures the status code,
// so the logging middleware can report what the next handler
// responded with.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

// Creates a new statusRecorder
func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{
		ResponseWriter: w,
		status:         http.StatusOK, // Default to 200 OK
	}
}

// Captures the response status code
func (r *statusRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
