package app

import (
	"net/http"
)

// RegisterRoutes registers routes and
// assigns custom handler to the HTTP server
func (a *App) RegisterRoutes() *App {
	mux := http.NewServeMux()

	// The HTML form
	mux.HandleFunc("GET /{$}", a.transcribe.HomeHandler)
	mux.HandleFunc("POST /{$}", a.transcribe.SubmitHandler)

	// The JSON API
	mux.HandleFunc("POST /api/transcribe", a.transcribe.APIHandler)

	// The rest
	mux.HandleFunc("GET /health", a.transcribe.HealthHandler)
	mux.HandleFunc("GET /static/", a.static.StaticHandler)

	// Chain middlewares that apply to all requests.
	// The order is important.
	// Use this custom handler as HTTP server handler
	a.server.Handler = a.mw.ApplyToAll(
		a.mw.RecoverPanic,
		a.mw.CloseBody,
		a.mw.Logging,
		a.mw.CsrfProtection,
		a.mw.AddHeaders,
		a.mw.Compress,
	)(mux)

	return a
}
