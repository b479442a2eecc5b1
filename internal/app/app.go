package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/vlatan/video-scribe/internal/config"
	"github.com/vlatan/video-scribe/internal/drivers/redis"
	"github.com/vlatan/video-scribe/internal/handlers/static"
	"github.com/vlatan/video-scribe/internal/handlers/transcribe"
	"github.com/vlatan/video-scribe/internal/integrations/assemblyai"
	"github.com/vlatan/video-scribe/internal/integrations/ytdlp"
	"github.com/vlatan/video-scribe/internal/middlewares"
	"github.com/vlatan/video-scribe/internal/pipeline"
	"github.com/vlatan/video-scribe/internal/ui"
)

type App struct {
	config     *config.Config
	transcribe *transcribe.Service
	static     *static.Service
	mw         *middlewares.Service
	cleanup    func() error
	server     *http.Server
}

// Create the whole application object graph
func New(cfg *config.Config) *App {

	// Optional probe metadata cache
	var rdb redis.Service
	cleanup := func() error { return nil }
	if cfg.CacheEnabled {
		rdb = redis.New(cfg)
		cleanup = rdb.Close
	}

	// External collaborators
	extractor := ytdlp.New(cfg)
	transcriber := assemblyai.New(cfg)

	// The core pipeline
	pipe := pipeline.New(cfg, extractor, transcriber, rdb)

	// Create user interface service
	ui := ui.New(cfg)

	return &App{
		config:     cfg,
		transcribe: transcribe.New(cfg, pipe, extractor, rdb, ui),
		static:     static.New(),
		mw:         middlewares.New(cfg),
		cleanup:    cleanup,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Minute, // the pipeline runs within the request
		},
	}
}
