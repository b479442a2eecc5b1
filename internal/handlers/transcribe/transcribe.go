package transcribe

import (
	"context"

	"github.com/vlatan/video-scribe/internal/config"
	"github.com/vlatan/video-scribe/internal/drivers/redis"
	"github.com/vlatan/video-scribe/internal/pipeline"
	"github.com/vlatan/video-scribe/internal/ui"
)

// Runner abstracts the pipeline for the handlers
type Runner interface {
	Run(ctx context.Context, rawURL string) (*pipeline.Result, error)
}

// Tools reports the availability of the external binaries,
// surfaced in the health endpoint
type Tools interface {
	Available() bool
	FfmpegAvailable() bool
}

type Service struct {
	config     *config.Config
	pipeline   Runner
	tools      Tools
	rdb        redis.Service // nil when caching is disabled
	ui         ui.Service
	configured bool
}

func New(
	config *config.Config,
	pipeline Runner,
	tools Tools,
	rdb redis.Service,
	ui ui.Service,
) *Service {
	return &Service{
		config:     config,
		pipeline:   pipeline,
		tools:      tools,
		rdb:        rdb,
		ui:         ui,
		configured: config.AssemblyAIAPIKey != "",
	}
}
