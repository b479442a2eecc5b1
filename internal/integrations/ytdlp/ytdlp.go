package ytdlp

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os/exec"

	"github.com/vlatan/video-scribe/internal/config"
)

// Browser user agent sent to the video host,
// some formats are not served to unknown clients
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Service wraps the yt-dlp extraction tool
type Service struct {
	config     *config.Config
	ytdlpPath  string
	ffmpegPath string
	runner     commandRunner
}

// Produce new yt-dlp service. The tool locations are resolved
// once here and cached for the life of the process; a missing
// tool is reported on first use and in the health endpoint.
func New(cfg *config.Config) *Service {

	s := &Service{config: cfg, runner: &execRunner{}}

	if path, err := exec.LookPath(cfg.YtdlpPath); err == nil {
		s.ytdlpPath = path
	} else {
		log.Printf("yt-dlp not found at '%s'; downloads will fail", cfg.YtdlpPath)
	}

	if path, err := exec.LookPath(cfg.FfmpegPath); err == nil {
		s.ffmpegPath = path
	} else {
		log.Printf("ffmpeg not found at '%s'; downloads will fail", cfg.FfmpegPath)
	}

	return s
}

// Check if the yt-dlp binary was resolved
func (s *Service) Available() bool {
	return s.ytdlpPath != ""
}

// Check if the ffmpeg binary was resolved
func (s *Service) FfmpegAvailable() bool {
	return s.ffmpegPath != ""
}

// Result of one external command invocation
type commandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// commandRunner abstracts process execution for testability
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (commandResult, error)
}

// execRunner executes commands via os/exec
type execRunner struct{}

// Run executes one command and captures stdout/stderr and exit code
func (r *execRunner) Run(ctx context.Context, name string, args ...string) (commandResult, error) {

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := commandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		return result, err
	}

	return result, nil
}
