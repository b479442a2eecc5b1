package config

import (
	"encoding/base64"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
)

type Secret struct {
	Bytes []byte
}

type Config struct {
	// Running localy or not
	Debug bool `env:"DEBUG" envDefault:"false"`

	// Local app host and port
	Host string `env:"HOST"`
	Port int    `env:"PORT" envDefault:"5000"`

	// CSRF protection for the HTML form
	CsrfKey        Secret `env:"CSRF_KEY"`
	CsrfCookieName string `env:"CSRF_COOKIE_NAME" envDefault:"_scribe_csrf"`

	// AssemblyAI settings
	AssemblyAIAPIKey  string        `env:"ASSEMBLYAI_API_KEY"`
	AssemblyAIBaseURL string        `env:"ASSEMBLYAI_BASE_URL" envDefault:"https://api.assemblyai.com"`
	LanguageCode      string        `env:"LANGUAGE_CODE" envDefault:"en"`
	MaxUploadSize     int64         `env:"MAX_UPLOAD_SIZE" envDefault:"209715200"`
	UploadTimeout     time.Duration `env:"UPLOAD_TIMEOUT" envDefault:"120s"`
	PollInterval      time.Duration `env:"POLL_INTERVAL" envDefault:"5s"`
	PollTimeout       time.Duration `env:"POLL_TIMEOUT" envDefault:"30s"`
	TranscribeBudget  time.Duration `env:"TRANSCRIBE_BUDGET" envDefault:"600s"`

	// Extraction tool settings
	YtdlpPath        string        `env:"YTDLP_PATH" envDefault:"yt-dlp"`
	FfmpegPath       string        `env:"FFMPEG_PATH" envDefault:"ffmpeg"`
	ProbeTimeout     time.Duration `env:"PROBE_TIMEOUT" envDefault:"15s"`
	StrategyTimeout  time.Duration `env:"STRATEGY_TIMEOUT" envDefault:"300s"`
	SocketTimeout    time.Duration `env:"SOCKET_TIMEOUT" envDefault:"30s"`
	DownloadRetries  int           `env:"DOWNLOAD_RETRIES" envDefault:"3"`
	MaxVideoDuration time.Duration `env:"MAX_VIDEO_DURATION" envDefault:"1800s"`
	MaxAudioSize     int64         `env:"MAX_AUDIO_SIZE" envDefault:"104857600"`
	MinAudioSize     int64         `env:"MIN_AUDIO_SIZE" envDefault:"1024"`

	// Redis metadata cache
	CacheEnabled  bool          `env:"CACHE_ENABLED" envDefault:"false"`
	RedisHost     string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int           `env:"REDIS_PORT" envDefault:"6379"`
	RedisUsername string        `env:"REDIS_USERNAME"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	CacheTimeout  time.Duration `env:"CACHE_TIMEOUT" envDefault:"86400s"`
}

// New creates new config object
func New() *Config {

	// Parse the config from the environment
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to parse the config; %v", err)
	}

	// Without the CSRF secret every HTML route is rejected
	// at serve time, so refuse to boot instead
	if err := cfg.checkSecrets(); err != nil {
		log.Fatalf("%v", err)
	}

	// The app can start without an AssemblyAI key,
	// but every transcription will fail, so make some noise
	if cfg.AssemblyAIAPIKey == "" {
		log.Println("ASSEMBLYAI_API_KEY not set; transcription requests will fail")
	}

	return &cfg
}

// Check if the app has all the necessary secrets
func (c *Config) checkSecrets() error {
	if len(c.CsrfKey.Bytes) == 0 {
		return fmt.Errorf("empty or no secret key defined in env: CSRF_KEY")
	}
	return nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// It's called by the env library to decode the Secret,
func (s *Secret) UnmarshalText(text []byte) error {

	s.Bytes = make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(s.Bytes, text)
	if err != nil {
		return fmt.Errorf("error decoding a secret key; %w", err)
	}

	s.Bytes = s.Bytes[:n]
	return nil
}
