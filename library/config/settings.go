package config

import "time"

// Configuration keys.
const (
	KeySearxngURL            = "searxng.url"
	KeySearxngTimeout        = "searxng.timeout"
	KeySearxngLanguage       = "searxng.language"
	KeySearxngRateLimit      = "searxng.rate_limit"
	KeySearxngRateBurst      = "searxng.rate_burst"
	KeyResearchFanoutTimeout = "research.fanout_timeout"
	KeyLoggingLevel          = "logging.level"
	KeyLoggingFile           = "logging.file"
)

// Defaults applied when a key is absent.
const (
	DefaultSearxngURL      = "http://localhost:8080"
	DefaultSearxngTimeout  = 10 * time.Second
	DefaultSearxngLanguage = "en"
	DefaultLoggingLevel    = "info"
)

// Settings is the typed view of the configuration.
type Settings struct {
	Searxng  SearxngSettings
	Research ResearchSettings
	Logging  LoggingSettings
}

// SearxngSettings configures the upstream SearXNG instance.
type SearxngSettings struct {
	URL string
	// Timeout bounds every single request, including time spent waiting on the rate limiter.
	Timeout  time.Duration
	Language string
	// RateLimit is the sustained requests per second allowed, 0 disables limiting.
	RateLimit float64
	RateBurst int
}

// ResearchSettings configures the research_topic fan-out.
type ResearchSettings struct {
	// FanoutTimeout caps a whole research fan-out, 0 means no overall budget.
	FanoutTimeout time.Duration
}

// LoggingSettings configures log output.
type LoggingSettings struct {
	Level string
	File  string
}

// LoadSettings reads Settings from the shared configuration.
func LoadSettings() Settings {
	return LoadSettingsWithGetter(SharedGetter)
}

// LoadSettingsWithGetter reads Settings through get, applying defaults for missing keys.
// Timeouts are expressed in seconds.
func LoadSettingsWithGetter(get Getter) Settings {
	timeout := time.Duration(Float(get, KeySearxngTimeout, DefaultSearxngTimeout.Seconds()) * float64(time.Second))
	if timeout <= 0 {
		timeout = DefaultSearxngTimeout
	}

	fanout := time.Duration(Float(get, KeyResearchFanoutTimeout, 0) * float64(time.Second))
	if fanout < 0 {
		fanout = 0
	}

	burst := Int(get, KeySearxngRateBurst, 1)
	if burst < 1 {
		burst = 1
	}

	return Settings{
		Searxng: SearxngSettings{
			URL:       String(get, KeySearxngURL, DefaultSearxngURL),
			Timeout:   timeout,
			Language:  String(get, KeySearxngLanguage, DefaultSearxngLanguage),
			RateLimit: Float(get, KeySearxngRateLimit, 0),
			RateBurst: burst,
		},
		Research: ResearchSettings{
			FanoutTimeout: fanout,
		},
		Logging: LoggingSettings{
			Level: String(get, KeyLoggingLevel, DefaultLoggingLevel),
			File:  String(get, KeyLoggingFile, ""),
		},
	}
}
