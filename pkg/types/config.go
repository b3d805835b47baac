package types

import "time"

// HTTPConfig holds shared HTTP settings used by the Entrez client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "get-papers-list/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries is the number of retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// EntrezConfig holds settings for talking to the NCBI E-utilities.
type EntrezConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the E-utilities root (default https://eutils.ncbi.nlm.nih.gov/entrez/eutils).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Email is sent with every request so NCBI can contact the user.
	Email string `json:"email,omitempty" yaml:"email,omitempty" mapstructure:"email"`

	// APIKey raises the NCBI rate limit from 3 to 10 requests per second.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Tool identifies the calling software to NCBI.
	Tool string `json:"tool,omitempty" yaml:"tool,omitempty" mapstructure:"tool"`

	// RequestsPerSecond overrides the pacing derived from APIKey. Zero
	// selects the NCBI default for the key state.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// ClassifierConfig holds settings for the affiliation classifier.
type ClassifierConfig struct {
	// KeywordsFile is an optional YAML file replacing the built-in academic
	// keyword list.
	KeywordsFile string `json:"keywords_file,omitempty" yaml:"keywords_file,omitempty" mapstructure:"keywords_file"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// File, when set, additionally writes JSON logs to a rotated file.
	File string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`
}

// SearchOptions are the per-run esearch parameters.
type SearchOptions struct {
	// Term is the PubMed query string.
	Term string `json:"term" yaml:"term"`

	// RetMax is the maximum number of IDs to return (default 20, capped at 10000).
	RetMax int `json:"retmax" yaml:"retmax"`

	// Sort is an esearch sort order such as "relevance" or "pub_date".
	Sort string `json:"sort,omitempty" yaml:"sort,omitempty"`

	// MinDate and MaxDate bound the publication date (YYYY, YYYY/MM or YYYY/MM/DD).
	MinDate string `json:"mindate,omitempty" yaml:"mindate,omitempty"`
	MaxDate string `json:"maxdate,omitempty" yaml:"maxdate,omitempty"`
}

// Config groups all settings for a run.
type Config struct {
	Entrez     EntrezConfig     `json:"entrez" yaml:"entrez" mapstructure:"entrez"`
	Classifier ClassifierConfig `json:"classifier" yaml:"classifier" mapstructure:"classifier"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
}
