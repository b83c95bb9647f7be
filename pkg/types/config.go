package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "docharvest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Referer is sent as the Referer header on search requests when non-empty.
	Referer string `json:"referer,omitempty" yaml:"referer,omitempty"`
}

// FetchConfig holds settings for the download stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// DestFolder is the directory downloaded files are written into.
	DestFolder string `json:"dest_folder" yaml:"dest_folder"`

	// DownloadDelay is the delay between consecutive downloads (default 0).
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`
}
