package freesound

import (
	"github.com/angelospk/freesound-mcp/internal/httpclient"
	coreErrors "github.com/angelospk/freesound-mcp/pkg/core/errors"
)

// --- Common Types ---

// Quality selects one of the two preview tiers.
type Quality string

const (
	QualityHQ Quality = "hq"
	QualityLQ Quality = "lq"
)

// DefaultQuality is used when a preview download names no quality.
const DefaultQuality = QualityLQ

// ParseQuality validates s; the empty string yields DefaultQuality.
func ParseQuality(s string) (Quality, error) {
	switch Quality(s) {
	case "":
		return DefaultQuality, nil
	case QualityHQ, QualityLQ:
		return Quality(s), nil
	}
	return "", coreErrors.ErrInvalidQuality
}

// ProgressFunc receives the content length of a binary download and returns a
// writer mirrored with the downloaded bytes, or nil.
type ProgressFunc = httpclient.ProgressFunc

// Float64 returns a pointer to v, for optional numeric parameters.
func Float64(v float64) *float64 {
	return &v
}

// --- Sounds ---

// Previews holds the public preview URLs of a sound, keyed by tier and codec.
type Previews struct {
	PreviewHQMP3 string `json:"preview-hq-mp3,omitempty"`
	PreviewLQMP3 string `json:"preview-lq-mp3,omitempty"`
	PreviewHQOGG string `json:"preview-hq-ogg,omitempty"`
	PreviewLQOGG string `json:"preview-lq-ogg,omitempty"`
}

// MP3 returns the mp3 preview URL for quality q, or "" when absent.
func (p Previews) MP3(q Quality) string {
	if q == QualityHQ {
		return p.PreviewHQMP3
	}
	return p.PreviewLQMP3
}

// SoundSummary is the simplified search result record.
type SoundSummary struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Duration float64 `json:"duration"`
	License  string  `json:"license"`
	Preview  string  `json:"preview,omitempty"`
}

// SoundDetail is the record returned by /sounds/{id}/. Download is only present
// for OAuth2-authenticated requests.
type SoundDetail struct {
	ID          int      `json:"id"`
	URL         string   `json:"url"`
	Name        string   `json:"name"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Username    string   `json:"username"`
	License     string   `json:"license"`
	Type        string   `json:"type"` // File type hint, e.g. "wav", "flac"
	Channels    int      `json:"channels"`
	Filesize    int64    `json:"filesize"`
	Samplerate  float64  `json:"samplerate"`
	Duration    float64  `json:"duration"`
	Previews    Previews `json:"previews"`
	Download    string   `json:"download,omitempty"`
}

// --- Search ---

// SearchParams are the inputs of a text search. MaxDuration and License are optional.
type SearchParams struct {
	Query       string
	MaxDuration *float64 // Seconds; must be positive when set
	License     string   // License name as used by Freesound, e.g. "Creative Commons 0"
}

// searchQuery is the encoded query string of /search/text/.
type searchQuery struct {
	Query  string `url:"query"`
	Fields string `url:"fields"`
	Filter string `url:"filter,omitempty"`
}

// searchResponse is one page of /search/text/ results.
type searchResponse struct {
	Count    int            `json:"count"`
	Next     *string        `json:"next"`
	Previous *string        `json:"previous"`
	Results  []searchResult `json:"results"`
}

type searchResult struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Duration float64  `json:"duration"`
	License  string   `json:"license"`
	Previews Previews `json:"previews"`
}

// --- Download ---

// DownloadPreviewParams are the inputs of a preview download.
type DownloadPreviewParams struct {
	SoundID     int
	Quality     Quality // "" means DefaultQuality
	DownloadDir string  // "" means Config.DownloadDir, then ~/.freesound-mcp/downloads
	Progress    ProgressFunc
}

// DownloadOriginalParams are the inputs of an original-file download.
type DownloadOriginalParams struct {
	SoundID     int
	AccessToken string // OAuth2 bearer token, obtained outside this package
	DownloadDir string
	Progress    ProgressFunc
}

// DownloadResult is the outcome of a successful download.
type DownloadResult struct {
	FilePath string `json:"filePath"`
}
