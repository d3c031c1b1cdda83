package models

import "time"

type Platform string

const (
	PlatformManual    Platform = "manual"
	PlatformCSV       Platform = "csv"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformManual, PlatformCSV, PlatformInstagram, PlatformTikTok:
		return true
	}
	return false
}

// CommentRecord is the normalized unit of input text plus provenance
// metadata. Adapters produce them; the pipeline treats them as immutable.
type CommentRecord struct {
	Text      string            `json:"text"`
	Platform  Platform          `json:"source_platform"`
	Timestamp *time.Time        `json:"timestamp,omitempty"`
	Author    string            `json:"author,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}
