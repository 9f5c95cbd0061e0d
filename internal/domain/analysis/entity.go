package analysis

import (
	"time"
)

// ID tipe untuk Analysis
type AnalysisID string

// HandleStatus enum: status remote processing untuk media yang diupload
type HandleStatus string

const (
	StatusPending    HandleStatus = "pending"
	StatusProcessing HandleStatus = "processing"
	StatusReady      HandleStatus = "ready"
	StatusFailed     HandleStatus = "failed"
)

// Terminal reports whether the remote side is done with the media,
// successfully or not.
func (s HandleStatus) Terminal() bool {
	return s == StatusReady || s == StatusFailed
}

// MediaHandle is the opaque reference to a remote, asynchronously processed
// media object plus the local temp file it was uploaded from.
type MediaHandle struct {
	LocalPath string       `json:"-"`
	RemoteID  string       `json:"remote_id,omitempty"`
	URI       string       `json:"-"`
	MIMEType  string       `json:"mime_type,omitempty"`
	Status    HandleStatus `json:"status"`
}

// Request value object: immutable once built
type Request struct {
	UserQuery  string
	PromptText string
	Handle     MediaHandle
}

// Aggregate Root: Result
type Result struct {
	ID          AnalysisID `json:"id"`
	Query       string     `json:"query"`
	MediaName   string     `json:"media_name"`
	Text        string     `json:"text"`
	GeneratedAt time.Time  `json:"generated_at"`
	DurationMS  int64      `json:"duration_ms"`
	SlowWarning bool       `json:"slow_warning,omitempty"`
	ArtifactURL string     `json:"artifact_url,omitempty"`
}
