package narration

import (
	"time"

	"github.com/studio540/bjj-analyzer/internal/domain/analysis"
)

// ID tipe untuk NarrationJob
type JobID string

// JobStatus enum
type JobStatus string

const (
	StatusRunning JobStatus = "running"
	StatusDone    JobStatus = "done"
	StatusFailed  JobStatus = "failed"
)

// Voice value object (daftar suara dari provider TTS)
type Voice struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PreviewURL  string `json:"preview_url,omitempty"`
}

// Aggregate Root: Job. SourceText is snapshotted from the analysis result at
// job creation; it is never re-derived from the store afterwards.
type Job struct {
	ID          JobID               `json:"id"`
	AnalysisID  analysis.AnalysisID `json:"analysis_id"`
	SourceText  string              `json:"-"`
	Script      string              `json:"script,omitempty"`
	Rewritten   bool                `json:"rewritten"`
	VoiceID     string              `json:"voice_id"`
	Status      JobStatus           `json:"status"`
	Audio       []byte              `json:"-"`
	CreatedAt   time.Time           `json:"created_at"`
	ArtifactURL string              `json:"artifact_url,omitempty"`
}
