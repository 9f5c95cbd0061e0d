package analysis

import "context"

// VideoModel port (interface untuk layanan video+language model)
type VideoModel interface {
	// Submit uploads the local file and returns a handle in a
	// pending/processing state.
	Submit(ctx context.Context, localPath, mimeType string) (MediaHandle, error)

	// Poll re-queries the remote status of a previously submitted handle.
	Poll(ctx context.Context, h MediaHandle) (MediaHandle, error)

	// Generate runs the prompt against a READY handle and returns the
	// free-text analysis.
	Generate(ctx context.Context, prompt string, h MediaHandle) (string, error)

	// Delete removes the remote media object. Best effort.
	Delete(ctx context.Context, h MediaHandle) error
}

// Repository port (interface untuk penyimpanan hasil, session-scoped)
type Repository interface {
	Save(ctx context.Context, r *Result) error
	Get(ctx context.Context, id AnalysisID) (*Result, error)
	Latest(ctx context.Context, limit int) ([]*Result, error)
}

// ArtifactStore port (interface untuk penyimpanan artefak download)
type ArtifactStore interface {
	UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
