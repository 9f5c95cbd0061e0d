package narration

import "context"

// Synthesizer port (interface untuk provider text-to-speech)
type Synthesizer interface {
	// Synthesize converts text to speech with the given voice and returns
	// the full audio as one byte buffer (provider chunks are accumulated).
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)

	// ListVoices returns the voices available at the provider.
	ListVoices(ctx context.Context) ([]Voice, error)

	// DefaultVoice is the fixed fallback voice id used when listing fails.
	DefaultVoice() Voice
}

// ScriptRewriter port: optional spoken-style rewrite of the analysis text
// before synthesis.
type ScriptRewriter interface {
	RewriteScript(ctx context.Context, text string) (string, error)
}

// Repository port untuk narration jobs (session-scoped)
type Repository interface {
	Save(ctx context.Context, j *Job) error
	Get(ctx context.Context, id JobID) (*Job, error)
}
