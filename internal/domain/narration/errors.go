package narration

import "errors"

var (
	// ErrEmptyScript indicates the source analysis text is empty; a
	// narration job cannot be created from it.
	ErrEmptyScript = errors.New("narration source text is empty")

	// ErrAuth indicates the TTS provider rejected the API key (HTTP 401).
	ErrAuth = errors.New("tts authentication failed")

	// ErrRateLimited indicates the TTS provider returned a quota/limit
	// error (HTTP 429 or similar).
	ErrRateLimited = errors.New("tts rate limit exceeded")

	// ErrSynthesisFailed indicates any other TTS failure. Non-fatal to the
	// session: the stored analysis stays usable.
	ErrSynthesisFailed = errors.New("speech synthesis failed")

	// ErrRewriteUnavailable indicates a rewrite was requested but no
	// rewriter is configured.
	ErrRewriteUnavailable = errors.New("script rewriter not configured")

	// ErrNotFound indicates no narration job matches the requested id.
	ErrNotFound = errors.New("narration not found")
)
