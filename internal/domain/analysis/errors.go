package analysis

import "errors"

var (
	// ErrUnsupportedFormat indicates the uploaded file extension is not an
	// accepted video format (mp4, mov, avi).
	ErrUnsupportedFormat = errors.New("unsupported video format")

	// ErrEmptyQuery indicates the user submitted no question to analyze.
	ErrEmptyQuery = errors.New("query is required")

	// ErrSubmissionFailed indicates the upload/create call to the remote
	// model failed (network, quota, auth). Not retried automatically.
	ErrSubmissionFailed = errors.New("media submission failed")

	// ErrProcessingFailed indicates the remote side marked the media FAILED.
	ErrProcessingFailed = errors.New("remote media processing failed")

	// ErrPollTimeout indicates the hard polling deadline elapsed while the
	// media was still processing.
	ErrPollTimeout = errors.New("media processing timed out")

	// ErrGenerationFailed indicates the analysis call itself failed.
	ErrGenerationFailed = errors.New("analysis generation failed")

	// ErrNotFound indicates no stored result matches the requested id.
	ErrNotFound = errors.New("analysis not found")
)
