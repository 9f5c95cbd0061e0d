package middleware

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/studio540/bjj-analyzer/internal/domain/analysis"
)

// Input validation and sanitization utilities

// ValidateVideoFilename checks the declared extension against the accepted
// video formats.
func ValidateVideoFilename(filename string) error {
	allowed := map[string]bool{
		".mp4": true,
		".mov": true,
		".avi": true,
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowed[ext] {
		return fmt.Errorf("%w: %s (allowed: mp4, mov, avi)", analysis.ErrUnsupportedFormat, filename)
	}
	return nil
}

// ValidateQuery checks the free-text question the user wants answered.
func ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return analysis.ErrEmptyQuery
	}
	if len(query) > 2000 {
		return fmt.Errorf("%w: query too long (max 2000 chars)", analysis.ErrEmptyQuery)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
