package utils

import (
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// NormalizeSlug creates a URL-friendly slug using the gosimple/slug library.
// This handles all Unicode characters, so operator-supplied job names in any
// language produce readable ids.
func NormalizeSlug(text string) string {
	if text == "" {
		return ""
	}
	return slug.Make(text)
}

// GenerateJobID derives a fresh job id from a human-readable job name: the
// slugified name plus a short random suffix for uniqueness.
func GenerateJobID(name string) string {
	base := NormalizeSlug(name)
	if base == "" {
		base = "job"
	}
	return base + "-" + uuid.NewString()[:8]
}
