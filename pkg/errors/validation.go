package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxViewport bounds viewport dimensions accepted from flags and config.
const maxViewport = 100000

// ValidateViewport checks that a viewport has finite, positive dimensions.
func ValidateViewport(width, height float64) error {
	if !isFinite(width) || !isFinite(height) {
		return New(ErrCodeInvalidLayout, "viewport must be finite, got %vx%v", width, height)
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidLayout, "viewport must be positive, got %vx%v", width, height)
	}
	if width > maxViewport || height > maxViewport {
		return New(ErrCodeInvalidLayout, "viewport too large (max %d)", maxViewport)
	}
	return nil
}

// ValidateRotation checks that a rotation angle is a finite number of radians.
func ValidateRotation(rotation float64) error {
	if !isFinite(rotation) {
		return New(ErrCodeInvalidLayout, "rotation must be finite, got %v", rotation)
	}
	return nil
}

// ValidateMargin checks that a margin is finite and non-negative.
func ValidateMargin(margin float64) error {
	if !isFinite(margin) || margin < 0 {
		return New(ErrCodeInvalidLayout, "margin must be a non-negative number, got %v", margin)
	}
	return nil
}

// ValidatePath validates a roster or output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
