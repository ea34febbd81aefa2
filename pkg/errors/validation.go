package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateIdentifier validates an entity reference (IRI, CURIE or short id)
// before it is resolved against an ontology.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or whitespace
//   - Maximum length of 1024 characters
func ValidateIdentifier(ref string) error {
	if ref == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}

	if len(ref) > 1024 {
		return New(ErrCodeInvalidInput, "identifier too long (max 1024 characters)")
	}

	for _, r := range ref {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "identifier %q contains whitespace or control characters", ref)
		}
	}

	return nil
}

// ValidatePath validates a local document path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Extension must be one of the supported document formats
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".yaml", ".yml":
		return nil
	default:
		return New(ErrCodeInvalidFormat, "unsupported document format %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
}
