package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeLabel validates an external node label for safety and correctness.
// Labels come from user files and API payloads and end up in cache keys,
// reports, and stored run records.
//
// The validation rules are intentionally conservative:
//   - No empty labels
//   - No control characters
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateNodeLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidLabel, "node label cannot be empty")
	}

	if len(label) > 256 {
		return New(ErrCodeInvalidLabel, "node label too long (max 256 characters)")
	}

	for _, r := range label {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "node label contains invalid control characters")
		}
	}

	return nil
}

// ValidateRunID validates a run identifier as supplied in API paths.
// Run IDs are UUID strings; this rejects anything that could not be one
// before the store is consulted.
func ValidateRunID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "run id cannot be empty")
	}

	if len(id) != 36 {
		return New(ErrCodeInvalidInput, "run id must be a 36-character UUID")
	}

	for _, r := range id {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		case r == '-':
		default:
			return New(ErrCodeInvalidInput, "run id contains invalid character %q", r)
		}
	}

	return nil
}

// ValidateServerAddr validates a listen address of the form "host:port" or
// ":port". It rejects obviously malformed addresses early so the server
// fails before binding rather than at first request.
func ValidateServerAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidConfiguration, "listen address cannot be empty")
	}

	if !strings.Contains(addr, ":") {
		return New(ErrCodeInvalidConfiguration, "listen address must contain a port (host:port)")
	}

	return nil
}
