package services

import "errors"

// Error kinds. Callers wrap these with context and test with errors.Is.
var (
	// ErrInput aborts a whole match run: missing job description, no
	// experience range extractable from it.
	ErrInput = errors.New("invalid input")

	// ErrExtraction means a document could not be turned into text.
	ErrExtraction = errors.New("text extraction failed")

	ErrFileNotFound = errors.New("file not found")

	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrPersistence covers shortlist failures; it never fails a match run.
	ErrPersistence = errors.New("shortlist not saved")

	// ErrAccess is returned for unknown or expired tokens and for paths
	// outside the whitelisted directories. Messages never carry paths.
	ErrAccess = errors.New("access denied")
)

// ErrUnavailable means an optional backend the operation needs is not
// configured.
var ErrUnavailable = errors.New("service unavailable")
