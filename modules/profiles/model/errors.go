package model

import "errors"

var (
	// ErrProfileNotFound is returned when a profile is not found.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrResumeTextRequired is returned when a profile is missing its
	// free-text resume body.
	ErrResumeTextRequired = errors.New("profile resume_text is required")

	// ErrResumeVersionNotFound is returned when a resume version is not found.
	ErrResumeVersionNotFound = errors.New("resume version not found")

	// ErrCoverLetterVersionNotFound is returned when a cover letter version is not found.
	ErrCoverLetterVersionNotFound = errors.New("cover letter version not found")

	// ErrEmptyPDFText is returned when a PDF upload extracts no text at all
	// (e.g. a scanned image with no text layer), since a blank
	// ResumeVersion.ContentText is useless to component I/J/L downstream.
	ErrEmptyPDFText = errors.New("pdf contains no extractable text")
)

// ErrorCode represents error codes returned at the HTTP boundary.
type ErrorCode string

const (
	CodeProfileNotFound            ErrorCode = "PROFILE_NOT_FOUND"
	CodeResumeTextRequired         ErrorCode = "PROFILE_RESUME_TEXT_REQUIRED"
	CodeResumeVersionNotFound      ErrorCode = "RESUME_VERSION_NOT_FOUND"
	CodeCoverLetterVersionNotFound ErrorCode = "COVER_LETTER_VERSION_NOT_FOUND"
	CodeInternalError              ErrorCode = "INTERNAL_ERROR"
)

// GetErrorCode maps errors to error codes.
func GetErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		return CodeProfileNotFound
	case errors.Is(err, ErrResumeTextRequired):
		return CodeResumeTextRequired
	case errors.Is(err, ErrResumeVersionNotFound):
		return CodeResumeVersionNotFound
	case errors.Is(err, ErrCoverLetterVersionNotFound):
		return CodeCoverLetterVersionNotFound
	default:
		return CodeInternalError
	}
}

// GetErrorMessage returns a user-friendly error message.
func GetErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		return "Profile not found"
	case errors.Is(err, ErrResumeTextRequired):
		return "Profile resume_text is required"
	case errors.Is(err, ErrResumeVersionNotFound):
		return "Resume version not found"
	case errors.Is(err, ErrCoverLetterVersionNotFound):
		return "Cover letter version not found"
	default:
		return "Internal server error"
	}
}
