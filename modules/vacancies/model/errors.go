package model

import "errors"

var (
	// ErrVacancyNotFound is returned when a vacancy is not found.
	ErrVacancyNotFound = errors.New("vacancy not found")

	// ErrVacancyExternalIDRequired is returned when a vacancy is missing
	// its natural key.
	ErrVacancyExternalIDRequired = errors.New("vacancy external_id is required")

	// ErrVacancyTitleRequired is returned when vacancy title is empty.
	ErrVacancyTitleRequired = errors.New("vacancy title is required")
)

// ErrorCode represents error codes returned at the HTTP boundary.
type ErrorCode string

const (
	CodeVacancyNotFound         ErrorCode = "VACANCY_NOT_FOUND"
	CodeVacancyExternalIDRequired ErrorCode = "VACANCY_EXTERNAL_ID_REQUIRED"
	CodeVacancyTitleRequired    ErrorCode = "VACANCY_TITLE_REQUIRED"
	CodeInternalError           ErrorCode = "INTERNAL_ERROR"
)

// GetErrorCode maps errors to error codes.
func GetErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrVacancyNotFound):
		return CodeVacancyNotFound
	case errors.Is(err, ErrVacancyExternalIDRequired):
		return CodeVacancyExternalIDRequired
	case errors.Is(err, ErrVacancyTitleRequired):
		return CodeVacancyTitleRequired
	default:
		return CodeInternalError
	}
}

// GetErrorMessage returns a user-friendly error message.
func GetErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrVacancyNotFound):
		return "Vacancy not found"
	case errors.Is(err, ErrVacancyExternalIDRequired):
		return "Vacancy external_id is required"
	case errors.Is(err, ErrVacancyTitleRequired):
		return "Vacancy title is required"
	default:
		return "Internal server error"
	}
}
