package model

import "errors"

// ErrScoreNotFound is returned when no VacancyScore exists for a
// (profile, vacancy) pair.
var ErrScoreNotFound = errors.New("matchstore: score not found")
