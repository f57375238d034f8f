// Package model holds the persisted shape of a matching-engine run: one
// VacancyScore per (profile, vacancy), plus the ResumeEvidence rows that
// back it (§3 "VacancyScore", "ResumeEvidence").
package model

import (
	"time"

	"github.com/andreypavlenko/jobmatch/modules/matching"
)

// VacancyScore is unique per (ProfileID, VacancyID), UPSERTed per scoring.
type VacancyScore struct {
	ProfileID   string
	VacancyID   string
	Layer1Score float64
	Layer2Score float64
	FinalScore  float64
	Verdict     matching.Verdict
	Explanation matching.Explanation
	ComputedAt  time.Time
}

// ResumeEvidence is a join row between profile, vacancy, and (optionally)
// the specific requirement it satisfies.
type ResumeEvidence struct {
	ID            string
	ProfileID     string
	VacancyID     string
	RequirementID *string
	EvidenceText  string
	EvidenceType  string
	Confidence    float64
}

// RecommendationItem is a VacancyScore joined with the vacancy fields a
// recommendation listing needs (§6 "GET /profiles/{id}/recommendations").
type RecommendationItem struct {
	VacancyID   string
	VacancyTitle string
	Company     *string
	FinalScore  float64
	Verdict     matching.Verdict
	Explanation matching.Explanation
	ComputedAt  time.Time
}
