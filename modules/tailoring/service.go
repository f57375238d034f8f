package tailoring

import (
	"context"
	"fmt"

	"github.com/andreypavlenko/jobmatch/modules/matching"
	"github.com/andreypavlenko/jobmatch/modules/matchinput"
	profilemodel "github.com/andreypavlenko/jobmatch/modules/profiles/model"
	vacancymodel "github.com/andreypavlenko/jobmatch/modules/vacancies/model"
)

// Service implements §6's tailoring bundle: compute-on-demand scoring
// glued to the (profile, vacancy) facts a downstream writer needs.
type Service struct {
	profiles   ProfileReader
	vacancies  VacancyReader
	embeddings EmbeddingReader
	scores     ScoreStore
}

// New creates a tailoring Service.
func New(profiles ProfileReader, vacancies VacancyReader, embeddings EmbeddingReader, scores ScoreStore) *Service {
	return &Service{profiles: profiles, vacancies: vacancies, embeddings: embeddings, scores: scores}
}

// GetBundle returns the tailoring bundle for (profileID, vacancyID),
// computing and persisting the underlying score if absent.
func (s *Service) GetBundle(ctx context.Context, profileID, vacancyID string) (*Bundle, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	skills, err := s.profiles.ListSkills(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("load profile skills: %w", err)
	}

	vacancy, err := s.vacancies.GetByID(ctx, vacancyID)
	if err != nil {
		return nil, fmt.Errorf("load vacancy: %w", err)
	}
	parsed, err := s.vacancies.GetParsed(ctx, vacancyID)
	plainText := ""
	if err == nil {
		plainText = parsed.PlainText
	}

	score, evidence, err := s.scores.GetOrCompute(ctx, profileID, vacancyID, func() (matching.Input, error) {
		return s.buildInput(ctx, profile, skills, vacancy, plainText, profileID, vacancyID)
	})
	if err != nil {
		return nil, fmt.Errorf("get or compute score: %w", err)
	}

	bundle := &Bundle{
		Profile:     profileFacts(profile, skills),
		Vacancy:     vacancyFacts(vacancy, plainText),
		Explanation: score.Explanation,
		Evidence:    make([]Evidence, 0, len(evidence)),
	}
	for _, e := range evidence {
		ev := Evidence{
			EvidenceText: e.EvidenceText,
			EvidenceType: e.EvidenceType,
			Confidence:   e.Confidence,
		}
		if e.RequirementID != nil {
			ev.RequirementID = *e.RequirementID
		}
		bundle.Evidence = append(bundle.Evidence, ev)
	}
	return bundle, nil
}

// buildInput assembles matching.Input from facts the caller already
// fetched, re-fetching only what GetOrCompute's closure needs and
// GetBundle didn't already load: the skill requirements and embeddings.
func (s *Service) buildInput(ctx context.Context, profile *profilemodel.Profile, skills []profilemodel.Skill, vacancy *vacancymodel.Vacancy, plainText, profileID, vacancyID string) (matching.Input, error) {
	profileInput := matchinput.Profile(profile, skills)

	reqs, err := s.vacancies.ListSkillRequirements(ctx, vacancyID)
	if err != nil {
		return matching.Input{}, fmt.Errorf("load requirements: %w", err)
	}
	vacancyInput, reqInputs := matchinput.Vacancy(vacancy, plainText, reqs)

	var profileVector, vacancyVector []float32
	if pe, err := s.embeddings.GetProfileEmbedding(ctx, profileID); err == nil {
		profileVector = pe.Embedding
	}
	if ve, err := s.embeddings.GetVacancyEmbedding(ctx, vacancyID); err == nil {
		vacancyVector = ve.Embedding
	}

	return matching.Input{
		Profile:          profileInput,
		Vacancy:          vacancyInput,
		Requirements:     reqInputs,
		ProfileEmbedding: profileVector,
		VacancyEmbedding: vacancyVector,
	}, nil
}
