package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/andreypavlenko/jobmatch/modules/embeddings"
	"github.com/andreypavlenko/jobmatch/modules/textclean"
	"github.com/andreypavlenko/jobmatch/modules/vectorstore"
)

// handleBuildVacancyEmbedding implements build_vacancy_embedding (§4.8):
// compose title ∪ plain-text-or-cleaned-description ∪ skill raw texts, embed
// it, and UPSERT the vector keyed by vacancy_id.
func (d *Deps) handleBuildVacancyEmbedding(ctx context.Context, raw json.RawMessage) (any, error) {
	var args BuildVacancyEmbeddingArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("decode %s args: %w", BuildVacancyEmbeddingTask, err)
	}

	vacancy, err := d.Vacancies.GetByID(ctx, args.VacancyID)
	if err != nil {
		return nil, fmt.Errorf("load vacancy %s: %w", args.VacancyID, err)
	}

	parsed, parseErr := d.Vacancies.GetParsed(ctx, args.VacancyID)
	hasParsed := parseErr == nil
	plainText := ""
	if hasParsed {
		plainText = parsed.PlainText
	}

	reqs, err := d.Vacancies.ListSkillRequirements(ctx, args.VacancyID)
	if err != nil {
		return nil, fmt.Errorf("load requirements for %s: %w", args.VacancyID, err)
	}
	skillTexts := make([]string, 0, len(reqs))
	for _, r := range reqs {
		if r.Kind == "skill" {
			skillTexts = append(skillTexts, r.RawText)
		}
	}

	doc := embeddings.BuildVacancyDocument(vacancy.Title, plainText, hasParsed, textclean.Clean(vacancy.Description), skillTexts)

	vector, err := d.Embedder.Embed(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("embed vacancy %s: %w", args.VacancyID, err)
	}

	if err := d.Embeddings.UpsertVacancyEmbedding(ctx, vectorstore.VacancyEmbedding{
		VacancyID: args.VacancyID,
		Embedding: vector,
		ModelName: d.Embedder.Name(),
	}); err != nil {
		return nil, fmt.Errorf("upsert vacancy embedding %s: %w", args.VacancyID, err)
	}

	return embeddingResult{EntityID: args.VacancyID, Provider: d.Embedder.Name(), Dim: d.Embedder.Dimension()}, nil
}

// handleBuildProfileEmbedding implements build_profile_embedding (§4.8):
// compose the terse document variant (title is not a profile field; resume
// text and skills text stand in for it), embed it, and UPSERT.
//
// The richer variant (embeddings.BuildProfileDocumentRich, merging the
// latest approved resume version plus skills and recent highlights) is
// implemented and available but not selected here by default; wiring it in
// requires loading ResumeVersion/sub-entity history this task doesn't
// currently fetch (see DESIGN.md's Open Question decision).
func (d *Deps) handleBuildProfileEmbedding(ctx context.Context, raw json.RawMessage) (any, error) {
	var args BuildProfileEmbeddingArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("decode %s args: %w", BuildProfileEmbeddingTask, err)
	}

	profile, err := d.Profiles.GetByID(ctx, args.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", args.ProfileID, err)
	}

	skillsText := ""
	if profile.SkillsText != nil {
		skillsText = *profile.SkillsText
	}

	doc := embeddings.BuildProfileDocumentTerse(embeddings.ProfileDocumentInput{
		ResumeText: profile.ResumeText,
		SkillsText: skillsText,
	})

	vector, err := d.Embedder.Embed(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("embed profile %s: %w", args.ProfileID, err)
	}

	if err := d.Embeddings.UpsertProfileEmbedding(ctx, vectorstore.ProfileEmbedding{
		ProfileID: args.ProfileID,
		Embedding: vector,
		ModelName: d.Embedder.Name(),
	}); err != nil {
		return nil, fmt.Errorf("upsert profile embedding %s: %w", args.ProfileID, err)
	}

	return embeddingResult{EntityID: args.ProfileID, Provider: d.Embedder.Name(), Dim: d.Embedder.Dimension()}, nil
}
