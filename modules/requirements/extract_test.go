package requirements_test

import (
	"testing"

	"github.com/andreypavlenko/jobmatch/modules/descparse"
	"github.com/andreypavlenko/jobmatch/modules/requirements"
	"github.com/stretchr/testify/require"
)

func TestExtractFromSectionsHardAndNice(t *testing.T) {
	sections := map[string][]string{
		descparse.SectionRequirements: {
			"Опыт работы с Go от 3 лет",
			"Знание PostgreSQL",
			"Будет плюсом опыт с Kafka",
		},
		descparse.SectionNiceToHave: {
			"Docker и Kubernetes",
		},
		descparse.SectionOther: {},
	}

	reqs := requirements.ExtractFromSections(sections)

	byKey := map[string]requirements.Requirement{}
	for _, r := range reqs {
		byKey[r.NormalizedKey] = r
	}

	goReq, ok := byKey["go"]
	require.True(t, ok)
	require.True(t, goReq.IsHard)
	require.Equal(t, 3, goReq.Weight)

	kafkaReq, ok := byKey["kafka"]
	require.True(t, ok)
	require.False(t, kafkaReq.IsHard, "nice-marker on a requirements-section line downgrades it")

	dockerReq, ok := byKey["docker"]
	require.True(t, ok)
	require.False(t, dockerReq.IsHard, "nice_to_have section always classifies as nice")
}

func TestExtractFromSectionsMustBeatsNiceOnDedup(t *testing.T) {
	sections := map[string][]string{
		descparse.SectionRequirements: {"Опыт работы с Git"},
		descparse.SectionNiceToHave:   {"Будет плюсом Git"},
		descparse.SectionOther:        {},
	}

	reqs := requirements.ExtractFromSections(sections)
	require.Len(t, reqs, 1)
	require.True(t, reqs[0].IsHard)
}

func TestExtractFromSectionsOnlyFormatException(t *testing.T) {
	sections := map[string][]string{
		descparse.SectionOther: {
			"Требуется присутствие только в офисе каждый день",
		},
		descparse.SectionRequirements: {},
		descparse.SectionNiceToHave:   {},
	}

	// fewer than 3 requirements triggers the other-lines fallback scan;
	// the only-format exception should still demote this line to other
	// and it should not surface as a requirement.
	reqs := requirements.ExtractFromSections(sections)
	require.Empty(t, reqs)
}

func TestExtractFromSectionsFallbackScansOtherWhenSparse(t *testing.T) {
	sections := map[string][]string{
		descparse.SectionRequirements: {"Опыт работы с Go"},
		descparse.SectionNiceToHave:   {},
		descparse.SectionOther:        {"Знание SQL будет плюсом для этой роли"},
	}

	reqs := requirements.ExtractFromSections(sections)

	var sqlFound bool
	for _, r := range reqs {
		if r.NormalizedKey == "sql" {
			sqlFound = true
			require.False(t, r.IsHard)
			require.Equal(t, 1, r.Weight)
			require.Equal(t, "text_other_fallback", r.Source)
		}
	}
	require.True(t, sqlFound)
}

func TestExtractConstraints(t *testing.T) {
	fields := requirements.StructuredFields{
		Experience:  "3-6 years",
		Schedule:    "full_day",
		Employment:  "full",
		Area:        "Moscow",
		Description: "Обязательно наличие гражданства РФ.",
	}

	reqs := requirements.ExtractConstraints(fields)
	require.Len(t, reqs, 4)
	for _, r := range reqs {
		require.Equal(t, requirements.KindConstraint, r.Kind)
		require.True(t, r.IsHard)
		require.Equal(t, 3, r.Weight)
	}
}

func TestExtractConstraintsSkipsEmptyFields(t *testing.T) {
	fields := requirements.StructuredFields{Experience: "3-6 years"}
	reqs := requirements.ExtractConstraints(fields)
	require.Len(t, reqs, 1)
	require.Equal(t, "experience:3-6 years", reqs[0].NormalizedKey)
}

func TestTokenizePreservesTechnicalTokens(t *testing.T) {
	require.Equal(t, []string{"c++"}, requirements.Tokenize("C++"))
	require.Equal(t, []string{"node.js"}, requirements.Tokenize("Node.js"))
	require.Equal(t, []string{"c#"}, requirements.Tokenize("C#"))
}
