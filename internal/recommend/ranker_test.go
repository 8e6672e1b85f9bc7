package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredFixture(id string, score int) ScoredSubsidy {
	return ScoredSubsidy{
		SubsidyRecord:    SubsidyRecord{ID: id, Title: "Subsidy " + id},
		Score:            score,
		ScoringReasoning: "reason " + id,
		KeyBenefits:      []string{"benefit " + id},
	}
}

func TestRank_TopFiveCapWithDecoupledTotal(t *testing.T) {
	scored := []ScoredSubsidy{
		scoredFixture("a", 95),
		scoredFixture("b", 85),
		scoredFixture("c", 70),
		scoredFixture("d", 60),
		scoredFixture("e", 10),
		scoredFixture("f", 5),
	}
	bundle := RecommendationRanker{}.Rank(scored, 6)

	require.Len(t, bundle.RecommendedSubsidies, 5)
	assert.Equal(t, 6, bundle.TotalRecommended)
	for i, r := range bundle.RecommendedSubsidies {
		assert.Equal(t, i+1, r.Rank)
	}
	assert.Equal(t, "a", bundle.RecommendedSubsidies[0].SubsidyID)
	assert.Equal(t, "e", bundle.RecommendedSubsidies[4].SubsidyID)
}

func TestRank_FewerThanFive(t *testing.T) {
	bundle := RecommendationRanker{}.Rank([]ScoredSubsidy{scoredFixture("a", 40)}, 1)
	require.Len(t, bundle.RecommendedSubsidies, 1)
	assert.Equal(t, 1, bundle.RecommendedSubsidies[0].Rank)
	assert.Equal(t, 1, bundle.TotalRecommended)
}

func TestRank_Empty(t *testing.T) {
	bundle := RecommendationRanker{}.Rank(nil, 0)
	assert.Empty(t, bundle.RecommendedSubsidies)
	assert.Equal(t, 0, bundle.TotalRecommended)
}

func TestRank_FieldMappingAndDefaults(t *testing.T) {
	start := "2026-04-01"
	full := ScoredSubsidy{
		SubsidyRecord: SubsidyRecord{
			ID:                   "s1",
			Title:                "Drip Irrigation Grant",
			Description:          "Cost share for drip systems",
			Amount:               50000,
			DocumentsRequired:    []string{"land record", "aadhaar"},
			ApplicationStartDate: &start,
			// End date absent.
		},
		Score:            88,
		ScoringReasoning: "great fit",
		KeyBenefits:      []string{"water savings"},
	}
	bare := ScoredSubsidy{
		SubsidyRecord: SubsidyRecord{ID: "s2", Title: "Bare"},
		Score:         50,
	}

	bundle := RecommendationRanker{}.Rank([]ScoredSubsidy{full, bare}, 2)
	require.Len(t, bundle.RecommendedSubsidies, 2)

	got := bundle.RecommendedSubsidies[0]
	assert.Equal(t, "s1", got.SubsidyID)
	assert.Equal(t, "Drip Irrigation Grant", got.Title)
	assert.Equal(t, "Cost share for drip systems", got.Description)
	assert.Equal(t, float64(50000), got.Amount)
	assert.Equal(t, 88, got.RelevanceScore)
	assert.Equal(t, "great fit", got.WhyRecommended)
	assert.Equal(t, []string{"water savings"}, got.KeyBenefits)
	assert.Equal(t, ApplicationDates{Start: "2026-04-01", End: "N/A"}, got.ApplicationDates)
	assert.Equal(t, []string{"land record", "aadhaar"}, got.DocumentsRequired)

	defaulted := bundle.RecommendedSubsidies[1]
	assert.Equal(t, "", defaulted.Description)
	assert.Equal(t, float64(0), defaulted.Amount)
	assert.Equal(t, "", defaulted.WhyRecommended)
	assert.Equal(t, []string{}, defaulted.KeyBenefits)
	assert.Equal(t, ApplicationDates{Start: "N/A", End: "N/A"}, defaulted.ApplicationDates)
	assert.Equal(t, []string{}, defaulted.DocumentsRequired)
}
