package recommend

// maxRecommendations caps the entries returned in a bundle. The eligible
// count is reported separately and is not capped.
const maxRecommendations = 5

// RecommendationRanker is the third stage: it truncates the sorted scored
// list to the top entries and maps them into the output shape. No I/O.
type RecommendationRanker struct{}

// Rank packages the top entries of the already-sorted scored list into a
// bundle. TotalRecommended is the eligible count, decoupled from the
// number of entries actually returned.
func (RecommendationRanker) Rank(scored []ScoredSubsidy, eligibleCount int) RecommendationBundle {
	top := scored
	if len(top) > maxRecommendations {
		top = top[:maxRecommendations]
	}

	entries := make([]RecommendedSubsidy, 0, len(top))
	for i, s := range top {
		entries = append(entries, RecommendedSubsidy{
			Rank:           i + 1,
			SubsidyID:      s.ID,
			Title:          s.Title,
			Description:    s.Description,
			Amount:         s.Amount,
			RelevanceScore: s.Score,
			WhyRecommended: s.ScoringReasoning,
			KeyBenefits:    orEmpty(s.KeyBenefits),
			ApplicationDates: ApplicationDates{
				Start: dateOrNA(s.ApplicationStartDate),
				End:   dateOrNA(s.ApplicationEndDate),
			},
			DocumentsRequired: orEmpty(s.DocumentsRequired),
		})
	}

	return RecommendationBundle{
		RecommendedSubsidies: entries,
		TotalRecommended:     eligibleCount,
	}
}

func dateOrNA(d *string) string {
	if d == nil || *d == "" {
		return "N/A"
	}
	return *d
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
