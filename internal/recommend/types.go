package recommend

import (
	"bytes"
	"encoding/json"
)

// FarmerProfile describes the farmer a recommendation request is for.
// Immutable input to the pipeline; never mutated.
type FarmerProfile struct {
	Income     string  `json:"income"`
	LandSize   float64 `json:"land_size"`
	FarmerType string  `json:"farmer_type"`
	CropType   string  `json:"crop_type"`
	State      string  `json:"state"`
	District   string  `json:"district"`

	// Secondary attributes; optional.
	Season          string   `json:"season,omitempty"`
	SoilType        string   `json:"soil_type,omitempty"`
	WaterSources    []string `json:"water_sources,omitempty"`
	RainfallRegion  string   `json:"rainfall_region,omitempty"`
	TemperatureZone string   `json:"temperature_zone,omitempty"`
	PastSubsidies   []string `json:"past_subsidies,omitempty"`
}

// SubsidyRecord is one catalog entry, supplied by the caller and read-only
// to the pipeline. EligibilityCriteria is kept as raw JSON because its
// shape varies across subsidy sources; the pipeline only interpolates it
// into prompts.
type SubsidyRecord struct {
	ID                   string          `json:"id"`
	Title                string          `json:"title"`
	Description          string          `json:"description"`
	Amount               float64         `json:"amount"`
	EligibilityCriteria  json.RawMessage `json:"eligibility_criteria,omitempty"`
	DocumentsRequired    []string        `json:"documents_required,omitempty"`
	ApplicationStartDate *string         `json:"application_start_date"`
	ApplicationEndDate   *string         `json:"application_end_date"`
}

// HasEligibilityCriteria reports whether the record carries criteria worth
// adjudicating. Absent, null, empty-string, empty-array and empty-object
// values all count as "no criteria" and bypass the reasoning service.
func (s SubsidyRecord) HasEligibilityCriteria() bool {
	raw := bytes.TrimSpace(s.EligibilityCriteria)
	switch string(raw) {
	case "", "null", `""`, "[]", "{}":
		return false
	}
	return true
}

// ScoredSubsidy is a SubsidyRecord annotated by the relevance scorer.
type ScoredSubsidy struct {
	SubsidyRecord
	Score            int      `json:"score"`
	ScoringReasoning string   `json:"scoring_reasoning"`
	KeyBenefits      []string `json:"key_benefits"`
}

// ApplicationDates is the start/end pair on a recommendation entry. Either
// side defaults to "N/A" when the underlying date is absent.
type ApplicationDates struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// RecommendedSubsidy is one rank-annotated entry of the final bundle.
type RecommendedSubsidy struct {
	Rank              int              `json:"rank"`
	SubsidyID         string           `json:"subsidy_id"`
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	Amount            float64          `json:"amount"`
	RelevanceScore    int              `json:"relevance_score"`
	WhyRecommended    string           `json:"why_recommended"`
	KeyBenefits       []string         `json:"key_benefits"`
	ApplicationDates  ApplicationDates `json:"application_dates"`
	DocumentsRequired []string         `json:"documents_required"`
}

// RecommendationBundle is the pipeline's output. TotalRecommended counts
// eligible subsidies, not returned entries: a farmer can be eligible for
// more subsidies than the top-5 list shows.
type RecommendationBundle struct {
	RecommendedSubsidies []RecommendedSubsidy `json:"recommended_subsidies"`
	TotalRecommended     int                  `json:"total_recommended"`
}

// PipelineState is the per-request working set. It is created fresh per
// invocation, filled strictly in stage order, and discarded after the
// bundle is returned.
type PipelineState struct {
	FarmerProfile        FarmerProfile
	AllSubsidies         []SubsidyRecord
	EligibleSubsidies    []SubsidyRecord
	ScoredSubsidies      []ScoredSubsidy
	RecommendationBundle RecommendationBundle
}
