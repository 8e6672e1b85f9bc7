package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"agrirec/internal/llm"
)

// Pipeline sequences the three stages over a fresh per-request state:
// eligibility filter, relevance scorer, recommendation ranker. Once
// construction succeeds, Recommend always returns a bundle for well-formed
// input; per-item service and parse failures are absorbed into fail-safe
// defaults and never surface to the caller.
type Pipeline struct {
	filter *EligibilityFilter
	scorer *RelevanceScorer
	ranker RecommendationRanker
	log    *zap.Logger
}

// New builds a pipeline around the given reasoning-service client. A nil
// client is a configuration error and fails construction; silently
// degrading every item would mask the real problem.
func New(client llm.LLMClient, logger *zap.Logger) (*Pipeline, error) {
	if client == nil {
		return nil, errors.New("recommend: reasoning-service client is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		filter: &EligibilityFilter{LLM: client, Log: logger},
		scorer: &RelevanceScorer{LLM: client, Log: logger},
		log:    logger,
	}, nil
}

// Recommend runs the full pipeline: catalog -> eligible -> scored -> bundle.
// Stages execute strictly in order; no stage reads a field the previous
// stage has not populated.
func (p *Pipeline) Recommend(ctx context.Context, profile FarmerProfile, catalog []SubsidyRecord) (RecommendationBundle, error) {
	if err := ValidateProfile(profile); err != nil {
		return RecommendationBundle{}, err
	}

	log := p.log.With(zap.String("request_id", uuid.NewString()))
	state := &PipelineState{FarmerProfile: profile, AllSubsidies: catalog}
	overall := time.Now()

	start := time.Now()
	state.EligibleSubsidies = p.filter.Filter(ctx, state.FarmerProfile, state.AllSubsidies)
	log.Info("eligibility filter done",
		zap.Int("catalog", len(state.AllSubsidies)),
		zap.Int("eligible", len(state.EligibleSubsidies)),
		zap.Duration("elapsed", time.Since(start)),
	)

	start = time.Now()
	state.ScoredSubsidies = p.scorer.Score(ctx, state.FarmerProfile, state.EligibleSubsidies)
	log.Info("relevance scoring done",
		zap.Int("scored", len(state.ScoredSubsidies)),
		zap.Duration("elapsed", time.Since(start)),
	)

	state.RecommendationBundle = p.ranker.Rank(state.ScoredSubsidies, len(state.EligibleSubsidies))
	log.Info("recommendation done",
		zap.Int("returned", len(state.RecommendationBundle.RecommendedSubsidies)),
		zap.Int("total_recommended", state.RecommendationBundle.TotalRecommended),
		zap.Duration("total", time.Since(overall)),
	)
	return state.RecommendationBundle, nil
}

// ValidateProfile checks the fields a recommendation cannot proceed
// without. A failing profile is a caller error, not a degraded run.
func ValidateProfile(p FarmerProfile) error {
	var missing []string
	if p.Income == "" {
		missing = append(missing, "income")
	}
	if p.FarmerType == "" {
		missing = append(missing, "farmer_type")
	}
	if p.LandSize == 0 {
		missing = append(missing, "land_size")
	}
	if p.CropType == "" {
		missing = append(missing, "crop_type")
	}
	if p.State == "" {
		missing = append(missing, "state")
	}
	if len(missing) > 0 {
		return fmt.Errorf("recommend: missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Summarize renders the one-line human summary shown alongside a bundle.
func Summarize(p FarmerProfile, b RecommendationBundle) string {
	return fmt.Sprintf(
		"Based on your profile as a %s with %g acres growing %s in %s, %s, we found %d eligible subsidies tailored to your needs.",
		p.FarmerType, p.LandSize, p.CropType, p.District, p.State, b.TotalRecommended,
	)
}
