package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"agrirec/internal/llm"
	"agrirec/internal/util/jsonutil"
)

// Fallback texts for subsidies that could not be scored. A subsidy that
// cannot be scored is never dropped, only scored neutrally.
const (
	defaultScore            = 50
	defaultReasoning        = "Relevant subsidy for this farmer profile."
	parseFailureReasoning   = "Unable to generate detailed scoring, but subsidy is eligible."
	serviceFailureReasoning = "Scoring unavailable due to service error, but subsidy is eligible."
)

// RelevanceScorer is the second stage: it annotates each eligible subsidy
// with a relevance score, a justification, and key benefits, then sorts by
// score descending. The sort is stable so that equal scores keep their
// catalog order; downstream ranking must be deterministic for identical
// inputs.
type RelevanceScorer struct {
	LLM   llm.LLMClient
	Log   *zap.Logger
	Sleep func(time.Duration)
}

// Score returns every eligible subsidy with scoring annotations, sorted by
// score descending.
func (sc *RelevanceScorer) Score(ctx context.Context, profile FarmerProfile, eligible []SubsidyRecord) []ScoredSubsidy {
	log := sc.Log
	if log == nil {
		log = zap.NewNop()
	}
	scored := make([]ScoredSubsidy, 0, len(eligible))

	for _, subsidy := range eligible {
		itemLog := log.With(zap.String("subsidy", subsidy.Title))
		entry := ScoredSubsidy{
			SubsidyRecord:    subsidy,
			Score:            defaultScore,
			ScoringReasoning: defaultReasoning,
			KeyBenefits:      []string{},
		}

		raw, err := invokeWithRetry(ctx, sc.LLM, scoringSystem, scoringPrompt(profile, subsidy), sc.Sleep, itemLog)
		if err != nil {
			itemLog.Error("scoring exhausted retries, using default score", zap.Error(err))
			entry.ScoringReasoning = serviceFailureReasoning
			scored = append(scored, entry)
			continue
		}

		result, err := jsonutil.ParseObject(raw)
		if err != nil {
			itemLog.Warn("unparseable scoring response, using default score", zap.Error(err))
			entry.ScoringReasoning = parseFailureReasoning
			scored = append(scored, entry)
			continue
		}

		if v, ok := result["score"].(float64); ok {
			entry.Score = int(v)
		}
		if v, ok := result["reasoning"].(string); ok {
			entry.ScoringReasoning = v
		}
		entry.KeyBenefits = stringList(result["key_benefits"])
		scored = append(scored, entry)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// stringList coerces a parsed key_benefits value into []string. Missing or
// non-list values become an empty list; non-string elements are rendered.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprint(it))
	}
	return out
}
