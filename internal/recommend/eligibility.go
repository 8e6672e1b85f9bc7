package recommend

import (
	"context"
	"time"

	"go.uber.org/zap"

	"agrirec/internal/llm"
	"agrirec/internal/util/jsonutil"
)

// EligibilityFilter is the first stage: it reduces the full catalog to the
// subsidies the farmer is eligible for. Records without eligibility
// criteria are included without consulting the reasoning service; for the
// rest, the service adjudicates. The stage fails open: when no definitive
// judgment can be obtained (exhausted retries or unparseable output), the
// subsidy stays in, so a misbehaving service never silently strips
// eligible farmers from consideration.
type EligibilityFilter struct {
	LLM   llm.LLMClient
	Log   *zap.Logger
	Sleep func(time.Duration)
}

// Filter returns the eligible subset of subsidies, preserving catalog order.
func (f *EligibilityFilter) Filter(ctx context.Context, profile FarmerProfile, subsidies []SubsidyRecord) []SubsidyRecord {
	log := f.Log
	if log == nil {
		log = zap.NewNop()
	}
	eligible := make([]SubsidyRecord, 0, len(subsidies))

	for _, subsidy := range subsidies {
		if !subsidy.HasEligibilityCriteria() {
			eligible = append(eligible, subsidy)
			continue
		}

		itemLog := log.With(zap.String("subsidy", subsidy.Title))
		raw, err := invokeWithRetry(ctx, f.LLM, eligibilitySystem, eligibilityPrompt(profile, subsidy), f.Sleep, itemLog)
		if err != nil {
			itemLog.Error("eligibility check exhausted retries, defaulting to eligible", zap.Error(err))
			eligible = append(eligible, subsidy)
			continue
		}

		result, err := jsonutil.ParseObject(raw)
		if err != nil {
			itemLog.Warn("unparseable eligibility response, defaulting to eligible", zap.Error(err))
			eligible = append(eligible, subsidy)
			continue
		}

		if truthy(result["eligible"]) {
			eligible = append(eligible, subsidy)
		} else if reason, ok := result["reason"].(string); ok {
			itemLog.Debug("subsidy excluded", zap.String("reason", reason))
		}
	}
	return eligible
}

// truthy mirrors the lenient reading of the "eligible" field: a missing
// field is false, and a non-boolean value counts by its JSON truthiness.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}
