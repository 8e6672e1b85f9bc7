package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"agrirec/internal/llm"
)

func newScorer(t *testing.T, client llm.LLMClient) *RelevanceScorer {
	t.Helper()
	return &RelevanceScorer{LLM: client, Log: zaptest.NewLogger(t), Sleep: func(time.Duration) {}}
}

func TestScore_ParsesAnnotations(t *testing.T) {
	client := llm.NewFakeClient(
		llm.FakeReply{Text: `{"score": 85, "reasoning": "strong crop match", "key_benefits": ["drip kits", "50% cost share"]}`},
	)
	sc := newScorer(t, client)

	out := sc.Score(context.Background(), testProfile, []SubsidyRecord{{ID: "s1", Title: "Micro Irrigation"}})
	require.Len(t, out, 1)
	assert.Equal(t, 85, out[0].Score)
	assert.Equal(t, "strong crop match", out[0].ScoringReasoning)
	assert.Equal(t, []string{"drip kits", "50% cost share"}, out[0].KeyBenefits)
}

func TestScore_DefaultsForMissingFields(t *testing.T) {
	client := llm.NewFakeClient(llm.FakeReply{Text: `{}`})
	sc := newScorer(t, client)

	out := sc.Score(context.Background(), testProfile, []SubsidyRecord{{ID: "s1", Title: "Seed Grant"}})
	require.Len(t, out, 1)
	assert.Equal(t, defaultScore, out[0].Score)
	assert.Equal(t, defaultReasoning, out[0].ScoringReasoning)
	assert.Equal(t, []string{}, out[0].KeyBenefits)
}

func TestScore_KeyBenefitsNotAList(t *testing.T) {
	client := llm.NewFakeClient(
		llm.FakeReply{Text: `{"score": 60, "reasoning": "fine", "key_benefits": "cheap seeds"}`},
	)
	sc := newScorer(t, client)

	out := sc.Score(context.Background(), testProfile, []SubsidyRecord{{ID: "s1", Title: "Seed Grant"}})
	require.Len(t, out, 1)
	assert.Equal(t, 60, out[0].Score)
	assert.Equal(t, []string{}, out[0].KeyBenefits)
}

func TestScore_DefaultsOnParseFailure(t *testing.T) {
	client := llm.NewFakeClient(llm.FakeReply{Text: "Score: 90 out of 100."})
	sc := newScorer(t, client)

	out := sc.Score(context.Background(), testProfile, []SubsidyRecord{{ID: "s1", Title: "Solar Pump"}})
	require.Len(t, out, 1)
	assert.Equal(t, defaultScore, out[0].Score)
	assert.Equal(t, parseFailureReasoning, out[0].ScoringReasoning)
	assert.Equal(t, []string{}, out[0].KeyBenefits)
	assert.Equal(t, 1, client.Calls())
}

func TestScore_DefaultsOnExhaustedRetries(t *testing.T) {
	client := llm.NewFakeClient(
		llm.FakeReply{Err: serviceErr()},
		llm.FakeReply{Err: serviceErr()},
		llm.FakeReply{Err: serviceErr()},
	)
	sc := newScorer(t, client)

	out := sc.Score(context.Background(), testProfile, []SubsidyRecord{{ID: "s1", Title: "Solar Pump"}})
	require.Len(t, out, 1)
	assert.Equal(t, defaultScore, out[0].Score)
	assert.Equal(t, serviceFailureReasoning, out[0].ScoringReasoning)
	assert.Equal(t, 3, client.Calls())
}

// A transient error on the first attempt must not leak the default score:
// the second attempt's value wins.
func TestScore_RetryThenSuccess(t *testing.T) {
	client := llm.NewFakeClient(
		llm.FakeReply{Err: serviceErr()},
		llm.FakeReply{Text: `{"score": 72, "reasoning": "recovered", "key_benefits": []}`},
	)
	var slept []time.Duration
	sc := &RelevanceScorer{LLM: client, Log: zaptest.NewLogger(t), Sleep: func(d time.Duration) { slept = append(slept, d) }}

	out := sc.Score(context.Background(), testProfile, []SubsidyRecord{{ID: "s1", Title: "Solar Pump"}})
	require.Len(t, out, 1)
	assert.Equal(t, 72, out[0].Score)
	assert.Equal(t, "recovered", out[0].ScoringReasoning)
	assert.Equal(t, []time.Duration{500 * time.Millisecond}, slept)
}

func TestScore_StableDescendingSort(t *testing.T) {
	client := llm.NewFakeClient(
		llm.FakeReply{Text: `{"score": 60, "reasoning": "a"}`},
		llm.FakeReply{Text: `{"score": 90, "reasoning": "b"}`},
		llm.FakeReply{Text: `{"score": 60, "reasoning": "c"}`},
	)
	sc := newScorer(t, client)

	out := sc.Score(context.Background(), testProfile, []SubsidyRecord{
		{ID: "first60", Title: "A"},
		{ID: "the90", Title: "B"},
		{ID: "second60", Title: "C"},
	})
	require.Len(t, out, 3)
	assert.Equal(t, "the90", out[0].ID)
	// Equal scores keep their relative input order.
	assert.Equal(t, "first60", out[1].ID)
	assert.Equal(t, "second60", out[2].ID)
}
