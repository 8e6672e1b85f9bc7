package llm

import (
	"context"
	"sync"
)

// FakeReply is one scripted response for FakeClient.
type FakeReply struct {
	Text string
	Err  error
}

// FakeClient returns scripted replies in order, for offline runs and tests.
// Once the script is exhausted it keeps returning an empty JSON object.
type FakeClient struct {
	mu      sync.Mutex
	replies []FakeReply
	calls   int
}

func NewFakeClient(replies ...FakeReply) *FakeClient {
	return &FakeClient{replies: replies}
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

// Calls reports how many times Generate has been invoked.
func (f *FakeClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *FakeClient) Generate(ctx context.Context, system, user string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.replies) == 0 {
		return "{}", nil
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r.Text, r.Err
}
