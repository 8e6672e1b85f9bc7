package jsonutil

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError indicates that response text was not valid JSON after
// normalization. Distinct from transport failures: a ParseError is
// terminal for the call that produced it and is never retried.
type ParseError struct {
	Err error
	Raw string
}

func (e *ParseError) Error() string {
	raw := e.Raw
	const max = 200
	if len(raw) > max {
		raw = raw[:max]
	}
	return fmt.Sprintf("parse LLM response: %v (content: %q)", e.Err, raw)
}

func (e *ParseError) Unwrap() error { return e.Err }

const fence = "```"

// StripFence normalizes model output that may be wrapped in a markdown
// code fence. Steps, in order: trim whitespace; if the text opens with a
// triple-backtick fence, drop the opening fence and an immediately
// following lowercase "json" tag, then cut at the closing fence; trim
// again. An uppercase "JSON" tag is not recognized, so such text still
// fails strict parsing downstream.
func StripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, fence) {
		return s
	}
	s = s[len(fence):]
	if strings.HasPrefix(s, "json") {
		s = s[len("json"):]
	}
	if i := strings.Index(s, fence); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// ParseObject normalizes raw model output and strictly parses it into a
// JSON object. Any failure is reported as a *ParseError.
func ParseObject(raw string) (map[string]any, error) {
	s := StripFence(raw)
	var out map[string]any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, &ParseError{Err: err, Raw: raw}
	}
	return out, nil
}

// Parse normalizes raw model output and unmarshals it into v.
func Parse(raw string, v any) error {
	s := StripFence(raw)
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return &ParseError{Err: err, Raw: raw}
	}
	return nil
}
