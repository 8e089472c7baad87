package kraken

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Answer is the envelope every Kraken endpoint wraps its payload in.
// A successful answer has an empty error list and a non-null result;
// the exchange reports API-level failures (bad key, invalid nonce, ...)
// through the error list even on HTTP 200.
type Answer struct {
	Error  []string        `json:"error"`
	Result json.RawMessage `json:"result"`
}

// DecodeAnswer parses a response body into the answer envelope.
func DecodeAnswer(body []byte) (*Answer, error) {
	var a Answer
	if err := json.Unmarshal(body, &a); err != nil {
		return nil, fmt.Errorf("decode answer envelope: %w", err)
	}
	return &a, nil
}

// Err returns a non-nil error when the envelope reports API errors or
// lacks a result.
func (a *Answer) Err() error {
	if len(a.Error) > 0 {
		return fmt.Errorf("answer reports API errors: %s", strings.Join(a.Error, "; "))
	}
	if len(a.Result) == 0 || string(a.Result) == "null" {
		return fmt.Errorf("answer has no result")
	}
	return nil
}
