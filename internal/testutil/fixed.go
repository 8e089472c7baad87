package testutil

import "sync"

// FixedRunID always generates the same run identifier.
//
// Golden report snapshots embed the run ID, so tests pin it:
//
//	gen := testutil.NewFixedRunID("run-00000000-0000-0000-0000-000000000001")
//
// Implements probe.IDGenerator.
type FixedRunID struct {
	id string
}

// NewFixedRunID creates a generator that always returns id.
// An empty id defaults to "test-run-default".
func NewFixedRunID(id string) *FixedRunID {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedRunID{id: id}
}

// Generate returns the fixed run ID.
func (g *FixedRunID) Generate() string {
	return g.id
}

// SequenceNonce is a thread-safe monotonic nonce source for signing
// tests. Unlike the wall-clock source it can be reset, so the same
// test produces identical signatures on every run.
type SequenceNonce struct {
	mu   sync.Mutex
	next int64
}

// NewSequenceNonce creates a nonce source starting at start.
func NewSequenceNonce(start int64) *SequenceNonce {
	return &SequenceNonce{next: start}
}

// Nonce returns the next nonce. Monotonic: never repeats, never
// decreases.
func (n *SequenceNonce) Nonce() int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	v := n.next
	n.next++
	return v
}
