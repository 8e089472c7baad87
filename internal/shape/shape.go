// Package shape validates exchange response payloads against a closed
// set of known shapes.
//
// Each endpoint category has one validator, selected by an enumerated
// tag. Structural validation (fields and types) is expressed as a CUE
// schema; semantic checks the schema cannot express (numeric strings,
// timestamp consistency, the requested pair being present) run in Go
// afterwards.
//
// The tag set is closed: asking for a validator outside it is a
// configuration error on the caller's side, reported via ErrUnknownTag.
package shape

import (
	"errors"
	"fmt"
)

// Tag identifies a response-shape validator.
type Tag string

// The closed set of known shape tags.
const (
	TagTime   Tag = "time"
	TagTicker Tag = "ticker"
	TagOrders Tag = "orders"
)

// ErrUnknownTag reports a shape tag outside the closed set.
// Callers should treat it as a configuration error, not a payload error.
var ErrUnknownTag = errors.New("unknown shape tag")

// Options carries per-scenario context a validator may need.
type Options struct {
	// Pair is the trading pair the request asked for ("xbtusd").
	// Only the ticker validator uses it; empty means "any pair".
	Pair string
}

// Known reports whether tag is in the closed validator set.
func Known(tag Tag) bool {
	switch tag {
	case TagTime, TagTicker, TagOrders:
		return true
	}
	return false
}

// Tags returns the closed set of known tags in stable order.
func Tags() []Tag {
	return []Tag{TagTime, TagTicker, TagOrders}
}

// Validate checks the result payload of a successful exchange answer
// against the shape named by tag. The payload is the raw JSON of the
// envelope's result field, without the error/result wrapper.
//
// Returns ErrUnknownTag (wrapped) for a tag outside the closed set, and
// a descriptive error when the payload does not have the shape.
func Validate(tag Tag, result []byte, opts Options) error {
	if !Known(tag) {
		return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}

	if err := validateSchema(tag, result); err != nil {
		return fmt.Errorf("%s payload: %w", tag, err)
	}

	var err error
	switch tag {
	case TagTime:
		err = validateTime(result)
	case TagTicker:
		err = validateTicker(result, opts.Pair)
	case TagOrders:
		err = validateOrders(result)
	}
	if err != nil {
		return fmt.Errorf("%s payload: %w", tag, err)
	}
	return nil
}
