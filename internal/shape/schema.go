package shape

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

// Structural schemas for the known shapes, written as CUE.
//
// Field sets follow the exchange's documented answer format: the time
// payload carries the epoch plus an RFC 1123 rendering, the ticker
// payload maps pair names to quote records with string-encoded decimals,
// and the open-orders payload keys order records under "open".
const (
	timeSchema = `
unixtime!: int
rfc1123!:  string
`

	tickerSchema = `
[string]: {
	a!: [string, string, string]
	b!: [string, string, string]
	c!: [string, string]
	v!: [string, string]
	p!: [string, string]
	t!: [int, int]
	l!: [string, string]
	h!: [string, string]
	o!: string
}
`

	ordersSchema = `
open!: {...}
`
)

var (
	schemaOnce sync.Once
	schemas    map[Tag]cue.Value
	schemaErr  error
)

// compileSchemas builds the per-tag CUE values once, via the CUE SDK's
// Go API directly (not a CLI subprocess).
func compileSchemas() {
	ctx := cuecontext.New()
	src := map[Tag]string{
		TagTime:   timeSchema,
		TagTicker: tickerSchema,
		TagOrders: ordersSchema,
	}

	schemas = make(map[Tag]cue.Value, len(src))
	for tag, s := range src {
		v := ctx.CompileString(s, cue.Filename(string(tag)+".cue"))
		if err := v.Err(); err != nil {
			schemaErr = fmt.Errorf("compile %s schema: %w", tag, err)
			return
		}
		schemas[tag] = v
	}
}

// validateSchema checks the payload structurally against the tag's
// compiled schema.
func validateSchema(tag Tag, result []byte) error {
	schemaOnce.Do(compileSchemas)
	if schemaErr != nil {
		return schemaErr
	}

	schema, ok := schemas[tag]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}

	if err := cuejson.Validate(result, schema); err != nil {
		return fmt.Errorf("does not match %s schema: %w", tag, err)
	}
	return nil
}
