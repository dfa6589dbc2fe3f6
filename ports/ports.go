// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"time"

	"github.com/rosterforge/rostergen/domain/roster"
	"github.com/rosterforge/rostergen/pkg/respschema"
)

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// ContentGenerator is the external generative model boundary: a
// natural-language specification plus a strict output schema yields one
// JSON document. Implementations must reject truncated or non-conforming
// responses as errors rather than return partial documents.
type ContentGenerator interface {
	Generate(ctx context.Context, prompt string, schema *respschema.Schema) ([]byte, error)
}

// TableWriter serializes one district's assembled tables. It returns the
// directory the file set was written to.
type TableWriter interface {
	WriteDistrict(t roster.Tables) (string, error)
}
