package chat

import (
	"context"

	"github.com/verdant-cloud/strainrec/internal/domain/catalog"
	"github.com/verdant-cloud/strainrec/internal/domain/vector"
)

// Completer answers a prompt pair with an assistant reply.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// SnapshotProvider supplies the catalog for grounding strain context.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, *vector.Table, error)
}
