package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ArtifactChecker reports whether a catalog/embedding snapshot is published.
type ArtifactChecker interface {
	Ready() bool
}
