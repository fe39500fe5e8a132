// Package artifact loads the strain catalog and its embeddings from disk and
// publishes them as one consistent snapshot. The catalog and the vectors are
// validated against each other before publication, so readers never observe a
// strain without an embedding.
package artifact

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/verdant-cloud/strainrec/internal/domain"
	"github.com/verdant-cloud/strainrec/internal/domain/catalog"
	"github.com/verdant-cloud/strainrec/internal/domain/vector"
	"github.com/verdant-cloud/strainrec/internal/logger"
)

// pair is a catalog snapshot and the embedding table it was validated against.
type pair struct {
	catalog *catalog.Snapshot
	vectors *vector.Table
}

// Provider owns the current catalog/embedding pair. Load replaces the pair
// atomically; readers keep whatever pair they obtained for the whole request.
type Provider struct {
	catalogPath string
	vectorsPath string

	current atomic.Pointer[pair]
}

// NewProvider creates a provider for the given artifact paths. Nothing is
// published until the first successful Load.
func NewProvider(catalogPath, vectorsPath string) *Provider {
	return &Provider{
		catalogPath: catalogPath,
		vectorsPath: vectorsPath,
	}
}

// Load reads both artifacts, cross-validates them and publishes the new pair.
// On any error the previously published pair stays in place.
func (p *Provider) Load() error {
	snap, err := LoadCatalog(p.catalogPath)
	if err != nil {
		return fmt.Errorf("load catalog %s: %w", p.catalogPath, err)
	}

	table, err := LoadVectors(p.vectorsPath)
	if err != nil {
		return fmt.Errorf("load vectors %s: %w", p.vectorsPath, err)
	}

	for _, s := range snap.All() {
		if _, ok := table.VectorFor(s.ID); !ok {
			return fmt.Errorf("strain %d (%s) has no embedding", s.ID, s.Name)
		}
	}

	p.current.Store(&pair{catalog: snap, vectors: table})
	return nil
}

// Snapshot returns the published catalog and embedding table.
func (p *Provider) Snapshot(_ context.Context) (*catalog.Snapshot, *vector.Table, error) {
	cur := p.current.Load()
	if cur == nil {
		return nil, nil, domain.ErrCatalogUnavailable
	}
	return cur.catalog, cur.vectors, nil
}

// Ready reports whether a pair has been published.
func (p *Provider) Ready() bool {
	return p.current.Load() != nil
}

// Watch reloads the artifacts whenever either file changes on disk. A failed
// reload is logged and the previous pair stays published. Watch blocks until
// the context is cancelled.
func (p *Provider) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent directories: editors and deploy tooling usually
	// replace files by rename, which drops a watch on the file itself.
	dirs := map[string]struct{}{
		filepath.Dir(p.catalogPath): {},
		filepath.Dir(p.vectorsPath): {},
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	log := logger.FromContext(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !p.relevant(event) {
				continue
			}
			if err := p.Load(); err != nil {
				log.Warn("artifact reload failed, keeping previous snapshot",
					zap.String("path", event.Name), zap.Error(err))
				continue
			}
			log.Info("artifacts reloaded", zap.String("path", event.Name))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("artifact watcher error", zap.Error(err))
		}
	}
}

func (p *Provider) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	return name == filepath.Clean(p.catalogPath) || name == filepath.Clean(p.vectorsPath)
}
