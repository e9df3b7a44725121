package usecase

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"feedrec/internal/adapter/fs"
	"feedrec/internal/domain"
)

// Importer bulk-loads a directory of content files into the store:
// every matching file becomes one item, keyed by a stable id derived
// from its relative path, so re-running an import re-embeds changed
// content instead of duplicating it.
type Importer struct {
	walker      *fs.Walker
	recommender *Recommender
	concurrency int
}

func NewImporter(walker *fs.Walker, rec *Recommender, concurrency int) *Importer {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Importer{
		walker:      walker,
		recommender: rec,
		concurrency: concurrency,
	}
}

type ImportResult struct {
	Files    int
	Imported int
	Skipped  int
}

// Run walks root and upserts every matching file. Encoding happens
// concurrently (the store mutation inside Upsert stays serialized);
// progress, if non-nil, is called after each file completes.
func (im *Importer) Run(ctx context.Context, root string, progress func(done, total int)) (ImportResult, error) {
	files, err := im.walker.Walk(root)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	var done, skipped int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(im.concurrency)

	for _, f := range files {
		f := f
		g.Go(func() error {
			text, err := fs.ReadFile(f.Path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", f.Path, err)
			}

			if len(text) == 0 {
				atomic.AddInt64(&skipped, 1)
			} else {
				// Update semantics: re-import replaces, first import creates.
				if err := im.recommender.Upsert(ctx, ItemID(f.RelPath), text, domain.UpsertUpdate); err != nil {
					return fmt.Errorf("failed to import %s: %w", f.RelPath, err)
				}
			}

			n := atomic.AddInt64(&done, 1)
			if progress != nil {
				progress(int(n), len(files))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return ImportResult{}, err
	}

	return ImportResult{
		Files:    len(files),
		Imported: len(files) - int(skipped),
		Skipped:  int(skipped),
	}, nil
}

// ItemID derives a stable positive item id from a content path.
func ItemID(path string) int64 {
	h := fnv.New64a()
	h.Write([]byte(path))
	return int64(h.Sum64() & (1<<63 - 1))
}
