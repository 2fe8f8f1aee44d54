package service

import (
	"bitwise74/filestore-api/internal/blob"
	"bitwise74/filestore-api/internal/repository"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// BlobGC removes blobs that no entry references anymore. Those are
// left behind when an upload's compensating delete fails or the
// process dies between writing a blob and its metadata. Blobs younger
// than the grace period are skipped so in flight uploads survive.
type BlobGC struct {
	entries *repository.Entries
	blobs   blob.Store
	grace   time.Duration
}

func NewBlobGC(entries *repository.Entries, blobs blob.Store, grace time.Duration) *BlobGC {
	return &BlobGC{
		entries: entries,
		blobs:   blobs,
		grace:   grace,
	}
}

// Run does a single pass and returns how many blobs were deleted
func (g *BlobGC) Run(ctx context.Context) (int, error) {
	objects, err := g.blobs.List(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-g.grace)

	var candidates []string
	for _, o := range objects {
		if o.ModTime.Before(cutoff) {
			candidates = append(candidates, o.Key)
		}
	}

	if len(candidates) == 0 {
		return 0, nil
	}

	referenced, err := g.entries.ReferencedPaths(ctx, candidates)
	if err != nil {
		return 0, fmt.Errorf("failed to query referenced blobs, %w", err)
	}

	deleted := 0
	for _, key := range candidates {
		if _, ok := referenced[key]; ok {
			continue
		}

		if err := g.blobs.Delete(ctx, key); err != nil {
			zap.L().Error("Failed to delete orphaned blob", zap.String("key", key), zap.Error(err))
			continue
		}

		deleted++
	}

	return deleted, nil
}

// Start runs a pass every t until ctx is cancelled
func (g *BlobGC) Start(ctx context.Context, t time.Duration) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Blob cleanup attached", zap.Duration("tick_every", t))

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := g.Run(ctx)
				if err != nil {
					zap.L().Error("Blob cleanup failed", zap.Error(err))
					continue
				}

				if n > 0 {
					zap.L().Info("Removed orphaned blobs", zap.Int("count", n))
				}
			}
		}
	}()
}
