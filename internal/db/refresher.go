package db

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lolocuentaps32/fanscopa/internal/models"
)

// snapshotSource lists the authoritative registration set.
type snapshotSource interface {
	ListAll(ctx context.Context) ([]models.Registration, error)
}

// snapshotSink persists the shadow copy.
type snapshotSink interface {
	WriteAll(regs []models.Registration) error
}

// StartSnapshotRefresher copies the remote registration list into the local
// fallback slot with the given interval, so the shadow copy served during an
// outage stays close to the authoritative data. The copy is one-way: local
// edits made while the remote store was down are never replayed back.
func StartSnapshotRefresher(
	ctx context.Context,
	remote snapshotSource,
	local snapshotSink,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				regs, err := remote.ListAll(ctx)
				if err != nil {
					log.Warn("snapshot refresh skipped, remote unavailable", zap.Error(err))
					continue
				}
				if err := local.WriteAll(regs); err != nil {
					log.Error("failed to write local snapshot", zap.Error(err))
					continue
				}
				log.Debug("local snapshot refreshed", zap.Int("registrations", len(regs)))
			}
		}
	}()
}
