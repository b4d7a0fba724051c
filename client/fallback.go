package client

import (
	"context"

	"go.uber.org/zap"
)

// Snapshot is the local copy a Fallback reads when the primary fails.
type Snapshot[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	Replace(ctx context.Context, items []T) error
}

// Fallback is a read-only Reader that never fails: a primary success
// refreshes the snapshot, a primary failure is answered from the snapshot
// or, failing that, from the bundled defaults.
type Fallback[T any] struct {
	primary  Reader[T]
	snapshot Snapshot[T]
	defaults []T
	logger   *zap.Logger
	resource string
}

// WithFallback wraps primary. snapshot may be nil.
func WithFallback[T any](resource string, primary Reader[T], snapshot Snapshot[T], defaults []T, logger *zap.Logger) *Fallback[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback[T]{
		primary:  primary,
		snapshot: snapshot,
		defaults: defaults,
		logger:   logger,
		resource: resource,
	}
}

func (f *Fallback[T]) GetAll(ctx context.Context) ([]T, error) {
	items, err := f.primary.GetAll(ctx)
	if err == nil {
		if f.snapshot != nil {
			if err := f.snapshot.Replace(ctx, items); err != nil {
				f.logger.Warn("mirror refresh failed", zap.String("resource", f.resource), zap.Error(err))
			}
		}
		return items, nil
	}

	f.logger.Warn("primary read failed, serving local copy", zap.String("resource", f.resource), zap.Error(err))
	if f.snapshot != nil {
		cached, serr := f.snapshot.GetAll(ctx)
		if serr == nil {
			return cached, nil
		}
		f.logger.Warn("mirror read failed, serving bundled content", zap.String("resource", f.resource), zap.Error(serr))
	}
	return append([]T{}, f.defaults...), nil
}
