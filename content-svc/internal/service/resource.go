package service

import (
	"context"
	"fmt"
	"time"

	"bella-vista/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Deps are the collaborators shared by every resource service. Cache and
// Publisher are optional.
type Deps struct {
	Cache     ListCache
	Publisher EventPublisher
	Logger    *zap.Logger
	NewID     func() string
	Now       func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.NewID == nil {
		d.NewID = func() string { return primitive.NewObjectID().Hex() }
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// Resource implements the CRUD contract shared by all four collections.
type Resource[T domain.Identifiable, In domain.Input[T], P domain.Patch[T]] struct {
	name       string
	collection Collection[T]
	deps       Deps

	// guard runs against the stored record before a patch is applied.
	guard func(current T, patch P) error
}

func newResource[T domain.Identifiable, In domain.Input[T], P domain.Patch[T]](name string, collection Collection[T], deps Deps) *Resource[T, In, P] {
	return &Resource[T, In, P]{
		name:       name,
		collection: collection,
		deps:       deps.withDefaults(),
	}
}

func (s *Resource[T, In, P]) Name() string {
	return s.name
}

func (s *Resource[T, In, P]) List(ctx context.Context) ([]T, error) {
	fill := false
	var generation int64
	if s.deps.Cache != nil {
		var cached []T
		hit, err := s.deps.Cache.Get(ctx, s.name, &cached)
		if err != nil {
			s.deps.Logger.Warn("list cache read failed", zap.String("resource", s.name), zap.Error(err))
		} else if hit {
			return cached, nil
		}

		// Sampled before the collection read so a write racing this call
		// turns the fill below into a no-op.
		generation, err = s.deps.Cache.Generation(ctx, s.name)
		if err != nil {
			s.deps.Logger.Warn("list cache generation read failed", zap.String("resource", s.name), zap.Error(err))
		} else {
			fill = true
		}
	}

	records, err := s.collection.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.name, err)
	}
	if records == nil {
		records = []T{}
	}

	if fill {
		if err := s.deps.Cache.Set(ctx, s.name, generation, records); err != nil {
			s.deps.Logger.Warn("list cache write failed", zap.String("resource", s.name), zap.Error(err))
		}
	}
	return records, nil
}

func (s *Resource[T, In, P]) Get(ctx context.Context, id string) (*T, error) {
	record, err := s.collection.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s %q: %w", s.name, id, err)
	}
	return record, nil
}

func (s *Resource[T, In, P]) Create(ctx context.Context, input In) (*T, error) {
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	record := input.Record(s.deps.NewID(), s.deps.Now())
	if err := s.collection.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("create %s: %w", s.name, err)
	}

	s.afterWrite(ctx, domain.EventCreated, record)
	return &record, nil
}

func (s *Resource[T, In, P]) Update(ctx context.Context, id string, patch P) (*T, error) {
	if err := domain.Validate(patch); err != nil {
		return nil, err
	}

	if s.guard != nil {
		current, err := s.collection.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("update %s %q: %w", s.name, id, err)
		}
		if err := s.guard(*current, patch); err != nil {
			return nil, err
		}
	}

	fields := patch.Fields()
	var (
		record *T
		err    error
	)
	if len(fields) == 0 {
		record, err = s.collection.Get(ctx, id)
	} else {
		record, err = s.collection.Update(ctx, id, fields)
	}
	if err != nil {
		return nil, fmt.Errorf("update %s %q: %w", s.name, id, err)
	}

	if len(fields) > 0 {
		s.afterWrite(ctx, domain.EventUpdated, *record)
	}
	return record, nil
}

// Delete is idempotent: removing an absent id succeeds.
func (s *Resource[T, In, P]) Delete(ctx context.Context, id string) error {
	if err := s.collection.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s %q: %w", s.name, id, err)
	}

	s.invalidate(ctx)
	s.publish(ctx, domain.ChangeEvent{
		Type:      domain.EventDeleted,
		Resource:  s.name,
		ID:        id,
		Timestamp: s.deps.Now(),
	})
	return nil
}

func (s *Resource[T, In, P]) afterWrite(ctx context.Context, eventType string, record T) {
	s.invalidate(ctx)

	event := domain.ChangeEvent{
		Type:      eventType,
		Resource:  s.name,
		ID:        record.GetID(),
		Timestamp: s.deps.Now(),
	}
	if reservation, ok := any(record).(domain.Reservation); ok {
		event.Status = string(reservation.Status)
	}
	s.publish(ctx, event)
}

func (s *Resource[T, In, P]) invalidate(ctx context.Context) {
	if s.deps.Cache == nil {
		return
	}
	if err := s.deps.Cache.Invalidate(ctx, s.name); err != nil {
		s.deps.Logger.Warn("list cache invalidation failed", zap.String("resource", s.name), zap.Error(err))
	}
}

func (s *Resource[T, In, P]) publish(ctx context.Context, event domain.ChangeEvent) {
	if s.deps.Publisher == nil {
		return
	}
	if err := s.deps.Publisher.PublishChange(ctx, event); err != nil {
		s.deps.Logger.Warn("change event not published",
			zap.String("resource", event.Resource),
			zap.String("id", event.ID),
			zap.String("type", event.Type),
			zap.Error(err))
	}
}
