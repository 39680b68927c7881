package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/worldforge/internal/platform/errors"
	"github.com/louisbranch/worldforge/internal/services/world/domain/world"
	"github.com/louisbranch/worldforge/internal/services/world/storage"
)

const tracerName = "github.com/louisbranch/worldforge/internal/services/world/app"

// Service serializes world operations over one owned State.
type Service struct {
	mu     sync.Mutex
	state  *world.State
	store  storage.WorldStore
	now    func() time.Time
	tracer trace.Tracer
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the timestamp source for created/updated stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTracer overrides the tracer, which otherwise comes from the global provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// New loads the stored world and returns a service that owns it.
func New(ctx context.Context, store storage.WorldStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, storage.ErrNotConfigured
	}
	state, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}
	if state == nil {
		state = &world.State{}
	}
	svc := &Service{
		state:  state,
		store:  store,
		now:    time.Now,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Snapshot returns a deep copy of the whole state.
func (s *Service) Snapshot(ctx context.Context) (*world.State, error) {
	var out *world.State
	err := s.read(ctx, "Snapshot", nil, func(state *world.State) error {
		out = state.Clone()
		return nil
	})
	return out, err
}

// read runs fn under the lock without saving.
func (s *Service) read(ctx context.Context, op string, attrs []attribute.KeyValue, fn func(*world.State) error) error {
	return s.run(ctx, op, attrs, false, fn)
}

// mutate runs fn under the lock and saves the state when fn succeeds.
func (s *Service) mutate(ctx context.Context, op string, attrs []attribute.KeyValue, fn func(*world.State) error) error {
	return s.run(ctx, op, attrs, true, fn)
}

func (s *Service) run(ctx context.Context, op string, attrs []attribute.KeyValue, save bool, fn func(*world.State) error) (err error) {
	ctx, span := s.tracer.Start(ctx, "world."+op, trace.WithAttributes(attrs...))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.SetAttributes(attribute.String("world.error_code", string(apperrors.GetCode(err))))
		}
		span.End()
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.state); err != nil {
		return err
	}
	if !save {
		return nil
	}
	if err := s.store.Save(ctx, s.state); err != nil {
		log.Printf("world save failed: op=%s err=%v", op, err)
		return apperrors.Wrap(apperrors.CodePersistenceFailed, "save world", err)
	}
	return nil
}
