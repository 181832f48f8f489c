// Package instrumented decorates a ports.UserRepository with Prometheus
// timings and structured failure logs. It adds no behaviour of its own.
package instrumented

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/userhub/user-api/internal/core/domain"
	"github.com/userhub/user-api/internal/core/ports"
	"github.com/userhub/user-api/internal/pkg/metrics"
)

type UserRepository struct {
	next    ports.UserRepository
	adapter string
	log     zerolog.Logger
}

// Wrap returns next decorated with metrics labelled by adapter.
func Wrap(adapter string, next ports.UserRepository, log zerolog.Logger) *UserRepository {
	return &UserRepository{
		next:    next,
		adapter: adapter,
		log:     log.With().Str("adapter", adapter).Logger(),
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	start := time.Now()
	out, err := r.next.Create(ctx, u)
	r.observe("create", start, err)
	return out, err
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	start := time.Now()
	out, err := r.next.FindAll(ctx)
	r.observe("find_all", start, err)
	return out, err
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	start := time.Now()
	out, err := r.next.FindByID(ctx, id)
	r.observe("find_by_id", start, err)
	return out, err
}

func (r *UserRepository) observe(op string, start time.Time, err error) {
	elapsed := time.Since(start)
	metrics.RepositoryOperationDuration.WithLabelValues(r.adapter, op).Observe(elapsed.Seconds())
	// A taken email is a client conflict, not a store failure.
	if err == nil || errors.Is(err, domain.ErrEmailTaken) {
		return
	}
	metrics.RepositoryErrorsTotal.WithLabelValues(r.adapter, op).Inc()
	r.log.Error().Err(err).Str("operation", op).Dur("elapsed", elapsed).Msg("repository operation failed")
}
