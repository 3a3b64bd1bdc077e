package service

import (
	"context"

	"github.com/deppfellow/flatchores/internal/lib/job"
	"github.com/deppfellow/flatchores/internal/logger"
	"github.com/deppfellow/flatchores/internal/model"
	"github.com/deppfellow/flatchores/internal/repository"
	"github.com/deppfellow/flatchores/internal/validation"

	"github.com/rs/zerolog"
)

// Hook runs after a successful mutation, with the persisted record.
type Hook[T model.Entity[T]] func(ctx context.Context, action string, entity T)

// EntityService is the CRUD service of one record type.
type EntityService[T model.Entity[T]] struct {
	name     string
	repo     repository.Repository[T]
	notifier Notifier
	logger   *zerolog.Logger
	hooks    []Hook[T]
}

// NewEntityService builds the service of the record type called name
// ("flat", "typeOfChore"). A nil notifier disables notifications.
func NewEntityService[T model.Entity[T]](name string, repo repository.Repository[T], notifier Notifier, log *zerolog.Logger, hooks ...Hook[T]) *EntityService[T] {
	return &EntityService[T]{
		name:     name,
		repo:     repo,
		notifier: notifier,
		logger:   log,
		hooks:    hooks,
	}
}

func (s *EntityService[T]) Name() string {
	return s.name
}

func (s *EntityService[T]) List(ctx context.Context) ([]T, error) {
	return s.repo.FindAll(ctx)
}

func (s *EntityService[T]) Get(ctx context.Context, id int64) (T, bool, error) {
	return s.repo.FindOne(ctx, id)
}

func (s *EntityService[T]) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Create persists a record without identity.
func (s *EntityService[T]) Create(ctx context.Context, entity T) (T, error) {
	return s.save(ctx, job.ActionCreated, entity)
}

// Update persists a record with identity in place.
func (s *EntityService[T]) Update(ctx context.Context, entity T) (T, error) {
	return s.save(ctx, job.ActionUpdated, entity)
}

func (s *EntityService[T]) save(ctx context.Context, action string, entity T) (T, error) {
	if err := validation.Check(entity); err != nil {
		var zero T
		return zero, err
	}

	saved, err := s.repo.Save(ctx, entity)
	if err != nil {
		return saved, err
	}

	s.changed(ctx, action, saved.Identity().Int64())
	for _, hook := range s.hooks {
		hook(ctx, action, saved)
	}

	return saved, nil
}

// Delete removes the record with id; a missing id is not an error.
func (s *EntityService[T]) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.changed(ctx, job.ActionDeleted, id)
	return nil
}

func (s *EntityService[T]) changed(ctx context.Context, action string, id int64) {
	if s.notifier == nil {
		return
	}

	if err := s.notifier.EntityChanged(ctx, s.name, action, id); err != nil {
		logger.FromContext(ctx, s.logger).Error().
			Err(err).
			Str("entity", s.name).
			Str("action", action).
			Int64("id", id).
			Msg("failed to enqueue entity changed task")
	}
}
