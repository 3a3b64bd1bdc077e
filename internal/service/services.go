package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/flatchores/internal/lib/job"
	"github.com/deppfellow/flatchores/internal/logger"
	"github.com/deppfellow/flatchores/internal/model"
	"github.com/deppfellow/flatchores/internal/repository"
	"github.com/deppfellow/flatchores/internal/server"

	"github.com/rs/zerolog"
)

type Services struct {
	Flats        *EntityService[model.Flat]
	Badges       *EntityService[model.Badge]
	TypeOfBadges *EntityService[model.TypeOfBadge]
	TypeOfChores *EntityService[model.TypeOfChore]
	Chores       *EntityService[model.Chore]
	Job          *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	// A nil *JobService stored in the interface would not compare equal to nil.
	var notifier Notifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Flats:        NewEntityService("flat", repos.Flats, notifier, s.Logger),
		Badges:       NewEntityService("badge", repos.Badges, notifier, s.Logger, badgeEarnedHook(notifier, s.Logger)),
		TypeOfBadges: NewEntityService("typeOfBadge", repos.TypeOfBadges, notifier, s.Logger),
		TypeOfChores: NewEntityService("typeOfChore", repos.TypeOfChores, notifier, s.Logger),
		Chores:       NewEntityService("chore", repos.Chores, notifier, s.Logger),
		Job:          s.Job,
	}, nil
}

type counter interface {
	Name() string
	Count(ctx context.Context) (int64, error)
}

// Counts returns the number of stored records per record type, keyed by
// record name ("flat", "typeOfChore").
func (s *Services) Counts(ctx context.Context) (map[string]int64, error) {
	counters := []counter{s.Flats, s.Badges, s.TypeOfBadges, s.TypeOfChores, s.Chores}

	counts := make(map[string]int64, len(counters))
	for _, c := range counters {
		n, err := c.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s records: %w", c.Name(), err)
		}
		counts[c.Name()] = n
	}
	return counts, nil
}

// badgeEarnedHook announces badges created with an earnedAt.
func badgeEarnedHook(notifier Notifier, fallback *zerolog.Logger) Hook[model.Badge] {
	return func(ctx context.Context, action string, badge model.Badge) {
		if notifier == nil || action != job.ActionCreated || badge.EarnedAt == nil {
			return
		}

		if err := notifier.BadgeEarned(ctx, badge.ID.Int64(), badge.EarnedAt.String()); err != nil {
			logger.FromContext(ctx, fallback).Error().
				Err(err).
				Int64("badge_id", badge.ID.Int64()).
				Msg("failed to enqueue badge earned task")
		}
	}
}
