package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

func (j *JobService) handleEntityChangedTask(ctx context.Context, t *asynq.Task) error {
	var p EntityChangedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal entity changed payload: %w: %w", err, asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", "audit").
		Str("entity", p.Entity).
		Str("action", p.Action).
		Int64("id", p.ID).
		Time("occurred_at", p.OccurredAt).
		Msg("Entity changed")

	return nil
}

func (j *JobService) handleBadgeEarnedTask(ctx context.Context, t *asynq.Task) error {
	var p BadgeEarnedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal badge earned payload: %w: %w", err, asynq.SkipRetry)
	}

	if j.notifyEmail == "" || j.email == nil {
		j.logger.Debug().
			Int64("badge_id", p.BadgeID).
			Msg("No notification address configured, skipping badge email")
		return nil
	}

	j.logger.Info().
		Str("type", "badge_earned").
		Str("to", j.notifyEmail).
		Int64("badge_id", p.BadgeID).
		Msg("Processing badge earned email task")

	if err := j.email.SendBadgeEarnedEmail(ctx, j.notifyEmail, p.BadgeID, p.EarnedAt); err != nil {
		j.logger.Error().
			Str("type", "badge_earned").
			Str("to", j.notifyEmail).
			Err(err).
			Msg("Failed to send badge earned email")
		// Returning the error makes asynq retry the task.
		return err
	}

	j.logger.Info().
		Str("type", "badge_earned").
		Str("to", j.notifyEmail).
		Msg("Successfully sent badge earned email")

	return nil
}
