package job

import (
	"context"
	"fmt"
	"time"
)

// EntityChanged enqueues the audit record of a mutation.
func (j *JobService) EntityChanged(ctx context.Context, entity, action string, id int64) error {
	task, err := NewEntityChangedTask(entity, action, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to build %s task: %w", TaskEntityChanged, err)
	}

	if _, err := j.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue %s task: %w", TaskEntityChanged, err)
	}
	return nil
}

// BadgeEarned enqueues the notification email of a newly earned badge.
func (j *JobService) BadgeEarned(ctx context.Context, badgeID int64, earnedAt string) error {
	task, err := NewBadgeEarnedTask(badgeID, earnedAt)
	if err != nil {
		return fmt.Errorf("failed to build %s task: %w", TaskBadgeEarned, err)
	}

	if _, err := j.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue %s task: %w", TaskBadgeEarned, err)
	}
	return nil
}
