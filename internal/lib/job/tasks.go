package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskEntityChanged = "entity:changed"
	TaskBadgeEarned   = "badge:earned"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// EntityChangedPayload is one audit record of a mutation.
type EntityChangedPayload struct {
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	ID         int64     `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type BadgeEarnedPayload struct {
	BadgeID  int64  `json:"badge_id"`
	EarnedAt string `json:"earned_at"`
}

func NewEntityChangedTask(entity, action string, id int64, occurredAt time.Time) (*asynq.Task, error) {
	payload, err := json.Marshal(EntityChangedPayload{
		Entity:     entity,
		Action:     action,
		ID:         id,
		OccurredAt: occurredAt.UTC(),
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskEntityChanged,
		payload,
		asynq.MaxRetry(1),
		asynq.Queue(QueueLow),
		asynq.Timeout(10*time.Second),
	), nil
}

func NewBadgeEarnedTask(badgeID int64, earnedAt string) (*asynq.Task, error) {
	payload, err := json.Marshal(BadgeEarnedPayload{
		BadgeID:  badgeID,
		EarnedAt: earnedAt,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskBadgeEarned,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(QueueDefault),
		asynq.Timeout(30*time.Second),
	), nil
}
