// Package service holds the operations the handlers call.
//
// EntityService wraps a repository with the side effects of a mutation:
// it validates before persisting and reports changes to a Notifier, so the
// handlers never talk to the job queue directly.
package service

import (
	"context"
)

// Notifier is told about successful mutations. Failures to notify are
// logged by the caller and never fail the mutation.
type Notifier interface {
	EntityChanged(ctx context.Context, entity, action string, id int64) error
	BadgeEarned(ctx context.Context, badgeID int64, earnedAt string) error
}
