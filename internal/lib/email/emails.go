package email

import (
	"context"
	"strconv"
)

func (c *Client) SendBadgeEarnedEmail(ctx context.Context, to string, badgeID int64, earnedAt string) error {
	data := map[string]string{
		"BadgeID":  strconv.FormatInt(badgeID, 10),
		"EarnedAt": earnedAt,
	}

	return c.SendEmail(
		ctx,
		to,
		"A badge was earned in your flat",
		TemplateBadgeEarned,
		data,
	)
}
