package email

// PreviewData is sample data for rendering each template outside a send.
var PreviewData = map[Template]map[string]string{
	TemplateBadgeEarned: {
		"BadgeID":  "7",
		"EarnedAt": "1970-01-01T00:00:00.000Z",
	},
}
