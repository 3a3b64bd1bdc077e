package email

import (
	"embed"
	"html/template"
)

type Template string

const (
	TemplateBadgeEarned Template = "badge_earned"
)

//go:embed templates/*.html
var templateFS embed.FS

// templates are parsed once; a broken template fails at startup, not at send time.
var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))
