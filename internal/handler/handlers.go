package handler

import (
	"github.com/deppfellow/flatchores/internal/model"
	"github.com/deppfellow/flatchores/internal/server"
	"github.com/deppfellow/flatchores/internal/service"
)

type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler

	Flats        *EntityHandler[model.Flat]
	Badges       *EntityHandler[model.Badge]
	TypeOfBadges *EntityHandler[model.TypeOfBadge]
	TypeOfChores *EntityHandler[model.TypeOfChore]
	Chores       *EntityHandler[model.Chore]
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(s, services),
		OpenAPI:      NewOpenAPIHandler(s),
		Flats:        NewEntityHandler(s, services.Flats, "flats"),
		Badges:       NewEntityHandler(s, services.Badges, "badges"),
		TypeOfBadges: NewEntityHandler(s, services.TypeOfBadges, "type-of-badges"),
		TypeOfChores: NewEntityHandler(s, services.TypeOfChores, "type-of-chores"),
		Chores:       NewEntityHandler(s, services.Chores, "chores"),
	}
}
