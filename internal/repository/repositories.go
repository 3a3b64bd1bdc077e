package repository

import (
	"github.com/deppfellow/flatchores/internal/model"
	"github.com/deppfellow/flatchores/internal/server"
)

// Repositories holds one repository per record type.
type Repositories struct {
	Flats        Repository[model.Flat]
	Badges       Repository[model.Badge]
	TypeOfBadges Repository[model.TypeOfBadge]
	TypeOfChores Repository[model.TypeOfChore]
	Chores       Repository[model.Chore]
}

// NewRepositories uses PostgreSQL when the server has a database and a
// fresh in-memory store otherwise.
func NewRepositories(s *server.Server) *Repositories {
	if s.DB != nil {
		return NewPostgresRepositories(s.DB.Pool)
	}

	s.Logger.Warn().Msg("no database configured, records are kept in memory")
	return NewMemoryRepositories(NewMemoryStore())
}

func NewPostgresRepositories(db DBTX) *Repositories {
	return &Repositories{
		Flats:        NewPostgresRepository(db, FlatTable),
		Badges:       NewPostgresRepository(db, BadgeTable),
		TypeOfBadges: NewPostgresRepository(db, TypeOfBadgeTable),
		TypeOfChores: NewPostgresRepository(db, TypeOfChoreTable),
		Chores:       NewPostgresRepository(db, ChoreTable),
	}
}

func NewMemoryRepositories(store *MemoryStore) *Repositories {
	return &Repositories{
		Flats:        NewMemoryRepository(store, FlatTable),
		Badges:       NewMemoryRepository(store, BadgeTable),
		TypeOfBadges: NewMemoryRepository(store, TypeOfBadgeTable),
		TypeOfChores: NewMemoryRepository(store, TypeOfChoreTable),
		Chores:       NewMemoryRepository(store, ChoreTable),
	}
}
