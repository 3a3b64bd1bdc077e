// Package repository persists records.
//
// One generic implementation per store serves every record type:
// PostgresRepository issues SQL built from a Table mapping, and
// MemoryRepository keeps rows in process memory while enforcing the same
// not-null and foreign key rules the schema declares.
package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/flatchores/internal/model"

	"github.com/jackc/pgx/v5"
)

// Repository is the persistence gateway of one record type.
type Repository[T model.Entity[T]] interface {
	// FindAll returns every record ordered by id. The slice is never nil.
	FindAll(ctx context.Context) ([]T, error)

	// FindOne reports found=false, without error, when no record has id.
	FindOne(ctx context.Context, id int64) (T, bool, error)

	// Save inserts a record without identity and returns it with the
	// assigned id, or updates the record with the same identity.
	// Updating an id that has no row fails with ErrNotFound.
	Save(ctx context.Context, entity T) (T, error)

	// Delete removes the record with id. A missing id is not an error.
	Delete(ctx context.Context, id int64) error

	Count(ctx context.Context) (int64, error)
}

// ErrNotFound is returned when an update targets an id without a row.
var ErrNotFound = pgx.ErrNoRows

// notFound names the table in the "table:<name>:" form sqlerr.HandleError
// turns into a 404 message.
func notFound(table string) error {
	return fmt.Errorf("table:%s: %w", table, ErrNotFound)
}
