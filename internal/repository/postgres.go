package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/flatchores/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository[T model.Entity[T]] struct {
	db    DBTX
	table Table[T]

	findAllSQL string
	findOneSQL string
	insertSQL  string
	updateSQL  string
	deleteSQL  string
	countSQL   string
}

// NewPostgresRepository prepares the statements of table once. Identifiers
// are quoted, since columns like "interval" are SQL keywords.
func NewPostgresRepository[T model.Entity[T]](db DBTX, table Table[T]) *PostgresRepository[T] {
	name := pgx.Identifier{table.Name}.Sanitize()

	quoted := make([]string, len(table.Columns))
	placeholders := make([]string, len(table.Columns))
	assignments := make([]string, len(table.Columns))
	for i, column := range table.Columns {
		quoted[i] = pgx.Identifier{column}.Sanitize()
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		assignments[i] = fmt.Sprintf("%s = $%d", quoted[i], i+1)
	}
	selectList := strings.Join(append([]string{"id"}, quoted...), ", ")

	insertSQL := fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING %s", name, selectList)
	if len(table.Columns) > 0 {
		insertSQL = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
			name, strings.Join(quoted, ", "), strings.Join(placeholders, ", "), selectList)
	}

	return &PostgresRepository[T]{
		db:         db,
		table:      table,
		findAllSQL: fmt.Sprintf("SELECT %s FROM %s ORDER BY id", selectList, name),
		findOneSQL: fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", selectList, name),
		insertSQL:  insertSQL,
		updateSQL: fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
			name, strings.Join(assignments, ", "), len(table.Columns)+1, selectList),
		deleteSQL: fmt.Sprintf("DELETE FROM %s WHERE id = $1", name),
		countSQL:  fmt.Sprintf("SELECT count(*) FROM %s", name),
	}
}

func (r *PostgresRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	rows, err := r.db.Query(ctx, r.findAllSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table.Name, err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		return r.table.Scan(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect %s rows: %w", r.table.Name, err)
	}

	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r *PostgresRepository[T]) FindOne(ctx context.Context, id int64) (T, bool, error) {
	entity, err := r.table.Scan(r.db.QueryRow(ctx, r.findOneSQL, id))
	if errors.Is(err, pgx.ErrNoRows) {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, false, fmt.Errorf("failed to get %s by id=%d: %w", r.table.Name, id, err)
	}
	return entity, true, nil
}

func (r *PostgresRepository[T]) Save(ctx context.Context, entity T) (T, error) {
	args := r.table.Values(entity)

	id, ok := entity.Identity().Get()
	if !ok {
		saved, err := r.table.Scan(r.db.QueryRow(ctx, r.insertSQL, args...))
		if err != nil {
			return saved, fmt.Errorf("failed to insert %s: %w", r.table.Name, err)
		}
		return saved, nil
	}

	saved, err := r.table.Scan(r.db.QueryRow(ctx, r.updateSQL, append(args, id)...))
	if errors.Is(err, pgx.ErrNoRows) {
		return saved, notFound(r.table.Name)
	}
	if err != nil {
		return saved, fmt.Errorf("failed to update %s id=%d: %w", r.table.Name, id, err)
	}
	return saved, nil
}

func (r *PostgresRepository[T]) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, r.deleteSQL, id); err != nil {
		return fmt.Errorf("failed to delete %s id=%d: %w", r.table.Name, id, err)
	}
	return nil
}

func (r *PostgresRepository[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, r.countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r.table.Name, err)
	}
	return count, nil
}
