package repository

import (
	"reflect"
	"time"

	"github.com/deppfellow/flatchores/internal/model"

	"github.com/jackc/pgx/v5"
)

// Table maps a record type onto its SQL table.
//
// Columns excludes the id column, which is always "id" and always first in
// scans. Values must return one value per column, in order.
type Table[T model.Entity[T]] struct {
	Name       string
	Columns    []string
	NotNull    []string
	References []Reference
	Values     func(T) []any
	Scan       func(row pgx.Row) (T, error)
}

// Reference is a nullable foreign key column. Deletes of the referenced row
// are restricted while the key points at it.
type Reference struct {
	Column     string
	Table      string
	Constraint string
}

// row returns the column values of entity keyed by column name.
func (t Table[T]) row(entity T) map[string]any {
	values := t.Values(entity)
	row := make(map[string]any, len(values))
	for i, column := range t.Columns {
		row[column] = values[i]
	}
	return row
}

// isNull treats untyped nil and nil pointers as SQL NULL.
func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

var FlatTable = Table[model.Flat]{
	Name:    "flat",
	Columns: []string{"name", "address"},
	NotNull: []string{"name"},
	Values: func(f model.Flat) []any {
		return []any{f.Name, f.Address}
	},
	Scan: func(row pgx.Row) (model.Flat, error) {
		var (
			f  model.Flat
			id int64
		)
		if err := row.Scan(&id, &f.Name, &f.Address); err != nil {
			return model.Flat{}, err
		}
		f.ID = model.NewID(id)
		return f, nil
	},
}

var BadgeTable = Table[model.Badge]{
	Name:    "badge",
	Columns: []string{"earned_at"},
	Values: func(b model.Badge) []any {
		return []any{b.EarnedAt.TimeOrNil()}
	},
	Scan: func(row pgx.Row) (model.Badge, error) {
		var (
			id       int64
			earnedAt *time.Time
		)
		if err := row.Scan(&id, &earnedAt); err != nil {
			return model.Badge{}, err
		}
		return model.Badge{ID: model.NewID(id), EarnedAt: model.TimestampFromTime(earnedAt)}, nil
	},
}

var TypeOfBadgeTable = Table[model.TypeOfBadge]{
	Name:    "type_of_badge",
	Columns: []string{"name", "description", "badge_id"},
	NotNull: []string{"name"},
	References: []Reference{
		{Column: "badge_id", Table: "badge", Constraint: "fk_type_of_badge_badge"},
	},
	Values: func(t model.TypeOfBadge) []any {
		return []any{t.Name, t.Description, t.Badge.Key()}
	},
	Scan: func(row pgx.Row) (model.TypeOfBadge, error) {
		var (
			t       model.TypeOfBadge
			id      int64
			badgeID *int64
		)
		if err := row.Scan(&id, &t.Name, &t.Description, &badgeID); err != nil {
			return model.TypeOfBadge{}, err
		}
		t.ID = model.NewID(id)
		t.Badge = model.RefFromKey(badgeID)
		return t, nil
	},
}

var TypeOfChoreTable = Table[model.TypeOfChore]{
	Name:    "type_of_chore",
	Columns: []string{"name", "description", "repeatable", "interval", "points"},
	NotNull: []string{"name", "repeatable"},
	Values: func(t model.TypeOfChore) []any {
		return []any{t.Name, t.Description, t.Repeatable, t.Interval, t.Points}
	},
	Scan: func(row pgx.Row) (model.TypeOfChore, error) {
		var (
			t  model.TypeOfChore
			id int64
		)
		if err := row.Scan(&id, &t.Name, &t.Description, &t.Repeatable, &t.Interval, &t.Points); err != nil {
			return model.TypeOfChore{}, err
		}
		t.ID = model.NewID(id)
		return t, nil
	},
}

var ChoreTable = Table[model.Chore]{
	Name:    "chore",
	Columns: []string{"date", "type_of_chore_id", "flat_id"},
	References: []Reference{
		{Column: "type_of_chore_id", Table: "type_of_chore", Constraint: "fk_chore_type_of_chore"},
		{Column: "flat_id", Table: "flat", Constraint: "fk_chore_flat"},
	},
	Values: func(c model.Chore) []any {
		return []any{c.Date.TimeOrNil(), c.TypeOfChore.Key(), c.Flat.Key()}
	},
	Scan: func(row pgx.Row) (model.Chore, error) {
		var (
			id            int64
			date          *time.Time
			typeOfChoreID *int64
			flatID        *int64
		)
		if err := row.Scan(&id, &date, &typeOfChoreID, &flatID); err != nil {
			return model.Chore{}, err
		}
		return model.Chore{
			ID:          model.NewID(id),
			Date:        model.TimestampFromTime(date),
			TypeOfChore: model.RefFromKey(typeOfChoreID),
			Flat:        model.RefFromKey(flatID),
		}, nil
	},
}
