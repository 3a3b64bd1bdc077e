package model

import "fmt"

// TypeOfChore describes a chore. Repeatable, Interval and Points are plain
// data: nothing in the backend schedules or scores chores from them.
type TypeOfChore struct {
	ID          ID      `json:"id"`
	Name        *string `json:"name" validate:"required"`
	Description *string `json:"description"`
	Repeatable  *bool   `json:"repeatable" validate:"required"`
	Interval    *int32  `json:"interval"`
	Points      *int32  `json:"points"`
}

func (t TypeOfChore) Identity() ID { return t.ID }

func (t TypeOfChore) WithIdentity(id ID) TypeOfChore {
	t.ID = id
	return t
}

func (t TypeOfChore) Validate() error { return validate.Struct(t) }

func (t TypeOfChore) String() string {
	return fmt.Sprintf("TypeOfChore{id=%s, name='%s', description='%s', repeatable='%s', interval='%s', points='%s'}",
		t.ID, deref(t.Name), deref(t.Description), derefAny(t.Repeatable), derefAny(t.Interval), derefAny(t.Points))
}
