package model

import "fmt"

// Chore is one chore done (or due) on a date, in a flat.
type Chore struct {
	ID          ID         `json:"id"`
	Date        *Timestamp `json:"date"`
	TypeOfChore *Ref       `json:"typeOfChore"`
	Flat        *Ref       `json:"flat"`
}

func (c Chore) Identity() ID { return c.ID }

func (c Chore) WithIdentity(id ID) Chore {
	c.ID = id
	return c
}

func (c Chore) Validate() error { return validate.Struct(c) }

func (c Chore) String() string {
	date := "null"
	if c.Date != nil {
		date = c.Date.String()
	}
	return fmt.Sprintf("Chore{id=%s, date='%s'}", c.ID, date)
}
