package model

// Badge is an award earned at a point in time.
type Badge struct {
	ID       ID         `json:"id"`
	EarnedAt *Timestamp `json:"earnedAt"`
}

func (b Badge) Identity() ID { return b.ID }

func (b Badge) WithIdentity(id ID) Badge {
	b.ID = id
	return b
}

func (b Badge) Validate() error { return validate.Struct(b) }

func (b Badge) String() string {
	earnedAt := "null"
	if b.EarnedAt != nil {
		earnedAt = b.EarnedAt.String()
	}
	return "Badge{id=" + b.ID.String() + ", earnedAt='" + earnedAt + "'}"
}
