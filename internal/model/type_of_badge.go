package model

// TypeOfBadge names a kind of badge and optionally points at a badge.
type TypeOfBadge struct {
	ID          ID      `json:"id"`
	Name        *string `json:"name" validate:"required"`
	Description *string `json:"description"`
	Badge       *Ref    `json:"badge"`
}

func (t TypeOfBadge) Identity() ID { return t.ID }

func (t TypeOfBadge) WithIdentity(id ID) TypeOfBadge {
	t.ID = id
	return t
}

func (t TypeOfBadge) Validate() error { return validate.Struct(t) }

func (t TypeOfBadge) String() string {
	return "TypeOfBadge{id=" + t.ID.String() + ", name='" + deref(t.Name) + "', description='" + deref(t.Description) + "'}"
}
