package model

// Flat is an apartment whose inhabitants share chores.
type Flat struct {
	ID      ID      `json:"id"`
	Name    *string `json:"name" validate:"required"`
	Address *string `json:"address"`
}

func (f Flat) Identity() ID { return f.ID }

func (f Flat) WithIdentity(id ID) Flat {
	f.ID = id
	return f
}

func (f Flat) Validate() error { return validate.Struct(f) }

func (f Flat) String() string {
	return "Flat{id=" + f.ID.String() + ", name='" + deref(f.Name) + "', address='" + deref(f.Address) + "'}"
}
