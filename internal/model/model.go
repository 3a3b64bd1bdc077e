// Package model defines the persisted records of the application.
//
// Every record (Flat, Badge, TypeOfBadge, TypeOfChore, Chore) has the same shape:
//   - an identity that stays absent until the store assigns one
//   - scalar attributes, where optional ones are pointers
//   - optional many-to-one references to other records, by identity only
//
// The generic CRUD stack (repository, service, handler) works on any type
// satisfying Entity, so adding a record type means adding a struct here and
// a table mapping in the repository package.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Entity is the capability every record exposes to the generic CRUD stack.
//
// T is the record type itself, so WithIdentity can return a typed copy:
//
//	var f Flat
//	f = f.WithIdentity(NewID(7))
type Entity[T any] interface {
	// Identity returns the record's identity (absent before first save).
	Identity() ID

	// WithIdentity returns a copy of the record carrying id.
	WithIdentity(id ID) T

	// Validate checks the not-null rules declared with validator tags.
	Validate() error
}

// ID is an optional numeric identity.
//
// The zero value is "absent": the record has not been persisted yet.
// On the wire it is a JSON number when present and null when absent.
type ID struct {
	value int64
	valid bool
}

// NewID returns a present identity.
func NewID(value int64) ID {
	return ID{value: value, valid: true}
}

// NoID returns the absent identity.
func NoID() ID {
	return ID{}
}

// Get returns the numeric value and whether the identity is present.
func (id ID) Get() (int64, bool) {
	return id.value, id.valid
}

// IsSet reports whether the identity is present.
func (id ID) IsSet() bool {
	return id.valid
}

// Int64 returns the numeric value, or 0 when absent.
func (id ID) Int64() int64 {
	if !id.valid {
		return 0
	}
	return id.value
}

func (id ID) String() string {
	if !id.valid {
		return "<none>"
	}
	return strconv.FormatInt(id.value, 10)
}

func (id ID) MarshalJSON() ([]byte, error) {
	if !id.valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, id.value, 10), nil
}

func (id *ID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*id = NoID()
		return nil
	}

	var value int64
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("id must be a number: %w", err)
	}

	*id = NewID(value)
	return nil
}

// SameIdentity reports whether a and b denote the same stored record.
//
// Records without identity are never equal to anything, themselves included.
func SameIdentity[T Entity[T]](a, b T) bool {
	av, aok := a.Identity().Get()
	bv, bok := b.Identity().Get()
	if !aok || !bok {
		return false
	}
	return av == bv
}

// Ref is a many-to-one association to another record, by identity.
//
// JSON: {"id": 3}
type Ref struct {
	ID ID `json:"id"`
}

// MarshalJSON writes a reference without a target as null, the same as
// a nil *Ref, so {"badge":{}} and {"badge":null} are stored alike.
func (r Ref) MarshalJSON() ([]byte, error) {
	if !r.ID.IsSet() {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		ID ID `json:"id"`
	}{ID: r.ID})
}

// UnmarshalJSON only reads the target id; other attributes of a nested
// record are ignored.
func (r *Ref) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = Ref{}
		return nil
	}

	var body struct {
		ID ID `json:"id"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return fmt.Errorf("reference must be an object with an id: %w", err)
	}

	*r = Ref{ID: body.ID}
	return nil
}

// RefTo returns a reference to the record with the given id.
func RefTo(id int64) *Ref {
	return &Ref{ID: NewID(id)}
}

// RefFromKey converts a nullable foreign key into a reference.
func RefFromKey(key *int64) *Ref {
	if key == nil {
		return nil
	}
	return RefTo(*key)
}

// Key returns the foreign key value of the reference, nil when there is no target.
func (r *Ref) Key() *int64 {
	if r == nil {
		return nil
	}
	v, ok := r.ID.Get()
	if !ok {
		return nil
	}
	return &v
}

// validate is shared by all records. Field names in errors use the JSON name.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	return v
}
