package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned by Validate for the nil UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID or UUIDFromString")

// UUID identifies aggregates and the opaque references to other contexts
// (customers, products, payments). The zero value is invalid.
type UUID struct {
	id uuid.UUID
}

// NewUUID returns a random (version 4) identifier.
//
// Example:
//
//	cartID := kernel.NewUUID()
//	err := cartID.Validate() // always nil
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString accepts any textual form understood by github.com/google/uuid.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("UUID", fmt.Errorf("%q: %w", s, err))
	}
	return UUID{id: id}, nil
}

// UUIDFromGoogle wraps an already parsed identifier, rejecting uuid.Nil.
func UUIDFromGoogle(id uuid.UUID) (UUID, error) {
	out := UUID{id: id}
	if err := out.Validate(); err != nil {
		return UUID{}, err
	}
	return out, nil
}

// UUIDFromBytes reads the 16 byte binary form returned by database drivers.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("UUID", err)
	}
	return UUIDFromGoogle(id)
}

// String returns the canonical lower-case hyphenated form.
func (u UUID) String() string {
	return u.id.String()
}

// Google exposes the wrapped value for adapters (database columns, wire formats).
func (u UUID) Google() uuid.UUID {
	return u.id
}

// IsEqual reports whether both identifiers hold the same 128 bits.
// Two zero UUIDs are equal.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// IsZero reports whether u is the nil UUID, which is what the zero value holds.
func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
//
// Aggregates call it on every identifier they accept, so a struct literal
// that skipped NewUUID or UUIDFromString is rejected at the boundary.
//
// Example:
//
//	var id kernel.UUID
//	errors.Is(id.Validate(), errs.ErrValueIsRequired) // true
func (u UUID) Validate() error {
	if u.IsZero() {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// MarshalText lets UUID appear directly in JSON event payloads.
func (u UUID) MarshalText() ([]byte, error) {
	return []byte(u.id.String()), nil
}

// UnmarshalText parses the textual form through UUIDFromString. The nil UUID
// is accepted here and left to Validate.
func (u *UUID) UnmarshalText(data []byte) error {
	parsed, err := UUIDFromString(string(data))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
