package ops

import (
	"context"
	"strings"

	"github.com/hpungsan/satchel/internal/capsule"
	"github.com/hpungsan/satchel/internal/errors"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// maxWriteAttempts bounds read-modify-write retries after a CONFLICT.
const maxWriteAttempts = 5

// retryOnConflict reruns fn, which must re-read what it writes, while it
// loses revision races.
func retryOnConflict[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var (
		out T
		err error
	)
	for range maxWriteAttempts {
		out, err = fn()
		if !errors.Is(err, errors.ErrConflict) {
			return out, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out, errors.NewInternal(ctxErr)
		}
	}
	return out, err
}

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// Address represents a validated trip address.
type Address struct {
	ByID bool
	ID   string
	Name string // normalized
}

// ValidateAddress validates addressing parameters and returns a normalized Address.
// Rules:
// - Must specify exactly one addressing mode: id OR name
// - If id provided with name → ErrAmbiguousAddress
// - If neither id nor name provided → ErrInvalidRequest
func ValidateAddress(id, name string) (*Address, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)

	if id != "" && name != "" {
		return nil, errors.NewAmbiguousAddress()
	}
	if id == "" && name == "" {
		return nil, errors.NewInvalidRequest("must specify either id or name")
	}

	if id != "" {
		return &Address{ByID: true, ID: id}, nil
	}
	return &Address{Name: capsule.Normalize(name)}, nil
}
