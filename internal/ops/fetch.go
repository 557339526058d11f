package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/satchel/internal/capsule"
	"github.com/hpungsan/satchel/internal/db"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	ID             string
	Name           string
	IncludeDeleted bool
	IncludeCapsule *bool // default: true (nil means default)
}

// FetchOutput contains the result of the Fetch operation.
type FetchOutput struct {
	capsule.Trip // embedded (copy, not pointer)
}

// Fetch retrieves a trip by ID or name.
func Fetch(ctx context.Context, database *sql.DB, input FetchInput) (*FetchOutput, error) {
	addr, err := ValidateAddress(input.ID, input.Name)
	if err != nil {
		return nil, err
	}

	t, err := getTrip(ctx, database, addr, input.IncludeDeleted)
	if err != nil {
		return nil, err
	}

	output := &FetchOutput{Trip: *t}

	includeCapsule := true
	if input.IncludeCapsule != nil {
		includeCapsule = *input.IncludeCapsule
	}
	if !includeCapsule {
		output.Capsule = nil
	}

	return output, nil
}

// getTrip loads a trip by a validated address.
func getTrip(ctx context.Context, database *sql.DB, addr *Address, includeDeleted bool) (*capsule.Trip, error) {
	if addr.ByID {
		return db.GetByID(ctx, database, addr.ID, includeDeleted)
	}
	return db.GetByName(ctx, database, addr.Name, includeDeleted)
}
