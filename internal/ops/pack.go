package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hpungsan/satchel/internal/capsule"
	"github.com/hpungsan/satchel/internal/db"
	"github.com/hpungsan/satchel/internal/errors"
)

// PackInput contains parameters for the Pack operation.
type PackInput struct {
	ID             string
	Name           string
	WardrobeItemID string
	Packed         *bool // default: true
}

// PackOutput contains the result of the Pack operation.
type PackOutput struct {
	ID             string `json:"id"`
	WardrobeItemID string `json:"wardrobe_item_id"`
	Packed         bool   `json:"packed"`
	ItemCount      int    `json:"item_count"`
	PackedCount    int    `json:"packed_count"`
}

// Pack marks a wardrobe item as packed (or unpacked) in a trip's capsule.
// The flag is set on every occurrence: the packing list and each outfit.
// Concurrent packs of the same trip are retried against a fresh read.
func Pack(ctx context.Context, database *sql.DB, input PackInput) (*PackOutput, error) {
	itemID := strings.TrimSpace(input.WardrobeItemID)
	if itemID == "" {
		return nil, errors.NewInvalidRequest("wardrobe_item_id is required")
	}
	addr, err := ValidateAddress(input.ID, input.Name)
	if err != nil {
		return nil, err
	}

	packed := true
	if input.Packed != nil {
		packed = *input.Packed
	}

	return retryOnConflict(ctx, func() (*PackOutput, error) {
		return setPacked(ctx, database, addr, itemID, packed)
	})
}

func setPacked(ctx context.Context, database *sql.DB, addr *Address, itemID string, packed bool) (*PackOutput, error) {
	t, err := getTrip(ctx, database, addr, false)
	if err != nil {
		return nil, err
	}
	if t.Capsule == nil {
		return nil, errors.NewItemNotInCapsule(t.ID, itemID)
	}

	next, found := capsule.SetPacked(t.Capsule, itemID, packed)
	if !found {
		return nil, errors.NewItemNotInCapsule(t.ID, itemID)
	}
	t.Capsule = next
	if err := db.UpdateByID(ctx, database, t); err != nil {
		return nil, err
	}

	summary := t.ToSummary()
	return &PackOutput{
		ID:             t.ID,
		WardrobeItemID: itemID,
		Packed:         packed,
		ItemCount:      summary.ItemCount,
		PackedCount:    summary.PackedCount,
	}, nil
}
