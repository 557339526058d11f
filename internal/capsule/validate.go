package capsule

import (
	"fmt"

	"github.com/hpungsan/satchel/internal/style"
	"github.com/hpungsan/satchel/internal/wardrobe"
)

// Violation codes reported by Validate.
const (
	ViolationDuplicatePackingItem = "DUPLICATE_PACKING_ITEM"
	ViolationOnePiece             = "ONE_PIECE"
	ViolationSeparates            = "SEPARATES"
	ViolationDressLeak            = "DRESS_LEAK"
	ViolationMissingVersion       = "MISSING_VERSION"
)

// Violation is one broken capsule invariant.
type Violation struct {
	Code     string `json:"code"`
	OutfitID string `json:"outfit_id,omitempty"`
	ItemID   string `json:"item_id,omitempty"`
	Message  string `json:"message"`
}

// ValidationResult contains the results of validating a capsule.
type ValidationResult struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations,omitempty"`
}

// Validate checks a capsule against the invariants Build guarantees.
// Capsules loaded from storage may predate those guarantees.
func Validate(c *TripCapsule, p style.Presentation) *ValidationResult {
	result := &ValidationResult{Valid: true}
	add := func(v Violation) {
		result.Valid = false
		result.Violations = append(result.Violations, v)
	}

	if c.Version == nil {
		add(Violation{Code: ViolationMissingVersion, Message: "capsule has no version"})
	}

	seen := make(map[string]bool)
	for _, g := range c.PackingList {
		for _, it := range g.Items {
			if seen[it.WardrobeItemID] {
				add(Violation{
					Code:    ViolationDuplicatePackingItem,
					ItemID:  it.WardrobeItemID,
					Message: fmt.Sprintf("wardrobe item %s appears more than once in the packing list", it.WardrobeItemID),
				})
			}
			seen[it.WardrobeItemID] = true
		}
	}

	for _, o := range c.Outfits {
		counts := bucketCounts(o.Items)
		if counts[wardrobe.BucketDresses] > 0 && (counts[wardrobe.BucketTops] > 0 || counts[wardrobe.BucketBottoms] > 0) {
			add(Violation{Code: ViolationOnePiece, OutfitID: o.ID, Message: "outfit mixes a dress with tops or bottoms"})
		}
		if counts[wardrobe.BucketTops] > 1 || counts[wardrobe.BucketBottoms] > 1 {
			add(Violation{Code: ViolationSeparates, OutfitID: o.ID, Message: "outfit has more than one top or bottom"})
		}
		if p == style.Masculine && counts[wardrobe.BucketDresses] > 0 {
			add(Violation{Code: ViolationDressLeak, OutfitID: o.ID, Message: "dress in a masculine capsule"})
		}
	}

	return result
}

// bucketCounts counts outfit items per bucket. Activewear and Swimwear are not
// counted as tops.
func bucketCounts(items []PackingItem) map[wardrobe.Bucket]int {
	counts := make(map[wardrobe.Bucket]int)
	for _, it := range items {
		b, ok := it.Bucket()
		if !ok {
			continue
		}
		if b == wardrobe.BucketTops && isTopsCapExempt(it) {
			continue
		}
		counts[b]++
	}
	return counts
}
