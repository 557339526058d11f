package capsule

import "github.com/hpungsan/satchel/internal/wardrobe"

// CapsuleVersion identifies the shape of Build output.
// Bump it whenever the build algorithm changes what it produces; stored capsules
// with any other version are rebuilt.
const CapsuleVersion = 2

// OutfitType marks an outfit's role in the rotation.
type OutfitType string

const (
	OutfitAnchor  OutfitType = "anchor"
	OutfitSupport OutfitType = "support"
)

// PackingItem is the packable projection of a wardrobe item.
type PackingItem struct {
	// ID is derived as "trip_<wardrobe item id>"
	ID string `json:"id"`

	// WardrobeItemID joins back to the wardrobe
	WardrobeItemID string `json:"wardrobe_item_id"`

	Name          string `json:"name"`
	ImageURL      string `json:"image_url"`
	Color         string `json:"color,omitempty"`
	MainCategory  string `json:"main_category"`
	SubCategory   string `json:"sub_category,omitempty"`
	LocationLabel string `json:"location_label"`
	Packed        bool   `json:"packed"`
}

// NewPackingItem projects a wardrobe item. The location label is looked up in labels
// by the item's location id and falls back to the id itself.
func NewPackingItem(item wardrobe.Item, labels map[string]string) PackingItem {
	label := item.LocationID
	if l, ok := labels[item.LocationID]; ok && l != "" {
		label = l
	}
	return PackingItem{
		ID:             PackingItemID(item.ID),
		WardrobeItemID: item.ID,
		Name:           item.Name,
		ImageURL:       item.ImageURL,
		Color:          item.Color,
		MainCategory:   item.MainCategory,
		SubCategory:    item.Subcategory,
		LocationLabel:  label,
	}
}

// PackingItemID derives the packing item id for a wardrobe item id.
func PackingItemID(wardrobeItemID string) string {
	return "trip_" + wardrobeItemID
}

// Bucket returns the item's bucket, or false when its category is unmapped.
func (p PackingItem) Bucket() (wardrobe.Bucket, bool) {
	return wardrobe.BucketOf(p.MainCategory)
}

// Outfit is one day's outfit.
type Outfit struct {
	ID       string        `json:"id"`
	DayLabel string        `json:"day_label"`
	Type     OutfitType    `json:"type,omitempty"`
	Occasion string        `json:"occasion,omitempty"`
	Items    []PackingItem `json:"items"`
}

// PackingGroup is one category of the deduplicated packing list.
type PackingGroup struct {
	Category string        `json:"category"`
	Items    []PackingItem `json:"items"`
}

// TripCapsule is the full build output for one trip.
type TripCapsule struct {
	// BuildID is unique per Build call and is the only non-deterministic field
	BuildID string `json:"build_id"`

	Outfits     []Outfit       `json:"outfits"`
	PackingList []PackingGroup `json:"packing_list"`

	// Version is the CapsuleVersion the capsule was built with (nil for legacy capsules)
	Version *int `json:"version,omitempty"`

	// Fingerprint is the caller-supplied input fingerprint at build time
	Fingerprint *string `json:"fingerprint,omitempty"`
}

// ItemCount returns the number of distinct items on the packing list.
func (c *TripCapsule) ItemCount() int {
	n := 0
	for _, g := range c.PackingList {
		n += len(g.Items)
	}
	return n
}
