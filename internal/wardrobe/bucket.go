package wardrobe

// Bucket is a coarse garment role used for outfit composition.
type Bucket string

const (
	BucketTops        Bucket = "tops"
	BucketBottoms     Bucket = "bottoms"
	BucketOuterwear   Bucket = "outerwear"
	BucketShoes       Bucket = "shoes"
	BucketAccessories Bucket = "accessories"
	BucketDresses     Bucket = "dresses"
)

// Buckets lists every bucket in composition order.
var Buckets = []Bucket{
	BucketTops,
	BucketBottoms,
	BucketOuterwear,
	BucketShoes,
	BucketAccessories,
	BucketDresses,
}

// categoryBuckets maps main-category strings to buckets.
// Categories missing from this table are invisible to the capsule engine.
var categoryBuckets = map[string]Bucket{
	"Tops":            BucketTops,
	"Formalwear":      BucketTops,
	"Activewear":      BucketTops,
	"Swimwear":        BucketTops,
	"Bottoms":         BucketBottoms,
	"Skirts":          BucketBottoms,
	"Outerwear":       BucketOuterwear,
	"Shoes":           BucketShoes,
	"Accessories":     BucketAccessories,
	"Bags":            BucketAccessories,
	"Jewelry":         BucketAccessories,
	"Headwear":        BucketAccessories,
	"Dresses":         BucketDresses,
	"TraditionalWear": BucketDresses,
}

// BucketOf returns the bucket for a main category.
// The second result is false for unknown or empty categories.
func BucketOf(mainCategory string) (Bucket, bool) {
	b, ok := categoryBuckets[mainCategory]
	return b, ok
}

// Bucket returns the item's bucket, or false when the item cannot be bucketed.
func (i Item) Bucket() (Bucket, bool) {
	return BucketOf(i.MainCategory)
}

// Label is the display name used for packing-list groups.
func (b Bucket) Label() string {
	switch b {
	case BucketTops:
		return "Tops"
	case BucketBottoms:
		return "Bottoms"
	case BucketOuterwear:
		return "Outerwear"
	case BucketShoes:
		return "Shoes"
	case BucketAccessories:
		return "Accessories"
	case BucketDresses:
		return "Dresses"
	default:
		return "Other"
	}
}

// Partition groups items by bucket, preserving input order within each bucket.
// Items that cannot be bucketed are dropped.
func Partition(items []Item) map[Bucket][]Item {
	out := make(map[Bucket][]Item, len(Buckets))
	for _, it := range items {
		b, ok := it.Bucket()
		if !ok {
			continue
		}
		out[b] = append(out[b], it)
	}
	return out
}
