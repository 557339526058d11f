package style

import (
	"slices"
	"strings"
	"unicode"

	"github.com/hpungsan/satchel/internal/wardrobe"
)

// feminineOnlyCategories are main categories never packed for a masculine profile.
var feminineOnlyCategories = []string{"Dresses", "Skirts"}

// feminineTerms flag an item feminine-only when they appear as whole words
// in its subcategory or name.
var feminineTerms = []string{
	"heel", "heels", "stiletto", "stilettos", "pumps",
	"blouse", "blouses", "camisole", "bralette",
	"earrings", "purse", "clutch",
	"gown", "gowns", "skirt", "skirts",
}

// dressCompounds are words after "dress" that make it a menswear compound
// ("dress shirt", "dress shoes") rather than a garment on its own.
var dressCompounds = []string{
	"shirt", "shirts", "pants", "trousers", "shoes", "shoe", "socks",
	"boots", "watch", "belt", "slacks", "code",
}

// overrideKeywords lift the masculine filter when present in a free-text prompt.
var overrideKeywords = []string{
	"dress", "skirt", "gown", "blouse", "heel", "heels",
	"feminine", "women", "women's", "she/her", "halter",
}

// GarmentFlags are attributes inferred from an item's category and wording.
type GarmentFlags struct {
	FeminineOnly bool
	OnePiece     bool
}

// InferGarmentFlags inspects category, subcategory and name. Matching is by whole
// word, and "dress" followed by a menswear noun does not count as a dress.
func InferGarmentFlags(item wardrobe.Item) GarmentFlags {
	var f GarmentFlags
	if b, ok := item.Bucket(); ok && b == wardrobe.BucketDresses {
		f.OnePiece = true
	}
	if slices.Contains(feminineOnlyCategories, item.MainCategory) {
		f.FeminineOnly = true
		return f
	}

	for _, text := range []string{item.Subcategory, item.Name} {
		words := tokenize(text)
		for i, w := range words {
			if slices.Contains(feminineTerms, w) {
				f.FeminineOnly = true
			}
			if (w == "dress" || w == "dresses") && !isDressCompound(words, i) && canHoldDress(item) {
				f.FeminineOnly = true
				f.OnePiece = true
			}
		}
	}
	return f
}

// canHoldDress reports whether the item's category leaves room for it to be a dress.
// A "Tops" item named "Dress Shirt" is a shirt whatever its wording.
func canHoldDress(item wardrobe.Item) bool {
	b, ok := item.Bucket()
	return !ok || b == wardrobe.BucketDresses
}

func isDressCompound(words []string, i int) bool {
	return i+1 < len(words) && slices.Contains(dressCompounds, words[i+1])
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// IsEligible reports whether item may be packed for presentation p.
// Only the masculine profile excludes anything.
func IsEligible(item wardrobe.Item, p Presentation) bool {
	if p != Masculine {
		return true
	}
	return !InferGarmentFlags(item).FeminineOnly
}

// FilterEligibleItems drops ineligible items; non-masculine input is returned unchanged.
func FilterEligibleItems(items []wardrobe.Item, p Presentation) []wardrobe.Item {
	if p != Masculine {
		return items
	}
	out := make([]wardrobe.Item, 0, len(items))
	for _, it := range items {
		if IsEligible(it, p) {
			out = append(out, it)
		}
	}
	return out
}

// HasFeminineOverride reports whether a prompt asks for feminine garments.
func HasFeminineOverride(prompt string) bool {
	lower := strings.ToLower(prompt)
	for _, kw := range overrideKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Effective returns the presentation to filter with, lifting masculine to mixed
// when the prompt carries a feminine override.
func Effective(p Presentation, prompt string) Presentation {
	if p == Masculine && HasFeminineOverride(prompt) {
		return Mixed
	}
	return p
}
