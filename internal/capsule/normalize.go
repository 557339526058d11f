package capsule

import (
	"slices"

	"github.com/hpungsan/satchel/internal/wardrobe"
)

// topsCapExempt are categories that bucket as tops but never count toward the
// one-top limit.
var topsCapExempt = []string{"Activewear", "Swimwear"}

// NormalizeOutfitStructure enforces one-piece vs separates composition.
//
// With a dress-bucket item present, every tops and bottoms item is removed.
// Otherwise only the first top (ignoring Activewear and Swimwear) and the first
// bottom are kept. Order is preserved. When nothing needs removing the input
// slice itself is returned.
func NormalizeOutfitStructure(items []PackingItem) []PackingItem {
	hasDress := slices.ContainsFunc(items, func(p PackingItem) bool {
		b, ok := p.Bucket()
		return ok && b == wardrobe.BucketDresses
	})

	keep := make([]bool, len(items))
	dropped := false
	seenTop, seenBottom := false, false
	for i, p := range items {
		keep[i] = true
		b, ok := p.Bucket()
		if !ok {
			continue
		}
		switch {
		case hasDress && (b == wardrobe.BucketTops || b == wardrobe.BucketBottoms):
			keep[i] = false
		case b == wardrobe.BucketTops && !isTopsCapExempt(p):
			if seenTop {
				keep[i] = false
			}
			seenTop = true
		case b == wardrobe.BucketBottoms:
			if seenBottom {
				keep[i] = false
			}
			seenBottom = true
		}
		if !keep[i] {
			dropped = true
		}
	}

	if !dropped {
		return items
	}
	out := make([]PackingItem, 0, len(items))
	for i, p := range items {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

func isTopsCapExempt(p PackingItem) bool {
	return slices.Contains(topsCapExempt, p.MainCategory)
}
