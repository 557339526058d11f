package capsule

// SetPacked returns a copy of c with the packed flag of every occurrence of
// wardrobeItemID set to packed. The second result is false when the item is not
// in the capsule; c itself is never modified.
func SetPacked(c *TripCapsule, wardrobeItemID string, packed bool) (*TripCapsule, bool) {
	found := false
	mark := func(items []PackingItem) []PackingItem {
		out := make([]PackingItem, len(items))
		for i, it := range items {
			if it.WardrobeItemID == wardrobeItemID {
				it.Packed = packed
				found = true
			}
			out[i] = it
		}
		return out
	}

	next := *c
	next.Outfits = make([]Outfit, len(c.Outfits))
	for i, o := range c.Outfits {
		o.Items = mark(o.Items)
		next.Outfits[i] = o
	}
	next.PackingList = make([]PackingGroup, len(c.PackingList))
	for i, g := range c.PackingList {
		g.Items = mark(g.Items)
		next.PackingList[i] = g
	}
	return &next, found
}
