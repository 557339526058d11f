package capsule

import (
	"cmp"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hpungsan/satchel/internal/activity"
	"github.com/hpungsan/satchel/internal/seed"
	"github.com/hpungsan/satchel/internal/style"
	"github.com/hpungsan/satchel/internal/wardrobe"
	"github.com/hpungsan/satchel/internal/weather"
)

// Rotation limits.
const (
	shortTripDays     = 5
	shortTripMaxShoes = 2
	longTripMaxShoes  = 3
	dressEveryNthDay  = 3
)

// categoryPriority orders packing-list groups.
var categoryPriority = []string{"Tops", "Bottoms", "Dresses", "Outerwear", "Shoes", "Accessories", "Other"}

// BuildInput holds everything a build reads. Items are canonical and already
// restricted to the starting location.
type BuildInput struct {
	Items        []wardrobe.Item
	Weather      []weather.DayWeather
	Activities   []activity.Activity
	Presentation style.Presentation

	// LocationLabels maps location ids to display labels for packing items
	LocationLabels map[string]string

	// Fingerprint is stored on the capsule as-is; empty means none
	Fingerprint string
}

// rankedItem is an item with its activity score.
type rankedItem struct {
	item  wardrobe.Item
	score float64
}

// Build assembles day-by-day outfits and a deduplicated packing list.
// Apart from BuildID, identical input always yields an identical capsule.
// Build never fails: empty buckets just leave slots out of the day's outfit.
func Build(in BuildInput) TripCapsule {
	numDays := max(len(in.Weather), 1)
	needs := weather.Analyze(in.Weather)

	items := style.FilterEligibleItems(in.Items, in.Presentation)
	buckets := rankBuckets(items, SeedString(in), in.Activities)

	tops := buckets[wardrobe.BucketTops]
	bottoms := buckets[wardrobe.BucketBottoms]
	dresses := buckets[wardrobe.BucketDresses]
	if in.Presentation == style.Masculine {
		// Eligible one-piece garments (TraditionalWear) still count as a dress leak.
		dresses = nil
	}
	accessories := buckets[wardrobe.BucketAccessories]

	maxShoes := longTripMaxShoes
	if numDays <= shortTripDays {
		maxShoes = shortTripMaxShoes
	}
	shoes := buckets[wardrobe.BucketShoes]
	shoes = shoes[:min(len(shoes), maxShoes)]

	warm, rain := selectOuterwear(buckets[wardrobe.BucketOuterwear], needs)

	outfits := make([]Outfit, 0, numDays)
	for d := 0; d < numDays; d++ {
		var picks []wardrobe.Item
		dressDay := false

		switch {
		case len(dresses) > 0 && d%dressEveryNthDay == 0 && !needs.IsCold:
			picks = append(picks, dresses[d%len(dresses)])
			dressDay = true
		case len(tops) == 0 && len(bottoms) == 0 && len(dresses) > 0:
			picks = append(picks, dresses[d%len(dresses)])
			dressDay = true
		default:
			if len(tops) > 0 {
				picks = append(picks, tops[d%len(tops)])
			}
			// Bottoms rotate half as often as tops.
			if len(bottoms) > 0 {
				picks = append(picks, bottoms[(d/2)%len(bottoms)])
			}
		}

		if len(shoes) > 0 {
			picks = append(picks, shoes[d%len(shoes)])
		}
		if d < len(in.Weather) {
			if layer := dayOuterwear(in.Weather[d], warm, rain); layer != nil {
				picks = append(picks, *layer)
			}
		}
		if len(accessories) > 0 {
			picks = append(picks, accessories[d%len(accessories)])
		}

		packing := make([]PackingItem, 0, len(picks))
		for _, it := range picks {
			packing = append(packing, NewPackingItem(it, in.LocationLabels))
		}

		outfitType := OutfitSupport
		if d == 0 || dressDay {
			outfitType = OutfitAnchor
		}
		var occasion string
		if len(in.Activities) > 0 {
			occasion = string(in.Activities[d%len(in.Activities)])
		}

		outfits = append(outfits, Outfit{
			ID:       fmt.Sprintf("outfit_%d", d+1),
			DayLabel: dayLabel(in.Weather, d),
			Type:     outfitType,
			Occasion: occasion,
			Items:    NormalizeOutfitStructure(packing),
		})
	}

	version := CapsuleVersion
	c := TripCapsule{
		BuildID:     NewBuildID(),
		Outfits:     outfits,
		PackingList: AggregatePackingList(outfits),
		Version:     &version,
	}
	if in.Fingerprint != "" {
		fp := in.Fingerprint
		c.Fingerprint = &fp
	}
	return c
}

// SeedString concatenates item ids, weather dates and activity names.
// It is the sole source of variety in a build.
func SeedString(in BuildInput) string {
	var sb strings.Builder
	for _, it := range in.Items {
		sb.WriteString(it.ID)
	}
	for _, d := range in.Weather {
		sb.WriteString(d.Date)
	}
	for _, a := range in.Activities {
		sb.WriteString(string(a))
	}
	return sb.String()
}

// rankBuckets partitions items, shuffles each bucket with a seed derived from the
// build seed, then stable-sorts by activity score so ties keep shuffle order.
func rankBuckets(items []wardrobe.Item, seedStr string, activities []activity.Activity) map[wardrobe.Bucket][]wardrobe.Item {
	parts := wardrobe.Partition(items)
	out := make(map[wardrobe.Bucket][]wardrobe.Item, len(parts))
	for _, b := range wardrobe.Buckets {
		members := parts[b]
		if len(members) == 0 {
			continue
		}
		rng := seed.NewRand(seed.Hash(seedStr + "|" + string(b)))
		shuffled := seed.Shuffle(members, rng)

		ranked := make([]rankedItem, len(shuffled))
		for i, it := range shuffled {
			ranked[i] = rankedItem{item: it, score: activity.Score(it, activities)}
		}
		slices.SortStableFunc(ranked, func(a, b rankedItem) int {
			return cmp.Compare(b.score, a.score)
		})

		sorted := make([]wardrobe.Item, len(ranked))
		for i, r := range ranked {
			sorted[i] = r.item
		}
		out[b] = sorted
	}
	return out
}

// selectOuterwear picks a warm layer when any day is cold and a distinct rain layer
// when any day is wet, preferring items flagged rain-ok.
func selectOuterwear(outerwear []wardrobe.Item, needs weather.Needs) (warm, rain *wardrobe.Item) {
	if len(outerwear) == 0 {
		return nil, nil
	}
	if needs.NeedsWarmLayer {
		warm = warmest(outerwear)
	}
	if !needs.NeedsRainLayer {
		return warm, nil
	}
	distinct := func(it *wardrobe.Item) bool { return warm == nil || it.ID != warm.ID }
	for i := range outerwear {
		it := &outerwear[i]
		if it.RainOK != nil && *it.RainOK && distinct(it) {
			return warm, it
		}
	}
	for i := range outerwear {
		if it := &outerwear[i]; distinct(it) {
			return warm, it
		}
	}
	return warm, nil
}

// warmest returns the highest-rated outerwear, earliest in rank order on ties.
// Unrated items lose to any rated one.
func warmest(outerwear []wardrobe.Item) *wardrobe.Item {
	best := &outerwear[0]
	for i := range outerwear {
		if rating(outerwear[i].ThermalRating) > rating(best.ThermalRating) {
			best = &outerwear[i]
		}
	}
	return best
}

func rating(v *float64) float64 {
	if v == nil {
		return -1
	}
	return *v
}

// dayOuterwear returns the layer to wear on a cold or wet day, or nil.
func dayOuterwear(day weather.DayWeather, warm, rain *wardrobe.Item) *wardrobe.Item {
	if !day.IsCold() && !day.IsRainy() {
		return nil
	}
	if day.IsRainy() && rain != nil {
		return rain
	}
	if warm != nil {
		return warm
	}
	return rain
}

func dayLabel(days []weather.DayWeather, d int) string {
	if d < len(days) && strings.TrimSpace(days[d].DayLabel) != "" {
		return days[d].DayLabel
	}
	return fmt.Sprintf("Day %d", d+1)
}

// AggregatePackingList groups every outfit item by category, keeping the first
// occurrence of each wardrobe item.
func AggregatePackingList(outfits []Outfit) []PackingGroup {
	seen := make(map[string]bool)
	grouped := make(map[string][]PackingItem)
	for _, o := range outfits {
		for _, p := range o.Items {
			if seen[p.WardrobeItemID] {
				continue
			}
			seen[p.WardrobeItemID] = true
			cat := groupCategory(p)
			grouped[cat] = append(grouped[cat], p)
		}
	}

	groups := make([]PackingGroup, 0, len(grouped))
	for _, cat := range categoryPriority {
		if items := grouped[cat]; len(items) > 0 {
			groups = append(groups, PackingGroup{Category: cat, Items: items})
		}
	}
	return groups
}

// groupCategory maps an item to its packing-list group via its bucket, so aliases
// like Skirts land under Bottoms.
func groupCategory(p PackingItem) string {
	b, ok := p.Bucket()
	if !ok {
		return "Other"
	}
	return b.Label()
}

var buildCounter atomic.Uint64

// NewBuildID returns build_<unix millis>_<base36 suffix>. The suffix mixes random
// bits with a process-wide counter so back-to-back calls never collide.
func NewBuildID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	n := binary.BigEndian.Uint64(b[:])
	suffix := strconv.FormatUint(n, 36) + strconv.FormatUint(buildCounter.Add(1), 36)
	return fmt.Sprintf("build_%d_%s", time.Now().UnixMilli(), suffix)
}
