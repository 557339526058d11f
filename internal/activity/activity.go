package activity

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hpungsan/satchel/internal/wardrobe"
)

// Activity is a planned trip activity.
type Activity string

const (
	Business    Activity = "Business"
	Dinner      Activity = "Dinner"
	Casual      Activity = "Casual"
	Beach       Activity = "Beach"
	Active      Activity = "Active"
	Formal      Activity = "Formal"
	Sightseeing Activity = "Sightseeing"
	ColdWeather Activity = "Cold Weather"
)

// All lists every activity.
var All = []Activity{Business, Dinner, Casual, Beach, Active, Formal, Sightseeing, ColdWeather}

// Parse matches an activity name case-insensitively, treating '_' and '-' as spaces.
func Parse(s string) (Activity, error) {
	key := strings.ToLower(strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(s)))
	for _, a := range All {
		if strings.ToLower(string(a)) == key {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown activity %q", s)
}

// ParseAll parses a list of names, dropping duplicates while keeping first-seen order.
func ParseAll(names []string) ([]Activity, error) {
	out := make([]Activity, 0, len(names))
	for _, n := range names {
		a, err := Parse(n)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, a) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Score sums how well an item fits the planned activities. It is a sort key, never a filter.
func Score(item wardrobe.Item, activities []Activity) float64 {
	var total float64
	for _, a := range activities {
		total += scoreOne(item, a)
	}
	return total
}

func scoreOne(it wardrobe.Item, a Activity) float64 {
	dressCode := strings.ToLower(it.DressCode)
	sub := strings.ToLower(it.Subcategory)
	var pts float64

	switch a {
	case Business:
		if strings.Contains(dressCode, "business") || atLeast(it.FormalityScore, 70) {
			pts += 2
		}
	case Dinner:
		if strings.Contains(dressCode, "smart") || strings.Contains(dressCode, "cocktail") || atLeast(it.FormalityScore, 50) {
			pts += 2
		}
		if hasTag(it, "dinner", "date", "evening") {
			pts++
		}
	case Casual:
		if strings.Contains(dressCode, "casual") || hasTag(it, "casual", "everyday") {
			pts += 2
		}
	case Beach:
		if it.MainCategory == "Swimwear" {
			pts += 3
		}
		if strings.Contains(sub, "sandal") || strings.Contains(sub, "short") {
			pts++
		}
		if atLeast(it.Breathability, 70) {
			pts++
		}
	case Active:
		if it.MainCategory == "Activewear" {
			pts += 3
		}
		if strings.Contains(sub, "sneaker") || hasTag(it, "gym", "sport", "athletic", "hiking") {
			pts++
		}
	case Formal:
		if strings.Contains(dressCode, "formal") || strings.Contains(dressCode, "black tie") || atLeast(it.FormalityScore, 80) {
			pts += 3
		}
		if it.MainCategory == "Formalwear" {
			pts += 2
		}
	case Sightseeing:
		if it.MainCategory == "Shoes" && (strings.Contains(sub, "sneaker") || strings.Contains(sub, "walking") || strings.Contains(sub, "boot")) {
			pts += 2
		}
		if atLeast(it.Breathability, 60) {
			pts++
		}
	case ColdWeather:
		if it.MainCategory == "Outerwear" {
			pts += 2
			if it.ThermalRating != nil && *it.ThermalRating > 60 {
				pts++
			}
		}
	}
	return pts
}

func atLeast(v *float64, min float64) bool {
	return v != nil && *v >= min
}

func hasTag(it wardrobe.Item, tags ...string) bool {
	for _, t := range it.OccasionTags {
		if slices.Contains(tags, strings.ToLower(t)) {
			return true
		}
	}
	return false
}
