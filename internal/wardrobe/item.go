package wardrobe

import (
	"strings"

	"github.com/spf13/cast"
)

// DefaultLocation is the closet location assumed when a record carries none.
const DefaultLocation = "home"

// UnknownItemName is used when a record has no name.
const UnknownItemName = "Unknown Item"

// RawItem is a wardrobe record as supplied by an inventory source.
// Keys may be camelCase or snake_case; values are loosely typed JSON.
type RawItem map[string]any

// Item is the canonical wardrobe item consumed by the capsule engine.
// Optional numeric and boolean attributes are nil when the source did not supply them,
// which means "unknown, do not score".
type Item struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ImageURL     string `json:"image_url,omitempty"`
	Color        string `json:"color,omitempty"`
	MainCategory string `json:"main_category,omitempty"`
	Subcategory  string `json:"subcategory,omitempty"`
	Material     string `json:"material,omitempty"`
	Seasonality  string `json:"seasonality,omitempty"`
	Layering     string `json:"layering,omitempty"`
	DressCode    string `json:"dress_code,omitempty"`
	LocationID   string `json:"location_id"`
	Status       string `json:"status,omitempty"`

	ThermalRating        *float64 `json:"thermal_rating,omitempty"`
	Breathability        *float64 `json:"breathability,omitempty"`
	FormalityScore       *float64 `json:"formality_score,omitempty"`
	ClimateSweetspotFMin *float64 `json:"climate_sweetspot_f_min,omitempty"`
	ClimateSweetspotFMax *float64 `json:"climate_sweetspot_f_max,omitempty"`
	RainOK               *bool    `json:"rain_ok,omitempty"`
	OccasionTags         []string `json:"occasion_tags,omitempty"`
}

// Adapt normalizes a raw record into an Item.
// camelCase keys win over snake_case; absent fields stay empty or nil.
func Adapt(raw RawItem) Item {
	item := Item{
		ID:           raw.str("id", "id"),
		Name:         raw.str("name", "name"),
		ImageURL:     raw.str("imageUrl", "image_url"),
		Color:        raw.str("color", "color"),
		MainCategory: raw.str("mainCategory", "main_category"),
		Subcategory:  raw.str("subcategory", "sub_category"),
		Material:     raw.str("material", "material"),
		Seasonality:  raw.str("seasonality", "seasonality"),
		Layering:     raw.str("layering", "layering"),
		DressCode:    raw.str("dressCode", "dress_code"),
		LocationID:   raw.Location(),
		Status:       raw.str("status", "status"),

		ThermalRating:        raw.num("thermalRating", "thermal_rating"),
		Breathability:        raw.num("breathability", "breathability"),
		FormalityScore:       raw.num("formalityScore", "formality_score"),
		ClimateSweetspotFMin: raw.num("climateSweetspotFMin", "climate_sweetspot_f_min"),
		ClimateSweetspotFMax: raw.num("climateSweetspotFMax", "climate_sweetspot_f_max"),
		RainOK:               raw.flag("rainOk", "rain_ok"),
		OccasionTags:         raw.strs("occasionTags", "occasion_tags"),
	}
	if item.Subcategory == "" {
		item.Subcategory = raw.str("subCategory", "subcategory")
	}
	if strings.TrimSpace(item.Name) == "" {
		item.Name = UnknownItemName
	}
	return item
}

// AdaptAll adapts every record, preserving order.
func AdaptAll(raws []RawItem) []Item {
	items := make([]Item, 0, len(raws))
	for _, r := range raws {
		items = append(items, Adapt(r))
	}
	return items
}

// Location returns the record's closet location, accepting either field name.
func (r RawItem) Location() string {
	if loc := r.str("locationId", "location_id"); loc != "" {
		return loc
	}
	return DefaultLocation
}

// lookup returns the camelCase value if present, else the snake_case value.
func (r RawItem) lookup(camel, snake string) (any, bool) {
	if v, ok := r[camel]; ok && v != nil {
		return v, true
	}
	if v, ok := r[snake]; ok && v != nil {
		return v, true
	}
	return nil, false
}

func (r RawItem) str(camel, snake string) string {
	v, ok := r.lookup(camel, snake)
	if !ok {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func (r RawItem) num(camel, snake string) *float64 {
	v, ok := r.lookup(camel, snake)
	if !ok {
		return nil
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return nil
	}
	return &f
}

func (r RawItem) flag(camel, snake string) *bool {
	v, ok := r.lookup(camel, snake)
	if !ok {
		return nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return nil
	}
	return &b
}

func (r RawItem) strs(camel, snake string) []string {
	v, ok := r.lookup(camel, snake)
	if !ok {
		return nil
	}
	if s, isStr := v.(string); isStr {
		return splitTags(s)
	}
	list, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, t := range list {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// splitTags splits a comma-separated tag string.
func splitTags(s string) []string {
	var tags []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
