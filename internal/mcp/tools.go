package mcp

import "github.com/mark3labs/mcp-go/mcp"

// wardrobeItemSchema describes one loosely typed wardrobe record. Both camelCase
// and snake_case field names are accepted; numbers may arrive as strings.
var wardrobeItemSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": true,
	"properties": map[string]any{
		"id":             map[string]any{"type": "string"},
		"name":           map[string]any{"type": "string"},
		"mainCategory":   map[string]any{"type": "string", "description": "Tops, Bottoms, Dresses, Outerwear, Shoes, Accessories, ..."},
		"subcategory":    map[string]any{"type": "string"},
		"color":          map[string]any{"type": "string"},
		"imageUrl":       map[string]any{"type": "string"},
		"locationId":     map[string]any{"type": "string"},
		"status":         map[string]any{"type": "string", "description": "at_cleaner, in_laundry, lent_out, donated and retired items are never packed"},
		"thermalRating":  map[string]any{"type": "number"},
		"breathability":  map[string]any{"type": "number"},
		"formalityScore": map[string]any{"type": "number"},
		"rainOk":         map[string]any{"type": "boolean"},
		"dressCode":      map[string]any{"type": "string"},
		"occasionTags":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
}

var dayWeatherSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"date":        map[string]any{"type": "string"},
		"day_label":   map[string]any{"type": "string"},
		"high_f":      map[string]any{"type": "number"},
		"low_f":       map[string]any{"type": "number"},
		"condition":   map[string]any{"type": "string", "description": "sunny, partly_cloudy, cloudy, rainy, stormy or snowy"},
		"rain_chance": map[string]any{"type": "number", "description": "Percent, 0-100"},
	},
}

var stringValues = map[string]any{"type": "string"}

var planToolDef = mcp.NewTool("trip_plan",
	mcp.WithDescription("Plan a trip capsule: pick day-by-day outfits and a deduplicated packing list from a wardrobe. "+
		"Re-planning an existing trip keeps its capsule unless the inputs changed, the build version changed, "+
		"or mode is FORCE."),
	mcp.WithString("id", mcp.Description("Existing trip id (mutually exclusive with name)")),
	mcp.WithString("name", mcp.Description("Trip name; creates the trip if it does not exist")),
	mcp.WithArray("wardrobe", mcp.Required(), mcp.Description("Wardrobe items"), mcp.Items(wardrobeItemSchema)),
	mcp.WithArray("weather", mcp.Required(), mcp.Description("One entry per trip day"), mcp.Items(dayWeatherSchema)),
	mcp.WithArray("activities", mcp.Description("Business, Dinner, Casual, Beach, Active, Formal, Sightseeing, Cold Weather"),
		mcp.Items(map[string]any{"type": "string"})),
	mcp.WithString("location_id", mcp.Description("Starting wardrobe location (default: config default_location)")),
	mcp.WithObject("location_labels", mcp.Description("Location id to display label"), mcp.AdditionalProperties(stringValues)),
	mcp.WithString("gender", mcp.Description("Profile gender; male/female pin the presentation, anything else is inferred from the wardrobe")),
	mcp.WithString("prompt", mcp.Description("Free-text request; mentioning dresses, skirts and similar lifts a masculine filter for this build")),
	mcp.WithString("mode", mcp.Description("AUTO (default) or FORCE"), mcp.Enum("AUTO", "FORCE")),
)

var fetchToolDef = mcp.NewTool("trip_fetch",
	mcp.WithDescription("Fetch a trip and its capsule by id or name."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("id", mcp.Description("Trip id")),
	mcp.WithString("name", mcp.Description("Trip name")),
	mcp.WithBoolean("include_deleted", mcp.Description("Include soft-deleted trips")),
	mcp.WithBoolean("include_capsule", mcp.Description("Include outfits and packing list (default: true)")),
)

var listToolDef = mcp.NewTool("trip_list",
	mcp.WithDescription("List trip summaries, most recently updated first."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("location_id", mcp.Description("Only trips starting from this location")),
	mcp.WithNumber("limit", mcp.Description("Page size (default 20, max 100)")),
	mcp.WithNumber("offset", mcp.Description("Page offset")),
	mcp.WithBoolean("include_deleted", mcp.Description("Include soft-deleted trips")),
)

var deleteToolDef = mcp.NewTool("trip_delete",
	mcp.WithDescription("Soft-delete a trip by id or name. Use trip_purge to remove it permanently."),
	mcp.WithDestructiveHintAnnotation(true),
	mcp.WithString("id", mcp.Description("Trip id")),
	mcp.WithString("name", mcp.Description("Trip name")),
)

var purgeToolDef = mcp.NewTool("trip_purge",
	mcp.WithDescription("Permanently delete soft-deleted trips."),
	mcp.WithDestructiveHintAnnotation(true),
	mcp.WithNumber("older_than_days", mcp.Description("Only purge trips deleted more than N days ago")),
)

var packToolDef = mcp.NewTool("trip_pack",
	mcp.WithDescription("Mark a wardrobe item as packed (or unpacked) in a trip's capsule."),
	mcp.WithString("id", mcp.Description("Trip id")),
	mcp.WithString("name", mcp.Description("Trip name")),
	mcp.WithString("wardrobe_item_id", mcp.Required(), mcp.Description("Wardrobe item id")),
	mcp.WithBoolean("packed", mcp.Description("Packed state to set (default: true)")),
)

var checkToolDef = mcp.NewTool("capsule_check",
	mcp.WithDescription("Check a stored capsule: whether it would be rebuilt, and which capsule invariants it breaks. "+
		"Pass the current wardrobe to also detect input changes. Nothing is built or saved."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("id", mcp.Description("Trip id")),
	mcp.WithString("name", mcp.Description("Trip name")),
	mcp.WithArray("wardrobe", mcp.Description("Current wardrobe items"), mcp.Items(wardrobeItemSchema)),
	mcp.WithObject("location_labels", mcp.Description("Location id to display label"), mcp.AdditionalProperties(stringValues)),
	mcp.WithString("gender", mcp.Description("Profile gender")),
	mcp.WithString("prompt", mcp.Description("Free-text request")),
)

var styleCheckToolDef = mcp.NewTool("style_check",
	mcp.WithDescription("Resolve the style presentation for a wardrobe and report which items the eligibility filter keeps."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithArray("items", mcp.Required(), mcp.Description("Wardrobe items"), mcp.Items(wardrobeItemSchema)),
	mcp.WithString("gender", mcp.Description("Profile gender")),
	mcp.WithString("prompt", mcp.Description("Free-text request")),
)
