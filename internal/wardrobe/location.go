package wardrobe

import "strings"

// DefaultLocationMinItems is the smallest location-filtered wardrobe used as-is.
const DefaultLocationMinItems = 5

// unavailableStatuses are statuses that make an item unpackable wherever it is.
var unavailableStatuses = map[string]bool{
	"at_cleaner": true,
	"in_laundry": true,
	"lent_out":   true,
	"donated":    true,
	"retired":    true,
}

// Available reports whether the record's status allows packing it.
func (r RawItem) Available() bool {
	status := strings.ToLower(r.str("status", "status"))
	return !unavailableStatuses[status]
}

// FilterResult is the outcome of a location filter.
type FilterResult struct {
	Items      []RawItem
	FellBack   bool // true when the location set was too small and the whole wardrobe was used
	AtLocation int  // available items found at the requested location
}

// FilterByLocation restricts the wardrobe to available items at locationID.
// When fewer than min items qualify, every available item is returned instead.
// A non-positive min uses DefaultLocationMinItems.
func FilterByLocation(wardrobe []RawItem, locationID string, min int) FilterResult {
	if min <= 0 {
		min = DefaultLocationMinItems
	}
	if strings.TrimSpace(locationID) == "" {
		locationID = DefaultLocation
	}

	available := make([]RawItem, 0, len(wardrobe))
	var here []RawItem
	for _, r := range wardrobe {
		if !r.Available() {
			continue
		}
		available = append(available, r)
		if r.Location() == locationID {
			here = append(here, r)
		}
	}

	if len(here) < min {
		return FilterResult{Items: available, FellBack: true, AtLocation: len(here)}
	}
	return FilterResult{Items: here, AtLocation: len(here)}
}
