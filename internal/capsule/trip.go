package capsule

import (
	"regexp"
	"strings"

	"github.com/hpungsan/satchel/internal/activity"
	"github.com/hpungsan/satchel/internal/style"
	"github.com/hpungsan/satchel/internal/weather"
)

// Trip is a stored trip and its most recent capsule.
type Trip struct {
	// ID is a ULID that uniquely identifies this trip
	ID string `json:"id"`

	// NameRaw is the trip name as provided by the user
	NameRaw string `json:"name"`

	// NameNorm is the normalized name (lowercased, trimmed, collapsed spaces)
	NameNorm string `json:"name_norm"`

	LocationID   string               `json:"location_id"`
	Presentation style.Presentation   `json:"presentation"`
	Activities   []activity.Activity  `json:"activities"`
	Weather      []weather.DayWeather `json:"weather"`

	// Capsule is nil until the first build
	Capsule *TripCapsule `json:"capsule,omitempty"`

	// CreatedAt is the Unix timestamp when the trip was created
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp when the trip was last updated
	UpdatedAt int64 `json:"updated_at"`

	// DeletedAt is the Unix timestamp when the trip was soft-deleted (nil if active)
	DeletedAt *int64 `json:"deleted_at,omitempty"`

	// Revision counts updates; a write only applies if it is unchanged since the read
	Revision int64 `json:"revision"`
}

// TripSummary is a trip without its forecast and capsule body.
type TripSummary struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	LocationID   string              `json:"location_id"`
	Presentation style.Presentation  `json:"presentation"`
	Activities   []activity.Activity `json:"activities"`
	Days         int                 `json:"days"`
	ItemCount    int                 `json:"item_count"`
	PackedCount  int                 `json:"packed_count"`
	BuildID      string              `json:"build_id,omitempty"`
	CreatedAt    int64               `json:"created_at"`
	UpdatedAt    int64               `json:"updated_at"`
	DeletedAt    *int64              `json:"deleted_at,omitempty"`
}

// ToSummary strips the capsule body.
func (t *Trip) ToSummary() TripSummary {
	s := TripSummary{
		ID:           t.ID,
		Name:         t.NameRaw,
		LocationID:   t.LocationID,
		Presentation: t.Presentation,
		Activities:   t.Activities,
		Days:         len(t.Weather),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
		DeletedAt:    t.DeletedAt,
	}
	if t.Capsule != nil {
		s.BuildID = t.Capsule.BuildID
		for _, g := range t.Capsule.PackingList {
			for _, it := range g.Items {
				s.ItemCount++
				if it.Packed {
					s.PackedCount++
				}
			}
		}
	}
	return s
}

// whitespaceRegex matches one or more whitespace characters
var whitespaceRegex = regexp.MustCompile(`\s+`)

// Normalize trims, lowercases and collapses internal whitespace.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return whitespaceRegex.ReplaceAllString(s, " ")
}
