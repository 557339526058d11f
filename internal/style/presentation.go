package style

import (
	"strings"

	"github.com/hpungsan/satchel/internal/wardrobe"
)

// Presentation is the gender-style profile that controls eligibility filtering.
type Presentation string

const (
	Masculine Presentation = "masculine"
	Feminine  Presentation = "feminine"
	Mixed     Presentation = "mixed"
)

// Detection thresholds for DetectPresentation.
const (
	feminineMinCount  = 2
	feminineMinShare  = 0.2
	masculineMinItems = 5
)

var genderSeparators = strings.NewReplacer("-", "_", " ", "_")

// NormalizeGenderToPresentation maps a profile gender string to a Presentation.
// "male" and "female" map to masculine and feminine; anything else is mixed.
func NormalizeGenderToPresentation(raw string) Presentation {
	key := genderSeparators.Replace(strings.ToLower(strings.TrimSpace(raw)))
	switch key {
	case "male":
		return Masculine
	case "female":
		return Feminine
	default:
		return Mixed
	}
}

// DetectPresentation infers a presentation from wardrobe composition.
func DetectPresentation(items []wardrobe.Item) Presentation {
	if len(items) == 0 {
		return Mixed
	}
	feminine := 0
	for _, it := range items {
		if InferGarmentFlags(it).FeminineOnly {
			feminine++
		}
	}
	switch {
	case feminine >= feminineMinCount || float64(feminine)/float64(len(items)) >= feminineMinShare:
		return Feminine
	case feminine == 0 && len(items) >= masculineMinItems:
		return Masculine
	default:
		return Mixed
	}
}

// ResolvePresentation prefers an explicit profile and falls back to detection.
func ResolvePresentation(gender string, items []wardrobe.Item) Presentation {
	if p := NormalizeGenderToPresentation(gender); p != Mixed {
		return p
	}
	return DetectPresentation(items)
}
