package capsule

import (
	"github.com/hpungsan/satchel/internal/activity"
	"github.com/hpungsan/satchel/internal/style"
	"github.com/hpungsan/satchel/internal/wardrobe"
	"github.com/hpungsan/satchel/internal/weather"
)

// Request is a trip-planning request in the shape external collaborators supply it.
type Request struct {
	Wardrobe       []wardrobe.RawItem
	LocationID     string
	LocationMin    int // non-positive uses wardrobe.DefaultLocationMinItems
	LocationLabels map[string]string
	Weather        []weather.DayWeather
	Activities     []activity.Activity
	Gender         string // profile gender, e.g. "male", "non_binary"
	Prompt         string // free text checked for a feminine override
}

// Prepared is a Request resolved into build input.
type Prepared struct {
	Input        BuildInput
	Location     wardrobe.FilterResult
	Presentation style.Presentation // resolved before any prompt override
	Override     bool               // true when the prompt lifted a masculine profile
}

// Prepare runs location filtering, adaptation and presentation resolution, and
// computes the input fingerprint.
func Prepare(req Request) Prepared {
	loc := wardrobe.FilterByLocation(req.Wardrobe, req.LocationID, req.LocationMin)
	items := wardrobe.AdaptAll(loc.Items)

	// Composition is judged on the whole wardrobe, not just the starting closet.
	resolved := style.ResolvePresentation(req.Gender, wardrobe.AdaptAll(req.Wardrobe))
	effective := style.Effective(resolved, req.Prompt)

	in := BuildInput{
		Items:          items,
		Weather:        req.Weather,
		Activities:     req.Activities,
		Presentation:   effective,
		LocationLabels: req.LocationLabels,
	}
	in.Fingerprint = Fingerprint(in)

	return Prepared{
		Input:        in,
		Location:     loc,
		Presentation: resolved,
		Override:     effective != resolved,
	}
}
