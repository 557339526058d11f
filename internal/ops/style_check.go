package ops

import (
	"github.com/hpungsan/satchel/internal/style"
	"github.com/hpungsan/satchel/internal/wardrobe"
)

// StyleCheckInput contains parameters for the StyleCheck operation.
type StyleCheckInput struct {
	Items  []wardrobe.RawItem
	Gender string
	Prompt string
}

// StyleCheckItem is the eligibility verdict for one item.
type StyleCheckItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MainCategory string `json:"main_category"`
	FeminineOnly bool   `json:"feminine_only"`
	OnePiece     bool   `json:"one_piece"`
	Eligible     bool   `json:"eligible"`
}

// StyleCheckOutput contains the result of the StyleCheck operation.
type StyleCheckOutput struct {
	Resolved  style.Presentation `json:"resolved"`
	Effective style.Presentation `json:"effective"`
	Override  bool               `json:"override"`
	Items     []StyleCheckItem   `json:"items"`
	Eligible  int                `json:"eligible"`
}

// StyleCheck reports how presentation resolves for a wardrobe and which items
// the eligibility filter keeps.
func StyleCheck(input StyleCheckInput) *StyleCheckOutput {
	items := wardrobe.AdaptAll(input.Items)
	resolved := style.ResolvePresentation(input.Gender, items)
	effective := style.Effective(resolved, input.Prompt)

	output := &StyleCheckOutput{
		Resolved:  resolved,
		Effective: effective,
		Override:  effective != resolved,
		Items:     make([]StyleCheckItem, 0, len(items)),
	}
	for _, it := range items {
		flags := style.InferGarmentFlags(it)
		eligible := style.IsEligible(it, effective)
		if eligible {
			output.Eligible++
		}
		output.Items = append(output.Items, StyleCheckItem{
			ID:           it.ID,
			Name:         it.Name,
			MainCategory: it.MainCategory,
			FeminineOnly: flags.FeminineOnly,
			OnePiece:     flags.OnePiece,
			Eligible:     eligible,
		})
	}
	return output
}
