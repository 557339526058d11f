package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/satchel/internal/capsule"
	"github.com/hpungsan/satchel/internal/wardrobe"
)

// CheckInput contains parameters for the Check operation.
type CheckInput struct {
	ID   string
	Name string

	// Wardrobe, when set, is fingerprinted against the stored trip's forecast,
	// activities and location. Without it the fingerprint check is skipped.
	Wardrobe       []wardrobe.RawItem
	LocationLabels map[string]string
	Gender         string
	Prompt         string
	LocationMin    int
}

// CheckOutput contains the result of the Check operation.
type CheckOutput struct {
	ID                 string                   `json:"id"`
	Decision           capsule.Decision         `json:"decision"`
	Validation         capsule.ValidationResult `json:"validation"`
	FingerprintChecked bool                     `json:"fingerprint_checked"`
}

// Check runs the rebuild gate and the invariant checker against a stored
// capsule without building or persisting anything.
func Check(ctx context.Context, database *sql.DB, input CheckInput) (*CheckOutput, error) {
	addr, err := ValidateAddress(input.ID, input.Name)
	if err != nil {
		return nil, err
	}

	t, err := getTrip(ctx, database, addr, false)
	if err != nil {
		return nil, err
	}

	presentation := t.Presentation
	var fingerprint string
	if t.Capsule != nil && t.Capsule.Fingerprint != nil {
		fingerprint = *t.Capsule.Fingerprint
	}

	output := &CheckOutput{ID: t.ID}
	if input.Wardrobe != nil {
		prepared := capsule.Prepare(capsule.Request{
			Wardrobe:       input.Wardrobe,
			LocationID:     t.LocationID,
			LocationMin:    input.LocationMin,
			LocationLabels: input.LocationLabels,
			Weather:        t.Weather,
			Activities:     t.Activities,
			Gender:         input.Gender,
			Prompt:         input.Prompt,
		})
		presentation = prepared.Input.Presentation
		fingerprint = prepared.Input.Fingerprint
		output.FingerprintChecked = true
	}

	output.Decision = capsule.ShouldRebuild(t.Capsule, capsule.CapsuleVersion, presentation, fingerprint, capsule.ModeAuto)
	if t.Capsule != nil {
		output.Validation = *capsule.Validate(t.Capsule, presentation)
	} else {
		output.Validation = capsule.ValidationResult{Valid: true}
	}

	return output, nil
}
