package ops

import (
	"context"
	"crypto/rand"
	"database/sql"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/hpungsan/satchel/internal/activity"
	"github.com/hpungsan/satchel/internal/capsule"
	"github.com/hpungsan/satchel/internal/config"
	"github.com/hpungsan/satchel/internal/db"
	"github.com/hpungsan/satchel/internal/errors"
	"github.com/hpungsan/satchel/internal/wardrobe"
	"github.com/hpungsan/satchel/internal/weather"
)

// Planner builds and persists trip capsules.
type Planner struct {
	db     *sql.DB
	cfg    *config.Config
	logger *zap.Logger
}

// NewPlanner creates a Planner. A nil logger discards log output.
func NewPlanner(database *sql.DB, cfg *config.Config, logger *zap.Logger) *Planner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{db: database, cfg: cfg, logger: logger}
}

// PlanInput contains parameters for the Plan operation.
type PlanInput struct {
	// Address: ID re-plans an existing trip; Name creates the trip or re-plans it.
	ID   string
	Name string

	Wardrobe       []wardrobe.RawItem
	LocationID     string // default: config default_location
	LocationLabels map[string]string
	Weather        []weather.DayWeather
	Activities     []string
	Gender         string
	Prompt         string
	Mode           string // "AUTO" (default) or "FORCE"
}

// PlanOutput contains the result of the Plan operation.
type PlanOutput struct {
	Trip                 capsule.Trip        `json:"trip"`
	Decision             capsule.Decision    `json:"decision"`
	Built                bool                `json:"built"`
	Created              bool                `json:"created"`
	LocationFallback     bool                `json:"location_fallback"`
	PresentationOverride bool                `json:"presentation_override"`
	Violations           []capsule.Violation `json:"violations,omitempty"`
}

// Plan resolves the request, consults the rebuild gate against the stored
// capsule, builds when needed and persists the trip. A concurrent update of
// the same trip (a pack, another plan) restarts the whole pass.
func (p *Planner) Plan(ctx context.Context, input PlanInput) (*PlanOutput, error) {
	return retryOnConflict(ctx, func() (*PlanOutput, error) {
		return p.plan(ctx, input)
	})
}

func (p *Planner) plan(ctx context.Context, input PlanInput) (*PlanOutput, error) {
	addr, err := ValidateAddress(input.ID, input.Name)
	if err != nil {
		return nil, err
	}
	if !addr.ByID && addr.Name == "" {
		return nil, errors.NewInvalidRequest("name must not be empty")
	}
	if len(input.Weather) == 0 {
		return nil, errors.NewInvalidRequest("weather must contain at least one day")
	}
	activities, err := parseActivities(input.Activities)
	if err != nil {
		return nil, err
	}

	existing, err := getTrip(ctx, p.db, addr, false)
	if err != nil && !(errors.Is(err, errors.ErrNotFound) && !addr.ByID) {
		return nil, err
	}

	locationID := strings.TrimSpace(input.LocationID)
	if locationID == "" && existing != nil {
		locationID = existing.LocationID
	}
	if locationID == "" {
		locationID = p.cfg.DefaultLocation
	}

	prepared := capsule.Prepare(capsule.Request{
		Wardrobe:       input.Wardrobe,
		LocationID:     locationID,
		LocationMin:    p.cfg.LocationMinItems,
		LocationLabels: input.LocationLabels,
		Weather:        input.Weather,
		Activities:     activities,
		Gender:         input.Gender,
		Prompt:         input.Prompt,
	})
	if prepared.Location.FellBack {
		p.logger.Warn("location below minimum, using whole wardrobe",
			zap.String("location_id", locationID),
			zap.Int("at_location", prepared.Location.AtLocation),
			zap.Int("min_items", p.cfg.LocationMinItems),
		)
	}
	if prepared.Override {
		p.logger.Info("prompt overrides masculine presentation",
			zap.String("presentation", string(prepared.Input.Presentation)),
		)
	}

	var stored *capsule.TripCapsule
	if existing != nil {
		stored = existing.Capsule
	}
	decision := capsule.ShouldRebuild(stored, capsule.CapsuleVersion,
		prepared.Input.Presentation, prepared.Input.Fingerprint, capsule.ParseMode(input.Mode))

	output := &PlanOutput{
		Decision:             decision,
		LocationFallback:     prepared.Location.FellBack,
		PresentationOverride: prepared.Override,
	}

	tripCapsule := stored
	if decision.Rebuild || decision.Reason == capsule.ReasonNoCapsule {
		built := capsule.Build(prepared.Input)
		tripCapsule = &built
		output.Built = true

		result := capsule.Validate(tripCapsule, prepared.Input.Presentation)
		for _, v := range result.Violations {
			p.logger.Warn("capsule violation",
				zap.String("code", v.Code),
				zap.String("outfit_id", v.OutfitID),
				zap.String("item_id", v.ItemID),
			)
		}
		output.Violations = result.Violations
	}

	p.logger.Info("plan decision",
		zap.String("reason", string(decision.Reason)),
		zap.String("mode", string(decision.Mode)),
		zap.Bool("built", output.Built),
		zap.Int("days", len(input.Weather)),
		zap.Int("items", len(prepared.Input.Items)),
	)

	if existing == nil {
		trip, err := p.create(ctx, input.Name, locationID, prepared, tripCapsule)
		if err != nil {
			return nil, err
		}
		output.Trip = *trip
		output.Created = true
		return output, nil
	}

	existing.LocationID = locationID
	existing.Presentation = prepared.Input.Presentation
	existing.Activities = activities
	existing.Weather = input.Weather
	existing.Capsule = tripCapsule
	if err := db.UpdateByID(ctx, p.db, existing); err != nil {
		if errors.Is(err, errors.ErrConflict) {
			p.logger.Debug("trip changed during plan, retrying", zap.String("trip_id", existing.ID))
		}
		return nil, err
	}
	output.Trip = *existing

	return output, nil
}

// create inserts a new trip. Name collisions from concurrent creators surface
// as NAME_ALREADY_EXISTS.
func (p *Planner) create(ctx context.Context, name, locationID string, prepared capsule.Prepared, c *capsule.TripCapsule) (*capsule.Trip, error) {
	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	now := time.Now().Unix()

	trip := &capsule.Trip{
		ID:           id,
		NameRaw:      strings.TrimSpace(name),
		NameNorm:     capsule.Normalize(name),
		LocationID:   locationID,
		Presentation: prepared.Input.Presentation,
		Activities:   prepared.Input.Activities,
		Weather:      prepared.Input.Weather,
		Capsule:      c,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Insert(ctx, p.db, trip); err != nil {
		if err == db.ErrUniqueConstraint {
			return nil, errors.NewNameAlreadyExists(trip.NameRaw)
		}
		return nil, err
	}

	p.logger.Info("trip created", zap.String("trip_id", id), zap.String("name", trip.NameRaw))
	return trip, nil
}

// parseActivities maps raw activity names, rejecting unknown ones.
func parseActivities(names []string) ([]activity.Activity, error) {
	for _, n := range names {
		if _, err := activity.Parse(n); err != nil {
			return nil, errors.NewInvalidActivity(n)
		}
	}
	return activity.ParseAll(names)
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
