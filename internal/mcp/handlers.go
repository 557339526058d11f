package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/hpungsan/satchel/internal/config"
	"github.com/hpungsan/satchel/internal/errors"
	"github.com/hpungsan/satchel/internal/ops"
	"github.com/hpungsan/satchel/internal/wardrobe"
	"github.com/hpungsan/satchel/internal/weather"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db      *sql.DB
	cfg     *config.Config
	logger  *zap.Logger
	planner *ops.Planner
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config, logger *zap.Logger) *Handlers {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		db:      db,
		cfg:     cfg,
		logger:  logger,
		planner: ops.NewPlanner(db, cfg, logger.Named("plan")),
	}
}

// Request types for each tool

// PlanRequest represents the arguments for trip_plan.
type PlanRequest struct {
	ID             string               `json:"id,omitempty"`
	Name           string               `json:"name,omitempty"`
	Wardrobe       []wardrobe.RawItem   `json:"wardrobe"`
	Weather        []weather.DayWeather `json:"weather"`
	Activities     []string             `json:"activities,omitempty"`
	LocationID     string               `json:"location_id,omitempty"`
	LocationLabels map[string]string    `json:"location_labels,omitempty"`
	Gender         string               `json:"gender,omitempty"`
	Prompt         string               `json:"prompt,omitempty"`
	Mode           string               `json:"mode,omitempty"`
}

// FetchRequest represents the arguments for trip_fetch.
type FetchRequest struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name,omitempty"`
	IncludeDeleted bool   `json:"include_deleted,omitempty"`
	IncludeCapsule *bool  `json:"include_capsule,omitempty"`
}

// ListRequest represents the arguments for trip_list.
type ListRequest struct {
	LocationID     string `json:"location_id,omitempty"`
	Limit          int    `json:"limit,omitempty"`
	Offset         int    `json:"offset,omitempty"`
	IncludeDeleted bool   `json:"include_deleted,omitempty"`
}

// DeleteRequest represents the arguments for trip_delete.
type DeleteRequest struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// PurgeRequest represents the arguments for trip_purge.
type PurgeRequest struct {
	OlderThanDays *int `json:"older_than_days,omitempty"`
}

// PackRequest represents the arguments for trip_pack.
type PackRequest struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name,omitempty"`
	WardrobeItemID string `json:"wardrobe_item_id"`
	Packed         *bool  `json:"packed,omitempty"`
}

// CheckRequest represents the arguments for capsule_check.
type CheckRequest struct {
	ID             string             `json:"id,omitempty"`
	Name           string             `json:"name,omitempty"`
	Wardrobe       []wardrobe.RawItem `json:"wardrobe,omitempty"`
	LocationLabels map[string]string  `json:"location_labels,omitempty"`
	Gender         string             `json:"gender,omitempty"`
	Prompt         string             `json:"prompt,omitempty"`
}

// StyleCheckRequest represents the arguments for style_check.
type StyleCheckRequest struct {
	Items  []wardrobe.RawItem `json:"items"`
	Gender string             `json:"gender,omitempty"`
	Prompt string             `json:"prompt,omitempty"`
}

// Handler implementations

// HandlePlan handles the trip_plan tool call.
func (h *Handlers) HandlePlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PlanRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := h.planner.Plan(ctx, ops.PlanInput{
		ID:             input.ID,
		Name:           input.Name,
		Wardrobe:       input.Wardrobe,
		LocationID:     input.LocationID,
		LocationLabels: input.LocationLabels,
		Weather:        input.Weather,
		Activities:     input.Activities,
		Gender:         input.Gender,
		Prompt:         input.Prompt,
		Mode:           input.Mode,
	})
	if err != nil {
		return h.failure("trip_plan", err), nil
	}

	return successResult(result)
}

// HandleFetch handles the trip_fetch tool call.
func (h *Handlers) HandleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FetchRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Fetch(ctx, h.db, ops.FetchInput{
		ID:             input.ID,
		Name:           input.Name,
		IncludeDeleted: input.IncludeDeleted,
		IncludeCapsule: input.IncludeCapsule,
	})
	if err != nil {
		return h.failure("trip_fetch", err), nil
	}

	return successResult(result)
}

// HandleList handles the trip_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.List(ctx, h.db, ops.ListInput{
		LocationID:     input.LocationID,
		Limit:          input.Limit,
		Offset:         input.Offset,
		IncludeDeleted: input.IncludeDeleted,
	})
	if err != nil {
		return h.failure("trip_list", err), nil
	}

	return successResult(result)
}

// HandleDelete handles the trip_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Delete(ctx, h.db, ops.DeleteInput{
		ID:   input.ID,
		Name: input.Name,
	})
	if err != nil {
		return h.failure("trip_delete", err), nil
	}

	return successResult(result)
}

// HandlePurge handles the trip_purge tool call.
func (h *Handlers) HandlePurge(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PurgeRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Purge(ctx, h.db, ops.PurgeInput{
		OlderThanDays: input.OlderThanDays,
	})
	if err != nil {
		return h.failure("trip_purge", err), nil
	}

	return successResult(result)
}

// HandlePack handles the trip_pack tool call.
func (h *Handlers) HandlePack(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PackRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Pack(ctx, h.db, ops.PackInput{
		ID:             input.ID,
		Name:           input.Name,
		WardrobeItemID: input.WardrobeItemID,
		Packed:         input.Packed,
	})
	if err != nil {
		return h.failure("trip_pack", err), nil
	}

	return successResult(result)
}

// HandleCheck handles the capsule_check tool call.
func (h *Handlers) HandleCheck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CheckRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Check(ctx, h.db, ops.CheckInput{
		ID:             input.ID,
		Name:           input.Name,
		Wardrobe:       input.Wardrobe,
		LocationLabels: input.LocationLabels,
		Gender:         input.Gender,
		Prompt:         input.Prompt,
		LocationMin:    h.cfg.LocationMinItems,
	})
	if err != nil {
		return h.failure("capsule_check", err), nil
	}

	return successResult(result)
}

// HandleStyleCheck handles the style_check tool call.
func (h *Handlers) HandleStyleCheck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[StyleCheckRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	if len(input.Items) == 0 {
		return errorResult(errors.NewInvalidRequest("items is required")), nil
	}

	return successResult(ops.StyleCheck(ops.StyleCheckInput{
		Items:  input.Items,
		Gender: input.Gender,
		Prompt: input.Prompt,
	}))
}

// Result helpers

// failure logs a failed tool call and converts err into an error result.
func (h *Handlers) failure(tool string, err error) *mcp.CallToolResult {
	if errors.Is(err, errors.ErrInternal) {
		h.logger.Error("tool failed", zap.String("tool", tool), zap.Error(err))
	} else {
		h.logger.Debug("tool rejected request", zap.String("tool", tool), zap.Error(err))
	}
	return errorResult(err)
}

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var sErr *errors.SatchelError
	if stderrors.As(err, &sErr) {
		message := sErr.Message
		if err != error(sErr) {
			// Keep wrapper context such as "items[2]: ..."
			message = err.Error()
		}
		errorObj := map[string]any{
			"code":    sErr.Code,
			"message": message,
			"status":  sErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if sErr.Code != errors.ErrInternal && sErr.Details != nil {
			errorObj["details"] = sErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
