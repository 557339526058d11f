package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/satchel/internal/config"
	"github.com/hpungsan/satchel/internal/db"
	"github.com/hpungsan/satchel/internal/errors"
)

// testSetup creates a temporary database and config for testing.
func testSetup(t *testing.T) (*sql.DB, *config.Config, func()) {
	t.Helper()

	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	if err != nil {
		t.Fatalf("failed to init db: %v", err)
	}

	cfg := config.DefaultConfig()

	cleanup := func() {
		database.Close()
	}

	return database, cfg, cleanup
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// wardrobeArgs returns a small wardrobe as it arrives over the wire.
func wardrobeArgs() []any {
	return []any{
		map[string]any{"id": "t1", "name": "White Tee", "mainCategory": "Tops", "locationId": "home"},
		map[string]any{"id": "t2", "name": "Oxford Shirt", "mainCategory": "Tops", "locationId": "home", "formalityScore": "60"},
		map[string]any{"id": "b1", "name": "Chinos", "main_category": "Bottoms", "locationId": "home"},
		map[string]any{"id": "b2", "name": "Jeans", "main_category": "Bottoms", "locationId": "home"},
		map[string]any{"id": "d1", "name": "Sundress", "mainCategory": "Dresses", "locationId": "home"},
		map[string]any{"id": "s1", "name": "Sneakers", "mainCategory": "Shoes", "locationId": "home"},
		map[string]any{"id": "o1", "name": "Wool Coat", "mainCategory": "Outerwear", "locationId": "home", "thermalRating": 80},
	}
}

func weatherArgs(days int) []any {
	out := make([]any, days)
	for i := range out {
		out[i] = map[string]any{
			"date":      fmt.Sprintf("2026-05-%02d", i+1),
			"day_label": fmt.Sprintf("Day %d", i+1),
			"high_f":    72,
			"low_f":     58,
			"condition": "Sunny",
		}
	}
	return out
}

func planArgs(name string) map[string]any {
	return map[string]any{
		"name":       name,
		"wardrobe":   wardrobeArgs(),
		"weather":    weatherArgs(3),
		"activities": []any{"casual", "dinner"},
	}
}

// planTrip plans a trip through the handler and returns its id.
func planTrip(t *testing.T, h *Handlers, name string) string {
	t.Helper()
	result, err := h.HandlePlan(context.Background(), makeRequest(planArgs(name)))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	output := parseOutput(t, result)
	trip := output["trip"].(map[string]any)
	return trip["id"].(string)
}

func TestHandlePlan(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg, nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		errorCode string
	}{
		{
			name: "plan new trip",
			args: planArgs("Porto"),
		},
		{
			name: "force rebuild",
			args: func() map[string]any {
				a := planArgs("Porto")
				a["mode"] = "FORCE"
				return a
			}(),
		},
		{
			name: "missing address",
			args: func() map[string]any {
				a := planArgs("")
				delete(a, "name")
				return a
			}(),
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
		{
			name: "ambiguous address",
			args: func() map[string]any {
				a := planArgs("Porto")
				a["id"] = "01ABC"
				return a
			}(),
			wantError: true,
			errorCode: "AMBIGUOUS_ADDRESS",
		},
		{
			name: "unknown activity",
			args: func() map[string]any {
				a := planArgs("Porto")
				a["activities"] = []any{"juggling"}
				return a
			}(),
			wantError: true,
			errorCode: "INVALID_ACTIVITY",
		},
		{
			name: "no weather",
			args: func() map[string]any {
				a := planArgs("Porto")
				a["weather"] = []any{}
				return a
			}(),
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
		{
			name: "wardrobe of wrong type",
			args: func() map[string]any {
				a := planArgs("Porto")
				a["wardrobe"] = "everything"
				return a
			}(),
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandlePlan(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.wantError {
				if !result.IsError {
					t.Errorf("expected error result, got success")
				}
				if tt.errorCode != "" {
					assertErrorCode(t, result, tt.errorCode)
				}
			} else if result.IsError {
				t.Errorf("expected success, got error: %v", extractErrorMessage(result))
			}
		})
	}
}

func TestHandlePlan_OutputShape(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg, nil)
	ctx := context.Background()

	result, err := h.HandlePlan(ctx, makeRequest(planArgs("Madrid")))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	output := parseOutput(t, result)

	if output["created"] != true || output["built"] != true {
		t.Errorf("created=%v built=%v, want both true", output["created"], output["built"])
	}
	decision := output["decision"].(map[string]any)
	if decision["reason"] != "NO_CAPSULE" {
		t.Errorf("reason = %v, want NO_CAPSULE", decision["reason"])
	}

	trip := output["trip"].(map[string]any)
	c := trip["capsule"].(map[string]any)
	outfits := c["outfits"].([]any)
	if len(outfits) != 3 {
		t.Errorf("outfits = %d, want 3", len(outfits))
	}
	if _, ok := c["fingerprint"].(string); !ok {
		t.Errorf("expected fingerprint in capsule, got %v", c["fingerprint"])
	}

	// Same inputs again: the stored capsule is kept.
	result, err = h.HandlePlan(ctx, makeRequest(planArgs("madrid")))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	again := parseOutput(t, result)
	if again["built"] != false {
		t.Errorf("built = %v, want false on unchanged inputs", again["built"])
	}
	againCapsule := again["trip"].(map[string]any)["capsule"].(map[string]any)
	if againCapsule["build_id"] != c["build_id"] {
		t.Errorf("build_id changed: %v -> %v", c["build_id"], againCapsule["build_id"])
	}
}

func TestHandleFetch(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg, nil)
	ctx := context.Background()

	tripID := planTrip(t, h, "Fetch Test")

	tests := []struct {
		name        string
		args        map[string]any
		wantError   bool
		errorCode   string
		wantCapsule bool
	}{
		{
			name:        "fetch by name",
			args:        map[string]any{"name": "fetch test"},
			wantCapsule: true,
		},
		{
			name:        "fetch by id",
			args:        map[string]any{"id": tripID},
			wantCapsule: true,
		},
		{
			name: "fetch without capsule",
			args: map[string]any{"id": tripID, "include_capsule": false},
		},
		{
			name:      "fetch non-existent",
			args:      map[string]any{"name": "does-not-exist"},
			wantError: true,
			errorCode: "NOT_FOUND",
		},
		{
			name:      "fetch with ambiguous address",
			args:      map[string]any{"id": tripID, "name": "Fetch Test"},
			wantError: true,
			errorCode: "AMBIGUOUS_ADDRESS",
		},
		{
			name:      "fetch with no address",
			args:      map[string]any{},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleFetch(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.wantError {
				if !result.IsError {
					t.Errorf("expected error result, got success")
				}
				if tt.errorCode != "" {
					assertErrorCode(t, result, tt.errorCode)
				}
				return
			}

			output := parseOutput(t, result)
			if output["id"] != tripID {
				t.Errorf("id = %v, want %s", output["id"], tripID)
			}
			_, hasCapsule := output["capsule"]
			if hasCapsule != tt.wantCapsule {
				t.Errorf("capsule present = %v, want %v", hasCapsule, tt.wantCapsule)
			}
		})
	}
}

func TestHandleList(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg, nil)
	ctx := context.Background()

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		planTrip(t, h, name)
	}

	tests := []struct {
		name      string
		args      map[string]any
		wantCount int
		wantTotal float64
		wantMore  bool
	}{
		{
			name:      "default",
			args:      map[string]any{},
			wantCount: 3,
			wantTotal: 3,
		},
		{
			name:      "paged",
			args:      map[string]any{"limit": 2},
			wantCount: 2,
			wantTotal: 3,
			wantMore:  true,
		},
		{
			name:      "offset past end",
			args:      map[string]any{"offset": 10},
			wantCount: 0,
			wantTotal: 3,
		},
		{
			name:      "other location",
			args:      map[string]any{"location_id": "office"},
			wantCount: 0,
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleList(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			output := parseOutput(t, result)

			items := output["items"].([]any)
			if len(items) != tt.wantCount {
				t.Errorf("items = %d, want %d", len(items), tt.wantCount)
			}
			pagination := output["pagination"].(map[string]any)
			if pagination["total"] != tt.wantTotal {
				t.Errorf("total = %v, want %v", pagination["total"], tt.wantTotal)
			}
			if pagination["has_more"] != tt.wantMore {
				t.Errorf("has_more = %v, want %v", pagination["has_more"], tt.wantMore)
			}
			if output["sort"] != "updated_at_desc" {
				t.Errorf("sort = %v, want updated_at_desc", output["sort"])
			}
		})
	}
}

func TestHandleDelete(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg, nil)
	ctx := context.Background()

	tripID := planTrip(t, h, "Delete Me")

	result, err := h.HandleDelete(ctx, makeRequest(map[string]any{"name": "Delete Me"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	output := parseOutput(t, result)
	if output["deleted"] != true || output["id"] != tripID {
		t.Errorf("output = %v, want deleted trip %s", output, tripID)
	}

	// Gone from the default view.
	result, _ = h.HandleFetch(ctx, makeRequest(map[string]any{"id": tripID}))
	assertErrorCode(t, result, "NOT_FOUND")

	// Still reachable with include_deleted.
	result, _ = h.HandleFetch(ctx, makeRequest(map[string]any{"id": tripID, "include_deleted": true}))
	fetched := parseOutput(t, result)
	if _, ok := fetched["deleted_at"]; !ok {
		t.Error("expected deleted_at on soft-deleted trip")
	}

	// Deleting again is NOT_FOUND.
	result, _ = h.HandleDelete(ctx, makeRequest(map[string]any{"id": tripID}))
	assertErrorCode(t, result, "NOT_FOUND")
}

func TestHandlePurge(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg, nil)
	ctx := context.Background()

	planTrip(t, h, "Purge One")
	planTrip(t, h, "Keep One")
	if result, _ := h.HandleDelete(ctx, makeRequest(map[string]any{"name": "Purge One"})); result.IsError {
		t.Fatalf("delete failed: %v", extractErrorMessage(result))
	}

	t.Run("negative days", func(t *testing.T) {
		result, _ := h.HandlePurge(ctx, makeRequest(map[string]any{"older_than_days": -1}))
		assertErrorCode(t, result, "INVALID_REQUEST")
	})

	t.Run("recent deletions survive age filter", func(t *testing.T) {
		result, _ := h.HandlePurge(ctx, makeRequest(map[string]any{"older_than_days": 7}))
		output := parseOutput(t, result)
		if output["purged"] != float64(0) {
			t.Errorf("purged = %v, want 0", output["purged"])
		}
	})

	t.Run("purge all deleted", func(t *testing.T) {
		result, _ := h.HandlePurge(ctx, makeRequest(map[string]any{}))
		output := parseOutput(t, result)
		if output["purged"] != float64(1) {
			t.Errorf("purged = %v, want 1", output["purged"])
		}
		if msg, _ := output["message"].(string); !strings.Contains(msg, "1 trip") {
			t.Errorf("message = %q, want purge count", msg)
		}
	})

	result, _ := h.HandleFetch(ctx, makeRequest(map[string]any{"name": "Keep One"}))
	parseOutput(t, result)
}

func TestHandlePack(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg, nil)
	ctx := context.Background()

	tripID := planTrip(t, h, "Pack Test")

	// Pick an item that made it into the capsule.
	result, _ := h.HandleFetch(ctx, makeRequest(map[string]any{"id": tripID}))
	fetched := parseOutput(t, result)
	groups := fetched["capsule"].(map[string]any)["packing_list"].([]any)
	firstItem := groups[0].(map[string]any)["items"].([]any)[0].(map[string]any)
	itemID := firstItem["wardrobe_item_id"].(string)

	tests := []struct {
		name       string
		args       map[string]any
		wantError  bool
		errorCode  string
		wantPacked bool
	}{
		{
			name:       "pack by default",
			args:       map[string]any{"id": tripID, "wardrobe_item_id": itemID},
			wantPacked: true,
		},
		{
			name:       "unpack",
			args:       map[string]any{"name": "Pack Test", "wardrobe_item_id": itemID, "packed": false},
			wantPacked: false,
		},
		{
			name:      "item not in capsule",
			args:      map[string]any{"id": tripID, "wardrobe_item_id": "nope"},
			wantError: true,
			errorCode: "ITEM_NOT_IN_CAPSULE",
		},
		{
			name:      "missing item id",
			args:      map[string]any{"id": tripID},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
		{
			name:      "unknown trip",
			args:      map[string]any{"name": "Nowhere", "wardrobe_item_id": itemID},
			wantError: true,
			errorCode: "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandlePack(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.wantError {
				if !result.IsError {
					t.Errorf("expected error result, got success")
				}
				assertErrorCode(t, result, tt.errorCode)
				return
			}

			output := parseOutput(t, result)
			if output["packed"] != tt.wantPacked {
				t.Errorf("packed = %v, want %v", output["packed"], tt.wantPacked)
			}
			if output["wardrobe_item_id"] != itemID {
				t.Errorf("wardrobe_item_id = %v, want %s", output["wardrobe_item_id"], itemID)
			}
		})
	}
}

func TestHandleCheck(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg, nil)
	ctx := context.Background()

	tripID := planTrip(t, h, "Check Test")

	t.Run("stored inputs", func(t *testing.T) {
		result, _ := h.HandleCheck(ctx, makeRequest(map[string]any{"id": tripID}))
		output := parseOutput(t, result)

		decision := output["decision"].(map[string]any)
		if decision["reason"] != "UP_TO_DATE" {
			t.Errorf("reason = %v, want UP_TO_DATE", decision["reason"])
		}
		if output["fingerprint_checked"] != false {
			t.Errorf("fingerprint_checked = %v, want false", output["fingerprint_checked"])
		}
		validation := output["validation"].(map[string]any)
		if validation["valid"] != true {
			t.Errorf("validation = %v, want valid", validation)
		}
	})

	t.Run("changed wardrobe", func(t *testing.T) {
		items := append(wardrobeArgs(), map[string]any{
			"id": "t9", "name": "Linen Shirt", "mainCategory": "Tops", "locationId": "home",
		})
		result, _ := h.HandleCheck(ctx, makeRequest(map[string]any{"id": tripID, "wardrobe": items}))
		output := parseOutput(t, result)

		decision := output["decision"].(map[string]any)
		if decision["reason"] != "FINGERPRINT_MISMATCH" {
			t.Errorf("reason = %v, want FINGERPRINT_MISMATCH", decision["reason"])
		}
		if output["fingerprint_checked"] != true {
			t.Errorf("fingerprint_checked = %v, want true", output["fingerprint_checked"])
		}
	})

	t.Run("unknown trip", func(t *testing.T) {
		result, _ := h.HandleCheck(ctx, makeRequest(map[string]any{"name": "missing"}))
		assertErrorCode(t, result, "NOT_FOUND")
	})
}

func TestHandleStyleCheck(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg, nil)
	ctx := context.Background()

	tests := []struct {
		name          string
		args          map[string]any
		wantError     bool
		wantEffective string
		wantOverride  bool
	}{
		{
			name:          "inferred from wardrobe",
			args:          map[string]any{"items": wardrobeArgs()},
			wantEffective: "mixed",
		},
		{
			name:          "masculine profile",
			args:          map[string]any{"items": wardrobeArgs(), "gender": "male"},
			wantEffective: "masculine",
		},
		{
			name:          "prompt lifts masculine",
			args:          map[string]any{"items": wardrobeArgs(), "gender": "male", "prompt": "pack a skirt"},
			wantEffective: "mixed",
			wantOverride:  true,
		},
		{
			name:      "no items",
			args:      map[string]any{},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleStyleCheck(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if tt.wantError {
				assertErrorCode(t, result, "INVALID_REQUEST")
				return
			}

			output := parseOutput(t, result)
			if output["effective"] != tt.wantEffective {
				t.Errorf("effective = %v, want %s", output["effective"], tt.wantEffective)
			}
			if output["override"] != tt.wantOverride {
				t.Errorf("override = %v, want %v", output["override"], tt.wantOverride)
			}
		})
	}
}

func TestServerRegistration(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	s := NewServer(database, cfg, nil, "test")
	tools := s.ListTools()
	if tools == nil {
		t.Fatal("expected tools to be registered, got nil")
	}

	expectedTools := []string{
		"trip_plan",
		"trip_fetch",
		"trip_list",
		"trip_delete",
		"trip_purge",
		"trip_pack",
		"capsule_check",
		"style_check",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("registered tool count = %d, want %d", len(tools), len(expectedTools))
	}

	for _, name := range expectedTools {
		if _, ok := tools[name]; !ok {
			t.Errorf("missing registered tool: %s", name)
		}
	}
}

func TestServerRegistration_WithDisabledTools(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	cfg.DisabledTools = []string{"trip_purge", "trip_delete"}
	s := NewServer(database, cfg, nil, "test")
	tools := s.ListTools()

	if len(tools) != 6 {
		t.Errorf("registered tool count = %d, want 6", len(tools))
	}

	for _, name := range []string{"trip_purge", "trip_delete"} {
		if _, ok := tools[name]; ok {
			t.Errorf("disabled tool %q should not be registered", name)
		}
	}

	for _, name := range []string{"trip_plan", "trip_fetch", "trip_list"} {
		if _, ok := tools[name]; !ok {
			t.Errorf("core tool %q should be registered", name)
		}
	}
}

func TestServerRegistration_AllToolsDisabled(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	cfg.DisabledTools = AllToolNames()
	s := NewServer(database, cfg, nil, "test")
	tools := s.ListTools()

	if len(tools) != 0 {
		t.Errorf("registered tool count = %d, want 0 (all disabled)", len(tools))
	}
}

func TestServerRegistration_UnknownDisabledIgnored(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	cfg.DisabledTools = []string{"trip_purge", "trip_purge", "store"}
	s := NewServer(database, cfg, nil, "test")
	tools := s.ListTools()

	if len(tools) != 7 {
		t.Errorf("registered tool count = %d, want 7", len(tools))
	}
	if _, ok := tools["trip_purge"]; ok {
		t.Error("disabled tool 'trip_purge' should not be registered")
	}
}

func TestValidateDisabledTools(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "all valid",
			input: []string{"trip_purge", "style_check"},
			want:  []string{},
		},
		{
			name:  "one unknown",
			input: []string{"trip_purge", "fake_tool"},
			want:  []string{"fake_tool"},
		},
		{
			name:  "all unknown",
			input: []string{"store", "fetch", "compose"},
			want:  []string{"store", "fetch", "compose"},
		},
		{
			name:  "empty list",
			input: []string{},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateDisabledTools(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ValidateDisabledTools() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAllToolNames(t *testing.T) {
	names := AllToolNames()
	sort.Strings(names)

	want := []string{
		"capsule_check",
		"style_check",
		"trip_delete",
		"trip_fetch",
		"trip_list",
		"trip_pack",
		"trip_plan",
		"trip_purge",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("AllToolNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorResult_InternalDoesNotExposeDetails(t *testing.T) {
	r := errorResult(errors.NewInternal(fmt.Errorf("sql error: open /tmp/secret.db: permission denied")))
	if !r.IsError {
		t.Fatal("expected IsError=true")
	}

	errObj := errorObject(t, r)
	if errObj["code"] != string(errors.ErrInternal) {
		t.Fatalf("code=%v, want %v", errObj["code"], errors.ErrInternal)
	}
	if _, ok := errObj["details"]; ok {
		t.Fatal("expected INTERNAL errors to omit details")
	}
}

func TestErrorResult_WrappedErrorPreservesContext(t *testing.T) {
	wrappedErr := fmt.Errorf("wardrobe[2]: %w", errors.NewInvalidActivity("juggling"))

	r := errorResult(wrappedErr)
	if !r.IsError {
		t.Fatal("expected IsError=true")
	}

	errObj := errorObject(t, r)
	if errObj["code"] != string(errors.ErrInvalidActivity) {
		t.Errorf("code=%v, want %v", errObj["code"], errors.ErrInvalidActivity)
	}

	msg := errObj["message"].(string)
	if !strings.Contains(msg, "wardrobe[2]") {
		t.Errorf("message should contain wrapper context 'wardrobe[2]', got: %s", msg)
	}
}

func TestErrorResult_NonInternalIncludesDetails(t *testing.T) {
	r := errorResult(errors.NewItemNotInCapsule("01TRIP", "t1"))
	if !r.IsError {
		t.Fatal("expected IsError=true")
	}

	errObj := errorObject(t, r)
	if errObj["code"] != string(errors.ErrItemNotInCapsule) {
		t.Fatalf("code=%v, want %v", errObj["code"], errors.ErrItemNotInCapsule)
	}
	details, ok := errObj["details"].(map[string]any)
	if !ok {
		t.Fatal("expected non-INTERNAL errors to include details when present")
	}
	if details["wardrobe_item_id"] != "t1" {
		t.Errorf("details = %v, want wardrobe_item_id t1", details)
	}
}

func TestErrorResult_PlainError(t *testing.T) {
	r := errorResult(fmt.Errorf("disk on fire"))

	errObj := errorObject(t, r)
	if errObj["code"] != "INTERNAL" {
		t.Errorf("code=%v, want INTERNAL", errObj["code"])
	}
	if strings.Contains(errObj["message"].(string), "disk") {
		t.Errorf("plain error message leaked: %v", errObj["message"])
	}
}

// Helper functions

// parseOutput extracts and unmarshals the JSON output from an MCP result.
func parseOutput(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
	}
	var output map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &output); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return output
}

func TestDecode_TypeMismatchNamesField(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg, nil)
	result, err := h.HandleList(context.Background(), makeRequest(map[string]any{"limit": "ten"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertErrorCode(t, result, "INVALID_REQUEST")
	if msg := extractErrorMessage(result); !strings.Contains(msg, "limit") {
		t.Errorf("message %q should name the limit argument", msg)
	}
	details, _ := errorObject(t, result)["details"].(map[string]any)
	if details["field"] != "limit" {
		t.Errorf("details.field = %v, want limit", details["field"])
	}
}

func errorObject(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &payload); err != nil {
		t.Fatalf("failed to unmarshal error payload: %v", err)
	}
	return payload["error"].(map[string]any)
}

func assertErrorCode(t *testing.T, result *mcp.CallToolResult, expectedCode string) {
	t.Helper()

	if len(result.Content) == 0 {
		t.Errorf("no content in error result")
		return
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Errorf("content is not TextContent")
		return
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Errorf("failed to unmarshal error payload: %v", err)
		return
	}

	errorObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Errorf("no error object in payload")
		return
	}

	code, ok := errorObj["code"].(string)
	if !ok {
		t.Errorf("no code in error object")
		return
	}

	if code != expectedCode {
		t.Errorf("got error code %q, want %q", code, expectedCode)
	}
}

func extractErrorMessage(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return "<no content>"
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		return "<not text content>"
	}

	return text.Text
}
