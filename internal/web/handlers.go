package web

import (
	"database/sql"
	"html/template"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/hpungsan/satchel/internal/capsule"
	"github.com/hpungsan/satchel/internal/config"
	"github.com/hpungsan/satchel/internal/errors"
	"github.com/hpungsan/satchel/internal/ops"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	logger   *zap.Logger
	renderer *Renderer
}

// HandleList handles GET /trips: list trip summaries.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	locationID := r.URL.Query().Get("location_id")

	input := ops.ListInput{
		LocationID:     locationID,
		Limit:          parseIntParam(r, "limit", ops.DefaultListLimit),
		Offset:         parseIntParam(r, "offset", 0),
		IncludeDeleted: parseBoolParam(r, "include_deleted"),
	}

	result, err := ops.List(r.Context(), h.db, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, r, "list", ListPageData{
		PageData: PageData{
			Title:   "Trips",
			Version: h.renderer.version,
			Nav:     "trips",
		},
		Items:      result.Items,
		Pagination: result.Pagination,
		LocationID: locationID,
		Deleted:    input.IncludeDeleted,
	})
}

// HandleDetail handles GET /trips/{id}: outfits and packing list for one trip.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.fetchTrip(w, r)
	if !ok {
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, trip)
		return
	}

	var rendered template.HTML
	if trip.Capsule != nil {
		rendered = h.renderer.renderMarkdown(capsule.Markdown("", trip.Capsule))
	}

	h.renderer.renderPage(w, r, "detail", DetailPageData{
		PageData: PageData{
			Title:   trip.NameRaw,
			Version: h.renderer.version,
			Nav:     "trips",
		},
		Trip:         trip,
		Summary:      trip.ToSummary(),
		RenderedHTML: rendered,
	})
}

// HandleMarkdown handles GET /trips/{id}/capsule.md: the capsule as markdown.
func (h *Handlers) HandleMarkdown(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.fetchTrip(w, r)
	if !ok {
		return
	}
	if trip.Capsule == nil {
		h.renderer.renderError(w, r, errors.NewNotFound(trip.ID+"/capsule"))
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(capsule.Markdown(trip.NameRaw, trip.Capsule)))
}

// HandlePack handles POST /trips/{id}/pack: toggle an item's packed flag.
func (h *Handlers) HandlePack(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("trip ID is required"))
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	packed := r.FormValue("packed") != "false"
	result, err := ops.Pack(r.Context(), h.db, ops.PackInput{
		ID:             id,
		WardrobeItemID: r.FormValue("wardrobe_item_id"),
		Packed:         &packed,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	h.logger.Debug("item packed",
		zap.String("trip_id", result.ID),
		zap.String("wardrobe_item_id", result.WardrobeItemID),
		zap.Bool("packed", result.Packed),
	)

	// HTMX request: return a progress fragment
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<span class="progress">` +
			strconv.Itoa(result.PackedCount) + "/" + strconv.Itoa(result.ItemCount) + ` packed</span>`))
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	http.Redirect(w, r, "/trips/"+id, http.StatusFound)
}

// HandleDelete handles DELETE /trips/{id}: soft-delete a trip.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("trip ID is required"))
		return
	}

	result, err := ops.Delete(r.Context(), h.db, ops.DeleteInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	h.logger.Info("trip deleted", zap.String("trip_id", result.ID))

	// HTMX request: redirect via HX-Redirect header
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/trips")
		w.WriteHeader(http.StatusOK)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	http.Redirect(w, r, "/trips", http.StatusFound)
}

// HandlePurge handles POST /trips/purge: permanently delete soft-deleted trips.
func (h *Handlers) HandlePurge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	if r.FormValue("confirm") != "true" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("confirm parameter must be \"true\""))
		return
	}

	var input ops.PurgeInput
	if days := r.FormValue("older_than_days"); days != "" {
		d, err := strconv.Atoi(days)
		if err != nil {
			h.renderer.renderError(w, r, errors.NewInvalidRequest("older_than_days must be an integer"))
			return
		}
		input.OlderThanDays = &d
	}

	result, err := ops.Purge(r.Context(), h.db, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	h.logger.Info("trips purged", zap.Int("purged", result.Purged))

	// HTMX request: return HTML fragment
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<div class="purge-result">` + template.HTMLEscapeString(result.Message) + `</div>`))
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	http.Redirect(w, r, "/trips?include_deleted=true", http.StatusFound)
}

// fetchTrip loads the trip named by the {id} path value, rendering the error
// response itself when that fails.
func (h *Handlers) fetchTrip(w http.ResponseWriter, r *http.Request) (*ops.FetchOutput, bool) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("trip ID is required"))
		return nil, false
	}

	trip, err := ops.Fetch(r.Context(), h.db, ops.FetchInput{
		ID:             id,
		IncludeDeleted: parseBoolParam(r, "include_deleted"),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return nil, false
	}
	return trip, true
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// parseBoolParam parses a boolean query parameter.
func parseBoolParam(r *http.Request, name string) bool {
	s := r.URL.Query().Get(name)
	return s == "true" || s == "1"
}
