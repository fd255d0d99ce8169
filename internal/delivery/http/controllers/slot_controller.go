package controllers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"networkingbude/internal/delivery/http/helpers"
	"networkingbude/internal/domain"
)

// SaveSlotRequest is the request body for PUT /admin/slots/{collection}/{slotNumber}.
// Which fields are required depends on the collection; see domain.Collection.PayloadRules.
type SaveSlotRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	StartsAt     *time.Time `json:"starts_at"`
	EndsAt       *time.Time `json:"ends_at"`
	Location     string     `json:"location"`
	Organization string     `json:"organization"`
	ImageURL     string     `json:"image_url"`
	ExternalURL  string     `json:"external_url"`
	Tags         []string   `json:"tags"`
}

// Validate implements Validator. Field presence is checked by the service.
func (r SaveSlotRequest) Validate() []string {
	if r.StartsAt != nil && r.EndsAt != nil && r.EndsAt.Before(*r.StartsAt) {
		return []string{"ends_at must not be before starts_at"}
	}
	return nil
}

func (r SaveSlotRequest) payload() domain.SlotPayload {
	return domain.SlotPayload{
		Title:        r.Title,
		Description:  r.Description,
		StartsAt:     r.StartsAt,
		EndsAt:       r.EndsAt,
		Location:     r.Location,
		Organization: r.Organization,
		ImageURL:     r.ImageURL,
		ExternalURL:  r.ExternalURL,
		Tags:         r.Tags,
	}
}

// MoveSlotRequest is the request body for POST /admin/slots/{collection}/{slotNumber}/move.
type MoveSlotRequest struct {
	Direction domain.Direction `json:"direction"`
}

// Validate implements Validator.
func (r MoveSlotRequest) Validate() []string {
	if r.Direction != domain.DirectionUp && r.Direction != domain.DirectionDown {
		return []string{`direction must be "up" or "down"`}
	}
	return nil
}

// SwapSlotsRequest is the request body for POST /admin/slots/{collection}/swap.
type SwapSlotsRequest struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Validate implements Validator.
func (r SwapSlotsRequest) Validate() []string {
	var errs []string
	if r.A <= 0 || r.B <= 0 {
		errs = append(errs, "a and b must be positive slot numbers")
	}
	if r.A == r.B {
		errs = append(errs, "a and b must differ")
	}
	return errs
}

// RestoreAnomalyRequest is the request body for POST /admin/slots/{collection}/anomalies/{id}/restore.
type RestoreAnomalyRequest struct {
	SlotNumber int `json:"slot_number"`
}

// Validate implements Validator.
func (r RestoreAnomalyRequest) Validate() []string {
	if r.SlotNumber <= 0 {
		return []string{"slot_number must be a positive slot number"}
	}
	return nil
}

// SlotSnapshotResponse is the success envelope for endpoints returning a slot table.
type SlotSnapshotResponse struct {
	Data  domain.SlotSnapshot `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// SlotListResponse is the success envelope for GET /slots/content.
type SlotListResponse struct {
	Data  []*domain.Slot    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type SlotController struct {
	Logger  *slog.Logger
	Service domain.SlotService
}

func NewSlotController(logger *slog.Logger, svc domain.SlotService) *SlotController {
	return &SlotController{Logger: logger, Service: svc}
}

// GetEventSlots godoc
// @Summary Event slots of a region
// @Description Returns the seven event positions of a region; positions 1-4 are featured. Empty positions are null.
// @Tags slots
// @Produce json
// @Param regionID path string true "Region ID"
// @Success 200 {object} controllers.SlotSnapshotResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /slots/events/{regionID} [get]
func (c *SlotController) GetEventSlots(w http.ResponseWriter, r *http.Request) {
	scope := domain.NewScope(domain.CollectionEvents, r.PathValue("regionID"))
	snap, err := c.Service.GetSnapshot(r.Context(), scope)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, nil)
		return
	}
	snap.Anomalies = nil
	helpers.WriteJSONSuccess(w, http.StatusOK, snap)
}

// ListContent godoc
// @Summary Content slots for a view
// @Description Returns the occupied content slots in order: the first three for the dashboard view, all ten for insights.
// @Tags slots
// @Produce json
// @Param view query string false "dashboard (default) or insights"
// @Success 200 {object} controllers.SlotListResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /slots/content [get]
func (c *SlotController) ListContent(w http.ResponseWriter, r *http.Request) {
	view := domain.ContentView(r.URL.Query().Get("view"))
	switch view {
	case "":
		view = domain.ContentViewDashboard
	case domain.ContentViewDashboard, domain.ContentViewInsights:
	default:
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, fmt.Sprintf("unknown view %q", view))
		return
	}
	slots, err := c.Service.ListContent(r.Context(), view)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, nil)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slots)
}

// GetSlots godoc
// @Summary Admin slot table
// @Description Returns every position of a collection, including anomalies such as a record left on the swap sentinel.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param collection path string true "events or content"
// @Param region query string false "Region ID (required for events)"
// @Success 200 {object} controllers.SlotSnapshotResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/slots/{collection} [get]
func (c *SlotController) GetSlots(w http.ResponseWriter, r *http.Request) {
	scope, ok := c.scope(w, r)
	if !ok {
		return
	}
	snap, err := c.Service.GetSnapshot(r.Context(), scope)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, nil)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, snap)
}

// SaveSlot godoc
// @Summary Create or update a slot
// @Description Validates the payload and writes it to the position, creating the record when the position is empty.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param collection path string true "events or content"
// @Param slotNumber path int true "Slot number"
// @Param region query string false "Region ID (required for events)"
// @Param slot body SaveSlotRequest true "Slot payload"
// @Success 200 {object} controllers.SlotSnapshotResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request; error.fields lists missing fields"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/slots/{collection}/{slotNumber} [put]
func (c *SlotController) SaveSlot(w http.ResponseWriter, r *http.Request) {
	scope, n, ok := c.scopeAndNumber(w, r)
	if !ok {
		return
	}
	var req SaveSlotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	snap, err := c.Service.SaveSlot(r.Context(), scope, n, req.payload())
	c.writeSnapshot(w, r, snap, err)
}

// DeleteSlot godoc
// @Summary Delete a slot
// @Description Removes the record at the position; the position becomes empty.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param collection path string true "events or content"
// @Param slotNumber path int true "Slot number"
// @Param region query string false "Region ID (required for events)"
// @Success 200 {object} controllers.SlotSnapshotResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/slots/{collection}/{slotNumber} [delete]
func (c *SlotController) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	scope, n, ok := c.scopeAndNumber(w, r)
	if !ok {
		return
	}
	snap, err := c.Service.DeleteSlot(r.Context(), scope, n)
	c.writeSnapshot(w, r, snap, err)
}

// MoveSlot godoc
// @Summary Move a slot one position
// @Description Moves the record up or down by one, exchanging places with an occupied neighbour.
// @Description On a store failure the response carries the reloaded table, whose anomalies show any record left on the sentinel.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param collection path string true "events or content"
// @Param slotNumber path int true "Slot number"
// @Param region query string false "Region ID (required for events)"
// @Param move body MoveSlotRequest true "Direction"
// @Success 200 {object} controllers.SlotSnapshotResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (a record is stranded on the sentinel)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/slots/{collection}/{slotNumber}/move [post]
func (c *SlotController) MoveSlot(w http.ResponseWriter, r *http.Request) {
	scope, n, ok := c.scopeAndNumber(w, r)
	if !ok {
		return
	}
	var req MoveSlotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	snap, err := c.Service.MoveSlot(r.Context(), scope, n, req.Direction)
	c.writeSnapshot(w, r, snap, err)
}

// SwapSlots godoc
// @Summary Swap two slots
// @Description Exchanges the records at two positions, which need not be adjacent. Swapped records are recreated.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param collection path string true "events or content"
// @Param region query string false "Region ID (required for events)"
// @Param swap body SwapSlotsRequest true "Positions"
// @Success 200 {object} controllers.SlotSnapshotResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (neither position occupied)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/slots/{collection}/swap [post]
func (c *SlotController) SwapSlots(w http.ResponseWriter, r *http.Request) {
	scope, ok := c.scope(w, r)
	if !ok {
		return
	}
	var req SwapSlotsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	snap, err := c.Service.SwapSlots(r.Context(), scope, req.A, req.B)
	c.writeSnapshot(w, r, snap, err)
}

// RestoreAnomaly godoc
// @Summary Restore a stranded slot
// @Description Moves a record left outside the valid range (e.g. on the swap sentinel) back to an empty position.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param collection path string true "events or content"
// @Param id path string true "Slot ID of the anomaly"
// @Param region query string false "Region ID (required for events)"
// @Param restore body RestoreAnomalyRequest true "Target position"
// @Success 200 {object} controllers.SlotSnapshotResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (target occupied or out of range)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/slots/{collection}/anomalies/{id}/restore [post]
func (c *SlotController) RestoreAnomaly(w http.ResponseWriter, r *http.Request) {
	scope, ok := c.scope(w, r)
	if !ok {
		return
	}
	var req RestoreAnomalyRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	snap, err := c.Service.RestoreAnomaly(r.Context(), scope, r.PathValue("id"), req.SlotNumber)
	c.writeSnapshot(w, r, snap, err)
}

// DeleteAnomaly godoc
// @Summary Delete a stranded slot
// @Description Removes a record left outside the valid range.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param collection path string true "events or content"
// @Param id path string true "Slot ID of the anomaly"
// @Param region query string false "Region ID (required for events)"
// @Success 200 {object} controllers.SlotSnapshotResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/slots/{collection}/anomalies/{id} [delete]
func (c *SlotController) DeleteAnomaly(w http.ResponseWriter, r *http.Request) {
	scope, ok := c.scope(w, r)
	if !ok {
		return
	}
	snap, err := c.Service.DeleteAnomaly(r.Context(), scope, r.PathValue("id"))
	c.writeSnapshot(w, r, snap, err)
}

func (c *SlotController) scope(w http.ResponseWriter, r *http.Request) (domain.Scope, bool) {
	scope, err := helpers.ScopeFromRequest(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return domain.Scope{}, false
	}
	return scope, true
}

func (c *SlotController) scopeAndNumber(w http.ResponseWriter, r *http.Request) (domain.Scope, int, bool) {
	scope, ok := c.scope(w, r)
	if !ok {
		return domain.Scope{}, 0, false
	}
	n, err := helpers.PathInt(r, "slotNumber")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return domain.Scope{}, 0, false
	}
	return scope, n, true
}

// writeSnapshot writes the table on success. On failure the table is attached
// when the service managed to load one.
func (c *SlotController) writeSnapshot(w http.ResponseWriter, r *http.Request, snap domain.SlotSnapshot, err error) {
	if err == nil {
		helpers.WriteJSONSuccess(w, http.StatusOK, snap)
		return
	}
	var data any
	if snap.Positions != nil {
		data = snap
	}
	helpers.WriteServiceError(w, r, c.Logger, err, data)
}
