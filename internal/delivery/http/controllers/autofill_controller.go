package controllers

import (
	"log/slog"
	"net/http"

	"networkingbude/internal/delivery/http/helpers"
	"networkingbude/internal/domain"
)

// AutoFillSuccessResponse is the success envelope for POST /admin/autofill/{regionID}.
type AutoFillSuccessResponse struct {
	Data  *domain.AutoFillReport `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type AutoFillController struct {
	Logger  *slog.Logger
	Service domain.AutoFillService
	// Regions, when non-empty, restricts the regions that may be auto-filled.
	Regions map[string]struct{}
}

func NewAutoFillController(logger *slog.Logger, svc domain.AutoFillService, regions []string) *AutoFillController {
	allowed := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		allowed[r] = struct{}{}
	}
	return &AutoFillController{Logger: logger, Service: svc, Regions: allowed}
}

// AutoFill godoc
// @Summary Auto-fill a region's event slots
// @Description Scrapes the region's configured event pages and fills empty event slots with upcoming events, one per organization.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param regionID path string true "Region ID"
// @Success 200 {object} controllers.AutoFillSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/autofill/{regionID} [post]
func (c *AutoFillController) AutoFill(w http.ResponseWriter, r *http.Request) {
	regionID := r.PathValue("regionID")
	if len(c.Regions) > 0 {
		if _, ok := c.Regions[regionID]; !ok {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "unknown region")
			return
		}
	}
	report, err := c.Service.AutoFill(r.Context(), regionID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, report)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, report)
}
