package controllers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"networkingbude/internal/delivery/http/helpers"
	"networkingbude/internal/domain"
)

// MaxImageUploadBytes caps the multipart image upload.
const MaxImageUploadBytes = 10 << 20

// UploadImageResponse is the data of POST /admin/media.
type UploadImageResponse struct {
	URL string `json:"url"`
}

// UploadImageSuccessResponse is the success envelope for POST /admin/media (201).
type UploadImageSuccessResponse struct {
	Data  UploadImageResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// RemoveImageRequest is the request body for DELETE /admin/media.
type RemoveImageRequest struct {
	Path string `json:"path"`
}

// Validate implements Validator.
func (r RemoveImageRequest) Validate() []string {
	if strings.TrimSpace(r.Path) == "" {
		return []string{"path is required"}
	}
	return nil
}

type MediaController struct {
	Logger  *slog.Logger
	Service domain.MediaService
}

func NewMediaController(logger *slog.Logger, svc domain.MediaService) *MediaController {
	return &MediaController{Logger: logger, Service: svc}
}

// UploadImage godoc
// @Summary Upload a slot image
// @Description Accepts a JPEG, PNG or GIF up to 10 MB, downsizes it and returns its public URL for use as image_url.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param collection formData string true "events or content"
// @Param file formData file true "Image file"
// @Success 201 {object} controllers.UploadImageSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/media [post]
func (c *MediaController) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxImageUploadBytes+1<<20)
	if err := r.ParseMultipartForm(MaxImageUploadBytes); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	collection, err := domain.ParseCollection(r.FormValue("collection"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "collection must be events or content")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxImageUploadBytes+1))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, nil)
		return
	}
	if len(data) > MaxImageUploadBytes {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "file exceeds 10 MB")
		return
	}
	url, err := c.Service.UploadImage(r.Context(), collection, data)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "file is not a supported image")
			return
		}
		helpers.WriteServiceError(w, r, c.Logger, err, nil)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, UploadImageResponse{URL: url})
}

// RemoveImage godoc
// @Summary Remove a slot image
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RemoveImageRequest true "Object path"
// @Success 204
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/media [delete]
func (c *MediaController) RemoveImage(w http.ResponseWriter, r *http.Request) {
	var req RemoveImageRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.RemoveImage(r.Context(), req.Path); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
