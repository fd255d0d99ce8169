package http

import (
	"net/http"

	"networkingbude/internal/delivery/http/controllers"
	"networkingbude/internal/delivery/http/helpers"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes the HTTP router with all application routes.
// adminOnly guards every /admin route. media may be nil when no object storage is configured.
func NewRouter(slotController *controllers.SlotController,
	mediaController *controllers.MediaController,
	autoFillController *controllers.AutoFillController,
	adminOnly func(http.HandlerFunc) http.HandlerFunc,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public
	mux.HandleFunc("GET /slots/events/{regionID}", slotController.GetEventSlots)
	mux.HandleFunc("GET /slots/content", slotController.ListContent)

	// Admin
	mux.HandleFunc("GET /admin/slots/{collection}", adminOnly(slotController.GetSlots))
	mux.HandleFunc("PUT /admin/slots/{collection}/{slotNumber}", adminOnly(slotController.SaveSlot))
	mux.HandleFunc("DELETE /admin/slots/{collection}/{slotNumber}", adminOnly(slotController.DeleteSlot))
	mux.HandleFunc("POST /admin/slots/{collection}/{slotNumber}/move", adminOnly(slotController.MoveSlot))
	mux.HandleFunc("POST /admin/slots/{collection}/swap", adminOnly(slotController.SwapSlots))
	mux.HandleFunc("POST /admin/slots/{collection}/anomalies/{id}/restore", adminOnly(slotController.RestoreAnomaly))
	mux.HandleFunc("DELETE /admin/slots/{collection}/anomalies/{id}", adminOnly(slotController.DeleteAnomaly))
	mux.HandleFunc("POST /admin/autofill/{regionID}", adminOnly(autoFillController.AutoFill))
	if mediaController != nil {
		mux.HandleFunc("POST /admin/media", adminOnly(mediaController.UploadImage))
		mux.HandleFunc("DELETE /admin/media", adminOnly(mediaController.RemoveImage))
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
