package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"networkingbude/internal/domain"
)

// WriteServiceError maps a domain error to its HTTP status and error code.
// data, when non-nil, is sent alongside the error (e.g. the reloaded slot table).
// Unexpected errors are logged.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, data any) {
	status, apiErr := classify(err)
	if status >= http.StatusInternalServerError {
		attrs := []any{"path", r.URL.Path, "method", r.Method, "err", err}
		var inconsistent *domain.InconsistentStateError
		if errors.As(err, &inconsistent) {
			ids := make([]string, 0, len(inconsistent.Anomalies))
			for _, s := range inconsistent.Anomalies {
				ids = append(ids, s.ID)
			}
			attrs = append(attrs, "anomalies", ids)
		}
		logger.ErrorContext(r.Context(), "request failed", attrs...)
	}
	WriteJSONErrorWithData(w, status, apiErr, data)
}

func classify(err error) (int, *APIError) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, &APIError{Code: ErrCodeBadRequest, Message: verr.Error(), Fields: verr.Fields}
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrSlotOutOfRange),
		errors.Is(err, domain.ErrUnknownRegion):
		return http.StatusBadRequest, &APIError{Code: ErrCodeBadRequest, Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, &APIError{Code: ErrCodeNotFound, Message: err.Error()}
	case errors.Is(err, domain.ErrNothingToSwap), errors.Is(err, domain.ErrSentinelOccupied):
		return http.StatusConflict, &APIError{Code: ErrCodeConflict, Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, &APIError{Code: ErrCodeForbidden, Message: err.Error()}
	default:
		return http.StatusInternalServerError, &APIError{Code: ErrCodeInternalError, Message: "internal error"}
	}
}
