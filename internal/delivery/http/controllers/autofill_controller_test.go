package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"networkingbude/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAutoFillService implements domain.AutoFillService for handler tests.
type fakeAutoFillService struct {
	report     *domain.AutoFillReport
	err        error
	lastRegion string
}

func (f *fakeAutoFillService) AutoFill(_ context.Context, regionID string) (*domain.AutoFillReport, error) {
	f.lastRegion = regionID
	return f.report, f.err
}

func TestAutoFillController_AutoFill(t *testing.T) {
	tests := []struct {
		name       string
		region     string
		regions    []string
		svcErr     error
		wantStatus int
		wantCalled bool
	}{
		{"runs for configured region", "grand-rapids", []string{"grand-rapids"}, nil, http.StatusOK, true},
		{"any region when unrestricted", "lansing", nil, nil, http.StatusOK, true},
		{"unknown region", "lansing", []string{"grand-rapids"}, nil, http.StatusBadRequest, false},
		{"store failure", "grand-rapids", nil, &domain.StoreError{Op: "select", Err: errors.New("down")}, http.StatusInternalServerError, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAutoFillService{report: &domain.AutoFillReport{RegionID: tt.region}, err: tt.svcErr}
			c := NewAutoFillController(testLogger, svc, tt.regions)
			req := httptest.NewRequest(http.MethodPost, "/admin/autofill/"+tt.region, nil)

			rr := serve("POST /admin/autofill/{regionID}", c.AutoFill, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCalled {
				assert.Equal(t, tt.region, svc.lastRegion)
			} else {
				assert.Empty(t, svc.lastRegion)
			}
		})
	}
}
