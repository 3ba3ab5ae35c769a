package export_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/bitebudget/internal/auth"
	"github.com/MrJamesThe3rd/bitebudget/internal/export"
	exporthttp "github.com/MrJamesThe3rd/bitebudget/internal/http/export"
	"github.com/MrJamesThe3rd/bitebudget/internal/receipt"
)

var userID = uuid.New()

func newRouter(t *testing.T) (http.Handler, *export.MockReceiptLister) {
	t.Helper()

	lister := export.NewMockReceiptLister(gomock.NewController(t))
	svc := export.NewService(lister).
		WithClock(func() time.Time { return time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC) })

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithUserID(req.Context(), userID)))
		})
	})
	r.Route("/api/export", exporthttp.NewHandler(svc).Routes)

	return r, lister
}

func TestHandler_Download(t *testing.T) {
	router, lister := newRouter(t)

	lister.EXPECT().List(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, f receipt.ListFilter) ([]*receipt.Receipt, error) {
			require.NotNil(t, f.From)
			require.NotNil(t, f.To)
			assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *f.From)

			return []*receipt.Receipt{{
				ID:           uuid.New(),
				StoreName:    "Walmart",
				TotalAmount:  50,
				PurchaseDate: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
				Items: []receipt.Item{
					{ProductName: "Milk", Quantity: 2, UnitPrice: 25, TotalPrice: 50, Category: "Dairy"},
				},
			}}, nil
		})

	rec := httptest.NewRecorder()
	body := `{"start_date":"2024-03-01","end_date":"2024-03-31"}`
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/export/", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="bitebudget_20240301_20240331.zip"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "1", rec.Header().Get("X-Receipt-Count"))

	data := rec.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}

	assert.ElementsMatch(t, []string{export.ReceiptsFile, export.SummaryFile}, names)
}

func TestHandler_Download_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(lister *export.MockReceiptLister)
		wantStatus int
	}{
		{
			name:       "BadDate",
			body:       `{"start_date":"March"}`,
			setup:      func(lister *export.MockReceiptLister) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MalformedJSON",
			body:       `{`,
			setup:      func(lister *export.MockReceiptLister) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "ListError",
			body: `{}`,
			setup: func(lister *export.MockReceiptLister) {
				lister.EXPECT().List(gomock.Any(), userID, receipt.ListFilter{}).Return(nil, errors.New("timeout"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, lister := newRouter(t)
			tt.setup(lister)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/export/", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}
