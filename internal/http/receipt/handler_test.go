package receipt_test

import (
	"context"
	"encoding/json"
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
	receipthttp "github.com/MrJamesThe3rd/bitebudget/internal/http/receipt"
	"github.com/MrJamesThe3rd/bitebudget/internal/receipt"
)

var userID = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")

func newRouter(t *testing.T) (*receipt.MockRepository, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := receipt.NewMockRepository(ctrl)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithUserID(req.Context(), userID)))
		})
	})
	r.Route("/api/receipts", receipthttp.NewHandler(receipt.NewService(repo)).Routes)

	return repo, r
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))

	return rec
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(m *receipt.MockRepository)
		wantStatus int
	}{
		{
			name: "Created",
			body: `{"store_name":"Walmart","total_amount":54.5,"purchase_date":"2024-03-02T10:00:00Z",
				"items":[{"product_name":"Milk","quantity":2,"unit_price":25,"total_price":50,"category":"Dairy"},
				{"product_name":"Bread","unit_price":4.5}]}`,
			setupMock: func(m *receipt.MockRepository) {
				m.EXPECT().CreateReceipt(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *receipt.Receipt) error {
					assert.Equal(t, userID, r.UserID)
					assert.Equal(t, time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC), r.PurchaseDate)
					require.Len(t, r.Items, 2)
					assert.Equal(t, 1, r.Items[1].Quantity)
					assert.Equal(t, receipt.DefaultCategory, r.Items[1].Category)
					r.ID = uuid.New()
					return nil
				})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "MissingStore",
			body:       `{"total_amount":10}`,
			setupMock:  func(m *receipt.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "NegativeQuantity",
			body:       `{"store_name":"Walmart","items":[{"product_name":"Milk","quantity":-1}]}`,
			setupMock:  func(m *receipt.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "BadDate",
			body:       `{"store_name":"Walmart","purchase_date":"yesterday"}`,
			setupMock:  func(m *receipt.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, h := newRouter(t)
			tt.setupMock(repo)

			rec := serve(h, http.MethodPost, "/api/receipts", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_List(t *testing.T) {
	repo, h := newRouter(t)

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	repo.EXPECT().
		ListReceipts(gomock.Any(), userID, receipt.ListFilter{From: &from}).
		Return([]*receipt.Receipt{{ID: uuid.New(), StoreName: "Costco", TotalAmount: 30}}, nil)

	rec := serve(h, http.MethodGet, "/api/receipts?start_date=2024-03-01", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Receipts []struct {
			StoreName string `json:"store_name"`
			Items     []any  `json:"items"`
		} `json:"receipts"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Receipts, 1)
	assert.Equal(t, "Costco", body.Receipts[0].StoreName)
	assert.NotNil(t, body.Receipts[0].Items)
}

func TestHandler_GetAndDelete(t *testing.T) {
	id := uuid.New()

	t.Run("NotFound", func(t *testing.T) {
		repo, h := newRouter(t)
		repo.EXPECT().GetReceipt(gomock.Any(), userID, id).Return(nil, receipt.ErrNotFound)

		rec := serve(h, http.MethodGet, "/api/receipts/"+id.String(), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		_, h := newRouter(t)

		rec := serve(h, http.MethodGet, "/api/receipts/42", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		repo, h := newRouter(t)
		repo.EXPECT().DeleteReceipt(gomock.Any(), userID, id).Return(nil)

		rec := serve(h, http.MethodDelete, "/api/receipts/"+id.String(), "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
