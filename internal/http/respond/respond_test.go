package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/bitebudget/internal/apperr"
	"github.com/MrJamesThe3rd/bitebudget/internal/http/respond"
)

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "Validation",
			err:        fmt.Errorf("creating: %w", apperr.Invalid("name", "required")),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "name: required",
		},
		{
			name:       "NotFound",
			err:        fmt.Errorf("budget %w", apperr.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantMsg:    "budget not found",
		},
		{
			name:       "Conflict",
			err:        fmt.Errorf("username taken: %w", apperr.ErrConflict),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "Unauthorized",
			err:        fmt.Errorf("bad token: %w", apperr.ErrUnauthorized),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Internal",
			err:        apperr.Store("listing budgets", errors.New("connection refused")),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/budget", nil)

			respond.Error(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, body["error"])
			}

			assert.NotContains(t, body["error"], "connection refused")
		})
	}
}

type itemRequest struct {
	Name     string `json:"product_name" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

type createRequest struct {
	Store string        `json:"store_name" validate:"required,max=10"`
	Total float64       `json:"total_amount" validate:"gte=0"`
	Items []itemRequest `json:"items" validate:"dive"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantErr   bool
		wantField string
	}{
		{name: "Valid", body: `{"store_name":"Walmart","total_amount":10,"items":[{"product_name":"Milk"}]}`},
		{name: "Empty", body: ``, wantErr: true},
		{name: "Malformed", body: `{"store_name":`, wantErr: true},
		{name: "WrongType", body: `{"store_name":"Walmart","total_amount":"ten"}`, wantErr: true, wantField: "total_amount"},
		{name: "MissingStore", body: `{"total_amount":10}`, wantErr: true, wantField: "store_name"},
		{name: "StoreTooLong", body: `{"store_name":"Supermercado Grande"}`, wantErr: true, wantField: "store_name"},
		{name: "NegativeTotal", body: `{"store_name":"Walmart","total_amount":-1}`, wantErr: true, wantField: "total_amount"},
		{
			name:      "NestedItem",
			body:      `{"store_name":"Walmart","items":[{"product_name":"Milk"},{"quantity":-2,"product_name":"Egg"}]}`,
			wantErr:   true,
			wantField: "items[1].quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/receipts", strings.NewReader(tt.body))

			var dst createRequest

			err := respond.Decode(req, &dst)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "Walmart", dst.Store)
				require.Len(t, dst.Items, 1)

				return
			}

			var ve *apperr.ValidationError
			require.ErrorAs(t, err, &ve)

			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, ve.Field)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	got, err := respond.ParseTime("start_date", "")
	require.NoError(t, err)
	assert.Nil(t, got)

	for _, s := range []string{"2024-01-01", "2024-01-01T00:00:00", "2024-01-01T00:00:00Z"} {
		got, err := respond.ParseTime("start_date", s)
		require.NoError(t, err, s)
		assert.Equal(t, "2024-01-01", got.Format("2006-01-02"))
	}

	_, err = respond.ParseTime("start_date", "01/02/2024")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
