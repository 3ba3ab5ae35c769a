package budget_test

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
	"github.com/MrJamesThe3rd/bitebudget/internal/budget"
	budgethttp "github.com/MrJamesThe3rd/bitebudget/internal/http/budget"
)

var (
	userID = uuid.New()
	now    = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
)

func newRouter(t *testing.T) (*budget.MockRepository, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := budget.NewMockRepository(ctrl)
	svc := budget.NewService(repo).WithClock(func() time.Time { return now })

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithUserID(req.Context(), userID)))
		})
	})
	r.Route("/api/budget", budgethttp.NewHandler(svc).Routes)

	return repo, r
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))

	return rec
}

type budgetBody struct {
	Name                  string    `json:"name"`
	Category              string    `json:"category"`
	Period                string    `json:"period"`
	StartDate             time.Time `json:"start_date"`
	EndDate               time.Time `json:"end_date"`
	RemainingBudget       float64   `json:"remaining_budget"`
	UtilizationPercentage float64   `json:"utilization_percentage"`
	Status                string    `json:"status"`
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantEnd    string
		wantPeriod string
	}{
		{
			name:       "Weekly",
			body:       `{"name":"Groceries","total_budget":100,"period":"weekly","start_date":"2024-01-01"}`,
			wantStatus: http.StatusCreated,
			wantEnd:    "2024-01-08",
			wantPeriod: "weekly",
		},
		{
			name:       "DefaultsToMonthlyFromNow",
			body:       `{"name":"Groceries","total_budget":100}`,
			wantStatus: http.StatusCreated,
			wantEnd:    "2024-02-14",
			wantPeriod: "monthly",
		},
		{
			name:       "CustomWithEnd",
			body:       `{"name":"Trip","total_budget":500,"period":"custom","start_date":"2024-01-01","end_date":"2024-01-10"}`,
			wantStatus: http.StatusCreated,
			wantEnd:    "2024-01-10",
			wantPeriod: "custom",
		},
		{
			name:       "CustomWithoutEnd",
			body:       `{"name":"Trip","total_budget":500,"period":"custom","start_date":"2024-01-01"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MissingName",
			body:       `{"total_budget":100}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "NegativeTotal",
			body:       `{"name":"Groceries","total_budget":-5}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, h := newRouter(t)

			if tt.wantStatus == http.StatusCreated {
				repo.EXPECT().CreateBudget(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b *budget.Budget) error {
					b.ID = uuid.New()
					return nil
				})
			}

			rec := serve(h, http.MethodPost, "/api/budget", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantStatus != http.StatusCreated {
				return
			}

			var body struct {
				Budget budgetBody `json:"budget"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

			assert.Equal(t, tt.wantEnd, body.Budget.EndDate.Format("2006-01-02"))
			assert.Equal(t, tt.wantPeriod, body.Budget.Period)
			assert.Equal(t, budget.DefaultCategory, body.Budget.Category)
			assert.Equal(t, "on_track", body.Budget.Status)
		})
	}
}

func TestHandler_Update(t *testing.T) {
	id := uuid.New()
	existing := func() *budget.Budget {
		return &budget.Budget{
			ID:          id,
			UserID:      userID,
			Name:        "Groceries",
			TotalBudget: 100,
			Category:    "Food",
			Period:      budget.PeriodMonthly,
			StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		}
	}

	t.Run("SpentMovesStatus", func(t *testing.T) {
		repo, h := newRouter(t)
		repo.EXPECT().GetBudget(gomock.Any(), userID, id).Return(existing(), nil)
		repo.EXPECT().UpdateBudget(gomock.Any(), gomock.Any()).Return(nil)

		rec := serve(h, http.MethodPut, "/api/budget/"+id.String(), `{"spent_amount":91}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var body struct {
			Budget budgetBody `json:"budget"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

		assert.Equal(t, "Groceries", body.Budget.Name)
		assert.Equal(t, "over_budget", body.Budget.Status)
		assert.InDelta(t, 9.0, body.Budget.RemainingBudget, 1e-9)
		assert.InDelta(t, 91.0, body.Budget.UtilizationPercentage, 1e-9)
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		repo, h := newRouter(t)
		repo.EXPECT().GetBudget(gomock.Any(), userID, id).Return(existing(), nil)

		rec := serve(h, http.MethodPut, "/api/budget/"+id.String(), `{"end_date":"2023-12-01"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, h := newRouter(t)
		repo.EXPECT().GetBudget(gomock.Any(), userID, id).Return(nil, budget.ErrNotFound)

		rec := serve(h, http.MethodPut, "/api/budget/"+id.String(), `{"name":"x"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_DeleteAndSummary(t *testing.T) {
	t.Run("Delete", func(t *testing.T) {
		repo, h := newRouter(t)
		id := uuid.New()
		repo.EXPECT().DeleteBudget(gomock.Any(), userID, id).Return(budget.ErrNotFound)

		rec := serve(h, http.MethodDelete, "/api/budget/"+id.String(), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Summary", func(t *testing.T) {
		repo, h := newRouter(t)
		repo.EXPECT().ListBudgets(gomock.Any(), userID).Return([]*budget.Budget{
			{
				TotalBudget: 100, SpentAmount: 40,
				StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			},
			{
				TotalBudget: 100, SpentAmount: 10,
				StartDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
			},
		}, nil)

		rec := serve(h, http.MethodGet, "/api/budget/summary", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Summary map[string]float64 `json:"summary"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

		assert.InDelta(t, 2.0, body.Summary["total_budgets"], 1e-9)
		assert.InDelta(t, 1.0, body.Summary["active_budgets"], 1e-9)
		assert.InDelta(t, 150.0, body.Summary["total_remaining"], 1e-9)
		assert.InDelta(t, 25.0, body.Summary["budget_utilization"], 1e-9)
	})
}
