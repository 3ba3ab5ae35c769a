package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/bitebudget/internal/analytics"
	"github.com/MrJamesThe3rd/bitebudget/internal/budget"
	"github.com/MrJamesThe3rd/bitebudget/internal/receipt"
)

func TestService_SpendingTrends(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	receipts := analytics.NewMockReceiptSource(ctrl)
	receipts.EXPECT().
		List(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, f receipt.ListFilter) ([]*receipt.Receipt, error) {
			require.NotNil(t, f.From)
			require.NotNil(t, f.To)
			assert.Equal(t, now.AddDate(0, 0, -365), *f.From)
			assert.Equal(t, now, *f.To)

			return []*receipt.Receipt{{TotalAmount: 12, PurchaseDate: now.AddDate(0, 0, -1)}}, nil
		})

	svc := analytics.NewService(receipts, analytics.NewMockBudgetSource(ctrl)).
		WithClock(func() time.Time { return now })

	got, err := svc.SpendingTrends(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"2024-06": 12}, got.Months)
}

func TestService_TopProducts(t *testing.T) {
	userID := uuid.New()

	type testCase struct {
		name      string
		setupMock func(m *analytics.MockReceiptSource)
		wantLen   int
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *analytics.MockReceiptSource) {
				m.EXPECT().Items(gomock.Any(), userID).Return([]receipt.Item{
					{ProductName: "Milk", Quantity: 1, TotalPrice: 25},
					{ProductName: "Eggs", Quantity: 1, TotalPrice: 45},
				}, nil)
			},
			wantLen: 1,
		},
		{
			name: "SourceError",
			setupMock: func(m *analytics.MockReceiptSource) {
				m.EXPECT().Items(gomock.Any(), userID).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			receipts := analytics.NewMockReceiptSource(ctrl)
			tt.setupMock(receipts)

			svc := analytics.NewService(receipts, analytics.NewMockBudgetSource(ctrl))
			got, err := svc.TopProducts(context.Background(), userID, 1)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
			assert.Equal(t, "Eggs", got[0].ProductName)
		})
	}
}

func TestService_BudgetAnalysis(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	budgets := analytics.NewMockBudgetSource(ctrl)
	budgets.EXPECT().List(gomock.Any(), userID).Return([]*budget.Budget{
		{TotalBudget: 100, SpentAmount: 80, StartDate: now.AddDate(0, 0, -9), EndDate: now.AddDate(0, 0, 21)},
	}, nil)

	svc := analytics.NewService(analytics.NewMockReceiptSource(ctrl), budgets).
		WithClock(func() time.Time { return now })

	got, err := svc.BudgetAnalysis(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, budget.StatusWarning, got[0].Status)
	assert.Equal(t, 21, got[0].RemainingDays)
}
