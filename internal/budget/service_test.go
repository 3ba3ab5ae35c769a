package budget_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/bitebudget/internal/apperr"
	"github.com/MrJamesThe3rd/bitebudget/internal/budget"
)

func TestService_Create(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	customEnd := now.AddDate(0, 2, 0)

	type args struct {
		params budget.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *budget.MockRepository)
		check     func(t *testing.T, b *budget.Budget)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Defaults",
			args: args{params: budget.CreateParams{Name: "Groceries", TotalBudget: 4000}},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().CreateBudget(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, b *budget.Budget) {
				assert.Equal(t, budget.PeriodMonthly, b.Period)
				assert.Equal(t, budget.DefaultCategory, b.Category)
				assert.Equal(t, now, b.StartDate)
				assert.Equal(t, now.AddDate(0, 0, 30), b.EndDate)
				assert.Equal(t, userID, b.UserID)
			},
		},
		{
			name: "Custom",
			args: args{params: budget.CreateParams{
				Name: "Holidays", TotalBudget: 9000, Period: budget.PeriodCustom, EndDate: &customEnd, Category: "Food",
			}},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().CreateBudget(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, b *budget.Budget) {
				assert.Equal(t, customEnd, b.EndDate)
				assert.Equal(t, "Food", b.Category)
			},
		},
		{
			name:    "CustomWithoutEnd",
			args:    args{params: budget.CreateParams{Name: "Holidays", TotalBudget: 9000, Period: budget.PeriodCustom}},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "MissingName",
			args:    args{params: budget.CreateParams{TotalBudget: 10}},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "NegativeTotal",
			args:    args{params: budget.CreateParams{Name: "x", TotalBudget: -1}},
			wantErr: apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := budget.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := budget.NewService(repo).WithClock(func() time.Time { return now })
			got, err := svc.Create(context.Background(), userID, tt.args.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestService_Update(t *testing.T) {
	userID, id := uuid.New(), uuid.New()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	existing := func() *budget.Budget {
		return &budget.Budget{
			ID: id, UserID: userID, Name: "Groceries", TotalBudget: 100, SpentAmount: 10,
			Category: "Food", Period: budget.PeriodMonthly, StartDate: start, EndDate: start.AddDate(0, 0, 30),
		}
	}

	t.Run("PatchesOnlyGivenFields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := budget.NewMockRepository(ctrl)
		repo.EXPECT().GetBudget(gomock.Any(), userID, id).Return(existing(), nil)
		repo.EXPECT().UpdateBudget(gomock.Any(), gomock.Any()).Return(nil)

		got, err := budget.NewService(repo).Update(context.Background(), userID, id, budget.UpdateParams{
			SpentAmount: new(91.0),
		})
		require.NoError(t, err)

		assert.Equal(t, "Groceries", got.Name)
		assert.Equal(t, 91.0, got.SpentAmount)
		assert.Equal(t, budget.StatusOverBudget, budget.Classify(got.TotalBudget, got.SpentAmount))
	})

	t.Run("SpendCanFall", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		over := existing()
		over.SpentAmount = 95

		repo := budget.NewMockRepository(ctrl)
		repo.EXPECT().GetBudget(gomock.Any(), userID, id).Return(over, nil)
		repo.EXPECT().UpdateBudget(gomock.Any(), gomock.Any()).Return(nil)

		got, err := budget.NewService(repo).Update(context.Background(), userID, id, budget.UpdateParams{
			SpentAmount: new(20.0),
		})
		require.NoError(t, err)
		assert.Equal(t, budget.StatusOnTrack, budget.Classify(got.TotalBudget, got.SpentAmount))
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := budget.NewMockRepository(ctrl)
		repo.EXPECT().GetBudget(gomock.Any(), userID, id).Return(existing(), nil)

		_, err := budget.NewService(repo).Update(context.Background(), userID, id, budget.UpdateParams{
			EndDate: new(start.AddDate(0, 0, -1)),
		})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := budget.NewMockRepository(ctrl)
		repo.EXPECT().GetBudget(gomock.Any(), userID, id).Return(nil, budget.ErrNotFound)

		_, err := budget.NewService(repo).Update(context.Background(), userID, id, budget.UpdateParams{})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestService_Summary(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		budgets []*budget.Budget
		repoErr error
		want    budget.Summary
	}{
		{
			name: "Active",
			budgets: []*budget.Budget{
				{TotalBudget: 100, SpentAmount: 25, StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 29)},
			},
			want: budget.Summary{
				TotalBudgets: 1, ActiveBudgets: 1, TotalAllocated: 100, TotalSpent: 25, TotalRemaining: 75, Utilization: 25,
			},
		},
		{name: "None", want: budget.Summary{}},
		{name: "RepoError", repoErr: errors.New("db error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := budget.NewMockRepository(ctrl)
			repo.EXPECT().ListBudgets(gomock.Any(), userID).Return(tt.budgets, tt.repoErr)

			got, err := budget.NewService(repo).WithClock(func() time.Time { return now }).Summary(context.Background(), userID)
			if tt.repoErr != nil {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
