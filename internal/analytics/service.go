package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bitebudget/internal/budget"
	"github.com/MrJamesThe3rd/bitebudget/internal/receipt"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=analytics
type ReceiptSource interface {
	List(ctx context.Context, userID uuid.UUID, filter receipt.ListFilter) ([]*receipt.Receipt, error)
	Items(ctx context.Context, userID uuid.UUID) ([]receipt.Item, error)
}

type BudgetSource interface {
	List(ctx context.Context, userID uuid.UUID) ([]*budget.Budget, error)
}

// Service loads one user's collections and runs the engine over them.
type Service struct {
	receipts ReceiptSource
	budgets  BudgetSource
	now      func() time.Time
}

func NewService(receipts ReceiptSource, budgets BudgetSource) *Service {
	return &Service{receipts: receipts, budgets: budgets, now: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) SpendingTrends(ctx context.Context, userID uuid.UUID) (MonthlyTrend, error) {
	now := s.now()
	from := now.AddDate(0, 0, -DefaultTrendWindowDays)

	receipts, err := s.receipts.List(ctx, userID, receipt.ListFilter{From: &from, To: &now})
	if err != nil {
		return MonthlyTrend{}, err
	}

	return Trend(receipts, now, DefaultTrendWindowDays), nil
}

func (s *Service) CategoryBreakdown(ctx context.Context, userID uuid.UUID) ([]CategoryTotal, error) {
	items, err := s.receipts.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	return CategoryBreakdown(items), nil
}

func (s *Service) TopProducts(ctx context.Context, userID uuid.UUID, limit int) ([]ProductTotal, error) {
	items, err := s.receipts.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	return TopProducts(items, limit), nil
}

func (s *Service) ShoppingPatterns(ctx context.Context, userID uuid.UUID) (Patterns, error) {
	receipts, err := s.receipts.List(ctx, userID, receipt.ListFilter{})
	if err != nil {
		return Patterns{}, err
	}

	return ShoppingPatterns(receipts), nil
}

func (s *Service) Sustainability(ctx context.Context, userID uuid.UUID) (SustainabilityReport, error) {
	receipts, err := s.receipts.List(ctx, userID, receipt.ListFilter{})
	if err != nil {
		return SustainabilityReport{}, err
	}

	return Sustainability(receipts), nil
}

func (s *Service) BudgetAnalysis(ctx context.Context, userID uuid.UUID) ([]budget.Analysis, error) {
	budgets, err := s.budgets.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	return BudgetAnalysis(budgets, s.now()), nil
}
