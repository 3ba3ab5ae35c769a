package budget

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bitebudget/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	CreateBudget(ctx context.Context, b *Budget) error
	ListBudgets(ctx context.Context, userID uuid.UUID) ([]*Budget, error)
	GetBudget(ctx context.Context, userID, id uuid.UUID) (*Budget, error)
	UpdateBudget(ctx context.Context, b *Budget) error
	DeleteBudget(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock replaces the time source used for defaults and status.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Now is the instant statuses are evaluated against.
func (s *Service) Now() time.Time {
	return s.now()
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams) (*Budget, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, apperr.Invalid("name", "required")
	}

	if params.TotalBudget < 0 {
		return nil, apperr.Invalid("total_budget", "must not be negative")
	}

	if params.SpentAmount < 0 {
		return nil, apperr.Invalid("spent_amount", "must not be negative")
	}

	period := params.Period
	if period == "" {
		period = PeriodMonthly
	}

	category := strings.TrimSpace(params.Category)
	if category == "" {
		category = DefaultCategory
	}

	start := s.now()
	if params.StartDate != nil {
		start = *params.StartDate
	}

	end, err := EndDate(start, period, params.EndDate)
	if err != nil {
		return nil, err
	}

	b := &Budget{
		UserID:      userID,
		Name:        name,
		TotalBudget: params.TotalBudget,
		SpentAmount: params.SpentAmount,
		Category:    category,
		Period:      period,
		StartDate:   start,
		EndDate:     end,
	}

	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Budget, error) {
	return s.repo.ListBudgets(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Budget, error) {
	return s.repo.GetBudget(ctx, userID, id)
}

// Update applies the patch. Spent amount is last-write-wins.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, params UpdateParams) (*Budget, error) {
	b, err := s.repo.GetBudget(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, apperr.Invalid("name", "must not be empty")
		}

		b.Name = name
	}

	if params.TotalBudget != nil {
		if *params.TotalBudget < 0 {
			return nil, apperr.Invalid("total_budget", "must not be negative")
		}

		b.TotalBudget = *params.TotalBudget
	}

	if params.SpentAmount != nil {
		if *params.SpentAmount < 0 {
			return nil, apperr.Invalid("spent_amount", "must not be negative")
		}

		b.SpentAmount = *params.SpentAmount
	}

	if params.Category != nil {
		b.Category = strings.TrimSpace(*params.Category)
		if b.Category == "" {
			b.Category = DefaultCategory
		}
	}

	if params.EndDate != nil {
		if !params.EndDate.After(b.StartDate) {
			return nil, apperr.Invalid("end_date", "must be after start_date")
		}

		b.EndDate = *params.EndDate
	}

	if err := s.repo.UpdateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteBudget(ctx, userID, id)
}

func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (Summary, error) {
	budgets, err := s.repo.ListBudgets(ctx, userID)
	if err != nil {
		return Summary{}, err
	}

	return Summarize(budgets, s.now()), nil
}
