// Package matching learns which category a product name belongs to.
package matching

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/bitebudget/internal/apperr"
)

const (
	maxPatternLen  = 200
	maxCategoryLen = 100
)

// Mapping assigns every product whose name contains Pattern to Category.
type Mapping struct {
	Pattern  string `json:"pattern"`
	Category string `json:"category"`
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	FindMatch(ctx context.Context, productName string) (string, error)
	CreateMapping(ctx context.Context, pattern, category string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category of the longest pattern contained in the
// product name, or an empty string if none matches.
func (s *Service) Suggest(ctx context.Context, productName string) (string, error) {
	name := strings.TrimSpace(productName)
	if name == "" {
		return "", nil
	}

	return s.repo.FindMatch(ctx, name)
}

// Learn remembers a new mapping between a pattern and a category.
func (s *Service) Learn(ctx context.Context, m Mapping) error {
	pattern := strings.TrimSpace(m.Pattern)
	category := strings.TrimSpace(m.Category)

	switch {
	case pattern == "":
		return &apperr.ValidationError{Field: "pattern", Reason: "required"}
	case len(pattern) > maxPatternLen:
		return &apperr.ValidationError{Field: "pattern", Reason: fmt.Sprintf("at most %d characters", maxPatternLen)}
	case category == "":
		return &apperr.ValidationError{Field: "category", Reason: "required"}
	case len(category) > maxCategoryLen:
		return &apperr.ValidationError{Field: "category", Reason: fmt.Sprintf("at most %d characters", maxCategoryLen)}
	}

	return s.repo.CreateMapping(ctx, pattern, category)
}
