package product

import (
	"context"
	"strings"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=product
type Repository interface {
	ListProducts(ctx context.Context, filter Filter) ([]*Product, int, error)
	Categories(ctx context.Context) ([]string, error)
}

type Service struct {
	repo  Repository
	cache *Cache
}

// NewService builds the catalog service. A nil cache disables caching.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) List(ctx context.Context, filter Filter) (*Page, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Search = strings.TrimSpace(filter.Search)
	filter = filter.normalize()

	key := listKey(filter)
	if v, ok := s.cache.get(key); ok {
		if page, ok := v.(*Page); ok {
			return page, nil
		}
	}

	products, total, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, err
	}

	if products == nil {
		products = []*Product{}
	}

	page := &Page{
		Products:    products,
		Total:       total,
		Pages:       (total + filter.PerPage - 1) / filter.PerPage,
		CurrentPage: filter.Page,
		PerPage:     filter.PerPage,
	}

	s.cache.set(key, page)

	return page, nil
}

// Categories lists the distinct non-empty categories in the catalog.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	if v, ok := s.cache.get(categoriesKey); ok {
		if cats, ok := v.([]string); ok {
			return cats, nil
		}
	}

	cats, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}

	if cats == nil {
		cats = []string{}
	}

	s.cache.set(categoriesKey, cats)

	return cats, nil
}

// Recommendations returns the curated suggestion list.
func (s *Service) Recommendations() []Recommendation {
	out := make([]Recommendation, len(recommendations))
	copy(out, recommendations)

	return out
}
