// Package importer turns store CSV exports into receipt items.
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

//go:generate mockgen -source=service.go -destination=categorizer_mock.go -package=importer
type Categorizer interface {
	Suggest(ctx context.Context, productName string) (string, error)
}

type Service struct {
	parser      *Parser
	categorizer Categorizer
}

func NewService(categorizer Categorizer) *Service {
	return &Service{parser: NewParser(), categorizer: categorizer}
}

// Import parses r and fills missing categories from learned mappings. Items
// with no mapping keep an empty category, stored later as the default.
func (s *Service) Import(ctx context.Context, r io.Reader) (*Result, error) {
	res, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	for i := range res.Items {
		it := &res.Items[i]
		if it.Category != "" {
			continue
		}

		cat, err := s.categorizer.Suggest(ctx, it.ProductName)
		if err != nil {
			return nil, fmt.Errorf("suggesting category for %q: %w", it.ProductName, err)
		}

		it.Category = cat
	}

	slog.InfoContext(ctx, "parsed receipt file",
		"profile", res.Profile,
		"charset", res.Charset,
		"items", len(res.Items),
		"skipped", res.Skipped,
	)

	return res, nil
}
