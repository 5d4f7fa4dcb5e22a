package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arvandstudio/arvand-server/internal/search"
)

// SearchService answers full-text queries over the catalog.
type SearchService struct {
	index  *search.SearchIndex
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.SearchIndex, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		logger: logger,
	}
}

// Search executes a query against the catalog index.
func (s *SearchService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	if params.Limit <= 0 || params.Limit > 100 {
		params.Limit = 20
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	result, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}

	s.logger.Debug("search executed",
		"query", params.Query,
		"total", result.Total,
		"took_ms", result.TookMs)
	return result, nil
}
