package service

import (
	"context"

	"github.com/modishwear/modish-backend/internal/errors"
	"github.com/modishwear/modish-backend/internal/models"
	repository "github.com/modishwear/modish-backend/internal/repositories"
	"github.com/modishwear/modish-backend/internal/search"
)

type CatalogService interface {
	SearchProducts(ctx context.Context, filter search.ProductFilter, page, limit int64) (*models.ProductSearchResult, error)
	SearchOrders(ctx context.Context, filter search.OrderFilter, page, limit int64) (*models.OrderSearchResult, error)
}

type catalogService struct {
	repo repository.CatalogRepository
}

func NewCatalogService(repo repository.CatalogRepository) CatalogService {
	return &catalogService{repo: repo}
}

func pagination(page, limit int64) (int64, int64) {
	if page < 1 {
		page = 1
	}

	if limit <= 0 {
		limit = search.DefaultLimit
	}

	return (page - 1) * limit, limit
}

func (s *catalogService) SearchProducts(ctx context.Context, filter search.ProductFilter, page, limit int64) (*models.ProductSearchResult, error) {

	skip, limit := pagination(page, limit)

	pipeline := search.Compile(search.BuildProductPipeline(filter, skip, limit))

	result, err := s.repo.SearchProducts(ctx, pipeline)
	if err != nil {
		return nil, errors.DatabaseError("Failed to search products").WithError(err)
	}

	return result, nil
}

func (s *catalogService) SearchOrders(ctx context.Context, filter search.OrderFilter, page, limit int64) (*models.OrderSearchResult, error) {

	skip, limit := pagination(page, limit)

	pipeline := search.Compile(search.BuildOrderPipeline(filter, skip, limit))

	result, err := s.repo.SearchOrders(ctx, pipeline)
	if err != nil {
		return nil, errors.DatabaseError("Failed to search orders").WithError(err)
	}

	return result, nil
}
