package repository

import (
	"context"
	"fmt"

	"github.com/modishwear/modish-backend/internal/models"
	"github.com/modishwear/modish-backend/internal/utils"
	"go.mongodb.org/mongo-driver/mongo"
)

type CatalogRepository interface {
	SearchProducts(ctx context.Context, pipeline mongo.Pipeline) (*models.ProductSearchResult, error)
	SearchOrders(ctx context.Context, pipeline mongo.Pipeline) (*models.OrderSearchResult, error)
}

type catalogRepository struct {
	products *mongo.Collection
	orders   *mongo.Collection
}

func NewCatalogRepo(db *Database) CatalogRepository {
	return &catalogRepository{products: db.Products, orders: db.Orders}
}

// SearchProducts runs the product pipeline. A pipeline matching nothing still
// returns the canonical empty envelope, never nil.
func (r *catalogRepository) SearchProducts(ctx context.Context, pipeline mongo.Pipeline) (*models.ProductSearchResult, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cursor, err := r.products.Aggregate(dbCtx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to run product search: %w", err)
	}
	defer cursor.Close(dbCtx)

	var results []models.ProductSearchResult

	if err := cursor.All(dbCtx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode product search results: %w", err)
	}

	// The flattening unwind drops the facet document entirely when the count
	// branch is empty.
	if len(results) == 0 {
		return models.EmptyProductSearchResult(), nil
	}

	result := results[0]
	if result.Result == nil {
		result.Result = []models.SearchedProduct{}
	}

	return &result, nil
}

func (r *catalogRepository) SearchOrders(ctx context.Context, pipeline mongo.Pipeline) (*models.OrderSearchResult, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cursor, err := r.orders.Aggregate(dbCtx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to run order search: %w", err)
	}
	defer cursor.Close(dbCtx)

	var results []models.OrderSearchResult

	if err := cursor.All(dbCtx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode order search results: %w", err)
	}

	if len(results) == 0 {
		return &models.OrderSearchResult{Result: []models.Order{}, TotalCount: []models.TotalCount{}}, nil
	}

	result := results[0]
	if result.Result == nil {
		result.Result = []models.Order{}
	}

	return &result, nil
}
