// Package mocks holds testify mocks for the service interfaces, used by the
// handler tests.
package mocks

import (
	"context"

	"github.com/modishwear/modish-backend/internal/models"
	"github.com/modishwear/modish-backend/internal/search"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartService struct {
	mock.Mock
}

func (m *CartService) GetCart(ctx context.Context, cartID primitive.ObjectID) (*models.CartView, error) {
	args := m.Called(ctx, cartID)
	if view, ok := args.Get(0).(*models.CartView); ok {
		return view, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartService) AddToCart(ctx context.Context, cartID primitive.ObjectID, req *models.AddToCartRequest) (*models.CartView, error) {
	args := m.Called(ctx, cartID, req)
	if view, ok := args.Get(0).(*models.CartView); ok {
		return view, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartService) UpdateQuantity(ctx context.Context, cartID, variantID primitive.ObjectID, req *models.UpdateCartQuantityRequest) (*models.CartView, error) {
	args := m.Called(ctx, cartID, variantID, req)
	if view, ok := args.Get(0).(*models.CartView); ok {
		return view, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartService) RemoveFromCart(ctx context.Context, cartID, variantID primitive.ObjectID, req *models.RemoveFromCartRequest) (*models.CartView, error) {
	args := m.Called(ctx, cartID, variantID, req)
	if view, ok := args.Get(0).(*models.CartView); ok {
		return view, args.Error(1)
	}

	return nil, args.Error(1)
}

type ProductService struct {
	mock.Mock
}

func (m *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, req)
	if product, ok := args.Get(0).(*models.Product); ok {
		return product, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ProductService) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if product, ok := args.Get(0).(*models.Product); ok {
		return product, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ProductService) CreateVariant(ctx context.Context, productID primitive.ObjectID, req *models.CreateVariantRequest) (*models.Variant, error) {
	args := m.Called(ctx, productID, req)
	if variant, ok := args.Get(0).(*models.Variant); ok {
		return variant, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ProductService) GetVariant(ctx context.Context, id primitive.ObjectID) (*models.Variant, error) {
	args := m.Called(ctx, id)
	if variant, ok := args.Get(0).(*models.Variant); ok {
		return variant, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ProductService) UpdateStock(ctx context.Context, variantID primitive.ObjectID, req *models.UpdateStockRequest) error {
	args := m.Called(ctx, variantID, req)

	return args.Error(0)
}

func (m *ProductService) UpdateSale(ctx context.Context, variantID primitive.ObjectID, req *models.UpdateSaleRequest) (*models.Variant, error) {
	args := m.Called(ctx, variantID, req)
	if variant, ok := args.Get(0).(*models.Variant); ok {
		return variant, args.Error(1)
	}

	return nil, args.Error(1)
}

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) SearchProducts(ctx context.Context, filter search.ProductFilter, page, limit int64) (*models.ProductSearchResult, error) {
	args := m.Called(ctx, filter, page, limit)
	if result, ok := args.Get(0).(*models.ProductSearchResult); ok {
		return result, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CatalogService) SearchOrders(ctx context.Context, filter search.OrderFilter, page, limit int64) (*models.OrderSearchResult, error) {
	args := m.Called(ctx, filter, page, limit)
	if result, ok := args.Get(0).(*models.OrderSearchResult); ok {
		return result, args.Error(1)
	}

	return nil, args.Error(1)
}
