package repository

import (
	"context"

	"github.com/modishwear/modish-backend/internal/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Testify mocks for the repository interfaces, shared by the service and
// handler tests.

type MockCartRepository struct {
	mock.Mock
}

func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{}
}

func (m *MockCartRepository) GetCart(ctx context.Context, cartID primitive.ObjectID) (*models.Cart, error) {
	args := m.Called(ctx, cartID)
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartRepository) FindLine(ctx context.Context, cartID, variantID primitive.ObjectID, size models.Size) (*LineLocation, error) {
	args := m.Called(ctx, cartID, variantID, size)
	if loc, ok := args.Get(0).(*LineLocation); ok {
		return loc, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartRepository) AddLine(ctx context.Context, cartID primitive.ObjectID, line models.CartLine) error {
	args := m.Called(ctx, cartID, line)

	return args.Error(0)
}

func (m *MockCartRepository) AddSizeToLine(ctx context.Context, cartID, variantID primitive.ObjectID, entry models.SizeQuantity) error {
	args := m.Called(ctx, cartID, variantID, entry)

	return args.Error(0)
}

func (m *MockCartRepository) IncQuantityAt(ctx context.Context, cartID, variantID primitive.ObjectID, loc *LineLocation, size models.Size, delta int) error {
	args := m.Called(ctx, cartID, variantID, loc, size, delta)

	return args.Error(0)
}

func (m *MockCartRepository) PullSize(ctx context.Context, cartID, variantID primitive.ObjectID, size models.Size) error {
	args := m.Called(ctx, cartID, variantID, size)

	return args.Error(0)
}

func (m *MockCartRepository) PullLine(ctx context.Context, cartID, variantID primitive.ObjectID) error {
	args := m.Called(ctx, cartID, variantID)

	return args.Error(0)
}

func (m *MockCartRepository) SetTotalPrice(ctx context.Context, cartID primitive.ObjectID, total float64) error {
	args := m.Called(ctx, cartID, total)

	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{}
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if product, ok := args.Get(0).(*models.Product); ok {
		return product, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) CreateVariant(ctx context.Context, variant *models.Variant) error {
	args := m.Called(ctx, variant)

	return args.Error(0)
}

func (m *MockProductRepository) GetVariantByID(ctx context.Context, id primitive.ObjectID) (*models.Variant, error) {
	args := m.Called(ctx, id)
	if variant, ok := args.Get(0).(*models.Variant); ok {
		return variant, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) GetVariantSizeStock(ctx context.Context, variantID primitive.ObjectID, size models.Size) (*models.Variant, error) {
	args := m.Called(ctx, variantID, size)
	if variant, ok := args.Get(0).(*models.Variant); ok {
		return variant, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) GetVariantsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Variant, error) {
	args := m.Called(ctx, ids)
	if variants, ok := args.Get(0).([]models.Variant); ok {
		return variants, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) UpdateVariantStock(ctx context.Context, variantID primitive.ObjectID, stock []models.SizeStock, total int, status models.StockStatus) error {
	args := m.Called(ctx, variantID, stock, total, status)

	return args.Error(0)
}

func (m *MockProductRepository) UpdateVariantSale(ctx context.Context, variantID primitive.ObjectID, isOnSale bool, sale *models.SaleOptions) error {
	args := m.Called(ctx, variantID, isOnSale, sale)

	return args.Error(0)
}

type MockCatalogRepository struct {
	mock.Mock
}

func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{}
}

func (m *MockCatalogRepository) SearchProducts(ctx context.Context, pipeline mongo.Pipeline) (*models.ProductSearchResult, error) {
	args := m.Called(ctx, pipeline)
	if result, ok := args.Get(0).(*models.ProductSearchResult); ok {
		return result, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCatalogRepository) SearchOrders(ctx context.Context, pipeline mongo.Pipeline) (*models.OrderSearchResult, error) {
	args := m.Called(ctx, pipeline)
	if result, ok := args.Get(0).(*models.OrderSearchResult); ok {
		return result, args.Error(1)
	}

	return nil, args.Error(1)
}
