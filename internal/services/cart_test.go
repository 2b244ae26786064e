package service_test

import (
	"context"
	"testing"
	"time"

	appErrors "github.com/modishwear/modish-backend/internal/errors"
	"github.com/modishwear/modish-backend/internal/models"
	repository "github.com/modishwear/modish-backend/internal/repositories"
	service "github.com/modishwear/modish-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// noopCache satisfies cache.Cache without storing anything, so service tests
// always exercise the repository path.
type noopCache struct{}

func (noopCache) Get(_ context.Context, _ string, _ any) (bool, error)          { return false, nil }
func (noopCache) Set(_ context.Context, _ string, _ any, _ time.Duration) error { return nil }
func (noopCache) Delete(_ context.Context, _ string) error                      { return nil }
func (noopCache) Close() error                                                  { return nil }

func sellableVariant(id primitive.ObjectID, size models.Size, left int) *models.Variant {
	return &models.Variant{
		ID:          id,
		Quantity:    []models.SizeStock{{Size: size, QuantityLeft: left}},
		Status:      models.StatusActive,
		StockStatus: models.StockStatusInStock,
	}
}

func assertAppError(t *testing.T, err error, code string, message string) {
	t.Helper()

	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, message, appErr.Message)
}

func TestAddToCart(t *testing.T) {
	ctx := context.Background()
	cartID := primitive.NewObjectID()
	variantID := primitive.NewObjectID()

	newService := func() (service.CartService, *repository.MockCartRepository, *repository.MockProductRepository) {
		cartRepo := repository.NewMockCartRepository()
		productRepo := repository.NewMockProductRepository()

		return service.NewCartService(cartRepo, productRepo, noopCache{}), cartRepo, productRepo
	}

	req := &models.AddToCartRequest{VariantID: variantID.Hex(), Size: models.SizeM, Quantity: 2}

	expectRecompute := func(cartRepo *repository.MockCartRepository, productRepo *repository.MockProductRepository, total float64) {
		variant := sellableVariant(variantID, models.SizeM, 10)
		variant.OriginalPrice = total / 2

		cart := &models.Cart{
			ID: cartID,
			Products: []models.CartLine{
				{Variant: variantID, Quantity: []models.SizeQuantity{{Size: models.SizeM, Quantity: 2}}},
			},
		}

		cartRepo.On("GetCart", ctx, cartID).Return(cart, nil).Once()
		productRepo.On("GetVariantsByIDs", ctx, []primitive.ObjectID{variantID}).Return([]models.Variant{*variant}, nil).Once()
		cartRepo.On("SetTotalPrice", ctx, cartID, total).Return(nil).Once()
	}

	t.Run("Success - new line added for unseen variant", func(t *testing.T) {
		// Arrange
		svc, cartRepo, productRepo := newService()

		productRepo.On("GetVariantSizeStock", ctx, variantID, models.SizeM).
			Return(sellableVariant(variantID, models.SizeM, 5), nil).Once()
		cartRepo.On("FindLine", ctx, cartID, variantID, models.SizeM).
			Return(&repository.LineLocation{State: repository.LineAbsent, SizeIndex: -1}, nil).Once()
		cartRepo.On("AddLine", ctx, cartID, mock.AnythingOfType("models.CartLine")).Return(nil).Once()
		expectRecompute(cartRepo, productRepo, 40)

		// Act
		view, err := svc.AddToCart(ctx, cartID, req)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, view)
		assert.Equal(t, float64(40), view.TotalPrice)
		cartRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
	})

	t.Run("Success - size appended to existing line", func(t *testing.T) {
		// Arrange
		svc, cartRepo, productRepo := newService()

		productRepo.On("GetVariantSizeStock", ctx, variantID, models.SizeM).
			Return(sellableVariant(variantID, models.SizeM, 5), nil).Once()
		cartRepo.On("FindLine", ctx, cartID, variantID, models.SizeM).
			Return(&repository.LineLocation{State: repository.LineWithoutSize, SizeIndex: -1, SizeCount: 1}, nil).Once()
		cartRepo.On("AddSizeToLine", ctx, cartID, variantID, models.SizeQuantity{Size: models.SizeM, Quantity: 2}).Return(nil).Once()
		expectRecompute(cartRepo, productRepo, 40)

		// Act
		_, err := svc.AddToCart(ctx, cartID, req)

		// Assert
		require.NoError(t, err)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Success - quantity merged into existing size entry", func(t *testing.T) {
		// Arrange
		svc, cartRepo, productRepo := newService()
		loc := &repository.LineLocation{State: repository.LineWithSize, SizeIndex: 0, Quantity: 3, SizeCount: 1}

		productRepo.On("GetVariantSizeStock", ctx, variantID, models.SizeM).
			Return(sellableVariant(variantID, models.SizeM, 5), nil).Once()
		cartRepo.On("FindLine", ctx, cartID, variantID, models.SizeM).Return(loc, nil).Once()
		cartRepo.On("IncQuantityAt", ctx, cartID, variantID, loc, models.SizeM, 2).Return(nil).Once()
		expectRecompute(cartRepo, productRepo, 40)

		// Act
		_, err := svc.AddToCart(ctx, cartID, req)

		// Assert
		require.NoError(t, err)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Success - merged quantity exactly equal to stock", func(t *testing.T) {
		// Arrange: 3 in cart + 2 requested == 5 left.
		svc, cartRepo, productRepo := newService()
		loc := &repository.LineLocation{State: repository.LineWithSize, SizeIndex: 0, Quantity: 3, SizeCount: 1}

		productRepo.On("GetVariantSizeStock", ctx, variantID, models.SizeM).
			Return(sellableVariant(variantID, models.SizeM, 5), nil).Once()
		cartRepo.On("FindLine", ctx, cartID, variantID, models.SizeM).Return(loc, nil).Once()
		cartRepo.On("IncQuantityAt", ctx, cartID, variantID, loc, models.SizeM, 2).Return(nil).Once()
		expectRecompute(cartRepo, productRepo, 40)

		// Act
		_, err := svc.AddToCart(ctx, cartID, req)

		// Assert
		require.NoError(t, err)
	})

	t.Run("Conflict - merged quantity exceeds stock", func(t *testing.T) {
		// Arrange: 4 in cart + 2 requested > 5 left.
		svc, cartRepo, productRepo := newService()
		loc := &repository.LineLocation{State: repository.LineWithSize, SizeIndex: 0, Quantity: 4, SizeCount: 1}

		productRepo.On("GetVariantSizeStock", ctx, variantID, models.SizeM).
			Return(sellableVariant(variantID, models.SizeM, 5), nil).Once()
		cartRepo.On("FindLine", ctx, cartID, variantID, models.SizeM).Return(loc, nil).Once()

		// Act
		view, err := svc.AddToCart(ctx, cartID, req)

		// Assert
		assert.Nil(t, view)
		assertAppError(t, err, appErrors.ErrCodeStockConflict, "Product stock limit reached")
		cartRepo.AssertNotCalled(t, "IncQuantityAt", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Conflict - requested size not carried by variant", func(t *testing.T) {
		// Arrange: elem-match projection found no size entry.
		svc, _, productRepo := newService()
		variant := sellableVariant(variantID, models.SizeM, 5)
		variant.Quantity = nil

		productRepo.On("GetVariantSizeStock", ctx, variantID, models.SizeM).Return(variant, nil).Once()

		// Act
		_, err := svc.AddToCart(ctx, cartID, req)

		// Assert
		assertAppError(t, err, appErrors.ErrCodeStockConflict, "Requested size isn't available")
	})

	t.Run("Conflict - variant inactive or out of stock", func(t *testing.T) {
		// Arrange
		svc, _, productRepo := newService()
		variant := sellableVariant(variantID, models.SizeM, 5)
		variant.StockStatus = models.StockStatusOutOfStock

		productRepo.On("GetVariantSizeStock", ctx, variantID, models.SizeM).Return(variant, nil).Once()

		// Act
		_, err := svc.AddToCart(ctx, cartID, req)

		// Assert
		assertAppError(t, err, appErrors.ErrCodeStockConflict, "Product currently unavailable or out of stock")
	})

	t.Run("Failure - variant not found", func(t *testing.T) {
		// Arrange
		svc, _, productRepo := newService()

		productRepo.On("GetVariantSizeStock", ctx, variantID, models.SizeM).
			Return(nil, mongo.ErrNoDocuments).Once()

		// Act
		_, err := svc.AddToCart(ctx, cartID, req)

		// Assert
		assertAppError(t, err, appErrors.ErrCodeNotFound, "Product not found")
	})

	t.Run("Failure - malformed variant id", func(t *testing.T) {
		// Arrange
		svc, _, _ := newService()
		badReq := &models.AddToCartRequest{VariantID: "not-a-hex-id", Size: models.SizeM, Quantity: 1}

		// Act
		_, err := svc.AddToCart(ctx, cartID, badReq)

		// Assert
		assertAppError(t, err, appErrors.ErrCodeBadRequest, "Invalid variant id")
	})
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	cartID := primitive.NewObjectID()
	variantID := primitive.NewObjectID()

	newService := func() (service.CartService, *repository.MockCartRepository, *repository.MockProductRepository) {
		cartRepo := repository.NewMockCartRepository()
		productRepo := repository.NewMockProductRepository()

		return service.NewCartService(cartRepo, productRepo, noopCache{}), cartRepo, productRepo
	}

	expectRecompute := func(cartRepo *repository.MockCartRepository, productRepo *repository.MockProductRepository) {
		cart := &models.Cart{ID: cartID, Products: []models.CartLine{}}

		cartRepo.On("GetCart", ctx, cartID).Return(cart, nil).Once()
		cartRepo.On("SetTotalPrice", ctx, cartID, float64(0)).Return(nil).Once()
	}

	t.Run("Success - increment within stock", func(t *testing.T) {
		// Arrange
		svc, cartRepo, productRepo := newService()
		loc := &repository.LineLocation{State: repository.LineWithSize, SizeIndex: 0, Quantity: 2, SizeCount: 1}

		cartRepo.On("FindLine", ctx, cartID, variantID, models.SizeL).Return(loc, nil).Once()
		productRepo.On("GetVariantSizeStock", ctx, variantID, models.SizeL).
			Return(sellableVariant(variantID, models.SizeL, 3), nil).Once()
		cartRepo.On("IncQuantityAt", ctx, cartID, variantID, loc, models.SizeL, 1).Return(nil).Once()
		expectRecompute(cartRepo, productRepo)

		// Act
		_, err := svc.UpdateQuantity(ctx, cartID, variantID, &models.UpdateCartQuantityRequest{Size: models.SizeL, Operation: "increment"})

		// Assert
		require.NoError(t, err)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Conflict - increment beyond stock", func(t *testing.T) {
		// Arrange: already holding all 3 units.
		svc, cartRepo, productRepo := newService()
		loc := &repository.LineLocation{State: repository.LineWithSize, SizeIndex: 0, Quantity: 3, SizeCount: 1}

		cartRepo.On("FindLine", ctx, cartID, variantID, models.SizeL).Return(loc, nil).Once()
		productRepo.On("GetVariantSizeStock", ctx, variantID, models.SizeL).
			Return(sellableVariant(variantID, models.SizeL, 3), nil).Once()

		// Act
		_, err := svc.UpdateQuantity(ctx, cartID, variantID, &models.UpdateCartQuantityRequest{Size: models.SizeL, Operation: "increment"})

		// Assert
		assertAppError(t, err, appErrors.ErrCodeStockConflict, "Product stock limit reached")
	})

	t.Run("Success - decrement above minimum", func(t *testing.T) {
		// Arrange
		svc, cartRepo, productRepo := newService()
		loc := &repository.LineLocation{State: repository.LineWithSize, SizeIndex: 0, Quantity: 2, SizeCount: 1}

		cartRepo.On("FindLine", ctx, cartID, variantID, models.SizeL).Return(loc, nil).Once()
		cartRepo.On("IncQuantityAt", ctx, cartID, variantID, loc, models.SizeL, -1).Return(nil).Once()
		expectRecompute(cartRepo, productRepo)

		// Act
		_, err := svc.UpdateQuantity(ctx, cartID, variantID, &models.UpdateCartQuantityRequest{Size: models.SizeL, Operation: "decrement"})

		// Assert
		require.NoError(t, err)
	})

	t.Run("Conflict - decrement at minimum quantity", func(t *testing.T) {
		// Arrange
		svc, cartRepo, _ := newService()
		loc := &repository.LineLocation{State: repository.LineWithSize, SizeIndex: 0, Quantity: 1, SizeCount: 1}

		cartRepo.On("FindLine", ctx, cartID, variantID, models.SizeL).Return(loc, nil).Once()

		// Act
		_, err := svc.UpdateQuantity(ctx, cartID, variantID, &models.UpdateCartQuantityRequest{Size: models.SizeL, Operation: "decrement"})

		// Assert
		assertAppError(t, err, appErrors.ErrCodeStockConflict, "Cannot decrement below minimum quantity")
		cartRepo.AssertNotCalled(t, "IncQuantityAt", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - no matching cart line", func(t *testing.T) {
		// Arrange
		svc, cartRepo, _ := newService()

		cartRepo.On("FindLine", ctx, cartID, variantID, models.SizeL).
			Return(&repository.LineLocation{State: repository.LineAbsent, SizeIndex: -1}, nil).Once()

		// Act
		_, err := svc.UpdateQuantity(ctx, cartID, variantID, &models.UpdateCartQuantityRequest{Size: models.SizeL, Operation: "increment"})

		// Assert
		assertAppError(t, err, appErrors.ErrCodeNotFound, "Cart has no matching product.")
	})
}

func TestRemoveFromCart(t *testing.T) {
	ctx := context.Background()
	cartID := primitive.NewObjectID()
	variantID := primitive.NewObjectID()

	newService := func() (service.CartService, *repository.MockCartRepository, *repository.MockProductRepository) {
		cartRepo := repository.NewMockCartRepository()
		productRepo := repository.NewMockProductRepository()

		return service.NewCartService(cartRepo, productRepo, noopCache{}), cartRepo, productRepo
	}

	expectRecompute := func(cartRepo *repository.MockCartRepository) {
		cart := &models.Cart{ID: cartID, Products: []models.CartLine{}}

		cartRepo.On("GetCart", ctx, cartID).Return(cart, nil).Once()
		cartRepo.On("SetTotalPrice", ctx, cartID, float64(0)).Return(nil).Once()
	}

	req := &models.RemoveFromCartRequest{Size: models.SizeS}

	t.Run("Success - last size pulls the whole line", func(t *testing.T) {
		// Arrange
		svc, cartRepo, _ := newService()
		loc := &repository.LineLocation{State: repository.LineWithSize, SizeIndex: 0, Quantity: 2, SizeCount: 1}

		cartRepo.On("FindLine", ctx, cartID, variantID, models.SizeS).Return(loc, nil).Once()
		cartRepo.On("PullLine", ctx, cartID, variantID).Return(nil).Once()
		expectRecompute(cartRepo)

		// Act
		_, err := svc.RemoveFromCart(ctx, cartID, variantID, req)

		// Assert
		require.NoError(t, err)
		cartRepo.AssertNotCalled(t, "PullSize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success - one of several sizes pulls only the entry", func(t *testing.T) {
		// Arrange
		svc, cartRepo, _ := newService()
		loc := &repository.LineLocation{State: repository.LineWithSize, SizeIndex: 1, Quantity: 2, SizeCount: 3}

		cartRepo.On("FindLine", ctx, cartID, variantID, models.SizeS).Return(loc, nil).Once()
		cartRepo.On("PullSize", ctx, cartID, variantID, models.SizeS).Return(nil).Once()
		expectRecompute(cartRepo)

		// Act
		_, err := svc.RemoveFromCart(ctx, cartID, variantID, req)

		// Assert
		require.NoError(t, err)
		cartRepo.AssertNotCalled(t, "PullLine", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - no matching cart line", func(t *testing.T) {
		// Arrange
		svc, cartRepo, _ := newService()

		cartRepo.On("FindLine", ctx, cartID, variantID, models.SizeS).
			Return(&repository.LineLocation{State: repository.LineWithoutSize, SizeIndex: -1, SizeCount: 2}, nil).Once()

		// Act
		_, err := svc.RemoveFromCart(ctx, cartID, variantID, req)

		// Assert
		assertAppError(t, err, appErrors.ErrCodeNotFound, "Cart has no matching product.")
	})
}

func TestRecomputedTotalUsesEffectivePrices(t *testing.T) {
	ctx := context.Background()
	cartID := primitive.NewObjectID()
	saleVariantID := primitive.NewObjectID()
	plainVariantID := primitive.NewObjectID()

	cartRepo := repository.NewMockCartRepository()
	productRepo := repository.NewMockProductRepository()
	svc := service.NewCartService(cartRepo, productRepo, noopCache{})

	// Two lines: a variant on sale at 15.50 and one at its original 40.
	cart := &models.Cart{
		ID: cartID,
		Products: []models.CartLine{
			{Variant: saleVariantID, Quantity: []models.SizeQuantity{{Size: models.SizeM, Quantity: 2}}},
			{Variant: plainVariantID, Quantity: []models.SizeQuantity{{Size: models.SizeS, Quantity: 1}, {Size: models.SizeL, Quantity: 1}}},
		},
	}

	saleVariant := models.Variant{
		ID:            saleVariantID,
		OriginalPrice: 31,
		IsOnSale:      true,
		SaleOptions:   &models.SaleOptions{SalePrice: 15.50},
	}
	plainVariant := models.Variant{ID: plainVariantID, OriginalPrice: 40}

	loc := &repository.LineLocation{State: repository.LineWithSize, SizeIndex: 0, Quantity: 1, SizeCount: 1}
	cartRepo.On("FindLine", ctx, cartID, saleVariantID, models.SizeM).Return(loc, nil).Once()
	cartRepo.On("IncQuantityAt", ctx, cartID, saleVariantID, loc, models.SizeM, -1).Return(nil).Maybe()
	productRepo.On("GetVariantSizeStock", ctx, saleVariantID, models.SizeM).
		Return(sellableVariant(saleVariantID, models.SizeM, 10), nil).Once()
	cartRepo.On("IncQuantityAt", ctx, cartID, saleVariantID, loc, models.SizeM, 1).Return(nil).Once()

	cartRepo.On("GetCart", ctx, cartID).Return(cart, nil).Once()
	productRepo.On("GetVariantsByIDs", ctx, []primitive.ObjectID{saleVariantID, plainVariantID}).
		Return([]models.Variant{saleVariant, plainVariant}, nil).Once()

	// 2*15.50 + (1+1)*40 = 111
	cartRepo.On("SetTotalPrice", ctx, cartID, float64(111)).Return(nil).Once()

	view, err := svc.UpdateQuantity(ctx, cartID, saleVariantID, &models.UpdateCartQuantityRequest{Size: models.SizeM, Operation: "increment"})

	require.NoError(t, err)
	assert.Equal(t, float64(111), view.TotalPrice)
	cartRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}
