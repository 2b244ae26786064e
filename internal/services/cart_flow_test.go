package service_test

import (
	"context"
	"testing"

	"github.com/modishwear/modish-backend/internal/models"
	repository "github.com/modishwear/modish-backend/internal/repositories"
	service "github.com/modishwear/modish-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeCartRepo keeps one cart in memory and mirrors the write semantics of
// the mongo repository, so multi-step flows run against real state instead
// of per-call expectations.
type fakeCartRepo struct {
	cart models.Cart
}

func (f *fakeCartRepo) GetCart(_ context.Context, cartID primitive.ObjectID) (*models.Cart, error) {
	if cartID != f.cart.ID {
		return nil, mongo.ErrNoDocuments
	}

	cp := f.cart
	cp.Products = make([]models.CartLine, len(f.cart.Products))

	for i, line := range f.cart.Products {
		cp.Products[i] = models.CartLine{
			Variant:  line.Variant,
			Quantity: append([]models.SizeQuantity{}, line.Quantity...),
		}
	}

	return &cp, nil
}

func (f *fakeCartRepo) FindLine(_ context.Context, cartID, variantID primitive.ObjectID, size models.Size) (*repository.LineLocation, error) {
	if cartID != f.cart.ID {
		return nil, mongo.ErrNoDocuments
	}

	for _, line := range f.cart.Products {
		if line.Variant != variantID {
			continue
		}

		loc := &repository.LineLocation{State: repository.LineWithoutSize, SizeIndex: -1, SizeCount: len(line.Quantity)}

		for j, entry := range line.Quantity {
			if entry.Size == size {
				loc.State = repository.LineWithSize
				loc.SizeIndex = j
				loc.Quantity = entry.Quantity

				break
			}
		}

		return loc, nil
	}

	return &repository.LineLocation{State: repository.LineAbsent, SizeIndex: -1}, nil
}

func (f *fakeCartRepo) AddLine(_ context.Context, cartID primitive.ObjectID, line models.CartLine) error {
	if cartID != f.cart.ID {
		return mongo.ErrNoDocuments
	}

	f.cart.Products = append(f.cart.Products, line)

	return nil
}

func (f *fakeCartRepo) AddSizeToLine(_ context.Context, cartID, variantID primitive.ObjectID, entry models.SizeQuantity) error {
	if cartID != f.cart.ID {
		return mongo.ErrNoDocuments
	}

	for i, line := range f.cart.Products {
		if line.Variant == variantID {
			f.cart.Products[i].Quantity = append(f.cart.Products[i].Quantity, entry)

			return nil
		}
	}

	return mongo.ErrNoDocuments
}

func (f *fakeCartRepo) IncQuantityAt(_ context.Context, cartID, variantID primitive.ObjectID, loc *repository.LineLocation, size models.Size, delta int) error {
	if cartID != f.cart.ID {
		return mongo.ErrNoDocuments
	}

	for i, line := range f.cart.Products {
		if line.Variant != variantID {
			continue
		}

		if loc.SizeIndex < 0 || loc.SizeIndex >= len(line.Quantity) || line.Quantity[loc.SizeIndex].Size != size {
			return mongo.ErrNoDocuments
		}

		f.cart.Products[i].Quantity[loc.SizeIndex].Quantity += delta

		return nil
	}

	return mongo.ErrNoDocuments
}

func (f *fakeCartRepo) PullSize(_ context.Context, cartID, variantID primitive.ObjectID, size models.Size) error {
	if cartID != f.cart.ID {
		return mongo.ErrNoDocuments
	}

	for i, line := range f.cart.Products {
		if line.Variant != variantID {
			continue
		}

		kept := make([]models.SizeQuantity, 0, len(line.Quantity))

		for _, entry := range line.Quantity {
			if entry.Size != size {
				kept = append(kept, entry)
			}
		}

		f.cart.Products[i].Quantity = kept

		return nil
	}

	return mongo.ErrNoDocuments
}

func (f *fakeCartRepo) PullLine(_ context.Context, cartID, variantID primitive.ObjectID) error {
	if cartID != f.cart.ID {
		return mongo.ErrNoDocuments
	}

	kept := make([]models.CartLine, 0, len(f.cart.Products))

	for _, line := range f.cart.Products {
		if line.Variant != variantID {
			kept = append(kept, line)
		}
	}

	f.cart.Products = kept

	return nil
}

func (f *fakeCartRepo) SetTotalPrice(_ context.Context, cartID primitive.ObjectID, total float64) error {
	if cartID != f.cart.ID {
		return mongo.ErrNoDocuments
	}

	f.cart.TotalPrice = total

	return nil
}

func TestCartFlows(t *testing.T) {
	ctx := context.Background()

	t.Run("Add then remove restores the previous lines", func(t *testing.T) {
		// Arrange: one line already in the cart, a second variant to add.
		cartID := primitive.NewObjectID()
		keptVariantID := primitive.NewObjectID()
		addedVariantID := primitive.NewObjectID()

		cartRepo := &fakeCartRepo{cart: models.Cart{
			ID: cartID,
			Products: []models.CartLine{
				{Variant: keptVariantID, Quantity: []models.SizeQuantity{{Size: models.SizeS, Quantity: 1}}},
			},
			TotalPrice: 25,
		}}

		productRepo := repository.NewMockProductRepository()
		productRepo.On("GetVariantSizeStock", mock.Anything, addedVariantID, models.SizeM).
			Return(sellableVariant(addedVariantID, models.SizeM, 10), nil)
		productRepo.On("GetVariantsByIDs", mock.Anything, mock.Anything).
			Return([]models.Variant{
				{ID: keptVariantID, OriginalPrice: 25},
				{ID: addedVariantID, OriginalPrice: 40},
			}, nil)

		svc := service.NewCartService(cartRepo, productRepo, noopCache{})

		before, err := svc.GetCart(ctx, cartID)
		require.NoError(t, err)

		// Act
		mid, err := svc.AddToCart(ctx, cartID, &models.AddToCartRequest{VariantID: addedVariantID.Hex(), Size: models.SizeM, Quantity: 2})
		require.NoError(t, err)

		after, err := svc.RemoveFromCart(ctx, cartID, addedVariantID, &models.RemoveFromCartRequest{Size: models.SizeM})
		require.NoError(t, err)

		// Assert: the add was visible, the remove undid it completely.
		assert.Len(t, mid.Products, 2)
		assert.Equal(t, float64(105), mid.TotalPrice)
		assert.Equal(t, before.Products, after.Products)
		assert.Equal(t, float64(25), after.TotalPrice)
	})

	t.Run("Repeated reads return the same view", func(t *testing.T) {
		// Arrange
		cartID := primitive.NewObjectID()
		variantID := primitive.NewObjectID()

		cartRepo := &fakeCartRepo{cart: models.Cart{
			ID: cartID,
			Products: []models.CartLine{
				{Variant: variantID, Quantity: []models.SizeQuantity{{Size: models.SizeM, Quantity: 2}}},
			},
			TotalPrice: 79.98,
		}}

		svc := service.NewCartService(cartRepo, repository.NewMockProductRepository(), noopCache{})

		// Act
		first, err := svc.GetCart(ctx, cartID)
		require.NoError(t, err)

		second, err := svc.GetCart(ctx, cartID)
		require.NoError(t, err)

		// Assert
		assert.Equal(t, first, second)
		assert.Equal(t, 79.98, first.TotalPrice)
	})
}
