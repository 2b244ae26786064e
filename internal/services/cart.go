package service

import (
	"context"

	"github.com/modishwear/modish-backend/internal/cache"
	"github.com/modishwear/modish-backend/internal/errors"
	"github.com/modishwear/modish-backend/internal/models"
	repository "github.com/modishwear/modish-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartService interface {
	GetCart(ctx context.Context, cartID primitive.ObjectID) (*models.CartView, error)
	AddToCart(ctx context.Context, cartID primitive.ObjectID, req *models.AddToCartRequest) (*models.CartView, error)
	UpdateQuantity(ctx context.Context, cartID, variantID primitive.ObjectID, req *models.UpdateCartQuantityRequest) (*models.CartView, error)
	RemoveFromCart(ctx context.Context, cartID, variantID primitive.ObjectID, req *models.RemoveFromCartRequest) (*models.CartView, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	cache       cache.Cache
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, cache cache.Cache) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo, cache: cache}
}

func (s *cartService) GetCart(ctx context.Context, cartID primitive.ObjectID) (*models.CartView, error) {

	cacheKey := cache.Key(cache.CartKeyPrefix, cartID.Hex())

	view := &models.CartView{}
	if found, err := s.cache.Get(ctx, cacheKey, view); err == nil && found {
		return view, nil
	}

	cart, err := s.cartRepo.GetCart(ctx, cartID)
	if err != nil {
		return nil, errors.NotFoundError("Cart not found").WithError(err)
	}

	view = &models.CartView{Products: cart.Products, TotalPrice: cart.TotalPrice}

	_ = s.cache.Set(ctx, cacheKey, view, 0)

	return view, nil
}

// AddToCart puts a quantity of one size of one variant into the cart,
// growing whichever level is missing: the size entry on an existing line, or
// a whole new line.
func (s *cartService) AddToCart(ctx context.Context, cartID primitive.ObjectID, req *models.AddToCartRequest) (*models.CartView, error) {

	variantID, err := primitive.ObjectIDFromHex(req.VariantID)
	if err != nil {
		return nil, errors.BadRequestError("Invalid variant id")
	}

	variant, err := s.productRepo.GetVariantSizeStock(ctx, variantID, req.Size)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if err := validateSellable(variant); err != nil {
		return nil, err
	}

	quantityLeft, err := sizeStock(variant)
	if err != nil {
		return nil, err
	}

	loc, err := s.cartRepo.FindLine(ctx, cartID, variantID, req.Size)
	if err != nil {
		return nil, errors.NotFoundError("Cart not found").WithError(err)
	}

	switch loc.State {
	case repository.LineWithSize:
		if err := validateWithinStock(loc.Quantity+req.Quantity, quantityLeft); err != nil {
			return nil, err
		}

		err = s.cartRepo.IncQuantityAt(ctx, cartID, variantID, loc, req.Size, req.Quantity)

	case repository.LineWithoutSize:
		if err := validateWithinStock(req.Quantity, quantityLeft); err != nil {
			return nil, err
		}

		err = s.cartRepo.AddSizeToLine(ctx, cartID, variantID, models.SizeQuantity{Size: req.Size, Quantity: req.Quantity})

	default:
		if err := validateWithinStock(req.Quantity, quantityLeft); err != nil {
			return nil, err
		}

		line := models.CartLine{
			Variant:  variantID,
			Quantity: []models.SizeQuantity{{Size: req.Size, Quantity: req.Quantity}},
		}
		err = s.cartRepo.AddLine(ctx, cartID, line)
	}

	if err != nil {
		return nil, errors.DatabaseError("Failed to update cart").WithError(err)
	}

	return s.recomputeTotal(ctx, cartID)
}

// UpdateQuantity increments or decrements one size entry by exactly one.
func (s *cartService) UpdateQuantity(ctx context.Context, cartID, variantID primitive.ObjectID, req *models.UpdateCartQuantityRequest) (*models.CartView, error) {

	loc, err := s.cartRepo.FindLine(ctx, cartID, variantID, req.Size)
	if err != nil {
		return nil, errors.NotFoundError("Cart not found").WithError(err)
	}

	if loc.State != repository.LineWithSize {
		return nil, errors.NotFoundError("Cart has no matching product.")
	}

	var delta int

	if req.Operation == "increment" {
		variant, err := s.productRepo.GetVariantSizeStock(ctx, variantID, req.Size)
		if err != nil {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		if err := validateSellable(variant); err != nil {
			return nil, err
		}

		quantityLeft, err := sizeStock(variant)
		if err != nil {
			return nil, err
		}

		if err := validateWithinStock(loc.Quantity+1, quantityLeft); err != nil {
			return nil, err
		}

		delta = 1
	} else {
		if err := validateDecrement(loc.Quantity); err != nil {
			return nil, err
		}

		delta = -1
	}

	if err := s.cartRepo.IncQuantityAt(ctx, cartID, variantID, loc, req.Size, delta); err != nil {
		return nil, errors.DatabaseError("Failed to update cart").WithError(err)
	}

	return s.recomputeTotal(ctx, cartID)
}

// RemoveFromCart drops one size entry, and the whole line when that entry
// was its last.
func (s *cartService) RemoveFromCart(ctx context.Context, cartID, variantID primitive.ObjectID, req *models.RemoveFromCartRequest) (*models.CartView, error) {

	loc, err := s.cartRepo.FindLine(ctx, cartID, variantID, req.Size)
	if err != nil {
		return nil, errors.NotFoundError("Cart not found").WithError(err)
	}

	if loc.State != repository.LineWithSize {
		return nil, errors.NotFoundError("Cart has no matching product.")
	}

	if loc.SizeCount <= 1 {
		err = s.cartRepo.PullLine(ctx, cartID, variantID)
	} else {
		err = s.cartRepo.PullSize(ctx, cartID, variantID, req.Size)
	}

	if err != nil {
		return nil, errors.DatabaseError("Failed to update cart").WithError(err)
	}

	return s.recomputeTotal(ctx, cartID)
}

// recomputeTotal re-reads the cart after a mutation, prices every line at
// the variant's current effective price, and persists the new total. The
// returned view always reflects the stored total.
func (s *cartService) recomputeTotal(ctx context.Context, cartID primitive.ObjectID) (*models.CartView, error) {

	cart, err := s.cartRepo.GetCart(ctx, cartID)
	if err != nil {
		return nil, errors.NotFoundError("Cart not found").WithError(err)
	}

	total := 0.0

	if len(cart.Products) > 0 {
		ids := make([]primitive.ObjectID, 0, len(cart.Products))
		for _, line := range cart.Products {
			ids = append(ids, line.Variant)
		}

		variants, err := s.productRepo.GetVariantsByIDs(ctx, ids)
		if err != nil {
			return nil, errors.DatabaseError("Failed to price cart").WithError(err)
		}

		prices := make(map[primitive.ObjectID]float64, len(variants))
		for i := range variants {
			prices[variants[i].ID] = variants[i].EffectivePrice()
		}

		for _, line := range cart.Products {
			for _, entry := range line.Quantity {
				total += float64(entry.Quantity) * prices[line.Variant]
			}
		}
	}

	if err := s.cartRepo.SetTotalPrice(ctx, cartID, total); err != nil {
		return nil, errors.DatabaseError("Failed to update cart total").WithError(err)
	}

	_ = s.cache.Delete(ctx, cache.Key(cache.CartKeyPrefix, cartID.Hex()))

	return &models.CartView{Products: cart.Products, TotalPrice: total}, nil
}
