package service

import (
	"context"
	"math"

	"github.com/microcosm-cc/bluemonday"
	"github.com/modishwear/modish-backend/internal/cache"
	"github.com/modishwear/modish-backend/internal/errors"
	"github.com/modishwear/modish-backend/internal/models"
	repository "github.com/modishwear/modish-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	CreateVariant(ctx context.Context, productID primitive.ObjectID, req *models.CreateVariantRequest) (*models.Variant, error)
	GetVariant(ctx context.Context, id primitive.ObjectID) (*models.Variant, error)
	UpdateStock(ctx context.Context, variantID primitive.ObjectID, req *models.UpdateStockRequest) error
	UpdateSale(ctx context.Context, variantID primitive.ObjectID, req *models.UpdateSaleRequest) (*models.Variant, error)
}

type productService struct {
	repo      repository.ProductRepository
	cache     cache.Cache
	sanitizer *bluemonday.Policy
}

func NewProductService(repo repository.ProductRepository, cache cache.Cache) ProductService {
	return &productService{
		repo:      repo,
		cache:     cache,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	product := &models.Product{
		Name:        s.sanitizer.Sanitize(req.Name),
		Description: s.sanitizer.Sanitize(req.Description),
		Gender:      req.Gender,
		Category:    req.Category,
		SubCategory: s.sanitizer.Sanitize(req.SubCategory),
		Status:      models.StatusActive,
		Variants:    []primitive.ObjectID{},
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {

	cacheKey := cache.Key(cache.ProductKeyPrefix, id.Hex())

	product := &models.Product{}
	if found, err := s.cache.Get(ctx, cacheKey, product); err == nil && found {
		return product, nil
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	_ = s.cache.Set(ctx, cacheKey, product, 0)

	return product, nil
}

// CreateVariant builds the variant from the request, deriving the sale
// price, the stock total, and the stock status rather than trusting the
// caller for any of them.
func (s *productService) CreateVariant(ctx context.Context, productID primitive.ObjectID, req *models.CreateVariantRequest) (*models.Variant, error) {

	if req.IsOnSale && req.SaleOptions == nil {
		return nil, errors.BadRequestError("Sale options are required for a variant on sale")
	}

	if !req.IsOnSale && req.SaleOptions != nil {
		return nil, errors.BadRequestError("Sale options are only allowed for a variant on sale")
	}

	stock := make([]models.SizeStock, 0, len(req.Quantity))
	total := 0

	for _, entry := range req.Quantity {
		stock = append(stock, models.SizeStock{Size: entry.Size, QuantityLeft: entry.QuantityLeft})
		total += entry.QuantityLeft
	}

	images := make([]primitive.ObjectID, 0, len(req.Images))

	for _, raw := range req.Images {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, errors.BadRequestError("Invalid image id")
		}

		images = append(images, id)
	}

	variant := &models.Variant{
		ProductID:     productID,
		Color:         req.Color,
		Quantity:      stock,
		TotalQuantity: total,
		OriginalPrice: req.OriginalPrice,
		Cost:          req.Cost,
		IsOnSale:      req.IsOnSale,
		StockStatus:   stockStatusFor(total),
		Status:        models.StatusActive,
		Images:        images,
	}

	if req.IsOnSale {
		variant.SaleOptions = &models.SaleOptions{
			StartDate:          req.SaleOptions.StartDate,
			EndDate:            req.SaleOptions.EndDate,
			DiscountPercentage: req.SaleOptions.DiscountPercentage,
			SalePrice:          salePrice(req.OriginalPrice, req.SaleOptions.DiscountPercentage),
		}
	}

	if err := s.repo.CreateVariant(ctx, variant); err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	_ = s.cache.Delete(ctx, cache.Key(cache.ProductKeyPrefix, productID.Hex()))

	return variant, nil
}

func (s *productService) GetVariant(ctx context.Context, id primitive.ObjectID) (*models.Variant, error) {

	variant, err := s.repo.GetVariantByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	return variant, nil
}

// UpdateStock replaces the per-size stock list and rederives the total and
// the stock status from it.
func (s *productService) UpdateStock(ctx context.Context, variantID primitive.ObjectID, req *models.UpdateStockRequest) error {

	stock := make([]models.SizeStock, 0, len(req.Stock))
	total := 0

	for _, entry := range req.Stock {
		stock = append(stock, models.SizeStock{Size: entry.Size, QuantityLeft: entry.QuantityLeft})
		total += entry.QuantityLeft
	}

	if err := s.repo.UpdateVariantStock(ctx, variantID, stock, total, stockStatusFor(total)); err != nil {
		return errors.NotFoundError("Product not found").WithError(err)
	}

	_ = s.cache.Delete(ctx, cache.Key(cache.VariantKeyPrefix, variantID.Hex()))

	return nil
}

// UpdateSale toggles the sale flag, deriving the sale price from the stored
// original price when turning a sale on and clearing the options when
// turning it off.
func (s *productService) UpdateSale(ctx context.Context, variantID primitive.ObjectID, req *models.UpdateSaleRequest) (*models.Variant, error) {

	if req.IsOnSale && req.SaleOptions == nil {
		return nil, errors.BadRequestError("Sale options are required for a variant on sale")
	}

	if !req.IsOnSale && req.SaleOptions != nil {
		return nil, errors.BadRequestError("Sale options are only allowed for a variant on sale")
	}

	variant, err := s.repo.GetVariantByID(ctx, variantID)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	variant.IsOnSale = req.IsOnSale
	variant.SaleOptions = nil

	if req.IsOnSale {
		variant.SaleOptions = &models.SaleOptions{
			StartDate:          req.SaleOptions.StartDate,
			EndDate:            req.SaleOptions.EndDate,
			DiscountPercentage: req.SaleOptions.DiscountPercentage,
			SalePrice:          salePrice(variant.OriginalPrice, req.SaleOptions.DiscountPercentage),
		}
	}

	if err := s.repo.UpdateVariantSale(ctx, variantID, variant.IsOnSale, variant.SaleOptions); err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	_ = s.cache.Delete(ctx, cache.Key(cache.VariantKeyPrefix, variantID.Hex()))
	_ = s.cache.Delete(ctx, cache.Key(cache.ProductKeyPrefix, variant.ProductID.Hex()))

	return variant, nil
}

func stockStatusFor(total int) models.StockStatus {
	if total > 0 {
		return models.StockStatusInStock
	}

	return models.StockStatusOutOfStock
}

// salePrice derives the discounted price, rounded to cents.
func salePrice(original, discountPercentage float64) float64 {
	return math.Round(original*(1-discountPercentage/100)*100) / 100
}
