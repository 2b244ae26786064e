package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/modishwear/modish-backend/internal/models"
	"github.com/modishwear/modish-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	CreateVariant(ctx context.Context, variant *models.Variant) error
	GetVariantByID(ctx context.Context, id primitive.ObjectID) (*models.Variant, error)
	GetVariantSizeStock(ctx context.Context, variantID primitive.ObjectID, size models.Size) (*models.Variant, error)
	GetVariantsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Variant, error)
	UpdateVariantStock(ctx context.Context, variantID primitive.ObjectID, stock []models.SizeStock, total int, status models.StockStatus) error
	UpdateVariantSale(ctx context.Context, variantID primitive.ObjectID, isOnSale bool, sale *models.SaleOptions) error
}

type productRepository struct {
	products *mongo.Collection
	variants *mongo.Collection
}

func NewProductRepo(db *Database) ProductRepository {
	return &productRepository{products: db.Products, variants: db.Variants}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	if product.Variants == nil {
		product.Variants = []primitive.ObjectID{}
	}

	result, err := r.products.InsertOne(dbCtx, product)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	product.ID = result.InsertedID.(primitive.ObjectID)

	return nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	err := r.products.FindOne(dbCtx, bson.M{"_id": id}).Decode(product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}

		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	return product, nil
}

// CreateVariant inserts the variant and registers it on the parent product.
func (r *productRepository) CreateVariant(ctx context.Context, variant *models.Variant) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.variants.InsertOne(dbCtx, variant)
	if err != nil {
		return fmt.Errorf("failed to insert variant: %w", err)
	}

	variant.ID = result.InsertedID.(primitive.ObjectID)

	updateResult, err := r.products.UpdateOne(dbCtx,
		bson.M{"_id": variant.ProductID},
		bson.M{
			"$addToSet": bson.M{"variants": variant.ID},
			"$set":      bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to register variant on product: %w", err)
	}

	if updateResult.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *productRepository) GetVariantByID(ctx context.Context, id primitive.ObjectID) (*models.Variant, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	variant := &models.Variant{}

	err := r.variants.FindOne(dbCtx, bson.M{"_id": id}).Decode(variant)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}

		return nil, fmt.Errorf("failed to fetch variant: %w", err)
	}

	return variant, nil
}

// GetVariantSizeStock fetches only the stock record for one size plus the
// status flags, so the quantity slice holds at most one entry.
func (r *productRepository) GetVariantSizeStock(ctx context.Context, variantID primitive.ObjectID, size models.Size) (*models.Variant, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	projection := bson.M{
		"quantity":    bson.M{"$elemMatch": bson.M{"size": size}},
		"stockStatus": 1,
		"status":      1,
	}

	variant := &models.Variant{}

	err := r.variants.FindOne(dbCtx,
		bson.M{"_id": variantID},
		options.FindOne().SetProjection(projection),
	).Decode(variant)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}

		return nil, fmt.Errorf("failed to fetch variant stock: %w", err)
	}

	return variant, nil
}

func (r *productRepository) GetVariantsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Variant, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cursor, err := r.variants.Find(dbCtx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch variants: %w", err)
	}
	defer cursor.Close(dbCtx)

	var variants []models.Variant

	if err := cursor.All(dbCtx, &variants); err != nil {
		return nil, fmt.Errorf("failed to decode variants: %w", err)
	}

	return variants, nil
}

// UpdateVariantSale flips the sale flag and replaces or clears the sale
// options with it, so the two can never disagree in storage.
func (r *productRepository) UpdateVariantSale(ctx context.Context, variantID primitive.ObjectID, isOnSale bool, sale *models.SaleOptions) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{"isOnSale": isOnSale}}

	if sale != nil {
		update["$set"].(bson.M)["saleOptions"] = sale
	} else {
		update["$unset"] = bson.M{"saleOptions": ""}
	}

	result, err := r.variants.UpdateOne(dbCtx, bson.M{"_id": variantID}, update)
	if err != nil {
		return fmt.Errorf("failed to update variant sale options: %w", err)
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *productRepository) UpdateVariantStock(ctx context.Context, variantID primitive.ObjectID, stock []models.SizeStock, total int, status models.StockStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.variants.UpdateOne(dbCtx,
		bson.M{"_id": variantID},
		bson.M{"$set": bson.M{
			"quantity":      stock,
			"totalQuantity": total,
			"stockStatus":   status,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update variant stock: %w", err)
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
