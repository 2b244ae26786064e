package repository

import (
	"context"
	"fmt"

	"github.com/modishwear/modish-backend/internal/models"
	"github.com/modishwear/modish-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LineState classifies how a (variant, size) pair sits in a cart.
type LineState int

const (
	LineAbsent LineState = iota
	LineWithoutSize
	LineWithSize
)

// LineLocation pins down a size entry inside a variant's cart line so a
// later update can target the exact position it saw. Quantity is only
// meaningful for LineWithSize.
type LineLocation struct {
	State     LineState
	SizeIndex int
	Quantity  int
	SizeCount int
}

type CartRepository interface {
	GetCart(ctx context.Context, cartID primitive.ObjectID) (*models.Cart, error)
	FindLine(ctx context.Context, cartID, variantID primitive.ObjectID, size models.Size) (*LineLocation, error)
	AddLine(ctx context.Context, cartID primitive.ObjectID, line models.CartLine) error
	AddSizeToLine(ctx context.Context, cartID, variantID primitive.ObjectID, entry models.SizeQuantity) error
	IncQuantityAt(ctx context.Context, cartID, variantID primitive.ObjectID, loc *LineLocation, size models.Size, delta int) error
	PullSize(ctx context.Context, cartID, variantID primitive.ObjectID, size models.Size) error
	PullLine(ctx context.Context, cartID, variantID primitive.ObjectID) error
	SetTotalPrice(ctx context.Context, cartID primitive.ObjectID, total float64) error
}

type cartRepository struct {
	carts *mongo.Collection
}

func NewCartRepo(db *Database) CartRepository {
	return &cartRepository{carts: db.Carts}
}

func (r *cartRepository) GetCart(ctx context.Context, cartID primitive.ObjectID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cart := &models.Cart{}

	err := r.carts.FindOne(dbCtx, bson.M{"_id": cartID}).Decode(cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}

		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}

	if cart.Products == nil {
		cart.Products = []models.CartLine{}
	}

	return cart, nil
}

// FindLine fetches only the variant's line through an $elemMatch projection,
// so locating a size entry never pulls the rest of the cart over the wire.
// An empty projection means the cart exists but carries no such line.
func (r *cartRepository) FindLine(ctx context.Context, cartID, variantID primitive.ObjectID, size models.Size) (*LineLocation, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{
		"products": bson.M{"$elemMatch": bson.M{"variant": variantID}},
	})

	cart := &models.Cart{}

	err := r.carts.FindOne(dbCtx, bson.M{"_id": cartID}, opts).Decode(cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}

		return nil, fmt.Errorf("failed to locate cart line: %w", err)
	}

	if len(cart.Products) == 0 {
		return &LineLocation{State: LineAbsent, SizeIndex: -1}, nil
	}

	line := cart.Products[0]
	loc := &LineLocation{State: LineWithoutSize, SizeIndex: -1, SizeCount: len(line.Quantity)}

	for j, entry := range line.Quantity {
		if entry.Size == size {
			loc.State = LineWithSize
			loc.SizeIndex = j
			loc.Quantity = entry.Quantity

			break
		}
	}

	return loc, nil
}

func (r *cartRepository) AddLine(ctx context.Context, cartID primitive.ObjectID, line models.CartLine) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.carts.UpdateOne(dbCtx,
		bson.M{"_id": cartID, "products.variant": bson.M{"$ne": line.Variant}},
		bson.M{"$push": bson.M{"products": line}},
	)
	if err != nil {
		return fmt.Errorf("failed to add cart line: %w", err)
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

// AddSizeToLine appends a size entry to the existing variant line. The
// $addToSet on the matched position keeps the entry unique if the same
// request lands twice.
func (r *cartRepository) AddSizeToLine(ctx context.Context, cartID, variantID primitive.ObjectID, entry models.SizeQuantity) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.carts.UpdateOne(dbCtx,
		bson.M{
			"_id": cartID,
			"products": bson.M{"$elemMatch": bson.M{
				"variant":       variantID,
				"quantity.size": bson.M{"$ne": entry.Size},
			}},
		},
		bson.M{"$addToSet": bson.M{"products.$.quantity": entry}},
	)
	if err != nil {
		return fmt.Errorf("failed to add size to cart line: %w", err)
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

// IncQuantityAt bumps the quantity at the size index the locator resolved.
// The $elemMatch re-asserts the size still sits at that index within the
// variant's line; if the line changed shape since FindLine, the write matches
// nothing and the caller retries.
func (r *cartRepository) IncQuantityAt(ctx context.Context, cartID, variantID primitive.ObjectID, loc *LineLocation, size models.Size, delta int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	entryPath := fmt.Sprintf("quantity.%d", loc.SizeIndex)

	result, err := r.carts.UpdateOne(dbCtx,
		bson.M{
			"_id": cartID,
			"products": bson.M{"$elemMatch": bson.M{
				"variant":           variantID,
				entryPath + ".size": size,
			}},
		},
		bson.M{"$inc": bson.M{"products.$." + entryPath + ".quantity": delta}},
	)
	if err != nil {
		return fmt.Errorf("failed to update cart quantity: %w", err)
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

// PullSize removes one size entry from the variant line.
func (r *cartRepository) PullSize(ctx context.Context, cartID, variantID primitive.ObjectID, size models.Size) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.carts.UpdateOne(dbCtx,
		bson.M{"_id": cartID, "products.variant": variantID},
		bson.M{"$pull": bson.M{"products.$.quantity": bson.M{"size": size}}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove size from cart line: %w", err)
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

// PullLine removes the whole variant line.
func (r *cartRepository) PullLine(ctx context.Context, cartID, variantID primitive.ObjectID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.carts.UpdateOne(dbCtx,
		bson.M{"_id": cartID},
		bson.M{"$pull": bson.M{"products": bson.M{"variant": variantID}}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove cart line: %w", err)
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *cartRepository) SetTotalPrice(ctx context.Context, cartID primitive.ObjectID, total float64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.carts.UpdateOne(dbCtx,
		bson.M{"_id": cartID},
		bson.M{"$set": bson.M{"totalPrice": total}},
	)
	if err != nil {
		return fmt.Errorf("failed to set cart total: %w", err)
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
