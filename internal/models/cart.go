package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SizeQuantity is one size entry inside a cart line. Quantity never drops
// below 1; removing a size entry goes through the remove operation instead.
type SizeQuantity struct {
	Size     Size `bson:"size" json:"size"`
	Quantity int  `bson:"quantity" json:"quantity"`
}

// CartLine holds the quantities for a single variant. A cart carries at most
// one line per variant and a line at most one entry per size.
type CartLine struct {
	Variant  primitive.ObjectID `bson:"variant" json:"variant"`
	Quantity []SizeQuantity     `bson:"quantity" json:"quantity"`
}

type Cart struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user" json:"user_id"`
	Products   []CartLine         `bson:"products" json:"products"`
	TotalPrice float64            `bson:"totalPrice" json:"total_price"`
}

// CartView is what every cart operation returns: the current lines plus the
// freshly recomputed total.
type CartView struct {
	Products   []CartLine `json:"products"`
	TotalPrice float64    `json:"total_price"`
}

type AddToCartRequest struct {
	VariantID string `json:"variant_id" validate:"required,hexadecimal,len=24"`
	Size      Size   `json:"size" validate:"required,oneof=XXS XS S M L XL XXL XXXL One-Size"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type UpdateCartQuantityRequest struct {
	Size      Size   `json:"size" validate:"required,oneof=XXS XS S M L XL XXL XXXL One-Size"`
	Operation string `json:"operation" validate:"required,oneof=increment decrement"`
}

type RemoveFromCartRequest struct {
	Size Size `json:"size" validate:"required,oneof=XXS XS S M L XL XXL XXXL One-Size"`
}
