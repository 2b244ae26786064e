package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Size string

const (
	SizeXXS     Size = "XXS"
	SizeXS      Size = "XS"
	SizeS       Size = "S"
	SizeM       Size = "M"
	SizeL       Size = "L"
	SizeXL      Size = "XL"
	SizeXXL     Size = "XXL"
	SizeXXXL    Size = "XXXL"
	SizeOneSize Size = "One-Size"
)

type ProductStatus string

type StockStatus string

const (
	StatusActive   ProductStatus = "Active"
	StatusInactive ProductStatus = "Inactive"

	StockStatusInStock    StockStatus = "In Stock"
	StockStatusOutOfStock StockStatus = "Out of Stock"
)

type Product struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	Gender      string               `bson:"gender" json:"gender"`
	Category    string               `bson:"category" json:"category"`
	SubCategory string               `bson:"subCategory" json:"sub_category"`
	Rating      float64              `bson:"rating" json:"rating"`
	Status      ProductStatus        `bson:"status" json:"status"`
	Variants    []primitive.ObjectID `bson:"variants" json:"variants"`
	CreatedAt   time.Time            `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updated_at"`
}

type SaleOptions struct {
	StartDate          time.Time `bson:"startDate" json:"start_date"`
	EndDate            time.Time `bson:"endDate" json:"end_date"`
	DiscountPercentage float64   `bson:"discountPercentage" json:"discount_percentage"`
	SalePrice          float64   `bson:"salePrice" json:"sale_price"`
}

// SizeStock is one per-size stock record on a variant.
type SizeStock struct {
	Size         Size `bson:"size" json:"size"`
	QuantityLeft int  `bson:"quantityLeft" json:"quantity_left"`
}

// Variant owns per-size stock and pricing for one color/style of a product.
// SaleOptions must be nil whenever IsOnSale is false.
type Variant struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	ProductID     primitive.ObjectID   `bson:"product" json:"product_id"`
	Color         string               `bson:"color" json:"color"`
	Quantity      []SizeStock          `bson:"quantity" json:"quantity"`
	TotalQuantity int                  `bson:"totalQuantity" json:"total_quantity"`
	OriginalPrice float64              `bson:"originalPrice" json:"original_price"`
	Cost          float64              `bson:"cost" json:"cost"`
	IsOnSale      bool                 `bson:"isOnSale" json:"is_on_sale"`
	SaleOptions   *SaleOptions         `bson:"saleOptions,omitempty" json:"sale_options,omitempty"`
	UnitsSold     int64                `bson:"unitsSold" json:"units_sold"`
	StockStatus   StockStatus          `bson:"stockStatus" json:"stock_status"`
	Status        ProductStatus        `bson:"status" json:"status"`
	Images        []primitive.ObjectID `bson:"images" json:"images"`
}

// EffectivePrice is the sale price while the variant is on sale, the
// original price otherwise. It is always computed, never read from storage.
func (v *Variant) EffectivePrice() float64 {
	if v.IsOnSale && v.SaleOptions != nil {
		return v.SaleOptions.SalePrice
	}

	return v.OriginalPrice
}

type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"required,max=600"`
	Gender      string `json:"gender" validate:"required,oneof=Men Women Unisex Kids"`
	Category    string `json:"category" validate:"required,oneof=Jackets Pullover Suits Pants T-Shirts Accessories"`
	SubCategory string `json:"sub_category,omitempty"`
}

type CreateVariantRequest struct {
	Color         string                   `json:"color" validate:"required,hexcolor"`
	Quantity      []SizeStockRequest       `json:"quantity" validate:"required,min=1,dive"`
	OriginalPrice float64                  `json:"original_price" validate:"required,gt=0"`
	Cost          float64                  `json:"cost" validate:"gte=0"`
	IsOnSale      bool                     `json:"is_on_sale"`
	SaleOptions   *CreateSaleOptionsInput  `json:"sale_options,omitempty"`
	Images        []string                 `json:"images" validate:"required,min=1,dive,hexadecimal,len=24"`
}

type SizeStockRequest struct {
	Size         Size `json:"size" validate:"required,oneof=XXS XS S M L XL XXL XXXL One-Size"`
	QuantityLeft int  `json:"quantity_left" validate:"gte=0"`
}

type CreateSaleOptionsInput struct {
	StartDate          time.Time `json:"start_date" validate:"required"`
	EndDate            time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
	DiscountPercentage float64   `json:"discount_percentage" validate:"required,min=1,max=99"`
}

type UpdateStockRequest struct {
	Stock []SizeStockRequest `json:"stock" validate:"required,min=1,dive"`
}

type UpdateSaleRequest struct {
	IsOnSale    bool                    `json:"is_on_sale"`
	SaleOptions *CreateSaleOptionsInput `json:"sale_options,omitempty"`
}
