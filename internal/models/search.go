package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SaleOptionsView is the projected sale block on a search row. Every field is
// null when the variant is not on sale.
type SaleOptionsView struct {
	EndDate            *time.Time `bson:"endDate" json:"end_date"`
	DiscountPercentage *float64   `bson:"discountPercentage" json:"discount_percentage"`
	SalePrice          *float64   `bson:"salePrice" json:"sale_price"`
}

// SearchedProduct is one product-per-variant row shaped by the catalog
// pipeline's final projection.
type SearchedProduct struct {
	ID          primitive.ObjectID  `bson:"_id" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Category    string              `bson:"category" json:"category"`
	SubCategory string              `bson:"subCategory" json:"sub_category"`
	Rating      float64             `bson:"rating" json:"rating"`
	Status      ProductStatus       `bson:"status" json:"status"`
	Images      *primitive.ObjectID `bson:"images" json:"images"`
	IsOnSale    bool                `bson:"isOnSale" json:"is_on_sale"`
	StockStatus StockStatus         `bson:"stockStatus" json:"stock_status"`
	SaleOptions SaleOptionsView     `bson:"saleOptions" json:"sale_options"`
}

type TotalCount struct {
	Count int64 `bson:"count" json:"count"`
}

// ProductSearchResult is the paginated envelope for product search. A search
// with no matches yields {result: [], totalCount: {count: 0}}, never absent
// fields.
type ProductSearchResult struct {
	Result     []SearchedProduct `bson:"result" json:"result"`
	TotalCount TotalCount        `bson:"totalCount" json:"totalCount"`
}

func EmptyProductSearchResult() *ProductSearchResult {
	return &ProductSearchResult{
		Result:     []SearchedProduct{},
		TotalCount: TotalCount{Count: 0},
	}
}

// OrderSearchResult is the order-search envelope. Unlike the product shape,
// its count arrives un-flattened and an empty search collapses to a bare
// empty list downstream.
type OrderSearchResult struct {
	Result     []Order      `bson:"result" json:"result"`
	TotalCount []TotalCount `bson:"totalCount" json:"totalCount"`
}

// Empty reports whether the search matched nothing; callers render this as
// an empty list rather than the envelope.
func (r *OrderSearchResult) Empty() bool {
	return len(r.Result) == 0
}
