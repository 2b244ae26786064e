package search

import (
	"time"

	"github.com/modishwear/modish-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// ProductFilter is the canonical product-search input. Every field is
// optional; a zero/nil field contributes no predicate at all.
type ProductFilter struct {
	Name         string
	Category     string
	SubCategory  string
	Status       models.ProductStatus
	Rating       *float64
	Color        string
	OnSale       *bool
	InStock      *bool
	MinPrice     *float64
	MaxPrice     *float64
	MinCost      *float64
	MaxCost      *float64
	UnitsSold    string
	QuantityLeft string
	Sizes        []models.Size
	SortField    string
	SortOrder    string
}

// productClauses collects the predicates on fields intrinsic to the product
// document, evaluated before the variant join.
func (f *ProductFilter) productClauses() bson.D {
	clauses := bson.D{}

	if f.Status != "" {
		clauses = append(clauses, bson.E{Key: "status", Value: f.Status})
	}

	if f.Category != "" {
		clauses = append(clauses, bson.E{Key: "category", Value: f.Category})
	}

	if f.SubCategory != "" {
		clauses = append(clauses, bson.E{Key: "subCategory", Value: f.SubCategory})
	}

	if f.Rating != nil {
		clauses = append(clauses, bson.E{Key: "rating", Value: bson.D{{Key: "$gte", Value: *f.Rating}}})
	}

	return clauses
}

// variantClauses collects the predicates that only exist after the variant
// join and the price derivation, so they must be matched after both.
func (f *ProductFilter) variantClauses() bson.D {
	clauses := bson.D{}

	if f.Color != "" {
		clauses = append(clauses, bson.E{Key: "variant.color", Value: f.Color})
	}

	if f.OnSale != nil {
		clauses = append(clauses, bson.E{Key: "variant.isOnSale", Value: *f.OnSale})
	}

	if f.InStock != nil {
		status := models.StockStatusOutOfStock
		if *f.InStock {
			status = models.StockStatusInStock
		}

		clauses = append(clauses, bson.E{Key: "variant.stockStatus", Value: status})
	}

	// Price bounds apply to the derived effective price, each one
	// independently optional.
	if r := rangeClause(f.MinPrice, f.MaxPrice); len(r) > 0 {
		clauses = append(clauses, bson.E{Key: "price", Value: r})
	}

	if r := rangeClause(f.MinCost, f.MaxCost); len(r) > 0 {
		clauses = append(clauses, bson.E{Key: "variant.cost", Value: r})
	}

	if f.UnitsSold != "" {
		clauses = append(clauses, bson.E{Key: "variant.unitsSold", Value: UnitsSoldRange(f.UnitsSold).clause()})
	}

	if f.QuantityLeft != "" {
		if r, ok := QuantityLeftRange(f.QuantityLeft); ok {
			clauses = append(clauses, bson.E{Key: "variant.totalQuantity", Value: r.clause()})
		}
	}

	return clauses
}

// OrderFilter is the canonical order-search input. Only completed orders are
// ever searched; the remaining fields are optional.
type OrderFilter struct {
	RecipientName  string
	DeliveryStatus models.DeliveryStatus
	Country        string
	CreatedAfter   *time.Time
	MinPrice       *float64
	MaxPrice       *float64
	MinProfit      *float64
	MaxProfit      *float64
}

func (f *OrderFilter) matchClauses() bson.D {
	clauses := bson.D{{Key: "paymentStatus", Value: models.PaymentStatusComplete}}

	if f.CreatedAfter != nil {
		clauses = append(clauses, bson.E{Key: "createdAt", Value: bson.D{{Key: "$gte", Value: *f.CreatedAfter}}})
	}

	if f.DeliveryStatus != "" {
		clauses = append(clauses, bson.E{Key: "deliveryStatus", Value: f.DeliveryStatus})
	}

	if f.Country != "" {
		clauses = append(clauses, bson.E{Key: "country", Value: f.Country})
	}

	if r := rangeClause(f.MinPrice, f.MaxPrice); len(r) > 0 {
		clauses = append(clauses, bson.E{Key: "totalPrice", Value: r})
	}

	return clauses
}

// profitClauses builds the derived profit (totalPrice - totalCost) match.
// Each bound is an independent presence check; supplying only one bound
// leaves the other side open.
func (f *OrderFilter) profitClauses() (bson.D, bool) {
	if f.MinProfit == nil && f.MaxProfit == nil {
		return nil, false
	}

	profit := bson.D{{Key: "$subtract", Value: bson.A{"$totalPrice", "$totalCost"}}}
	conds := bson.A{}

	if f.MinProfit != nil {
		conds = append(conds, bson.D{{Key: "$gte", Value: bson.A{profit, *f.MinProfit}}})
	}

	if f.MaxProfit != nil {
		conds = append(conds, bson.D{{Key: "$lte", Value: bson.A{profit, *f.MaxProfit}}})
	}

	return bson.D{{Key: "$expr", Value: bson.D{{Key: "$and", Value: conds}}}}, true
}

func rangeClause(minVal, maxVal *float64) bson.D {
	r := bson.D{}

	if minVal != nil {
		r = append(r, bson.E{Key: "$gte", Value: *minVal})
	}

	if maxVal != nil {
		r = append(r, bson.E{Key: "$lte", Value: *maxVal})
	}

	return r
}
