// Package search builds the catalog and order aggregation pipelines from
// loosely-populated filter structs. Construction is pure: stages are typed
// values rendered to bson documents only when compiled, which keeps the
// builder testable without a running database.
package search

import (
	"github.com/modishwear/modish-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	VariantCollection = "productvariants"

	// DefaultLimit caps a page when the caller supplies none.
	DefaultLimit = int64(10)
)

// Stage is one logical pipeline step. A stage may render to more than one
// bson document (a join renders lookup + unwind).
type Stage interface {
	Documents() []bson.D
}

// Compile flattens an ordered stage list into a driver pipeline.
func Compile(stages []Stage) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	for _, stage := range stages {
		pipeline = append(pipeline, stage.Documents()...)
	}

	return pipeline
}

// SearchStage is the optional full-text stage. It must come first: the
// storage engine only accepts $search at the head of a pipeline, and it is
// the most selective stage.
type SearchStage struct {
	Query string
	Paths []string
}

func (s SearchStage) Documents() []bson.D {
	return []bson.D{{{Key: "$search", Value: bson.D{
		{Key: "text", Value: bson.D{
			{Key: "query", Value: s.Query},
			{Key: "path", Value: s.Paths},
		}},
	}}}}
}

type MatchStage struct {
	Predicate bson.D
}

func (s MatchStage) Documents() []bson.D {
	return []bson.D{{{Key: "$match", Value: s.Predicate}}}
}

// JoinStage joins a foreign collection and flattens the result to one row
// per joined document (fan-out join).
type JoinStage struct {
	From         string
	LocalField   string
	ForeignField string
	As           string
}

func (s JoinStage) Documents() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: s.From},
			{Key: "localField", Value: s.LocalField},
			{Key: "foreignField", Value: s.ForeignField},
			{Key: "as", Value: s.As},
		}}},
		{{Key: "$unwind", Value: bson.D{{Key: "path", Value: "$" + s.As}}}},
	}
}

// DeriveStage computes the effective price: the sale price while the variant
// is on sale, the original price otherwise. Later price filters and sorts
// read this field, so it must precede the variant-level match.
type DeriveStage struct{}

func (DeriveStage) Documents() []bson.D {
	return []bson.D{{{Key: "$addFields", Value: bson.D{
		{Key: "price", Value: bson.D{{Key: "$switch", Value: bson.D{
			{Key: "branches", Value: bson.A{
				bson.D{
					{Key: "case", Value: bson.D{{Key: "$eq", Value: bson.A{"$variant.isOnSale", true}}}},
					{Key: "then", Value: "$variant.saleOptions.salePrice"},
				},
				bson.D{
					{Key: "case", Value: bson.D{{Key: "$eq", Value: bson.A{"$variant.isOnSale", false}}}},
					{Key: "then", Value: "$variant.originalPrice"},
				},
			}},
			{Key: "default", Value: 0},
		}}}},
	}}}}
}

// GroupStage narrows rows to the requested sizes: flatten the per-size stock
// list, keep matching sizes, then re-aggregate back to one row per variant
// carrying the first-encountered scalar fields forward.
type GroupStage struct {
	Sizes []models.Size
}

func (s GroupStage) Documents() []bson.D {
	return []bson.D{
		{{Key: "$unwind", Value: bson.D{{Key: "path", Value: "$variant.quantity"}}}},
		{{Key: "$match", Value: bson.D{
			{Key: "variant.quantity.size", Value: bson.D{{Key: "$in", Value: s.Sizes}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$variant._id"},
			{Key: "variant", Value: bson.D{{Key: "$first", Value: bson.D{
				{Key: "_id", Value: "$variant._id"},
				{Key: "isOnSale", Value: "$variant.isOnSale"},
				{Key: "saleOptions", Value: bson.D{
					{Key: "endDate", Value: "$variant.saleOptions.endDate"},
					{Key: "discountPercentage", Value: "$variant.saleOptions.discountPercentage"},
					{Key: "salePrice", Value: "$variant.saleOptions.salePrice"},
				}},
				{Key: "images", Value: "$variant.images"},
				{Key: "stockStatus", Value: "$variant.stockStatus"},
				{Key: "status", Value: "$variant.status"},
			}}}},
			{Key: "name", Value: bson.D{{Key: "$first", Value: "$name"}}},
			{Key: "category", Value: bson.D{{Key: "$first", Value: "$category"}}},
			{Key: "subCategory", Value: bson.D{{Key: "$first", Value: "$subCategory"}}},
			{Key: "rating", Value: bson.D{{Key: "$first", Value: "$rating"}}},
			{Key: "price", Value: bson.D{{Key: "$first", Value: "$price"}}},
		}}},
	}
}

type SortStage struct {
	Field      string
	Descending bool
}

func (s SortStage) Documents() []bson.D {
	order := 1
	if s.Descending {
		order = -1
	}

	return []bson.D{{{Key: "$sort", Value: bson.D{{Key: s.Field, Value: order}}}}}
}

// ProjectStage shapes the final search row. Sale fields resolve to null
// whenever the variant is not on sale.
type ProjectStage struct{}

func (ProjectStage) Documents() []bson.D {
	return []bson.D{{{Key: "$project", Value: bson.D{
		{Key: "_id", Value: "$variant._id"},
		{Key: "name", Value: 1},
		{Key: "category", Value: 1},
		{Key: "subCategory", Value: 1},
		{Key: "rating", Value: 1},
		{Key: "status", Value: "$variant.status"},
		{Key: "images", Value: bson.D{{Key: "$first", Value: "$variant.images"}}},
		{Key: "isOnSale", Value: "$variant.isOnSale"},
		{Key: "stockStatus", Value: "$variant.stockStatus"},
		{Key: "saleOptions", Value: bson.D{
			{Key: "endDate", Value: saleField("endDate")},
			{Key: "discountPercentage", Value: saleField("discountPercentage")},
			{Key: "salePrice", Value: saleField("salePrice")},
		}},
	}}}}
}

func saleField(name string) bson.D {
	return bson.D{{Key: "$cond", Value: bson.D{
		{Key: "if", Value: bson.D{{Key: "$eq", Value: bson.A{"$variant.isOnSale", true}}}},
		{Key: "then", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$variant.saleOptions." + name, nil}}}},
		{Key: "else", Value: nil},
	}}}
}

// PaginateStage branches the row stream into a full count and one page, both
// computed from the same upstream rows in a single execution. FlattenCount
// additionally unwinds the count array so it decodes as a single document;
// the order pipeline leaves it un-flattened.
type PaginateStage struct {
	Skip         int64
	Limit        int64
	FlattenCount bool
}

func (s PaginateStage) Documents() []bson.D {
	limit := s.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	docs := []bson.D{{{Key: "$facet", Value: bson.D{
		{Key: "totalCount", Value: bson.A{bson.D{{Key: "$count", Value: "count"}}}},
		{Key: "result", Value: bson.A{
			bson.D{{Key: "$skip", Value: s.Skip}},
			bson.D{{Key: "$limit", Value: limit}},
		}},
	}}}}

	if s.FlattenCount {
		docs = append(docs, bson.D{{Key: "$unwind", Value: bson.D{{Key: "path", Value: "$totalCount"}}}})
	}

	return docs
}

// sortKeys maps the public sort fields onto pipeline fields. Popularity
// sorts on the joined variant's units-sold counter.
var sortKeys = map[string]string{
	"rating":     "rating",
	"price":      "price",
	"popularity": "variant.unitsSold",
}

// BuildProductPipeline assembles the product search stages. The order is
// fixed: text search, product match, variant join, price derivation, variant
// match, optional size regroup, optional sort, projection, pagination.
// Price filtering before derivation would silently read the raw original
// price, so the relative order of DeriveStage and the variant match is part
// of the contract.
func BuildProductPipeline(f ProductFilter, skip, limit int64) []Stage {
	stages := []Stage{}

	if f.Name != "" {
		stages = append(stages, SearchStage{Query: f.Name, Paths: []string{"name", "description"}})
	}

	if clauses := f.productClauses(); len(clauses) > 0 {
		stages = append(stages, MatchStage{Predicate: clauses})
	}

	stages = append(stages,
		JoinStage{From: VariantCollection, LocalField: "variants", ForeignField: "_id", As: "variant"},
		DeriveStage{},
	)

	if clauses := f.variantClauses(); len(clauses) > 0 {
		stages = append(stages, MatchStage{Predicate: clauses})
	}

	if len(f.Sizes) > 0 {
		stages = append(stages, GroupStage{Sizes: f.Sizes})
	}

	if field, ok := sortKeys[f.SortField]; ok {
		// Ascending unless a descending order was asked for explicitly.
		stages = append(stages, SortStage{Field: field, Descending: f.SortOrder == "desc"})
	}

	stages = append(stages,
		ProjectStage{},
		PaginateStage{Skip: skip, Limit: limit, FlattenCount: true},
	)

	return stages
}

// BuildOrderPipeline assembles the admin order search: same skeleton as the
// product pipeline minus join and price derivation.
func BuildOrderPipeline(f OrderFilter, skip, limit int64) []Stage {
	stages := []Stage{}

	if f.RecipientName != "" {
		stages = append(stages, SearchStage{Query: f.RecipientName, Paths: []string{"name"}})
	}

	stages = append(stages, MatchStage{Predicate: f.matchClauses()})

	if clauses, ok := f.profitClauses(); ok {
		stages = append(stages, MatchStage{Predicate: clauses})
	}

	stages = append(stages, PaginateStage{Skip: skip, Limit: limit})

	return stages
}
