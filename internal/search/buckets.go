package search

import "go.mongodb.org/mongo-driver/bson"

// Range is an inclusive numeric range. GT alone marks the open-ended top
// bucket.
type Range struct {
	GTE *int
	LTE *int
	GT  *int
}

func (r Range) clause() bson.D {
	d := bson.D{}

	if r.GTE != nil {
		d = append(d, bson.E{Key: "$gte", Value: *r.GTE})
	}

	if r.LTE != nil {
		d = append(d, bson.E{Key: "$lte", Value: *r.LTE})
	}

	if r.GT != nil {
		d = append(d, bson.E{Key: "$gt", Value: *r.GT})
	}

	return d
}

func intPtr(v int) *int {
	return &v
}

// UnitsSoldRange resolves a units-sold bucket label to concrete bounds. An
// unrecognized label falls back to {gt: 0}; admin dashboards depend on that
// fallback, so it must not be turned into "no clause".
func UnitsSoldRange(label string) Range {
	switch label {
	case "0-50":
		return Range{GTE: intPtr(0), LTE: intPtr(50)}
	case "0-100":
		return Range{GTE: intPtr(0), LTE: intPtr(100)}
	case "0-500":
		return Range{GTE: intPtr(0), LTE: intPtr(500)}
	case "500-1000":
		return Range{GTE: intPtr(500), LTE: intPtr(1000)}
	case "1000-10000":
		return Range{GTE: intPtr(1000), LTE: intPtr(10000)}
	case "10000":
		return Range{GT: intPtr(10000)}
	default:
		return Range{GT: intPtr(0)}
	}
}

// QuantityLeftRange resolves a quantity-left bucket label. An unrecognized
// label contributes no clause at all, unlike UnitsSoldRange.
func QuantityLeftRange(label string) (Range, bool) {
	switch label {
	case "0-50":
		return Range{GTE: intPtr(0), LTE: intPtr(50)}, true
	case "50-100":
		return Range{GTE: intPtr(50), LTE: intPtr(100)}, true
	case "100-200":
		return Range{GTE: intPtr(100), LTE: intPtr(200)}, true
	case "200-300":
		return Range{GTE: intPtr(200), LTE: intPtr(300)}, true
	case "300-400":
		return Range{GTE: intPtr(300), LTE: intPtr(400)}, true
	case "400-500":
		return Range{GTE: intPtr(400), LTE: intPtr(500)}, true
	case "+500":
		return Range{GT: intPtr(500)}, true
	default:
		return Range{}, false
	}
}
