package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/modishwear/modish-backend/internal/api/middleware"
	"github.com/modishwear/modish-backend/internal/models"
	"github.com/modishwear/modish-backend/internal/search"
	service "github.com/modishwear/modish-backend/internal/services"
	"github.com/modishwear/modish-backend/internal/utils/response"
)

// SearchHandler exposes the admin catalog and order search. Every filter is
// a query parameter; anything absent or unparseable simply contributes no
// predicate.
type SearchHandler struct {
	catalogService service.CatalogService
}

func NewSearchHandler(catalogService service.CatalogService) *SearchHandler {
	return &SearchHandler{catalogService: catalogService}
}

func queryFloat(q url.Values, key string) *float64 {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}

	return &v
}

func queryBool(q url.Values, key string) *bool {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}

	return &v
}

func queryTime(q url.Values, key string) *time.Time {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}

	v, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}

	return &v
}

func querySizes(q url.Values, key string) []models.Size {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}

	var sizes []models.Size

	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			sizes = append(sizes, models.Size(part))
		}
	}

	return sizes
}

func queryPage(q url.Values) (int64, int64) {
	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)

	return page, limit
}

func (h *SearchHandler) SearchProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		q := r.URL.Query()

		filter := search.ProductFilter{
			Name:         q.Get("name"),
			Category:     q.Get("category"),
			SubCategory:  q.Get("subCategory"),
			Status:       models.ProductStatus(q.Get("status")),
			Rating:       queryFloat(q, "rating"),
			Color:        q.Get("color"),
			OnSale:       queryBool(q, "onSale"),
			InStock:      queryBool(q, "inStock"),
			MinPrice:     queryFloat(q, "minPrice"),
			MaxPrice:     queryFloat(q, "maxPrice"),
			MinCost:      queryFloat(q, "minCost"),
			MaxCost:      queryFloat(q, "maxCost"),
			UnitsSold:    q.Get("unitsSold"),
			QuantityLeft: q.Get("quantityLeft"),
			Sizes:        querySizes(q, "sizes"),
			SortField:    q.Get("sortBy"),
			SortOrder:    q.Get("sortOrder"),
		}

		page, limit := queryPage(q)

		result, err := h.catalogService.SearchProducts(r.Context(), filter, page, limit)
		if err != nil {
			logger.Error("Product search failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, result)

	}
}

func (h *SearchHandler) SearchOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		q := r.URL.Query()

		filter := search.OrderFilter{
			RecipientName:  q.Get("name"),
			DeliveryStatus: models.DeliveryStatus(q.Get("deliveryStatus")),
			Country:        q.Get("country"),
			CreatedAfter:   queryTime(q, "createdAfter"),
			MinPrice:       queryFloat(q, "minPrice"),
			MaxPrice:       queryFloat(q, "maxPrice"),
			MinProfit:      queryFloat(q, "minProfit"),
			MaxProfit:      queryFloat(q, "maxProfit"),
		}

		page, limit := queryPage(q)

		result, err := h.catalogService.SearchOrders(r.Context(), filter, page, limit)
		if err != nil {
			logger.Error("Order search failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		// No match collapses to a bare empty list instead of the envelope.
		if result.Empty() {
			response.Success(w, http.StatusOK, []models.Order{})
			return
		}

		response.Success(w, http.StatusOK, result)

	}
}
