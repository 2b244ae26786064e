package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/modishwear/modish-backend/internal/api/middleware"
	"github.com/modishwear/modish-backend/internal/models"
	service "github.com/modishwear/modish-backend/internal/services"
	"github.com/modishwear/modish-backend/internal/utils"
	"github.com/modishwear/modish-backend/internal/utils/response"
)

type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService, validator: validator.New()}
}

func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest

		// Validate Input
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Product creation failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Product created", slog.String("productId", product.ID.Hex()))
		response.Success(w, http.StatusCreated, product)

	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		product, err := h.productService.GetProduct(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)

	}
}

func (h *ProductHandler) CreateVariant() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		productID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.CreateVariantRequest

		// Validate Input
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		variant, err := h.productService.CreateVariant(r.Context(), productID, &req)
		if err != nil {
			logger.Error("Variant creation failed",
				slog.String("productId", productID.Hex()),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Variant created",
			slog.String("productId", productID.Hex()),
			slog.String("variantId", variant.ID.Hex()))
		response.Success(w, http.StatusCreated, variant)

	}
}

func (h *ProductHandler) GetVariant() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		variant, err := h.productService.GetVariant(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, variant)

	}
}

func (h *ProductHandler) UpdateSale() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		variantID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateSaleRequest

		// Validate Input
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		variant, err := h.productService.UpdateSale(r.Context(), variantID, &req)
		if err != nil {
			logger.Error("Sale update failed",
				slog.String("variantId", variantID.Hex()),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Sale options updated",
			slog.String("variantId", variantID.Hex()),
			slog.Bool("isOnSale", variant.IsOnSale))
		response.Success(w, http.StatusOK, variant)

	}
}

func (h *ProductHandler) UpdateStock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		variantID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateStockRequest

		// Validate Input
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.productService.UpdateStock(r.Context(), variantID, &req); err != nil {
			logger.Error("Stock update failed",
				slog.String("variantId", variantID.Hex()),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Stock updated", slog.String("variantId", variantID.Hex()))
		response.Success(w, http.StatusOK, map[string]string{"status": "updated"})

	}
}
