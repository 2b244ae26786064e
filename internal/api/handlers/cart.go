package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/modishwear/modish-backend/internal/api/middleware"
	"github.com/modishwear/modish-backend/internal/errors"
	"github.com/modishwear/modish-backend/internal/models"
	service "github.com/modishwear/modish-backend/internal/services"
	"github.com/modishwear/modish-backend/internal/utils"
	"github.com/modishwear/modish-backend/internal/utils/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// cartIDFromContext resolves the session cart from the authenticated claims.
func cartIDFromContext(r *http.Request) (primitive.ObjectID, error) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
	if !ok {
		return primitive.NilObjectID, errors.UnauthorizedError("Authentication required")
	}

	cartID, err := claims.CartObjectID()
	if err != nil {
		return primitive.NilObjectID, errors.UnauthorizedError("Invalid cart reference")
	}

	return cartID, nil
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cartID, err := cartIDFromContext(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		view, err := h.cartService.GetCart(r.Context(), cartID)
		if err != nil {
			logger.Warn("Failed to fetch cart", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, view)

	}
}

func (h *CartHandler) AddToCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cartID, err := cartIDFromContext(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.AddToCartRequest

		// Validate Input
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		view, err := h.cartService.AddToCart(r.Context(), cartID, &req)
		if err != nil {
			logger.Warn("Add to cart rejected",
				slog.String("variantId", req.VariantID),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Product added to cart", slog.String("variantId", req.VariantID))
		response.Success(w, http.StatusOK, view)

	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cartID, err := cartIDFromContext(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		variantID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateCartQuantityRequest

		// Validate Input
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		view, err := h.cartService.UpdateQuantity(r.Context(), cartID, variantID, &req)
		if err != nil {
			logger.Warn("Quantity update rejected",
				slog.String("variantId", variantID.Hex()),
				slog.String("operation", req.Operation),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, view)

	}
}

func (h *CartHandler) RemoveFromCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cartID, err := cartIDFromContext(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		variantID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.RemoveFromCartRequest

		// Validate Input
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		view, err := h.cartService.RemoveFromCart(r.Context(), cartID, variantID, &req)
		if err != nil {
			logger.Warn("Cart removal rejected",
				slog.String("variantId", variantID.Hex()),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Product removed from cart", slog.String("variantId", variantID.Hex()))
		response.Success(w, http.StatusOK, view)

	}
}
