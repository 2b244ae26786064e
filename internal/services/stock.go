package service

import (
	"github.com/modishwear/modish-backend/internal/errors"
	"github.com/modishwear/modish-backend/internal/models"
)

// Stock validation shared by the cart mutations. Each check returns the
// conflict the storefront shows verbatim, so the wording here is load-bearing.

// validateSellable rejects variants that are retired or fully out of stock.
func validateSellable(v *models.Variant) error {
	if v.Status != models.StatusActive || v.StockStatus != models.StockStatusInStock {
		return errors.StockConflictError("Product currently unavailable or out of stock")
	}

	return nil
}

// sizeStock extracts the per-size stock from a size-projected variant fetch.
// An empty slice means the requested size does not exist on the variant.
func sizeStock(v *models.Variant) (int, error) {
	if len(v.Quantity) == 0 {
		return 0, errors.StockConflictError("Requested size isn't available")
	}

	return v.Quantity[0].QuantityLeft, nil
}

// validateWithinStock rejects a target quantity exceeding what is left for
// the size. A target equal to the remaining stock is allowed.
func validateWithinStock(target, quantityLeft int) error {
	if target > quantityLeft {
		return errors.StockConflictError("Product stock limit reached")
	}

	return nil
}

// validateDecrement keeps a size entry at quantity 1 or above. Dropping the
// entry goes through the remove operation.
func validateDecrement(current int) error {
	if current <= 1 {
		return errors.StockConflictError("Cannot decrement below minimum quantity")
	}

	return nil
}
