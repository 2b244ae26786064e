package utils

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/modishwear/modish-backend/internal/errors"
	"github.com/modishwear/modish-backend/internal/utils/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.WriteJson(w, http.StatusBadRequest, response.GeneralError(err))
		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		slog.Warn("Validation failed", slog.String("error", err.Error()))

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
			return false
		}

		response.Error(w, apperrors.ValidationError("Invalid input data"))
		return false
	}

	return true

}

// ParseID parses a hex object id out of a path value.
func ParseID(r *http.Request, pathValue string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(r.PathValue(pathValue))
	if err != nil {
		return primitive.NilObjectID, apperrors.BadRequestError("Invalid id format")
	}

	return id, nil
}
