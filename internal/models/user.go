package models

import (
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Claims are issued by the session service; this backend only verifies them.
// CartID identifies the session cart the user mutates.
type Claims struct {
	UserID string `json:"user_id"`
	CartID string `json:"cart_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// CartObjectID parses the cart reference out of the claims.
func (c *Claims) CartObjectID() (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.CartID)
}
