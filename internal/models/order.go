package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

type DeliveryStatus string

const (
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusComplete PaymentStatus = "Complete"
	PaymentStatusFailed   PaymentStatus = "Failed"
	PaymentStatusRefunded PaymentStatus = "Refunded"

	DeliveryStatusProcessing DeliveryStatus = "Processing"
	DeliveryStatusShipped    DeliveryStatus = "Shipped"
	DeliveryStatusDelivered  DeliveryStatus = "Delivered"
	DeliveryStatusReturned   DeliveryStatus = "Returned"
)

// Order is read-only for this service; it is only the target of admin search.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	PaymentStatus  PaymentStatus      `bson:"paymentStatus" json:"payment_status"`
	DeliveryStatus DeliveryStatus     `bson:"deliveryStatus" json:"delivery_status"`
	TotalPrice     float64            `bson:"totalPrice" json:"total_price"`
	TotalCost      float64            `bson:"totalCost" json:"total_cost"`
	Country        string             `bson:"country" json:"country"`
	CreatedAt      time.Time          `bson:"createdAt" json:"created_at"`
}
