package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id"`
	Quantity  int                `json:"quantity" bson:"quantity"`
}

// Cart holds one user's line items. At most one item per product id; a second
// add for the same product merges quantities instead of duplicating the line.
type Cart struct {
	ID        primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	Items     []CartItem         `json:"items" bson:"items"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// FindItem returns the index of the line for productID, or -1.
func (c *Cart) FindItem(productID primitive.ObjectID) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// CartItemView is a line item with the product's display fields resolved.
type CartItemView struct {
	ProductID primitive.ObjectID `json:"product_id"`
	Name      string             `json:"name"`
	Price     int64              `json:"price"`
	Quantity  int                `json:"quantity"`
}

type CartView struct {
	UserID    primitive.ObjectID `json:"user_id"`
	Items     []CartItemView     `json:"items"`
	UpdatedAt time.Time          `json:"updated_at"`
}
