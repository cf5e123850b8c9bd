package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is a catalog entry. Price is stored in the smallest currency unit.
type Product struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Price       int64              `json:"price" bson:"price"`
	Description string             `json:"description" bson:"description"`
	Stock       int                `json:"stock" bson:"stock"`
}
