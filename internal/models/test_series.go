package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestSeries represents a purchasable set of practice tests
type TestSeries struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Price       int64              `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	TestCount   int                `bson:"testCount" json:"testCount"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
