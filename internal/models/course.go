package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course categories recognized by the catalog.
const (
	CategoryJEE        = "jee"
	CategoryNEET       = "neet"
	CategoryFoundation = "foundation"
	CategoryBoards     = "boards"
)

// Course represents a catalog course. Price is in whole rupees.
type Course struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Price       int64              `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Duration    string             `bson:"duration,omitempty" json:"duration,omitempty"`
	Thumbnail   string             `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
