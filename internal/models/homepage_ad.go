package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HomepageAd is a marketing banner shown on the public homepage
type HomepageAd struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title     string             `bson:"title" json:"title"`
	ImageURL  string             `bson:"imageUrl" json:"imageUrl"`
	Link      string             `bson:"link,omitempty" json:"link,omitempty"`
	Order     int                `bson:"order" json:"order"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
