package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Storage providers for course content.
const (
	ProviderCloudinary = "cloudinary"
	ProviderR2         = "r2"
)

// Video represents a lecture video belonging to a course. StorageKey is the
// Cloudinary public id or the R2 object key depending on Provider.
type Video struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CourseID    primitive.ObjectID `bson:"courseId" json:"courseId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Provider    string             `bson:"provider" json:"provider"`
	StorageKey  string             `bson:"storageKey" json:"-"`
	Duration    int                `bson:"duration,omitempty" json:"duration,omitempty"`
	Order       int                `bson:"order" json:"order"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Document represents a downloadable study document belonging to a course.
type Document struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CourseID    primitive.ObjectID `bson:"courseId" json:"courseId"`
	Title       string             `bson:"title" json:"title"`
	FileName    string             `bson:"fileName" json:"fileName"`
	Provider    string             `bson:"provider" json:"provider"`
	StorageKey  string             `bson:"storageKey" json:"-"`
	ContentType string             `bson:"contentType,omitempty" json:"contentType,omitempty"`
	Size        int64              `bson:"size,omitempty" json:"size,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
