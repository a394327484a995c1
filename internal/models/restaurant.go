package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Restaurant represents a restaurant that can be awarded as a lottery prize.
type Restaurant struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Cuisine   string             `bson:"cuisine,omitempty" json:"cuisine,omitempty"`
	Rating    float64            `bson:"rating" json:"rating"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RestaurantUpdate carries the optional fields of a partial update.
type RestaurantUpdate struct {
	Name    *string  `json:"name"`
	Cuisine *string  `json:"cuisine"`
	Rating  *float64 `json:"rating"`
}

// RestaurantFilter narrows a restaurant search. Zero values mean "any".
type RestaurantFilter struct {
	Name          string
	Cuisine       string
	OrderByRating bool
	Limit         int64
}
