package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Base carries the document identifier shared by every collection.
type Base struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
}

func (b *Base) GetID() primitive.ObjectID { return b.ID }

func (b *Base) SetID(id primitive.ObjectID) { b.ID = id }

// Asset references a file held by the media provider. PublicID addresses
// deletion and replacement, URL is what clients render.
type Asset struct {
	PublicID string `bson:"public_id" json:"public_id"`
	URL      string `bson:"url" json:"url"`
}

// IsZero reports whether the asset points at nothing.
func (a Asset) IsZero() bool {
	return a.PublicID == ""
}
