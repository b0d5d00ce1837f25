package catalog

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewID allocates a fresh product id. Ids are ObjectIDs so that they sort
// by creation time and stay compatible with documents already stored in
// MongoDB.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ParseID converts a hex id into an ObjectID, returning ErrInvalidID for
// anything that is not exactly 24 hex characters.
func ParseID(id string) (primitive.ObjectID, error) {
	if len(id) != 24 {
		return primitive.NilObjectID, ErrInvalidID
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

// normalizeID returns the canonical lowercase form of id.
func normalizeID(id string) (string, error) {
	oid, err := ParseID(id)
	if err != nil {
		return "", err
	}
	return oid.Hex(), nil
}
