package mongodb

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// objectID parses a hex ID. Callers treat an unparseable ID the same as a
// missing document.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}
