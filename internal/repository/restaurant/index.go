package restaurant

import (
	"github.com/kailas-cloud/dinedex/internal/db"
	"github.com/kailas-cloud/dinedex/internal/keyspace"
)

// IndexDefinition describes the full-text index over restaurant hashes.
func IndexDefinition(keys keyspace.Namespace) (*db.IndexDefinition, error) {
	return db.NewIndex(keys.RestaurantIndex()).
		OnHash().
		Prefix(keys.RestaurantPrefix()).
		Text(fieldID).
		Text(fieldName).
		SortableNumeric(fieldAverageRating).
		Build()
}
