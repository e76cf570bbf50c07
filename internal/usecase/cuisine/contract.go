package cuisine

import (
	"context"

	domrest "github.com/kailas-cloud/dinedex/internal/domain/restaurant"
)

// Index reads cuisine membership.
type Index interface {
	List(ctx context.Context) ([]string, error)
	Members(ctx context.Context, cuisine string) ([]string, error)
}

// RestaurantReader loads restaurant records in bulk.
type RestaurantReader interface {
	GetMany(ctx context.Context, ids []string) ([]domrest.Restaurant, error)
}
