// Package keyspace maps logical entities to storage keys.
//
// Every key is the namespace prefix followed by colon-joined parts, so
// restaurant r1 lives at "app:restaurants:r1" under the default prefix.
package keyspace

import "strings"

// DefaultPrefix is used when no prefix is configured.
const DefaultPrefix = "app:"

// Namespace builds keys under a fixed prefix. The zero value uses DefaultPrefix.
type Namespace struct {
	prefix string
}

// New creates a namespace. An empty prefix falls back to DefaultPrefix;
// a missing trailing colon is added.
func New(prefix string) Namespace {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return Namespace{prefix: prefix}
}

// Prefix returns the namespace prefix, including the trailing colon.
func (n Namespace) Prefix() string {
	if n.prefix == "" {
		return DefaultPrefix
	}
	return n.prefix
}

// Key joins parts with ':' under the namespace prefix.
func (n Namespace) Key(parts ...string) string {
	return n.Prefix() + strings.Join(parts, ":")
}

// Restaurant is the hash holding a restaurant record.
func (n Namespace) Restaurant(id string) string { return n.Key("restaurants", id) }

// RestaurantPrefix is the key prefix covered by the search index.
func (n Namespace) RestaurantPrefix() string { return n.Key("restaurants") + ":" }

// RestaurantCuisines is the set of cuisine names attached to a restaurant.
func (n Namespace) RestaurantCuisines(id string) string { return n.Key("restaurant_cuisines", id) }

// RestaurantDetails is the JSON document with free-form restaurant details.
func (n Namespace) RestaurantDetails(id string) string { return n.Key("restaurant_details", id) }

// Cuisine is the set of restaurant ids serving a cuisine.
func (n Namespace) Cuisine(name string) string { return n.Key("cuisine", name) }

// CuisinePattern matches every cuisine membership key.
func (n Namespace) CuisinePattern() string { return n.Key("cuisine", "*") }

// CuisineName extracts the cuisine name from a key produced by Cuisine.
func (n Namespace) CuisineName(key string) (string, bool) {
	name, ok := strings.CutPrefix(key, n.Key("cuisine")+":")
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// RatingRanking is the sorted set of restaurant ids scored by average rating.
func (n Namespace) RatingRanking() string { return n.Key("restaurants_by_rating") }

// RestaurantIndex names the full-text index over restaurant hashes.
func (n Namespace) RestaurantIndex() string { return "idx:" + strings.TrimSuffix(n.Prefix(), ":") + ":restaurants" }

// Reviews is the list of review ids for a restaurant, newest first.
func (n Namespace) Reviews(restaurantID string) string { return n.Key("reviews", restaurantID) }

// ReviewDetails is the hash holding one review.
func (n Namespace) ReviewDetails(reviewID string) string { return n.Key("review_details", reviewID) }

// Bloom is the dedup bloom filter for restaurant fingerprints.
func (n Namespace) Bloom() string { return n.Key("bloom_restaurants") }

// RestaurantCache is the cached JSON snapshot of a restaurant.
func (n Namespace) RestaurantCache(id string) string { return n.Key("cache", "restaurant", id) }
