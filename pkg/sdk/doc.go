// Package dinedex embeds the restaurant directory in a Go program.
//
// The client wires the same services the HTTP API uses over a Redis Stack
// connection (bloom, JSON and search modules loaded), through either the
// rueidis or the go-redis driver.
//
//	client, err := dinedex.New(ctx, dinedex.WithRueidis("localhost:6379", ""))
//	if err != nil { ... }
//	defer client.Close()
//
//	_ = client.Provision(ctx, dinedex.ProvisionOptions{})
//	r, _ := client.Restaurants().Create(ctx, "Nonna", "40.7,-74.0", "italian", "vegan")
//	_, _ = client.Reviews(r.ID).Add(ctx, 4, "great pasta")
//	top, _ := client.Restaurants().Top(ctx, 1, 10)
//
// Create and Reviews.Add may return a usable result together with an error
// matching ErrPartialIndex: the primary record was written but a derived
// structure (cuisine set, ranking, dedup filter) was not.
package dinedex
