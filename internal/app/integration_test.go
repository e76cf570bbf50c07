//go:build integration

package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/kailas-cloud/dinedex/internal/app"
	"github.com/kailas-cloud/dinedex/internal/config"
	"github.com/kailas-cloud/dinedex/internal/domain"
	"github.com/kailas-cloud/dinedex/internal/domain/page"
	provisionuc "github.com/kailas-cloud/dinedex/internal/usecase/provision"
)

// redis-stack ships the bloom, JSON and search modules.
const stackImage = "redis/redis-stack-server:7.4.0-v3"

func startStack(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, stackImage)
	tc.CleanupContainer(t, container)
	require.NoError(t, err, "start redis-stack container")

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return endpoint
}

func TestIntegration_Drivers(t *testing.T) {
	addr := startStack(t)

	for _, driver := range []string{config.DriverRueidis, config.DriverGoRedis} {
		t.Run(driver, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			store, err := app.OpenStore(config.DatabaseConfig{Driver: driver, Addrs: []string{addr}})
			require.NoError(t, err)
			t.Cleanup(store.Close)
			require.NoError(t, store.WaitForReady(ctx, 10*time.Second))

			svc, err := app.Build(store, app.Options{KeyPrefix: driver + ":"})
			require.NoError(t, err)

			def, err := svc.RestaurantIndex()
			require.NoError(t, err)
			require.NoError(t, svc.Provision.ResetBloom(ctx, provisionuc.BloomConfig{Capacity: 1000, ErrorRate: 0.001}))
			require.NoError(t, svc.Provision.RecreateIndex(ctx, def))

			r, err := svc.Restaurants.Create(ctx, "Joe's Pizza", "40.7,-74.0", []string{"italian", "pizza"})
			require.NoError(t, err)

			_, err = svc.Restaurants.Create(ctx, "Joe's Pizza", "40.7,-74.0", []string{"italian"})
			require.ErrorIs(t, err, domain.ErrAlreadyExists)

			res, err := svc.Ratings.RecordReview(ctx, r.ID(), 5, "great slice")
			require.NoError(t, err)
			assert.InDelta(t, 5.0, res.AverageRating, 1e-9)
			res, err = svc.Ratings.RecordReview(ctx, r.ID(), 2, "cold")
			require.NoError(t, err)
			assert.InDelta(t, 3.5, res.AverageRating, 1e-9)

			top, err := svc.Restaurants.Top(ctx, page.Request{Number: 1, Limit: 5})
			require.NoError(t, err)
			require.NotEmpty(t, top)
			assert.Equal(t, r.ID(), top[0].ID())

			_, err = svc.Restaurants.SetDetails(ctx, r.ID(), []byte(`{"phone":"555-0100"}`))
			require.NoError(t, err)
			details, err := svc.Restaurants.GetDetails(ctx, r.ID())
			require.NoError(t, err)
			assert.JSONEq(t, `{"phone":"555-0100"}`, string(details.Raw()))

			// the index is updated asynchronously by the server
			require.Eventually(t, func() bool {
				found, err := svc.Restaurants.Search(ctx, "joe's", 10)
				return err == nil && len(found) == 1
			}, 5*time.Second, 100*time.Millisecond)

			report := svc.Health.Check(ctx)
			assert.Equal(t, "ok", string(report.Status))
		})
	}
}
