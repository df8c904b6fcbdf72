package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/wayfinder/pkg/adapters/redis"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)
	store := redis.NewFromClient(client)
	ports.RunSolutionStoreContract(t, store)
}

func TestRedisStore_Keys(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Save(ctx, &domain.Solution{ID: "s1", Status: domain.StatusFound}))

	assert.True(t, mr.Exists("test:s1"))
	members, err := mr.ZMembers("test:index")
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, members)
}

func TestRedisStore_TTL(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Solution{ID: "short"}))
	assert.Equal(t, time.Minute, mr.TTL(redis.DefaultPrefix+"short"))

	mr.FastForward(2 * time.Minute)
	_, err := store.Load(ctx, "short")
	assert.ErrorIs(t, err, domain.ErrSolutionNotFound)
}

func TestRedisStore_ListPrunesExpired(t *testing.T) {
	_, client := setup(t)
	ctx := context.Background()

	hourAgo := func() time.Time { return time.Now().Add(-time.Hour) }
	past := redis.NewFromClient(client, redis.WithTTL(time.Minute), redis.WithClock(hourAgo))
	require.NoError(t, past.Save(ctx, &domain.Solution{ID: "old"}))

	live := redis.NewFromClient(client)
	require.NoError(t, live.Save(ctx, &domain.Solution{ID: "keep"}))

	ids, err := live.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, ids)
}
