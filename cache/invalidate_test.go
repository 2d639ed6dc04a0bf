package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return New(rdb), mr
}

// seed populates one entry per entity class for two users.
func seed(t *testing.T, mr *miniredis.Miniredis, emails ...string) {
	t.Helper()
	for _, email := range emails {
		keys := []string{
			ProfileKey(email),
			JarsKey(email),
			GoalsKey(email),
			ChargesKey(email, "Upcoming"),
			ChargesKey(email, "Due"),
			TransactionsKey(email, 1, 10, "", 0, 0),
			TransactionsKey(email, 2, 10, "Expense", 1, 2026),
			SummaryKey(email, 1, 2026),
			InsightsKey(email),
		}
		for _, key := range keys {
			require.NoError(t, mr.Set(key, "cached"))
		}
	}
}

func TestInvalidateJars(t *testing.T) {
	c, mr := newTestCache(t)
	seed(t, mr, "u@x.com")

	c.Invalidate(context.Background(), "u@x.com", EntityJars)

	require.False(t, mr.Exists(JarsKey("u@x.com")))
	require.False(t, mr.Exists(InsightsKey("u@x.com")))
	// Unrelated entries survive.
	require.True(t, mr.Exists(ProfileKey("u@x.com")))
	require.True(t, mr.Exists(GoalsKey("u@x.com")))
	require.True(t, mr.Exists(SummaryKey("u@x.com", 1, 2026)))
}

func TestInvalidateProfilePurgesGoalsList(t *testing.T) {
	c, mr := newTestCache(t)
	seed(t, mr, "u@x.com")

	c.Invalidate(context.Background(), "u@x.com", EntityProfile)

	require.False(t, mr.Exists(ProfileKey("u@x.com")))
	require.False(t, mr.Exists(GoalsKey("u@x.com")))
	require.False(t, mr.Exists(InsightsKey("u@x.com")))
	require.True(t, mr.Exists(JarsKey("u@x.com")))
}

func TestInvalidateChargesPurgesEveryStatusBucket(t *testing.T) {
	c, mr := newTestCache(t)
	seed(t, mr, "u@x.com")

	c.Invalidate(context.Background(), "u@x.com", EntityCharges)

	require.False(t, mr.Exists(ChargesKey("u@x.com", "Upcoming")))
	require.False(t, mr.Exists(ChargesKey("u@x.com", "Due")))
	require.False(t, mr.Exists(InsightsKey("u@x.com")))
	require.True(t, mr.Exists(JarsKey("u@x.com")))
}

func TestInvalidateTransactionsPurgesListsAndSummaries(t *testing.T) {
	c, mr := newTestCache(t)
	seed(t, mr, "u@x.com")

	c.Invalidate(context.Background(), "u@x.com", EntityTransactions)

	require.False(t, mr.Exists(TransactionsKey("u@x.com", 1, 10, "", 0, 0)))
	require.False(t, mr.Exists(TransactionsKey("u@x.com", 2, 10, "Expense", 1, 2026)))
	require.False(t, mr.Exists(SummaryKey("u@x.com", 1, 2026)))
	require.False(t, mr.Exists(InsightsKey("u@x.com")))
	require.True(t, mr.Exists(ProfileKey("u@x.com")))
}

func TestInvalidateIsScopedToOneUser(t *testing.T) {
	c, mr := newTestCache(t)
	seed(t, mr, "a@x.com", "b@x.com")

	c.Invalidate(context.Background(), "a@x.com",
		EntityProfile, EntityJars, EntityGoals, EntityCharges, EntityTransactions)

	require.True(t, mr.Exists(ProfileKey("b@x.com")))
	require.True(t, mr.Exists(JarsKey("b@x.com")))
	require.True(t, mr.Exists(ChargesKey("b@x.com", "Due")))
	require.True(t, mr.Exists(TransactionsKey("b@x.com", 1, 10, "", 0, 0)))
	require.True(t, mr.Exists(InsightsKey("b@x.com")))
}

func TestInvalidateGoal(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set(GoalKey("g1"), "cached"))
	require.NoError(t, mr.Set(GoalKey("g2"), "cached"))

	c.InvalidateGoal(context.Background(), "g1")

	require.False(t, mr.Exists(GoalKey("g1")))
	require.True(t, mr.Exists(GoalKey("g2")))
}
