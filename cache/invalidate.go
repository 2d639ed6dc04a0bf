package cache

import (
	"context"

	"go.uber.org/zap"

	"github.com/Harsh-cyber005/paisafy-server/logger"
)

// Entity names a class of cached state. Every mutating operation declares
// which entities it touched and Invalidate purges everything that could be
// stale, from one table, so coverage cannot drift between call sites.
type Entity string

const (
	EntityProfile      Entity = "profile"
	EntityJars         Entity = "jars"
	EntityGoals        Entity = "goals"
	EntityCharges      Entity = "charges"
	EntityTransactions Entity = "transactions"
)

// rule lists the exact keys and the key patterns stale after a mutation of
// one entity class. Insights digest every entity, so every rule purges them.
// Goals also render on the profile page, so a profile mutation purges the
// goals list too.
type rule struct {
	keys     []func(email string) string
	patterns []func(email string) string
}

var rules = map[Entity]rule{
	EntityProfile: {
		keys: []func(string) string{ProfileKey, GoalsKey, InsightsKey},
	},
	EntityJars: {
		keys: []func(string) string{JarsKey, InsightsKey},
	},
	EntityGoals: {
		keys: []func(string) string{GoalsKey, InsightsKey},
	},
	EntityCharges: {
		keys:     []func(string) string{InsightsKey},
		patterns: []func(string) string{chargesPattern},
	},
	EntityTransactions: {
		keys:     []func(string) string{InsightsKey},
		patterns: []func(string) string{transactionsPattern, summaryPattern},
	},
}

// Invalidate purges every cache entry that a mutation of the given entity
// classes could have left stale for this user. It runs after the
// authoritative write; failures are logged and swallowed, since a stale
// entry expires with its TTL anyway.
func (c *Cache) Invalidate(ctx context.Context, email string, entities ...Entity) {
	for _, entity := range entities {
		r, ok := rules[entity]
		if !ok {
			continue
		}
		for _, key := range r.keys {
			if err := c.delete(ctx, key(email)); err != nil {
				logger.Get().Warn("cache invalidation failed",
					zap.String("entity", string(entity)),
					zap.String("key", key(email)),
					zap.Error(err))
			}
		}
		for _, pattern := range r.patterns {
			if err := c.deleteByPattern(ctx, pattern(email)); err != nil {
				logger.Get().Warn("cache invalidation failed",
					zap.String("entity", string(entity)),
					zap.String("pattern", pattern(email)),
					zap.Error(err))
			}
		}
	}
}

// InvalidateGoal purges the single-goal entry, which is keyed by document id
// rather than by user.
func (c *Cache) InvalidateGoal(ctx context.Context, goalID string) {
	if err := c.delete(ctx, GoalKey(goalID)); err != nil {
		logger.Get().Warn("cache invalidation failed",
			zap.String("key", GoalKey(goalID)),
			zap.Error(err))
	}
}
