package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyBuilders(t *testing.T) {
	assert.Equal(t, "user-profile:john@x.com", ProfileKey("john@x.com"))
	assert.Equal(t, "jars:john@x.com", JarsKey("john@x.com"))
	assert.Equal(t, "goals:john@x.com", GoalsKey("john@x.com"))
	assert.Equal(t, "goal:abc123", GoalKey("abc123"))
	assert.Equal(t, "charges:john@x.com:status-Due", ChargesKey("john@x.com", "Due"))
	assert.Equal(t, "summary:john@x.com:month-2-year-2026", SummaryKey("john@x.com", 2, 2026))
	assert.Equal(t, "insights:john@x.com", InsightsKey("john@x.com"))
}

func TestTransactionsKeyIsDeterministic(t *testing.T) {
	key := TransactionsKey("john@x.com", 2, 25, "Expense", 3, 2026)
	assert.Equal(t, "transactions:john@x.com:page-2-limit-25-type-Expense-month-3-year-2026", key)

	// Unset filters collapse to "all" so equivalent queries share an entry.
	key = TransactionsKey("john@x.com", 1, 10, "", 0, 0)
	assert.Equal(t, "transactions:john@x.com:page-1-limit-10-type-all-month-all-year-all", key)
}

func TestTTLFor(t *testing.T) {
	assert.Equal(t, TTLLong, TTLFor(ProfileKey("a@b.c")))
	assert.Equal(t, TTLLong, TTLFor(JarsKey("a@b.c")))
	assert.Equal(t, TTLLong, TTLFor(GoalsKey("a@b.c")))
	assert.Equal(t, TTLLong, TTLFor(ChargesKey("a@b.c", "Paid")))
	assert.Equal(t, TTLShort, TTLFor(TransactionsKey("a@b.c", 1, 10, "", 0, 0)))
	assert.Equal(t, TTLShort, TTLFor(SummaryKey("a@b.c", 1, 2026)))
	assert.Equal(t, TTLShort, TTLFor(InsightsKey("a@b.c")))
}
