package cache

import (
	"fmt"
	"strings"
	"time"
)

// Fixed TTLs per entity class.
const (
	TTLLong  = time.Hour        // profile, jars, goals, charges
	TTLShort = 15 * time.Minute // transaction lists, summaries, insights
)

// Key builders. Every key is scoped by the owning user's email (or the
// document id for single-goal entries), so invalidation for one user can
// never touch another's entries.

func ProfileKey(email string) string {
	return "user-profile:" + email
}

func JarsKey(email string) string {
	return "jars:" + email
}

func GoalsKey(email string) string {
	return "goals:" + email
}

func GoalKey(goalID string) string {
	return "goal:" + goalID
}

func ChargesKey(email, status string) string {
	return fmt.Sprintf("charges:%s:status-%s", email, status)
}

func chargesPattern(email string) string {
	return fmt.Sprintf("charges:%s:*", email)
}

// TransactionsKey is a deterministic function of every query-affecting
// parameter of the paginated listing.
func TransactionsKey(email string, page, limit int, txnType string, month, year int) string {
	if txnType == "" {
		txnType = "all"
	}
	monthPart, yearPart := "all", "all"
	if month > 0 && year > 0 {
		monthPart = fmt.Sprintf("%d", month)
		yearPart = fmt.Sprintf("%d", year)
	}
	return fmt.Sprintf("transactions:%s:page-%d-limit-%d-type-%s-month-%s-year-%s",
		email, page, limit, txnType, monthPart, yearPart)
}

func transactionsPattern(email string) string {
	return fmt.Sprintf("transactions:%s:*", email)
}

func SummaryKey(email string, month, year int) string {
	return fmt.Sprintf("summary:%s:month-%d-year-%d", email, month, year)
}

func summaryPattern(email string) string {
	return fmt.Sprintf("summary:%s:*", email)
}

func InsightsKey(email string) string {
	return "insights:" + email
}

// TTLFor picks the TTL from the key's entity-class prefix.
func TTLFor(key string) time.Duration {
	switch prefix, _, _ := strings.Cut(key, ":"); prefix {
	case "transactions", "summary", "insights":
		return TTLShort
	default:
		return TTLLong
	}
}
