// Package recurring materializes a user's standing income and expense
// profile into transactions, at most once per calendar month. There is no
// scheduler: the check runs lazily on the reads whose results it changes,
// and the jobs collection remembers the last synced month per user.
package recurring

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Harsh-cyber005/paisafy-server/cache"
	"github.com/Harsh-cyber005/paisafy-server/logger"
	"github.com/Harsh-cyber005/paisafy-server/models"
	"github.com/Harsh-cyber005/paisafy-server/mongodb"
)

type Syncer struct {
	store *mongodb.Store
	cache *cache.Cache
	now   func() time.Time
}

func NewSyncer(store *mongodb.Store, c *cache.Cache) *Syncer {
	return &Syncer{store: store, cache: c, now: time.Now}
}

// EnsureSynced claims the current month for the user and, on winning the
// claim, records one RecurringIncome and one RecurringExpense transaction
// summing the profile. The claim is a single conditional upsert, so two
// concurrent requests cannot both materialize; a partial failure after the
// claim leaves the month claimed and is logged rather than retried.
func (s *Syncer) EnsureSynced(ctx context.Context, user *models.User) error {
	now := s.now()
	won, err := s.store.ClaimMonthlySync(ctx, user.ID, int(now.Month()), now.Year())
	if err != nil {
		return err
	}
	if !won {
		return nil
	}

	txns := BuildMonthlyTransactions(user, now)
	if len(txns) == 0 {
		return nil
	}
	if err := s.store.CreateTransactions(ctx, txns); err != nil {
		logger.Get().Error("recurring sync failed after claiming month",
			zap.String("email", user.Email),
			zap.Error(err))
		return err
	}

	s.cache.Invalidate(ctx, user.Email, cache.EntityTransactions)
	logger.Get().Info("materialized recurring transactions",
		zap.String("email", user.Email),
		zap.Int("month", int(now.Month())),
		zap.Int("year", now.Year()))
	return nil
}

// BuildMonthlyTransactions sums the profile into at most two transactions:
// all recurring income as one RecurringIncome, all recurring expenses as one
// RecurringExpense. Zero-amount sides are skipped.
func BuildMonthlyTransactions(user *models.User, now time.Time) []*models.Transaction {
	txns := []*models.Transaction{}

	income := user.MonthlyIncome + user.SideIncome()
	if income > 0 {
		txns = append(txns, &models.Transaction{
			UserID:          user.ID,
			Amount:          income,
			Type:            models.TransactionTypeRecurringIncome,
			Category:        "Income",
			Description:     "Monthly recurring income",
			TransactionDate: now,
		})
	}

	expenses := user.RecurringExpenseTotal()
	if expenses > 0 {
		txns = append(txns, &models.Transaction{
			UserID:          user.ID,
			Amount:          expenses,
			Type:            models.TransactionTypeRecurringExpense,
			Category:        "Recurring",
			Description:     "Monthly recurring expenses",
			TransactionDate: now,
		})
	}
	return txns
}
