package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PrizePool_Go/internal/database/postgres"
)

// Repositories holds the PostgreSQL repositories used by the application.
// Contests is concrete because the settlement worker also lists through it.
type Repositories struct {
	Contests    *postgres.ContestRepository
	Orders      *postgres.OrderRepository
	Settlements *postgres.SettlementRepository
	Payouts     *postgres.PayoutRepository
	EventLog    *postgres.EventLogRepository
}

// InitializeRepositories creates all repository implementations
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Contests:    postgres.NewContestRepository(dbPool),
		Orders:      postgres.NewOrderRepository(dbPool),
		Settlements: postgres.NewSettlementRepository(dbPool),
		Payouts:     postgres.NewPayoutRepository(dbPool),
		EventLog:    postgres.NewEventLogRepository(dbPool),
	}
}
