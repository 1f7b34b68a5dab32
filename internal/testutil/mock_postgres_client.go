package testutil

import (
	"context"
	"sync"

	"github.com/learnhub/learnhub/internal/logger"
	"github.com/learnhub/learnhub/internal/postgres"
	"github.com/learnhub/learnhub/internal/types"
	"gorm.io/gorm"
)

var _ postgres.IClient = (*MockPostgresClient)(nil)

// txStore is implemented by in-memory stores that participate in the mock
// client's transactions.
type txStore interface {
	snapshot() interface{}
	restore(state interface{})
}

// MockPostgresClient satisfies postgres.IClient for service tests backed by
// in-memory stores. WithTx snapshots the participating stores up front and
// restores them when the function fails, so a failed transaction leaves no
// partial writes behind, matching the real client's rollback. Transactions
// are serialized by a mutex the way row locks serialize them in Postgres.
type MockPostgresClient struct {
	logger *logger.Logger
	txMu   sync.Mutex
	stores []txStore
}

func NewMockPostgresClient(log *logger.Logger, stores ...txStore) postgres.IClient {
	return &MockPostgresClient{
		logger: log,
		stores: stores,
	}
}

func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	c.txMu.Lock()
	defer c.txMu.Unlock()

	states := make([]interface{}, len(c.stores))
	for i, st := range c.stores {
		states[i] = st.snapshot()
	}

	committed := false
	defer func() {
		if !committed {
			for i, st := range c.stores {
				st.restore(states[i])
			}
		}
	}()

	if err := fn(ctx); err != nil {
		return err
	}

	committed = true
	return nil
}

func (c *MockPostgresClient) TxFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(types.CtxDBTransaction).(*gorm.DB); ok {
		return tx
	}
	return nil
}

func (c *MockPostgresClient) Querier(ctx context.Context) *gorm.DB {
	return c.TxFromContext(ctx)
}
