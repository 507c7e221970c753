package memory

import "context"

// TxManager serializes every mutating use case behind the store's write
// lock. This is the whole single-writer contract: at most one mutation runs
// against the world at a time.
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	return fn(withTx(ctx))
}
