package ports

import "context"

// TxManager serializes mutating use cases. The in-memory implementation
// holds the store's write lock for the duration of fn, which is what gives
// the engine its at-most-one-writer guarantee.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
