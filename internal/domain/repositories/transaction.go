package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager handles store transactions
type TransactionManager interface {
	// ExecTx executes fn within a transaction; stores without transactions
	// just call fn
	ExecTx(ctx context.Context, fn TxFn) error
}

// NoTransactions is the TransactionManager of stores that serialize writes
// on their own.
type NoTransactions struct{}

// ExecTx calls fn directly
func (NoTransactions) ExecTx(ctx context.Context, fn TxFn) error { return fn(ctx) }
