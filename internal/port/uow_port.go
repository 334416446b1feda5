package port

import "context"

// Repositories bound to one transaction.
type Repositories struct {
	Products ProductRepository
	Carts    CartRepository
	Drafts   DraftRepository
	Orders   OrderRepository
	Methods  MethodRepository
}

type UnitOfWork interface {
	// Do runs fn in a single transaction. It commits when fn returns nil
	// and rolls back otherwise.
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
