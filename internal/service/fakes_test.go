package service_test

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/stockcheckout/internal/domain"
	"github.com/nikolayk812/stockcheckout/internal/port"
	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

// fakeDrafts records calls and returns a fixed draft.
type fakeDrafts struct {
	port.DraftRepository

	mu      sync.Mutex
	upserts int
	err     error
}

func (f *fakeDrafts) UpsertOpenDraft(_ context.Context, ownerID string, snapshot domain.CartSnapshot) (domain.OrderDraft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.upserts++
	if f.err != nil {
		return domain.OrderDraft{}, f.err
	}

	return domain.OrderDraft{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Status:  domain.DraftStatusOpen,
		Cart:    snapshot,
	}, nil
}

// fakeCarts serves snapshot rows from memory.
type fakeCarts struct {
	port.CartRepository

	items   []domain.CartSnapshotItem
	reads   int
	cleared []uuid.UUID

	// duringRead runs once, after the rows were read and before they are returned
	duringRead func()
}

func (f *fakeCarts) GetSnapshotItems(context.Context, string, currency.Unit) ([]domain.CartSnapshotItem, error) {
	f.reads++
	items := f.items

	if hook := f.duringRead; hook != nil {
		f.duringRead = nil
		hook()
	}

	return items, nil
}

func (f *fakeCarts) DeleteItem(_ context.Context, _ string, productID uuid.UUID) (bool, error) {
	n := len(f.items)
	f.items = lo.Reject(f.items, func(item domain.CartSnapshotItem, _ int) bool {
		return item.ProductID == productID
	})
	return len(f.items) != n, nil
}

func (f *fakeCarts) SubtractItem(_ context.Context, _ string, productID uuid.UUID, quantity int) (bool, error) {
	for i, item := range f.items {
		if item.ProductID != productID {
			continue
		}

		items := slices.Clone(f.items)
		if item.Quantity <= quantity {
			f.items = slices.Delete(items, i, i+1)
		} else {
			items[i].Quantity -= quantity
			f.items = items
		}
		return true, nil
	}
	return false, nil
}

func (f *fakeCarts) DeleteItems(_ context.Context, _ string, productIDs []uuid.UUID) (int64, error) {
	f.cleared = append(f.cleared, productIDs...)
	return int64(len(productIDs)), nil
}

func (f *fakeCarts) ClearCart(context.Context, string) (int64, error) {
	n := len(f.items)
	f.items = nil
	return int64(n), nil
}

// memoryCache is a port.SnapshotCache that can be told to fail.
type memoryCache struct {
	entries map[string]domain.CartSnapshot
	err     error
	deletes int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]domain.CartSnapshot{}}
}

func (c *memoryCache) Get(_ context.Context, ownerID string) (domain.CartSnapshot, error) {
	if c.err != nil {
		return domain.CartSnapshot{}, c.err
	}

	s, ok := c.entries[ownerID]
	if !ok {
		return s, port.ErrCacheMiss
	}
	return s, nil
}

func (c *memoryCache) Set(_ context.Context, ownerID string, s domain.CartSnapshot) error {
	if c.err != nil {
		return c.err
	}

	c.entries[ownerID] = s
	return nil
}

func (c *memoryCache) Delete(_ context.Context, ownerID string) error {
	c.deletes++
	if c.err != nil {
		return c.err
	}

	delete(c.entries, ownerID)
	return nil
}

// failingUnitOfWork fails the test if a transaction is opened.
type failingUnitOfWork struct {
	calls int
}

func (u *failingUnitOfWork) Do(context.Context, func(context.Context, port.Repositories) error) error {
	u.calls++
	return errors.New("unexpected transaction")
}

func snapshotItems(n int) []domain.CartSnapshotItem {
	return lo.Times(n, func(i int) domain.CartSnapshotItem {
		return domain.CartSnapshotItem{ProductID: uuid.New(), Name: "item", Quantity: i + 1}
	})
}
