package service_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/stockcheckout/internal/domain"
	"github.com/nikolayk812/stockcheckout/internal/metrics"
	"github.com/nikolayk812/stockcheckout/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftManagerRejectsAnonymousUser(t *testing.T) {
	drafts := &fakeDrafts{}
	m := metrics.NewCheckout(prometheus.NewRegistry())
	manager := service.NewDraftManager(drafts, m, nil)

	_, err := manager.GetOrCreateDraft(t.Context(), domain.User{}, domain.CartSnapshot{})
	require.ErrorIs(t, err, domain.ErrUnauthenticated)

	assert.Zero(t, drafts.upserts, "store is not touched")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Drafts.WithLabelValues(metrics.DraftUnauthenticated)))
}

func TestDraftManagerStoreError(t *testing.T) {
	errStore := errors.New("store down")
	drafts := &fakeDrafts{err: errStore}
	m := metrics.NewCheckout(prometheus.NewRegistry())
	manager := service.NewDraftManager(drafts, m, nil)

	_, err := manager.GetOrCreateDraft(t.Context(), domain.User{ID: "u1"}, domain.CartSnapshot{})
	require.ErrorIs(t, err, errStore)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Drafts.WithLabelValues(metrics.DraftError)))
}

func TestDraftManagerWithoutMetrics(t *testing.T) {
	manager := service.NewDraftManager(&fakeDrafts{}, nil, nil)

	draft, err := manager.GetOrCreateDraft(t.Context(), domain.User{ID: "u1"}, domain.CartSnapshot{Items: snapshotItems(2)})
	require.NoError(t, err)
	assert.Equal(t, "u1", draft.OwnerID)
	assert.Len(t, draft.Cart.Items, 2)
}

func TestCreateOrderPendingAnonymousOpensNoTransaction(t *testing.T) {
	uow := &failingUnitOfWork{}
	checkout := service.NewCheckoutService(service.CheckoutDeps{
		UnitOfWork: uow,
		Drafts:     service.NewDraftManager(&fakeDrafts{}, nil, nil),
		Currency:   ars,
	})

	_, err := checkout.CreateOrderPending(t.Context(), domain.User{}, domain.OrderData{})
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Zero(t, uow.calls)
}

func TestCartServiceSnapshotCacheAside(t *testing.T) {
	carts := &fakeCarts{items: snapshotItems(3)}
	c := newMemoryCache()
	svc := service.NewCartService(nil, carts, c, ars, nil)

	first, err := svc.CurrentSnapshot(t.Context(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 6, first.TotalQuantity)
	assert.Equal(t, "ARS", first.Currency)

	second, err := svc.CurrentSnapshot(t.Context(), "u1")
	require.NoError(t, err)
	assert.Equal(t, first.TotalQuantity, second.TotalQuantity)
	assert.Equal(t, 1, carts.reads, "second read is served from cache")

	productID := carts.items[0].ProductID
	require.NoError(t, svc.Clear(t.Context(), "u1", productID))
	assert.Equal(t, []uuid.UUID{productID}, carts.cleared)
	assert.NotContains(t, c.entries, "u1")

	require.NoError(t, svc.Clear(t.Context(), "u1"))
	assert.Empty(t, carts.items)
}

func TestCartServiceCacheFailureFallsBackToStore(t *testing.T) {
	carts := &fakeCarts{items: snapshotItems(1)}
	c := newMemoryCache()
	c.err = errors.New("redis unreachable")
	svc := service.NewCartService(nil, carts, c, ars, nil)

	for range 2 {
		s, err := svc.CurrentSnapshot(t.Context(), "u1")
		require.NoError(t, err)
		assert.Equal(t, 1, s.TotalQuantity)
	}
	assert.Equal(t, 2, carts.reads)

	svc.Invalidate(t.Context(), "u1")
	assert.Equal(t, 1, c.deletes)
}

func TestCartServiceWithoutCache(t *testing.T) {
	carts := &fakeCarts{}
	svc := service.NewCartService(nil, carts, nil, ars, nil)

	s, err := svc.CurrentSnapshot(t.Context(), "u1")
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())

	svc.Invalidate(t.Context(), "u1")

	require.ErrorIs(t, svc.AddItem(t.Context(), "", uuid.New(), 1), domain.ErrValidation)
	require.ErrorIs(t, svc.AddItem(t.Context(), "u1", uuid.New(), 0), domain.ErrValidation)
}

func TestBeginCheckoutIgnoresSnapshotCachedDuringCartChange(t *testing.T) {
	ctx := t.Context()
	user := domain.User{ID: "u1"}

	carts := &fakeCarts{items: snapshotItems(1)}
	c := newMemoryCache()
	svc := service.NewCartService(nil, carts, c, ars, nil)
	checkout := service.NewCheckoutService(service.CheckoutDeps{
		Drafts:   service.NewDraftManager(&fakeDrafts{}, nil, nil),
		Carts:    svc,
		Cache:    c,
		Currency: ars,
	})

	// the line is removed after the display read loaded the rows but before it cached them
	removed := carts.items[0].ProductID
	carts.duringRead = func() {
		require.NoError(t, svc.RemoveItem(ctx, user.ID, removed))
	}

	stale, err := svc.CurrentSnapshot(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, stale.Items, 1)
	require.Contains(t, c.entries, user.ID, "stale snapshot is cached")

	draft, err := checkout.BeginCheckout(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, draft.Cart.Items)
	assert.Zero(t, draft.Cart.TotalQuantity)

	assert.NotContains(t, c.entries, user.ID, "entering checkout drops the stale entry")

	shown, err := svc.CurrentSnapshot(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, shown.Items)
}

func TestCartServiceRemovalOfVanishedLineInvalidates(t *testing.T) {
	tests := []struct {
		name   string
		remove func(svc *service.CartService, productID uuid.UUID) error
	}{
		{
			name: "remove item",
			remove: func(svc *service.CartService, productID uuid.UUID) error {
				return svc.RemoveItem(t.Context(), "u1", productID)
			},
		},
		{
			name: "subtract item",
			remove: func(svc *service.CartService, productID uuid.UUID) error {
				return svc.SubtractItem(t.Context(), "u1", productID, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carts := &fakeCarts{items: snapshotItems(1)}
			c := newMemoryCache()
			svc := service.NewCartService(nil, carts, c, ars, nil)

			cached, err := svc.CurrentSnapshot(t.Context(), "u1")
			require.NoError(t, err)
			require.Len(t, cached.Items, 1)

			// rows gone with a deleted product, the cache still lists it
			productID := carts.items[0].ProductID
			carts.items = nil

			err = tt.remove(svc, productID)
			require.ErrorIs(t, err, domain.ErrNotFound)
			assert.NotContains(t, c.entries, "u1")

			fresh, err := svc.CurrentSnapshot(t.Context(), "u1")
			require.NoError(t, err)
			assert.Empty(t, fresh.Items)
			assert.Equal(t, 2, carts.reads)
		})
	}
}

func TestCartServiceLiveSnapshotSkipsCache(t *testing.T) {
	carts := &fakeCarts{items: snapshotItems(2)}
	c := newMemoryCache()
	svc := service.NewCartService(nil, carts, c, ars, nil)

	_, err := svc.CurrentSnapshot(t.Context(), "u1")
	require.NoError(t, err)

	carts.items = carts.items[:1]

	live, err := svc.LiveSnapshot(t.Context(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, live.TotalQuantity)
	assert.Equal(t, 2, carts.reads)
	assert.NotContains(t, c.entries, "u1")
}
