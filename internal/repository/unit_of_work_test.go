package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/stockcheckout/internal/domain"
	"github.com/nikolayk812/stockcheckout/internal/port"
	"github.com/nikolayk812/stockcheckout/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type unitOfWorkSuite struct {
	pgSuite

	uow      port.UnitOfWork
	products port.ProductRepository
}

// entry point to run the tests in the suite
func TestUnitOfWorkSuite(t *testing.T) {
	suite.Run(t, new(unitOfWorkSuite))
}

func (s *unitOfWorkSuite) SetupSuite() {
	s.pgSuite.SetupSuite()
	s.uow = repository.NewUnitOfWork(s.pool, 200*time.Millisecond)
	s.products = repository.NewProduct(s.pool)
}

// after each test
func (s *unitOfWorkSuite) TearDownTest() {
	s.deleteAll()
}

func (s *unitOfWorkSuite) TestCommit() {
	t := s.T()
	ctx := t.Context()

	p := s.insertProducts(fakeProduct())[0]
	ownerID := gofakeit.UUID()

	err := s.uow.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		locked, err := repos.Products.LockProducts(ctx, []uuid.UUID{p.ID})
		if err != nil {
			return err
		}

		reserved := locked[0]
		if !reserved.Reserve(1) {
			return errors.New("reserve failed")
		}

		if err := repos.Products.UpdateStock(ctx, []domain.Product{reserved}); err != nil {
			return err
		}

		return repos.Carts.AddItem(ctx, ownerID, p.ID, 1)
	})
	require.NoError(t, err)

	actual := s.getProduct(p.ID)
	assert.Equal(t, p.Stock-1, actual.Stock)
	assert.Equal(t, 1, actual.StockReserved)

	cart, err := repository.NewCart(s.pool).GetCart(ctx, ownerID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func (s *unitOfWorkSuite) TestRollbackOnError() {
	t := s.T()
	ctx := t.Context()

	p := s.insertProducts(fakeProduct())[0]
	errBoom := errors.New("boom")

	err := s.uow.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		changed := p
		changed.Stock = 0
		changed.StockReserved = p.Stock

		if err := repos.Products.UpdateStock(ctx, []domain.Product{changed}); err != nil {
			return err
		}

		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	actual := s.getProduct(p.ID)
	assert.Equal(t, p.Stock, actual.Stock)
	assert.Zero(t, actual.StockReserved)
}

func (s *unitOfWorkSuite) TestCheckViolationIsValidation() {
	t := s.T()
	ctx := t.Context()

	p := s.insertProducts(fakeProduct())[0]

	err := s.uow.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		oversold := p
		oversold.Stock = -1
		return repos.Products.UpdateStock(ctx, []domain.Product{oversold})
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func (s *unitOfWorkSuite) TestLockTimeoutIsConflict() {
	t := s.T()
	ctx := t.Context()

	p := s.insertProducts(fakeProduct())[0]

	holder, err := s.pool.Begin(ctx)
	require.NoError(t, err)
	defer func() {
		_ = holder.Rollback(context.WithoutCancel(ctx))
	}()

	_, err = holder.Exec(ctx, "SELECT id FROM products WHERE id = $1 FOR UPDATE", p.ID)
	require.NoError(t, err)

	started := time.Now()
	err = s.uow.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		_, err := repos.Products.LockProducts(ctx, []uuid.UUID{p.ID})
		return err
	})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Less(t, time.Since(started), 5*time.Second, "lock wait is bounded")
}

func (s *unitOfWorkSuite) getProduct(id uuid.UUID) domain.Product {
	products, err := s.products.GetProducts(s.T().Context(), []uuid.UUID{id})
	s.Require().NoError(err)
	s.Require().Len(products, 1)

	return products[0]
}
