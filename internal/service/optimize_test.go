//go:build !integration

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pharmabot/basket-service/internal/domain/dto"
	"github.com/pharmabot/basket-service/internal/domain/model"
	"github.com/pharmabot/basket-service/internal/mocks"
	"github.com/pharmabot/basket-service/internal/optimizer"
)

func testDec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testOffer(productID, pharmacyID int64, price string) model.Offer {
	return model.Offer{
		ProductID: productID,
		Pharmacy: model.Pharmacy{
			ID:               pharmacyID,
			Name:             "Farmacia",
			BaseShippingCost: testDec("5.00"),
		},
		Price: testDec(price),
	}
}

func TestOptimizeService_Optimize(t *testing.T) {
	engine := optimizer.NewEngineService()

	t.Run("optimizes the stored basket", func(t *testing.T) {
		basketRepo := new(mocks.MockBasketRepositoryInterface)
		offersRepo := new(mocks.MockOffersRepositoryInterface)
		basketRepo.On("List", mock.Anything).Return([]model.BasketItem{
			{ProductID: 1, Quantity: 1},
		}, nil)
		offersRepo.On("ListByProducts", mock.Anything, []int64{1}).Return([]model.Offer{
			testOffer(1, 1, "10.00"),
		}, nil)

		svc := NewOptimizeService(engine, basketRepo, offersRepo)
		solutions, err := svc.Optimize(context.Background(), dto.OptimizeBasketRequest{MaxOrders: 1, Limits: "5"})
		require.NoError(t, err)
		require.Len(t, solutions, 1)
		assert.True(t, solutions[0].TotalCost.Equal(testDec("15.00")))
		basketRepo.AssertExpectations(t)
		offersRepo.AssertExpectations(t)
	})

	t.Run("inline items override the stored basket", func(t *testing.T) {
		basketRepo := new(mocks.MockBasketRepositoryInterface)
		offersRepo := new(mocks.MockOffersRepositoryInterface)
		offersRepo.On("ListByProducts", mock.Anything, []int64{2}).Return([]model.Offer{
			testOffer(2, 1, "4.00"),
		}, nil)

		svc := NewOptimizeService(engine, basketRepo, offersRepo)
		solutions, err := svc.Optimize(context.Background(), dto.OptimizeBasketRequest{
			MaxOrders: 1,
			Limits:    "5",
			Items:     []dto.BasketItemRequest{{ProductID: 2, Quantity: 2}},
		})
		require.NoError(t, err)
		require.Len(t, solutions, 1)
		assert.True(t, solutions[0].TotalCost.Equal(testDec("13.00")))
		basketRepo.AssertNotCalled(t, "List")
	})

	t.Run("empty basket yields empty result without touching offers", func(t *testing.T) {
		basketRepo := new(mocks.MockBasketRepositoryInterface)
		offersRepo := new(mocks.MockOffersRepositoryInterface)
		basketRepo.On("List", mock.Anything).Return([]model.BasketItem{}, nil)

		svc := NewOptimizeService(engine, basketRepo, offersRepo)
		solutions, err := svc.Optimize(context.Background(), dto.OptimizeBasketRequest{MaxOrders: 2, Limits: "5"})
		require.NoError(t, err)
		assert.Empty(t, solutions)
		offersRepo.AssertNotCalled(t, "ListByProducts")
	})

	t.Run("basket storage errors surface", func(t *testing.T) {
		basketRepo := new(mocks.MockBasketRepositoryInterface)
		offersRepo := new(mocks.MockOffersRepositoryInterface)
		basketRepo.On("List", mock.Anything).Return(nil, errors.New("mongo down"))

		svc := NewOptimizeService(engine, basketRepo, offersRepo)
		_, err := svc.Optimize(context.Background(), dto.OptimizeBasketRequest{Limits: "5"})
		assert.Error(t, err)
	})

	t.Run("nil basket repository without override", func(t *testing.T) {
		offersRepo := new(mocks.MockOffersRepositoryInterface)
		svc := NewOptimizeService(engine, nil, offersRepo)
		_, err := svc.Optimize(context.Background(), dto.OptimizeBasketRequest{Limits: "5"})
		assert.ErrorIs(t, err, ErrBasketUnavailable)
	})

	t.Run("nil offers repository", func(t *testing.T) {
		svc := NewOptimizeService(engine, nil, nil)
		_, err := svc.Optimize(context.Background(), dto.OptimizeBasketRequest{
			Limits: "5",
			Items:  []dto.BasketItemRequest{{ProductID: 1, Quantity: 1}},
		})
		assert.ErrorIs(t, err, ErrOffersUnavailable)
	})

	t.Run("default limits apply when unspecified", func(t *testing.T) {
		offersRepo := new(mocks.MockOffersRepositoryInterface)
		offersRepo.On("ListByProducts", mock.Anything, []int64{1}).Return([]model.Offer{
			testOffer(1, 1, "10.00"),
			testOffer(1, 2, "11.00"),
		}, nil)

		svc := NewOptimizeService(engine, nil, offersRepo)
		solutions, err := svc.Optimize(context.Background(), dto.OptimizeBasketRequest{
			Items: []dto.BasketItemRequest{{ProductID: 1, Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Len(t, solutions, 2)
	})
}

func TestOptimizeService_OffersSnapshotCache(t *testing.T) {
	engine := optimizer.NewEngineService()

	t.Run("second call within TTL reuses the snapshot", func(t *testing.T) {
		offersRepo := new(mocks.MockOffersRepositoryInterface)
		offersRepo.On("ListByProducts", mock.Anything, []int64{1}).Return([]model.Offer{
			testOffer(1, 1, "10.00"),
		}, nil).Once()

		svc := NewOptimizeService(engine, nil, offersRepo, WithOffersSnapshotCache(time.Minute))
		req := dto.OptimizeBasketRequest{
			Limits: "5",
			Items:  []dto.BasketItemRequest{{ProductID: 1, Quantity: 1}},
		}

		first, err := svc.Optimize(context.Background(), req)
		require.NoError(t, err)
		second, err := svc.Optimize(context.Background(), req)
		require.NoError(t, err)

		require.Len(t, first, 1)
		require.Len(t, second, 1)
		assert.True(t, first[0].TotalCost.Equal(second[0].TotalCost))
		offersRepo.AssertExpectations(t)
	})

	t.Run("invalidation forces a fresh read", func(t *testing.T) {
		offersRepo := new(mocks.MockOffersRepositoryInterface)
		offersRepo.On("ListByProducts", mock.Anything, []int64{1}).Return([]model.Offer{
			testOffer(1, 1, "10.00"),
		}, nil).Twice()

		svc := NewOptimizeService(engine, nil, offersRepo, WithOffersSnapshotCache(time.Minute))
		req := dto.OptimizeBasketRequest{
			Limits: "5",
			Items:  []dto.BasketItemRequest{{ProductID: 1, Quantity: 1}},
		}

		_, err := svc.Optimize(context.Background(), req)
		require.NoError(t, err)
		svc.InvalidateOffers()
		_, err = svc.Optimize(context.Background(), req)
		require.NoError(t, err)
		offersRepo.AssertExpectations(t)
	})
}
