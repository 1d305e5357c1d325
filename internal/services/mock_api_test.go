package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"appstore-pricing-service/internal/clients"
	"appstore-pricing-service/internal/models"
)

// MockCommerceAPI is a mock implementation of clients.CommerceAPI
type MockCommerceAPI struct {
	mock.Mock
}

// Ensure MockCommerceAPI implements the interface
var _ clients.CommerceAPI = (*MockCommerceAPI)(nil)

func (m *MockCommerceAPI) GetInAppPurchase(ctx context.Context, purchaseID string) (*models.Product, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockCommerceAPI) ListSubscriptionGroups(ctx context.Context, appID string) ([]models.SubscriptionGroup, error) {
	args := m.Called(ctx, appID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SubscriptionGroup), args.Error(1)
}

func (m *MockCommerceAPI) ListGroupSubscriptions(ctx context.Context, groupID string) ([]models.SubscriptionRef, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SubscriptionRef), args.Error(1)
}

func (m *MockCommerceAPI) ListPricePoints(ctx context.Context, query clients.PricePointQuery) (*clients.PricePointPage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.PricePointPage), args.Error(1)
}

func (m *MockCommerceAPI) ListPrices(ctx context.Context, query clients.PriceQuery) (*clients.PricePage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.PricePage), args.Error(1)
}

func (m *MockCommerceAPI) CreateSubscriptionPrice(ctx context.Context, req clients.SubscriptionPriceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockCommerceAPI) CreateInAppPurchasePrice(ctx context.Context, req clients.PurchasePriceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
