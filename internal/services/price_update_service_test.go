package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"appstore-pricing-service/internal/clients"
	"appstore-pricing-service/internal/models"
)

func TestSubmit_SubscriptionPayload(t *testing.T) {
	api := new(MockCommerceAPI)
	var captured clients.SubscriptionPriceRequest
	api.On("CreateSubscriptionPrice", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(clients.SubscriptionPriceRequest)
	}).Return(nil)

	svc := NewPriceUpdateService(api)
	svc.now = func() time.Time { return time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC) }

	err := svc.Submit(context.Background(), models.KindSubscription, "sub-1", "USA", "pp-9", true)

	assert.NoError(t, err)
	assert.Equal(t, "sub-1", captured.SubscriptionID)
	assert.Equal(t, "pp-9", captured.PricePointID)
	assert.True(t, captured.PreserveCurrentPrice)
	// Start date is two days out, date only.
	assert.Equal(t, "2026-08-30", captured.StartDate)
	api.AssertNotCalled(t, "CreateInAppPurchasePrice", mock.Anything, mock.Anything)
}

func TestSubmit_OneTimePurchasePayload(t *testing.T) {
	api := new(MockCommerceAPI)
	var captured clients.PurchasePriceRequest
	api.On("CreateInAppPurchasePrice", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(clients.PurchasePriceRequest)
	}).Return(nil)

	svc := NewPriceUpdateService(api)
	svc.now = func() time.Time { return time.Date(2026, 12, 30, 23, 0, 0, 0, time.UTC) }

	err := svc.Submit(context.Background(), models.KindOneTimePurchase, "iap-1", "DEU", "pp-3", false)

	assert.NoError(t, err)
	assert.Equal(t, "iap-1", captured.PurchaseID)
	assert.Equal(t, "DEU", captured.TerritoryID)
	assert.Equal(t, "pp-3", captured.PricePointID)
	// Lead time crosses the year boundary.
	assert.Equal(t, "2027-01-01", captured.StartDate)
	api.AssertNotCalled(t, "CreateSubscriptionPrice", mock.Anything, mock.Anything)
}

func TestSubmit_MissingFields(t *testing.T) {
	svc := NewPriceUpdateService(new(MockCommerceAPI))

	var validationErr *ValidationError

	err := svc.Submit(context.Background(), models.KindOneTimePurchase, "", "USA", "pp-1", false)
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "resourceId", validationErr.Field)

	err = svc.Submit(context.Background(), models.KindOneTimePurchase, "iap-1", "USA", "", false)
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "pricePointId", validationErr.Field)

	err = svc.Submit(context.Background(), models.KindOneTimePurchase, "iap-1", "", "pp-1", false)
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "territory", validationErr.Field)
}

func TestSubmit_UpstreamErrorSurfaces(t *testing.T) {
	api := new(MockCommerceAPI)
	upstream := &clients.UpstreamError{StatusCode: 409, Body: "conflict"}
	api.On("CreateSubscriptionPrice", mock.Anything, mock.Anything).Return(upstream)

	svc := NewPriceUpdateService(api)
	err := svc.Submit(context.Background(), models.KindSubscription, "sub-1", "USA", "pp-1", false)

	assert.ErrorIs(t, err, upstream)
}
