package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"appstore-pricing-service/internal/clients"
	"appstore-pricing-service/internal/models"
)

func TestParseBulkEditLines_TolerantParse(t *testing.T) {
	lines := ParseBulkEditLines("US, 9.99\nCA,10.49\n\nbadline\nGB, 8.99")

	assert.Len(t, lines, 3)
	assert.Equal(t, models.BulkEditLine{Territory: "US", DesiredPrice: 9.99}, lines[0])
	assert.Equal(t, models.BulkEditLine{Territory: "CA", DesiredPrice: 10.49}, lines[1])
	assert.Equal(t, models.BulkEditLine{Territory: "GB", DesiredPrice: 8.99}, lines[2])
}

func TestParseBulkEditLines_DropsMalformed(t *testing.T) {
	cases := map[string]string{
		"no comma":        "USA 9.99",
		"too many fields": "USA,9.99,extra",
		"bad price":       "USA, cheap",
		"infinite price":  "USA, +Inf",
		"nan price":       "USA, NaN",
		"empty territory": ", 9.99",
		"blank":           "   ",
	}
	for name, input := range cases {
		assert.Empty(t, ParseBulkEditLines(input), "case %q", name)
	}
}

func TestParseBulkEditLines_WhitespaceTolerant(t *testing.T) {
	lines := ParseBulkEditLines("  USA ,  9.99  \r\n\tJPN,120\n")

	assert.Len(t, lines, 2)
	assert.Equal(t, "USA", lines[0].Territory)
	assert.Equal(t, "JPN", lines[1].Territory)
	assert.Equal(t, 120.0, lines[1].DesiredPrice)
}

func bulkFixture(api clients.CommerceAPI) *BulkService {
	resolver := NewResolverService(api, testAppID, nil)
	catalog := NewPricePointService(api, 200, nil)
	updates := NewPriceUpdateService(api)
	return NewBulkService(resolver, catalog, updates, 0, nil)
}

func territoryIs(territory string) interface{} {
	return mock.MatchedBy(func(query clients.PricePointQuery) bool {
		return query.Territory == territory
	})
}

func TestBulkRun_PartialFailure(t *testing.T) {
	api := new(MockCommerceAPI)
	api.On("GetInAppPurchase", mock.Anything, "iap-1").Return(&models.Product{
		ID:        "iap-1",
		ProductID: "com.example.coins100",
		Kind:      models.KindOneTimePurchase,
	}, nil).Once()
	api.On("ListPricePoints", mock.Anything, territoryIs("USA")).Return(&clients.PricePointPage{
		Points: []models.PricePoint{{ID: "pp-us", CustomerPrice: 9.99}},
	}, nil)
	api.On("ListPricePoints", mock.Anything, territoryIs("CAN")).Return(&clients.PricePointPage{
		Points: []models.PricePoint{{ID: "pp-ca", CustomerPrice: 13.99}},
	}, nil)
	// Territory XX has no price points at all.
	api.On("ListPricePoints", mock.Anything, territoryIs("XX")).Return(&clients.PricePointPage{}, nil)
	api.On("CreateInAppPurchasePrice", mock.Anything, mock.Anything).Return(nil)

	bulk := bulkFixture(api)
	outcome, err := bulk.Run(context.Background(), "iap-1", "USA, 9.99\nXX, 5.99\nCAN, 13.99", false)

	assert.NoError(t, err)
	assert.Equal(t, 3, outcome.Processed)
	assert.Equal(t, 2, outcome.Succeeded)
	assert.Len(t, outcome.Errors, 1)
	assert.Equal(t, "XX", outcome.Errors[0].Territory)
	assert.Equal(t, 5.99, outcome.Errors[0].DesiredPrice)
	assert.Equal(t, "no price points found for territory XX", outcome.Errors[0].Message)
	assert.Equal(t, "XX => 5.99: no price points found for territory XX", outcome.Errors[0].String())
}

func TestBulkRun_LineFailureNeverAbortsBatch(t *testing.T) {
	api := new(MockCommerceAPI)
	api.On("GetInAppPurchase", mock.Anything, "iap-1").Return(&models.Product{
		ID:        "iap-1",
		ProductID: "com.example.coins100",
		Kind:      models.KindOneTimePurchase,
	}, nil)
	api.On("ListPricePoints", mock.Anything, territoryIs("USA")).Return(nil, &clients.UpstreamError{StatusCode: 500, Body: "boom"})
	api.On("ListPricePoints", mock.Anything, territoryIs("JPN")).Return(&clients.PricePointPage{
		Points: []models.PricePoint{{ID: "pp-jp", CustomerPrice: 120}},
	}, nil)
	api.On("CreateInAppPurchasePrice", mock.Anything, mock.Anything).Return(nil)

	bulk := bulkFixture(api)
	outcome, err := bulk.Run(context.Background(), "iap-1", "USA, 9.99\nJPN, 120", false)

	assert.NoError(t, err)
	assert.Equal(t, 2, outcome.Processed)
	assert.Equal(t, 1, outcome.Succeeded)
	assert.Len(t, outcome.Errors, 1)
	assert.Equal(t, "USA", outcome.Errors[0].Territory)
}

func TestBulkRun_ResolvesOnceBeforeLoop(t *testing.T) {
	api := new(MockCommerceAPI)
	api.On("GetInAppPurchase", mock.Anything, "iap-1").Return(&models.Product{
		ID:        "iap-1",
		ProductID: "com.example.coins100",
		Kind:      models.KindOneTimePurchase,
	}, nil)
	api.On("ListPricePoints", mock.Anything, mock.Anything).Return(&clients.PricePointPage{
		Points: []models.PricePoint{{ID: "pp-1", CustomerPrice: 1.99}},
	}, nil)
	api.On("CreateInAppPurchasePrice", mock.Anything, mock.Anything).Return(nil)

	bulk := bulkFixture(api)
	outcome, err := bulk.Run(context.Background(), "iap-1", "USA, 1.99\nCAN, 1.99\nGBR, 1.99", false)

	assert.NoError(t, err)
	assert.Equal(t, 3, outcome.Succeeded)
	api.AssertNumberOfCalls(t, "GetInAppPurchase", 1)
}

func TestBulkRun_ResolutionFailureAbortsBatch(t *testing.T) {
	api := new(MockCommerceAPI)
	upstream := &clients.UpstreamError{StatusCode: 401, Body: "unauthorized"}
	api.On("GetInAppPurchase", mock.Anything, "iap-1").Return(nil, upstream)

	bulk := bulkFixture(api)
	outcome, err := bulk.Run(context.Background(), "iap-1", "USA, 9.99", false)

	assert.ErrorIs(t, err, upstream)
	assert.Nil(t, outcome)
	api.AssertNotCalled(t, "ListPricePoints", mock.Anything, mock.Anything)
}

func TestBulkRun_EmptyInput(t *testing.T) {
	api := new(MockCommerceAPI)

	bulk := bulkFixture(api)
	outcome, err := bulk.Run(context.Background(), "iap-1", "\n\nnothing here\n", false)

	assert.NoError(t, err)
	assert.Equal(t, 0, outcome.Processed)
	assert.Equal(t, 0, outcome.Succeeded)
	assert.Empty(t, outcome.Errors)
	// Nothing to do, so the product is never even resolved.
	api.AssertNotCalled(t, "GetInAppPurchase", mock.Anything, mock.Anything)
}

func TestBulkRun_SubscriptionUsesGrandfathering(t *testing.T) {
	api := new(MockCommerceAPI)
	api.On("GetInAppPurchase", mock.Anything, "iap-sub").Return(&models.Product{
		ID:        "iap-sub",
		ProductID: "com.example.premium.monthly",
		Kind:      models.KindSubscription,
	}, nil)
	api.On("ListSubscriptionGroups", mock.Anything, testAppID).Return([]models.SubscriptionGroup{{ID: "group-1"}}, nil)
	api.On("ListGroupSubscriptions", mock.Anything, "group-1").Return([]models.SubscriptionRef{
		{ID: "sub-1", ProductID: "com.example.premium.monthly"},
	}, nil)
	api.On("ListPricePoints", mock.Anything, territoryIs("USA")).Return(&clients.PricePointPage{
		Points: []models.PricePoint{{ID: "pp-1", CustomerPrice: 9.99}},
	}, nil)

	var captured clients.SubscriptionPriceRequest
	api.On("CreateSubscriptionPrice", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(clients.SubscriptionPriceRequest)
	}).Return(nil)

	bulk := bulkFixture(api)
	outcome, err := bulk.Run(context.Background(), "iap-sub", "USA, 9.99", true)

	assert.NoError(t, err)
	assert.Equal(t, 1, outcome.Succeeded)
	assert.Equal(t, "sub-1", captured.SubscriptionID)
	assert.True(t, captured.PreserveCurrentPrice)
}
