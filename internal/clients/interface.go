package clients

import (
	"context"
	"fmt"

	"appstore-pricing-service/internal/models"
)

// CommerceAPI defines the vendor surface the pricing services depend on.
// The App Store client implements it; tests substitute a mock.
type CommerceAPI interface {
	// GetInAppPurchase fetches a single in-app purchase record by its
	// vendor resource id.
	GetInAppPurchase(ctx context.Context, purchaseID string) (*models.Product, error)

	// ListSubscriptionGroups returns every subscription group belonging
	// to the app, in vendor order, all pages merged.
	ListSubscriptionGroups(ctx context.Context, appID string) ([]models.SubscriptionGroup, error)

	// ListGroupSubscriptions returns the subscriptions inside one group.
	ListGroupSubscriptions(ctx context.Context, groupID string) ([]models.SubscriptionRef, error)

	// ListPricePoints returns one page of allowed price points for a
	// (resource, territory) pair.
	ListPricePoints(ctx context.Context, query PricePointQuery) (*PricePointPage, error)

	// ListPrices returns one page of the resource's active or scheduled
	// prices, joined with their included price points and territories.
	ListPrices(ctx context.Context, query PriceQuery) (*PricePage, error)

	// CreateSubscriptionPrice schedules a new subscription price.
	CreateSubscriptionPrice(ctx context.Context, req SubscriptionPriceRequest) error

	// CreateInAppPurchasePrice schedules a new one-time purchase price.
	CreateInAppPurchasePrice(ctx context.Context, req PurchasePriceRequest) error
}

// PricePointQuery scopes a price-point listing to one resource and
// territory. Cursor is empty for the first page.
type PricePointQuery struct {
	Kind       models.ResourceKind
	ResourceID string
	Territory  string
	Limit      int
	Cursor     string
}

// PricePointPage contains one page of price points.
type PricePointPage struct {
	Points     []models.PricePoint
	NextCursor string
	HasMore    bool
}

// PriceQuery scopes a price listing to one resource.
type PriceQuery struct {
	Kind       models.ResourceKind
	ResourceID string
	Limit      int
	Cursor     string
}

// PricePage contains one page of prices.
type PricePage struct {
	Prices     []models.Price
	NextCursor string
	HasMore    bool
}

// SubscriptionPriceRequest is the write payload for a subscription
// price change. PreserveCurrentPrice keeps existing subscribers on
// their prior price when true.
type SubscriptionPriceRequest struct {
	SubscriptionID       string
	PricePointID         string
	StartDate            string
	PreserveCurrentPrice bool
}

// PurchasePriceRequest is the write payload for a one-time purchase
// price change. No grandfathering concept applies.
type PurchasePriceRequest struct {
	PurchaseID   string
	TerritoryID  string
	PricePointID string
	StartDate    string
}

// UpstreamError is any non-success response from the vendor. The core
// never retries these.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("app store api error (status %d): %s", e.StatusCode, e.Body)
}
