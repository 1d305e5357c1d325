package services

import (
	"context"
	"time"

	"appstore-pricing-service/internal/clients"
	"appstore-pricing-service/internal/models"
)

// priceChangeLeadDays is how far in the future a price change becomes
// effective; the vendor requires advance notice.
const priceChangeLeadDays = 2

// PriceUpdateService builds and submits the resource-kind-specific
// price update request.
type PriceUpdateService struct {
	api clients.CommerceAPI
	now func() time.Time
}

// NewPriceUpdateService creates a new price update service.
func NewPriceUpdateService(api clients.CommerceAPI) *PriceUpdateService {
	return &PriceUpdateService{
		api: api,
		now: time.Now,
	}
}

// Submit schedules a price change. Subscriptions carry the
// grandfathering flag; one-time purchases have no such concept. One
// vendor write, no local retry.
func (s *PriceUpdateService) Submit(ctx context.Context, kind models.ResourceKind, resourceID, territory, pricePointID string, preserveCurrentPrice bool) error {
	if resourceID == "" {
		return &ValidationError{Field: "resourceId"}
	}
	if pricePointID == "" {
		return &ValidationError{Field: "pricePointId"}
	}
	if kind != models.KindSubscription && territory == "" {
		return &ValidationError{Field: "territory"}
	}

	startDate := s.now().AddDate(0, 0, priceChangeLeadDays).Format("2006-01-02")

	if kind == models.KindSubscription {
		return s.api.CreateSubscriptionPrice(ctx, clients.SubscriptionPriceRequest{
			SubscriptionID:       resourceID,
			PricePointID:         pricePointID,
			StartDate:            startDate,
			PreserveCurrentPrice: preserveCurrentPrice,
		})
	}

	return s.api.CreateInAppPurchasePrice(ctx, clients.PurchasePriceRequest{
		PurchaseID:   resourceID,
		TerritoryID:  territory,
		PricePointID: pricePointID,
		StartDate:    startDate,
	})
}
