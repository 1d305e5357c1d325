package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"appstore-pricing-service/internal/clients"
	"appstore-pricing-service/internal/models"
	"appstore-pricing-service/internal/territories"
)

// Pagination carries the cursor state of a price listing back to the
// caller.
type Pagination struct {
	NextCursor string `json:"nextCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
}

// PriceListing is the result of resolving a product and listing its
// current and scheduled prices.
type PriceListing struct {
	Resource   Resolution     `json:"resource"`
	Prices     []models.Price `json:"prices"`
	Pagination Pagination     `json:"pagination"`
}

// PricingService exposes the single-item operations: resolve and list
// prices, list price points, and update one territory's price.
type PricingService struct {
	api      clients.CommerceAPI
	resolver *ResolverService
	catalog  *PricePointService
	updates  *PriceUpdateService
	pageSize int
	logger   *logrus.Logger
}

// NewPricingService creates a new pricing service.
func NewPricingService(api clients.CommerceAPI, resolver *ResolverService, catalog *PricePointService, updates *PriceUpdateService, pageSize int, logger *logrus.Logger) *PricingService {
	if logger == nil {
		logger = logrus.New()
	}
	return &PricingService{
		api:      api,
		resolver: resolver,
		catalog:  catalog,
		updates:  updates,
		pageSize: pageSize,
		logger:   logger,
	}
}

// ResolveAndListPrices resolves the product's commerce resource and
// returns one page of its prices with territory names filled in.
func (s *PricingService) ResolveAndListPrices(ctx context.Context, productID, cursor string) (*PriceListing, error) {
	resolution, err := s.resolver.Resolve(ctx, productID)
	if err != nil {
		return nil, err
	}

	page, err := s.api.ListPrices(ctx, clients.PriceQuery{
		Kind:       resolution.Kind,
		ResourceID: resolution.ResourceID,
		Limit:      s.pageSize,
		Cursor:     cursor,
	})
	if err != nil {
		return nil, err
	}

	prices := make([]models.Price, 0, len(page.Prices))
	for _, price := range page.Prices {
		territory := territories.Lookup(price.Territory.Code)
		price.Territory.DisplayName = territory.DisplayName
		if price.Territory.CurrencyCode == "" {
			price.Territory.CurrencyCode = territory.CurrencyCode
		}
		prices = append(prices, price)
	}

	return &PriceListing{
		Resource: *resolution,
		Prices:   prices,
		Pagination: Pagination{
			NextCursor: page.NextCursor,
			HasMore:    page.HasMore,
		},
	}, nil
}

// ListPricePoints resolves the product and returns the complete price
// point catalog for one territory.
func (s *PricingService) ListPricePoints(ctx context.Context, productID, territory string) ([]models.PricePoint, error) {
	resolution, err := s.resolver.Resolve(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.catalog.List(ctx, resolution.Kind, resolution.ResourceID, territory)
}

// UpdatePrice resolves the product and submits a single price change.
func (s *PricingService) UpdatePrice(ctx context.Context, productID, territory, pricePointID string, preserveCurrentPrice bool) error {
	resolution, err := s.resolver.Resolve(ctx, productID)
	if err != nil {
		return err
	}
	return s.updates.Submit(ctx, resolution.Kind, resolution.ResourceID, territory, pricePointID, preserveCurrentPrice)
}
