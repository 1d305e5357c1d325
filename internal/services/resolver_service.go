package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"appstore-pricing-service/internal/clients"
	"appstore-pricing-service/internal/models"
)

// Resolution is the concrete commerce resource behind a product id.
type Resolution struct {
	ResourceID string              `json:"resourceId"`
	Kind       models.ResourceKind `json:"resourceKind"`
}

// ResolverService maps a product id to its commerce resource. One-time
// purchases resolve to themselves; auto-renewable subscriptions hide
// behind a different resource id that can only be recovered by walking
// the app's subscription groups.
type ResolverService struct {
	api    clients.CommerceAPI
	appID  string
	logger *logrus.Logger
}

// NewResolverService creates a new resolver service.
func NewResolverService(api clients.CommerceAPI, appID string, logger *logrus.Logger) *ResolverService {
	if logger == nil {
		logger = logrus.New()
	}
	return &ResolverService{
		api:    api,
		appID:  appID,
		logger: logger,
	}
}

// Resolve determines the resource kind and id for a product. The group
// scan is sequential in vendor order and stops at the first
// subscription whose product identifier matches; product identifiers
// are unique, so ties cannot occur.
func (s *ResolverService) Resolve(ctx context.Context, productID string) (*Resolution, error) {
	product, err := s.api.GetInAppPurchase(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.Kind != models.KindSubscription {
		return &Resolution{ResourceID: productID, Kind: models.KindOneTimePurchase}, nil
	}

	groups, err := s.api.ListSubscriptionGroups(ctx, s.appID)
	if err != nil {
		return nil, err
	}

	for _, group := range groups {
		subs, err := s.api.ListGroupSubscriptions(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		for _, sub := range subs {
			if sub.ProductID == product.ProductID {
				s.logger.WithFields(logrus.Fields{
					"productId":      product.ProductID,
					"subscriptionId": sub.ID,
					"groupId":        group.ID,
				}).Debug("Resolved subscription resource")
				return &Resolution{ResourceID: sub.ID, Kind: models.KindSubscription}, nil
			}
		}
	}

	return nil, ErrResourceNotFound
}
