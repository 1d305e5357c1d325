package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"appstore-pricing-service/internal/clients"
	"appstore-pricing-service/internal/models"
)

// PricePointService retrieves the complete list of allowed price points
// for a (resource, territory) pair, merging every page the vendor
// returns.
type PricePointService struct {
	api      clients.CommerceAPI
	pageSize int
	logger   *logrus.Logger
}

// NewPricePointService creates a new price point service.
func NewPricePointService(api clients.CommerceAPI, pageSize int, logger *logrus.Logger) *PricePointService {
	if logger == nil {
		logger = logrus.New()
	}
	return &PricePointService{
		api:      api,
		pageSize: pageSize,
		logger:   logger,
	}
}

// List fetches all price points for the resource in one territory. A
// failure on the first page fails the call; a failure on a later page
// truncates the result to what was fetched so far, since the catalog
// feeds a best-effort matcher.
func (s *PricePointService) List(ctx context.Context, kind models.ResourceKind, resourceID, territory string) ([]models.PricePoint, error) {
	query := clients.PricePointQuery{
		Kind:       kind,
		ResourceID: resourceID,
		Territory:  territory,
		Limit:      s.pageSize,
	}

	page, err := s.api.ListPricePoints(ctx, query)
	if err != nil {
		return nil, err
	}

	points := page.Points
	for page.HasMore {
		query.Cursor = page.NextCursor
		page, err = s.api.ListPricePoints(ctx, query)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"resourceId": resourceID,
				"territory":  territory,
				"fetched":    len(points),
			}).WithError(err).Warn("Price point pagination failed, returning partial catalog")
			return points, nil
		}
		points = append(points, page.Points...)
	}
	return points, nil
}
