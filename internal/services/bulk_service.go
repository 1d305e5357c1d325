package services

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"appstore-pricing-service/internal/models"
)

// BulkService reconciles many territory prices in one batch. Lines are
// processed strictly sequentially with a fixed pause between them; the
// vendor enforces a request-rate ceiling and tolerates only paced,
// sequential writes.
type BulkService struct {
	resolver *ResolverService
	catalog  *PricePointService
	updates  *PriceUpdateService
	pacing   time.Duration
	logger   *logrus.Logger
}

// NewBulkService creates a new bulk edit service.
func NewBulkService(resolver *ResolverService, catalog *PricePointService, updates *PriceUpdateService, pacing time.Duration, logger *logrus.Logger) *BulkService {
	if logger == nil {
		logger = logrus.New()
	}
	return &BulkService{
		resolver: resolver,
		catalog:  catalog,
		updates:  updates,
		pacing:   pacing,
		logger:   logger,
	}
}

// Run executes one bulk edit. The product's resource is resolved once
// before the loop: resolution is per-product, not per-territory, and
// the kind cannot change mid-batch. A failure to resolve aborts the
// whole batch; after that, no single line's failure ever does.
func (s *BulkService) Run(ctx context.Context, productID, rawText string, preserveCurrentPrice bool) (*models.BulkEditOutcome, error) {
	lines := ParseBulkEditLines(rawText)

	outcome := &models.BulkEditOutcome{
		Processed: len(lines),
		Errors:    []models.BulkEditError{},
	}
	if len(lines) == 0 {
		return outcome, nil
	}

	resolution, err := s.resolver.Resolve(ctx, productID)
	if err != nil {
		return nil, err
	}

	for i, line := range lines {
		if err := s.applyLine(ctx, resolution, line, preserveCurrentPrice); err != nil {
			entry := models.BulkEditError{
				Territory:    line.Territory,
				DesiredPrice: line.DesiredPrice,
				Message:      err.Error(),
			}
			s.logger.WithFields(logrus.Fields{
				"productId": productID,
				"territory": line.Territory,
			}).WithError(err).Warn("Bulk edit line failed")
			outcome.Errors = append(outcome.Errors, entry)
		} else {
			outcome.Succeeded++
		}

		if i < len(lines)-1 {
			select {
			case <-ctx.Done():
				return outcome, nil
			case <-time.After(s.pacing):
			}
		}
	}

	s.logger.WithFields(logrus.Fields{
		"productId": productID,
		"processed": outcome.Processed,
		"succeeded": outcome.Succeeded,
		"failed":    len(outcome.Errors),
	}).Info("Bulk edit completed")
	return outcome, nil
}

// applyLine runs catalog → match → submit for one territory.
func (s *BulkService) applyLine(ctx context.Context, resolution *Resolution, line models.BulkEditLine, preserveCurrentPrice bool) error {
	points, err := s.catalog.List(ctx, resolution.Kind, resolution.ResourceID, line.Territory)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return &noPricePointsError{territory: line.Territory}
	}

	point, err := MatchPricePoint(line.DesiredPrice, points)
	if err != nil {
		return err
	}

	return s.updates.Submit(ctx, resolution.Kind, resolution.ResourceID, line.Territory, point.ID, preserveCurrentPrice)
}

type noPricePointsError struct {
	territory string
}

func (e *noPricePointsError) Error() string {
	return "no price points found for territory " + e.territory
}

// ParseBulkEditLines parses the bulk edit text. Each line is
// "territory, price"; lines are trimmed, blank lines are skipped, and a
// line that does not split into exactly two fields on a single comma,
// or whose price is not a finite number, is silently dropped. Dropped
// lines are not counted and produce no error entries.
func ParseBulkEditLines(rawText string) []models.BulkEditLine {
	var lines []models.BulkEditLine
	for _, raw := range strings.Split(rawText, "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		fields := strings.Split(raw, ",")
		if len(fields) != 2 {
			continue
		}
		territory := strings.TrimSpace(fields[0])
		priceText := strings.TrimSpace(fields[1])
		if territory == "" {
			continue
		}

		price, err := strconv.ParseFloat(priceText, 64)
		if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
			continue
		}

		lines = append(lines, models.BulkEditLine{Territory: territory, DesiredPrice: price})
	}
	return lines
}
