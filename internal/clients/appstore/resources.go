package appstore

import (
	"encoding/json"
	"fmt"
	"strconv"

	"appstore-pricing-service/internal/models"
)

// App Store Connect responses follow the JSON:API shape: resources are
// {type, id, attributes, relationships} objects, related entities are
// delivered in a flat "included" list, and pagination is a links.next
// URL. Decoding validates required fields at this boundary so nothing
// half-formed travels inward.

type relationship struct {
	Data struct {
		Type string `json:"type"`
		ID   string `json:"id"`
	} `json:"data"`
}

type resourceObject struct {
	Type          string                  `json:"type"`
	ID            string                  `json:"id"`
	Attributes    json.RawMessage         `json:"attributes"`
	Relationships map[string]relationship `json:"relationships"`
}

type documentLinks struct {
	Next string `json:"next"`
}

type listDocument struct {
	Data     []resourceObject `json:"data"`
	Included []resourceObject `json:"included"`
	Links    documentLinks    `json:"links"`
}

type singleDocument struct {
	Data resourceObject `json:"data"`
}

type purchaseAttributes struct {
	Name              string `json:"name"`
	ProductID         string `json:"productId"`
	InAppPurchaseType string `json:"inAppPurchaseType"`
	State             string `json:"state"`
}

type groupAttributes struct {
	ReferenceName string `json:"referenceName"`
}

type subscriptionAttributes struct {
	Name      string `json:"name"`
	ProductID string `json:"productId"`
	State     string `json:"state"`
}

type pricePointAttributes struct {
	CustomerPrice string `json:"customerPrice"`
	Proceeds      string `json:"proceeds"`
}

type priceAttributes struct {
	StartDate string `json:"startDate"`
	Preserved bool   `json:"preserved"`
}

type territoryAttributes struct {
	Currency string `json:"currency"`
}

// includedKey identifies one entity in a response's included list.
type includedKey struct {
	Type string
	ID   string
}

// buildIncludedIndex builds the (type, id) lookup used to resolve
// relationship references without rescanning the included list.
func buildIncludedIndex(included []resourceObject) map[includedKey]resourceObject {
	index := make(map[includedKey]resourceObject, len(included))
	for _, res := range included {
		index[includedKey{Type: res.Type, ID: res.ID}] = res
	}
	return index
}

func convertPurchase(res resourceObject) (*models.Product, error) {
	if res.ID == "" {
		return nil, fmt.Errorf("in-app purchase response missing id")
	}
	var attrs purchaseAttributes
	if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
		return nil, fmt.Errorf("failed to parse in-app purchase %s: %w", res.ID, err)
	}
	if attrs.ProductID == "" {
		return nil, fmt.Errorf("in-app purchase %s missing productId", res.ID)
	}

	kind := models.KindOneTimePurchase
	if attrs.InAppPurchaseType == autoRenewableType {
		kind = models.KindSubscription
	}
	return &models.Product{
		ID:        res.ID,
		ProductID: attrs.ProductID,
		Name:      attrs.Name,
		Kind:      kind,
		State:     attrs.State,
	}, nil
}

func convertPricePoint(res resourceObject) (models.PricePoint, error) {
	if res.ID == "" {
		return models.PricePoint{}, fmt.Errorf("price point response missing id")
	}
	var attrs pricePointAttributes
	if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
		return models.PricePoint{}, fmt.Errorf("failed to parse price point %s: %w", res.ID, err)
	}
	if attrs.CustomerPrice == "" {
		return models.PricePoint{}, fmt.Errorf("price point %s missing customerPrice", res.ID)
	}

	customerPrice, err := strconv.ParseFloat(attrs.CustomerPrice, 64)
	if err != nil {
		return models.PricePoint{}, fmt.Errorf("price point %s has invalid customerPrice %q", res.ID, attrs.CustomerPrice)
	}
	proceeds, _ := strconv.ParseFloat(attrs.Proceeds, 64)

	point := models.PricePoint{
		ID:            res.ID,
		CustomerPrice: customerPrice,
		Proceeds:      proceeds,
	}
	if rel, ok := res.Relationships["territory"]; ok {
		point.TerritoryCode = rel.Data.ID
	}
	return point, nil
}

// pricePointRelationshipKeys are the relationship names under which the
// two resource families reference their price point.
var pricePointRelationshipKeys = []string{"pricePoint", "subscriptionPricePoint", "inAppPurchasePricePoint"}

func convertPrice(res resourceObject, included map[includedKey]resourceObject) (models.Price, error) {
	if res.ID == "" {
		return models.Price{}, fmt.Errorf("price response missing id")
	}
	var attrs priceAttributes
	if len(res.Attributes) > 0 {
		if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
			return models.Price{}, fmt.Errorf("failed to parse price %s: %w", res.ID, err)
		}
	}

	price := models.Price{
		ID:        res.ID,
		StartDate: attrs.StartDate,
		Preserved: attrs.Preserved,
	}

	for _, key := range pricePointRelationshipKeys {
		rel, ok := res.Relationships[key]
		if !ok || rel.Data.ID == "" {
			continue
		}
		price.PricePointID = rel.Data.ID
		if point, ok := included[includedKey{Type: rel.Data.Type, ID: rel.Data.ID}]; ok {
			converted, err := convertPricePoint(point)
			if err != nil {
				return models.Price{}, err
			}
			price.CustomerPrice = converted.CustomerPrice
			price.Proceeds = converted.Proceeds
			if price.Territory.Code == "" {
				price.Territory.Code = converted.TerritoryCode
			}
		}
		break
	}
	if price.PricePointID == "" {
		return models.Price{}, fmt.Errorf("price %s missing price point reference", res.ID)
	}

	if rel, ok := res.Relationships["territory"]; ok && rel.Data.ID != "" {
		price.Territory.Code = rel.Data.ID
		if territory, ok := included[includedKey{Type: rel.Data.Type, ID: rel.Data.ID}]; ok {
			var attrs territoryAttributes
			if len(territory.Attributes) > 0 {
				if err := json.Unmarshal(territory.Attributes, &attrs); err == nil {
					price.Territory.CurrencyCode = attrs.Currency
				}
			}
		}
	}

	return price, nil
}
