package models

import (
	"fmt"
	"strconv"
)

// ResourceKind identifies which commerce resource family a product
// belongs to. The kind is discovered by asking the vendor, never
// declared by the caller.
type ResourceKind string

const (
	KindOneTimePurchase ResourceKind = "ONE_TIME_PURCHASE"
	KindSubscription    ResourceKind = "AUTO_RENEWABLE_SUBSCRIPTION"
)

// Product represents an in-app purchase record as returned by the
// vendor. ProductID is the developer-facing identifier; ID is the
// vendor resource id.
type Product struct {
	ID        string       `json:"id"`
	ProductID string       `json:"productId"`
	Name      string       `json:"name,omitempty"`
	Kind      ResourceKind `json:"kind"`
	State     string       `json:"state,omitempty"`
}

// SubscriptionGroup is the vendor grouping construct through which a
// subscription's resource id is discovered from its product identifier.
type SubscriptionGroup struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// SubscriptionRef is one subscription inside a group.
type SubscriptionRef struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Name      string `json:"name,omitempty"`
	State     string `json:"state,omitempty"`
}

// Territory is a vendor-defined storefront region. Code is the vendor's
// identifier, not always an ISO country code.
type Territory struct {
	Code         string `json:"code"`
	DisplayName  string `json:"displayName,omitempty"`
	CurrencyCode string `json:"currencyCode,omitempty"`
}

// PricePoint is a vendor-fixed discrete price available in exactly one
// (resource, territory) pair. Prices can only be set to one of these.
type PricePoint struct {
	ID            string  `json:"id"`
	CustomerPrice float64 `json:"customerPrice"`
	Proceeds      float64 `json:"proceeds"`
	Currency      string  `json:"currency,omitempty"`
	TerritoryCode string  `json:"territoryCode,omitempty"`
}

// Price is a resource's active or scheduled price in a territory.
type Price struct {
	ID            string    `json:"id"`
	PricePointID  string    `json:"pricePointId"`
	Territory     Territory `json:"territory"`
	StartDate     string    `json:"startDate,omitempty"`
	CustomerPrice float64   `json:"customerPrice"`
	Proceeds      float64   `json:"proceeds"`
	Preserved     bool      `json:"preserved,omitempty"`
}

// BulkEditLine is one parsed row of bulk-edit input.
type BulkEditLine struct {
	Territory    string  `json:"territory"`
	DesiredPrice float64 `json:"desiredPrice"`
}

// BulkEditError records one failed line of a bulk edit.
type BulkEditError struct {
	Territory    string  `json:"territory"`
	DesiredPrice float64 `json:"desiredPrice"`
	Message      string  `json:"message"`
}

// String renders the error the way the batch report displays it.
func (e BulkEditError) String() string {
	return fmt.Sprintf("%s => %s: %s", e.Territory, strconv.FormatFloat(e.DesiredPrice, 'f', -1, 64), e.Message)
}

// BulkEditOutcome is the batch report returned to the caller. Processed
// counts only syntactically valid input lines; malformed lines are
// dropped before processing and never appear here.
type BulkEditOutcome struct {
	Processed int             `json:"processed"`
	Succeeded int             `json:"succeeded"`
	Errors    []BulkEditError `json:"errors"`
}
