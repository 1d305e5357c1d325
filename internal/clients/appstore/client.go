package appstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"appstore-pricing-service/internal/clients"
	"appstore-pricing-service/internal/models"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the production App Store Connect API host.
	DefaultBaseURL = "https://api.appstoreconnect.apple.com"

	defaultPageLimit  = 200
	autoRenewableType = "AUTO_RENEWABLE"
)

// TokenProvider produces a short-lived bearer credential for one
// request. The client never caches tokens.
type TokenProvider interface {
	Generate() (string, error)
}

// Client is the App Store Connect API client. All requests are paced
// through a shared rate limiter to stay under the vendor's request-rate
// ceiling.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	tokens      TokenProvider
	rateLimiter *rate.Limiter
}

// NewClient creates a new App Store Connect client.
func NewClient(baseURL string, tokens TokenProvider, requestsPerSecond int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2
	}
	return &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     baseURL,
		tokens:      tokens,
		rateLimiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

var _ clients.CommerceAPI = (*Client)(nil)

// GetInAppPurchase fetches a single in-app purchase record.
func (c *Client) GetInAppPurchase(ctx context.Context, purchaseID string) (*models.Product, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/v1/inAppPurchases/"+url.PathEscape(purchaseID), nil, nil)
	if err != nil {
		return nil, err
	}

	var doc singleDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse in-app purchase response: %w", err)
	}
	return convertPurchase(doc.Data)
}

// ListSubscriptionGroups returns every subscription group of the app in
// vendor order, following next links until exhausted.
func (c *Client) ListSubscriptionGroups(ctx context.Context, appID string) ([]models.SubscriptionGroup, error) {
	path := fmt.Sprintf("/v1/apps/%s/subscriptionGroups", url.PathEscape(appID))

	var groups []models.SubscriptionGroup
	cursor := ""
	for {
		doc, err := c.getList(ctx, path, cursor, nil)
		if err != nil {
			return nil, err
		}
		for _, res := range doc.Data {
			if res.ID == "" {
				return nil, fmt.Errorf("subscription group without id in response")
			}
			var attrs groupAttributes
			if len(res.Attributes) > 0 {
				if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
					return nil, fmt.Errorf("failed to parse subscription group %s: %w", res.ID, err)
				}
			}
			groups = append(groups, models.SubscriptionGroup{ID: res.ID, Name: attrs.ReferenceName})
		}
		cursor = nextCursor(doc.Links.Next)
		if cursor == "" {
			return groups, nil
		}
	}
}

// ListGroupSubscriptions returns the subscriptions inside one group.
func (c *Client) ListGroupSubscriptions(ctx context.Context, groupID string) ([]models.SubscriptionRef, error) {
	path := fmt.Sprintf("/v1/subscriptionGroups/%s/subscriptions", url.PathEscape(groupID))

	var subs []models.SubscriptionRef
	cursor := ""
	for {
		doc, err := c.getList(ctx, path, cursor, nil)
		if err != nil {
			return nil, err
		}
		for _, res := range doc.Data {
			var attrs subscriptionAttributes
			if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
				return nil, fmt.Errorf("failed to parse subscription %s: %w", res.ID, err)
			}
			if res.ID == "" || attrs.ProductID == "" {
				return nil, fmt.Errorf("subscription missing id or productId in group %s", groupID)
			}
			subs = append(subs, models.SubscriptionRef{
				ID:        res.ID,
				ProductID: attrs.ProductID,
				Name:      attrs.Name,
				State:     attrs.State,
			})
		}
		cursor = nextCursor(doc.Links.Next)
		if cursor == "" {
			return subs, nil
		}
	}
}

// ListPricePoints returns one page of allowed price points for a
// (resource, territory) pair.
func (c *Client) ListPricePoints(ctx context.Context, query clients.PricePointQuery) (*clients.PricePointPage, error) {
	params := url.Values{}
	params.Set("filter[territory]", query.Territory)
	limit := query.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	params.Set("limit", strconv.Itoa(limit))

	path := fmt.Sprintf("/v1/%s/%s/pricePoints", resourceCollection(query.Kind), url.PathEscape(query.ResourceID))
	doc, err := c.getList(ctx, path, query.Cursor, params)
	if err != nil {
		return nil, err
	}

	points := make([]models.PricePoint, 0, len(doc.Data))
	for _, res := range doc.Data {
		point, err := convertPricePoint(res)
		if err != nil {
			return nil, err
		}
		if point.TerritoryCode == "" {
			point.TerritoryCode = query.Territory
		}
		points = append(points, point)
	}

	next := nextCursor(doc.Links.Next)
	return &clients.PricePointPage{
		Points:     points,
		NextCursor: next,
		HasMore:    next != "",
	}, nil
}

// ListPrices returns one page of the resource's active or scheduled
// prices. Included price points and territories are joined by a
// (type, id) lookup built once per response.
func (c *Client) ListPrices(ctx context.Context, query clients.PriceQuery) (*clients.PricePage, error) {
	params := url.Values{}
	params.Set("include", "pricePoint,territory")
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}

	path := fmt.Sprintf("/v1/%s/%s/prices", resourceCollection(query.Kind), url.PathEscape(query.ResourceID))
	doc, err := c.getList(ctx, path, query.Cursor, params)
	if err != nil {
		return nil, err
	}

	included := buildIncludedIndex(doc.Included)
	prices := make([]models.Price, 0, len(doc.Data))
	for _, res := range doc.Data {
		price, err := convertPrice(res, included)
		if err != nil {
			return nil, err
		}
		prices = append(prices, price)
	}

	next := nextCursor(doc.Links.Next)
	return &clients.PricePage{
		Prices:     prices,
		NextCursor: next,
		HasMore:    next != "",
	}, nil
}

// CreateSubscriptionPrice schedules a new subscription price.
func (c *Client) CreateSubscriptionPrice(ctx context.Context, req clients.SubscriptionPriceRequest) error {
	payload := map[string]any{
		"data": map[string]any{
			"type": "subscriptionPrices",
			"attributes": map[string]any{
				"startDate":            req.StartDate,
				"preserveCurrentPrice": req.PreserveCurrentPrice,
			},
			"relationships": map[string]any{
				"subscription": map[string]any{
					"data": map[string]any{"type": "subscriptions", "id": req.SubscriptionID},
				},
				"subscriptionPricePoint": map[string]any{
					"data": map[string]any{"type": "subscriptionPricePoints", "id": req.PricePointID},
				},
			},
		},
	}
	_, err := c.doRequest(ctx, http.MethodPost, "/v1/subscriptionPrices", nil, payload)
	return err
}

// CreateInAppPurchasePrice schedules a new one-time purchase price.
func (c *Client) CreateInAppPurchasePrice(ctx context.Context, req clients.PurchasePriceRequest) error {
	payload := map[string]any{
		"data": map[string]any{
			"type": "inAppPurchasePrices",
			"attributes": map[string]any{
				"startDate": req.StartDate,
			},
			"relationships": map[string]any{
				"inAppPurchasePricePoint": map[string]any{
					"data": map[string]any{"type": "inAppPurchasePricePoints", "id": req.PricePointID},
				},
				"territory": map[string]any{
					"data": map[string]any{"type": "territories", "id": req.TerritoryID},
				},
			},
		},
	}
	path := fmt.Sprintf("/v1/inAppPurchases/%s/prices", url.PathEscape(req.PurchaseID))
	_, err := c.doRequest(ctx, http.MethodPost, path, nil, payload)
	return err
}

// getList performs a paginated GET, applying the cursor when present.
func (c *Client) getList(ctx context.Context, path, cursor string, params url.Values) (*listDocument, error) {
	merged := url.Values{}
	for key, values := range params {
		merged[key] = values
	}
	if cursor != "" {
		merged.Set("cursor", cursor)
	}

	body, err := c.doRequest(ctx, http.MethodGet, path, merged, nil)
	if err != nil {
		return nil, err
	}

	var doc listDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse list response for %s: %w", path, err)
	}
	return &doc, nil
}

// doRequest performs an authenticated HTTP request against the API.
func (c *Client) doRequest(ctx context.Context, method, path string, params url.Values, body any) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	token, err := c.tokens.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate bearer token: %w", err)
	}

	fullURL := c.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, &clients.UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

// resourceCollection maps a resource kind to its API collection name.
func resourceCollection(kind models.ResourceKind) string {
	if kind == models.KindSubscription {
		return "subscriptions"
	}
	return "inAppPurchases"
}

// nextCursor extracts the cursor parameter from a next-page link.
func nextCursor(next string) string {
	if next == "" {
		return ""
	}
	parsed, err := url.Parse(next)
	if err != nil {
		return ""
	}
	return parsed.Query().Get("cursor")
}
