package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const userAgent = "inspections-cli/1.0 (+local)"

// The reference-data endpoint does not name its categories; positions were
// observed from live responses. Index 2 exists but holds nothing we use.
// TODO: switch to a named lookup if the API ever starts labelling categories.
const (
	CategoryCities = iota
	CategoryCounties
	categoryUnused
	CategoryPermitTypes
)

// Client talks to the health-inspections API. One Client (and its underlying
// connection pool) is shared by all search and detail requests of a fetch
// run; the one-off reference-data call uses its own short-lived pool.
type Client struct {
	BaseURL string
	hc      *http.Client
}

// New returns a client for the given API base URL. A zero timeout means no
// timeout at all, matching the upstream service's expectations for the large
// page fan-out.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
	}
}

// Filters fetches the reference-data categories (cities, counties, permit
// types) used for the interactive choice lists.
func (c *Client) Filters(ctx context.Context) ([]FilterCategory, error) {
	hc := &http.Client{Timeout: c.hc.Timeout}
	defer hc.CloseIdleConnections()

	var cats []FilterCategory
	if err := c.getJSON(ctx, hc, c.BaseURL+"/filters", &cats); err != nil {
		return nil, err
	}
	if len(cats) <= CategoryPermitTypes {
		return nil, fmt.Errorf("filters endpoint returned %d categories, want at least %d", len(cats), CategoryPermitTypes+1)
	}
	return cats, nil
}

// SearchPage fetches one page of search results for an encoded payload.
func (c *Client) SearchPage(ctx context.Context, encodedPayload string, page int) ([]SearchHit, error) {
	url := c.BaseURL + "/search/" + encodedPayload + "/" + strconv.Itoa(page)
	var hits []SearchHit
	if err := c.getJSON(ctx, c.hc, url, &hits); err != nil {
		return nil, fmt.Errorf("search page %d: %w", page, err)
	}
	return hits, nil
}

// InspectionData fetches the violation detail for one establishment. The id
// is passed in its raw transport form, exactly as the search hit carried it.
func (c *Client) InspectionData(ctx context.Context, opaqueID string) ([]ViolationGroup, error) {
	url := c.BaseURL + "/inspectionsData/" + opaqueID
	var groups []ViolationGroup
	if err := c.getJSON(ctx, c.hc, url, &groups); err != nil {
		return nil, fmt.Errorf("inspection data for %s: %w", opaqueID, err)
	}
	return groups, nil
}

func (c *Client) getJSON(ctx context.Context, hc *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	res, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return fmt.Errorf("get %s: status %d", url, res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
