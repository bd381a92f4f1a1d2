// Package dining provides a client for the FuelStack dining API: hall
// listings, daily menus, and the meal optimization endpoint.
package dining

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fuelstack/fuelstack/internal/constraint"
	"github.com/fuelstack/fuelstack/internal/hall"
	"github.com/fuelstack/fuelstack/internal/menu"
	"github.com/fuelstack/fuelstack/internal/optimizer"
	"github.com/fuelstack/fuelstack/internal/provider/resilience"
)

// ProviderName identifies this upstream.
const ProviderName = "dining-api"

// maxErrorBody caps how much of an error response body is kept.
const maxErrorBody = 4 << 10

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the dining API client.
// The base URL is always an explicit argument; the client never reads
// ambient process state.
type ClientConfig struct {
	// BaseURL is the dining API base URL. Required.
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a default resilient
	// client is created.
	HTTPClient HTTPDoer

	// Timeout for individual requests (default: 15s; the optimizer can
	// take a while to solve).
	Timeout time.Duration
}

// Client is a dining API client.
type Client struct {
	baseURL string
	http    HTTPDoer
}

var (
	_ hall.Provider    = (*Client)(nil)
	_ menu.Provider    = (*Client)(nil)
	_ optimizer.Client = (*Client)(nil)
)

// NewClient creates a new dining API client.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 15 * time.Second
		}
		httpClient = resilience.New(resilience.Config{
			Name:    ProviderName,
			Timeout: timeout,
		})
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    httpClient,
	}
}

// ListHalls fetches every dining hall. Implements hall.Provider.
func (c *Client) ListHalls(ctx context.Context) ([]hall.Hall, error) {
	url := c.baseURL + "/get-dining-halls"

	var data []hallData
	if err := c.getJSON(ctx, url, &data); err != nil {
		return nil, fmt.Errorf("list dining halls: %w", err)
	}

	halls := make([]hall.Hall, 0, len(data))
	for _, d := range data {
		halls = append(halls, toHall(d))
	}
	return halls, nil
}

// FetchMenu fetches today's menu for a hall and period. Implements
// menu.Provider.
func (c *Client) FetchMenu(ctx context.Context, hallID int, period hall.MealPeriod) ([]menu.Item, error) {
	url := fmt.Sprintf("%s/menu?id=%d&meal_period=%s", c.baseURL, hallID, period)

	var data []menuItemData
	if err := c.getJSON(ctx, url, &data); err != nil {
		return nil, fmt.Errorf("fetch menu: %w", err)
	}

	items := make([]menu.Item, 0, len(data))
	for _, d := range data {
		items = append(items, toItem(d))
	}
	return items, nil
}

// Optimize submits a meal optimization request. Implements
// optimizer.Client.
func (c *Client) Optimize(ctx context.Context, req optimizer.Request) ([]optimizer.MealPlan, error) {
	payload, err := json.Marshal(optimizePayload(req))
	if err != nil {
		return nil, fmt.Errorf("encode optimize request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/optimize-meal", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("optimize meal: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var data []mealPlanData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode optimize response: %w", err)
	}

	plans := make([]optimizer.MealPlan, 0, len(data))
	for _, d := range data {
		plans = append(plans, toMealPlan(d))
	}
	return plans, nil
}

// Name identifies this provider in logs and cache diagnostics.
func (c *Client) Name() string { return ProviderName }

// Health reports the breaker state of the underlying resilient client.
// A custom HTTPClient reports as closed.
func (c *Client) Health() resilience.Health {
	if rc, ok := c.http.(*resilience.Client); ok {
		return rc.Health()
	}
	return resilience.Health{Name: ProviderName}
}

// optimizePayload builds the wire body from the field descriptor table,
// so every min/max key is present (null when unconstrained) and the
// snake_case names stay in one place.
func optimizePayload(req optimizer.Request) map[string]any {
	payload := map[string]any{
		"dining_hall_id": req.HallID,
		"meal_period":    string(req.Period),
		"allergens":      emptyIfNil(req.Allergens),
		"traits":         emptyIfNil(req.Traits),
	}
	for _, field := range constraint.Fields() {
		v := req.Ranges[field.Key]
		payload[field.WireMin] = v.Min
		payload[field.WireMax] = v.Max
	}
	return payload
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// checkStatus turns a non-2xx response into a StatusError carrying the
// body text.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

func toHall(d hallData) hall.Hall {
	periods := make([]hall.MealPeriod, 0, len(d.MealsToday))
	for _, raw := range d.MealsToday {
		p, err := hall.ParseMealPeriod(raw)
		if err != nil {
			continue // skip unknown periods
		}
		periods = append(periods, p)
	}
	return hall.Hall{
		ID:         d.ID,
		Name:       d.Name,
		MealsToday: periods,
	}
}

func toItem(d menuItemData) menu.Item {
	return menu.Item{
		ID:               d.ID,
		Name:             d.Name,
		Station:          d.Station,
		PortionSize:      d.PortionSize,
		ServingSizeGrams: d.ServingSizeG,
		Nutrients: menu.Nutrients{
			CaloriesKcal:       d.CaloriesKcal,
			ProteinG:           d.ProteinG,
			TotalFatG:          d.TotalFatG,
			SaturatedFatG:      d.SaturatedFatG,
			TransFatG:          d.TransFatG,
			TotalCarbohydrateG: d.TotalCarbohydrateG,
			SugarsG:            d.SugarsG,
			SodiumMg:           d.SodiumMg,
			DietaryFiberG:      d.DietaryFiberG,
			CholesterolMg:      d.CholesterolMg,
		},
		Traits:    d.Traits,
		Allergens: d.Allergens,
	}
}

func toMealPlan(d mealPlanData) optimizer.MealPlan {
	options := make([]optimizer.MealSelection, 0, len(d.Options))
	for _, o := range d.Options {
		options = append(options, optimizer.MealSelection{
			ID:                 o.ID,
			Name:               o.Name,
			Quantity:           o.Quantity,
			Station:            o.Station,
			Components:         o.Components,
			CaloriesKcal:       o.CaloriesKcal,
			ProteinG:           o.ProteinG,
			TotalCarbohydrateG: o.TotalCarbohydrateG,
			TotalFatG:          o.TotalFatG,
		})
	}
	return optimizer.MealPlan{
		Options:            options,
		TotalCaloriesKcal:  d.TotalCaloriesKcal,
		TotalProteinG:      d.TotalProteinG,
		TotalCarbohydrateG: d.TotalCarbohydrateG,
		TotalFatG:          d.TotalFatG,
	}
}
