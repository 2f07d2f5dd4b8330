// Package usda talks to the USDA FoodData Central API and normalises its
// records into catalog foods.
package usda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lg/plannit-go-api/internal/foodlog"
)

const (
	DefaultBaseURL = "https://api.nal.usda.gov/fdc/v1"
	DefaultTimeout = 15 * time.Second

	searchPageSize  = 20
	searchDataTypes = "Survey (FNDDS),Foundation,Branded"

	// Response bodies past maxResponseBytes are rejected. Error bodies are
	// kept only up to maxErrorBodyBytes since they end up in logs.
	maxResponseBytes  = 4 << 20
	maxErrorBodyBytes = 512
)

var (
	ErrMissingAPIKey = errors.New("usda api key not set")
	ErrEmptyQuery    = errors.New("search query is empty")
)

// StatusError is returned when the API answers with a non-2xx status. The
// client never retries.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("usda api returned %d: %s", e.StatusCode, e.Body)
}

// Config configures a Client. Zero BaseURL and Timeout fall back to the
// defaults.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client is a FoodData Central client. It is safe for concurrent use.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
	}
}

/* ─── Wire types ─────────────────────────────────────────────────────── */

// FoodResult is one food as returned by search or detail.
type FoodResult struct {
	FDCID           int          `json:"fdcId"`
	Description     string       `json:"description"`
	DataType        string       `json:"dataType"`
	FoodCategory    categoryName `json:"foodCategory"`
	FoodNutrients   []Nutrient   `json:"foodNutrients"`
	ServingSize     float64      `json:"servingSize"`
	ServingSizeUnit string       `json:"servingSizeUnit"`
}

// Nutrient is a single nutrient amount. Search results use a flat shape
// ({nutrientId, value}); detail results nest the id ({nutrient: {id}, amount}).
// Both decode into the same fields.
type Nutrient struct {
	NutrientID   int     `json:"nutrientId"`
	NutrientName string  `json:"nutrientName"`
	UnitName     string  `json:"unitName"`
	Value        float64 `json:"value"`
}

func (n *Nutrient) UnmarshalJSON(b []byte) error {
	var raw struct {
		NutrientID   int      `json:"nutrientId"`
		NutrientName string   `json:"nutrientName"`
		UnitName     string   `json:"unitName"`
		Value        *float64 `json:"value"`
		Amount       *float64 `json:"amount"`
		Nutrient     *struct {
			ID       int    `json:"id"`
			Name     string `json:"name"`
			UnitName string `json:"unitName"`
		} `json:"nutrient"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*n = Nutrient{NutrientID: raw.NutrientID, NutrientName: raw.NutrientName, UnitName: raw.UnitName}
	if raw.Nutrient != nil {
		if n.NutrientID == 0 {
			n.NutrientID = raw.Nutrient.ID
		}
		if n.NutrientName == "" {
			n.NutrientName = raw.Nutrient.Name
		}
		if n.UnitName == "" {
			n.UnitName = raw.Nutrient.UnitName
		}
	}
	switch {
	case raw.Value != nil:
		n.Value = *raw.Value
	case raw.Amount != nil:
		n.Value = *raw.Amount
	}
	return nil
}

// categoryName accepts foodCategory either as a plain string (search) or as
// an object with a description (detail).
type categoryName string

func (c *categoryName) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = categoryName(s)
		return nil
	}
	var obj struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*c = categoryName(obj.Description)
	return nil
}

type searchResponse struct {
	Foods       []FoodResult `json:"foods"`
	TotalHits   int          `json:"totalHits"`
	CurrentPage int          `json:"currentPage"`
	TotalPages  int          `json:"totalPages"`
}

// SearchResult is a page of normalised search hits.
type SearchResult struct {
	Foods       []foodlog.Food `json:"foods"`
	TotalHits   int            `json:"total_hits"`
	CurrentPage int            `json:"current_page"`
	TotalPages  int            `json:"total_pages"`
}

/* ─── Requests ───────────────────────────────────────────────────────── */

// Search runs a free-text query. page is 1-based; values below 1 mean 1.
func (c *Client) Search(ctx context.Context, query string, page int) (SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResult{}, ErrEmptyQuery
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("pageSize", strconv.Itoa(searchPageSize))
	params.Set("pageNumber", strconv.Itoa(page))
	params.Set("dataType", searchDataTypes)

	var resp searchResponse
	if err := c.get(ctx, "/foods/search", params, &resp); err != nil {
		return SearchResult{}, err
	}

	foods := make([]foodlog.Food, 0, len(resp.Foods))
	for _, r := range resp.Foods {
		foods = append(foods, ConvertFood(r))
	}
	return SearchResult{
		Foods:       foods,
		TotalHits:   resp.TotalHits,
		CurrentPage: resp.CurrentPage,
		TotalPages:  resp.TotalPages,
	}, nil
}

// Details fetches one food by its FoodData Central id.
func (c *Client) Details(ctx context.Context, fdcID int) (foodlog.Food, error) {
	var r FoodResult
	if err := c.get(ctx, "/food/"+strconv.Itoa(fdcID), url.Values{}, &r); err != nil {
		return foodlog.Food{}, err
	}
	if r.FDCID == 0 {
		r.FDCID = fdcID
	}
	return ConvertFood(r), nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(body) > maxResponseBytes {
		return fmt.Errorf("response exceeds %d bytes", maxResponseBytes)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
