package usda

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
)

// setupMockAPI starts a fake FoodData Central that answers every request with
// status and body. The returned func yields the last request's URL.
func setupMockAPI(t *testing.T, status int, body string) (*Client, func() url.URL) {
	t.Helper()
	var mu sync.Mutex
	var last url.URL
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		last = *r.URL
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	lastURL := func() url.URL {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
	return NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}), lastURL
}

const searchBody = `{
  "totalHits": 2, "currentPage": 1, "totalPages": 1,
  "foods": [
    {"fdcId": 171077, "description": "Chicken, breast, roasted", "dataType": "Foundation",
     "foodCategory": "Poultry Products",
     "foodNutrients": [
       {"nutrientId": 1008, "nutrientName": "Energy", "unitName": "KCAL", "value": 165.4},
       {"nutrientId": 1003, "nutrientName": "Protein", "unitName": "G", "value": 31.02},
       {"nutrientId": 1004, "nutrientName": "Total lipid (fat)", "unitName": "G", "value": 3.57},
       {"nutrientId": 1005, "nutrientName": "Carbohydrate", "unitName": "G", "value": 0}
     ]},
    {"fdcId": 9, "description": "Banana, raw", "servingSize": 118, "servingSizeUnit": "g",
     "foodNutrients": [
       {"nutrientId": 1008, "value": 89},
       {"nutrientId": 1005, "value": 22.84},
       {"nutrientId": 2000, "value": 12.23}
     ]}
  ]
}`

func TestSearch_Success(t *testing.T) {
	c, lastURL := setupMockAPI(t, http.StatusOK, searchBody)

	res, err := c.Search(context.Background(), " chicken ", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	last := lastURL()

	q := last.Query()
	if last.Path != "/foods/search" {
		t.Errorf("path = %q, want /foods/search", last.Path)
	}
	for key, want := range map[string]string{
		"query":      "chicken",
		"pageSize":   "20",
		"pageNumber": "1",
		"dataType":   "Survey (FNDDS),Foundation,Branded",
		"api_key":    "test-key",
	} {
		if got := q.Get(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}

	if res.TotalHits != 2 || len(res.Foods) != 2 {
		t.Fatalf("result = %+v", res)
	}
	chicken := res.Foods[0]
	if chicken.ID != "usda-171077" || chicken.Calories != 165 || chicken.Protein != 31 || chicken.Fat != 3.6 {
		t.Errorf("chicken = %+v", chicken)
	}
	if chicken.Category != "Protein" {
		t.Errorf("chicken category = %q, want Protein", chicken.Category)
	}
	banana := res.Foods[1]
	if banana.Category != "Fruits" || banana.ServingSize != 118 {
		t.Errorf("banana = %+v", banana)
	}
	if banana.Sugar == nil || *banana.Sugar != 12.2 {
		t.Errorf("banana sugar = %v, want 12.2", banana.Sugar)
	}
	if banana.Fiber != nil {
		t.Errorf("banana fiber = %v, want nil when absent", *banana.Fiber)
	}
}

// TestDetails_NestedNutrients verifies the detail endpoint's nested nutrient
// shape and object-valued foodCategory normalise to the same record.
func TestDetails_NestedNutrients(t *testing.T) {
	body := `{
	  "fdcId": 746782, "description": "Milk, whole", "dataType": "Foundation",
	  "foodCategory": {"description": "Dairy and Egg Products"},
	  "foodNutrients": [
	    {"nutrient": {"id": 1008, "name": "Energy", "unitName": "kcal"}, "amount": 61},
	    {"nutrient": {"id": 1003, "name": "Protein", "unitName": "g"}, "amount": 3.27},
	    {"nutrient": {"id": 1005, "name": "Carbohydrate", "unitName": "g"}, "amount": 4.63},
	    {"nutrient": {"id": 1004, "name": "Fat", "unitName": "g"}, "amount": 3.2}
	  ]
	}`
	c, lastURL := setupMockAPI(t, http.StatusOK, body)

	f, err := c.Details(context.Background(), 746782)
	if err != nil {
		t.Fatalf("Details: %v", err)
	}
	last := lastURL()
	if last.Path != "/food/746782" {
		t.Errorf("path = %q, want /food/746782", last.Path)
	}
	if f.ID != "usda-746782" || f.Calories != 61 || f.Protein != 3.3 || f.Carbs != 4.6 || f.Fat != 3.2 {
		t.Errorf("food = %+v", f)
	}
	if f.Category != "Dairy" {
		t.Errorf("category = %q, want Dairy", f.Category)
	}
	if f.ServingSize != 100 || f.ServingUnit != "g" {
		t.Errorf("serving = %v %s, want 100 g", f.ServingSize, f.ServingUnit)
	}
}

func TestSearch_NonOKStatus(t *testing.T) {
	c, _ := setupMockAPI(t, http.StatusTooManyRequests, `{"error":"OVER_RATE_LIMIT"}`)

	_, err := c.Search(context.Background(), "rice", 1)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", se.StatusCode)
	}
}

// TestSearch_ErrorBodyTruncated verifies a large error page is cut down
// before it is kept on the StatusError.
func TestSearch_ErrorBodyTruncated(t *testing.T) {
	c, _ := setupMockAPI(t, http.StatusBadGateway, strings.Repeat("x", 10*maxErrorBodyBytes))

	_, err := c.Search(context.Background(), "rice", 1)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if len(se.Body) != maxErrorBodyBytes {
		t.Errorf("len(body) = %d, want %d", len(se.Body), maxErrorBodyBytes)
	}
}

func TestSearch_OversizedBody(t *testing.T) {
	huge := `{"foods":[],"pad":"` + strings.Repeat("x", maxResponseBytes) + `"}`
	c, _ := setupMockAPI(t, http.StatusOK, huge)

	_, err := c.Search(context.Background(), "rice", 1)
	if err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Fatalf("err = %v, want size limit error", err)
	}
}

func TestSearch_MalformedBody(t *testing.T) {
	c, _ := setupMockAPI(t, http.StatusOK, `not json`)
	if _, err := c.Search(context.Background(), "rice", 1); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	c, _ := setupMockAPI(t, http.StatusOK, searchBody)
	if _, err := c.Search(context.Background(), "   ", 1); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("err = %v, want ErrEmptyQuery", err)
	}
}

func TestClient_MissingAPIKey(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:0"})
	if _, err := c.Details(context.Background(), 1); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("err = %v, want ErrMissingAPIKey", err)
	}
}

// TestClient_Timeout verifies a slow upstream fails with an error instead of
// hanging.
func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	if _, err := c.Search(context.Background(), "rice", 1); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{APIKey: "k"})
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, DefaultBaseURL)
	}
	if c.http.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", c.http.Timeout, DefaultTimeout)
	}
}
