package main

import (
	"net/http"
	"strings"
	"testing"
)

func TestGetProfile_NotOnboarded(t *testing.T) {
	env := setupTest(t)

	w := env.do("GET", "/api/profile", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode[profileResponse](t, w)
	if resp.Ready || resp.Profile != nil || resp.Goals != nil {
		t.Errorf("resp = %+v, want empty state", resp)
	}

	if w := env.do("GET", "/api/goals", ""); w.Code != http.StatusConflict {
		t.Errorf("GET /api/goals: expected 409, got %d", w.Code)
	}
}

func TestPutProfile_Success(t *testing.T) {
	env := setupTest(t)

	w := env.do("PUT", "/api/profile", profileBody)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode[profileResponse](t, w)
	if !resp.Ready || resp.Profile == nil || resp.Profile.Location != "Lisbon" {
		t.Fatalf("resp = %+v", resp)
	}
	if g := *resp.Goals; g.Calories != 2056 || g.Protein != 126 || g.Carbs != 244 || g.Fat != 64 {
		t.Errorf("goals = %+v, want 2056/126/244/64", g)
	}

	if w := env.do("GET", "/api/goals", ""); w.Code != http.StatusOK {
		t.Errorf("GET /api/goals: expected 200, got %d", w.Code)
	}
}

// TestPutProfile_Invalid verifies validation failures come back as 400 with
// the failing field in the message.
func TestPutProfile_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"malformed", `{`, "invalid request body"},
		{"zero weight", strings.Replace(profileBody, `"weight":70`, `"weight":0`, 1), "weight"},
		{"absurd weight", strings.Replace(profileBody, `"weight":70`, `"weight":1e300`, 1), "weight"},
		{"bad activity", strings.Replace(profileBody, `"moderate"`, `"couch"`, 1), "activity_level"},
		{"missing location", strings.Replace(profileBody, `"Lisbon"`, `""`, 1), "location"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := setupTest(t)
			w := env.do("PUT", "/api/profile", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			if msg := errorMessage(t, w); !strings.Contains(msg, tc.wantMsg) {
				t.Errorf("error = %q, want it to mention %q", msg, tc.wantMsg)
			}
		})
	}
}

func TestUseDefaultGoals(t *testing.T) {
	env := setupTest(t)

	w := env.do("POST", "/api/profile/defaults", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode[profileResponse](t, w)
	if !resp.Ready || resp.Profile != nil {
		t.Fatalf("resp = %+v", resp)
	}
	if g := *resp.Goals; g.Calories != 1813 || g.Protein != 162 || g.Carbs != 165 || g.Fat != 56 {
		t.Errorf("goals = %+v, want defaults", g)
	}
}

func TestReset(t *testing.T) {
	env := setupTest(t)
	env.do("PUT", "/api/profile", profileBody)

	w := env.do("POST", "/api/reset", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}
	if resp := decode[profileResponse](t, env.do("GET", "/api/profile", "")); resp.Ready {
		t.Error("still ready after reset")
	}
}
