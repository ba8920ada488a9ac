package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/a-detiste/parse-type/pkg/cache"
	"github.com/a-detiste/parse-type/pkg/convert"
	"github.com/a-detiste/parse-type/pkg/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return New(Config{
		Logger:  log.New(io.Discard),
		Store:   store.NewMemoryStore(),
		Results: cache.NewMemoryCache(),
	})
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeParse(t *testing.T, rec *httptest.ResponseRecorder) parseResponse {
	t.Helper()
	var resp parseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, rec.Body.String())
	}
	return resp
}

func TestHealthz(t *testing.T) {
	rec := doJSON(t, testServer(t).Router(), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}
}

func TestParseInlineFormat(t *testing.T) {
	router := testServer(t).Router()

	rec := doJSON(t, router, http.MethodPost, "/v1/parse", map[string]any{
		"format": "{name:w} is {age:d}",
		"text":   "Ada is 36",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	resp := decodeParse(t, rec)
	if !resp.Matched {
		t.Fatal("matched = false")
	}
	if len(resp.Results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(resp.Results))
	}
	if got := resp.Results[0].Named["name"]; got != "Ada" {
		t.Errorf("name = %v, want Ada", got)
	}
	// JSON numbers decode as float64.
	if got := resp.Results[0].Named["age"]; got != float64(36) {
		t.Errorf("age = %v (%T), want 36", got, got)
	}
}

func TestParseNoMatch(t *testing.T) {
	rec := doJSON(t, testServer(t).Router(), http.MethodPost, "/v1/parse", map[string]any{
		"format": "{n:d}",
		"text":   "not a number",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for a non-match", rec.Code)
	}
	if resp := decodeParse(t, rec); resp.Matched {
		t.Error("matched = true for non-matching text")
	}
}

func TestParseInlineTypes(t *testing.T) {
	rec := doJSON(t, testServer(t).Router(), http.MethodPost, "/v1/parse", map[string]any{
		"format": "Test: {number:Number}",
		"text":   "Test: 42",
		"types": map[string]convert.TypeDef{
			"Number": {Kind: convert.KindInt, Pattern: `\d+`},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeParse(t, rec)
	if !resp.Matched || resp.Results[0].Named["number"] != float64(42) {
		t.Errorf("response = %+v", resp)
	}
}

func TestParseFindAllMode(t *testing.T) {
	rec := doJSON(t, testServer(t).Router(), http.MethodPost, "/v1/parse", map[string]any{
		"format": "<{n:d}>",
		"text":   "<1> <2> <3>",
		"mode":   "findall",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeParse(t, rec)
	if len(resp.Results) != 3 {
		t.Errorf("len(results) = %d, want 3", len(resp.Results))
	}
}

func TestParseBadRequests(t *testing.T) {
	router := testServer(t).Router()

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"neither format nor schema", map[string]any{"text": "x"}, http.StatusBadRequest},
		{"both format and schema", map[string]any{"format": "{n:d}", "schema": "s", "text": "x"}, http.StatusBadRequest},
		{"bad mode", map[string]any{"format": "{n:d}", "text": "x", "mode": "scan"}, http.StatusBadRequest},
		{"compile error", map[string]any{"format": "{unclosed", "text": "x"}, http.StatusUnprocessableEntity},
		{"unknown type", map[string]any{"format": "{a:Nope}", "text": "x"}, http.StatusUnprocessableEntity},
		{"unknown schema", map[string]any{"schema": "missing", "text": "x"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/v1/parse", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Code == "" {
				t.Errorf("error body = %s", rec.Body.String())
			}
		})
	}
}

func TestParseResultCaching(t *testing.T) {
	results := cache.NewMemoryCache()
	srv := New(Config{Logger: log.New(io.Discard), Results: results})
	router := srv.Router()

	body := map[string]any{"format": "{n:d}", "text": "42"}
	if rec := doJSON(t, router, http.MethodPost, "/v1/parse", body); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if results.Len() != 1 {
		t.Fatalf("cache entries = %d after first call, want 1", results.Len())
	}

	// Second call is served from cache and still correct.
	rec := doJSON(t, router, http.MethodPost, "/v1/parse", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d on cached call", rec.Code)
	}
	if resp := decodeParse(t, rec); !resp.Matched {
		t.Error("cached response lost the match")
	}
}

func TestSchemaLifecycle(t *testing.T) {
	router := testServer(t).Router()

	schema := map[string]any{
		"format": "order {id:OrderID}",
		"types": map[string]convert.TypeDef{
			"OrderID": {Kind: convert.KindString, Pattern: `ORD-\d+`},
		},
	}

	// Create.
	rec := doJSON(t, router, http.MethodPut, "/v1/schemas/orders", schema)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, body %s", rec.Code, rec.Body.String())
	}

	// Fetch.
	rec = doJSON(t, router, http.MethodGet, "/v1/schemas/orders", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d", rec.Code)
	}
	var got store.Schema
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "orders" || got.Format != "order {id:OrderID}" {
		t.Errorf("GET schema = %+v", got)
	}

	// List.
	rec = doJSON(t, router, http.MethodGet, "/v1/schemas/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("LIST status = %d", rec.Code)
	}

	// Parse by schema name.
	rec = doJSON(t, router, http.MethodPost, "/v1/parse", map[string]any{
		"schema": "orders",
		"text":   "order ORD-17",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("parse status = %d, body %s", rec.Code, rec.Body.String())
	}
	if resp := decodeParse(t, rec); !resp.Matched || resp.Results[0].Named["id"] != "ORD-17" {
		t.Errorf("parse by schema = %+v", resp)
	}

	// Delete.
	rec = doJSON(t, router, http.MethodDelete, "/v1/schemas/orders", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/v1/schemas/orders", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET after DELETE status = %d, want 404", rec.Code)
	}
}

func TestSchemaReplaceRefreshesParse(t *testing.T) {
	router := testServer(t).Router()

	put := func(pattern string) {
		t.Helper()
		rec := doJSON(t, router, http.MethodPut, "/v1/schemas/colors", map[string]any{
			"format": "Test: {c:Color}",
			"types": map[string]convert.TypeDef{
				"Color": {Kind: convert.KindString, Pattern: pattern},
			},
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("PUT status = %d, body %s", rec.Code, rec.Body.String())
		}
	}
	parseText := func(text string) parseResponse {
		t.Helper()
		rec := doJSON(t, router, http.MethodPost, "/v1/parse", map[string]any{
			"schema": "colors",
			"text":   text,
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("parse status = %d, body %s", rec.Code, rec.Body.String())
		}
		return decodeParse(t, rec)
	}

	put("red")
	if resp := parseText("Test: red"); !resp.Matched {
		t.Fatal("red does not match the initial schema")
	}

	// Replace the schema keeping the format and type name but changing
	// the pattern. Neither the compiled format nor the cached result for
	// the old pattern may survive the replacement.
	put("blue")
	if resp := parseText("Test: red"); resp.Matched {
		t.Error("red still matches after the schema was updated to blue")
	}
	if resp := parseText("Test: blue"); !resp.Matched {
		t.Error("blue does not match the updated schema")
	}
}

func TestPutSchemaRejectsBadFormat(t *testing.T) {
	rec := doJSON(t, testServer(t).Router(), http.MethodPut, "/v1/schemas/bad", map[string]any{
		"format": "{a:Nope}",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestPutSchemaRejectsBadName(t *testing.T) {
	rec := doJSON(t, testServer(t).Router(), http.MethodPut, "/v1/schemas/Bad..Name", map[string]any{
		"format": "{n:d}",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestRequestIDPropagation(t *testing.T) {
	router := testServer(t).Router()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "caller-id")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "caller-id" {
		t.Errorf("X-Request-ID = %q, want caller-id", got)
	}
}
