package ideogram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(Options{APIKey: "test-key", BaseURL: srv.URL, HTTPClient: srv.Client()})
	if err != nil {
		t.Fatal(err)
	}
	return client, srv
}

func TestGenerateImageSuccess(t *testing.T) {
	var gotPayload generateRequest
	var gotAPIKey string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotAPIKey = r.Header.Get("Api-Key")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Fatal(err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"url": "https://cdn.example/img-1.png", "seed": 42, "resolution": "RESOLUTION_1024_1024"},
			},
		})
	})

	asset, err := client.GenerateImage(context.Background(), ImageRequest{
		Prompt:       "a sketchy banner",
		Resolution:   "RESOLUTION_1024_1024",
		ColorPalette: []string{"#102030", "", "#AABBCC"},
		Seed:         7,
	})
	if err != nil {
		t.Fatal(err)
	}
	if asset.URL != "https://cdn.example/img-1.png" || asset.Seed != 42 {
		t.Fatalf("unexpected asset: %+v", asset)
	}
	if gotAPIKey != "test-key" {
		t.Fatalf("api key header not sent, got %q", gotAPIKey)
	}
	if gotPayload.ImageRequest.Resolution != "RESOLUTION_1024_1024" {
		t.Fatalf("resolution not forwarded: %+v", gotPayload.ImageRequest)
	}
	if gotPayload.ImageRequest.ColorPalette == nil || len(gotPayload.ImageRequest.ColorPalette.Members) != 2 {
		t.Fatalf("palette not encoded (blank entries must be dropped): %+v", gotPayload.ImageRequest.ColorPalette)
	}
	if gotPayload.ImageRequest.Seed == nil || *gotPayload.ImageRequest.Seed != 7 {
		t.Fatal("seed not forwarded")
	}
}

func TestGenerateImageStatusError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})

	_, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "p", Resolution: "RESOLUTION_1024_1024"})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Status != http.StatusTooManyRequests {
		t.Fatalf("unexpected status %d", statusErr.Status)
	}
}

func TestGenerateImageEmptyPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	})

	_, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "p", Resolution: "RESOLUTION_1024_1024"})
	if err == nil {
		t.Fatal("expected error for empty data array")
	}
}

func TestGenerateImageRequiresCredentials(t *testing.T) {
	client, err := NewClient(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if client.HasCredentials() {
		t.Fatal("client without key must report missing credentials")
	}
	_, err = client.GenerateImage(context.Background(), ImageRequest{Prompt: "p"})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}
