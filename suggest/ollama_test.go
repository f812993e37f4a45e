package suggest

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jarcoal/httpmock"

	"github.com/aluiziolira/review-harvester/config"
	"github.com/aluiziolira/review-harvester/models"
)

func newTestOllama(t *testing.T) (*Ollama, *httpmock.MockTransport) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.OllamaURL = "http://ollama.test"
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	o, err := NewOllama(cfg, logger)
	if err != nil {
		t.Fatalf("new ollama: %v", err)
	}
	transport := httpmock.NewMockTransport()
	o.WithTransport(transport)
	return o, transport
}

func TestSuggestParsesReply(t *testing.T) {
	o, transport := newTestOllama(t)
	transport.RegisterResponder("POST", "http://ollama.test/api/generate",
		httpmock.NewJsonResponderOrPanic(200, map[string]string{
			"response": "CONTAINERS: \".rev\", \".box\"\nCONTENT: \".txt\", \".body\"\nRATINGS: \".stars\", \".score\"",
		}))

	set, err := o.Suggest(context.Background(), "https://shop.example/product/1", "<html></html>")
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(set.Containers) == 0 || set.Containers[0] != ".rev" {
		t.Errorf("containers = %v", set.Containers)
	}
}

func TestSuggestCachesPerHost(t *testing.T) {
	o, transport := newTestOllama(t)
	transport.RegisterResponder("POST", "http://ollama.test/api/generate",
		httpmock.NewJsonResponderOrPanic(200, map[string]string{
			"response": "CONTAINERS: \".a\", \".b\"\nCONTENT: \".c\", \".d\"\nRATINGS: \".e\", \".f\"",
		}))

	ctx := context.Background()
	if _, err := o.Suggest(ctx, "https://shop.example/product/1", "<html></html>"); err != nil {
		t.Fatalf("first suggest: %v", err)
	}
	if _, err := o.Suggest(ctx, "https://shop.example/product/2", "<html></html>"); err != nil {
		t.Fatalf("second suggest: %v", err)
	}
	if calls := transport.GetTotalCallCount(); calls != 1 {
		t.Errorf("calls = %d, want 1 (same host served from cache)", calls)
	}

	if _, err := o.Suggest(ctx, "https://other.example/product/1", "<html></html>"); err != nil {
		t.Fatalf("third suggest: %v", err)
	}
	if calls := transport.GetTotalCallCount(); calls != 2 {
		t.Errorf("calls = %d, want 2 (different host misses cache)", calls)
	}
}

func TestSuggestServerError(t *testing.T) {
	o, transport := newTestOllama(t)
	transport.RegisterResponder("POST", "http://ollama.test/api/generate",
		httpmock.NewStringResponder(500, "boom"))

	if _, err := o.Suggest(context.Background(), "https://shop.example/p", "<html></html>"); err == nil {
		t.Fatal("expected error on server failure")
	}
}

func TestValidateReviewsKeepsApprovedSet(t *testing.T) {
	o, transport := newTestOllama(t)
	transport.RegisterResponder("POST", "http://ollama.test/api/generate",
		httpmock.NewJsonResponderOrPanic(200, map[string]string{
			"response": "1: TRUE\n2: TRUE",
		}))

	records := []models.ReviewRecord{
		{Body: "Great product, fast shipping, would buy again"},
		{Body: "Arrived broken but support replaced it quickly"},
	}
	out := o.ValidateReviews(context.Background(), records)
	if len(out) != 2 {
		t.Fatalf("records = %d, want 2 untouched", len(out))
	}
}

func TestValidateReviewsRefiltersSuspectSet(t *testing.T) {
	o, transport := newTestOllama(t)
	transport.RegisterResponder("POST", "http://ollama.test/api/generate",
		httpmock.NewJsonResponderOrPanic(200, map[string]string{
			"response": "1: FALSE\n2: FALSE",
		}))

	records := []models.ReviewRecord{
		{Body: "Home Shop About Contact"},
		{Body: "Comfortable shoes that fit true to size and look sharp"},
	}
	out := o.ValidateReviews(context.Background(), records)
	if len(out) != 1 {
		t.Fatalf("records = %d, want 1 after strict re-filter", len(out))
	}
	if out[0].Body != "Comfortable shoes that fit true to size and look sharp" {
		t.Errorf("kept = %q", out[0].Body)
	}
}

func TestValidateReviewsDegradesOnError(t *testing.T) {
	o, transport := newTestOllama(t)
	transport.RegisterResponder("POST", "http://ollama.test/api/generate",
		httpmock.NewStringResponder(500, "down"))

	records := []models.ReviewRecord{{Body: "Great product, fast shipping, would buy again"}}
	if out := o.ValidateReviews(context.Background(), records); len(out) != 1 {
		t.Fatalf("validation failure must leave records untouched, got %d", len(out))
	}
}
