package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/aluiziolira/review-harvester/config"
	"github.com/aluiziolira/review-harvester/models"
	"github.com/aluiziolira/review-harvester/parser"
)

// Ollama talks to a local Ollama server. Suggestions are cached per target
// host so repeat harvests of the same shop skip the model round trip.
type Ollama struct {
	client  *http.Client
	baseURL string
	model   string
	cache   *lru.Cache[string, models.SelectorSet]
	logger  *slog.Logger
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// NewOllama builds the client from config. The server is not probed here;
// an unreachable model surfaces as a per-page suggestion failure, which the
// session treats as non-fatal.
func NewOllama(cfg *config.Config, logger *slog.Logger) (*Ollama, error) {
	cache, err := lru.New[string, models.SelectorSet](cfg.SelectorCacheSize)
	if err != nil {
		return nil, fmt.Errorf("selector cache: %w", err)
	}
	return &Ollama{
		client:  &http.Client{Timeout: cfg.SuggestTimeout},
		baseURL: strings.TrimRight(cfg.OllamaURL, "/"),
		model:   cfg.OllamaModel,
		cache:   cache,
		logger:  logger,
	}, nil
}

// WithTransport swaps the underlying HTTP transport; used by tests.
func (o *Ollama) WithTransport(rt http.RoundTripper) *Ollama {
	o.client.Transport = rt
	return o
}

// Suggest proposes selectors for the page, consulting the per-host cache
// first.
func (o *Ollama) Suggest(ctx context.Context, pageURL, htmlSnippet string) (models.SelectorSet, error) {
	host := hostKey(pageURL)
	if host != "" {
		if set, ok := o.cache.Get(host); ok {
			o.logger.Debug("selector cache hit", slog.String("host", host))
			return set, nil
		}
	}

	if len(htmlSnippet) > SnippetLimit {
		htmlSnippet = htmlSnippet[:SnippetLimit]
	}
	raw, err := o.generate(ctx, selectorPrompt(htmlSnippet))
	if err != nil {
		return models.SelectorSet{}, fmt.Errorf("suggest selectors: %w", err)
	}

	set := ParseResponse(raw)
	if host != "" {
		o.cache.Add(host, set)
	}
	return set, nil
}

var verdictRe = regexp.MustCompile(`(?im)^\s*(\d+)\s*[:.)]?\s*(TRUE|FALSE|YES|NO)\b`)

// ValidateReviews samples up to five records and asks the model whether
// they read like genuine reviews. When fewer than half validate, the whole
// set is re-filtered with the strict gate. Any failure leaves the input
// untouched.
func (o *Ollama) ValidateReviews(ctx context.Context, records []models.ReviewRecord) []models.ReviewRecord {
	if len(records) == 0 {
		return records
	}
	sample := records
	if len(sample) > 5 {
		sample = sample[:5]
	}

	raw, err := o.generate(ctx, validationPrompt(sample))
	if err != nil {
		o.logger.Warn("review validation unavailable", slog.Any("error", err))
		return records
	}

	passed := 0
	for _, m := range verdictRe.FindAllStringSubmatch(raw, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > len(sample) {
			continue
		}
		verdict := strings.ToUpper(m[2])
		if verdict == "TRUE" || verdict == "YES" {
			passed++
		}
	}
	if passed*2 >= len(sample) {
		return records
	}

	o.logger.Warn("sampled reviews failed validation, re-filtering",
		slog.Int("passed", passed),
		slog.Int("sampled", len(sample)))
	kept := records[:0:0]
	for _, r := range records {
		if parser.StrictValidBody(r.Body) {
			kept = append(kept, r)
		}
	}
	return kept
}

func (o *Ollama) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Model: o.model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return decoded.Response, nil
}

func hostKey(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return u.Host
}
