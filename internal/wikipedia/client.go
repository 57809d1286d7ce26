package wikipedia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"industrybrief/internal/industry"
)

const (
	DefaultMaxResults = 10
	maxResponseBytes  = 2 << 20
)

type Config struct {
	// BaseURL overrides the endpoint entirely; when empty it is derived from
	// Language (default "en").
	BaseURL    string
	Language   string
	UserAgent  string
	MaxResults int
	HTTPClient *http.Client
}

// Client retrieves encyclopedia documents through the MediaWiki Action API.
// Retrieve tries the search-generator endpoint first and falls back to the
// opensearch endpoint when the primary call fails for any reason.
type Client struct {
	cfg Config
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		lang := cfg.Language
		if lang == "" {
			lang = "en"
		}
		cfg.BaseURL = fmt.Sprintf("https://%s.wikipedia.org/w/api.php", lang)
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "industrybrief/1.0"
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{cfg: cfg}
}

var _ industry.Retriever = (*Client)(nil)

// Retrieve implements industry.Retriever. The fallback error propagates when
// both call paths fail.
func (c *Client) Retrieve(ctx context.Context, query string) ([]industry.Document, error) {
	docs, err := c.tryPrimary(ctx, query)
	if err == nil {
		return docs, nil
	}
	log.Printf("wikipedia: primary search failed for %q, trying fallback: %v", query, err)
	return c.tryFallback(ctx, query)
}

// --- primary call path: generator=search with extracts in one round trip ---

type searchPage struct {
	PageID  int    `json:"pageid"`
	Index   int    `json:"index"`
	Title   string `json:"title"`
	Extract string `json:"extract"`
	FullURL string `json:"fullurl"`
}

type searchResponse struct {
	Query struct {
		Pages map[string]searchPage `json:"pages"`
	} `json:"query"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (c *Client) tryPrimary(ctx context.Context, query string) ([]industry.Document, error) {
	params := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"generator":   {"search"},
		"gsrsearch":   {query},
		"gsrlimit":    {fmt.Sprintf("%d", c.cfg.MaxResults)},
		"prop":        {"extracts|info"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"exlimit":     {"max"},
		"inprop":      {"url"},
	}
	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}
	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("api error %s: %s", parsed.Error.Code, parsed.Error.Info)
	}

	pages := make([]searchPage, 0, len(parsed.Query.Pages))
	for _, p := range parsed.Query.Pages {
		pages = append(pages, p)
	}
	// The pages object is keyed by page id; result order lives in the index field.
	sort.Slice(pages, func(i, j int) bool { return pages[i].Index < pages[j].Index })

	docs := make([]industry.Document, 0, len(pages))
	for _, p := range pages {
		docs = append(docs, industry.Document{
			Title:   p.Title,
			URL:     p.FullURL,
			Extract: p.Extract,
			Body:    p.Extract,
		})
	}
	return docs, nil
}

// --- fallback call path: opensearch titles + urls, extracts best-effort ---

func (c *Client) tryFallback(ctx context.Context, query string) ([]industry.Document, error) {
	params := url.Values{
		"action": {"opensearch"},
		"format": {"json"},
		"search": {query},
		"limit":  {fmt.Sprintf("%d", c.cfg.MaxResults)},
	}
	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	// Opensearch responds with a positional array: [query, titles, descriptions, urls].
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode opensearch response: %w", err)
	}
	if len(raw) < 4 {
		return nil, errors.New("malformed opensearch response")
	}
	var titles, descriptions, urls []string
	if err := json.Unmarshal(raw[1], &titles); err != nil {
		return nil, fmt.Errorf("decode opensearch titles: %w", err)
	}
	_ = json.Unmarshal(raw[2], &descriptions)
	if err := json.Unmarshal(raw[3], &urls); err != nil {
		return nil, fmt.Errorf("decode opensearch urls: %w", err)
	}

	docs := make([]industry.Document, 0, len(titles))
	for i, title := range titles {
		d := industry.Document{Title: title}
		if i < len(urls) {
			d.URL = urls[i]
		}
		if i < len(descriptions) {
			d.Extract = descriptions[i]
			d.Body = descriptions[i]
		}
		docs = append(docs, d)
	}

	// Opensearch descriptions are often empty; backfill intro extracts when we
	// can, but never fail the fallback over it.
	if err := c.backfillExtracts(ctx, docs); err != nil {
		log.Printf("wikipedia: extract backfill failed for %q: %v", query, err)
	}
	return docs, nil
}

type extractsResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

func (c *Client) backfillExtracts(ctx context.Context, docs []industry.Document) error {
	titles := make([]string, 0, len(docs))
	for _, d := range docs {
		if d.Body == "" && d.Title != "" {
			titles = append(titles, d.Title)
		}
	}
	if len(titles) == 0 {
		return nil
	}
	params := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"titles":      {strings.Join(titles, "|")},
		"prop":        {"extracts"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"exlimit":     {"max"},
	}
	body, err := c.get(ctx, params)
	if err != nil {
		return err
	}
	var parsed extractsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("decode extracts response: %w", err)
	}
	byTitle := map[string]string{}
	for _, p := range parsed.Query.Pages {
		byTitle[p.Title] = p.Extract
	}
	for i := range docs {
		if docs[i].Body == "" {
			if ex := byTitle[docs[i].Title]; ex != "" {
				docs[i].Extract = ex
				docs[i].Body = ex
			}
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code: %d body=%s", res.StatusCode, string(body))
	}
	return body, nil
}
