package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dwa/backend/internal/model"
)

// DefaultEndpoint is the WeDataTools job search endpoint.
const DefaultEndpoint = "https://api.wedatatools.com/v2/get-jobs"

const maxErrorBody = 4 << 10

// includedFields is the fixed field-inclusion list sent with every request.
var includedFields = []string{
	"location",
	"derived_location",
	"job_title",
	"employer",
	"type",
	"excerpt",
	"url",
	"post_date",
	"region",
	"stateprov",
	"harmonized_wage",
	"skill_names",
	"nocs_2021",
	"major_group_2021",
	"naics",
	"sector",
}

var (
	// ErrFetchTimeout is returned when the jobs API does not answer in time.
	ErrFetchTimeout = errors.New("jobs api request timed out")
	// ErrMissingAPIKey is returned when no jobs API key is configured.
	ErrMissingAPIKey = errors.New("jobs api key not configured")
)

// APIError is a non-2xx response from the jobs API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jobs api returned %d: %s", e.StatusCode, e.Body)
}

// Fetcher retrieves pages of postings from the jobs API. Without an APIKey
// every FetchPage fails with ErrMissingAPIKey and sends nothing.
type Fetcher struct {
	Endpoint string
	APIKey   string
	client   *http.Client
}

// NewFetcher constructs a fetcher whose requests are bounded by timeout.
func NewFetcher(endpoint, apiKey string, timeout time.Duration) *Fetcher {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Fetcher{
		Endpoint: endpoint,
		APIKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type searchResponse struct {
	Hits []struct {
		Source model.RawPosting `json:"_source"`
	} `json:"hits"`
}

// FetchPage issues one search request for page (1-based) with perPage results,
// newest first. A response without a hits array is an empty page.
func (f *Fetcher) FetchPage(ctx context.Context, page, perPage int) ([]model.RawPosting, error) {
	if f.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	form := url.Values{}
	form.Set("key", f.APIKey)
	form.Set("page", strconv.Itoa(page))
	form.Set("per_page", strconv.Itoa(perPage))
	for _, field := range includedFields {
		form.Add("includes[]", field)
	}
	form.Set("orderby", "date_desc")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, wrapTransport("http POST", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapTransport("read body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	out := make([]model.RawPosting, 0, len(sr.Hits))
	for _, h := range sr.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func wrapTransport(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%s: %w: %v", op, ErrFetchTimeout, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
