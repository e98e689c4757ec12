package beeminder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/felixmde/beeline/internal/logging"
	"github.com/sethvargo/go-retry"
)

// DefaultBaseURL is the public API endpoint.
const DefaultBaseURL = "https://www.beeminder.com/api/v1"

const (
	requestTimeout = 30 * time.Second
	maxRetries     = 3
	retryBase      = 500 * time.Millisecond
)

// HTTPClient talks to the service over HTTPS. Transient failures (transport
// errors, 5xx) are retried with exponential backoff before surfacing; 4xx
// responses are returned immediately as *APIError.
type HTTPClient struct {
	baseURL   string
	token     string
	hc        *http.Client
	log       logging.Logger
	retryBase time.Duration
}

func NewHTTPClient(baseURL, token string, log logging.Logger) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = logging.Nop()
	}
	return &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     token,
		hc:        &http.Client{Timeout: requestTimeout},
		log:       log,
		retryBase: retryBase,
	}
}

func (c *HTTPClient) Goals(ctx context.Context) ([]Goal, error) {
	var goals []Goal
	if err := c.do(ctx, http.MethodGet, "/users/me/goals.json", nil, &goals); err != nil {
		return nil, fmt.Errorf("fetch goals: %w", err)
	}
	return goals, nil
}

func (c *HTTPClient) ArchivedGoals(ctx context.Context) ([]Goal, error) {
	var goals []Goal
	if err := c.do(ctx, http.MethodGet, "/users/me/goals/archived.json", nil, &goals); err != nil {
		return nil, fmt.Errorf("fetch archived goals: %w", err)
	}
	return goals, nil
}

func (c *HTTPClient) Datapoints(ctx context.Context, slug, sort string, count int) ([]Datapoint, error) {
	params := url.Values{}
	if sort != "" {
		params.Set("sort", sort)
	}
	if count > 0 {
		params.Set("count", strconv.Itoa(count))
	}
	var dps []Datapoint
	path := fmt.Sprintf("/users/me/goals/%s/datapoints.json", url.PathEscape(slug))
	if err := c.do(ctx, http.MethodGet, path, params, &dps); err != nil {
		return nil, fmt.Errorf("fetch datapoints for %s: %w", slug, err)
	}
	return dps, nil
}

func (c *HTTPClient) CreateDatapoint(ctx context.Context, slug string, dp NewDatapoint) error {
	params := url.Values{}
	params.Set("value", strconv.FormatFloat(dp.Value, 'f', -1, 64))
	if dp.Comment != "" {
		params.Set("comment", dp.Comment)
	}
	if dp.Timestamp != nil {
		params.Set("timestamp", strconv.FormatInt(dp.Timestamp.Unix(), 10))
	}
	if dp.RequestID != "" {
		params.Set("requestid", dp.RequestID)
	}
	path := fmt.Sprintf("/users/me/goals/%s/datapoints.json", url.PathEscape(slug))
	if err := c.do(ctx, http.MethodPost, path, params, nil); err != nil {
		return fmt.Errorf("create datapoint for %s: %w", slug, err)
	}
	return nil
}

func (c *HTTPClient) UpdateDatapoint(ctx context.Context, slug string, dp DatapointUpdate) error {
	params := url.Values{}
	params.Set("timestamp", strconv.FormatInt(dp.Timestamp.Unix(), 10))
	params.Set("value", strconv.FormatFloat(dp.Value, 'f', -1, 64))
	// Always sent so an emptied comment clears the remote one.
	params.Set("comment", dp.Comment)
	path := fmt.Sprintf("/users/me/goals/%s/datapoints/%s.json", url.PathEscape(slug), url.PathEscape(dp.ID))
	if err := c.do(ctx, http.MethodPut, path, params, nil); err != nil {
		return fmt.Errorf("update datapoint %s for %s: %w", dp.ID, slug, err)
	}
	return nil
}

func (c *HTTPClient) DeleteDatapoint(ctx context.Context, slug, id string) error {
	path := fmt.Sprintf("/users/me/goals/%s/datapoints/%s.json", url.PathEscape(slug), url.PathEscape(id))
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete datapoint %s for %s: %w", id, slug, err)
	}
	return nil
}

// do issues one API call. GET/DELETE parameters travel in the query string,
// POST/PUT parameters in a form body. out, when non-nil, receives the
// decoded JSON response.
func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("auth_token", c.token)

	u := c.baseURL + path
	var body string
	switch method {
	case http.MethodPost, http.MethodPut:
		body = params.Encode()
	default:
		u += "?" + params.Encode()
	}

	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(c.retryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		var r io.Reader
		if body != "" {
			r = strings.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, r)
		if err != nil {
			return err
		}
		if body != "" {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}

		c.log.Debug(ctx, "issuing request", "method", method, "path", path)
		resp, err := c.hc.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("read response: %w", err))
		}

		switch {
		case resp.StatusCode >= 500:
			c.log.Warn(ctx, "server error, will retry", "status", resp.StatusCode, "path", path)
			return retry.RetryableError(parseAPIError(resp.StatusCode, data))
		case resp.StatusCode >= 400:
			return parseAPIError(resp.StatusCode, data)
		}

		if out != nil {
			if err := json.Unmarshal(data, out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
		}
		return nil
	})
}
