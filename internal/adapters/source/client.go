// Package source fetches raw rows from an offset-paged tabular records API
// (Airtable's REST shape) and flattens the pages into one ordered slice.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/okian/setterboard/internal/domain/model"
	"github.com/okian/setterboard/pkg/logger"
	"github.com/okian/setterboard/pkg/metrics"
)

// errBodyLimit caps how much of a failed response is quoted in the error.
const errBodyLimit = 512

var baseIDPattern = regexp.MustCompile(`app[a-zA-Z0-9]+`)

// Request names the table to read and the credentials to read it with.
type Request struct {
	APIKey string
	BaseID string
	Table  string
}

// Client reads every page of a table.
type Client struct {
	baseURL  string
	http     *http.Client
	timeout  time.Duration
	maxPages int
	log      logger.Logger
}

// page is one response of the records API.
type page struct {
	Records []struct {
		ID     string         `json:"id"`
		Fields map[string]any `json:"fields"`
	} `json:"records"`
	Offset string `json:"offset"`
}

// New creates a Client with configuration options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		http:     http.DefaultClient,
		timeout:  defaultTimeout,
		maxPages: defaultMaxPages,
		log:      logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

// Fetch follows offsets until the API stops returning one or the page cap is
// hit, and returns the rows in API order. A record id seen on an earlier page
// is dropped.
func (c *Client) Fetch(ctx context.Context, req Request) ([]model.RawRow, error) {
	apiKey := CleanInput(req.APIKey)
	baseID := CleanBaseID(req.BaseID)
	table := CleanInput(req.Table)
	if table == "" {
		table = model.DefaultTableName
	}
	if apiKey == "" || baseID == "" {
		return nil, ErrMissingCredentials
	}

	start := time.Now()
	endpoint := c.baseURL + "/" + url.PathEscape(baseID) + "/" + url.PathEscape(table)

	var rows []model.RawRow
	seen := make(map[string]struct{})
	offset := ""
	pages := 0
	for {
		p, err := c.fetchPage(ctx, endpoint, apiKey, offset)
		if err != nil {
			return nil, err
		}
		pages++
		metrics.RecordSourcePage()

		for _, r := range p.Records {
			if r.ID != "" {
				if _, dup := seen[r.ID]; dup {
					continue
				}
				seen[r.ID] = struct{}{}
			}
			rows = append(rows, model.RawRow{ID: r.ID, Fields: r.Fields})
		}

		offset = p.Offset
		if offset == "" {
			break
		}
		if pages >= c.maxPages {
			c.log.Warn(ctx, "page cap reached, remaining records skipped",
				logger.String("table", table),
				logger.Int("pages", pages))
			break
		}
	}

	elapsed := time.Since(start)
	metrics.RecordSourceLatency(float64(elapsed.Milliseconds()))
	c.log.Debug(ctx, "records fetched",
		logger.String("table", table),
		logger.Int("pages", pages),
		logger.Int("rows", len(rows)),
		logger.Duration("took", elapsed))

	return rows, nil
}

func (c *Client) fetchPage(ctx context.Context, endpoint, apiKey, offset string) (page, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u, err := url.Parse(endpoint)
	if err != nil {
		return page{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if offset != "" {
		q := u.Query()
		q.Set("offset", offset)
		u.RawQuery = q.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return page{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		metrics.RecordSourceError("network")
		return page{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordSourceError("status")
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
		return page{}, fmt.Errorf("%w: failed to fetch (%d): %s",
			ErrStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var p page
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&p); err != nil {
		metrics.RecordSourceError("decode")
		return page{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return p, nil
}

// CleanInput trims s and removes line breaks pasted along with it.
func CleanInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}

// CleanBaseID extracts the "app…" id from a pasted Airtable URL. Anything
// else is returned cleaned but otherwise untouched.
func CleanBaseID(s string) string {
	s = CleanInput(s)
	if strings.Contains(s, "airtable.com") {
		if m := baseIDPattern.FindString(s); m != "" {
			return m
		}
	}
	return s
}
