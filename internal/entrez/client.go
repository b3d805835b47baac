// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package entrez is a small client for the NCBI E-utilities (einfo,
// esearch, esummary, efetch). Requests carry the configured email, tool
// and API key, are paced to the NCBI rate limit, and switch from GET to
// POST when the parameter list gets long.
package entrez

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pdiddy/pubmed-fetcher/internal/httputil"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// DefaultBaseURL is the E-utilities root.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const (
	defaultTool = "get-papers-list"

	// NCBI allows 3 requests per second without an API key and 10 with one.
	anonymousRPS = 3
	keyedRPS     = 10

	// NCBI asks for POST once the encoded parameters grow past ~1000
	// characters or the request names about 200 IDs.
	postParamThreshold = 1000
	postIDThreshold    = 200
)

// ErrInvalidResponse reports an E-utilities reply that does not have the
// expected shape.
var ErrInvalidResponse = errors.New("invalid Entrez response")

// Client talks to the E-utilities. It is safe for concurrent use.
type Client struct {
	http    *resty.Client
	baseURL string
	email   string
	apiKey  string
	tool    string
	limiter *rate.Limiter
	log     *zap.SugaredLogger
}

// NewClient builds a Client from cfg. A nil log discards output.
// cfg.RequestsPerSecond of 0 picks the NCBI limit for the key state; a
// negative value disables pacing.
func NewClient(cfg types.EntrezConfig, log *zap.SugaredLogger) *Client {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	tool := cfg.Tool
	if tool == "" {
		tool = defaultTool
	}

	return &Client{
		http:    httputil.NewClient(cfg.HTTPConfig),
		baseURL: base,
		email:   cfg.Email,
		apiKey:  cfg.APIKey,
		tool:    tool,
		limiter: newLimiter(cfg),
		log:     log,
	}
}

func newLimiter(cfg types.EntrezConfig) *rate.Limiter {
	rps := cfg.RequestsPerSecond
	switch {
	case rps < 0:
		return rate.NewLimiter(rate.Inf, 1)
	case rps == 0 && cfg.APIKey != "":
		rps = keyedRPS
	case rps == 0:
		rps = anonymousRPS
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// call sends one E-utility request and returns the body of a 200 reply.
func (c *Client) call(ctx context.Context, util string, params url.Values) ([]byte, error) {
	c.addDefaults(params)
	endpoint := fmt.Sprintf("%s/%s.fcgi", c.baseURL, util)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req := c.http.R().SetContext(ctx)
	var (
		resp *resty.Response
		err  error
	)
	if usePost(params) {
		c.log.Debugw("entrez request", "util", util, "method", http.MethodPost, "ids", countIDs(params.Get("id")))
		resp, err = req.SetFormDataFromValues(params).Post(endpoint)
	} else {
		c.log.Debugw("entrez request", "util", util, "method", http.MethodGet, "ids", countIDs(params.Get("id")))
		resp, err = req.SetQueryParamsFromValues(params).Get(endpoint)
	}
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", util, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%s returned HTTP %d", util, resp.StatusCode())
	}
	return resp.Body(), nil
}

// addDefaults fills email, api_key and tool unless the caller set them.
// Empty values are left out.
func (c *Client) addDefaults(params url.Values) {
	defaults := map[string]string{
		"email":   c.email,
		"api_key": c.apiKey,
		"tool":    c.tool,
	}
	for k, v := range defaults {
		if params.Get(k) == "" && v != "" {
			params.Set(k, v)
		}
	}
	for k, vs := range params {
		if len(vs) == 0 || (len(vs) == 1 && vs[0] == "") {
			params.Del(k)
		}
	}
}

// usePost reports whether params are too large for a GET query string.
func usePost(params url.Values) bool {
	return len(params.Encode()) >= postParamThreshold || countIDs(params.Get("id")) >= postIDThreshold
}

// FormatIDs joins UIDs into one comma-delimited string. Entries may
// themselves be comma-separated; whitespace around IDs and empty entries
// are dropped.
func FormatIDs(ids []string) string {
	var out []string
	for _, entry := range ids {
		for _, id := range strings.Split(entry, ",") {
			if id = strings.TrimSpace(id); id != "" {
				out = append(out, id)
			}
		}
	}
	return strings.Join(out, ",")
}

func countIDs(joined string) int {
	if joined == "" {
		return 0
	}
	return strings.Count(joined, ",") + 1
}
