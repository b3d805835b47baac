// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/pubmed-fetcher/internal/pubmed"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

const (
	// MaxRetMax is the largest result window esearch serves.
	MaxRetMax = 10000

	defaultRetMax = 20
	defaultDB     = "pubmed"
)

// SearchResult is the decoded part of an esearch reply.
type SearchResult struct {
	Count            int      `json:"count" yaml:"count"`
	IDs              []string `json:"ids" yaml:"ids"`
	QueryTranslation string   `json:"query_translation,omitempty" yaml:"query_translation,omitempty"`
}

// esearch XML structures.
type esearchResult struct {
	XMLName          xml.Name `xml:"eSearchResult"`
	Count            int      `xml:"Count"`
	IDs              []string `xml:"IdList>Id"`
	QueryTranslation string   `xml:"QueryTranslation"`
	Error            string   `xml:"ERROR"`
	PhraseNotFound   []string `xml:"ErrorList>PhraseNotFound"`
}

// Info returns the raw einfo XML for db, or the list of databases when db
// is empty.
func (c *Client) Info(ctx context.Context, db string) (string, error) {
	params := url.Values{}
	if db != "" {
		params.Set("db", db)
	}
	body, err := c.call(ctx, "einfo", params)
	if err != nil {
		return "", err
	}
	if !bytes.Contains(body, []byte("eInfoResult")) {
		return "", fmt.Errorf("%w: einfo reply has no eInfoResult", ErrInvalidResponse)
	}
	return string(body), nil
}

// Search runs esearch against db (default pubmed) and returns matching
// UIDs. RetMax above MaxRetMax is lowered with a warning.
func (c *Client) Search(ctx context.Context, db string, opts types.SearchOptions) (SearchResult, error) {
	term := strings.TrimSpace(opts.Term)
	if term == "" {
		return SearchResult{}, fmt.Errorf("esearch: empty term")
	}
	if db == "" {
		db = defaultDB
	}

	retmax := opts.RetMax
	if retmax <= 0 {
		retmax = defaultRetMax
	}
	if retmax > MaxRetMax {
		c.log.Warnw("retmax above the esearch limit, lowering it", "requested", retmax, "limit", MaxRetMax)
		retmax = MaxRetMax
	}

	params := url.Values{
		"db":     {db},
		"term":   {term},
		"retmax": {strconv.Itoa(retmax)},
	}
	if opts.Sort != "" {
		params.Set("sort", opts.Sort)
	}
	if opts.MinDate != "" || opts.MaxDate != "" {
		params.Set("datetype", "pdat")
		params.Set("mindate", opts.MinDate)
		params.Set("maxdate", opts.MaxDate)
	}

	body, err := c.call(ctx, "esearch", params)
	if err != nil {
		return SearchResult{}, err
	}
	if !bytes.Contains(body, []byte("eSearchResult")) {
		return SearchResult{}, fmt.Errorf("%w: esearch reply has no eSearchResult", ErrInvalidResponse)
	}

	var res esearchResult
	if err := xml.Unmarshal(body, &res); err != nil {
		return SearchResult{}, fmt.Errorf("%w: parsing esearch reply: %v", ErrInvalidResponse, err)
	}
	if res.Error != "" {
		return SearchResult{}, fmt.Errorf("esearch: %s", strings.TrimSpace(res.Error))
	}
	if len(res.PhraseNotFound) > 0 {
		c.log.Warnw("esearch ignored phrases", "phrases", res.PhraseNotFound)
	}

	c.log.Debugw("esearch done", "count", res.Count, "returned", len(res.IDs), "translation", res.QueryTranslation)
	return SearchResult{
		Count:            res.Count,
		IDs:              res.IDs,
		QueryTranslation: res.QueryTranslation,
	}, nil
}

// Summary returns the raw esummary DocSum XML for ids in db (default pubmed).
func (c *Client) Summary(ctx context.Context, db string, ids []string) (string, error) {
	joined := FormatIDs(ids)
	if joined == "" {
		return "", fmt.Errorf("esummary: no ids")
	}
	if db == "" {
		db = defaultDB
	}
	body, err := c.call(ctx, "esummary", url.Values{"db": {db}, "id": {joined}})
	if err != nil {
		return "", err
	}
	if !bytes.Contains(body, []byte("eSummaryResult")) {
		return "", fmt.Errorf("%w: esummary reply has no eSummaryResult", ErrInvalidResponse)
	}
	return string(body), nil
}

// Fetch retrieves full PubMed records for ids. An empty id list returns
// an empty set without contacting NCBI.
func (c *Client) Fetch(ctx context.Context, ids []string) (pubmed.ArticleSet, error) {
	joined := FormatIDs(ids)
	if joined == "" {
		return pubmed.ArticleSet{}, nil
	}

	params := url.Values{
		"db":      {defaultDB},
		"id":      {joined},
		"rettype": {"xml"},
		"retmode": {"xml"},
	}
	body, err := c.call(ctx, "efetch", params)
	if err != nil {
		return pubmed.ArticleSet{}, err
	}
	if !bytes.Contains(body, []byte("PubmedArticle")) {
		return pubmed.ArticleSet{}, fmt.Errorf("%w: efetch reply has no PubmedArticle", ErrInvalidResponse)
	}

	set, err := pubmed.ParseArticleSet(bytes.NewReader(body))
	if err != nil {
		return pubmed.ArticleSet{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	c.log.Debugw("efetch done", "requested", countIDs(joined), "articles", len(set.Articles))
	return set, nil
}
