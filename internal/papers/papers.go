// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package papers runs a PubMed query end to end: esearch for IDs, efetch
// for the records, extraction of each article, and the filter that keeps
// articles with at least one non-academic author.
package papers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/pubmed-fetcher/internal/entrez"
	"github.com/pdiddy/pubmed-fetcher/internal/pubmed"
	"github.com/pdiddy/pubmed-fetcher/internal/report"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// ErrEmptyTerm is returned when the search term is blank.
var ErrEmptyTerm = errors.New("search term cannot be empty")

// FetchBatchSize is the number of IDs sent per efetch request.
const FetchBatchSize = 500

// Source is the remote side of the pipeline. *entrez.Client implements it.
type Source interface {
	Search(ctx context.Context, db string, opts types.SearchOptions) (entrez.SearchResult, error)
	Fetch(ctx context.Context, ids []string) (pubmed.ArticleSet, error)
}

// Pipeline wires a Source to an Extractor.
type Pipeline struct {
	Source    Source
	Extractor *pubmed.Extractor
	Log       *zap.SugaredLogger

	// Now stamps the report. Defaults to time.Now.
	Now func() time.Time
}

// Run executes the query in opts and returns the report of articles with
// non-academic authors. Articles are processed one at a time in the order
// efetch returns them.
func (p *Pipeline) Run(ctx context.Context, opts types.SearchOptions) (report.Report, error) {
	opts.Term = strings.TrimSpace(opts.Term)
	if opts.Term == "" {
		return report.Report{}, ErrEmptyTerm
	}
	if p.Source == nil {
		return report.Report{}, fmt.Errorf("no Entrez source configured")
	}
	log := p.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	extractor := p.Extractor
	if extractor == nil {
		extractor = pubmed.NewExtractor(nil)
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}

	log.Debugw("searching PubMed", "term", opts.Term, "retmax", opts.RetMax, "sort", opts.Sort)
	found, err := p.Source.Search(ctx, "pubmed", opts)
	if err != nil {
		return report.Report{}, fmt.Errorf("searching PubMed: %w", err)
	}
	log.Debugw("search finished", "count", found.Count, "ids", len(found.IDs))

	var summaries []types.ArticleSummary
	fetched := 0
	for _, batch := range chunk(found.IDs, FetchBatchSize) {
		log.Debugw("fetching articles", "ids", len(batch))
		set, err := p.Source.Fetch(ctx, batch)
		if err != nil {
			return report.Report{}, fmt.Errorf("fetching articles: %w", err)
		}
		fetched += len(set.Articles)
		summaries = append(summaries, extractor.ExtractAll(set)...)
	}

	matched := FilterNonAcademic(summaries)
	log.Debugw("articles filtered", "fetched", fetched, "matched", len(matched))

	return report.Report{
		Query: opts,
		Summary: report.Summary{
			Found:            found.Count,
			Fetched:          fetched,
			Matched:          len(matched),
			QueryTranslation: found.QueryTranslation,
			Timestamp:        now(),
		},
		Articles: matched,
	}, nil
}

// FilterNonAcademic keeps summaries with at least one non-academic author,
// preserving order.
func FilterNonAcademic(summaries []types.ArticleSummary) []types.ArticleSummary {
	out := make([]types.ArticleSummary, 0, len(summaries))
	for _, s := range summaries {
		if s.HasNonAcademicAuthors() {
			out = append(out, s)
		}
	}
	return out
}

func chunk(ids []string, size int) [][]string {
	var out [][]string
	for len(ids) > size {
		out = append(out, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		out = append(out, ids)
	}
	return out
}
