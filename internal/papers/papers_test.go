// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package papers

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-fetcher/internal/entrez"
	"github.com/pdiddy/pubmed-fetcher/internal/pubmed"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// --- mock source ---

type mockSource struct {
	search    entrez.SearchResult
	searchErr error
	articles  map[string]pubmed.PubmedArticle
	fetchErr  error

	gotOpts    types.SearchOptions
	fetchCalls [][]string
}

func (m *mockSource) Search(_ context.Context, _ string, opts types.SearchOptions) (entrez.SearchResult, error) {
	m.gotOpts = opts
	return m.search, m.searchErr
}

func (m *mockSource) Fetch(_ context.Context, ids []string) (pubmed.ArticleSet, error) {
	m.fetchCalls = append(m.fetchCalls, ids)
	if m.fetchErr != nil {
		return pubmed.ArticleSet{}, m.fetchErr
	}
	var set pubmed.ArticleSet
	for _, id := range ids {
		if a, ok := m.articles[id]; ok {
			set.Articles = append(set.Articles, a)
		}
	}
	return set, nil
}

func article(pmid string, affiliations ...string) pubmed.PubmedArticle {
	var a pubmed.PubmedArticle
	a.MedlineCitation.PMID = pubmed.NewText(pmid)
	a.MedlineCitation.Article.ArticleTitle = pubmed.NewText("Title " + pmid)
	for i, aff := range affiliations {
		a.MedlineCitation.Article.AuthorList.Authors = append(a.MedlineCitation.Article.AuthorList.Authors, pubmed.Author{
			ForeName:        pubmed.NewText(fmt.Sprintf("Author%d", i)),
			AffiliationInfo: []pubmed.AffiliationInfo{{Affiliation: pubmed.NewText(aff)}},
		})
	}
	return a
}

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func TestRunEmptyTerm(t *testing.T) {
	p := &Pipeline{Source: &mockSource{}}
	_, err := p.Run(context.Background(), types.SearchOptions{Term: "  \t "})
	assert.ErrorIs(t, err, ErrEmptyTerm)
}

func TestRunFiltersAcademicOnlyArticles(t *testing.T) {
	src := &mockSource{
		search: entrez.SearchResult{Count: 40, IDs: []string{"1", "2", "3"}, QueryTranslation: "x[All Fields]"},
		articles: map[string]pubmed.PubmedArticle{
			"1": article("1", "Harvard University", "Pfizer Inc. a@pfizer.com"),
			"2": article("2", "University of Oxford"),
			"3": article("3", "Moderna, Cambridge MA"),
		},
	}
	p := &Pipeline{Source: src, Now: func() time.Time { return fixedNow }}

	rep, err := p.Run(context.Background(), types.SearchOptions{Term: " cancer ", RetMax: 3})
	require.NoError(t, err)

	assert.Equal(t, "cancer", src.gotOpts.Term)
	assert.Equal(t, "cancer", rep.Query.Term)
	assert.Equal(t, 40, rep.Summary.Found)
	assert.Equal(t, 3, rep.Summary.Fetched)
	assert.Equal(t, 2, rep.Summary.Matched)
	assert.Equal(t, "x[All Fields]", rep.Summary.QueryTranslation)
	assert.Equal(t, fixedNow, rep.Summary.Timestamp)

	require.Len(t, rep.Articles, 2)
	assert.Equal(t, "1", rep.Articles[0].PubmedID)
	assert.Equal(t, []string{"Author1"}, rep.Articles[0].AuthorNames())
	assert.Equal(t, "a@pfizer.com", rep.Articles[0].CorrespondingAuthorEmail)
	assert.Equal(t, "3", rep.Articles[1].PubmedID)
}

func TestRunNoIDsSkipsFetch(t *testing.T) {
	src := &mockSource{search: entrez.SearchResult{Count: 0}}
	p := &Pipeline{Source: src}

	rep, err := p.Run(context.Background(), types.SearchOptions{Term: "nothing matches"})
	require.NoError(t, err)
	assert.Empty(t, src.fetchCalls)
	assert.Empty(t, rep.Articles)
	assert.NotNil(t, rep.Articles)
}

func TestRunBatchesFetch(t *testing.T) {
	ids := make([]string, FetchBatchSize+10)
	for i := range ids {
		ids[i] = fmt.Sprintf("%d", i)
	}
	src := &mockSource{search: entrez.SearchResult{Count: len(ids), IDs: ids}}
	p := &Pipeline{Source: src}

	_, err := p.Run(context.Background(), types.SearchOptions{Term: "x"})
	require.NoError(t, err)
	require.Len(t, src.fetchCalls, 2)
	assert.Len(t, src.fetchCalls[0], FetchBatchSize)
	assert.Len(t, src.fetchCalls[1], 10)
}

func TestRunPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	p := &Pipeline{Source: &mockSource{searchErr: boom}}
	_, err := p.Run(context.Background(), types.SearchOptions{Term: "x"})
	assert.ErrorIs(t, err, boom)

	p = &Pipeline{Source: &mockSource{search: entrez.SearchResult{IDs: []string{"1"}}, fetchErr: entrez.ErrInvalidResponse}}
	_, err = p.Run(context.Background(), types.SearchOptions{Term: "x"})
	assert.ErrorIs(t, err, entrez.ErrInvalidResponse)
}

func TestRunNoSource(t *testing.T) {
	_, err := (&Pipeline{}).Run(context.Background(), types.SearchOptions{Term: "x"})
	assert.Error(t, err)
}

func TestFilterNonAcademic(t *testing.T) {
	in := []types.ArticleSummary{
		{PubmedID: "a"},
		{PubmedID: "b", NonAcademicAuthors: []types.Author{{Name: "X"}}},
		{PubmedID: "c", NonAcademicAuthors: []types.Author{}},
		{PubmedID: "d", NonAcademicAuthors: []types.Author{{}}},
	}
	got := FilterNonAcademic(in)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].PubmedID)
	assert.Equal(t, "d", got[1].PubmedID)
}

func TestChunk(t *testing.T) {
	assert.Nil(t, chunk(nil, 3))
	assert.Equal(t, [][]string{{"1", "2"}}, chunk([]string{"1", "2"}, 3))
	assert.Equal(t, [][]string{{"1", "2", "3"}, {"4"}}, chunk([]string{"1", "2", "3", "4"}, 3))
	assert.Equal(t, [][]string{{"1", "2", "3"}}, chunk([]string{"1", "2", "3"}, 3))
}
