// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed decodes PubMed efetch records and reduces each article to
// a types.ArticleSummary: PMID, title, formatted publication date, the
// authors whose affiliation is not academic, their distinct company
// affiliations, and a candidate corresponding-author email.
//
// Missing fields never produce errors; they become empty strings.
package pubmed

import (
	"strings"

	"github.com/pdiddy/pubmed-fetcher/internal/affiliation"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// Extractor turns PubmedArticle records into summaries. It holds no
// mutable state and is safe for concurrent use.
type Extractor struct {
	classifier *affiliation.Classifier
}

// NewExtractor returns an Extractor using c, or the default classifier
// when c is nil.
func NewExtractor(c *affiliation.Classifier) *Extractor {
	if c == nil {
		c = affiliation.Default()
	}
	return &Extractor{classifier: c}
}

// AuthorDetail is a non-academic author together with the values it
// contributes to the article summary.
type AuthorDetail struct {
	Author types.Author

	// CompanyAffiliation is the affiliation text, or "" when the author
	// has none.
	CompanyAffiliation string

	// Email is the address found in the affiliation, or "".
	Email string
}

// FormatPublicationDate renders a PubDate as "D M Y", "M Y" or "Y".
// Day is never shown without Month and Month never without Year. A
// missing PubDate, or a Year without text, yields "". Year and Day count
// only when they carry text; Month counts whenever the element exists, so
// an empty <Month/> still yields " 2020".
func FormatPublicationDate(d *PubDate) string {
	if d == nil {
		return ""
	}
	year := d.Year.String()
	if year == "" {
		return ""
	}
	if !d.Month.Present() {
		return year
	}
	month := d.Month.String()
	day := d.Day.String()
	if day == "" {
		return month + " " + year
	}
	return day + " " + month + " " + year
}

// ExtractAuthor classifies the author's affiliation. Academic authors
// return ok=false and must be skipped by the caller.
func (e *Extractor) ExtractAuthor(a Author) (detail AuthorDetail, ok bool) {
	aff := a.Affiliation()
	if e.classifier.IsAcademic(aff) {
		return AuthorDetail{}, false
	}

	name := strings.TrimSpace(a.ForeName.String() + " " + a.LastName.String())
	email := e.classifier.ExtractEmail(aff)

	return AuthorDetail{
		Author: types.Author{
			Name:        name,
			Affiliation: aff,
			Email:       email,
			IsAcademic:  false,
		},
		CompanyAffiliation: aff,
		Email:              email,
	}, true
}

// ExtractArticle builds the summary of one article. Authors are visited in
// document order; the first email found becomes the corresponding-author
// email and is not replaced by later ones.
func (e *Extractor) ExtractArticle(a PubmedArticle) types.ArticleSummary {
	mc := a.MedlineCitation
	summary := types.ArticleSummary{
		PubmedID:            mc.PMID.String(),
		Title:               mc.Article.ArticleTitle.String(),
		PublicationDate:     FormatPublicationDate(mc.Article.Journal.JournalIssue.PubDate),
		NonAcademicAuthors:  []types.Author{},
		CompanyAffiliations: []string{},
	}

	var companies orderedSet
	for _, au := range mc.Article.AuthorList.Authors {
		detail, ok := e.ExtractAuthor(au)
		if !ok {
			continue
		}
		// Only non-academic authors reach this point, so the list needs
		// no second filtering pass.
		summary.NonAcademicAuthors = append(summary.NonAcademicAuthors, detail.Author)
		companies.add(detail.CompanyAffiliation)
		if summary.CorrespondingAuthorEmail == "" && detail.Email != "" {
			summary.CorrespondingAuthorEmail = detail.Email
		}
	}
	if len(companies.items) > 0 {
		summary.CompanyAffiliations = companies.items
	}
	return summary
}

// ExtractAll summarizes every article in set, in order.
func (e *Extractor) ExtractAll(set ArticleSet) []types.ArticleSummary {
	out := make([]types.ArticleSummary, 0, len(set.Articles))
	for _, a := range set.Articles {
		out = append(out, e.ExtractArticle(a))
	}
	return out
}

// orderedSet keeps the first occurrence of each non-empty string.
type orderedSet struct {
	seen  map[string]bool
	items []string
}

func (s *orderedSet) add(v string) {
	if v == "" {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	if s.seen[v] {
		return
	}
	s.seen[v] = true
	s.items = append(s.items, v)
}
