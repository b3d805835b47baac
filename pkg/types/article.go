// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the get-papers-list pipeline:
// the per-article summary produced from a PubMed record and the configuration
// structs loaded by the CLI.
package types

// Author is one author of a PubMed article as seen by the affiliation
// filter. Empty strings stand for values missing from the record.
type Author struct {
	// Name is "<ForeName> <LastName>" with surrounding whitespace removed.
	Name string `json:"name" yaml:"name"`

	// Affiliation is the raw affiliation text of the author.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	// Email is the first email address found in the affiliation text.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// IsAcademic reports whether the affiliation matched an academic keyword.
	IsAcademic bool `json:"is_academic" yaml:"is_academic"`
}

// ArticleSummary is the normalized view of one PubMed article.
type ArticleSummary struct {
	// PubmedID is the PMID of the article.
	PubmedID string `json:"pubmed_id" yaml:"pubmed_id"`

	// Title is the article title with inline markup flattened.
	Title string `json:"title" yaml:"title"`

	// PublicationDate is a free-form "D Month YYYY", "Month YYYY" or "YYYY"
	// string, or empty when the record has no year.
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// NonAcademicAuthors lists authors whose affiliation is not academic,
	// in document order.
	NonAcademicAuthors []Author `json:"non_academic_authors" yaml:"non_academic_authors"`

	// CompanyAffiliations holds the distinct affiliation strings of the
	// non-academic authors in first-seen order. Never contains "".
	CompanyAffiliations []string `json:"company_affiliations" yaml:"company_affiliations"`

	// CorrespondingAuthorEmail is the first email found among the
	// non-academic authors, or empty when none has one.
	CorrespondingAuthorEmail string `json:"corresponding_author_email,omitempty" yaml:"corresponding_author_email,omitempty"`
}

// HasNonAcademicAuthors reports whether at least one author survived the
// academic filter.
func (a ArticleSummary) HasNonAcademicAuthors() bool {
	return len(a.NonAcademicAuthors) > 0
}

// AuthorNames returns the names of the non-academic authors in order.
func (a ArticleSummary) AuthorNames() []string {
	names := make([]string, 0, len(a.NonAcademicAuthors))
	for _, au := range a.NonAcademicAuthors {
		names = append(names, au.Name)
	}
	return names
}
