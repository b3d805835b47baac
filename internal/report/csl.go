// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"io"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID     string    `yaml:"id"`
	Type   string    `yaml:"type"`
	Title  string    `yaml:"title"`
	Author []CSLName `yaml:"author,omitempty"`
	Issued *CSLDate  `yaml:"issued,omitempty"`
	PMID   string    `yaml:"PMID,omitempty"`
	URL    string    `yaml:"URL,omitempty"`
	Note   string    `yaml:"note,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

const pubmedURL = "https://pubmed.ncbi.nlm.nih.gov/"

// FormatCSLTo writes articles as a CSL-YAML list. Only the non-academic
// authors are listed; company affiliations and the contact email go into
// the note field.
func FormatCSLTo(w io.Writer, articles []types.ArticleSummary) error {
	items := make([]CSLItem, len(articles))
	for i, a := range articles {
		items[i] = toCSLItem(a)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

func toCSLItem(a types.ArticleSummary) CSLItem {
	item := CSLItem{
		ID:    "pmid:" + a.PubmedID,
		Type:  "article-journal",
		Title: a.Title,
		PMID:  a.PubmedID,
	}
	if a.PubmedID != "" {
		item.URL = pubmedURL + a.PubmedID + "/"
	}

	for _, au := range a.NonAcademicAuthors {
		if au.Name == "" {
			continue
		}
		item.Author = append(item.Author, parseAuthorName(au.Name))
	}

	if parts := parseDateParts(a.PublicationDate); len(parts) > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{parts}}
	}

	var notes []string
	if len(a.CompanyAffiliations) > 0 {
		notes = append(notes, "Company affiliations: "+strings.Join(a.CompanyAffiliations, "; "))
	}
	if a.CorrespondingAuthorEmail != "" {
		notes = append(notes, "Contact: "+a.CorrespondingAuthorEmail)
	}
	item.Note = strings.Join(notes, "\n")

	return item
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}

// parseDateParts turns "05 Mar 2024", "Mar 2024" or "2024" into
// [year, month, day] prefixes. Unparseable dates yield nil.
func parseDateParts(date string) []int {
	fields := strings.Fields(date)
	if len(fields) == 0 || len(fields) > 3 {
		return nil
	}
	year, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return nil
	}
	parts := []int{year}
	if len(fields) == 1 {
		return parts
	}
	month := parseMonth(fields[len(fields)-2])
	if month == 0 {
		return parts
	}
	parts = append(parts, month)
	if len(fields) == 3 {
		if day, err := strconv.Atoi(fields[0]); err == nil && day >= 1 && day <= 31 {
			parts = append(parts, day)
		}
	}
	return parts
}

// parseMonth accepts "03", "3", "Mar" or "March".
func parseMonth(s string) int {
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return n
		}
		return 0
	}
	if len(s) < 3 {
		return 0
	}
	abbr := strings.ToUpper(s[:1]) + strings.ToLower(s[1:3])
	t, err := time.Parse("Jan", abbr)
	if err != nil {
		return 0
	}
	return int(t.Month())
}
