// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders article summaries as a console table, CSV,
// JSON, YAML, or CSL-YAML.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// Format selects an output renderer.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatCSL   Format = "csl"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatTable, FormatCSV, FormatJSON, FormatYAML, FormatCSL:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, csv, json, yaml or csl)", name)
	}
}

// Columns are the report headings, in order.
var Columns = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"Non-academic Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email",
}

// Report is one run's query, statistics, and matching articles.
type Report struct {
	Query    types.SearchOptions    `json:"query" yaml:"query"`
	Summary  Summary                `json:"summary" yaml:"summary"`
	Articles []types.ArticleSummary `json:"articles" yaml:"articles"`
}

// Summary holds result statistics and a timestamp.
type Summary struct {
	// Found is the total esearch hit count, which may exceed Fetched.
	Found int `json:"found" yaml:"found"`

	// Fetched is the number of records efetch returned.
	Fetched int `json:"fetched" yaml:"fetched"`

	// Matched is the number of articles with a non-academic author.
	Matched int `json:"matched" yaml:"matched"`

	QueryTranslation string    `json:"query_translation,omitempty" yaml:"query_translation,omitempty"`
	Timestamp        time.Time `json:"timestamp" yaml:"timestamp"`
}

// Row flattens a summary into the report columns. Names and affiliations
// are comma-joined.
func Row(a types.ArticleSummary) []string {
	return []string{
		a.PubmedID,
		a.Title,
		a.PublicationDate,
		strings.Join(a.AuthorNames(), ", "),
		strings.Join(a.CompanyAffiliations, ", "),
		a.CorrespondingAuthorEmail,
	}
}

// Write renders r to w in format f. width is only used by the table.
func Write(w io.Writer, f Format, r Report, width int) error {
	switch f {
	case FormatTable, "":
		FormatTableTo(w, r.Articles, width)
		return nil
	case FormatCSV:
		return FormatCSVTo(w, r.Articles)
	case FormatJSON:
		return FormatJSONTo(w, r.Articles)
	case FormatYAML:
		return FormatYAMLTo(w, r)
	case FormatCSL:
		return FormatCSLTo(w, r.Articles)
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

// FormatCSVTo writes a header row and one row per article.
func FormatCSVTo(w io.Writer, articles []types.ArticleSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, a := range articles {
		if err := cw.Write(Row(a)); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", a.PubmedID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatJSONTo writes the articles as indented JSON.
func FormatJSONTo(w io.Writer, articles []types.ArticleSummary) error {
	if articles == nil {
		articles = []types.ArticleSummary{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(articles)
}

// FormatYAMLTo writes the full report, query and statistics included.
func FormatYAMLTo(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&r); err != nil {
		return fmt.Errorf("encoding YAML report: %w", err)
	}
	return enc.Close()
}

// ReadYAML loads a report previously written with FormatYAML.
func ReadYAML(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &r, nil
}

// OutputPath appends the format's extension when name has none.
func OutputPath(name string, f Format) string {
	if filepath.Ext(name) != "" {
		return name
	}
	ext := string(f)
	if f == FormatTable {
		ext = "txt"
	}
	if f == FormatCSL {
		ext = "yaml"
	}
	return name + "." + ext
}

// WriteFile renders r into path, creating or truncating it.
func WriteFile(path string, f Format, r Report) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(file, f, r, 0); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
