// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// efetch PubmedArticleSet XML structures. Only the fields the extractor
// reads are mapped. Optional leaf elements are *Text so that a missing
// element (nil) can be told apart from an empty one.

// ArticleSet is the root of an efetch response.
type ArticleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []PubmedArticle `xml:"PubmedArticle"`
}

// PubmedArticle is one article record.
type PubmedArticle struct {
	MedlineCitation MedlineCitation `xml:"MedlineCitation"`
}

// MedlineCitation carries the PMID and the article body.
type MedlineCitation struct {
	PMID    *Text   `xml:"PMID"`
	Article Article `xml:"Article"`
}

// Article holds title, journal issue, and authors.
type Article struct {
	Journal      Journal    `xml:"Journal"`
	ArticleTitle *Text      `xml:"ArticleTitle"`
	AuthorList   AuthorList `xml:"AuthorList"`
}

// Journal holds the issue that carries the publication date.
type Journal struct {
	JournalIssue JournalIssue `xml:"JournalIssue"`
}

// JournalIssue wraps PubDate.
type JournalIssue struct {
	PubDate *PubDate `xml:"PubDate"`
}

// PubDate is the journal publication date. Month is usually an
// abbreviation ("Jan") and is kept as text.
type PubDate struct {
	Year  *Text `xml:"Year"`
	Month *Text `xml:"Month"`
	Day   *Text `xml:"Day"`
}

// AuthorList is the ordered list of authors.
type AuthorList struct {
	Authors []Author `xml:"Author"`
}

// Author is one author entry.
type Author struct {
	LastName        *Text             `xml:"LastName"`
	ForeName        *Text             `xml:"ForeName"`
	AffiliationInfo []AffiliationInfo `xml:"AffiliationInfo"`
}

// AffiliationInfo wraps one affiliation string.
type AffiliationInfo struct {
	Affiliation *Text `xml:"Affiliation"`
}

// Affiliation returns the first affiliation text of the author, or "".
func (a Author) Affiliation() string {
	for _, info := range a.AffiliationInfo {
		if info.Affiliation != nil {
			return info.Affiliation.String()
		}
	}
	return ""
}

// Text is the content of a leaf element. PubMed allows inline markup
// (<i>, <sup>, <b>) inside titles and affiliations, so the raw inner XML
// is kept and flattened on read.
type Text struct {
	Inner string `xml:",innerxml"`
}

// NewText returns a Text holding s verbatim. Handy for building records
// in code.
func NewText(s string) *Text {
	return &Text{Inner: s}
}

// Present reports whether the element existed in the record.
func (t *Text) Present() bool {
	return t != nil
}

// String returns the element text with inline markup removed and
// entities decoded. CDATA sections are kept verbatim. A missing element
// yields "".
func (t *Text) String() string {
	if t == nil {
		return ""
	}
	if !strings.ContainsAny(t.Inner, "<&") {
		return t.Inner
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(unwrapCDATA(t.Inner)))
	if err != nil {
		return t.Inner
	}
	return doc.Text()
}

const (
	cdataOpen  = "<![CDATA["
	cdataClose = "]]>"
)

// unwrapCDATA replaces each CDATA section with its escaped content, which
// the HTML parser would otherwise read as a bogus comment. An unterminated
// section runs to the end of s.
func unwrapCDATA(s string) string {
	if !strings.Contains(s, cdataOpen) {
		return s
	}
	var b strings.Builder
	for {
		i := strings.Index(s, cdataOpen)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		s = s[i+len(cdataOpen):]
		j := strings.Index(s, cdataClose)
		if j < 0 {
			b.WriteString(html.EscapeString(s))
			return b.String()
		}
		b.WriteString(html.EscapeString(s[:j]))
		s = s[j+len(cdataClose):]
	}
}

// ParseArticleSet decodes an efetch PubmedArticleSet document.
func ParseArticleSet(r io.Reader) (ArticleSet, error) {
	var set ArticleSet
	dec := xml.NewDecoder(r)
	dec.Strict = false
	if err := dec.Decode(&set); err != nil {
		return ArticleSet{}, fmt.Errorf("parsing PubmedArticleSet: %w", err)
	}
	return set, nil
}
