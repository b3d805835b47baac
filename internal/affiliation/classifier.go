// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package affiliation classifies free-text author affiliations as academic or
// not, and pulls email addresses out of them.
//
// The classification is a keyword heuristic. It errs toward labelling text
// non-academic: unknown or empty affiliations are never academic, so no
// possible company author is lost. False positives and negatives are
// expected ("Massachusetts Institute of Technology spin-off" matches
// "institute of"; "Pfizer Laboratories" matches "lab").
package affiliation

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"
)

// DefaultKeywords are the lowercase substrings that mark an affiliation as
// academic.
var DefaultKeywords = []string{
	"university",
	"college",
	"school of",
	"institute of",
	"academic",
	"academia",
	"faculty of",
	"lab",
}

// eduMarker matches academic email domains and web hosts.
const eduMarker = ".edu"

// DefaultEmailPattern matches a generic local@domain.tld address.
const DefaultEmailPattern = `(?i)\b[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}\b`

// Classifier holds an immutable keyword set and email pattern. It is safe
// for concurrent use.
type Classifier struct {
	keywords []string
	email    *regexp.Regexp
}

// New builds a Classifier from keywords and an email regular expression.
// Keywords are lowercased and trimmed; blank keywords are dropped.
func New(keywords []string, emailPattern string) (*Classifier, error) {
	re, err := regexp.Compile(emailPattern)
	if err != nil {
		return nil, fmt.Errorf("compiling email pattern: %w", err)
	}
	kws := normalizeKeywords(keywords)
	if len(kws) == 0 {
		return nil, fmt.Errorf("no academic keywords configured")
	}
	return &Classifier{keywords: kws, email: re}, nil
}

// Default returns a Classifier using DefaultKeywords and DefaultEmailPattern.
func Default() *Classifier {
	return &Classifier{
		keywords: normalizeKeywords(DefaultKeywords),
		email:    regexp.MustCompile(DefaultEmailPattern),
	}
}

// Keywords returns a copy of the configured keywords.
func (c *Classifier) Keywords() []string {
	out := make([]string, len(c.keywords))
	copy(out, c.keywords)
	return out
}

// IsAcademic reports whether text names an academic institution. Empty
// text is not academic.
func (c *Classifier) IsAcademic(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return strings.Contains(lower, eduMarker)
}

// ExtractEmail returns the first email address in text, or "" if there is
// none. Later addresses in the same text are ignored.
func (c *Classifier) ExtractEmail(text string) string {
	if text == "" {
		return ""
	}
	return c.email.FindString(text)
}

func normalizeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	var out []string
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}

// keywordFile is the on-disk form of a keyword override:
//
//	keywords:
//	  - university
//	  - hospital
type keywordFile struct {
	Keywords []string `yaml:"keywords"`
}

// LoadKeywords reads a keyword override file.
func LoadKeywords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keywords file: %w", err)
	}
	var kf keywordFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("parsing keywords file %s: %w", path, err)
	}
	kws := normalizeKeywords(kf.Keywords)
	if len(kws) == 0 {
		return nil, fmt.Errorf("keywords file %s lists no keywords", path)
	}
	return kws, nil
}

// FromFile returns the default classifier when path is empty, otherwise a
// classifier using the keywords in path.
func FromFile(path string) (*Classifier, error) {
	if path == "" {
		return Default(), nil
	}
	kws, err := LoadKeywords(path)
	if err != nil {
		return nil, err
	}
	return New(kws, DefaultEmailPattern)
}
