// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-fetcher/internal/report"
	"github.com/pdiddy/pubmed-fetcher/internal/secrets"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		flag, file string
		want       report.Format
		wantErr    bool
	}{
		{"", "", report.FormatTable, false},
		{"", "out", report.FormatCSV, false},
		{"json", "", report.FormatJSON, false},
		{"yaml", "out", report.FormatYAML, false},
		{"xml", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.flag+"/"+tt.file, func(t *testing.T) {
			got, err := resolveFormat(tt.flag, tt.file)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchOptionsFromFlags(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Int("retmax", 20, "")
	cmd.Flags().String("sort", "", "")
	cmd.Flags().String("mindate", "", "")
	cmd.Flags().String("maxdate", "", "")
	require.NoError(t, cmd.Flags().Parse([]string{"--retmax", "50", "--sort", "pub_date", "--mindate", "2020"}))

	opts := searchOptionsFromFlags(cmd, []string{" crispr", "AND", "cancer "})
	assert.Equal(t, "crispr AND cancer", opts.Term)
	assert.Equal(t, 50, opts.RetMax)
	assert.Equal(t, "pub_date", opts.Sort)
	assert.Equal(t, "2020", opts.MinDate)
	assert.Empty(t, opts.MaxDate)
}

func TestDecodeConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, secrets.KeyAPIKey), []byte("from-secrets\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, secrets.KeyEmail), []byte("secret@example.com"), 0o644))

	v := viper.New()
	setDefaults(v)
	v.Set("entrez.email", "configured@example.com")
	v.Set("classifier.keywords_file", "kw.yaml")

	c, err := decodeConfig(v, true, dir)
	require.NoError(t, err)

	assert.Equal(t, "from-secrets", c.Entrez.APIKey)
	assert.Equal(t, "configured@example.com", c.Entrez.Email, "config wins over secrets")
	assert.Equal(t, defaultTool, c.Entrez.Tool)
	assert.Equal(t, 30*time.Second, c.Entrez.Timeout)
	assert.Equal(t, 5, c.Entrez.MaxRetries)
	assert.Equal(t, "kw.yaml", c.Classifier.KeywordsFile)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestNewClassifier(t *testing.T) {
	c, err := newClassifier(cfg.Classifier)
	require.NoError(t, err)
	assert.True(t, c.IsAcademic("Stanford University"))

	path := filepath.Join(t.TempDir(), "kw.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keywords:\n  - hospital\n"), 0o644))
	c, err = newClassifier(cfgWithKeywords(path).Classifier)
	require.NoError(t, err)
	assert.True(t, c.IsAcademic("Mayo Clinic Hospital"))
	assert.False(t, c.IsAcademic("Stanford University"))

	_, err = newClassifier(cfgWithKeywords(filepath.Join(t.TempDir(), "missing.yaml")).Classifier)
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "get-papers-list dev\n", buf.String())
}

const e2eSearchXML = `<eSearchResult><Count>2</Count><IdList><Id>111</Id><Id>222</Id></IdList>` +
	`<QueryTranslation>kras[All Fields]</QueryTranslation></eSearchResult>`

const e2eFetchXML = `<PubmedArticleSet>
<PubmedArticle><MedlineCitation><PMID>111</PMID><Article>
  <Journal><JournalIssue><PubDate><Year>2024</Year><Month>Mar</Month></PubDate></JournalIssue></Journal>
  <ArticleTitle>KRAS inhibitors</ArticleTitle>
  <AuthorList>
    <Author><LastName>Smith</LastName><ForeName>John</ForeName>
      <AffiliationInfo><Affiliation>Pfizer Inc, Groton, CT. john@pfizer.com</Affiliation></AffiliationInfo></Author>
    <Author><LastName>Doe</LastName><ForeName>Jane</ForeName>
      <AffiliationInfo><Affiliation>Harvard University</Affiliation></AffiliationInfo></Author>
  </AuthorList>
</Article></MedlineCitation></PubmedArticle>
<PubmedArticle><MedlineCitation><PMID>222</PMID><Article>
  <ArticleTitle>Academic only</ArticleTitle>
  <AuthorList>
    <Author><LastName>Roe</LastName><ForeName>Rick</ForeName>
      <AffiliationInfo><Affiliation>University of Oxford</Affiliation></AffiliationInfo></Author>
  </AuthorList>
</Article></MedlineCitation></PubmedArticle>
</PubmedArticleSet>`

func TestRootCommandWritesCSV(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/esearch.fcgi"):
			fmt.Fprint(w, e2eSearchXML)
		case strings.HasSuffix(r.URL.Path, "/efetch.fcgi"):
			fmt.Fprint(w, e2eFetchXML)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(
		"entrez:\n  base_url: %s\n  requests_per_second: -1\nlog:\n  level: error\n", ts.URL)), 0o644))
	out := filepath.Join(dir, "results")

	rootCmd.SetArgs([]string{"--config", cfgPath, "--secrets-dir", filepath.Join(dir, "none"), "-f", out, "kras"})
	require.NoError(t, rootCmd.Execute())

	f, err := os.Open(out + ".csv")
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, report.Columns, records[0])
	assert.Equal(t, []string{
		"111",
		"KRAS inhibitors",
		"Mar 2024",
		"John Smith",
		"Pfizer Inc, Groton, CT. john@pfizer.com",
		"john@pfizer.com",
	}, records[1])
}

func cfgWithKeywords(path string) types.Config {
	c := types.Config{}
	c.Classifier.KeywordsFile = path
	return c
}
