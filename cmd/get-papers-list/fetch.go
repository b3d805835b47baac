// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-fetcher/internal/papers"
	"github.com/pdiddy/pubmed-fetcher/internal/pubmed"
	"github.com/pdiddy/pubmed-fetcher/internal/report"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

func init() {
	f := rootCmd.Flags()
	f.StringP("file", "f", "", "write results to this file instead of the console (.csv appended when no extension)")
	f.Int("retmax", 20, "maximum number of PubMed IDs to retrieve (capped at 10000)")
	f.String("format", "", "output format: table, csv, json, yaml, csl (default table, or csv with -f)")
	f.String("sort", "", "esearch sort order, e.g. relevance or pub_date")
	f.String("mindate", "", "earliest publication date (YYYY, YYYY/MM or YYYY/MM/DD)")
	f.String("maxdate", "", "latest publication date (YYYY, YYYY/MM or YYYY/MM/DD)")
	f.String("keywords-file", "", "YAML file with the academic keyword list")
}

func runFetch(cmd *cobra.Command, args []string) error {
	opts := searchOptionsFromFlags(cmd, args)
	if opts.Term == "" {
		return fmt.Errorf("provide a PubMed query, e.g. get-papers-list \"crispr AND cancer\"")
	}

	file, _ := cmd.Flags().GetString("file")
	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := resolveFormat(formatFlag, file)
	if err != nil {
		return err
	}

	classifierCfg := cfg.Classifier
	if kf, _ := cmd.Flags().GetString("keywords-file"); kf != "" {
		classifierCfg.KeywordsFile = kf
	}
	classifier, err := newClassifier(classifierCfg)
	if err != nil {
		return err
	}

	p := &papers.Pipeline{
		Source:    newEntrezClient(),
		Extractor: pubmed.NewExtractor(classifier),
		Log:       log,
	}
	rep, err := p.Run(cmd.Context(), opts)
	if err != nil {
		if errors.Is(err, papers.ErrEmptyTerm) {
			return fmt.Errorf("provide a PubMed query: %w", err)
		}
		return err
	}
	log.Debugw("run finished",
		"found", rep.Summary.Found,
		"fetched", rep.Summary.Fetched,
		"matched", rep.Summary.Matched,
		"translation", rep.Summary.QueryTranslation)

	if file == "" {
		return report.Write(os.Stdout, format, rep, report.TerminalWidth(os.Stdout))
	}
	path := report.OutputPath(file, format)
	if err := report.WriteFile(path, format, rep); err != nil {
		return err
	}
	log.Infow("results written", "path", path, "articles", len(rep.Articles))
	return nil
}

// searchOptionsFromFlags joins the positional arguments into the query and
// reads the esearch flags.
func searchOptionsFromFlags(cmd *cobra.Command, args []string) types.SearchOptions {
	retmax, _ := cmd.Flags().GetInt("retmax")
	sort, _ := cmd.Flags().GetString("sort")
	minDate, _ := cmd.Flags().GetString("mindate")
	maxDate, _ := cmd.Flags().GetString("maxdate")
	return types.SearchOptions{
		Term:    strings.TrimSpace(strings.Join(args, " ")),
		RetMax:  retmax,
		Sort:    sort,
		MinDate: minDate,
		MaxDate: maxDate,
	}
}

// resolveFormat picks the output format. Without --format, console output
// is a table and file output is CSV.
func resolveFormat(flag, file string) (report.Format, error) {
	if strings.TrimSpace(flag) == "" {
		if file != "" {
			return report.FormatCSV, nil
		}
		return report.FormatTable, nil
	}
	return report.ParseFormat(flag)
}
