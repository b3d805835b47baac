// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

var esearchCmd = &cobra.Command{
	Use:   "esearch <query...>",
	Short: "Run an esearch query and print the matching IDs",
	Long: `esearch runs the query against the given Entrez database and prints the
total hit count, the query as PubMed translated it, and one ID per line.
Use it to check a query before fetching records.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _ := cmd.Flags().GetString("db")
		retmax, _ := cmd.Flags().GetInt("retmax")
		sort, _ := cmd.Flags().GetString("sort")

		res, err := newEntrezClient().Search(cmd.Context(), db, types.SearchOptions{
			Term:   strings.Join(args, " "),
			RetMax: retmax,
			Sort:   sort,
		})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Count: %d\n", res.Count)
		if res.QueryTranslation != "" {
			fmt.Fprintf(w, "Translation: %s\n", res.QueryTranslation)
		}
		for _, id := range res.IDs {
			fmt.Fprintln(w, id)
		}
		return nil
	},
}

func init() {
	esearchCmd.Flags().String("db", "pubmed", "Entrez database")
	esearchCmd.Flags().Int("retmax", 20, "maximum number of IDs to return (capped at 10000)")
	esearchCmd.Flags().String("sort", "", "sort order, e.g. relevance or pub_date")
	rootCmd.AddCommand(esearchCmd)
}
