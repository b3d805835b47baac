// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var esummaryCmd = &cobra.Command{
	Use:   "esummary <id...>",
	Short: "Print document summaries for Entrez IDs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _ := cmd.Flags().GetString("db")
		out, err := newEntrezClient().Summary(cmd.Context(), db, args)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	esummaryCmd.Flags().String("db", "pubmed", "Entrez database")
	rootCmd.AddCommand(esummaryCmd)
}
