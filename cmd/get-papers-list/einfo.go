// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var einfoCmd = &cobra.Command{
	Use:   "einfo",
	Short: "Print Entrez database information",
	Long: `einfo calls the Entrez einfo utility and prints the raw XML. Without --db it
lists every Entrez database; with --db it describes that database's fields
and links.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _ := cmd.Flags().GetString("db")
		out, err := newEntrezClient().Info(cmd.Context(), db)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	einfoCmd.Flags().String("db", "", "database to describe (default: list all databases)")
	rootCmd.AddCommand(einfoCmd)
}
