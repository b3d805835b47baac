// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

const defaultWidth = 160

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Align(lipgloss.Center)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Faint(true)
)

// TerminalWidth returns the width of f when it is a terminal, or a
// default wide enough for a file or pipe.
func TerminalWidth(f *os.File) int {
	if f != nil && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}

// FormatTableTo writes articles as a bordered table followed by a count.
// Cells wrap to fit width.
func FormatTableTo(w io.Writer, articles []types.ArticleSummary, width int) {
	if len(articles) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}
	if width <= 0 {
		width = defaultWidth
	}

	rows := make([][]string, 0, len(articles))
	for _, a := range articles {
		rows = append(rows, Row(a))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(Columns...).
		Rows(rows...).
		Width(width).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w, t.String())
	fmt.Fprintf(w, "\n%d article(s) with non-academic authors\n", len(articles))
}
