// Package render draws the watchlist tables and the news block. It only
// consumes structured rows; all interactivity lives outside this module.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/komsit37/pmt/pkg/pmt/types"
)

// Options controls table output.
type Options struct {
	Color bool
	Width int // terminal width; 0 disables the side-by-side layout
}

// sideBySideMinWidth is the narrowest terminal that still fits two tables.
const sideBySideMinWidth = 100

// Watchlist renders the entries split roughly in half into two tables,
// side by side when the terminal is wide enough, stacked otherwise.
func Watchlist(w io.Writer, entries []types.Entry, results map[string]types.Result, opts Options) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "watchlist is empty")
		return
	}
	half := (len(entries) + 1) / 2
	left := renderHalf(entries[:half], results, opts)
	right := renderHalf(entries[half:], results, opts)

	if opts.Width >= sideBySideMinWidth && right != "" {
		writeSideBySide(w, left, right)
		return
	}
	fmt.Fprint(w, left)
	if right != "" {
		fmt.Fprint(w, right)
	}
}

func renderHalf(entries []types.Entry, results map[string]types.Result, opts Options) string {
	if len(entries) == 0 {
		return ""
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleColoredDark)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false
	tw.AppendHeader(table.Row{"NAME", "SYM", "PRICE", "CHG", "PEG"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignRight},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignRight},
	})

	for _, e := range entries {
		r := results[e.Name]
		price, chg, peg := "-", "-", FormatPEG(r.PEG)
		if r.Available() {
			price = FormatPrice(*r.Price, e.Symbol)
			chg = FormatChangeFor(r.ChangePct, e.Symbol)
			if opts.Color {
				if r.ChangePct > 0 {
					chg = text.Colors{text.FgGreen}.Sprint(chg)
				} else if r.ChangePct < 0 {
					chg = text.Colors{text.FgRed}.Sprint(chg)
				}
			}
		}
		tw.AppendRow(table.Row{e.Name, e.Symbol, price, chg, peg})
	}
	return tw.Render() + "\n"
}

// writeSideBySide joins two rendered blocks line by line, padding the left
// block to its widest visible line.
func writeSideBySide(w io.Writer, left, right string) {
	ll := strings.Split(strings.TrimRight(left, "\n"), "\n")
	rl := strings.Split(strings.TrimRight(right, "\n"), "\n")

	width := 0
	for _, l := range ll {
		if n := visibleWidth(l); n > width {
			width = n
		}
	}

	rows := len(ll)
	if len(rl) > rows {
		rows = len(rl)
	}
	for i := 0; i < rows; i++ {
		var l, r string
		if i < len(ll) {
			l = ll[i]
		}
		if i < len(rl) {
			r = rl[i]
		}
		pad := width - visibleWidth(l) + 2
		fmt.Fprintf(w, "%s%s%s\n", l, strings.Repeat(" ", pad), r)
	}
}

func visibleWidth(s string) int {
	return utf8.RuneCountInString(text.StripEscape(s))
}

// News renders the headline block with per-source labels.
func News(w io.Writer, items []types.NewsItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no headlines")
		return
	}
	for _, it := range items {
		label := "[" + it.Source + "]"
		if it.Published != "" {
			fmt.Fprintf(w, "%s %s (%s)\n  %s\n", text.Bold.Sprint(label), it.Title, it.Published, it.Link)
		} else {
			fmt.Fprintf(w, "%s %s\n  %s\n", text.Bold.Sprint(label), it.Title, it.Link)
		}
	}
}
