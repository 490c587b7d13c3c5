package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/evcraddock/taxrank/internal/report"
	"github.com/evcraddock/taxrank/internal/source"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printReport prints the invalid counts followed by the ranking table.
func printReport(w io.Writer, rep *report.Report) error {
	if _, err := fmt.Fprintf(w, "Number of Invalid Lot Sizes: %d\nNumber of Zero Tax Payments: %d\n\n",
		rep.Tally.InvalidLot, rep.Tally.ZeroTax); err != nil {
		return fmt.Errorf("writing counts: %w", err)
	}

	if len(rep.Entries) == 0 {
		_, err := fmt.Fprintf(w, "No parcels found for %s.\n", rep.TargetYear)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "#\tTAX/SQFT\tPAID\tLOT\tYEAR\tADDRESS"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "-\t--------\t----\t---\t----\t-------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, e := range rep.Entries {
		address := "-"
		if e.Address != nil && *e.Address != "" {
			address = truncate(*e.Address, 48)
		}
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s sqft\t%s\t%s\n",
			e.Rank, e.Ratio, formatDollars(e.TaxesPaid), formatThousands(e.LotSize), e.Year, address); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	_, err := fmt.Fprintf(w, "\nTotal: %d parcels for %s\n", len(rep.Entries), rep.TargetYear)
	return err
}

// printLoadInfo prints a summary of a stored snapshot.
func printLoadInfo(w io.Writer, path string, info *source.LoadInfo) error {
	_, err := fmt.Fprintf(w, "Loaded into %s\n  Load:       %s\n  Buildings:  %d\n  Taxes:      %d\n  Locations:  %d\n",
		path, info.ID, info.Buildings, info.Taxes, info.Locations)
	return err
}

// formatDollars formats an amount as dollars and cents with commas.
func formatDollars(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, cents, _ := strings.Cut(s, ".")
	return sign + "$" + addCommas(whole) + "." + cents
}

// formatThousands formats an integer with commas.
func formatThousands(n int64) string {
	if n < 0 {
		return "-" + addCommas(fmt.Sprintf("%d", -n))
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas groups a string of digits in threes.
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	return strings.Join(parts, ",")
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
