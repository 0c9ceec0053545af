// Package output renders command results for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"openkey/internal/enrichment"
	"openkey/internal/model"

	"github.com/olekukonko/tablewriter"
)

// Results writes ranked results as a table, best first
func Results(w io.Writer, results []model.SearchResult) error {
	table := tablewriter.NewWriter(w)
	table.Header("#", "ID", "Project", "Developer", "Price (AED)", "Handover", "Score", "Why")

	for i, r := range results {
		if err := table.Append(
			strconv.Itoa(i+1),
			r.ID,
			r.Name,
			r.Developer,
			Thousands(r.PriceAED),
			r.HandoverMonth,
			strconv.Itoa(r.Score),
			r.Rationale,
		); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}
	return table.Render()
}

// Summary writes an enrichment summary as a two-column table
func Summary(w io.Writer, s *enrichment.Summary) error {
	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value")

	rows := [][2]string{
		{"Total projects", strconv.Itoa(s.Total)},
		{"Enriched", strconv.Itoa(s.Enriched)},
		{"Skipped (already enriched)", strconv.Itoa(s.Skipped)},
		{"Errors", strconv.Itoa(s.Errors)},
		{"API calls", strconv.Itoa(s.APICalls)},
		{"Estimated cost", fmt.Sprintf("$%.2f", s.EstimatedCostUSD)},
	}
	for _, row := range rows {
		if err := table.Append(row[0], row[1]); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}
	return table.Render()
}

// JSON writes v as indented JSON
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Thousands formats a whole amount with comma separators
func Thousands(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	neg := len(s) > 0 && s[0] == '-'
	if neg {
		s = s[1:]
	}

	out := make([]byte, 0, len(s)+len(s)/3)
	for i := 0; i < len(s); i++ {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
