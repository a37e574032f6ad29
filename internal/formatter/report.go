// Package formatter renders reports and normalized records as aligned text.
package formatter

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"apinorm/internal/models"
	"apinorm/pkg/textutil"
)

const valuePreviewWidth = 48

// RenderReport renders an error report as an aligned two-column block
// followed by the recommendation list.
func RenderReport(report models.ErrorReport) string {
	rows := [][2]string{
		{"Timestamp", report.Timestamp.Format(time.RFC3339)},
		{"Status", report.Status},
		{"Error count", strconv.Itoa(report.ErrorCount)},
		{"Max errors", strconv.Itoa(report.MaxErrors)},
	}

	var sb strings.Builder

	sb.WriteString("Error Report\n")
	sb.WriteString(renderRows(rows))

	if len(report.Recommendations) > 0 {
		sb.WriteString("Recommendations:\n")

		for _, rec := range report.Recommendations {
			sb.WriteString("  - ")
			sb.WriteString(rec)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// RenderResponse renders a normalized record's canonical fields with
// bounded value previews, followed by any validation issues. Diagnostic
// keys are summarized, never dumped.
func RenderResponse(resp models.NormalizedResponse) string {
	var fields []string

	for key := range resp {
		if key == models.KeyOriginal || key == models.KeyValidation {
			continue
		}

		fields = append(fields, key)
	}

	sort.Strings(fields)

	rows := make([][2]string, 0, len(fields))
	for _, field := range fields {
		rows = append(rows, [2]string{field, textutil.Preview(resp[field], valuePreviewWidth)})
	}

	var sb strings.Builder

	sb.WriteString("Normalized Response\n")
	sb.WriteString(renderRows(rows))

	if issues := resp.Issues(); len(issues) > 0 {
		sb.WriteString("Issues:\n")

		for _, issue := range issues {
			sb.WriteString("  - ")
			sb.WriteString(issue)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// renderRows aligns label/value pairs on display width so wide runes in
// labels or values keep the columns straight.
func renderRows(rows [][2]string) string {
	labelWidth := 0

	for _, row := range rows {
		if w := runewidth.StringWidth(row[0]); w > labelWidth {
			labelWidth = w
		}
	}

	var sb strings.Builder

	for _, row := range rows {
		sb.WriteString("  ")
		sb.WriteString(row[0])

		padding := labelWidth - runewidth.StringWidth(row[0])
		if padding > 0 {
			sb.WriteString(strings.Repeat(" ", padding))
		}

		sb.WriteString("  ")
		sb.WriteString(row[1])
		sb.WriteString("\n")
	}

	return sb.String()
}
