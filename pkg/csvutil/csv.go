// Package csvutil renders record lists to CSV for the export command.
//
// The rules are deliberately simple: fields containing commas, double quotes,
// or newlines are wrapped in double quotes with internal quotes doubled; nil
// values render as empty fields; an empty record list renders as the empty
// string with no header-only output.
package csvutil

import (
	"fmt"
	"sort"
	"strings"
)

// Render converts records to CSV text. When fields is nil the header is
// inferred from the first record's keys in sorted order.
func Render(records []map[string]any, fields []string) string {
	if len(records) == 0 {
		return ""
	}
	if fields == nil {
		for k := range records[0] {
			fields = append(fields, k)
		}
		sort.Strings(fields)
	}

	var b strings.Builder
	writeRow(&b, fields)
	for _, rec := range records {
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = format(rec[f])
		}
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escape(c))
	}
	b.WriteByte('\n')
}

func format(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func escape(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
