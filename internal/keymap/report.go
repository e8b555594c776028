package keymap

import "strings"

// Row is one key/token line in a binding report.
type Row struct {
	Key   string
	Token string
}

// Section is a labelled group of rows in a binding report. The label for
// the global section must be GlobalLabel for the local/global boundary to
// be recognised by Extract.
type Section struct {
	Label string
	Rows  []Row
}

// BuildReport renders sections into the textual report format consumed by
// Extract. Hosts with structured binding access use this to serve as a
// Source without hand-writing column alignment.
func BuildReport(sections []Section) string {
	var b strings.Builder

	for _, sec := range sections {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		if sec.Label != "" {
			b.WriteString(sec.Label)
			b.WriteString("\n")
		}
		b.WriteString(formatRow("key", "binding"))
		b.WriteString("\n")
		b.WriteString(formatRow("---", "-------"))
		b.WriteString("\n")

		for _, row := range sec.Rows {
			b.WriteString(formatRow(row.Key, row.Token))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// formatRow pads the key out to the binding column. Keys too long for the
// column fall back to a two-space gap, which Extract accepts as the loose
// row shape.
func formatRow(key, token string) string {
	if len(key) < bindingColumn {
		return key + strings.Repeat(" ", bindingColumn-len(key)) + token
	}
	return key + "  " + token
}
