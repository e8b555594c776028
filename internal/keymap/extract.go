package keymap

import (
	"regexp"
	"strings"

	"github.com/chatter/nudge/internal/logger"
)

// GlobalLabel is the scope label that separates buffer-local sections from
// the global section in a binding report.
const GlobalLabel = "Global Bindings:"

// bindingColumn is the fixed column at which aligned rows place the binding
// token. Shorter keys are padded out to this column with spaces.
const bindingColumn = 32

// placeholderMarker prefixes pseudo-key rows (menu entries, placeholders)
// that can never be typed.
const placeholderMarker = "<"

var (
	// headerRe matches the literal column-header line opening a section.
	headerRe = regexp.MustCompile(`^key\s+binding\s*$`)

	// separatorRe matches the dashed underline below a column header.
	separatorRe = regexp.MustCompile(`^-[-\s]*$`)

	// gapRowRe matches rows where a run of two or more spaces separates a
	// possibly multi-token key from the binding text.
	gapRowRe = regexp.MustCompile(`^(\S+(?: \S+)*?)  +(\S.*?) *$`)

	// bareRowRe matches rows with a single-token key and one space before
	// the binding token.
	bareRowRe = regexp.MustCompile(`^(\S+) +(\S.*?) *$`)
)

// Extractor parses textual binding reports into normalized Pair lists.
type Extractor struct {
	resolver Resolver
	log      *logger.Logger
}

// NewExtractor creates an Extractor resolving tokens through resolver.
func NewExtractor(resolver Resolver, log *logger.Logger) *Extractor {
	return &Extractor{resolver: resolver, log: log}
}

// Extract parses a binding report into pairs, preserving scan order.
//
// A report is a sequence of sections. Each section is introduced by a
// column-header line ("key  binding"), optionally preceded by a scope label
// line such as "Major Mode Bindings:", optionally followed by a dashed
// separator, then one row per binding. Everything before the first section
// is preamble and ignored. When localOnly is true, scanning stops at the
// section labelled with GlobalLabel; with no such label the whole report is
// treated as local.
//
// Rows whose key begins with the placeholder marker, rows whose token does
// not resolve to an invocable command, and rows bound to the self-insert
// command are dropped. Malformed rows are skipped individually. The first
// occurrence of a key sequence wins; later duplicates (typically global
// bindings shadowed by local ones) are dropped.
func (e *Extractor) Extract(report string, localOnly bool) []Pair {
	lines := nonBlankLines(report)

	var pairs []Pair
	seen := make(map[string]bool)
	started := false

	for idx, line := range lines {
		if headerRe.MatchString(line) {
			if sectionLabel(lines, idx) == GlobalLabel && localOnly {
				break
			}
			started = true
			continue
		}

		if !started {
			continue
		}

		// The line before a header is that section's label, not a row.
		// Labels are optional, so a line here that reads as a row keeps
		// its pair.
		if idx+1 < len(lines) && headerRe.MatchString(lines[idx+1]) && looksLikeLabel(line) {
			continue
		}

		if separatorRe.MatchString(line) {
			continue
		}

		key, token, ok := splitRow(line)
		if !ok {
			e.log.Debug("skipping malformed row", "line", line)
			continue
		}

		if strings.HasPrefix(key, placeholderMarker) {
			continue
		}

		cmd, ok := e.resolver.Resolve(token)
		if !ok || cmd == SelfInsert {
			continue
		}

		if seen[key] {
			continue
		}
		seen[key] = true

		pairs = append(pairs, Pair{Key: key, Command: cmd})
	}

	return pairs
}

// looksLikeLabel reports whether a line preceding a column header is a
// scope label rather than a binding row. Every label ends with ":";
// without the colon the line is a label only if it does not split as a
// row.
func looksLikeLabel(line string) bool {
	if strings.HasSuffix(strings.TrimSpace(line), ":") {
		return true
	}
	_, _, ok := splitRow(line)
	return !ok
}

// sectionLabel returns the trimmed scope label preceding the header at idx,
// or "" when the section has none.
func sectionLabel(lines []string, idx int) string {
	if idx == 0 {
		return ""
	}
	return strings.TrimSpace(lines[idx-1])
}

// splitRow splits a row into key and binding token. The aligned shape pads
// the key out to bindingColumn; the loose shapes separate key and token
// with a run of spaces.
func splitRow(line string) (key, token string, ok bool) {
	if len(line) > bindingColumn {
		head, tail := line[:bindingColumn], line[bindingColumn:]
		if strings.HasSuffix(head, " ") && !strings.HasPrefix(tail, " ") {
			if k := strings.TrimRight(head, " "); k != "" {
				return k, strings.TrimRight(tail, " "), true
			}
		}
	}

	if m := gapRowRe.FindStringSubmatch(line); m != nil {
		return m[1], m[2], true
	}

	if m := bareRowRe.FindStringSubmatch(line); m != nil {
		return m[1], m[2], true
	}

	return "", "", false
}

// nonBlankLines splits the report into lines, dropping blank ones so that
// label/header adjacency survives loose formatting.
func nonBlankLines(report string) []string {
	var lines []string
	for _, line := range strings.Split(report, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
