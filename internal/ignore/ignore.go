// Package ignore filters file paths through hierarchical .gitignore rules.
//
// The activity watcher treats filesystem events as user activity; events in
// ignored paths (build output, editor temp files, VCS internals) would reset
// the idle machine for changes no human made, so they are filtered out here.
// Matching uses go-git's glob-based gitignore implementation with parsed
// patterns cached per directory.
package ignore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// wellKnownDirs are directory names ignored without consulting any
// .gitignore file. Events under them are never user activity.
var wellKnownDirs = map[string]bool{
	".git":          true,
	".jj":           true,
	".hg":           true,
	".svn":          true,
	".vscode":       true,
	".idea":         true,
	"node_modules":  true,
	"__pycache__":   true,
	".pytest_cache": true,
	".cache":        true,
}

// Matcher checks paths against hierarchical .gitignore rules rooted at one
// directory. Safe for concurrent use.
type Matcher struct {
	root string

	mu       sync.Mutex
	patterns map[string][]gitignore.Pattern // dir -> parsed .gitignore patterns
	matchers map[string]gitignore.Matcher   // dir -> combined matcher root..dir
}

// NewMatcher creates a Matcher rooted at root. .gitignore files are read
// lazily, walking from root down to the matched path's parent.
func NewMatcher(root string) *Matcher {
	return &Matcher{
		root:     root,
		patterns: make(map[string][]gitignore.Pattern),
		matchers: make(map[string]gitignore.Matcher),
	}
}

// Match reports whether path should be ignored. isDir must be true when
// path refers to a directory so that directory-only patterns ("build/")
// apply correctly.
func (m *Matcher) Match(path string, isDir bool) bool {
	if isDir && wellKnownDirs[filepath.Base(path)] {
		return true
	}

	// The root itself is never ignored.
	if path == m.root {
		return false
	}

	rel, err := filepath.Rel(m.root, path)
	if err != nil {
		rel = path
	}

	components := splitComponents(rel)
	if len(components) == 0 {
		return false
	}

	return m.matcherFor(filepath.Dir(path)).Match(components, isDir)
}

// matcherFor returns a matcher combining all .gitignore patterns from the
// root down to dir, building and caching it on first use.
func (m *Matcher) matcherFor(dir string) gitignore.Matcher {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cached, ok := m.matchers[dir]; ok {
		return cached
	}

	all := m.dirPatternsLocked(m.root)

	rel, _ := filepath.Rel(m.root, dir)
	current := m.root
	for _, part := range splitComponents(rel) {
		current = filepath.Join(current, part)
		all = append(all, m.dirPatternsLocked(current)...)
	}

	matcher := gitignore.NewMatcher(all)
	m.matchers[dir] = matcher

	return matcher
}

// dirPatternsLocked returns the parsed patterns of dir's .gitignore file,
// reading and caching it on first use.
func (m *Matcher) dirPatternsLocked(dir string) []gitignore.Pattern {
	if cached, ok := m.patterns[dir]; ok {
		return cached
	}

	var domain []string
	if rel, _ := filepath.Rel(m.root, dir); rel != "" && rel != "." {
		domain = splitComponents(rel)
	}

	var patterns []gitignore.Pattern
	if content, err := os.ReadFile(filepath.Join(dir, ".gitignore")); err == nil {
		for _, line := range strings.Split(string(content), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			patterns = append(patterns, gitignore.ParsePattern(line, domain))
		}
	}

	m.patterns[dir] = patterns

	return patterns
}

// splitComponents splits a relative path into its parts.
func splitComponents(path string) []string {
	path = filepath.ToSlash(path)
	if path == "" || path == "." {
		return nil
	}
	return strings.Split(path, "/")
}
