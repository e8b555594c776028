// Package keymap extracts normalized key-binding pairs from textual binding
// reports and caches the result per scope.
package keymap

// Command is an opaque identifier for an invocable command.
type Command string

// SelfInsert is the sentinel for the trivial "insert the typed character"
// command. Pairs resolving to it carry no teachable semantics and are
// dropped during extraction.
const SelfInsert Command = "self-insert"

// Pair associates a human-readable key sequence with the command it runs.
type Pair struct {
	Key     string
	Command Command
}

// Resolver resolves binding tokens from a report into invocable commands.
// Tokens naming synthetic bindings ("Prefix Command", "Keyboard Macro") or
// anything else that is not invocable must report ok=false.
type Resolver interface {
	Resolve(token string) (cmd Command, ok bool)
}

// Scope selects which bindings a report covers.
type Scope int

const (
	// ScopeLocal draws from buffer-local bindings only.
	ScopeLocal Scope = iota
	// ScopeAll draws from all currently accessible bindings.
	ScopeAll
	// ScopeMap draws from one explicitly named map in isolation.
	ScopeMap
)

// String returns the scope name used in config and logs.
func (s Scope) String() string {
	switch s {
	case ScopeLocal:
		return "local"
	case ScopeAll:
		return "all"
	case ScopeMap:
		return "map"
	default:
		return "unknown"
	}
}

// Selector identifies which raw binding report to consume. Map is only set
// for ScopeMap. Selectors are compared structurally by the cache.
type Selector struct {
	Scope Scope
	Map   string
}

// LocalOnly reports whether extraction should stop at the global boundary.
func (s Selector) LocalOnly() bool {
	return s.Scope != ScopeAll
}

// Source supplies raw binding reports for the current context. Implemented
// by the host application; the report format is documented on Extract.
type Source interface {
	// ActiveReport returns the report for the currently active bindings.
	ActiveReport(localOnly bool) (string, error)
	// MapReport returns the report for one named map in isolation, with
	// no ambient maps mixed in.
	MapReport(name string) (string, error)
}
