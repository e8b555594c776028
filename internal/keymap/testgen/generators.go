// Package testgen provides rapid generators for binding report content.
package testgen

import (
	"strings"

	"pgregory.net/rapid"
)

// KeyOption transforms a Key generator.
type KeyOption func(*rapid.Generator[string]) *rapid.Generator[string]

// Key generates a human-readable key description.
//
// By default, generates a single base key such as "q", "TAB" or "C-x".
// Options are transformers that modify the generator.
//
// Examples:
//
//	Key()              // "C-x"
//	Key(WithChord)     // "C-x C-f" (two-step sequence)
func Key(opts ...KeyOption) *rapid.Generator[string] {
	gen := rapid.Custom(func(t *rapid.T) string {
		base := rapid.SampledFrom([]string{
			"a", "b", "g", "j", "k", "n", "p", "q", "x",
			"TAB", "RET", "SPC", "DEL", "ESC",
		}).Draw(t, "base")

		switch rapid.IntRange(0, 2).Draw(t, "modifier") {
		case 1:
			return "C-" + base
		case 2:
			return "M-" + base
		default:
			return base
		}
	})

	for _, opt := range opts {
		gen = opt(gen)
	}
	return gen
}

// WithChord extends the key into a two-step sequence like "C-x C-f".
func WithChord(gen *rapid.Generator[string]) *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		first := gen.Draw(t, "first")
		second := gen.Draw(t, "second")
		return first + " " + second
	})
}

// PlaceholderKey generates a non-typeable pseudo-key row key such as
// "<menu-bar>" or "<f10>". Extraction must drop rows with these keys.
func PlaceholderKey() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		name := rapid.StringMatching(`[a-z][a-z0-9-]{1,12}`).Draw(t, "name")
		return "<" + name + ">"
	})
}

// Token generates a hyphenated command token like "next-line" or
// "find-file-other-window".
func Token() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		words := rapid.SliceOfN(rapid.StringMatching(`[a-z]{2,8}`), 1, 4).Draw(t, "words")
		return strings.Join(words, "-")
	})
}

// SyntheticToken generates a token naming a non-invocable synthetic
// binding, kept as a row in reports but never resolvable to a command.
func SyntheticToken() *rapid.Generator[string] {
	return rapid.SampledFrom([]string{"Prefix Command", "Keyboard Macro"})
}
