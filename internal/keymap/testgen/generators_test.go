package testgen

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestKey_NeverEmpty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k := Key().Draw(rt, "key")
		if k == "" {
			rt.Error("generated empty key")
		}
		if strings.HasPrefix(k, "<") {
			rt.Errorf("plain key %q must not look like a placeholder", k)
		}
	})
}

func TestKey_WithChord(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k := Key(WithChord).Draw(rt, "key")
		parts := strings.Split(k, " ")
		if len(parts) != 2 {
			rt.Errorf("chord %q should have exactly two steps", k)
		}
		for _, p := range parts {
			if p == "" {
				rt.Errorf("chord %q has an empty step", k)
			}
		}
	})
}

func TestPlaceholderKey_Marker(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k := PlaceholderKey().Draw(rt, "key")
		if !strings.HasPrefix(k, "<") || !strings.HasSuffix(k, ">") {
			rt.Errorf("placeholder %q should be angle-bracketed", k)
		}
	})
}

func TestToken_NoSpaces(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tok := Token().Draw(rt, "token")
		if tok == "" {
			rt.Error("generated empty token")
		}
		if strings.ContainsAny(tok, " \t") {
			rt.Errorf("token %q must not contain whitespace", tok)
		}
	})
}
