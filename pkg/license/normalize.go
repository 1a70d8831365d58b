package license

import (
	"regexp"
	"sort"
	"strings"
)

// separatorRE splits multi-valued declarations like "MIT OR Apache-2.0",
// "MIT/X11" or "BSD, GPL-2.0" into candidate substrings.
var separatorRE = regexp.MustCompile(`(?i)\s+(?:or|and)\s+|[,;/]`)

// fillerWords are dropped during the punctuation-stripped match so that
// "The MIT License" and "MIT" compare equal.
var fillerWords = map[string]bool{
	"the":      true,
	"license":  true,
	"licence":  true,
	"software": true,
	"version":  true,
}

// strippedAliases maps punctuation-stripped alias keys to canonical ids.
// Built from the alias table over sorted keys so the derived table is
// deterministic when two surface forms collapse to the same stripped key.
var strippedAliases = buildStrippedAliases()

func buildStrippedAliases() map[string]string {
	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := make(map[string]string, len(keys))
	for _, k := range keys {
		s := stripKey(k)
		if s == "" {
			continue
		}
		if _, ok := m[s]; !ok {
			m[s] = aliases[k]
		}
	}
	return m
}

// stripKey reduces a license string to comparable tokens: lowercase,
// punctuation replaced by spaces, filler words dropped, version prefixes
// unwrapped ("v2" -> "2") and a trailing bare major version widened
// ("apache 2" -> "apache 2.0").
func stripKey(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '+':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	var out []string
	for _, tok := range strings.Fields(b.String()) {
		if fillerWords[tok] {
			continue
		}
		if len(tok) > 1 && tok[0] == 'v' && tok[1] >= '0' && tok[1] <= '9' {
			tok = tok[1:]
		}
		out = append(out, tok)
	}
	if n := len(out); n > 1 && isInteger(out[n-1]) {
		out[n-1] += ".0"
	}
	return strings.Join(out, " ")
}

func isInteger(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Normalize maps a single raw license string to a canonical identifier.
// Empty or whitespace-only input yields Unrecognized with an empty
// Original. The function is total and deterministic.
func Normalize(raw string) Normalized {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Normalized{ID: Unrecognized}
	}
	if id, ok := aliases[strings.ToLower(trimmed)]; ok {
		return Normalized{ID: id, Original: trimmed}
	}
	if id, ok := strippedAliases[stripKey(trimmed)]; ok {
		return Normalized{ID: id, Original: trimmed}
	}
	return Normalized{ID: Unrecognized, Original: trimmed}
}

// NormalizeAll normalizes a possibly multi-valued declaration.
//
// The whole string is tried first so that declarations containing internal
// punctuation ("Apache License, Version 2.0") are not torn apart. Only when
// the whole string is unrecognized is it split on separator tokens
// (OR, AND, "/", ",", ";") and each candidate normalized independently.
// Duplicate results are discarded; the result is never empty.
func NormalizeAll(raw string) []Normalized {
	whole := Normalize(raw)
	if whole.Recognized() {
		return []Normalized{whole}
	}

	cleaned := strings.NewReplacer("(", " ", ")", " ").Replace(raw)
	parts := separatorRE.Split(cleaned, -1)

	var out []Normalized
	seen := make(map[string]bool)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n := Normalize(p)
		// Recognized parts dedupe by id; unrecognized ones by their
		// original text so distinct unknown claims all survive.
		key := n.ID
		if !n.Recognized() {
			key = "\x00" + n.Original
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}

	if len(out) == 0 {
		return []Normalized{whole}
	}
	return out
}
