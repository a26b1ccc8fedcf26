package domain

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// linkPrefix is prepended to the year when a batch link is derived from a year.
	linkPrefix = "hsc-"

	// fallbackLinkPrefix starts generated links for names without letters or digits.
	fallbackLinkPrefix = "batch-"

	// numberedLinkAttempts is how many "-2", "-3", ... suffixes LinkCandidate
	// hands out before it switches to random short-id suffixes.
	numberedLinkAttempts = 20
)

// Slugify lowercases s, strips diacritics, and collapses every run of
// characters that are not letters or digits into a single hyphen.
// Leading and trailing hyphens are trimmed. The result may be empty.
//
//	"Rocky  Mountains!" → "rocky-mountains"
//	"Ciência A"         → "ciencia-a"
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// DeriveLink builds the external lookup key for a new batch.
// A non-empty year wins ("2024" → "hsc-2024"); otherwise the name is slugged.
// When neither input contains a letter or digit, a generated "batch-<id>"
// link is returned, so the result is never empty.
func DeriveLink(name, year string) string {
	if y := strings.TrimSpace(year); y != "" {
		if slug := Slugify(y); slug != "" {
			return Slugify(linkPrefix + y)
		}
	}
	if slug := Slugify(name); slug != "" {
		return slug
	}
	return fallbackLinkPrefix + shortID()
}

// LinkCandidate returns the attempt-th link to try for base, counting from 1.
// The first attempt is base itself, then "base-2" up to "base-20", after
// which a random short id is appended instead.
//
//	LinkCandidate("hsc-2024", 1)  → "hsc-2024"
//	LinkCandidate("hsc-2024", 2)  → "hsc-2024-2"
//	LinkCandidate("hsc-2024", 21) → "hsc-2024-3f9c1a2b"
func LinkCandidate(base string, attempt int) string {
	switch {
	case attempt <= 1:
		return base
	case attempt <= numberedLinkAttempts:
		return base + "-" + strconv.Itoa(attempt)
	default:
		return base + "-" + shortID()
	}
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
