// Package cleaner normalizes paragraph text extracted from specification
// documents while preserving technical tokens such as section numbers
// ("5.5.1.2") and abbreviations ("NSSAI", "5G").
package cleaner

import (
	"regexp"
	"strings"
	"unicode"
)

// dottedNumber matches version and section numbers like "1.2" or "5.5.1.2".
var dottedNumber = regexp.MustCompile(`\b\d+\.\d+(?:\.\d+)*\b`)

var (
	punctBeforeSpace = regexp.MustCompile(`([.,!?:])\s`)
	punctAtEnd       = regexp.MustCompile(`([.,!?:])$`)
)

// sentinel temporarily replaces dots inside numeric tokens so the
// punctuation pass cannot strip them. NUL never survives document text
// extraction, so collisions with real input do not occur in practice.
const sentinel = "\x00"

var spaceNormalizer = strings.NewReplacer("\u00a0", " ", "\t", " ")

// Clean normalizes whitespace and strips a single trailing punctuation
// mark from each word, keeping dotted numeric tokens intact. Clean is
// idempotent for any input free of the internal sentinel byte.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = spaceNormalizer.Replace(text)

	// Protect dotted numbers before the punctuation pass.
	text = dottedNumber.ReplaceAllStringFunc(text, func(m string) string {
		return strings.ReplaceAll(m, ".", sentinel)
	})

	text = punctBeforeSpace.ReplaceAllString(text, " ")
	text = punctAtEnd.ReplaceAllString(text, "")

	text = strings.Join(strings.Fields(text), " ")

	return strings.ReplaceAll(text, sentinel, ".")
}

// CleanFold applies Clean and then lower-cases each word unless it looks
// like a technical token: contains a digit, more than one uppercase
// letter, or a non-alphanumeric rune (e.g. "5G", "NSSAI", "S-NSSAI(s)").
func CleanFold(text string) string {
	text = Clean(text)
	if text == "" {
		return ""
	}
	words := strings.Fields(text)
	for i, w := range words {
		if !isTechnicalToken(w) {
			words[i] = strings.ToLower(w)
		}
	}
	return strings.Join(words, " ")
}

func isTechnicalToken(word string) bool {
	upper := 0
	for _, r := range word {
		switch {
		case unicode.IsDigit(r):
			return true
		case unicode.IsUpper(r):
			upper++
		case !unicode.IsLetter(r):
			return true
		}
	}
	return upper > 1
}
