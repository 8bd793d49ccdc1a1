package util

import (
	"os"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizeWord returns the form used for every table lookup: NFC composed
// and lower-cased without language-specific rules.
func NormalizeWord(word string) string {
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Lower(language.Und).String(norm.NFC.String(word))
}

// FileExists reports whether filename names an existing regular file.
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
