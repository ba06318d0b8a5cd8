// Package services implements the business workflows: doctor registration
// and login, patient registration, access-key allocation and the case
// creation pipeline. Services depend on narrow store interfaces so the
// database can be swapped out in tests.
package services

import (
	"errors"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// isNotFound reports whether err is a missing-record error from the store.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicate reports whether err is a unique-index violation. The index is
// the authority for uniqueness; this is how a lost race surfaces.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// titleCase trims the string and upper-cases the first letter of each word,
// matching how the registration endpoints normalize names.
func titleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	startOfWord := true
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			startOfWord = true
			b.WriteRune(r)
		case startOfWord:
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
