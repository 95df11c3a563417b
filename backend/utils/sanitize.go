package utils

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// MaxJournalLength caps a single journal entry. Oversized text is an error the
// caller surfaces, never a silent truncation.
const MaxJournalLength = 50000

// ErrTextTooLong is returned when a journal entry exceeds MaxJournalLength.
var ErrTextTooLong = fmt.Errorf("text exceeds maximum length of %d characters", MaxJournalLength)

// strict allows no tags and no attributes: journal entries are plain text.
var strict = bluemonday.StrictPolicy()

// SanitizeJournal strips all markup from journal text and trims it. Returns
// ErrTextTooLong when the cleaned text is over the limit.
func SanitizeJournal(text string) (string, error) {
	if text == "" {
		return "", nil
	}

	clean := html.UnescapeString(strict.Sanitize(text))
	if len(clean) > MaxJournalLength {
		return "", ErrTextTooLong
	}

	return strings.TrimSpace(clean), nil
}

// IsTooLong reports whether err is the length-limit violation.
func IsTooLong(err error) bool {
	return errors.Is(err, ErrTextTooLong)
}
