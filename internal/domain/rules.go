package domain

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MinTextLength is the minimum length, in characters, of a destination or a
// title once surrounding whitespace is removed.
const MinTextLength = 4

// ValidateText enforces MinTextLength on a named field.
func ValidateText(field, value string) error {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < MinTextLength {
		return fmt.Errorf("%w: %s must be at least %d characters", ErrValidation, field, MinTextLength)
	}
	return nil
}

// NormalizeEmail trims and lower-cases an address so that two spellings of
// the same mailbox compare equal.
func NormalizeEmail(email string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(email))
}

// ValidateEmail rejects anything that is not a bare addr-spec
// ("name@example.com"); display names are not accepted.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: %q is not a valid email", ErrValidation, email)
	}
	return nil
}

// ValidateURL accepts absolute http and https URLs only.
func ValidateURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q is not a valid http(s) url", ErrValidation, raw)
	}
	return nil
}

// CheckDistinctEmails requires the owner address and every invitee address to
// be pairwise distinct after normalization. An invitee equal to the owner, or
// repeated among invitees, yields ErrDuplicateEmail.
func CheckDistinctEmails(owner string, invitees []string) error {
	seen := make(map[string]struct{}, len(invitees)+1)
	seen[NormalizeEmail(owner)] = struct{}{}
	for _, e := range invitees {
		n := NormalizeEmail(e)
		if _, dup := seen[n]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateEmail, n)
		}
		seen[n] = struct{}{}
	}
	return nil
}
