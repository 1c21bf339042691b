package domain

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Patterns shared by the entity validators
var (
	// loginPattern allows letters, digits, dot, underscore and hyphen
	loginPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{3,64}$`)
	// currencyPattern matches ISO 4217 alphabetic codes such as EUR
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// validEmail accepts a bare address with a dotted domain. Display-name forms
// like "Ann <ann@example.com>" are rejected.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email && strings.Contains(email[strings.LastIndex(email, "@"):], ".")
}

// validText checks a required title of at most max runes.
func validText(s string, max int) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(s) > max {
		return ErrTitleTooLong
	}
	return nil
}

// validName is validText for names.
func validName(s string, max int) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(s) > max {
		return ErrNameTooLong
	}
	return nil
}
