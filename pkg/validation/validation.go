// Package validation holds the structural input rules shared by every registry.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	dErrors "landregistry/pkg/domain-errors"
)

const (
	// MaxStringLength bounds every free-text field.
	MaxStringLength = 1000
	// MinAge is the minimum age for registered users and inspectors.
	MinAge = 18
)

var (
	nationalIDPattern = regexp.MustCompile(`^[0-9]{12}$`)
	// Five letters, four digits, one letter.
	taxIDPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
)

// Text requires a non-empty value of at most MaxStringLength characters.
func Text(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return dErrors.New(dErrors.CodeValidation, field+" is required")
	}
	if utf8.RuneCountInString(value) > MaxStringLength {
		return dErrors.New(dErrors.CodeValidation, "string too long")
	}
	return nil
}

// OptionalText allows empty values but still enforces the length bound.
func OptionalText(value string) error {
	if utf8.RuneCountInString(value) > MaxStringLength {
		return dErrors.New(dErrors.CodeValidation, "string too long")
	}
	return nil
}

func Adult(age uint32) error {
	if age < MinAge {
		return dErrors.New(dErrors.CodeValidation, "must be at least 18 years old")
	}
	return nil
}

// NationalID requires exactly twelve digits.
func NationalID(v string) error {
	if !nationalIDPattern.MatchString(v) {
		return dErrors.New(dErrors.CodeValidation, "invalid national id")
	}
	return nil
}

// TaxID requires the ten character AAAAA9999A form.
func TaxID(v string) error {
	if !taxIDPattern.MatchString(v) {
		return dErrors.New(dErrors.CodeValidation, "invalid tax id")
	}
	return nil
}

// Email performs a minimal structural check: one '@', a non-empty local part
// and a dotted domain.
func Email(v string) error {
	if err := Text("email", v); err != nil {
		return err
	}
	local, domain, ok := strings.Cut(v, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return dErrors.New(dErrors.CodeValidation, "invalid email")
	}
	dot := strings.LastIndexByte(domain, '.')
	if dot <= 0 || dot == len(domain)-1 || strings.ContainsAny(v, " \t\r\n") {
		return dErrors.New(dErrors.CodeValidation, "invalid email")
	}
	return nil
}

// Price requires a strictly positive amount of native value units.
func Price(v int64) error {
	if v <= 0 {
		return dErrors.New(dErrors.CodeValidation, "price must be greater than zero")
	}
	return nil
}
