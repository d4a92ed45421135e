// SPDX-License-Identifier: GPL-3.0-only

package passwordcheck

import (
	"errors"
	"unicode"
)

// ValidatePassword enforces the account password policy: at least 8
// characters with a mix of upper case, lower case, digits and at least
// one special character.
func ValidatePassword(password string) error {
	if len([]rune(password)) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	if !hasUppercase(password) {
		return errors.New("password must contain at least one uppercase letter")
	}
	if !hasLowercase(password) {
		return errors.New("password must contain at least one lowercase letter")
	}
	if !hasDigit(password) {
		return errors.New("password must contain at least one digit")
	}
	if !hasSpecialChar(password) {
		return errors.New("password must contain at least one special character (e.g., !@#$%)")
	}
	return nil
}

func hasUppercase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func hasLowercase(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func hasSpecialChar(s string) bool {
	for _, r := range s {
		if unicode.IsSymbol(r) || unicode.IsPunct(r) {
			return true
		}
	}
	return false
}
