// SPDX-License-Identifier: GPL-3.0-only

package passwordcheck

import "testing"

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("Readerpass123!"); err != nil {
		t.Errorf("Expected valid password to pass, got: %v", err)
	}

	if err := ValidatePassword("Short1"); err == nil {
		t.Error("Expected too-short password to fail")
	}

	if err := ValidatePassword("alllowercase123"); err == nil {
		t.Error("Expected password without uppercase to fail")
	}

	if err := ValidatePassword("ALLUPPERCASE123"); err == nil {
		t.Error("Expected password without lowercase to fail")
	}

	if err := ValidatePassword("NoDigitsHere!"); err == nil {
		t.Error("Expected password without digits to fail")
	}

	if err := ValidatePassword("NoSpecialChar1"); err == nil {
		t.Error("Expected password without special characters to fail")
	}
}
