// SPDX-License-Identifier: GPL-3.0-only

package crypto

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	crypto := NewCrypto()
	password := "testpassword123"

	hash, err := crypto.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == "" {
		t.Error("Hash should not be empty")
	}

	hash2, err := crypto.HashPassword(password)
	if err != nil {
		t.Fatalf("Second HashPassword failed: %v", err)
	}

	if hash == hash2 {
		t.Error("Two hashes of same password should be different (due to salt)")
	}
}

func TestVerifyPassword(t *testing.T) {
	crypto := NewCrypto()
	password := "testpassword123"
	wrongPassword := "wrongpassword"

	hash, err := crypto.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	err = crypto.VerifyPassword(password, hash)
	if err != nil {
		t.Errorf("VerifyPassword failed for correct password: %v", err)
	}

	err = crypto.VerifyPassword(wrongPassword, hash)
	if err == nil {
		t.Error("VerifyPassword should fail for wrong password")
	}

	err = crypto.VerifyPassword(password, "invalid-hash")
	if err == nil {
		t.Error("VerifyPassword should fail for invalid hash")
	}
}

func TestGenerateRandomString(t *testing.T) {
	id, err := GenerateRandomString("usr_", 16, "hex")
	if err != nil {
		t.Fatalf("GenerateRandomString failed: %v", err)
	}

	if !strings.HasPrefix(id, "usr_") {
		t.Errorf("Expected usr_ prefix, got %s", id)
	}

	if len(id) != len("usr_")+32 {
		t.Errorf("Expected 16 hex-encoded bytes after prefix, got %s", id)
	}

	id2, err := GenerateRandomString("usr_", 16, "hex")
	if err != nil {
		t.Fatalf("Second GenerateRandomString failed: %v", err)
	}

	if id == id2 {
		t.Error("Expected different identifiers on successive calls")
	}

	if _, err := GenerateRandomString("", 16, "rot13"); err == nil {
		t.Error("GenerateRandomString should fail for unsupported encoding")
	}
}
