package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func init() {
	Cost = bcrypt.MinCost
}

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("hash must not equal the plain text")
	}
	if !Verify(hash, "correct horse") {
		t.Error("matching password should verify")
	}
	if Verify(hash, "wrong horse") {
		t.Error("wrong password must not verify")
	}
}

func TestHash_TooShort(t *testing.T) {
	if _, err := Hash("short"); err != ErrTooShort {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
}
