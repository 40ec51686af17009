package qrcode

import (
	"bytes"
	"testing"
)

func TestMemberCard_PNG(t *testing.T) {
	png, err := MemberCard("DEVS-2026-0001", 0)
	if err != nil {
		t.Fatalf("MemberCard failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output should be a PNG image")
	}
}
