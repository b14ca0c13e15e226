package stdsec

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"testing"
)

func TestPadPasswordEmpty(t *testing.T) {
	got, err := padPassword("")
	if err != nil {
		t.Fatal(err)
	}
	if got != passwordPad {
		t.Fatalf("pad(\"\") = %x, want %x", got, passwordPad)
	}
}

func TestPadPasswordShort(t *testing.T) {
	got, err := padPassword("abc")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got[:3], []byte("abc")) {
		t.Fatalf("first 3 bytes = %x, want 'abc'", got[:3])
	}
	if !bytes.Equal(got[3:], passwordPad[:29]) {
		t.Fatalf("padding tail mismatch: got %x, want %x", got[3:], passwordPad[:29])
	}
}

func TestPadPasswordLongTruncates(t *testing.T) {
	long := bytes.Repeat([]byte("x"), 40)
	got, err := padPassword(string(long))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got[:], long[:32]) {
		t.Fatalf("pad(long) = %x, want first 32 bytes of input", got)
	}
}

func TestPadPasswordRejectsNonLatin1(t *testing.T) {
	if _, err := padPassword("café中"); err == nil {
		t.Fatal("expected an error for a password outside the raw single-byte encoding")
	}
}

// MD5 of the padded empty password must be a fixed, platform-independent
// value.
func TestMD5OfPaddingConstant(t *testing.T) {
	sum := md5.Sum(passwordPad[:])
	got := hex.EncodeToString(sum[:])
	want := "512147b99e71e575780779a1b6451448"
	if got != want {
		t.Fatalf("MD5(passwordPad) = %s, want %s", got, want)
	}
}
