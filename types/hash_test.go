package types

import "testing"

func TestNewHashRejectsWrongLength(t *testing.T) {
	if _, err := NewHash([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for short input")
	}
}

func TestHashIsZero(t *testing.T) {
	if !ZeroHash.IsZero() {
		t.Fatal("ZeroHash must report IsZero")
	}
	h := MustNewHash(make([]byte, HashSize))
	if !h.IsZero() {
		t.Fatal("all-zero bytes must report IsZero")
	}
}

func TestHashLessIsLexicographic(t *testing.T) {
	a := MustNewHash(append([]byte{0x01}, make([]byte, HashSize-1)...))
	b := MustNewHash(append([]byte{0x02}, make([]byte, HashSize-1)...))
	if !a.Less(b) {
		t.Fatal("expected a < b")
	}
	if b.Less(a) {
		t.Fatal("expected b not less than a")
	}
	if a.Less(a) {
		t.Fatal("a must not be less than itself")
	}
}
