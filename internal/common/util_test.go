package common

import (
	"testing"
)

func TestMakeRandDigitString_LengthAndCharset(t *testing.T) {
	const n = 6
	s, err := MakeRandDigitString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != n {
		t.Fatalf("expected length %d, got %d", n, len(s))
	}
	for i, c := range s {
		if c < '0' || c > '9' {
			t.Fatalf("expected digit at %d, got %q", i, c)
		}
	}
}

func TestMakeRandDigitString_ZeroSize(t *testing.T) {
	s, err := MakeRandDigitString(0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilIsNoop(t *testing.T) {
	WipeByteArray(nil)
}
