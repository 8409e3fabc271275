package types

import "testing"

func TestAmountAddAndCmp(t *testing.T) {
	a := NewAmount(10)
	b := NewAmount(5)
	sum := a.Add(b)
	if sum.Cmp(NewAmount(15)) != 0 {
		t.Fatalf("expected 15, got %s", sum)
	}
	if !sum.GreaterOrEqual(a) {
		t.Fatal("sum should be >= a")
	}
}

func TestZeroAmountIsZero(t *testing.T) {
	if !ZeroAmount().IsZero() {
		t.Fatal("ZeroAmount must be zero")
	}
	if NewAmount(1).IsZero() {
		t.Fatal("non-zero amount reported zero")
	}
}

func TestAmountBigIntIsACopy(t *testing.T) {
	a := NewAmount(3)
	b := a.BigInt()
	b.SetInt64(99)
	if a.Cmp(NewAmount(3)) != 0 {
		t.Fatal("mutating returned BigInt must not affect Amount")
	}
}
