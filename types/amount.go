package types

import "math/big"

// Amount is a non-negative ledger quantity (balance or representative
// weight). Raw balances routinely exceed the range of int64, so Amount
// wraps math/big.Int rather than a fixed-width integer.
type Amount struct {
	v *big.Int
}

// ZeroAmount is the additive identity.
func ZeroAmount() Amount {
	return Amount{v: new(big.Int)}
}

// NewAmount builds an Amount from a non-negative int64.
func NewAmount(n int64) Amount {
	return Amount{v: big.NewInt(n)}
}

// NewAmountFromBigInt wraps an existing big.Int, copying it so the
// caller's pointer cannot mutate internal state afterward.
func NewAmountFromBigInt(n *big.Int) Amount {
	if n == nil {
		return ZeroAmount()
	}
	return Amount{v: new(big.Int).Set(n)}
}

func (a Amount) bigOrZero() *big.Int {
	if a.v == nil {
		return new(big.Int)
	}
	return a.v
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{v: new(big.Int).Add(a.bigOrZero(), b.bigOrZero())}
}

// Cmp compares a to b: -1, 0, or 1.
func (a Amount) Cmp(b Amount) int {
	return a.bigOrZero().Cmp(b.bigOrZero())
}

// GreaterOrEqual reports whether a >= b.
func (a Amount) GreaterOrEqual(b Amount) bool {
	return a.Cmp(b) >= 0
}

// IsZero reports whether a is zero.
func (a Amount) IsZero() bool {
	return a.bigOrZero().Sign() == 0
}

// String renders the decimal value.
func (a Amount) String() string {
	return a.bigOrZero().String()
}

// BigInt returns a copy of the underlying value. Callers must not assume
// it aliases internal state.
func (a Amount) BigInt() *big.Int {
	return new(big.Int).Set(a.bigOrZero())
}
