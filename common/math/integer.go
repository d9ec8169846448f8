// Package math provides checked unsigned integer arithmetic for ledger
// amount bookkeeping. Every balance mutation in the protocol goes through
// these helpers; overflow is a hard operation failure, never a wrap.
package math

import (
	"errors"
	gomath "math/bits"
)

// ErrOverflow is returned by ledger operations whose checked arithmetic
// would exceed the 64-bit amount range.
var ErrOverflow = errors.New("arithmetic overflow")

// SafeAdd returns x+y and checks for overflow.
func SafeAdd(x, y uint64) (uint64, bool) {
	sum, carry := gomath.Add64(x, y, 0)
	return sum, carry != 0
}

// SafeSub returns x-y and checks for underflow.
func SafeSub(x, y uint64) (uint64, bool) {
	diff, borrow := gomath.Sub64(x, y, 0)
	return diff, borrow != 0
}

// SafeMul returns x*y and checks for overflow.
func SafeMul(x, y uint64) (uint64, bool) {
	hi, lo := gomath.Mul64(x, y)
	return lo, hi != 0
}

// CheckedAdd is SafeAdd with the overflow flag folded into ErrOverflow.
func CheckedAdd(x, y uint64) (uint64, error) {
	sum, overflow := SafeAdd(x, y)
	if overflow {
		return 0, ErrOverflow
	}
	return sum, nil
}

// CheckedSub is SafeSub with the underflow flag folded into ErrOverflow.
func CheckedSub(x, y uint64) (uint64, error) {
	diff, underflow := SafeSub(x, y)
	if underflow {
		return 0, ErrOverflow
	}
	return diff, nil
}

// CheckedMul is SafeMul with the overflow flag folded into ErrOverflow.
func CheckedMul(x, y uint64) (uint64, error) {
	prod, overflow := SafeMul(x, y)
	if overflow {
		return 0, ErrOverflow
	}
	return prod, nil
}
