// Package common contains the shared primitive types of the MORT ledger.
package common

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// AddressLength is the length of a MORT principal identifier in bytes.
const AddressLength = 20

// Address identifies a principal: a staker, a bond holder, a treasury
// signer or the protocol authority. Derivation happens outside the ledger;
// the core only compares and stores addresses.
type Address [AddressLength]byte

// BytesToAddress returns Address with value b.
// If b is larger than AddressLength, b is cropped from the left.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// HexToAddress returns Address with byte values of s.
// If s is larger than AddressLength, s is cropped from the left.
func HexToAddress(s string) Address {
	return BytesToAddress(fromHex(s))
}

// IsHexAddress verifies whether a string can represent a valid hex-encoded
// address or not.
func IsHexAddress(s string) bool {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 2*AddressLength {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// Bytes gets the byte representation of the underlying address.
func (a Address) Bytes() []byte { return a[:] }

// Hex returns a 0x-prefixed hexadecimal representation of the address.
func (a Address) Hex() string { return "0x" + hex.EncodeToString(a[:]) }

// String implements fmt.Stringer.
func (a Address) String() string { return a.Hex() }

// IsZero reports whether the address is the zero address.
func (a Address) IsZero() bool { return a == Address{} }

// MarshalText encodes the address as a 0x-prefixed hex string.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText decodes a 0x-prefixed hex string into the address.
func (a *Address) UnmarshalText(input []byte) error {
	s := string(input)
	if !IsHexAddress(s) {
		return fmt.Errorf("invalid address %q", s)
	}
	*a = HexToAddress(s)
	return nil
}

// MarshalJSON encodes the address as a 0x-prefixed hex string.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Hex())
}

// UnmarshalJSON decodes a 0x-prefixed hex string into the address.
func (a *Address) UnmarshalJSON(input []byte) error {
	var s string
	if err := json.Unmarshal(input, &s); err != nil {
		return err
	}
	if !IsHexAddress(s) {
		return fmt.Errorf("invalid address %q", s)
	}
	*a = HexToAddress(s)
	return nil
}

func fromHex(s string) []byte {
	s = strings.TrimPrefix(s, "0x")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, _ := hex.DecodeString(s)
	return b
}
